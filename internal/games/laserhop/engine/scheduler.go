package engine

import (
	"sync"
	"time"
)

// Scheduler runs fn every d until the returned stop function is called.
// A call already running when stop is invoked may still finish.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TimeScheduler is a Scheduler backed by time.Ticker.
type TimeScheduler struct{}

// Every starts a ticker goroutine.
func (TimeScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
