package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/laserhop/internal/core"
	"github.com/vovakirdan/laserhop/internal/games/laserhop"
)

func sessionSend(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 1}
	return NewSessionModel(openStore(t), cfg, laserhop.DefaultSettings(), "alice")
}

func TestSessionMenuGameMenu(t *testing.T) {
	m := newTestSession(t)
	if m.ID() == "" {
		t.Error("session should have an id")
	}

	m = sessionSend(t, m, keyEnter)
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %d, want game", m.screen)
	}
	if !strings.Contains(m.View(), "LASER HOP") {
		t.Error("game view should show the HUD")
	}

	m = sessionSend(t, m, TickMsg{}, keyEsc)
	if m.screen != screenMenu || m.game != nil {
		t.Fatalf("esc should return to the menu, screen = %d", m.screen)
	}
	if m.quitting {
		t.Error("leaving a game should not end the session")
	}

	// A tick still in flight from the old game is dropped.
	next, cmd := m.Update(TickMsg{})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	m = next.(SessionModel)
	if m.screen != screenMenu {
		t.Error("stale tick changed the screen")
	}
}

func TestSessionSelectLevel(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, keyDown, keyDown, keyEnter, keyDown, keyEnter)
	if m.screen != screenGame {
		t.Fatalf("screen = %d, want game", m.screen)
	}
	g, ok := m.game.game.(*laserhop.Game)
	if !ok {
		t.Fatalf("game is %T", m.game.game)
	}
	if lvl := g.EngineState().Level; lvl != 2 {
		t.Errorf("Level = %d, want 2", lvl)
	}
	if g.SettingsErr() != nil {
		t.Errorf("SettingsErr() = %v", g.SettingsErr())
	}
}

func TestSessionGamesUseServerSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	settings := laserhop.DefaultSettings()
	settings.Campaign = settings.Campaign[:2]
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 1}
	m := NewSessionModel(nil, cfg, settings, "alice")

	// Endless starts right after the campaign the server resolved.
	m = sessionSend(t, m, keyDown, keyEnter)
	g, ok := m.game.game.(*laserhop.Game)
	if !ok {
		t.Fatalf("game is %T", m.game.game)
	}
	if lvl := g.EngineState().Level; lvl != 3 {
		t.Errorf("endless Level = %d, want 3", lvl)
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %d, want scores", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	m = sessionSend(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Errorf("esc should return to the menu, screen = %d", m.screen)
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
