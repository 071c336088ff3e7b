package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/laserhop/internal/games/laserhop"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
	"github.com/vovakirdan/laserhop/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// newTestServer starts a server whose sessions never decay on their own.
func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	srv := NewServer(store, laserhop.DefaultSettings(),
		WithSeed(42),
		WithSessionOptions(engine.WithInterval(time.Hour)),
	)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) (*websocket.Conn, Message) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, readMessage(t, conn)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, raw string) Message {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("WriteMessage() failed: %v", err)
	}
	return readMessage(t, conn)
}

func tapMsg(index int) string {
	b, _ := json.Marshal(ClientMessage{Type: MsgTap, Index: &index})
	return string(b)
}

func TestWebSocketRoundTrip(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, hello := dial(t, ts, "")

	if hello.Event != EventState || hello.SessionID == "" {
		t.Fatalf("hello = %+v", hello)
	}
	if hello.Sweep == nil || hello.Sweep.LegMs != 2500 {
		t.Errorf("hello sweep = %+v, want a 2500ms leg", hello.Sweep)
	}
	st := hello.State
	if st == nil || st.Level != 1 || len(st.Board) != engine.Cells || st.Endless {
		t.Fatalf("hello state = %+v", st)
	}
	if st.Board[engine.Index(7, 3)] != "green" || st.Last != engine.NoCell {
		t.Errorf("board/last = %s/%d", st.Board[engine.Index(7, 3)], st.Last)
	}

	msg := send(t, conn, tapMsg(engine.Index(8, 3)))
	if msg.Event != EventState || msg.State.Last != engine.Index(8, 3) {
		t.Errorf("first tap = %+v", msg)
	}
	if msg.SessionID != hello.SessionID {
		t.Errorf("session id changed: %s != %s", msg.SessionID, hello.SessionID)
	}

	msg = send(t, conn, tapMsg(engine.Index(7, 3)))
	if msg.State.Score != 1 || msg.State.Board[engine.Index(7, 3)] != "gray" {
		t.Errorf("green tap = %+v", msg.State)
	}

	msg = send(t, conn, tapMsg(engine.Index(0, 0)))
	if msg.Event != EventOutcome || msg.Outcome.Kind != engine.OutcomeRejectedTooFar {
		t.Fatalf("far tap = %+v", msg)
	}
	if msg.Notice == nil || msg.Notice.Title != "Too far" {
		t.Errorf("notice = %+v", msg.Notice)
	}
	if msg.State.Stamina != engine.DefaultMaxStamina {
		t.Errorf("stamina = %v, want a refill", msg.State.Stamina)
	}
}

func TestWebSocketErrorsKeepConnection(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, _ := dial(t, ts, "")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"malformed", "{", "malformed"},
		{"unknown type", `{"type":"jump"}`, "unknown message type"},
		{"tap without index", `{"type":"tap"}`, "needs an index"},
		{"index out of range", tapMsg(engine.Cells), "out of range"},
		{"next before clear", `{"type":"next"}`, "not cleared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := send(t, conn, tt.raw)
			if msg.Event != EventError || !strings.Contains(msg.Error, tt.want) {
				t.Errorf("reply = %+v, want error containing %q", msg, tt.want)
			}
		})
	}

	// Still playable afterwards.
	msg := send(t, conn, tapMsg(engine.Index(8, 3)))
	if msg.Event != EventState {
		t.Errorf("tap after errors = %+v", msg)
	}
}

func TestWebSocketGameOverSavesRun(t *testing.T) {
	store := openStore(t)
	ts := newTestServer(t, store)
	conn, _ := dial(t, ts, "?player=tester")

	send(t, conn, tapMsg(engine.Index(1, 1)))
	msg := send(t, conn, tapMsg(engine.Index(2, 2)))
	if msg.Event != EventOutcome || msg.Outcome.Kind != engine.OutcomeGameOver || msg.Outcome.Reason != engine.ReasonHazard {
		t.Fatalf("red tap = %+v", msg)
	}
	if msg.Notice == nil || msg.Notice.Action != "Restart" {
		t.Errorf("notice = %+v", msg.Notice)
	}

	runs, err := store.TopScores(laserhop.IDCampaign, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Player != "tester" || runs[0].Score != 1 || runs[0].Reason != "hazard" {
		t.Errorf("saved runs = %+v", runs)
	}

	msg = send(t, conn, `{"type":"restart"}`)
	if msg.State.Over || msg.State.Score != 0 || msg.State.Level != 1 {
		t.Errorf("after restart = %+v", msg.State)
	}
}

func TestWebSocketResendsSweepPerLevel(t *testing.T) {
	settings := laserhop.DefaultSettings()
	settings.Config.Difficulty.Enabled = true
	var board engine.Board
	board[engine.Index(8, 0)] = engine.CellTarget
	settings.Campaign = []engine.Level{{ID: 1, Name: "Single", Board: board}}

	srv := NewServer(nil, settings, WithSeed(42), WithSessionOptions(engine.WithInterval(time.Hour)))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	conn, hello := dial(t, ts, "")
	if hello.Sweep == nil || hello.Sweep.LegMs != 2500 {
		t.Fatalf("hello sweep = %+v, want 2500ms on the campaign", hello.Sweep)
	}

	msg := send(t, conn, tapMsg(engine.Index(8, 0)))
	if msg.Event != EventOutcome || !msg.State.Pending {
		t.Fatalf("clearing tap = %+v", msg)
	}
	if msg.Sweep != nil {
		t.Errorf("same level should not resend the sweep: %+v", msg.Sweep)
	}

	msg = send(t, conn, `{"type":"next"}`)
	if msg.State.Level != 2 || msg.State.Generation == hello.State.Generation {
		t.Fatalf("after next = %+v", msg.State)
	}
	want := settings.Sweep(2, 1).Leg.Milliseconds()
	if msg.Sweep == nil || msg.Sweep.LegMs != want || want >= 2500 {
		t.Errorf("next level sweep = %+v, want a faster %dms leg", msg.Sweep, want)
	}

	msg = send(t, conn, `{"type":"restart"}`)
	if msg.Sweep == nil || msg.Sweep.LegMs != 2500 {
		t.Errorf("restart sweep = %+v, want the campaign leg again", msg.Sweep)
	}
}

func TestWebSocketLaser(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, _ := dial(t, ts, "")

	msg := send(t, conn, `{"type":"laser"}`)
	if msg.Event != EventOutcome || msg.Outcome.Reason != engine.ReasonLaser {
		t.Errorf("laser = %+v", msg)
	}
}

func TestWebSocketModes(t *testing.T) {
	ts := newTestServer(t, nil)

	_, hello := dial(t, ts, "?mode=endless")
	if hello.State.Level != 4 || !hello.State.Endless {
		t.Errorf("endless hello = %+v", hello.State)
	}

	_, hello = dial(t, ts, "?level=3")
	if hello.State.Level != 3 {
		t.Errorf("level 3 hello = %+v", hello.State)
	}

	for _, q := range []string{"?mode=arcade", "?level=9", "?level=x"} {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + q
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Errorf("%s: dial should fail", q)
			continue
		}
		if resp == nil || resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: response = %v, want 400", q, resp)
		}
	}
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestHTTPAPI(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{4, 11} {
		if _, err := store.SaveRun(storage.Run{GameID: laserhop.IDEndless, Player: "bob", Score: score, Level: 5, Reason: "laser"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	ts := newTestServer(t, store)

	var levels []LevelView
	getJSON(t, ts.URL+"/api/levels", http.StatusOK, &levels)
	if len(levels) != 3 || levels[0].Name != "Corridors" || len(levels[0].Rows) != engine.Rows {
		t.Errorf("levels = %+v", levels)
	}

	var scores []ScoreView
	getJSON(t, ts.URL+"/api/scores/endless?limit=1", http.StatusOK, &scores)
	if len(scores) != 1 || scores[0].Score != 11 || scores[0].Rank != 1 {
		t.Errorf("scores = %+v", scores)
	}
	getJSON(t, ts.URL+"/api/scores/campaign", http.StatusOK, &scores)
	if len(scores) != 0 {
		t.Errorf("campaign scores = %+v", scores)
	}
	getJSON(t, ts.URL+"/api/scores/arcade", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/api/scores/endless?limit=0", http.StatusBadRequest, nil)

	store.SaveRun(storage.Run{GameID: laserhop.IDCampaign, Player: "cy", Score: 2, Level: 2, Reason: "hazard"})
	var runs []ScoreView
	getJSON(t, ts.URL+"/api/runs?limit=2", http.StatusOK, &runs)
	if len(runs) != 2 || runs[0].Player != "cy" || runs[0].Mode != "campaign" || runs[1].Mode != "endless" {
		t.Errorf("runs = %+v", runs)
	}
	getJSON(t, ts.URL+"/api/runs?limit=x", http.StatusBadRequest, nil)

	var stats map[string]storage.GameStats
	getJSON(t, ts.URL+"/api/stats", http.StatusOK, &stats)
	if s := stats[laserhop.IDEndless]; s.GamesCount != 2 || s.HighScore != 11 {
		t.Errorf("stats = %+v", stats)
	}

	var health map[string]any
	getJSON(t, ts.URL+"/healthz", http.StatusOK, &health)
	if health["status"] != "ok" {
		t.Errorf("health = %v", health)
	}
}

func TestHTTPAPIWithoutStore(t *testing.T) {
	ts := newTestServer(t, nil)
	getJSON(t, ts.URL+"/api/scores/campaign", http.StatusServiceUnavailable, nil)
	getJSON(t, ts.URL+"/api/stats", http.StatusServiceUnavailable, nil)
	getJSON(t, ts.URL+"/api/runs", http.StatusServiceUnavailable, nil)
	getJSON(t, ts.URL+"/healthz", http.StatusOK, nil)
}
