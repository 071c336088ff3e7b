// Package web serves Laser Hop to browsers. Each WebSocket connection plays
// its own run on an engine.Session; a small JSON API exposes levels and scores.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/laserhop/internal/games/laserhop"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
	"github.com/vovakirdan/laserhop/internal/storage"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
)

// Server is the HTTP and WebSocket front end.
type Server struct {
	router   *mux.Router
	store    *storage.Store
	settings laserhop.Settings
	logger   *log.Logger
	seed     int64
	minScore int
	sessOpts []engine.SessionOption

	mu      sync.Mutex
	clients map[string]*Client
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed fixes the random source of every session. Zero keeps it time based.
func WithSeed(seed int64) Option {
	return func(s *Server) {
		s.seed = seed
	}
}

// WithSessionOptions adds options to every session, after the configured
// decay interval.
func WithSessionOptions(opts ...engine.SessionOption) Option {
	return func(s *Server) {
		s.sessOpts = append(s.sessOpts, opts...)
	}
}

// NewServer creates a server. The store may be nil, in which case runs are
// not saved and the score endpoints report 503.
func NewServer(store *storage.Store, settings laserhop.Settings, opts ...Option) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		store:    store,
		settings: settings,
		logger:   log.New(io.Discard),
		minScore: settings.Config.Scoring.SaveMinScore,
		clients:  make(map[string]*Client),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/levels", s.handleLevels).Methods("GET")
	api.HandleFunc("/scores/{mode}", s.handleScores).Methods("GET")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/runs", s.handleRuns).Methods("GET")

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes every session.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeAll()
	return err
}

// Sessions returns the number of connected players.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) register(c *Client) {
	s.mu.Lock()
	s.clients[c.id] = c
	n := len(s.clients)
	s.mu.Unlock()
	c.logger.Info("session started", "mode", c.gameID, "sessions", n)
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c.id)
	n := len(s.clients)
	s.mu.Unlock()
	c.logger.Info("session ended", "sessions", n)
}

// closeAll ends every session; their pumps then close the connections.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		c.session.Close()
	}
}

// firstLevel is where a fresh run of the given mode begins.
func (s *Server) firstLevel(gameID string) int {
	if gameID == laserhop.IDEndless {
		return s.settings.CampaignLength() + 1
	}
	return 1
}

// gameIDForMode maps "campaign", "endless" or a registry id to a registry id.
func gameIDForMode(mode string) (string, bool) {
	switch strings.ToLower(mode) {
	case "campaign", laserhop.IDCampaign:
		return laserhop.IDCampaign, true
	case "endless", laserhop.IDEndless:
		return laserhop.IDEndless, true
	}
	return "", false
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	gameID := laserhop.IDCampaign
	if mode := q.Get("mode"); mode != "" {
		id, ok := gameIDForMode(mode)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", mode))
			return
		}
		gameID = id
	}

	level := s.firstLevel(gameID)
	if v := q.Get("level"); v != "" && gameID == laserhop.IDCampaign {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > s.settings.CampaignLength() {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("level must be 1..%d", s.settings.CampaignLength()))
			return
		}
		level = n
	}

	player := q.Get("player")
	if player == "" {
		player = "web"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id, "player", player)

	opts := append([]engine.SessionOption{
		engine.WithInterval(s.settings.Config.TickInterval()),
		engine.WithLogger(logger),
	}, s.sessOpts...)
	session := engine.NewSession(s.settings.NewEngine(s.seed), opts...)
	if level != 1 {
		session.StartAt(level)
	}

	client := &Client{
		server:  s,
		conn:    conn,
		send:    make(chan []byte, 256),
		id:      id,
		gameID:  gameID,
		player:  player,
		session: session,
		sub:     session.Subscribe(eventBuffer),
		logger:  logger,
	}

	st := session.State()
	client.gen = session.Generation()
	hello := Message{
		Event:     EventState,
		SessionID: id,
		State:     newStateView(session.Engine(), st, client.gen),
		Sweep:     newSweepView(s.settings.Sweep(st.Level, st.Score)),
	}
	if err := client.write(hello); err != nil {
		logger.Warn("could not greet client", "error", err)
		session.Close()
		conn.Close()
		return
	}

	s.register(client)
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	levels := make([]LevelView, len(s.settings.Campaign))
	for i, lvl := range s.settings.Campaign {
		levels[i] = LevelView{
			ID:      i + 1,
			Name:    lvl.Name,
			Targets: lvl.Board.Targets(),
			Rows:    strings.Split(lvl.Board.String(), "\n"),
		}
	}
	respondJSON(w, http.StatusOK, levels)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDForMode(mux.Vars(r)["mode"])
	if !ok {
		respondError(w, http.StatusNotFound, "unknown mode")
		return
	}
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	limit, ok := scoreLimit(w, r)
	if !ok {
		return
	}

	entries, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("could not load scores", "mode", gameID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not load scores")
		return
	}
	respondJSON(w, http.StatusOK, scoreViews(entries))
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}
	limit, ok := scoreLimit(w, r)
	if !ok {
		return
	}

	entries, err := s.store.RecentRuns(limit)
	if err != nil {
		s.logger.Error("could not load runs", "error", err)
		respondError(w, http.StatusInternalServerError, "could not load runs")
		return
	}
	respondJSON(w, http.StatusOK, scoreViews(entries))
}

// scoreLimit reads the limit query parameter, answering 400 when it is bad.
func scoreLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultScoreLimit, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		respondError(w, http.StatusBadRequest, "limit must be a positive number")
		return 0, false
	}
	return min(n, maxScoreLimit), true
}

func scoreViews(entries []storage.ScoreEntry) []ScoreView {
	views := make([]ScoreView, len(entries))
	for i, e := range entries {
		views[i] = ScoreView{
			Rank:      i + 1,
			Mode:      modeName(e.GameID),
			Player:    e.Player,
			Score:     e.Score,
			Level:     e.Level,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		}
	}
	return views
}

// modeName is the inverse of gameIDForMode.
func modeName(gameID string) string {
	if gameID == laserhop.IDEndless {
		return "endless"
	}
	return "campaign"
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}
	stats, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("could not load stats", "error", err)
		respondError(w, http.StatusInternalServerError, "could not load stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
