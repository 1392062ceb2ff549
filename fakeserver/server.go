// Package fakeserver is an in-process stand-in for the CasinoDog
// aggregation API. It serves the same endpoints with an in-memory catalog
// and session table, for tests and local development.
package fakeserver

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrfortune94/casinodog/catalog"
	log "github.com/sirupsen/logrus"
)

// Version is reported by /api/version.
const Version = "1.0.0-fake"

type Config struct {
	// AccessKey, when set, must be presented as a bearer token.
	AccessKey string
	// Games is the full games list body; DefaultGames when empty.
	Games string
	// Port is used by Run.
	Port int
}

// Session is one created play session.
type Session struct {
	ID        string    `json:"session_id"`
	GameID    string    `json:"game_id"`
	GameName  string    `json:"game_name"`
	Provider  string    `json:"provider"`
	Mode      string    `json:"mode"`
	PlayerID  string    `json:"player_id"`
	Currency  string    `json:"currency"`
	Balance   float64   `json:"balance"`
	FreeSpins int       `json:"freespins"`
	Respin    bool      `json:"respin"`
	CreatedAt time.Time `json:"created_at"`
}

type Server struct {
	cfg      Config
	rawGames string
	games    []catalog.Game
	index    *catalog.Index

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(cfg Config) (*Server, error) {
	raw := cfg.Games
	if raw == "" {
		raw = DefaultGames
	}
	games, err := catalog.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("fakeserver: games: %w", err)
	}
	return &Server{
		cfg:      cfg,
		rawGames: raw,
		games:    games,
		index:    catalog.NewIndex(games),
		sessions: make(map[string]*Session),
	}, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/accessPing", s.accessPing)
	mux.HandleFunc("GET /api/gameslist/{layout}", s.gamesList)
	mux.HandleFunc("GET /api/createSession", s.createSession)
	mux.HandleFunc("GET /api/createSessionIframed", s.createSessionIframed)
	mux.HandleFunc("GET /api/control/add_freespins", s.addFreeSpins)
	mux.HandleFunc("GET /api/control/toggle_respin", s.toggleRespin)
	mux.HandleFunc("GET /api/version", s.version)
	mux.HandleFunc("GET /play/{id}", s.play)
	return cors(requestLogger(s.auth(mux)))
}

func (s *Server) Run() error {
	port := s.cfg.Port
	if port <= 0 {
		port = 8081
	}
	addr := ":" + strconv.Itoa(port)
	log.Infof("fake CasinoDog API listening on %s (%d games)", addr, len(s.games))
	return http.ListenAndServe(addr, s.Handler())
}

// Session returns a copy of a created session.
func (s *Server) Session(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

func cors(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// requestLogger logs method and path for each request (no query or secrets).
func requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("fake API %s %s", r.Method, r.URL.Path)
		h.ServeHTTP(w, r)
	})
}

// auth enforces the bearer token on /api routes when one is configured.
func (s *Server) auth(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AccessKey != "" && strings.HasPrefix(r.URL.Path, "/api/") {
			if r.Header.Get("Authorization") != "Bearer "+s.cfg.AccessKey {
				fail(w, http.StatusUnauthorized, "invalid_access_key", "invalid or missing access key")
				return
			}
		}
		h.ServeHTTP(w, r)
	})
}

func (s *Server) accessPing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "message": "pong"})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"version": Version, "service": "casinodog"})
}

type compactGame struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider,omitempty"`
}

func (s *Server) gamesList(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("layout") {
	case "full":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s.rawGames))
	case "compact":
		out := make([]compactGame, 0, len(s.games))
		for _, g := range s.games {
			out = append(out, compactGame{ID: g.ID, Name: g.Name, Provider: g.Provider})
		}
		writeJSON(w, out)
	default:
		fail(w, http.StatusNotFound, "unknown_layout", "unknown games list layout %q", r.PathValue("layout"))
	}
}

// newSession validates the query and stores a session. It writes the error
// response itself and returns nil on failure.
func (s *Server) newSession(w http.ResponseWriter, r *http.Request) *Session {
	q := r.URL.Query()
	gameID := q.Get("game_id")
	if gameID == "" {
		fail(w, http.StatusBadRequest, "missing_game_id", "game_id is required")
		return nil
	}
	game, ok := catalog.Find(s.games, gameID)
	if !ok {
		fail(w, http.StatusNotFound, "unknown_game", "unknown game %s", gameID)
		return nil
	}
	provider := q.Get("provider")
	if provider == "" {
		provider = game.Provider
	}
	if provider != "" && !s.index.HasGame(provider, gameID) {
		fail(w, http.StatusNotFound, "unknown_game", "unknown game %s for provider %s", gameID, provider)
		return nil
	}
	mode := q.Get("mode")
	if mode == "" {
		mode = "real"
	}
	if mode != "real" && mode != "demo" {
		fail(w, http.StatusBadRequest, "invalid_mode", "mode must be real or demo")
		return nil
	}
	balance := 0.0
	if v := q.Get("balance"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil || b < 0 {
			fail(w, http.StatusBadRequest, "invalid_balance", "invalid balance %q", v)
			return nil
		}
		balance = b
	}
	sess := &Session{
		ID:        uuid.NewString(),
		GameID:    gameID,
		GameName:  game.Name,
		Provider:  provider,
		Mode:      mode,
		PlayerID:  q.Get("player_id"),
		Currency:  q.Get("currency"),
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func playURL(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/play/" + id
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, map[string]any{
		"session_id": sess.ID,
		"game_url":   playURL(r, sess.ID),
		"mode":       sess.Mode,
	})
}

func (s *Server) createSessionIframed(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, map[string]any{
		"session_id": sess.ID,
		"url":        playURL(r, sess.ID),
		"mode":       sess.Mode,
	})
}

// lookup finds the session named by the session_id query parameter.
// Caller must hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		fail(w, http.StatusBadRequest, "missing_session_id", "session_id is required")
		return nil, false
	}
	sess, ok := s.sessions[id]
	if !ok {
		fail(w, http.StatusNotFound, "unknown_session", "unknown session %s", id)
		return nil, false
	}
	return sess, true
}

func (s *Server) addFreeSpins(w http.ResponseWriter, r *http.Request) {
	amount := 10
	if v := r.URL.Query().Get("amount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fail(w, http.StatusBadRequest, "invalid_amount", "amount must be a positive integer")
			return
		}
		amount = n
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.FreeSpins += amount
	writeJSON(w, map[string]any{"session_id": sess.ID, "freespins": sess.FreeSpins})
}

func (s *Server) toggleRespin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.Respin = !sess.Respin
	writeJSON(w, map[string]any{"session_id": sess.ID, "respin": sess.Respin})
}

// play serves a placeholder game page for a session URL.
func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.Session(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s mode, %s %.2f</p></body></html>",
		html.EscapeString(sess.GameName), html.EscapeString(sess.GameName),
		html.EscapeString(sess.Mode), html.EscapeString(sess.Currency), sess.Balance)
}
