// Package server exposes the question engine over HTTP and WebSocket.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/acolumban/loftybot/internal/bot"
	"github.com/acolumban/loftybot/internal/catalog"
	"github.com/acolumban/loftybot/internal/metrics"
)

// Server handles chat traffic for one engine instance.
type Server struct {
	engine    *bot.Engine
	store     *catalog.Store
	collector *metrics.Collector
	logger    *slog.Logger
	sessions  *sessions
	upgrader  websocket.Upgrader

	// CatalogPath enables POST /reload when non-empty.
	CatalogPath string
}

// New creates a server around an engine.
func New(engine *bot.Engine, store *catalog.Store, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:    engine,
		store:     store,
		collector: collector,
		logger:    logger,
		sessions:  newSessions(12),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // same-origin deployments only
			},
		},
	}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("GET /chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /reload", s.handleReload)
	return mux
}

// HTTPServer wraps the handler with the timeouts chat traffic needs.
// Write timeout is long because fallback answers wait on the LLM.
func (s *Server) HTTPServer(port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

type askResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	id, history := s.sessions.resolve(req.SessionID)
	text, err := s.engine.Answer(r.Context(), req.Question, history)
	if err != nil {
		s.logger.Warn("ask aborted", "error", err)
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
		return
	}
	s.sessions.record(id, bot.Turn{User: req.Question, Assistant: text})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(askResponse{Answer: text, SessionID: id})
}

// wsMessage is the frame format in both directions on /chat.
type wsMessage struct {
	Type string `json:"type"` // "question" in, "answer" or "error" out
	Text string `json:"text"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	id, _ := s.sessions.resolve("")
	defer s.sessions.drop(id)
	s.logger.Info("chat session opened", "session", id)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("chat read failed", "session", id, "error", err)
			}
			return
		}
		if msg.Type != "question" || msg.Text == "" {
			_ = conn.WriteJSON(wsMessage{Type: "error", Text: "expected a question frame"})
			continue
		}

		_, history := s.sessions.resolve(id)
		text, err := s.engine.Answer(r.Context(), msg.Text, history)
		if err != nil {
			_ = conn.WriteJSON(wsMessage{Type: "error", Text: "request cancelled"})
			return
		}
		s.sessions.record(id, bot.Turn{User: msg.Text, Assistant: text})

		if err := conn.WriteJSON(wsMessage{Type: "answer", Text: text}); err != nil {
			s.logger.Warn("chat write failed", "session", id, "error", err)
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := s.collector.Snapshot()
	_ = json.NewEncoder(w).Encode(snap)
}

// handleReload swaps in a freshly ingested catalog file. In-flight
// questions keep their snapshot.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.CatalogPath == "" {
		http.Error(w, "reload not configured", http.StatusNotImplemented)
		return
	}
	if err := s.store.Reload(s.CatalogPath); err != nil {
		s.logger.Error("catalog reload failed", "error", err)
		http.Error(w, "reload failed", http.StatusInternalServerError)
		return
	}
	s.logger.Info("catalog reloaded", "records", s.store.Snapshot().Len())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"records": s.store.Snapshot().Len()})
}
