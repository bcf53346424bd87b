package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/acolumban/loftybot/internal/bot"
)

// sessions keeps per-conversation history so the fallback LLM sees the
// recent turns. Histories are capped; old turns fall off the front.
type sessions struct {
	mu      sync.Mutex
	turns   map[string][]bot.Turn
	maxKeep int
}

func newSessions(maxKeep int) *sessions {
	if maxKeep <= 0 {
		maxKeep = 6
	}
	return &sessions{turns: make(map[string][]bot.Turn), maxKeep: maxKeep}
}

// resolve returns the history for an existing session, minting a fresh
// session id when none was supplied.
func (s *sessions) resolve(id string) (string, []bot.Turn) {
	if id == "" {
		return uuid.NewString(), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return id, append([]bot.Turn(nil), s.turns[id]...)
}

// record appends a finished turn to a session.
func (s *sessions) record(id string, turn bot.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := append(s.turns[id], turn)
	if len(history) > s.maxKeep {
		history = history[len(history)-s.maxKeep:]
	}
	s.turns[id] = history
}

// drop forgets a session.
func (s *sessions) drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, id)
}
