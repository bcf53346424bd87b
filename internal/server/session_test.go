package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acolumban/loftybot/internal/bot"
)

func TestSessionsMintID(t *testing.T) {
	s := newSessions(3)

	id, history := s.resolve("")
	assert.NotEmpty(t, id)
	assert.Empty(t, history)

	id2, _ := s.resolve("")
	assert.NotEqual(t, id, id2)
}

func TestSessionsRecordAndResolve(t *testing.T) {
	s := newSessions(3)

	s.record("abc", bot.Turn{User: "q1", Assistant: "a1"})
	s.record("abc", bot.Turn{User: "q2", Assistant: "a2"})

	id, history := s.resolve("abc")
	assert.Equal(t, "abc", id)
	require.Len(t, history, 2)
	assert.Equal(t, "q1", history[0].User)
	assert.Equal(t, "a2", history[1].Assistant)
}

func TestSessionsHistoryCap(t *testing.T) {
	s := newSessions(2)

	s.record("abc", bot.Turn{User: "q1"})
	s.record("abc", bot.Turn{User: "q2"})
	s.record("abc", bot.Turn{User: "q3"})

	_, history := s.resolve("abc")
	require.Len(t, history, 2)
	assert.Equal(t, "q2", history[0].User)
	assert.Equal(t, "q3", history[1].User)
}

func TestSessionsResolveReturnsCopy(t *testing.T) {
	s := newSessions(5)
	s.record("abc", bot.Turn{User: "q1"})

	_, history := s.resolve("abc")
	history[0].User = "mutated"

	_, again := s.resolve("abc")
	assert.Equal(t, "q1", again[0].User)
}

func TestSessionsDrop(t *testing.T) {
	s := newSessions(5)
	s.record("abc", bot.Turn{User: "q1"})
	s.drop("abc")

	_, history := s.resolve("abc")
	assert.Empty(t, history)
}
