package store

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minesweep/internal/game"
)

func newSession() *game.Session {
	return game.NewSession(game.Beginner, rand.New(rand.NewPCG(1, 2)))
}

func TestStore(t *testing.T) {
	t.Parallel()

	s := New()

	first := newSession()
	second := newSession()
	firstId := s.Add(first)
	secondId := s.Add(second)
	assert.NotEqual(t, firstId, secondId)
	assert.Equal(t, 2, s.Len())

	got, err := s.Get(firstId)
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = s.Get(999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(firstId))
	assert.Equal(t, 1, s.Len())
	_, err = s.Get(firstId)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(firstId), ErrNotFound)
}
