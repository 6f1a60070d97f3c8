package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortscope/internal/initiator"
	"github.com/roach88/sortscope/internal/testutil"
)

func TestSession_InitiateNamed(t *testing.T) {
	c, r, _ := newController(0)
	seeds := testutil.NewSeedSequence()
	s := NewSession(c, seeds.Next)

	rec, err := s.InitiateNamed("permutation", "comb", 12)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), rec.Seed)
	assert.Same(t, rec, s.Recording())
	assert.Equal(t, Ready, c.State())
	assert.Equal(t, rec.Initial, r.Heights())
}

func TestSession_SameSeedSameRecording(t *testing.T) {
	c, _, _ := newController(0)
	s := NewSession(c, FixedSeed(9))

	a, err := s.InitiateNamed("local", "quick-random", 30)
	require.NoError(t, err)
	b, err := s.InitiateNamed("local", "quick-random", 30)
	require.NoError(t, err)

	assert.Equal(t, a.Initial, b.Initial)
	assert.Equal(t, a.Steps, b.Steps)
}

func TestSession_InputErrorKeepsPreviousSession(t *testing.T) {
	c, r, _ := newController(0)
	s := NewSession(c, FixedSeed(3))

	prev, err := s.InitiateNamed("reverse", "bubble", 4)
	require.NoError(t, err)
	require.NoError(t, c.Step())
	calls := r.CallCount()

	_, err = s.InitiateNamed("transposition", "bubble", 1)
	require.Error(t, err)
	assert.True(t, initiator.IsInputError(err))

	assert.Equal(t, calls, r.CallCount(), "renderer must not be touched")
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, 0, c.Index())
	assert.Same(t, prev, s.Recording())
}
