package puzzle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	started   int
	committed []int
	dropped   []Direction
	shots     []ShotResult
}

func (r *recorder) PlanStarted(MovePlan)                { r.started++ }
func (r *recorder) PlanCommitted(_ MovePlan, moves int) { r.committed = append(r.committed, moves) }
func (r *recorder) InputDropped(d Direction)            { r.dropped = append(r.dropped, d) }
func (r *recorder) ShotResolved(res ShotResult, _ int)  { r.shots = append(r.shots, res) }

const frame = time.Second / 60

func newTestSession(t *testing.T, obs Observer, rows ...string) *Session {
	t.Helper()
	opts := DefaultSessionOptions()
	opts.Size = 0
	opts.Observer = obs
	s, err := NewSession(MustParseGrid(rows...), opts)
	require.NoError(t, err)
	return s
}

func settle(s *Session) {
	for i := 0; i < 600 && s.Busy(); i++ {
		s.Advance(frame)
	}
}

func TestNewSessionValidation(t *testing.T) {
	g := MustParseGrid("...", "...", "...")

	_, err := NewSession(nil, DefaultSessionOptions())
	require.Error(t, err)

	_, err = NewSession(g, DefaultSessionOptions())
	assert.ErrorIs(t, err, ErrGridSize)

	opts := DefaultSessionOptions()
	opts.Size = 3
	opts.MoveDuration = 0
	_, err = NewSession(g, opts)
	require.Error(t, err)

	opts = DefaultSessionOptions()
	opts.Size = 3
	opts.ArrowSpeed = 0
	_, err = NewSession(g, opts)
	require.Error(t, err)

	opts = DefaultSessionOptions()
	opts.Size = 3
	opts.ArrowColumn = 3
	_, err = NewSession(g, opts)
	require.Error(t, err)

	opts = DefaultSessionOptions()
	opts.Size = 3
	s, err := NewSession(g, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, s.ArrowColumn())
}

func TestSessionMoveCommitsAfterDuration(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec, "MM.", "###", "###")

	require.True(t, s.Move(DirRight))
	assert.True(t, s.Busy())
	assert.Equal(t, "MM.", s.Grid().Rows()[0], "commit waits for the animation")
	assert.Len(t, s.Tweens(), 2)

	settle(s)
	assert.False(t, s.Busy())
	assert.Equal(t, ".MM", s.Grid().Rows()[0])
	assert.Equal(t, 1, s.Moves())
	assert.Equal(t, 1, rec.started)
	assert.Equal(t, []int{1}, rec.committed)
}

func TestSessionDropsInputWhileBusy(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec, "M...", "....", "....", "....")

	require.True(t, s.Move(DirRight))
	s.Advance(frame)
	assert.False(t, s.Move(DirDown))
	assert.Equal(t, []Direction{DirDown}, rec.dropped)

	settle(s)
	assert.Equal(t, ".M..\n....\n....\n....", s.Grid().String())
	assert.Equal(t, 1, s.Moves())
}

func TestSessionEmptyPlanIsNoop(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec, "..M", "...", "...")

	assert.False(t, s.Move(DirRight))
	assert.False(t, s.Busy())
	assert.Zero(t, rec.started)
	assert.Zero(t, s.Moves())
}

func TestSessionFireSolves(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, rec, ".#.", ".M.", "...")

	require.True(t, s.Fire())
	assert.False(t, s.Move(DirLeft), "moves are dropped while the arrow flies")
	settle(s)
	assert.Equal(t, []ShotResult{ShotMissed}, rec.shots)
	assert.False(t, s.Solved())

	require.True(t, s.Move(DirLeft))
	settle(s)
	require.True(t, s.Fire())

	var last ShotResult
	for s.Busy() {
		if r := s.Advance(frame); r != ShotNone {
			last = r
		}
	}
	assert.Equal(t, ShotSolved, last)
	assert.True(t, s.Solved())
	assert.False(t, s.Move(DirRight))
	assert.False(t, s.Fire())

	_, _, ok := s.ArrowPosition()
	assert.False(t, ok)
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(t, nil, "M..", "...", "...")

	require.True(t, s.Move(DirRight))
	settle(s)
	require.True(t, s.Move(DirDown))
	s.Advance(frame)

	s.Reset()
	assert.False(t, s.Busy())
	assert.Zero(t, s.Moves())
	assert.Equal(t, "M..\n...\n...", s.Grid().String())

	settle(s)
	assert.Equal(t, "M..\n...\n...", s.Grid().String(), "cancelled plan never commits")
}
