package puzzle

import (
	"errors"
	"fmt"
	"time"
)

// Default session tuning.
const (
	DefaultSize         = 5
	DefaultMoveDuration = 200 * time.Millisecond
	DefaultArrowSpeed   = 12.0
)

// Observer receives session notifications. Calls happen on the caller's
// goroutine from Move, Fire and Advance.
type Observer interface {
	PlanStarted(p MovePlan)
	PlanCommitted(p MovePlan, moves int)
	InputDropped(d Direction)
	ShotResolved(r ShotResult, row int)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) PlanStarted(MovePlan)         {}
func (NopObserver) PlanCommitted(MovePlan, int)  {}
func (NopObserver) InputDropped(Direction)       {}
func (NopObserver) ShotResolved(ShotResult, int) {}

// SessionOptions configures a Session.
type SessionOptions struct {
	// Size is the expected grid side. Zero accepts any size.
	Size         int
	MoveDuration time.Duration
	Easing       Easing
	// ArrowColumn is the firing column; negative selects Size/2.
	ArrowColumn int
	// ArrowSpeed is in cells per second.
	ArrowSpeed float64
	Observer   Observer
}

// DefaultSessionOptions returns the stock tuning for a 5x5 grid.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Size:         DefaultSize,
		MoveDuration: DefaultMoveDuration,
		Easing:       SmoothStep,
		ArrowColumn:  -1,
		ArrowSpeed:   DefaultArrowSpeed,
	}
}

// Session owns a grid and serialises inputs against it: at most one plan is
// animating at a time and inputs arriving while busy are dropped.
type Session struct {
	opts    SessionOptions
	initial *Grid
	grid    *Grid

	anim  *Animator
	arrow Arrow

	moves  int
	solved bool
}

// NewSession validates the setup and returns an idle session over a copy of g.
func NewSession(g *Grid, opts SessionOptions) (*Session, error) {
	if g == nil {
		return nil, errors.New("puzzle: nil grid")
	}
	if opts.Size != 0 && g.Size() != opts.Size {
		return nil, fmt.Errorf("%w: grid side %d, configured %d", ErrGridSize, g.Size(), opts.Size)
	}
	if opts.MoveDuration <= 0 {
		return nil, fmt.Errorf("puzzle: move duration must be positive, got %s", opts.MoveDuration)
	}
	if opts.ArrowSpeed <= 0 {
		return nil, fmt.Errorf("puzzle: arrow speed must be positive, got %v", opts.ArrowSpeed)
	}
	if opts.ArrowColumn < 0 {
		opts.ArrowColumn = g.Size() / 2
	}
	if opts.ArrowColumn >= g.Size() {
		return nil, fmt.Errorf("puzzle: arrow column %d outside grid of side %d", opts.ArrowColumn, g.Size())
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}

	return &Session{
		opts:    opts,
		initial: g.Clone(),
		grid:    g.Clone(),
		anim:    NewAnimator(opts.MoveDuration, opts.Easing),
	}, nil
}

// Grid returns the live grid. Callers must not mutate it.
func (s *Session) Grid() *Grid {
	return s.grid
}

// ArrowColumn returns the firing column.
func (s *Session) ArrowColumn() int {
	return s.opts.ArrowColumn
}

// Moves returns the number of committed plans since the last reset.
func (s *Session) Moves() int {
	return s.moves
}

// Solved reports whether an arrow has hit the target.
func (s *Session) Solved() bool {
	return s.solved
}

// Busy reports whether a plan is animating or an arrow is in flight.
func (s *Session) Busy() bool {
	return s.anim.Busy() || s.arrow.InFlight()
}

// Animating reports whether a plan is in flight.
func (s *Session) Animating() bool {
	return s.anim.Busy()
}

// Move requests a slide. It returns true when a non-empty plan started. Input
// while busy or after the puzzle is solved is dropped.
func (s *Session) Move(d Direction) bool {
	if s.solved {
		return false
	}
	if s.Busy() {
		s.opts.Observer.InputDropped(d)
		return false
	}

	plan := Resolve(s.grid, d)
	if plan.Empty() {
		return false
	}

	s.anim.Start(plan)
	s.opts.Observer.PlanStarted(plan)
	return true
}

// Fire launches the arrow. It returns false while busy or once solved.
func (s *Session) Fire() bool {
	if s.solved || s.Busy() {
		return false
	}
	s.arrow.Launch(s.grid, s.opts.ArrowColumn, s.opts.ArrowSpeed)
	return true
}

// Advance steps the animation and the arrow by dt. It returns the shot result
// on the tick an arrow lands, ShotNone otherwise.
func (s *Session) Advance(dt time.Duration) ShotResult {
	if s.anim.Advance(dt) {
		plan := s.anim.Plan()
		Commit(s.grid, plan)
		s.moves++
		s.opts.Observer.PlanCommitted(plan, s.moves)
	}

	res := s.arrow.Advance(dt.Seconds())
	if res == ShotNone {
		return ShotNone
	}
	_, row := TraceShot(s.grid, s.opts.ArrowColumn)
	if res == ShotSolved {
		s.solved = true
	}
	s.opts.Observer.ShotResolved(res, row)
	return res
}

// Reset restores the initial grid and drops anything in flight.
func (s *Session) Reset() {
	s.anim.Cancel()
	s.arrow.Cancel()
	s.grid = s.initial.Clone()
	s.moves = 0
	s.solved = false
}

// Progress returns the eased progress of the plan in flight.
func (s *Session) Progress() float64 {
	return s.anim.Progress()
}

// Tweens returns interpolated positions of the blocks currently sliding.
func (s *Session) Tweens() []Tween {
	return s.anim.Tweens(s.grid)
}

// ArrowPosition returns the arrow column and row and whether it is in flight.
func (s *Session) ArrowPosition() (col int, row float64, ok bool) {
	if !s.arrow.InFlight() {
		return 0, 0, false
	}
	col, row = s.arrow.Position()
	return col, row, true
}
