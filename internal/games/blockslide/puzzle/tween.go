package puzzle

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/blockslide/internal/core"
)

// Easing maps linear progress t in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear leaves progress unchanged.
func Linear(t float64) float64 { return t }

// SmoothStep eases in and out: 3t² - 2t³.
func SmoothStep(t float64) float64 { return t * t * (3 - 2*t) }

// EaseOutQuad decelerates toward the end.
func EaseOutQuad(t float64) float64 { return t * (2 - t) }

// EasingByName resolves a configured easing name. Empty selects SmoothStep.
func EasingByName(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "smoothstep", "smooth":
		return SmoothStep, nil
	case "linear":
		return Linear, nil
	case "ease_out_quad", "easeoutquad", "quad":
		return EaseOutQuad, nil
	}
	return nil, fmt.Errorf("puzzle: unknown easing %q", name)
}

// Tween is the interpolated position of one moving block.
type Tween struct {
	CellID int
	From   int
	To     int
	Row    float64
	Col    float64
}

// Animator runs one plan at a time. It is Idle until Start and returns to
// Idle when Advance reports completion.
type Animator struct {
	duration time.Duration
	easing   Easing

	plan    MovePlan
	elapsed time.Duration
	active  bool
}

// NewAnimator creates an idle animator. A nil easing selects SmoothStep.
func NewAnimator(duration time.Duration, easing Easing) *Animator {
	if easing == nil {
		easing = SmoothStep
	}
	return &Animator{duration: duration, easing: easing}
}

// Start begins animating p from zero elapsed time.
func (a *Animator) Start(p MovePlan) {
	a.plan = p
	a.elapsed = 0
	a.active = true
}

// Busy reports whether a plan is in flight.
func (a *Animator) Busy() bool {
	return a.active
}

// Plan returns the plan in flight.
func (a *Animator) Plan() MovePlan {
	return a.plan
}

// Advance moves the animation forward by dt and returns true on the tick the
// animation completes. The caller commits the plan at that point.
func (a *Animator) Advance(dt time.Duration) bool {
	if !a.active {
		return false
	}
	a.elapsed += dt
	if a.elapsed < a.duration {
		return false
	}
	a.active = false
	a.elapsed = a.duration
	return true
}

// Progress returns the eased progress of the running plan in [0,1].
func (a *Animator) Progress() float64 {
	if !a.active {
		return 0
	}
	if a.duration <= 0 {
		return 1
	}
	return a.easing(core.ClampF(float64(a.elapsed)/float64(a.duration), 0, 1))
}

// Cancel drops the plan in flight without completing it.
func (a *Animator) Cancel() {
	a.active = false
	a.elapsed = 0
	a.plan = MovePlan{}
}

// Tweens returns the interpolated positions of every moving block in g. The
// grid must be the pre-commit grid the plan was resolved against.
func (a *Animator) Tweens(g *Grid) []Tween {
	if !a.active {
		return nil
	}
	p := a.Progress()
	out := make([]Tween, 0, len(a.plan.Moves))
	for _, m := range a.plan.Moves {
		fr, fc := g.RowCol(m.From)
		tr, tc := g.RowCol(m.To)
		out = append(out, Tween{
			CellID: g.At(m.From).ID,
			From:   m.From,
			To:     m.To,
			Row:    core.Lerp(float64(fr), float64(tr), p),
			Col:    core.Lerp(float64(fc), float64(tc), p),
		})
	}
	return out
}
