// Package goal checks a gear train against a target ratio and raises a one-shot
// success signal when the learner first reaches it.
package goal

import (
	"math"
	"time"

	"geartrain/internal/gear"
)

const (
	Tolerance      = 0.1
	DefaultDisplay = 3 * time.Second
)

// CheckTarget reports whether overall is within Tolerance of target. A nil target never
// matches.
func CheckTarget(overall float64, target *float64) bool {
	if target == nil {
		return false
	}
	return math.Abs(overall-*target) < Tolerance
}

// Measure picks the ratio compared with the target: the named gear's ratio when gearID
// is set, otherwise the chain's overall ratio. ok is false when the gear is not driven.
func Measure(c gear.Chain, gearID int) (ratio float64, ok bool) {
	if gearID == gear.NoGear {
		return c.OverallRatio()
	}
	e, ok := c.Get(gearID)
	return e.SpeedRatio, ok
}

// Evaluator is edge-triggered: it fires when the condition goes from false to true and
// does not fire again until it has seen false.
type Evaluator struct {
	Display time.Duration

	now      func() time.Time
	met      bool
	firedAt  time.Time
	hasFired bool
}

// NewEvaluator uses the wall clock; pass a clock in tests.
func NewEvaluator(display time.Duration, now func() time.Time) *Evaluator {
	if display <= 0 {
		display = DefaultDisplay
	}
	if now == nil {
		now = time.Now
	}
	return &Evaluator{Display: display, now: now}
}

// Observe records one frame's condition and returns true only on the rising edge.
func (e *Evaluator) Observe(met bool) bool {
	rising := met && !e.met
	e.met = met
	if rising {
		e.firedAt = e.now()
		e.hasFired = true
	}
	return rising
}

// ObserveRatio is Observe(CheckTarget(overall, target)); ok=false means there is no
// chain to measure and counts as not met.
func (e *Evaluator) ObserveRatio(overall float64, ok bool, target *float64) bool {
	return e.Observe(ok && CheckTarget(overall, target))
}

// Showing reports whether the success signal is still on display.
func (e *Evaluator) Showing() bool {
	return e.hasFired && e.now().Sub(e.firedAt) < e.Display
}

// Reset forgets the current state, e.g. when a new scenario is loaded.
func (e *Evaluator) Reset() {
	e.met = false
	e.hasFired = false
	e.firedAt = time.Time{}
}
