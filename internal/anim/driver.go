// Package anim drives the driver gear's angle, either from explicit user input or one
// fixed step per display frame.
package anim

import "geartrain/internal/gear"

type State int

const (
	Idle State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

const (
	DefaultStep = 2.0  // degrees per frame
	ManualStep  = 45.0 // degrees per rotate button
)

// Driver holds the driver angle and the play state.
//
// Every transition out of Playing bumps the generation. Frame callbacks are tagged
// with the generation current when they were scheduled, so a callback that was already
// in flight when playback stopped is ignored.
type Driver struct {
	angle float64
	step  float64
	state State
	gen   uint64
}

func NewDriver(step float64) *Driver {
	if step == 0 {
		step = DefaultStep
	}
	return &Driver{step: step}
}

func (d *Driver) Angle() float64 { return d.angle }
func (d *Driver) State() State { return d.state }
func (d *Driver) Playing() bool { return d.state == Playing }
func (d *Driver) Generation() uint64 { return d.gen }
func (d *Driver) Step() float64 { return d.step }

// SetAngle sets the angle directly, as a slider does.
func (d *Driver) SetAngle(a float64) { d.angle = a }

// RotateBy turns the driver by delta degrees without wrapping.
func (d *Driver) RotateBy(delta float64) { d.angle += delta }

// Play enters Playing and returns the generation the first frame must carry. started
// is false when already playing; the caller must not schedule a second frame loop.
func (d *Driver) Play() (gen uint64, started bool) {
	if d.state == Playing {
		return d.gen, false
	}
	d.gen++
	d.state = Playing
	return d.gen, true
}

// Stop returns to Idle. Calling it while idle is a no-op.
func (d *Driver) Stop() {
	if d.state != Playing {
		return
	}
	d.gen++
	d.state = Idle
}

// Toggle flips between Idle and Playing and reports whether a frame loop must be
// scheduled with the returned generation.
func (d *Driver) Toggle() (gen uint64, schedule bool) {
	if d.state == Playing {
		d.Stop()
		return d.gen, false
	}
	return d.Play()
}

// Frame advances one step if gen is current and the driver is playing. The result
// tells the host whether to schedule the next frame.
func (d *Driver) Frame(gen uint64) bool {
	if d.state != Playing || gen != d.gen {
		return false
	}
	d.angle = gear.NormalizeDegrees(d.angle + d.step)
	return true
}
