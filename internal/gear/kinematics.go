package gear

import "math"

// ComputeAngles returns the rotation of every chain gear for the given driver angle.
// Gears outside the chain are absent and do not rotate.
func ComputeAngles(c Chain, driverAngle float64) map[int]float64 {
	angles := make(map[int]float64, len(c.entries))
	for id, e := range c.entries {
		angles[id] = driverAngle * e.SpeedRatio * float64(e.Direction)
	}
	return angles
}

// OverallRatio is the speed ratio of the last gear dequeued. It names a single terminal
// gear only for unbranched trains; use LeafRatios when the chain branches.
func (c Chain) OverallRatio() (float64, bool) {
	if len(c.order) == 0 {
		return 0, false
	}
	return c.entries[c.order[len(c.order)-1]].SpeedRatio, true
}

// LeafRatios maps each leaf of the discovery tree to its speed ratio.
func (c Chain) LeafRatios() map[int]float64 {
	out := make(map[int]float64)
	for _, id := range c.Leaves() {
		out[id] = c.entries[id].SpeedRatio
	}
	return out
}

// NormalizeDegrees wraps a into [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
