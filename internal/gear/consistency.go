package gear

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
)

const ratioTolerance = 1e-9

// Conflict is a meshed pair inside the chain whose entries disagree with the mesh
// between them, i.e. the layout closes a loop that would jam or slip.
type Conflict struct {
	A, B          int
	WantRatio     float64 // ratio of B implied by A across the mesh
	GotRatio      float64
	DirectionBad  bool
	RatioMismatch bool
}

func (c Conflict) String() string {
	switch {
	case c.DirectionBad && c.RatioMismatch:
		return fmt.Sprintf("gears %d-%d turn the same way and disagree on ratio (%.3f vs %.3f)", c.A, c.B, c.WantRatio, c.GotRatio)
	case c.DirectionBad:
		return fmt.Sprintf("gears %d-%d are meshed but turn the same way", c.A, c.B)
	default:
		return fmt.Sprintf("gears %d-%d disagree on ratio (%.3f vs %.3f)", c.A, c.B, c.WantRatio, c.GotRatio)
	}
}

// CheckConsistency re-derives every meshed pair inside the chain and reports those the
// breadth-first pass settled by first discovery. Tree edges always agree; only edges that
// close a cycle can conflict. The chain is not modified.
func CheckConsistency(gears []Gear, c Chain, geo Geometry) []Conflict {
	teeth := make(map[int]int, len(gears))
	for _, g := range gears {
		teeth[g.ID] = g.Teeth
	}
	var out []Conflict
	for _, p := range geo.MeshGraph(gears).Pairs() {
		a, okA := c.entries[p[0]]
		b, okB := c.entries[p[1]]
		if !okA || !okB {
			continue
		}
		want := a.SpeedRatio * float64(teeth[p[0]]) / float64(teeth[p[1]])
		conflict := Conflict{
			A:             p[0],
			B:             p[1],
			WantRatio:     want,
			GotRatio:      b.SpeedRatio,
			DirectionBad:  a.Direction == b.Direction,
			RatioMismatch: !scalar.EqualWithinAbsOrRel(want, b.SpeedRatio, ratioTolerance, ratioTolerance),
		}
		if conflict.DirectionBad || conflict.RatioMismatch {
			out = append(out, conflict)
		}
	}
	return out
}
