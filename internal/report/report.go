// Package report summarises a workspace's gear train for the eval command, the
// clipboard and text snapshots.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"geartrain/internal/gear"
	"geartrain/internal/goal"
	"geartrain/internal/workspace"
)

type GearLine struct {
	ID         int     `json:"id"`
	Col        int     `json:"col"`
	Row        int     `json:"row"`
	Teeth      int     `json:"teeth"`
	Driver     bool    `json:"driver,omitempty"`
	InChain    bool    `json:"in_chain"`
	SpeedRatio float64 `json:"speed_ratio,omitempty"`
	Direction  int     `json:"direction,omitempty"`
	Hops       int     `json:"hops,omitempty"`
	Angle      float64 `json:"angle,omitempty"`
}

type Leaf struct {
	ID         int     `json:"id"`
	SpeedRatio float64 `json:"speed_ratio"`
	Path       []int   `json:"path"`
}

type Report struct {
	Name        string     `json:"name,omitempty"`
	Driver      int        `json:"driver"`
	DriverAngle float64    `json:"driver_angle"`
	Gears       []GearLine `json:"gears"`
	Overall     *float64   `json:"overall_ratio,omitempty"`
	Leaves      []Leaf     `json:"leaves,omitempty"`
	Target      *float64   `json:"target_ratio,omitempty"`
	TargetGear  *int       `json:"target_gear,omitempty"`
	TargetMet   bool       `json:"target_met"`
	Conflicts   []string   `json:"conflicts,omitempty"`
	Islands     [][]int    `json:"islands,omitempty"`
}

// Build evaluates the workspace at the given driver angle. targetGear selects the gear
// checked against target; gear.NoGear checks the overall ratio.
func Build(name string, w *workspace.Workspace, driverAngle float64, target *float64, targetGear int) Report {
	chain := w.Chain()
	angles := gear.ComputeAngles(chain, driverAngle)
	gears := w.Gears()

	r := Report{
		Name:        name,
		Driver:      w.Driver(),
		DriverAngle: driverAngle,
		Target:      target,
	}
	for _, g := range gears {
		line := GearLine{ID: g.ID, Col: g.Col, Row: g.Row, Teeth: g.Teeth, Driver: g.Driver}
		if e, ok := chain.Get(g.ID); ok {
			line.InChain = true
			line.SpeedRatio = e.SpeedRatio
			line.Direction = e.Direction
			line.Hops = e.Hops
			line.Angle = angles[g.ID]
		}
		r.Gears = append(r.Gears, line)
	}
	if overall, ok := chain.OverallRatio(); ok {
		r.Overall = &overall
	}
	if targetGear != gear.NoGear {
		r.TargetGear = &targetGear
	}
	if measured, ok := goal.Measure(chain, targetGear); ok {
		r.TargetMet = goal.CheckTarget(measured, target)
	}
	for _, id := range chain.Leaves() {
		e, _ := chain.Get(id)
		r.Leaves = append(r.Leaves, Leaf{ID: id, SpeedRatio: e.SpeedRatio, Path: chain.Path(id)})
	}
	for _, c := range gear.CheckConsistency(gears, chain, w.Options().Geometry) {
		r.Conflicts = append(r.Conflicts, c.String())
	}
	if islands := w.MeshGraph().Components(); len(islands) > 1 {
		r.Islands = islands
	}
	return r
}

func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Text is the human-readable form, also used for the clipboard.
func (r Report) Text() string {
	var b strings.Builder
	if r.Name != "" {
		fmt.Fprintf(&b, "%s\n", r.Name)
	}
	if r.Driver == gear.NoGear {
		b.WriteString("driver: none\n")
	} else {
		fmt.Fprintf(&b, "driver: gear %d at %.1f°\n", r.Driver, r.DriverAngle)
	}
	for _, g := range r.Gears {
		role := "     "
		if g.Driver {
			role = "drive"
		}
		if !g.InChain {
			fmt.Fprintf(&b, "  %s #%-3d (%d,%d) %3dt  idle\n", role, g.ID, g.Col, g.Row, g.Teeth)
			continue
		}
		dir := "cw "
		if g.Direction < 0 {
			dir = "ccw"
		}
		fmt.Fprintf(&b, "  %s #%-3d (%d,%d) %3dt  x%-7.3f %s %8.1f°\n", role, g.ID, g.Col, g.Row, g.Teeth, g.SpeedRatio, dir, g.Angle)
	}
	if r.Overall != nil {
		fmt.Fprintf(&b, "overall ratio: %.3f\n", *r.Overall)
	} else {
		b.WriteString("overall ratio: -\n")
	}
	if len(r.Leaves) > 1 {
		b.WriteString("branches:\n")
		for _, l := range r.Leaves {
			fmt.Fprintf(&b, "  #%d x%.3f via %s\n", l.ID, l.SpeedRatio, joinIDs(l.Path, ">"))
		}
	}
	if r.Target != nil {
		status := "not yet"
		if r.TargetMet {
			status = "met"
		}
		if r.TargetGear != nil {
			fmt.Fprintf(&b, "target ratio at gear %d: %.3f (%s)\n", *r.TargetGear, *r.Target, status)
		} else {
			fmt.Fprintf(&b, "target ratio: %.3f (%s)\n", *r.Target, status)
		}
	}
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "conflict: %s\n", c)
	}
	if len(r.Islands) > 0 {
		parts := make([]string, len(r.Islands))
		for i, isl := range r.Islands {
			parts[i] = "{" + joinIDs(isl, ",") + "}"
		}
		fmt.Fprintf(&b, "mesh islands: %s\n", strings.Join(parts, " "))
	}
	return b.String()
}

func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, sep)
}
