package workspace

import (
	"sort"

	"geartrain/internal/gear"
)

// Palette is assigned to new gears round-robin by id.
var Palette = []string{"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6", "#1abc9c", "#e67e22", "#34495e"}

// Options are the exercise's input props.
type Options struct {
	GearSizes   []int
	Cols        int
	Rows        int
	MinTeeth    int
	MaxTeeth    int
	MaxGears    int
	AllowAdd    bool
	AllowRemove bool
	Geometry    gear.Geometry
}

func DefaultOptions() Options {
	return Options{
		GearSizes:   []int{8, 12, 16, 20, 24, 30},
		Cols:        10,
		Rows:        6,
		MinTeeth:    6,
		MaxTeeth:    40,
		MaxGears:    8,
		AllowAdd:    true,
		AllowRemove: true,
		Geometry:    gear.DefaultGeometry,
	}
}

// Workspace owns the gear set and the driver selection. Gears are kept in ascending id
// order, which is also the order the chain builder examines them in.
type Workspace struct {
	opts     Options
	gears    []gear.Gear
	driverID int
	nextID   int
	chain    gear.Chain
}

// New seeds a workspace with pre-placed gears. Gears outside the grid, on an occupied
// cell, with a duplicate id, or beyond MaxGears are dropped; tooth counts are clamped.
// driverID wins if it names a kept gear, then the first gear flagged Driver, then the
// first gear.
func New(opts Options, initial []gear.Gear, driverID int) *Workspace {
	w := &Workspace{opts: opts, driverID: gear.NoGear, nextID: 1}

	seeded := append([]gear.Gear(nil), initial...)
	maxID := 0
	for _, g := range seeded {
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	for i := range seeded {
		if seeded[i].ID <= 0 {
			maxID++
			seeded[i].ID = maxID
		}
	}
	sort.SliceStable(seeded, func(i, j int) bool { return seeded[i].ID < seeded[j].ID })

	flagged := gear.NoGear
	for _, g := range seeded {
		if len(w.gears) >= opts.MaxGears && opts.MaxGears > 0 {
			break
		}
		if !w.inBounds(g.Col, g.Row) || w.GearAt(g.Col, g.Row) != nil || w.Gear(g.ID) != nil {
			continue
		}
		g.Teeth = w.clampTeeth(g.Teeth)
		if g.Color == "" {
			g.Color = colorFor(g.ID)
		}
		if g.Driver && flagged == gear.NoGear {
			flagged = g.ID
		}
		w.gears = append(w.gears, g)
		if g.ID >= w.nextID {
			w.nextID = g.ID + 1
		}
	}

	switch {
	case w.Gear(driverID) != nil:
		w.driverID = driverID
	case flagged != gear.NoGear:
		w.driverID = flagged
	case len(w.gears) > 0:
		w.driverID = w.gears[0].ID
	}
	w.refresh()
	return w
}

func (w *Workspace) Options() Options { return w.opts }

func (w *Workspace) Len() int { return len(w.gears) }

// Driver returns the driver id, or gear.NoGear.
func (w *Workspace) Driver() int { return w.driverID }

// Gears returns a copy of the gear set.
func (w *Workspace) Gears() []gear.Gear {
	return append([]gear.Gear(nil), w.gears...)
}

func (w *Workspace) Gear(id int) *gear.Gear {
	for i := range w.gears {
		if w.gears[i].ID == id {
			g := w.gears[i]
			return &g
		}
	}
	return nil
}

func (w *Workspace) GearAt(col, row int) *gear.Gear {
	for i := range w.gears {
		if w.gears[i].Col == col && w.gears[i].Row == row {
			g := w.gears[i]
			return &g
		}
	}
	return nil
}

// Chain reflects the latest gear set and driver.
func (w *Workspace) Chain() gear.Chain { return w.chain }

func (w *Workspace) MeshGraph() *gear.MeshGraph {
	return w.opts.Geometry.MeshGraph(w.gears)
}

// Place adds a gear at the cell. The first gear placed on an empty workspace drives.
func (w *Workspace) Place(col, row, teeth int) (gear.Gear, error) {
	switch {
	case !w.opts.AllowAdd:
		return gear.Gear{}, ErrAddDisabled
	case !w.inBounds(col, row):
		return gear.Gear{}, ErrOutOfBounds
	case w.opts.MaxGears > 0 && len(w.gears) >= w.opts.MaxGears:
		return gear.Gear{}, ErrMaxGears
	case w.GearAt(col, row) != nil:
		return gear.Gear{}, ErrOccupied
	}

	g := gear.Gear{
		ID:    w.nextID,
		Col:   col,
		Row:   row,
		Teeth: w.clampTeeth(teeth),
		Color: colorFor(w.nextID),
	}
	w.nextID++
	if w.driverID == gear.NoGear {
		w.driverID = g.ID
	}
	w.gears = append(w.gears, g)
	w.refresh()
	return *w.Gear(g.ID), nil
}

// Remove deletes a gear and reports what was removed. Unknown ids and disabled removal
// are no-ops. Removing the driver hands the role to the first remaining gear.
func (w *Workspace) Remove(id int) (gear.Gear, bool) {
	if !w.opts.AllowRemove {
		return gear.Gear{}, false
	}
	return w.Unplace(id)
}

// Unplace is Remove without the AllowRemove check, for taking back a placement.
func (w *Workspace) Unplace(id int) (gear.Gear, bool) {
	idx := w.index(id)
	if idx < 0 {
		return gear.Gear{}, false
	}
	removed := w.gears[idx]
	w.gears = append(w.gears[:idx], w.gears[idx+1:]...)
	if w.driverID == id {
		w.driverID = gear.NoGear
		if len(w.gears) > 0 {
			w.driverID = w.gears[0].ID
		}
	}
	w.refresh()
	return removed, true
}

// SetDriver makes id the driver. Unknown ids are a no-op.
func (w *Workspace) SetDriver(id int) bool {
	if w.index(id) < 0 {
		return false
	}
	w.driverID = id
	w.refresh()
	return true
}

// Restore puts back a gear removed earlier, keeping its id. It bypasses AllowAdd and
// MaxGears so undo always succeeds, but still refuses an occupied or foreign cell.
func (w *Workspace) Restore(g gear.Gear) error {
	if !w.inBounds(g.Col, g.Row) {
		return ErrOutOfBounds
	}
	if w.GearAt(g.Col, g.Row) != nil || w.index(g.ID) >= 0 {
		return ErrOccupied
	}
	idx := sort.Search(len(w.gears), func(i int) bool { return w.gears[i].ID > g.ID })
	w.gears = append(w.gears, gear.Gear{})
	copy(w.gears[idx+1:], w.gears[idx:])
	w.gears[idx] = g
	if g.ID >= w.nextID {
		w.nextID = g.ID + 1
	}
	if g.Driver || w.driverID == gear.NoGear {
		w.driverID = g.ID
	}
	w.refresh()
	return nil
}

// refresh re-flags the driver and rebuilds the chain; every mutation ends here.
func (w *Workspace) refresh() {
	for i := range w.gears {
		w.gears[i].Driver = w.gears[i].ID == w.driverID
	}
	w.chain = gear.BuildChain(w.gears, w.driverID, w.opts.Geometry)
}

func (w *Workspace) index(id int) int {
	for i := range w.gears {
		if w.gears[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < w.opts.Cols && row < w.opts.Rows
}

// clampTeeth never returns less than one tooth; a toothless gear has no speed ratio.
func (w *Workspace) clampTeeth(teeth int) int {
	floor := max(w.opts.MinTeeth, 1)
	if teeth < floor {
		return floor
	}
	if w.opts.MaxTeeth > 0 && teeth > w.opts.MaxTeeth {
		return w.opts.MaxTeeth
	}
	return teeth
}

func colorFor(id int) string {
	if id < 0 {
		id = -id
	}
	return Palette[id%len(Palette)]
}
