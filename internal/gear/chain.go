package gear

// Entry is the derived motion of one gear relative to the driver.
type Entry struct {
	SpeedRatio float64
	Direction  int // +1 same sense as the driver, -1 opposite
	Hops       int
	Parent     int // gear this entry was discovered from; NoGear for the driver
}

// Chain is the set of gears reachable from the driver.
type Chain struct {
	entries map[int]Entry
	order   []int
}

type pending struct {
	id    int
	entry Entry
}

// BuildChain walks the mesh relation breadth-first from driverID.
//
// An entry is finalized when its gear is dequeued, not when it is enqueued, so a gear
// offered by several frontier gears keeps the entry that reached the head of the queue
// first (fewest hops, then earliest frontier gear, then gear slice order). Visited gears
// are never expanded again, which keeps cyclic layouts finite; whether the paths around a
// cycle agree is left to CheckConsistency.
func BuildChain(gears []Gear, driverID int, geo Geometry) Chain {
	c := Chain{entries: make(map[int]Entry)}
	if driverID == NoGear {
		return c
	}
	byID := make(map[int]Gear, len(gears))
	for _, g := range gears {
		byID[g.ID] = g
	}
	if _, ok := byID[driverID]; !ok {
		return c
	}

	queue := []pending{{id: driverID, entry: Entry{SpeedRatio: 1, Direction: 1, Parent: NoGear}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := c.entries[cur.id]; seen {
			continue
		}
		c.entries[cur.id] = cur.entry
		c.order = append(c.order, cur.id)

		from := byID[cur.id]
		for _, next := range gears {
			if _, seen := c.entries[next.ID]; seen {
				continue
			}
			if !geo.Meshed(from, next) {
				continue
			}
			queue = append(queue, pending{id: next.ID, entry: Entry{
				SpeedRatio: cur.entry.SpeedRatio * float64(from.Teeth) / float64(next.Teeth),
				Direction:  -cur.entry.Direction,
				Hops:       cur.entry.Hops + 1,
				Parent:     from.ID,
			}})
		}
	}
	return c
}

func (c Chain) Get(id int) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

func (c Chain) Len() int { return len(c.order) }

// Order returns gear ids in dequeue order; the driver is first.
func (c Chain) Order() []int {
	return append([]int(nil), c.order...)
}

// Entries returns a copy of the chain keyed by gear id.
func (c Chain) Entries() map[int]Entry {
	out := make(map[int]Entry, len(c.entries))
	for id, e := range c.entries {
		out[id] = e
	}
	return out
}

// Leaves returns the gears no other chain entry was discovered from, in dequeue order.
// A driver with no meshed neighbour is its own leaf.
func (c Chain) Leaves() []int {
	parents := make(map[int]bool, len(c.entries))
	for _, e := range c.entries {
		if e.Parent != NoGear {
			parents[e.Parent] = true
		}
	}
	var leaves []int
	for _, id := range c.order {
		if !parents[id] {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// Path returns the discovery path from the driver to id, driver first.
func (c Chain) Path(id int) []int {
	e, ok := c.entries[id]
	if !ok {
		return nil
	}
	path := []int{id}
	for e.Parent != NoGear {
		path = append([]int{e.Parent}, path...)
		e = c.entries[e.Parent]
	}
	return path
}
