package gear

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Tolerance band around exact tangency. Snapped placement rarely lands on r1+r2.
const (
	meshLow  = 0.8
	meshHigh = 1.2
)

// Meshed reports whether the teeth of a and b interlock. Self pairs never mesh.
func (geo Geometry) Meshed(a, b Gear) bool {
	if a.ID == b.ID {
		return false
	}
	meshDistance := geo.Radius(a.Teeth) + geo.Radius(b.Teeth)
	d := geo.Distance(a, b)
	return d >= meshLow*meshDistance && d <= meshHigh*meshDistance
}

// MeshGraph is the mesh relation of one gear set, keyed by gear id.
// It is a snapshot: rebuild it whenever the gear set changes.
type MeshGraph struct {
	g *simple.UndirectedGraph
}

// MeshGraph tests every pair once, O(N²).
func (geo Geometry) MeshGraph(gears []Gear) *MeshGraph {
	g := simple.NewUndirectedGraph()
	for _, gr := range gears {
		if g.Node(int64(gr.ID)) == nil {
			g.AddNode(simple.Node(gr.ID))
		}
	}
	for i := 0; i < len(gears); i++ {
		for j := i + 1; j < len(gears); j++ {
			if geo.Meshed(gears[i], gears[j]) {
				g.SetEdge(simple.Edge{F: simple.Node(gears[i].ID), T: simple.Node(gears[j].ID)})
			}
		}
	}
	return &MeshGraph{g: g}
}

// Meshed reports whether the two ids are adjacent.
func (m *MeshGraph) Meshed(a, b int) bool {
	if a == b {
		return false
	}
	return m.g.HasEdgeBetween(int64(a), int64(b))
}

// Neighbors returns the ids meshed with id, ascending.
func (m *MeshGraph) Neighbors(id int) []int {
	if m.g.Node(int64(id)) == nil {
		return nil
	}
	return sortedIDs(graph.NodesOf(m.g.From(int64(id))))
}

// Pairs returns every meshed pair once with the lower id first, ordered.
func (m *MeshGraph) Pairs() [][2]int {
	var pairs [][2]int
	for _, n := range sortedIDs(graph.NodesOf(m.g.Nodes())) {
		for _, o := range m.Neighbors(n) {
			if n < o {
				pairs = append(pairs, [2]int{n, o})
			}
		}
	}
	return pairs
}

// Components groups gears into mesh islands. Each island and the island list are
// ordered by smallest id so reports are stable.
func (m *MeshGraph) Components() [][]int {
	cc := topo.ConnectedComponents(m.g)
	out := make([][]int, 0, len(cc))
	for _, c := range cc {
		out = append(out, sortedIDs(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func sortedIDs(nodes []graph.Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = int(n.ID())
	}
	sort.Ints(ids)
	return ids
}
