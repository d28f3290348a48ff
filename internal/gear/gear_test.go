package gear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 8/16 neighbours mesh on adjacent cells, 8/8 two cells apart do not.
var lineGeometry = Geometry{CellSize: 40, ToothSize: 3.5}

func diamond() []Gear {
	return []Gear{
		{ID: 1, Col: 0, Row: 0, Teeth: 12, Driver: true},
		{ID: 2, Col: 1, Row: 0, Teeth: 16},
		{ID: 3, Col: 0, Row: 1, Teeth: 16},
		{ID: 4, Col: 1, Row: 1, Teeth: 12},
	}
}

func TestRadius_DerivedFromTeeth(t *testing.T) {
	assert.Equal(t, 24.0, DefaultGeometry.Radius(12))
	assert.Equal(t, 14.0, lineGeometry.Radius(8))
}

func TestCenter_HalfCellOffset(t *testing.T) {
	x, y := DefaultGeometry.Center(Gear{Col: 2, Row: 1})
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 90.0, y)
}

func TestMeshed(t *testing.T) {
	tests := []struct {
		name string
		a, b Gear
		geo  Geometry
		want bool
	}{
		{"adjacent 12/24", Gear{ID: 1, Teeth: 12}, Gear{ID: 2, Col: 1, Teeth: 24}, DefaultGeometry, true},
		{"too far", Gear{ID: 1, Teeth: 12}, Gear{ID: 2, Col: 3, Teeth: 24}, DefaultGeometry, false},
		{"too close for big gears", Gear{ID: 1, Teeth: 30}, Gear{ID: 2, Col: 1, Teeth: 30}, DefaultGeometry, false},
		{"diagonal 24/24", Gear{ID: 1, Teeth: 24}, Gear{ID: 2, Col: 1, Row: 1, Teeth: 24}, DefaultGeometry, true},
		{"same id", Gear{ID: 1, Teeth: 12}, Gear{ID: 1, Col: 1, Teeth: 24}, DefaultGeometry, false},
		{"adjacent 8/16", Gear{ID: 1, Teeth: 8}, Gear{ID: 2, Col: 1, Teeth: 16}, lineGeometry, true},
		{"8/8 two cells apart", Gear{ID: 1, Teeth: 8}, Gear{ID: 2, Col: 2, Teeth: 8}, lineGeometry, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.geo.Meshed(tt.a, tt.b))
		})
	}
}

func TestMeshed_Symmetric(t *testing.T) {
	sizes := []int{8, 12, 16, 20, 24, 30}
	for _, ta := range sizes {
		for _, tb := range sizes {
			for col := 0; col < 4; col++ {
				for row := 0; row < 4; row++ {
					a := Gear{ID: 1, Teeth: ta}
					b := Gear{ID: 2, Col: col, Row: row, Teeth: tb}
					assert.Equal(t, DefaultGeometry.Meshed(a, b), DefaultGeometry.Meshed(b, a),
						"teeth %d/%d at (%d,%d)", ta, tb, col, row)
				}
			}
		}
	}
}

func TestMeshGraph(t *testing.T) {
	gears := append(diamond(), Gear{ID: 5, Col: 4, Row: 4, Teeth: 12})
	mg := DefaultGeometry.MeshGraph(gears)

	assert.Equal(t, []int{2, 3}, mg.Neighbors(1))
	assert.Equal(t, []int{1, 4}, mg.Neighbors(2))
	assert.Empty(t, mg.Neighbors(5))
	assert.Nil(t, mg.Neighbors(99))
	assert.True(t, mg.Meshed(4, 3))
	assert.False(t, mg.Meshed(2, 3))
	assert.False(t, mg.Meshed(1, 1))
	assert.Equal(t, [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}}, mg.Pairs())
	assert.Equal(t, [][]int{{1, 2, 3, 4}, {5}}, mg.Components())
}

func TestBuildChain_TwoGears(t *testing.T) {
	gears := []Gear{
		{ID: 1, Col: 0, Row: 0, Teeth: 12, Driver: true},
		{ID: 2, Col: 1, Row: 0, Teeth: 24},
	}
	c := BuildChain(gears, 1, DefaultGeometry)
	require.Equal(t, 2, c.Len())

	d, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1.0, d.SpeedRatio)
	assert.Equal(t, 1, d.Direction)
	assert.Equal(t, NoGear, d.Parent)

	n, ok := c.Get(2)
	require.True(t, ok)
	assert.InDelta(t, 0.5, n.SpeedRatio, 1e-12)
	assert.Equal(t, -1, n.Direction)

	angles := ComputeAngles(c, 90)
	assert.InDelta(t, 90, angles[1], 1e-12)
	assert.InDelta(t, -45, angles[2], 1e-12)
}

func TestBuildChain_ThreeInLine(t *testing.T) {
	gears := []Gear{
		{ID: 1, Col: 0, Row: 0, Teeth: 8, Driver: true},
		{ID: 2, Col: 1, Row: 0, Teeth: 16},
		{ID: 3, Col: 2, Row: 0, Teeth: 8},
	}
	c := BuildChain(gears, 1, lineGeometry)
	require.Equal(t, []int{1, 2, 3}, c.Order())

	last, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, 1, last.Direction)
	assert.InDelta(t, 1.0, last.SpeedRatio, 1e-12)
	assert.Equal(t, 2, last.Hops)
	assert.Equal(t, []int{1, 2, 3}, c.Path(3))

	overall, ok := c.OverallRatio()
	require.True(t, ok)
	assert.InDelta(t, 1.0, overall, 1e-12)
}

func TestBuildChain_NoDriver(t *testing.T) {
	gears := diamond()
	for _, id := range []int{NoGear, 42} {
		c := BuildChain(gears, id, DefaultGeometry)
		assert.Zero(t, c.Len())
		assert.Empty(t, c.Entries())
		assert.Empty(t, ComputeAngles(c, 90))
		_, ok := c.OverallRatio()
		assert.False(t, ok)
	}
}

func TestBuildChain_Isolation(t *testing.T) {
	gears := append(diamond(), Gear{ID: 5, Col: 4, Row: 4, Teeth: 12})
	c := BuildChain(gears, 1, DefaultGeometry)
	_, ok := c.Get(5)
	assert.False(t, ok)
	assert.NotContains(t, ComputeAngles(c, 30), 5)

	lone := BuildChain(gears, 5, DefaultGeometry)
	assert.Equal(t, []int{5}, lone.Order())
	assert.Equal(t, []int{5}, lone.Leaves())
}

func TestBuildChain_FirstDiscoveryWins(t *testing.T) {
	c := BuildChain(diamond(), 1, DefaultGeometry)
	require.Equal(t, []int{1, 2, 3, 4}, c.Order())

	far, ok := c.Get(4)
	require.True(t, ok)
	assert.Equal(t, 2, far.Parent, "gear 2 is dequeued before gear 3")
	assert.Equal(t, 2, far.Hops)
	assert.Equal(t, []int{3, 4}, c.Leaves())
	assert.InDelta(t, 0.75, c.LeafRatios()[3], 1e-12)
	assert.InDelta(t, 1.0, c.LeafRatios()[4], 1e-12)
}

func TestBuildChain_Properties(t *testing.T) {
	gears := append(diamond(),
		Gear{ID: 5, Col: 2, Row: 0, Teeth: 12},
		Gear{ID: 6, Col: 3, Row: 0, Teeth: 20},
	)
	teeth := map[int]int{}
	for _, g := range gears {
		teeth[g.ID] = g.Teeth
	}
	for _, g := range gears {
		c := BuildChain(gears, g.ID, DefaultGeometry)
		d, ok := c.Get(g.ID)
		require.True(t, ok)
		assert.Equal(t, Entry{SpeedRatio: 1, Direction: 1, Parent: NoGear}, d)

		for id, e := range c.Entries() {
			if e.Parent == NoGear {
				continue
			}
			p, ok := c.Get(e.Parent)
			require.True(t, ok)
			assert.Equal(t, -p.Direction, e.Direction)
			assert.InDelta(t, p.SpeedRatio*float64(teeth[e.Parent])/float64(teeth[id]), e.SpeedRatio, 1e-12)
		}
	}
}

func TestComputeAngles_Idempotent(t *testing.T) {
	c := BuildChain(diamond(), 1, DefaultGeometry)
	assert.Equal(t, ComputeAngles(c, 137.5), ComputeAngles(c, 137.5))
}

func TestCheckConsistency(t *testing.T) {
	t.Run("even loop agrees", func(t *testing.T) {
		gears := diamond()
		assert.Empty(t, CheckConsistency(gears, BuildChain(gears, 1, DefaultGeometry), DefaultGeometry))
	})

	t.Run("odd loop jams", func(t *testing.T) {
		gears := []Gear{
			{ID: 1, Col: 0, Row: 0, Teeth: 12},
			{ID: 2, Col: 1, Row: 0, Teeth: 24},
			{ID: 3, Col: 0, Row: 1, Teeth: 24},
		}
		c := BuildChain(gears, 1, DefaultGeometry)
		require.Equal(t, 3, c.Len())

		conflicts := CheckConsistency(gears, c, DefaultGeometry)
		require.Len(t, conflicts, 1)
		assert.Equal(t, 2, conflicts[0].A)
		assert.Equal(t, 3, conflicts[0].B)
		assert.True(t, conflicts[0].DirectionBad)
		assert.False(t, conflicts[0].RatioMismatch)
		assert.Contains(t, conflicts[0].String(), "turn the same way")
	})

	t.Run("pairs outside the chain are ignored", func(t *testing.T) {
		gears := diamond()
		assert.Empty(t, CheckConsistency(gears, BuildChain(gears, NoGear, DefaultGeometry), DefaultGeometry))
	})
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 315.0, NormalizeDegrees(-45))
	assert.Equal(t, 90.0, NormalizeDegrees(450))
}
