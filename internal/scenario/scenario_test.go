package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geartrain/internal/gear"
)

func TestLoad(t *testing.T) {
	s, err := Load("testdata/double_speed.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Double the speed", s.Name)
	assert.Equal(t, []int{12, 24}, s.GearSizes)
	require.NotNil(t, s.TargetRatio)
	assert.Equal(t, 2.0, *s.TargetRatio)
	assert.Equal(t, "neon", s.Theme)
	assert.True(t, s.Display.ShowTeeth())
	assert.True(t, s.Display.ShowRatio())
	assert.True(t, s.Display.ShowDirection())

	opts := s.Options(8)
	assert.Equal(t, 6, opts.Cols)
	assert.Equal(t, 4, opts.Rows)
	assert.Equal(t, 3, opts.MaxGears)
	assert.Equal(t, 8, opts.MinTeeth)
	assert.True(t, opts.AllowAdd)
	assert.False(t, opts.AllowRemove)
	assert.Equal(t, gear.DefaultGeometry, opts.Geometry)

	w := s.Workspace(8)
	assert.Equal(t, 2, w.Driver())
	overall, ok := w.Chain().OverallRatio()
	require.True(t, ok)
	assert.InDelta(t, 2.0, overall, 1e-12)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	w := s.Workspace(0)
	assert.Zero(t, w.Len())
	assert.Equal(t, gear.NoGear, w.Driver())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"negative target", "target_ratio: -1", ErrBadTarget},
		{"zero gear size", "gear_sizes: [12, 0]", ErrBadGearSize},
		{"empty grid", "grid: {cols: 0, rows: 3}", ErrBadGrid},
		{"flat geometry", "geometry: {cell_size: 40, tooth_size: 0}", ErrBadGeometry},
		{"toothless minimum", "teeth: {min: 0, max: 40}", ErrBadTeeth},
		{"negative minimum", "teeth: {min: -4, max: 40}", ErrBadTeeth},
		{"inverted teeth range", "teeth: {min: 20, max: 10}", ErrBadTeeth},
		{"missing teeth max", "teeth: {min: 8}", ErrBadTeeth},
		{"negative gear teeth", "gears: [{id: 1, col: 0, row: 0, teeth: -12}]", ErrBadGearSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("gear_count: 3"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestWorkspace_OmittedTeethUseMinimum(t *testing.T) {
	s, err := Parse([]byte(`
teeth: {min: 12, max: 40}
gears:
  - {id: 1, col: 1, row: 0, teeth: 24, driver: true}
  - {id: 2, col: 0, row: 0}
`))
	require.NoError(t, err)

	w := s.Workspace(0)
	assert.Equal(t, 12, w.Gear(2).Teeth)
	overall, ok := w.Chain().OverallRatio()
	require.True(t, ok)
	assert.InDelta(t, 2.0, overall, 1e-12)
}

func TestWorkspace_UsesConfiguredCap(t *testing.T) {
	s, err := Parse([]byte("gears: [{col: 0, row: 0, teeth: 12}]"))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Options(5).MaxGears)
	assert.Equal(t, 8, s.Options(0).MaxGears)

	w := s.Workspace(0)
	require.Equal(t, 1, w.Len())
	assert.Equal(t, w.Gears()[0].ID, w.Driver())
}
