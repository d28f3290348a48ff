package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"geartrain/internal/gear"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func ptr(f float64) *float64 { return &f }

func TestCheckTarget(t *testing.T) {
	tests := []struct {
		name    string
		overall float64
		target  *float64
		want    bool
	}{
		{"no target", 2, nil, false},
		{"exact", 2, ptr(2), true},
		{"inside tolerance", 2.09, ptr(2), true},
		{"on the boundary", 2.1, ptr(2), false},
		{"below", 1.5, ptr(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckTarget(tt.overall, tt.target))
		})
	}
}

func TestEvaluator_EdgeTriggered(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	e := NewEvaluator(3*time.Second, clock.Now)

	assert.False(t, e.Observe(false))
	assert.True(t, e.Observe(true))
	for i := 0; i < 5; i++ {
		assert.False(t, e.Observe(true), "must not re-fire while the goal stays met")
	}
	assert.False(t, e.Observe(false))
	assert.True(t, e.Observe(true), "re-arms after a false observation")
}

func TestEvaluator_DisplayAutoClears(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	e := NewEvaluator(3*time.Second, clock.Now)
	assert.False(t, e.Showing())

	e.ObserveRatio(0.5, true, ptr(0.5))
	assert.True(t, e.Showing())
	clock.Advance(2 * time.Second)
	assert.True(t, e.Showing())
	clock.Advance(2 * time.Second)
	assert.False(t, e.Showing())

	e.Reset()
	assert.False(t, e.Showing())
	assert.True(t, e.ObserveRatio(0.5, true, ptr(0.5)))
}

func TestEvaluator_EmptyChainIsNotMet(t *testing.T) {
	e := NewEvaluator(0, nil)
	assert.Equal(t, DefaultDisplay, e.Display)
	assert.False(t, e.ObserveRatio(0, false, ptr(0)))
}

func TestMeasure(t *testing.T) {
	gears := []gear.Gear{
		{ID: 1, Col: 0, Row: 0, Teeth: 12},
		{ID: 2, Col: 1, Row: 0, Teeth: 24},
		{ID: 3, Col: 2, Row: 0, Teeth: 10},
		{ID: 4, Col: 5, Row: 5, Teeth: 12},
	}
	c := gear.BuildChain(gears, 2, gear.DefaultGeometry)

	overall, ok := Measure(c, gear.NoGear)
	assert.True(t, ok)
	assert.InDelta(t, 2.4, overall, 1e-12)

	branch, ok := Measure(c, 1)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, branch, 1e-12)

	_, ok = Measure(c, 4)
	assert.False(t, ok)
}
