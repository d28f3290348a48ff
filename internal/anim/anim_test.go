package anim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDriver_ManualInput(t *testing.T) {
	d := NewDriver(0)
	assert.Equal(t, DefaultStep, d.Step())
	assert.Equal(t, Idle, d.State())

	d.RotateBy(ManualStep)
	d.RotateBy(ManualStep)
	assert.Equal(t, 90.0, d.Angle())

	d.SetAngle(400)
	assert.Equal(t, 400.0, d.Angle(), "manual input is not wrapped")
}

func TestDriver_FramesOnlyWhilePlaying(t *testing.T) {
	d := NewDriver(2)
	assert.False(t, d.Frame(d.Generation()))
	assert.Equal(t, 0.0, d.Angle())

	gen, started := d.Play()
	require.True(t, started)
	assert.True(t, d.Frame(gen))
	assert.True(t, d.Frame(gen))
	assert.Equal(t, 4.0, d.Angle())

	again, started := d.Play()
	assert.False(t, started)
	assert.Equal(t, gen, again)
}

func TestDriver_WrapsWhilePlaying(t *testing.T) {
	d := NewDriver(5)
	d.SetAngle(358)
	gen, _ := d.Play()
	d.Frame(gen)
	assert.Equal(t, 3.0, d.Angle())
}

func TestDriver_StopCancelsInFlightFrame(t *testing.T) {
	d := NewDriver(2)
	gen, _ := d.Play()
	d.Stop()
	d.Stop()
	assert.Equal(t, Idle, d.State())
	assert.False(t, d.Frame(gen))
	assert.Equal(t, 0.0, d.Angle())

	// A frame scheduled by an earlier play session stays dead after resuming.
	next, started := d.Play()
	require.True(t, started)
	assert.NotEqual(t, gen, next)
	assert.False(t, d.Frame(gen))
	assert.True(t, d.Frame(next))
}

func TestDriver_Toggle(t *testing.T) {
	d := NewDriver(2)
	gen, schedule := d.Toggle()
	assert.True(t, schedule)
	assert.True(t, d.Playing())

	_, schedule = d.Toggle()
	assert.False(t, schedule)
	assert.False(t, d.Playing())
	assert.False(t, d.Frame(gen))
	assert.Equal(t, "idle", d.State().String())
}

func TestLoop_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	frames := make(chan float64, 64)
	d := NewDriver(10)
	l := NewLoop(d, time.Millisecond, func(a float64) {
		select {
		case frames <- a:
		default:
		}
	})

	l.Start(context.Background())
	l.Start(context.Background())
	assert.True(t, l.Running())

	for i := 0; i < 3; i++ {
		select {
		case <-frames:
		case <-time.After(2 * time.Second):
			t.Fatal("no frame scheduled")
		}
	}

	l.Stop()
	l.Stop()
	assert.False(t, l.Running())
	assert.Equal(t, Idle, d.State())

	stopped := l.Angle()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, l.Angle())
}

func TestLoop_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := NewDriver(1)
	l := NewLoop(d, time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	l.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool { return !l.Running() }, 2*time.Second, time.Millisecond)
	l.Stop()
	assert.False(t, d.Playing())
}
