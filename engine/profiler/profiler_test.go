package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerLogsOncePerInterval(t *testing.T) {
	logger, hook := test.NewNullLogger()
	now := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(logger),
		WithUpdateInterval(time.Second),
		WithClock(func() time.Time { return now }),
	)

	st := rig.State{
		Position:     mgl32.Vec3{0, 0, -10},
		VelocityMove: mgl32.Vec3{3, 0, 4},
		VelocityZoom: 2,
	}

	for range 19 {
		now = now.Add(time.Second / 20)
		assert.False(t, p.Tick(st))
	}
	now = now.Add(time.Second / 20)
	require.True(t, p.Tick(st))

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.InDelta(t, 20, entry.Data["tps"], 0.01)
	assert.InDelta(t, 5, entry.Data["pending_move"], 1e-5)
	assert.Equal(t, float32(2), entry.Data["pending_zoom"])
	assert.InDelta(t, 10, entry.Data["distance"], 1e-5)

	now = now.Add(time.Second / 2)
	assert.False(t, p.Tick(st), "counter restarts after logging")
}
