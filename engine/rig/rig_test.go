package rig

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60)

type fakeTransform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	writes   int
}

func (t *fakeTransform) Position() mgl32.Vec3 { return t.position }
func (t *fakeTransform) Rotation() mgl32.Quat { return t.rotation }
func (t *fakeTransform) SetPositionAndRotation(p mgl32.Vec3, q mgl32.Quat) {
	t.position, t.rotation = p, q
	t.writes++
}

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

// groundRig looks down 45 degrees at the origin from (0, 10, -10) over a ground plane.
func groundRig(t *testing.T, boundary common.Polygon) (Rig, *fakeTransform) {
	t.Helper()
	tr := &fakeTransform{
		position: mgl32.Vec3{0, 10, -10},
		rotation: common.EulerToQuat(45, 0, 0),
	}
	r := NewRig(
		WithTransform(tr),
		WithPlane(common.NewPlane(mgl32.Vec3{}, mgl32.QuatIdent())),
		WithBoundary(boundary),
		WithLogger(quietLogger()),
	)
	r.Initialize()
	return r, tr
}

// axisRig sits at (0, 0, -10) looking along +Z at the origin, with no plane.
func axisRig(options ...RigOption) Rig {
	opts := append([]RigOption{
		WithInitFromTransform(false),
		WithPose(mgl32.Vec3{0, 0, -10}, mgl32.QuatIdent()),
		WithLogger(quietLogger()),
	}, options...)
	r := NewRig(opts...)
	r.Initialize()
	return r
}

func idle(r Rig, ticks int) {
	for range ticks {
		r.Tick(input.Idle(), frame)
	}
}

func TestNewRigDefaults(t *testing.T) {
	r := NewRig(WithLogger(quietLogger()))
	st := r.State()

	assert.Equal(t, mgl32.QuatIdent(), st.Rotation)
	assert.True(t, st.HeightResetting)
	assert.False(t, st.Interacting)
	assert.Equal(t, DefaultSensitivity(), r.SaveSensitivity())
	assert.Equal(t, DefaultLimit(), r.SaveLimit())
	assert.Equal(t, common.DefaultBoundary(), r.Boundary())
	assert.Nil(t, r.Plane())
}

func TestInitializeSeedsCenterFromPlane(t *testing.T) {
	r, _ := groundRig(t, common.DefaultBoundary())
	assertVec3InDelta(t, mgl32.Vec3{0, 10, -10}, r.Position(), 1e-5)
	assertVec3InDelta(t, mgl32.Vec3{}, r.Center(), 1e-4)
}

func TestInitializeKeepsCenterWhenLookingAlongPlane(t *testing.T) {
	tr := &fakeTransform{position: mgl32.Vec3{0, 5, -10}, rotation: mgl32.QuatIdent()}
	r := NewRig(
		WithTransform(tr),
		WithPlane(common.NewPlane(mgl32.Vec3{}, mgl32.QuatIdent())),
		WithOrbitCenter(mgl32.Vec3{0, 5, 0}),
		WithLogger(quietLogger()),
	)
	r.Initialize()
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, r.Center())
}

func TestTickWritesTransform(t *testing.T) {
	r, tr := groundRig(t, common.DefaultBoundary())
	r.Tick(input.Idle(), frame)
	assert.Equal(t, 1, tr.writes)
	assert.Equal(t, r.Position(), tr.position)
	assert.Equal(t, r.Rotation(), tr.rotation)
}

func TestZeroInputDecays(t *testing.T) {
	r := axisRig()
	r.SetCenterPositionPose(mgl32.Vec3{3, 0, 4}, common.EulerToQuat(30, 60, 0), 25)

	abs := func(v float32) float64 { return math.Abs(float64(v)) }
	prev := r.State()
	for range 900 {
		r.Tick(input.Idle(), frame)
		st := r.State()
		assert.LessOrEqual(t, float64(st.VelocityMove.Len()), float64(prev.VelocityMove.Len())+1e-6)
		assert.LessOrEqual(t, abs(st.VelocityRotateHorizontal), abs(prev.VelocityRotateHorizontal)+1e-6)
		assert.LessOrEqual(t, abs(st.VelocityRotateVertical), abs(prev.VelocityRotateVertical)+1e-6)
		assert.LessOrEqual(t, abs(st.VelocityZoom), abs(prev.VelocityZoom)+1e-6)
		prev = st
	}

	assert.InDelta(t, 0, prev.VelocityMove.Len(), 1e-4)
	assert.InDelta(t, 0, prev.VelocityRotateHorizontal, 1e-4)
	assert.InDelta(t, 0, prev.VelocityRotateVertical, 1e-4)
	assert.InDelta(t, 0, prev.VelocityZoom, 1e-4)

	r.Tick(input.Idle(), frame)
	assertVec3InDelta(t, prev.Position, r.Position(), 1e-4)

	assertVec3InDelta(t, mgl32.Vec3{3, 0, 4}, r.Center(), 1e-3)
	assert.InDelta(t, 25, r.State().Distance(), 1e-3)
	assert.InDelta(t, 30, common.Pitch(r.Rotation()), 1e-2)
	assert.InDelta(t, 60, common.Yaw(r.Rotation()), 1e-2)
}

func TestVerticalRangeHolds(t *testing.T) {
	// Stored inverted on purpose; the rig reads the sorted bounds.
	limit := DefaultLimit()
	limit.VerticalRotateRange = common.NewRange(45, -45)
	r := axisRig(WithLimit(limit))

	rng := rand.New(rand.NewSource(7))
	r.Tick(input.Snapshot{SecondaryDown: true, SecondaryHeld: true, CanInteractStart: true}, frame)
	for i := range 600 {
		in := input.Snapshot{
			SecondaryHeld:    i < 400,
			PointerDeltaX:    rng.Float32()*400 - 200,
			PointerDeltaY:    rng.Float32()*400 - 200,
			CanInteractStart: true,
		}
		r.Tick(in, frame)

		pitch := common.Pitch(r.Rotation())
		require.LessOrEqual(t, float64(pitch), 45+1e-3, "tick %d", i)
		require.GreaterOrEqual(t, float64(pitch), -45-1e-3, "tick %d", i)
	}
	assert.InDelta(t, 10, r.State().Distance(), 1e-2)
}

func TestVerticalRangeClampedToPoles(t *testing.T) {
	limit := DefaultLimit()
	limit.VerticalRotateRange = common.NewRange(-180, 180)
	r := axisRig(WithLimit(limit))

	r.Tick(input.Snapshot{SecondaryDown: true, SecondaryHeld: true, CanInteractStart: true}, frame)
	for range 300 {
		r.Tick(input.Snapshot{SecondaryHeld: true, PointerDeltaY: -500, CanInteractStart: true}, frame)
		require.LessOrEqual(t, float64(common.Pitch(r.Rotation())), 89+1e-3)
	}
	assert.InDelta(t, 89, common.Pitch(r.Rotation()), 0.5)
}

func TestZoomRangeHolds(t *testing.T) {
	limit := DefaultLimit()
	limit.ZoomRange = common.NewRange(5, 50)
	r := axisRig(WithLimit(limit))

	rng := rand.New(rand.NewSource(11))
	for i := range 400 {
		in := input.Idle()
		if i < 200 {
			in.Scroll = rng.Float32()*10 - 5
		}
		r.Tick(in, frame)

		d := float64(r.State().Distance())
		require.GreaterOrEqual(t, d, 5-1e-3, "tick %d", i)
		require.LessOrEqual(t, d, 50+1e-3, "tick %d", i)
	}
}

func TestScrollOutwardStopsAtMaxDistance(t *testing.T) {
	limit := DefaultLimit()
	limit.ZoomRange = common.NewRange(5, 50)
	r := axisRig(WithLimit(limit))

	for range 60 {
		r.Tick(input.Snapshot{Scroll: -20, CanInteractStart: true}, frame)
	}
	d := r.State().Distance()
	assert.LessOrEqual(t, float64(d), 50+1e-3)
	assert.Greater(t, d, float32(10))
}

func TestScrollIgnoredWhenBlockedOrDisabled(t *testing.T) {
	r := axisRig()
	r.Tick(input.Snapshot{Scroll: 5, CanInteractStart: false}, frame)
	assert.Zero(t, r.State().VelocityZoom)

	limit := DefaultLimit()
	limit.CanZoom = false
	require.NoError(t, r.LoadLimit(&limit))
	r.Tick(input.Snapshot{Scroll: 5, CanInteractStart: true}, frame)
	assert.Zero(t, r.State().VelocityZoom)
}

func TestSetCenterPositionConverges(t *testing.T) {
	r := axisRig()
	r.SetCenterPositionPose(mgl32.Vec3{10, 0, 10}, mgl32.QuatIdent(), 20)
	idle(r, 300)

	assertVec3InDelta(t, mgl32.Vec3{10, 0, -10}, r.Position(), 0.01)

	target := r.SaveTarget()
	assertVec3InDelta(t, mgl32.Vec3{10, 0, 10}, target.Position, 0.01)
	assert.InDelta(t, 20, target.Distance, 0.01)
}

func TestSetCenterPositionKeepsDistanceAndStopsHeightReset(t *testing.T) {
	r, _ := groundRig(t, common.DefaultBoundary())
	require.True(t, r.State().HeightResetting)

	r.SetCenterPosition(mgl32.Vec3{20, 0, 30})
	assert.False(t, r.State().HeightResetting)
	idle(r, 600)

	assertVec3InDelta(t, mgl32.Vec3{20, 0, 30}, r.Center(), 1e-3)
	assertVec3InDelta(t, mgl32.Vec3{20, 10, 20}, r.Position(), 1e-3)
}

func TestSetCenterPositionDistanceKeepsRotation(t *testing.T) {
	r := axisRig()
	r.SetCenterPositionDistance(mgl32.Vec3{0, 0, 5}, 3)
	idle(r, 600)

	assertVec3InDelta(t, mgl32.Vec3{0, 0, 2}, r.Position(), 1e-3)
	assert.InDelta(t, 1, r.Rotation().W, 1e-5)
}

func TestSetCenterPositionClampedToBoundary(t *testing.T) {
	square := common.Polygon{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	r, _ := groundRig(t, square)

	r.SetCenterPosition(mgl32.Vec3{5, 0, 5})
	for i := range 300 {
		r.Tick(input.Idle(), frame)
		c := r.Center()
		require.LessOrEqual(t, float64(c[0]), 1+1e-4, "tick %d", i)
		require.LessOrEqual(t, float64(c[2]), 1+1e-4, "tick %d", i)
	}
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 1}, r.Center(), 1e-3)
}

func TestPanDragClampedToBoundary(t *testing.T) {
	square := common.Polygon{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	r, _ := groundRig(t, square)

	// Over a ground plane a drag moves the ground with the pointer, so dragging left and down
	// carries the center toward +X and +Z.
	r.Tick(input.Snapshot{PrimaryDown: true, PrimaryHeld: true, CanInteractStart: true}, frame)
	require.True(t, r.State().Interacting)
	for i := range 480 {
		in := input.Idle()
		if i < 180 {
			in.PrimaryHeld = true
			in.PointerDeltaX, in.PointerDeltaY = -30, -30
		} else if i == 180 {
			in.PrimaryUp = true
		}
		r.Tick(in, frame)

		c := r.Center()
		require.LessOrEqual(t, float64(c[0]), 1+1e-3, "tick %d", i)
		require.LessOrEqual(t, float64(c[2]), 1+1e-3, "tick %d", i)
	}

	st := r.State()
	assert.False(t, st.Interacting)
	assert.True(t, st.HeightResetting)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 1}, st.Center, 1e-2)
}

func TestPanRequiresInteraction(t *testing.T) {
	r, _ := groundRig(t, common.DefaultBoundary())

	r.Tick(input.Snapshot{PrimaryDown: true, PrimaryHeld: true}, frame)
	assert.False(t, r.State().Interacting)
	r.Tick(input.Snapshot{PrimaryHeld: true, PointerDeltaX: 50}, frame)
	assert.Zero(t, r.State().VelocityMove.Len())
}

func TestPanReversalBleedsPool(t *testing.T) {
	r := axisRig()
	r.Tick(input.Snapshot{PrimaryDown: true, PrimaryHeld: true, CanInteractStart: true}, frame)
	for range 10 {
		r.Tick(input.Snapshot{PrimaryHeld: true, PointerDeltaX: 40, CanInteractStart: true}, frame)
	}
	before := r.State().VelocityMove
	require.Greater(t, before[0], float32(0))

	// Without a plane the pan follows the view's right axis.
	r.Tick(input.Snapshot{PrimaryHeld: true, PointerDeltaX: -1, CanInteractStart: true}, frame)
	after := r.State().VelocityMove
	// Plain damping would keep 95% of the pool; the reversal keeps less.
	assert.Less(t, after[0], before[0]*0.95*0.86)
}

func TestOrbitKeepsDistanceAndFacesCenter(t *testing.T) {
	r := axisRig()
	r.Tick(input.Snapshot{SecondaryDown: true, SecondaryHeld: true, CanInteractStart: true}, frame)
	for range 30 {
		r.Tick(input.Snapshot{SecondaryHeld: true, PointerDeltaX: 30, PointerDeltaY: -20, CanInteractStart: true}, frame)
	}
	r.Tick(input.Snapshot{SecondaryUp: true, CanInteractStart: true}, frame)
	idle(r, 600)

	st := r.State()
	assert.InDelta(t, 10, st.Distance(), 1e-3)
	toCenter := st.Center.Sub(st.Position).Normalize()
	assertVec3InDelta(t, toCenter, common.Forward(st.Rotation), 1e-3)
	assert.InDelta(t, 0, common.Roll(st.Rotation), 1e-2)
	assert.Greater(t, common.Yaw(st.Rotation), float32(1))
}

func TestHeightResetLevelsCenter(t *testing.T) {
	tr := &fakeTransform{position: mgl32.Vec3{0, 5, -10}, rotation: mgl32.QuatIdent()}
	r := NewRig(
		WithTransform(tr),
		WithPlane(common.NewPlane(mgl32.Vec3{0, 1, 0}, mgl32.QuatIdent())),
		WithOrbitCenter(mgl32.Vec3{0, 5, 0}),
		WithLogger(quietLogger()),
	)
	r.Initialize()
	idle(r, 600)

	assert.InDelta(t, 1, r.Center()[1], 1e-3)
	assert.InDelta(t, 1, r.Position()[1], 1e-3)
}

func TestNonFinitePositionResets(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := axisRig(WithLogger(logger))

	require.NoError(t, r.LoadTarget(&Target{Rotation: mgl32.QuatIdent(), Distance: float32(math.NaN())}))
	r.Tick(input.Idle(), frame)

	pos := r.Position()
	assert.True(t, common.IsFinite(pos[:]...))
	assert.Equal(t, mgl32.Vec3{}, pos)
	assert.Zero(t, r.State().VelocityZoom)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "rig", hook.LastEntry().Data["component"])
}

func TestPlaneQueries(t *testing.T) {
	r := axisRig()
	_, err := r.ForwardInPlane()
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	_, err = r.RightInPlane()
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	g, _ := groundRig(t, common.DefaultBoundary())
	fwd, err := g.ForwardInPlane()
	require.NoError(t, err)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 1}, fwd, 1e-5)
	right, err := g.RightInPlane()
	require.NoError(t, err)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, right, 1e-5)
}

func TestLoadersRejectNil(t *testing.T) {
	r := axisRig()
	assert.ErrorIs(t, r.LoadSensitivity(nil), ErrInvalidArgument)
	assert.ErrorIs(t, r.LoadLimit(nil), ErrInvalidArgument)
	assert.ErrorIs(t, r.LoadTarget(nil), ErrInvalidArgument)
	assert.ErrorIs(t, r.LoadPreset(nil), ErrInvalidArgument)
	assert.ErrorIs(t, r.LoadPreset(&Preset{Target: &Target{}}), ErrInvalidArgument)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := axisRig()

	s := Sensitivity{1, 2, 3, 4, 5, 6, 7, 8, 9}
	require.NoError(t, r.LoadSensitivity(&s))
	assert.Equal(t, s, r.SaveSensitivity())

	l := Limit{
		VerticalRotateRange: common.NewRange(30, -10),
		ZoomRange:           common.NewRange(100, 2),
		CanMove:             true,
		CanRotate:           false,
		CanZoom:             true,
	}
	require.NoError(t, r.LoadLimit(&l))
	assert.Equal(t, l, r.SaveLimit())

	p := r.SavePreset()
	require.NotNil(t, p.Target)
	require.NotNil(t, p.Limit)
	assert.Equal(t, l, *p.Limit)
	assert.InDelta(t, 10, p.Target.Distance, 1e-5)

	// Loading the saved preset of a settled rig requests no movement.
	require.NoError(t, r.LoadPreset(&p))
	st := r.State()
	assert.InDelta(t, 0, st.VelocityMove.Len(), 1e-5)
	assert.InDelta(t, 0, st.VelocityZoom, 1e-5)
	assert.InDelta(t, 0, st.VelocityRotateHorizontal, 1e-3)
	assert.InDelta(t, 0, st.VelocityRotateVertical, 1e-3)
}
