package preset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
sensitivity:
  move_speed: 8
  zoom_slowdown: 6
target:
  position: [10, 0, 10]
  rotation: [45, 90, 0]
  distance: 20
limit:
  vertical_rotate_range: [80, 10]
  zoom_range: [5, 100]
  can_move: true
  can_rotate: false
  can_zoom: true
`

func newRig() rig.Rig {
	logger, _ := test.NewNullLogger()
	r := rig.NewRig(
		rig.WithInitFromTransform(false),
		rig.WithPose(mgl32.Vec3{0, 0, -10}, mgl32.QuatIdent()),
		rig.WithLogger(logger),
	)
	r.Initialize()
	return r
}

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	require.NotNil(t, f.Sensitivity)
	s := f.Sensitivity.Rig()
	assert.Equal(t, float32(8), s.MoveSpeed)
	assert.Equal(t, float32(6), s.ZoomSlowdown)
	assert.Equal(t, float32(5), s.RotateSpeedHorizontal, "missing fields keep defaults")
	assert.Equal(t, float32(3), s.MoveSlowdown)

	require.NotNil(t, f.Target)
	target := f.Target.Rig()
	assert.Equal(t, mgl32.Vec3{10, 0, 10}, target.Position)
	assert.Equal(t, float32(20), target.Distance)
	assert.InDelta(t, 45, common.Pitch(target.Rotation), 1e-3)
	assert.InDelta(t, 90, common.Yaw(target.Rotation), 1e-3)

	require.NotNil(t, f.Limit)
	limit := f.Limit.Rig()
	assert.Equal(t, float32(80), limit.VerticalRotateRange.Min, "inverted bounds are kept as written")
	assert.Equal(t, float32(10), limit.VerticalRotateRange.ActualMin())
	assert.False(t, limit.CanRotate)
}

func TestDecodeQuaternionRotation(t *testing.T) {
	f, err := Decode(strings.NewReader("target:\n  rotation: [0, 0, 0, 2]\n  distance: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, mgl32.QuatIdent(), f.Target.Rig().Rotation)
	assert.Nil(t, f.Sensitivity)
	assert.Nil(t, f.Limit)
}

func TestDecodeLimitDefaults(t *testing.T) {
	f, err := Decode(strings.NewReader("limit:\n  can_zoom: false\n"))
	require.NoError(t, err)
	l := f.Limit.Rig()
	assert.False(t, l.CanZoom)
	assert.True(t, l.CanMove)
	assert.Equal(t, rig.DefaultLimit().ZoomRange, l.ZoomRange)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"short vector":     "target:\n  position: [1, 2]\n  distance: 1\n",
		"bad rotation":     "target:\n  rotation: [1, 2]\n  distance: 1\n",
		"zero quaternion":  "target:\n  rotation: [0, 0, 0, 0]\n  distance: 1\n",
		"missing distance": "target:\n  position: [1, 2, 3]\n",
		"bad range":        "limit:\n  zoom_range: [1, 2, 3]\n",
		"unknown section":  "camera: {}\n",
		"not yaml":         "target: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, &File{}, f)
}

func TestApplyAndCapture(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	r := newRig()
	require.NoError(t, Apply(r, f))

	for range 600 {
		r.Tick(input.Idle(), 1.0/60)
	}

	got := Capture(r)
	assert.Equal(t, float32(8), got.Sensitivity.MoveSpeed)
	assert.Equal(t, Range(common.NewRange(80, 10)), got.Limit.VerticalRotateRange)
	assert.InDelta(t, 20, got.Target.Distance, 0.05)
	center := got.Target.Rig().Position
	assert.InDelta(t, 10, center[0], 0.05)
	assert.InDelta(t, 10, center[2], 0.05)
}

func TestApplyPartial(t *testing.T) {
	r := newRig()
	f := &File{Limit: &Limit{ZoomRange: Range(common.NewRange(2, 3))}}
	require.NoError(t, Apply(r, f))
	assert.Equal(t, float32(3), r.SaveLimit().ZoomRange.ActualMax())
	assert.Equal(t, mgl32.Vec3{}, r.State().VelocityMove, "no target means no motion")

	assert.ErrorIs(t, Apply(r, nil), rig.ErrInvalidArgument)
	assert.NoError(t, Apply(r, &File{}))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := newRig()
	l := rig.Limit{
		VerticalRotateRange: common.NewRange(60, -30),
		ZoomRange:           common.NewRange(50, 2),
		CanMove:             true,
	}
	require.NoError(t, r.LoadLimit(&l))
	r.SetCenterPositionPose(mgl32.Vec3{}, common.EulerToQuat(30, -45, 0), 10)
	for range 600 {
		r.Tick(input.Idle(), 1.0/60)
	}

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, Save(path, Capture(r)))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FromLimit(l), *loaded.Limit)
	assert.Equal(t, FromSensitivity(rig.DefaultSensitivity()), *loaded.Sensitivity)

	want := common.Forward(r.Rotation())
	got := common.Forward(loaded.Target.Rig().Rotation)
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-3)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEncodeUsesFlowSequences(t *testing.T) {
	var buf bytes.Buffer
	f := &File{Limit: &Limit{ZoomRange: Range(common.NewRange(1, 2))}}
	require.NoError(t, Encode(&buf, f))
	assert.Contains(t, buf.String(), "zoom_range: [1, 2]")
}
