package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLerpClampsFactor(t *testing.T) {
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
	assert.Equal(t, float32(10), Lerp(0, 10, 3))
	assert.Equal(t, float32(0), Lerp(0, 10, -1))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, LerpVec3(mgl32.Vec3{}, mgl32.Vec3{1, 2, 3}, 2))
}

func TestMoveTowards(t *testing.T) {
	from := mgl32.Vec3{0, 0, 10}
	center := mgl32.Vec3{}

	closer := MoveTowards(from, center, 4)
	assert.InDelta(t, 6, closer.Len(), 1e-5)

	away := MoveTowards(from, center, -4)
	assert.InDelta(t, 14, away.Len(), 1e-5)

	// Overshooting toward the target snaps onto it.
	assert.Equal(t, center, MoveTowards(from, center, 25))
	// A large negative step never snaps.
	assert.InDelta(t, 35, MoveTowards(from, center, -25).Len(), 1e-4)
	// Coincident points return the target.
	assert.Equal(t, center, MoveTowards(center, center, -1))
}

func TestAngleAndSignedAngle(t *testing.T) {
	assert.InDelta(t, 90, Angle(WorldForward, WorldRight), 1e-4)
	assert.InDelta(t, 180, Angle(WorldForward, WorldForward.Mul(-1)), 1e-4)
	assert.Equal(t, float32(0), Angle(mgl32.Vec3{}, WorldUp))

	assert.InDelta(t, 90, SignedAngle(WorldForward, WorldRight, WorldUp), 1e-4)
	assert.InDelta(t, -90, SignedAngle(WorldRight, WorldForward, WorldUp), 1e-4)
}

func TestAngleAxisMatchesSignedAngle(t *testing.T) {
	q := AngleAxis(37, WorldUp)
	rotated := q.Rotate(WorldForward)
	assert.InDelta(t, 37, SignedAngle(WorldForward, rotated, WorldUp), 1e-3)

	assert.Equal(t, mgl32.QuatIdent(), AngleAxis(45, mgl32.Vec3{}))
}

func TestProjections(t *testing.T) {
	v := mgl32.Vec3{3, 4, 5}
	assert.Equal(t, mgl32.Vec3{0, 4, 0}, Project(v, mgl32.Vec3{0, 2, 0}))
	assert.Equal(t, mgl32.Vec3{3, 0, 5}, ProjectOnPlane(v, mgl32.Vec3{0, 2, 0}))
	assert.Equal(t, mgl32.Vec3{}, Project(v, mgl32.Vec3{}))
	assert.Equal(t, v, ProjectOnPlane(v, mgl32.Vec3{}))
	assert.Equal(t, mgl32.Vec3{}, SafeNormalize(mgl32.Vec3{1e-7, 0, 0}))
}

func TestIntersectRayPlane(t *testing.T) {
	hit := IntersectRayPlane(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 1}, WorldUp, mgl32.Vec3{0, 2, 0})
	assert.InDelta(t, 2, hit[1], 1e-4)
	assert.InDelta(t, 8, hit[2], 1e-4)

	parallel := IntersectRayPlane(mgl32.Vec3{0, 10, 0}, WorldForward, WorldUp, mgl32.Vec3{})
	assert.False(t, IsFinite(parallel[:]...))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1, 2, 3))
	assert.False(t, IsFinite(1, float32(math.NaN())))
	assert.False(t, IsFinite(float32(math.Inf(-1))))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, float32(60), Coalesce[float32](0, 60, 30))
	assert.Equal(t, "", Coalesce[string]())
}
