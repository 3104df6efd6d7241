package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// World axes. +Z is forward, +Y is up, +X is right.
var (
	WorldForward = mgl32.Vec3{0, 0, 1}
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
)

const (
	// normalizeEpsilon is the length below which SafeNormalize returns the zero vector.
	normalizeEpsilon = 1e-5
	// angleEpsilon is the squared-length product below which Angle treats a vector as zero.
	angleEpsilon = 1e-15
)

// Lerp linearly interpolates from a to b. The factor t is clamped into [0, 1].
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	t = Clamp01(t)
	return a + (b-a)*t
}

// LerpVec3 is the component-wise Lerp of two vectors with t clamped into [0, 1].
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	t = Clamp01(t)
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// MoveTowards moves current toward target by at most maxDelta.
// A negative maxDelta moves current away from target. If the points coincide, or a non-negative
// maxDelta covers the whole distance, target is returned.
//
// Parameters:
//   - current: the starting point
//   - target: the point to move toward
//   - maxDelta: signed step length
//
// Returns:
//   - mgl32.Vec3: the moved point
func MoveTowards(current, target mgl32.Vec3, maxDelta float32) mgl32.Vec3 {
	to := target.Sub(current)
	sqDist := to.Dot(to)
	if sqDist == 0 || (maxDelta >= 0 && sqDist <= maxDelta*maxDelta) {
		return target
	}
	dist := float32(math.Sqrt(float64(sqDist)))
	return current.Add(to.Mul(maxDelta / dist))
}

// SafeNormalize returns v scaled to unit length, or the zero vector when v is too short to normalize.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l > normalizeEpsilon {
		return v.Mul(1 / l)
	}
	return mgl32.Vec3{}
}

// Project returns the projection of v onto the line spanned by onto.
// Projecting onto a zero vector yields the zero vector.
func Project(v, onto mgl32.Vec3) mgl32.Vec3 {
	sq := onto.Dot(onto)
	if sq < angleEpsilon {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / sq)
}

// ProjectOnPlane removes from v its component along normal.
// A zero normal leaves v unchanged.
//
// Parameters:
//   - v: the vector to project
//   - normal: the plane normal (need not be unit length)
//
// Returns:
//   - mgl32.Vec3: the in-plane component of v
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	sq := normal.Dot(normal)
	if sq < angleEpsilon {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / sq))
}

// Angle returns the unsigned angle between a and b in degrees, in [0, 180].
// The angle is 0 when either vector is (near) zero.
func Angle(a, b mgl32.Vec3) float32 {
	return angleBetween(float64(a.Dot(b)), float64(a.Dot(a)), float64(b.Dot(b)))
}

// Angle2 is Angle for plane-local 2D vectors.
func Angle2(a, b mgl32.Vec2) float32 {
	return angleBetween(float64(a.Dot(b)), float64(a.Dot(a)), float64(b.Dot(b)))
}

func angleBetween(dot, sqA, sqB float64) float32 {
	denom := math.Sqrt(sqA * sqB)
	if denom < angleEpsilon {
		return 0
	}
	c := math.Max(-1, math.Min(1, dot/denom))
	return float32(math.Acos(c) * 180 / math.Pi)
}

// SignedAngle returns the angle from a to b in degrees, signed by the handedness of the turn around axis.
// The result lies in [-180, 180]; a degenerate cross product yields a positive sign.
//
// Parameters:
//   - from: the start direction
//   - to: the end direction
//   - axis: the reference axis deciding the sign
//
// Returns:
//   - float32: signed angle in degrees
func SignedAngle(from, to, axis mgl32.Vec3) float32 {
	return Angle(from, to) * Sign(axis.Dot(from.Cross(to)))
}

// AngleAxis builds the rotation of angle degrees around axis.
// A (near) zero axis yields the identity rotation.
func AngleAxis(angle float32, axis mgl32.Vec3) mgl32.Quat {
	n := SafeNormalize(axis)
	if n == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(angle), n)
}

// IntersectRayPlane returns where the ray from origin along dir crosses the plane through planePoint with
// normal planeNormal. The ray is treated as a full line: the hit may lie behind origin. A ray parallel
// to the plane produces non-finite components; callers check with IsFinite.
//
// Parameters:
//   - origin: the ray origin
//   - dir: the ray direction (need not be unit length)
//   - planeNormal: the plane normal
//   - planePoint: any point on the plane
//
// Returns:
//   - mgl32.Vec3: the intersection point
func IntersectRayPlane(origin, dir, planeNormal, planePoint mgl32.Vec3) mgl32.Vec3 {
	n := SafeNormalize(dir)
	d := planePoint.Sub(origin).Dot(planeNormal) / n.Dot(planeNormal)
	return n.Mul(d).Add(origin)
}
