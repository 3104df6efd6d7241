package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Euler angles in this package follow the yaw-pitch-roll convention q = Ry(yaw) * Rx(pitch) * Rz(roll),
// with +Z forward, +Y up and +X right. Positive pitch tilts the forward axis downward.

// Pitch returns the rotation of q about its local right axis in signed degrees, in [-90, 90].
func Pitch(q mgl32.Quat) float32 {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])
	m12 := 2 * (y*z - w*x)
	return float32(math.Asin(math.Max(-1, math.Min(1, -m12))) * 180 / math.Pi)
}

// Yaw returns the rotation of q about world up in signed degrees, in (-180, 180].
func Yaw(q mgl32.Quat) float32 {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])
	m02 := 2 * (x*z + w*y)
	m22 := 1 - 2*(x*x+y*y)
	return float32(math.Atan2(m02, m22) * 180 / math.Pi)
}

// Roll returns the rotation of q about its own forward axis in signed degrees, in (-180, 180].
// Near +-90 degrees of pitch the value is unreliable.
func Roll(q mgl32.Quat) float32 {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])
	m10 := 2 * (x*y + w*z)
	m11 := 1 - 2*(x*x+z*z)
	return float32(math.Atan2(m10, m11) * 180 / math.Pi)
}

// EulerToQuat composes a rotation from pitch, yaw and roll given in degrees.
//
// Parameters:
//   - pitch: rotation about the local right axis (positive looks down)
//   - yaw: rotation about world up
//   - roll: rotation about the local forward axis
//
// Returns:
//   - mgl32.Quat: the unit rotation
func EulerToQuat(pitch, yaw, roll float32) mgl32.Quat {
	return AngleAxis(yaw, WorldUp).
		Mul(AngleAxis(pitch, WorldRight)).
		Mul(AngleAxis(roll, WorldForward)).
		Normalize()
}

// QuatToEuler is the inverse of EulerToQuat, returning (pitch, yaw, roll) in degrees.
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	return mgl32.Vec3{Pitch(q), Yaw(q), Roll(q)}
}

// Forward returns q applied to the world forward axis.
func Forward(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(WorldForward)
}

// Right returns q applied to the world right axis.
func Right(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(WorldRight)
}

// Up returns q applied to the world up axis.
func Up(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(WorldUp)
}
