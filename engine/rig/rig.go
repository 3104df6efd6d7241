// Package rig implements a damped orbit, pan and zoom camera rig. Pointer deltas accumulate into
// per-axis velocity pools which drain a fraction per tick, so the rig eases toward every request
// instead of jumping. The orbit center may be confined to a boundary polygon on a reference plane.
package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the host object the rig drives, typically the render camera.
type Transform interface {
	// Position returns the current world position.
	Position() mgl32.Vec3

	// Rotation returns the current world orientation.
	Rotation() mgl32.Quat

	// SetPositionAndRotation applies a new pose.
	//
	// Parameters:
	//   - position: world position
	//   - rotation: world orientation
	SetPositionAndRotation(position mgl32.Vec3, rotation mgl32.Quat)
}

// Rig is a damped orbit/pan/zoom camera controller. It is not safe for concurrent use; callers that
// share a rig across goroutines must serialize access.
type Rig interface {
	// Initialize reads the starting pose from the transform (when enabled) and seeds the orbit center
	// from where the view ray meets the reference plane.
	Initialize()

	// Tick advances the rig by one frame and writes the resulting pose to the transform.
	//
	// Parameters:
	//   - in: this frame's input
	//   - dt: frame time in seconds
	Tick(in input.Snapshot, dt float32)

	// State returns a copy of the goal pose and pending velocities.
	//
	// Returns:
	//   - State: the snapshot
	State() State

	// Position returns the goal position.
	Position() mgl32.Vec3

	// Rotation returns the goal orientation.
	Rotation() mgl32.Quat

	// Center returns the orbit center.
	Center() mgl32.Vec3

	// Plane returns the reference plane, or nil if none is set.
	Plane() *common.Plane

	// SetPlane replaces the reference plane. A nil plane disables the boundary clamp and height reset.
	SetPlane(plane *common.Plane)

	// Boundary returns the boundary polygon in plane-local (X, Z) coordinates.
	Boundary() common.Polygon

	// SetBoundary replaces the boundary polygon. Polygons with fewer than 3 points disable the clamp.
	SetBoundary(boundary common.Polygon)

	// SetCenterPosition requests a pan so the orbit center converges on center.
	// The request cancels height re-leveling until the next user pan.
	//
	// Parameters:
	//   - center: the new orbit center in world space
	SetCenterPosition(center mgl32.Vec3)

	// SetCenterPositionDistance requests a new orbit center and distance, keeping the current orientation.
	//
	// Parameters:
	//   - center: the new orbit center in world space
	//   - distance: the distance from center to converge to
	SetCenterPositionDistance(center mgl32.Vec3, distance float32)

	// SetCenterPositionPose requests a new orbit center, orientation and distance. The request is
	// expressed as velocities and converges through the normal damping and clamping; it never teleports.
	//
	// Parameters:
	//   - center: the new orbit center in world space
	//   - rotation: the orientation to converge to (pitch and yaw are honored, roll is leveled)
	//   - distance: the distance from center to converge to
	SetCenterPositionPose(center mgl32.Vec3, rotation mgl32.Quat, distance float32)

	// ForwardInPlane returns the rig's forward direction flattened onto the reference plane.
	//
	// Returns:
	//   - mgl32.Vec3: unit direction, or zero when looking straight along the plane normal
	//   - error: ErrPreconditionFailed if no plane is set
	ForwardInPlane() (mgl32.Vec3, error)

	// RightInPlane returns the rig's right direction flattened onto the reference plane.
	//
	// Returns:
	//   - mgl32.Vec3: unit direction
	//   - error: ErrPreconditionFailed if no plane is set
	RightInPlane() (mgl32.Vec3, error)

	// LoadSensitivity replaces every speed and slowdown.
	//
	// Parameters:
	//   - sensitivity: the values to load
	//
	// Returns:
	//   - error: ErrInvalidArgument if sensitivity is nil
	LoadSensitivity(sensitivity *Sensitivity) error

	// SaveSensitivity returns a copy of the current speeds and slowdowns.
	SaveSensitivity() Sensitivity

	// LoadLimit replaces the ranges and capability flags. Takes effect on the next tick.
	//
	// Parameters:
	//   - limit: the values to load
	//
	// Returns:
	//   - error: ErrInvalidArgument if limit is nil
	LoadLimit(limit *Limit) error

	// SaveLimit returns a copy of the current limits, ranges in their stored order.
	SaveLimit() Limit

	// LoadTarget starts converging to the target; equivalent to SetCenterPositionPose.
	//
	// Parameters:
	//   - target: the pose to converge to
	//
	// Returns:
	//   - error: ErrInvalidArgument if target is nil
	LoadTarget(target *Target) error

	// SaveTarget returns the current orbit center, goal orientation and distance.
	SaveTarget() Target

	// LoadPreset loads the preset's target then its limit.
	//
	// Parameters:
	//   - preset: the preset to load
	//
	// Returns:
	//   - error: ErrInvalidArgument if the preset, its target or its limit is nil
	LoadPreset(preset *Preset) error

	// SavePreset returns SaveTarget and SaveLimit bundled together.
	SavePreset() Preset
}
