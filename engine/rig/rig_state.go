package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// State is a snapshot of the rig's goal pose and pending velocity pools.
type State struct {
	// Position is where the rig wants the camera to be.
	Position mgl32.Vec3 `json:"position"`
	// Rotation is the orientation the rig wants the camera to have.
	Rotation mgl32.Quat `json:"rotation"`
	// Center is the orbit pivot.
	Center mgl32.Vec3 `json:"center"`

	// VelocityMove is the pending pan translation.
	VelocityMove mgl32.Vec3 `json:"velocity_move"`
	// VelocityRotateHorizontal is the pending yaw around world up, in degrees.
	VelocityRotateHorizontal float32 `json:"velocity_rotate_horizontal"`
	// VelocityRotateVertical is the pending pitch around the rig's right axis, in degrees.
	VelocityRotateVertical float32 `json:"velocity_rotate_vertical"`
	// VelocityZoom is the pending change in distance from the center. Positive moves away.
	VelocityZoom float32 `json:"velocity_zoom"`

	HeightResetting bool `json:"height_resetting"`
	Interacting     bool `json:"interacting"`
}

// Distance returns the distance between the goal position and the orbit center.
func (s State) Distance() float32 {
	return s.Center.Sub(s.Position).Len()
}

// Sensitivity holds the input speeds and damping rates. Slowdowns are rates per second: each tick
// dt*slowdown of a pool is applied and removed from it.
type Sensitivity struct {
	MoveSpeed             float32 `json:"move_speed"`
	RotateSpeedHorizontal float32 `json:"rotate_speed_horizontal"`
	RotateSpeedVertical   float32 `json:"rotate_speed_vertical"`
	ZoomSpeed             float32 `json:"zoom_speed"`

	MoveSlowdown   float32 `json:"move_slowdown"`
	RotateSlowdown float32 `json:"rotate_slowdown"`
	ZoomSlowdown   float32 `json:"zoom_slowdown"`

	// LookTargetMoveSlowdown and LookTargetRotateSlowdown are carried through load and save for
	// look-at transitions; the rig does not consume them.
	LookTargetMoveSlowdown   float32 `json:"look_target_move_slowdown"`
	LookTargetRotateSlowdown float32 `json:"look_target_rotate_slowdown"`
}

// DefaultSensitivity returns speeds of 5 and slowdowns of 3.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{
		MoveSpeed:                5,
		RotateSpeedHorizontal:    5,
		RotateSpeedVertical:      5,
		ZoomSpeed:                5,
		MoveSlowdown:             3,
		RotateSlowdown:           3,
		ZoomSlowdown:             3,
		LookTargetMoveSlowdown:   3,
		LookTargetRotateSlowdown: 3,
	}
}

// Limit bounds what the rig may do. Ranges may be stored inverted; the rig reads them through
// ActualMin and ActualMax.
type Limit struct {
	// VerticalRotateRange bounds the pitch in degrees. It is further clamped into [-89, 89].
	VerticalRotateRange common.Range `json:"vertical_rotate_range"`
	// ZoomRange bounds the distance between position and center.
	ZoomRange common.Range `json:"zoom_range"`

	CanMove   bool `json:"can_move"`
	CanRotate bool `json:"can_rotate"`
	CanZoom   bool `json:"can_zoom"`
}

// DefaultLimit allows pitch in [-89, 89], distance in [1, 1000] and every capability.
func DefaultLimit() Limit {
	return Limit{
		VerticalRotateRange: common.NewRange(-89, 89),
		ZoomRange:           common.NewRange(1, 1000),
		CanMove:             true,
		CanRotate:           true,
		CanZoom:             true,
	}
}

// Target is a pose to converge to: an orbit center, an orientation and a distance from the center.
type Target struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Quat `json:"rotation"`
	Distance float32    `json:"distance"`
}

// Preset bundles a target with the limits to apply alongside it.
type Preset struct {
	Target *Target `json:"target"`
	Limit  *Limit  `json:"limit"`
}
