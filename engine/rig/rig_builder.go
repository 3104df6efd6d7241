package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// RigOption is a functional option for configuring a Rig.
type RigOption func(*rigImpl)

// WithTransform sets the host transform the rig writes its pose to.
//
// Parameters:
//   - transform: the driven transform
//
// Returns:
//   - RigOption: functional option to set the transform
func WithTransform(transform Transform) RigOption {
	return func(r *rigImpl) {
		r.transform = transform
	}
}

// WithInitFromTransform controls whether Initialize copies the transform's pose. Enabled by default.
//
// Parameters:
//   - enabled: true to start from the transform's pose
//
// Returns:
//   - RigOption: functional option to set the flag
func WithInitFromTransform(enabled bool) RigOption {
	return func(r *rigImpl) {
		r.initFromTransform = enabled
	}
}

// WithPose sets the starting goal pose, used when the rig does not initialize from a transform.
//
// Parameters:
//   - position: starting position
//   - rotation: starting orientation
//
// Returns:
//   - RigOption: functional option to set the pose
func WithPose(position mgl32.Vec3, rotation mgl32.Quat) RigOption {
	return func(r *rigImpl) {
		r.position = position
		r.rotation = rotation.Normalize()
	}
}

// WithOrbitCenter sets the starting orbit center. Initialize overrides it when a plane is set and the
// view ray meets the plane.
func WithOrbitCenter(center mgl32.Vec3) RigOption {
	return func(r *rigImpl) {
		r.center = center
	}
}

// WithPlane sets the reference plane for panning, boundary clamping and height reset.
//
// Parameters:
//   - plane: the plane, or nil for none
//
// Returns:
//   - RigOption: functional option to set the plane
func WithPlane(plane *common.Plane) RigOption {
	return func(r *rigImpl) {
		r.plane = plane
	}
}

// WithBoundary sets the boundary polygon in plane-local (X, Z) coordinates.
//
// Parameters:
//   - boundary: at least 3 points forming a simple polygon
//
// Returns:
//   - RigOption: functional option to set the boundary
func WithBoundary(boundary common.Polygon) RigOption {
	return func(r *rigImpl) {
		r.boundary = boundary.Clone()
	}
}

// WithSensitivity sets the speeds and slowdowns.
func WithSensitivity(sensitivity Sensitivity) RigOption {
	return func(r *rigImpl) {
		r.sensitivity = sensitivity
	}
}

// WithLimit sets the ranges and capability flags.
func WithLimit(limit Limit) RigOption {
	return func(r *rigImpl) {
		r.limit = limit
	}
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - RigOption: functional option to set the logger
func WithLogger(logger logrus.FieldLogger) RigOption {
	return func(r *rigImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}
