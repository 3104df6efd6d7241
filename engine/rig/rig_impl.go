package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// minCenterDistance keeps speed scaling and zoom steps away from a degenerate zero distance.
const minCenterDistance = 1e-4

// rigImpl is the single implementation of Rig.
type rigImpl struct {
	transform         Transform
	initFromTransform bool
	plane             *common.Plane
	boundary          common.Polygon
	sensitivity       Sensitivity
	limit             Limit
	logger            logrus.FieldLogger

	// Goal pose
	position mgl32.Vec3
	rotation mgl32.Quat
	center   mgl32.Vec3

	// Pending velocity pools
	velMove mgl32.Vec3
	velH    float32
	velV    float32
	velZoom float32

	heightResetting bool
	interacting     bool
}

// Compile-time interface compliance check
var _ Rig = &rigImpl{}

// NewRig creates a rig with default sensitivity and limits, the default boundary and no plane.
// Call Initialize before the first Tick.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigOption) Rig {
	r := &rigImpl{
		initFromTransform: true,
		boundary:          common.DefaultBoundary(),
		sensitivity:       DefaultSensitivity(),
		limit:             DefaultLimit(),
		logger:            logrus.StandardLogger(),
		rotation:          mgl32.QuatIdent(),
		heightResetting:   true,
	}

	for _, option := range options {
		option(r)
	}

	r.logger = r.logger.WithField("component", "rig")
	return r
}

func (r *rigImpl) Initialize() {
	if r.initFromTransform && r.transform != nil {
		r.position = r.transform.Position()
		r.rotation = r.transform.Rotation().Normalize()
	}

	if r.plane != nil {
		forward := common.Forward(r.rotation)
		hit := common.IntersectRayPlane(r.position, forward, r.plane.Up(), r.plane.Position)
		// Looking along the plane never meets it.
		if common.Angle(common.ProjectOnPlane(forward, r.plane.Up()), forward) > 0.01 && common.IsFinite(hit[:]...) {
			r.center = hit
		}
	}

	r.logger.WithFields(logrus.Fields{
		"position": r.position,
		"center":   r.center,
	}).Debug("rig initialized")
}

func (r *rigImpl) Tick(in input.Snapshot, dt float32) {
	if in.PrimaryUp || in.SecondaryUp {
		r.interacting = false
	}
	if in.CanInteractStart && (in.PrimaryDown || in.SecondaryDown) {
		r.interacting = true
	}

	centerDistance := max(r.center.Sub(r.position).Len(), minCenterDistance)
	actualMoveSpeed := r.sensitivity.MoveSpeed * centerDistance / 100
	actualZoomSpeed := r.sensitivity.ZoomSpeed * centerDistance / 100

	r.accumulateZoom(in, actualZoomSpeed)
	r.clampZoom(centerDistance)

	r.accumulateRotation(in, dt)
	r.clampVertical()
	h := drain(&r.velH, dt, r.sensitivity.RotateSlowdown)
	v := drain(&r.velV, dt, r.sensitivity.RotateSlowdown)
	r.rotateAroundCenter(h, v)

	r.accumulatePan(in, dt, actualMoveSpeed)
	r.clampPendingPan()

	moveOffset := drainVec3(&r.velMove, dt, r.sensitivity.MoveSlowdown)
	zoomOffset := drain(&r.velZoom, dt, r.sensitivity.ZoomSlowdown)
	r.position = r.position.Add(moveOffset)
	r.center = r.center.Add(moveOffset)
	r.applyZoom(zoomOffset)

	r.resetHeight(dt)

	if r.transform != nil {
		r.transform.SetPositionAndRotation(r.position, r.rotation)
	}
}

func (r *rigImpl) State() State {
	return State{
		Position:                 r.position,
		Rotation:                 r.rotation,
		Center:                   r.center,
		VelocityMove:             r.velMove,
		VelocityRotateHorizontal: r.velH,
		VelocityRotateVertical:   r.velV,
		VelocityZoom:             r.velZoom,
		HeightResetting:          r.heightResetting,
		Interacting:              r.interacting,
	}
}

func (r *rigImpl) Position() mgl32.Vec3 {
	return r.position
}

func (r *rigImpl) Rotation() mgl32.Quat {
	return r.rotation
}

func (r *rigImpl) Center() mgl32.Vec3 {
	return r.center
}

func (r *rigImpl) Plane() *common.Plane {
	return r.plane
}

func (r *rigImpl) SetPlane(plane *common.Plane) {
	r.plane = plane
}

func (r *rigImpl) Boundary() common.Polygon {
	return r.boundary.Clone()
}

func (r *rigImpl) SetBoundary(boundary common.Polygon) {
	r.boundary = boundary.Clone()
}
