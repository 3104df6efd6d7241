package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

func (r *rigImpl) SetCenterPosition(center mgl32.Vec3) {
	r.velMove = center.Sub(r.center)
	r.heightResetting = false
}

func (r *rigImpl) SetCenterPositionDistance(center mgl32.Vec3, distance float32) {
	r.SetCenterPositionPose(center, r.rotation, distance)
}

func (r *rigImpl) SetCenterPositionPose(center mgl32.Vec3, rotation mgl32.Quat, distance float32) {
	r.heightResetting = false

	forward := common.Forward(r.rotation)
	targetForward := common.Forward(rotation.Normalize())

	// Pitch as the angle from world up, so the difference is the vertical turn to make.
	r.velV = common.Angle(common.WorldUp, targetForward) - common.Angle(common.WorldUp, forward)

	forwardXZ := mgl32.Vec3{forward[0], 0, forward[2]}
	targetForwardXZ := mgl32.Vec3{targetForward[0], 0, targetForward[2]}
	r.velH = common.SignedAngle(forwardXZ, targetForwardXZ, common.WorldUp)

	r.velMove = center.Sub(r.center)
	r.velZoom = distance - r.position.Sub(r.center).Len()
}

func (r *rigImpl) ForwardInPlane() (mgl32.Vec3, error) {
	if r.plane == nil {
		return mgl32.Vec3{}, errors.Wrap(ErrPreconditionFailed, "forward in plane")
	}
	return common.SafeNormalize(common.ProjectOnPlane(common.Forward(r.rotation), r.plane.Up())), nil
}

func (r *rigImpl) RightInPlane() (mgl32.Vec3, error) {
	if r.plane == nil {
		return mgl32.Vec3{}, errors.Wrap(ErrPreconditionFailed, "right in plane")
	}
	return common.SafeNormalize(common.ProjectOnPlane(common.Right(r.rotation), r.plane.Up())), nil
}

func (r *rigImpl) LoadSensitivity(sensitivity *Sensitivity) error {
	if sensitivity == nil {
		return errors.Wrap(ErrInvalidArgument, "nil sensitivity")
	}
	r.sensitivity = *sensitivity
	return nil
}

func (r *rigImpl) SaveSensitivity() Sensitivity {
	return r.sensitivity
}

func (r *rigImpl) LoadLimit(limit *Limit) error {
	if limit == nil {
		return errors.Wrap(ErrInvalidArgument, "nil limit")
	}
	r.limit = Limit{
		VerticalRotateRange: common.NewRange(limit.VerticalRotateRange.Min, limit.VerticalRotateRange.Max),
		ZoomRange:           common.NewRange(limit.ZoomRange.Min, limit.ZoomRange.Max),
		CanMove:             limit.CanMove,
		CanRotate:           limit.CanRotate,
		CanZoom:             limit.CanZoom,
	}
	return nil
}

func (r *rigImpl) SaveLimit() Limit {
	return r.limit
}

func (r *rigImpl) LoadTarget(target *Target) error {
	if target == nil {
		return errors.Wrap(ErrInvalidArgument, "nil target")
	}
	r.SetCenterPositionPose(target.Position, target.Rotation, target.Distance)
	return nil
}

func (r *rigImpl) SaveTarget() Target {
	return Target{
		Position: r.center,
		Rotation: r.rotation,
		Distance: r.center.Sub(r.position).Len(),
	}
}

func (r *rigImpl) LoadPreset(preset *Preset) error {
	if preset == nil {
		return errors.Wrap(ErrInvalidArgument, "nil preset")
	}
	if preset.Target == nil || preset.Limit == nil {
		return errors.Wrap(ErrInvalidArgument, "preset without target or limit")
	}
	if err := r.LoadTarget(preset.Target); err != nil {
		return err
	}
	return r.LoadLimit(preset.Limit)
}

func (r *rigImpl) SavePreset() Preset {
	target := r.SaveTarget()
	limit := r.SaveLimit()
	return Preset{Target: &target, Limit: &limit}
}
