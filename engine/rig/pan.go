package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// reversalDampingScale speeds up the move slowdown while the drag opposes the pending pan.
const reversalDampingScale = 3

// panAxes returns the world directions a drag along screen X and Y moves the center. With a plane
// the axes lie in the plane and point opposite the view axes, so the ground follows the pointer.
func (r *rigImpl) panAxes() (right, up mgl32.Vec3) {
	right, up = common.Right(r.rotation), common.Up(r.rotation)
	if r.plane != nil {
		n := r.plane.Up()
		up = common.SafeNormalize(common.ProjectOnPlane(up, n)).Mul(-1)
		right = common.SafeNormalize(common.ProjectOnPlane(right, n)).Mul(-1)
	}
	return right, up
}

// accumulatePan adds a primary drag to the pan pool. A drag against the pending pan first bleeds the
// pool off quickly so direction changes feel immediate. Any nonzero drag re-arms the height reset.
func (r *rigImpl) accumulatePan(in input.Snapshot, dt, actualMoveSpeed float32) {
	if !in.PrimaryHeld || !r.interacting || !r.limit.CanMove {
		return
	}

	right, up := r.panAxes()
	dx, dy := in.PointerDeltaX, in.PointerDeltaY

	angleUp := common.Angle(up, r.velMove)
	angleRight := common.Angle(right, r.velMove)
	if (dx != 0 && (angleRight > 90) != (dx < 0)) || (dy != 0 && (angleUp > 90) != (dy < 0)) {
		r.velMove = common.LerpVec3(r.velMove, mgl32.Vec3{}, dt*r.sensitivity.MoveSlowdown*reversalDampingScale)
	}

	r.velMove = r.velMove.Add(right.Mul(dx).Add(up.Mul(dy)).Mul(actualMoveSpeed * dt))
	if dx != 0 || dy != 0 {
		r.heightResetting = true
	}
}
