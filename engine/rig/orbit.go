package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
)

// maxPitch keeps the view off the poles, where yaw and roll become undefined.
const maxPitch = 89

// accumulateRotation adds a secondary drag to the rotation pools. Dragging up pitches the view up.
func (r *rigImpl) accumulateRotation(in input.Snapshot, dt float32) {
	if !in.SecondaryHeld || !r.interacting || !r.limit.CanRotate {
		return
	}
	r.velH += r.sensitivity.RotateSpeedHorizontal * dt * in.PointerDeltaX
	r.velV += r.sensitivity.RotateSpeedVertical * -dt * in.PointerDeltaY
}

// clampVertical trims the pitch pool so the pitch it leads to stays in the vertical range.
// Outside the range only rotation further out is cancelled.
func (r *rigImpl) clampVertical() {
	current := common.Pitch(r.rotation)
	changeTo := current + r.velV

	hi := min(max(r.limit.VerticalRotateRange.ActualMax(), -maxPitch), maxPitch)
	lo := min(max(r.limit.VerticalRotateRange.ActualMin(), -maxPitch), maxPitch)

	if changeTo > hi {
		if current < hi {
			r.velV += hi - changeTo
		} else if r.velV > 0 {
			r.velV = 0
		}
	}
	if changeTo < lo {
		if current > lo {
			r.velV += lo - changeTo
		} else if r.velV < 0 {
			r.velV = 0
		}
	}
}

// rotateAroundCenter orbits the position and turns the rotation by horizontal degrees around world up,
// then by vertical degrees around the rig's right axis as it stands after the horizontal turn.
// Any roll picked up along the way is removed.
func (r *rigImpl) rotateAroundCenter(horizontal, vertical float32) {
	qh := common.AngleAxis(horizontal, common.WorldUp)
	r.position = r.center.Add(qh.Rotate(r.position.Sub(r.center)))
	r.rotation = qh.Mul(r.rotation).Normalize()

	qv := common.AngleAxis(vertical, common.Right(r.rotation))
	r.position = r.center.Add(qv.Rotate(r.position.Sub(r.center)))
	r.rotation = qv.Mul(r.rotation).Normalize()

	level := common.AngleAxis(-common.Roll(r.rotation), common.Forward(r.rotation))
	r.rotation = level.Mul(r.rotation).Normalize()
}
