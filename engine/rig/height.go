package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// resetHeight eases the center (and the position with it) back onto the plane's height.
func (r *rigImpl) resetHeight(dt float32) {
	if !r.heightResetting || r.plane == nil {
		return
	}
	n := r.plane.Up()
	leveled := common.ProjectOnPlane(r.center, n).Add(common.Project(r.plane.Position, n))
	offset := common.LerpVec3(mgl32.Vec3{}, r.center.Sub(leveled), dt*r.sensitivity.MoveSlowdown)
	r.center = r.center.Sub(offset)
	r.position = r.position.Sub(offset)
}
