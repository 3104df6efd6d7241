package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
)

// clampPendingPan trims the whole pan pool so the center it leads to lies on or inside the boundary.
// The excess is measured in plane-local coordinates and removed along the plane's axes.
func (r *rigImpl) clampPendingPan() {
	if r.plane == nil || !r.boundary.Valid() {
		return
	}

	to := r.center.Add(r.velMove)
	xz := common.PlanePointXZ(to, r.plane.Forward(), r.plane.Right(), r.plane.Position)
	if common.PointInPolygon(xz, r.boundary) {
		return
	}

	closest := common.ClosestPointOnPolygon(xz, r.boundary)
	excess := xz.Sub(closest)
	r.velMove = r.velMove.Sub(r.plane.Right().Mul(excess[0]).Add(r.plane.Forward().Mul(excess[1])))
}
