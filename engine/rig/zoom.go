package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// accumulateZoom adds scroll input to the zoom pool. Scrolling up (positive) zooms in.
func (r *rigImpl) accumulateZoom(in input.Snapshot, actualZoomSpeed float32) {
	if in.CanInteractStart && r.limit.CanZoom {
		r.velZoom += -in.Scroll * actualZoomSpeed
	}
}

// clampZoom trims the zoom pool so the distance it leads to stays in the zoom range. When the rig is
// already outside the range only movement further out is cancelled, so it can ease back in.
func (r *rigImpl) clampZoom(centerDistance float32) {
	lo, hi := r.limit.ZoomRange.ActualMin(), r.limit.ZoomRange.ActualMax()

	zoomTo := common.MoveTowards(r.position, r.center, -r.velZoom)
	d := r.center.Sub(zoomTo).Len()

	if d < lo {
		if centerDistance > lo {
			r.velZoom += lo - d
		} else if r.velZoom < 0 {
			r.velZoom = 0
		}
	}
	if d > hi {
		if centerDistance < hi {
			r.velZoom += hi - d
		} else if r.velZoom > 0 {
			r.velZoom = 0
		}
	}
}

// applyZoom moves the position away from the center by offset (toward it when negative). A step that
// would land on the center is skipped. A non-finite result resets the position to the origin.
func (r *rigImpl) applyZoom(offset float32) {
	zoomTo := common.MoveTowards(r.position, r.center, -offset)
	if !common.IsFinite(zoomTo[:]...) {
		r.logger.WithFields(logrus.Fields{
			"position":      r.position,
			"center":        r.center,
			"velocity_zoom": r.velZoom,
		}).Warn("non-finite zoom step, resetting position to origin")
		r.position = mgl32.Vec3{}
		r.velZoom = 0
		return
	}
	if zoomTo.Sub(r.center).Len() > minCenterDistance {
		r.position = zoomTo
	}
}
