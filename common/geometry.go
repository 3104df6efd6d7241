package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PlanePointXZ expresses point in the coordinates of a plane: X along planeRight and Z along planeForward,
// relative to planePoint. The point is first flattened onto the plane. Each component takes its sign from
// the angle between the projected component and the axis, so the sign holds over the full circle.
//
// Parameters:
//   - point: world-space point
//   - planeForward: plane +Z axis
//   - planeRight: plane +X axis
//   - planePoint: plane origin
//
// Returns:
//   - mgl32.Vec2: plane-local (X, Z)
func PlanePointXZ(point, planeForward, planeRight, planePoint mgl32.Vec3) mgl32.Vec2 {
	normal := SafeNormalize(planeForward.Cross(planeRight))
	onPlane := ProjectOnPlane(point.Sub(planePoint), normal)

	px := Project(onPlane, planeRight)
	angleX := Angle(px, planeRight) - 90
	pz := Project(onPlane, planeForward)
	angleZ := Angle(pz, planeForward) - 90

	return mgl32.Vec2{px.Len() * -Sign(angleX), pz.Len() * -Sign(angleZ)}
}

// PointInPolygon reports whether p lies inside poly using the even-odd ray casting rule.
// For each edge the inclusion flag toggles when p's Z lies between the edge endpoints' Z and the edge
// crosses to the right of p at that Z. Points exactly on an edge may land on either side.
//
// Parameters:
//   - p: plane-local point
//   - poly: the boundary ring (at least 3 points)
//
// Returns:
//   - bool: true if p is inside
func PointInPolygon(p mgl32.Vec2, poly Polygon) bool {
	n := len(poly)
	if n == 0 {
		return false
	}
	inside := false
	px, pz := p[0], p[1]
	endX, endZ := poly[n-1][0], poly[n-1][1]
	for i := 0; i < n; i++ {
		startX, startZ := endX, endZ
		endX, endZ = poly[i][0], poly[i][1]
		if (endZ > pz) != (startZ > pz) && (px-endX) < (pz-endZ)*(startX-endX)/(startZ-endZ) {
			inside = !inside
		}
	}
	return inside
}

// ClosestPointOnPolygon finds the point on the boundary of poly nearest to outside.
// Each edge contributes the projection of outside onto the edge's line, snapped to an endpoint when the
// projection falls past it (angle from the endpoint greater than 90 degrees). The nearest candidate wins.
//
// Parameters:
//   - outside: plane-local point, normally outside the polygon
//   - poly: the boundary ring
//
// Returns:
//   - mgl32.Vec2: the nearest boundary point, or the zero vector for an empty polygon
func ClosestPointOnPolygon(outside mgl32.Vec2, poly Polygon) mgl32.Vec2 {
	best := float32(math.MaxFloat32)
	var closest mgl32.Vec2
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		candidate := ClosestPointOnSegment(outside, a, b)
		if d := candidate.Sub(outside).Len(); d < best {
			best = d
			closest = candidate
		}
	}
	return closest
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(p, a, b mgl32.Vec2) mgl32.Vec2 {
	ab := b.Sub(a)
	projected := a
	if sq := ab.Dot(ab); sq >= angleEpsilon {
		projected = a.Add(ab.Mul(p.Sub(a).Dot(ab) / sq))
	}
	if Angle2(projected.Sub(a), ab) > 90 {
		return a
	}
	if Angle2(projected.Sub(b), a.Sub(b)) > 90 {
		return b
	}
	return projected
}
