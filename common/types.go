// package common contains the plain types and stateless math shared by the rig, its input layer and its
// file formats. They are not interface-wrapped structs, just plain structs that express commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Range is a closed interval whose stored bounds may be given in either order.
// Consumers must read ActualMin and ActualMax; Min and Max are kept verbatim so a saved preset
// reproduces exactly what was loaded.
type Range struct {
	// Min is the first stored bound.
	Min float32 `json:"min"`
	// Max is the second stored bound.
	Max float32 `json:"max"`
}

// NewRange creates a Range from two bounds in any order.
//
// Parameters:
//   - min: first bound
//   - max: second bound
//
// Returns:
//   - Range: the range holding both bounds as given
func NewRange(min, max float32) Range {
	return Range{Min: min, Max: max}
}

// ActualMin returns the smaller of the two stored bounds.
func (r Range) ActualMin() float32 {
	return min(r.Min, r.Max)
}

// ActualMax returns the larger of the two stored bounds.
func (r Range) ActualMax() float32 {
	return max(r.Min, r.Max)
}

// Contains reports whether v lies within [ActualMin, ActualMax].
func (r Range) Contains(v float32) bool {
	return v >= r.ActualMin() && v <= r.ActualMax()
}

// Plane is the reference frame the rig pans, clamps and re-levels against.
// Its local axes are Rotation applied to +X (right), +Y (up) and +Z (forward).
type Plane struct {
	// Position is the plane origin in world space.
	Position mgl32.Vec3
	// Rotation orients the plane; identity means a horizontal ground plane.
	Rotation mgl32.Quat
}

// NewPlane creates a Plane at position with the given orientation.
//
// Parameters:
//   - position: plane origin in world space
//   - rotation: plane orientation
//
// Returns:
//   - *Plane: the plane reference
func NewPlane(position mgl32.Vec3, rotation mgl32.Quat) *Plane {
	return &Plane{Position: position, Rotation: rotation.Normalize()}
}

// Up returns the plane normal in world space.
func (p *Plane) Up() mgl32.Vec3 {
	return p.Rotation.Rotate(WorldUp)
}

// Forward returns the plane's local +Z axis in world space.
func (p *Plane) Forward() mgl32.Vec3 {
	return p.Rotation.Rotate(WorldForward)
}

// Right returns the plane's local +X axis in world space.
func (p *Plane) Right() mgl32.Vec3 {
	return p.Rotation.Rotate(WorldRight)
}

// LocalToWorld maps a plane-local (X, Z) point into world space.
//
// Parameters:
//   - xz: plane-local coordinates (X along Right, Y component holds Z along Forward)
//
// Returns:
//   - mgl32.Vec3: the world-space point on the plane
func (p *Plane) LocalToWorld(xz mgl32.Vec2) mgl32.Vec3 {
	return p.Position.Add(p.Right().Mul(xz[0])).Add(p.Forward().Mul(xz[1]))
}

// WorldToLocal maps a world-space point to plane-local (X, Z) coordinates.
func (p *Plane) WorldToLocal(point mgl32.Vec3) mgl32.Vec2 {
	return PlanePointXZ(point, p.Forward(), p.Right(), p.Position)
}

// Polygon is an ordered ring of plane-local (X, Z) points. The last point connects to the first.
// It must hold at least 3 distinct points; it does not have to be convex.
type Polygon []mgl32.Vec2

// DefaultBoundary is a 400x400 square centered on the plane origin.
func DefaultBoundary() Polygon {
	return Polygon{
		{-200, -200},
		{200, -200},
		{200, 200},
		{-200, 200},
	}
}

// Valid reports whether the polygon has enough points to enclose an area.
func (p Polygon) Valid() bool {
	return len(p) >= 3
}

// Clone returns an independent copy of the polygon.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}
