package preset

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Vec3 is a point or direction written as a [x, y, z] sequence.
type Vec3 mgl32.Vec3

// UnmarshalYAML decodes a three element sequence.
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	var xs []float32
	if err := node.Decode(&xs); err != nil {
		return errors.Wrapf(err, "line %d: vector", node.Line)
	}
	if len(xs) != 3 {
		return errors.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(xs))
	}
	*v = Vec3{xs[0], xs[1], xs[2]}
	return nil
}

// MarshalYAML encodes the vector as a flow sequence.
func (v Vec3) MarshalYAML() (any, error) {
	return flow(v[0], v[1], v[2]), nil
}

// Vec2 is a plane-local point written as a [x, z] sequence.
type Vec2 mgl32.Vec2

// UnmarshalYAML decodes a two element sequence.
func (v *Vec2) UnmarshalYAML(node *yaml.Node) error {
	var xs []float32
	if err := node.Decode(&xs); err != nil {
		return errors.Wrapf(err, "line %d: point", node.Line)
	}
	if len(xs) != 2 {
		return errors.Errorf("line %d: point needs 2 components, got %d", node.Line, len(xs))
	}
	*v = Vec2{xs[0], xs[1]}
	return nil
}

// MarshalYAML encodes the point as a flow sequence.
func (v Vec2) MarshalYAML() (any, error) {
	return flow(v[0], v[1]), nil
}

// Rotation is an orientation written either as Euler angles [pitch, yaw, roll] in degrees or as a
// quaternion [x, y, z, w]. It is always written back as Euler angles.
type Rotation mgl32.Quat

// UnmarshalYAML decodes three Euler angles or four quaternion components.
func (r *Rotation) UnmarshalYAML(node *yaml.Node) error {
	var xs []float32
	if err := node.Decode(&xs); err != nil {
		return errors.Wrapf(err, "line %d: rotation", node.Line)
	}
	switch len(xs) {
	case 3:
		*r = Rotation(common.EulerToQuat(xs[0], xs[1], xs[2]))
	case 4:
		q := mgl32.Quat{W: xs[3], V: mgl32.Vec3{xs[0], xs[1], xs[2]}}
		if q.Len() == 0 {
			return errors.Errorf("line %d: zero quaternion", node.Line)
		}
		*r = Rotation(q.Normalize())
	default:
		return errors.Errorf("line %d: rotation needs 3 euler angles or 4 quaternion components, got %d", node.Line, len(xs))
	}
	return nil
}

// MarshalYAML encodes the rotation as [pitch, yaw, roll].
func (r Rotation) MarshalYAML() (any, error) {
	e := common.QuatToEuler(mgl32.Quat(r))
	return flow(e[0], e[1], e[2]), nil
}

// Range is a [min, max] pair. The bounds may be inverted and are kept in the order written.
type Range common.Range

// UnmarshalYAML decodes a two element sequence.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var xs []float32
	if err := node.Decode(&xs); err != nil {
		return errors.Wrapf(err, "line %d: range", node.Line)
	}
	if len(xs) != 2 {
		return errors.Errorf("line %d: range needs 2 bounds, got %d", node.Line, len(xs))
	}
	*r = Range(common.NewRange(xs[0], xs[1]))
	return nil
}

// MarshalYAML encodes the range as a flow sequence.
func (r Range) MarshalYAML() (any, error) {
	return flow(r.Min, r.Max), nil
}

// flow builds a single-line sequence node.
func flow(xs ...float32) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range xs {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(x), 'g', -1, 32),
		})
	}
	return n
}
