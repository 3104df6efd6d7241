// Package preset reads and writes rig sensitivity, limits and target poses as YAML.
//
// A file may hold any of the three sections:
//
//	sensitivity:
//	  move_speed: 5
//	  rotate_slowdown: 3
//	target:
//	  position: [0, 0, 0]
//	  rotation: [45, 0, 0]   # pitch, yaw, roll in degrees, or [x, y, z, w]
//	  distance: 20
//	limit:
//	  vertical_rotate_range: [10, 80]
//	  zoom_range: [5, 100]
//	  can_move: true
//
// Missing sensitivity and limit fields keep their defaults.
package preset

import (
	"bytes"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML form of a rig preset.
type File struct {
	Sensitivity *Sensitivity `yaml:"sensitivity,omitempty"`
	Target      *Target      `yaml:"target,omitempty"`
	Limit       *Limit       `yaml:"limit,omitempty"`
}

// Sensitivity is the YAML form of rig.Sensitivity.
type Sensitivity struct {
	MoveSpeed                float32 `yaml:"move_speed"`
	RotateSpeedHorizontal    float32 `yaml:"rotate_speed_horizontal"`
	RotateSpeedVertical      float32 `yaml:"rotate_speed_vertical"`
	ZoomSpeed                float32 `yaml:"zoom_speed"`
	MoveSlowdown             float32 `yaml:"move_slowdown"`
	RotateSlowdown           float32 `yaml:"rotate_slowdown"`
	ZoomSlowdown             float32 `yaml:"zoom_slowdown"`
	LookTargetMoveSlowdown   float32 `yaml:"look_target_move_slowdown"`
	LookTargetRotateSlowdown float32 `yaml:"look_target_rotate_slowdown"`
}

// UnmarshalYAML fills fields missing from the document with rig.DefaultSensitivity.
func (s *Sensitivity) UnmarshalYAML(node *yaml.Node) error {
	type plain Sensitivity
	p := plain(FromSensitivity(rig.DefaultSensitivity()))
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Sensitivity(p)
	return nil
}

// Rig converts to the rig's form.
func (s Sensitivity) Rig() rig.Sensitivity {
	return rig.Sensitivity(s)
}

// FromSensitivity converts from the rig's form.
func FromSensitivity(s rig.Sensitivity) Sensitivity {
	return Sensitivity(s)
}

// Target is the YAML form of rig.Target.
type Target struct {
	Position Vec3     `yaml:"position"`
	Rotation Rotation `yaml:"rotation"`
	Distance float32  `yaml:"distance"`
}

// UnmarshalYAML rejects targets without a distance and defaults the rotation to identity.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	type plain Target
	p := plain{Rotation: Rotation(mgl32.QuatIdent())}
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Distance <= 0 {
		return errors.Errorf("line %d: target distance must be positive", node.Line)
	}
	*t = Target(p)
	return nil
}

// Rig converts to the rig's form.
func (t Target) Rig() rig.Target {
	return rig.Target{
		Position: mgl32.Vec3(t.Position),
		Rotation: mgl32.Quat(t.Rotation),
		Distance: t.Distance,
	}
}

// FromTarget converts from the rig's form.
func FromTarget(t rig.Target) Target {
	return Target{
		Position: Vec3(t.Position),
		Rotation: Rotation(t.Rotation),
		Distance: t.Distance,
	}
}

// Limit is the YAML form of rig.Limit.
type Limit struct {
	VerticalRotateRange Range `yaml:"vertical_rotate_range"`
	ZoomRange           Range `yaml:"zoom_range"`
	CanMove             bool  `yaml:"can_move"`
	CanRotate           bool  `yaml:"can_rotate"`
	CanZoom             bool  `yaml:"can_zoom"`
}

// UnmarshalYAML fills fields missing from the document with rig.DefaultLimit.
func (l *Limit) UnmarshalYAML(node *yaml.Node) error {
	type plain Limit
	p := plain(FromLimit(rig.DefaultLimit()))
	if err := node.Decode(&p); err != nil {
		return err
	}
	*l = Limit(p)
	return nil
}

// Rig converts to the rig's form.
func (l Limit) Rig() rig.Limit {
	return rig.Limit{
		VerticalRotateRange: common.Range(l.VerticalRotateRange),
		ZoomRange:           common.Range(l.ZoomRange),
		CanMove:             l.CanMove,
		CanRotate:           l.CanRotate,
		CanZoom:             l.CanZoom,
	}
}

// FromLimit converts from the rig's form.
func FromLimit(l rig.Limit) Limit {
	return Limit{
		VerticalRotateRange: Range(l.VerticalRotateRange),
		ZoomRange:           Range(l.ZoomRange),
		CanMove:             l.CanMove,
		CanRotate:           l.CanRotate,
		CanZoom:             l.CanZoom,
	}
}

// Decode reads a preset document. An empty document yields an empty File.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - *File: the decoded preset
//   - error: error if the YAML is malformed or a value is out of shape
func Decode(r io.Reader) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode preset")
	}
	return f, nil
}

// Load reads a preset file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - *File: the decoded preset
//   - error: error if the file cannot be read or decoded
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read preset %s", path)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "load preset %s", path)
	}
	return f, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "encode preset")
	}
	return errors.Wrap(enc.Close(), "encode preset")
}

// Save writes f to path, replacing any existing file.
func Save(path string, f *File) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write preset %s", path)
	}
	return nil
}

// Apply loads every section present in f into r. A file with both a target and a limit is loaded as
// one preset, target first.
//
// Parameters:
//   - r: the rig to configure
//   - f: the preset
//
// Returns:
//   - error: error if f is nil or the rig rejects a section
func Apply(r rig.Rig, f *File) error {
	if f == nil {
		return errors.Wrap(rig.ErrInvalidArgument, "nil preset file")
	}
	if f.Sensitivity != nil {
		s := f.Sensitivity.Rig()
		if err := r.LoadSensitivity(&s); err != nil {
			return err
		}
	}

	p := f.Preset()
	switch {
	case p.Target != nil && p.Limit != nil:
		return r.LoadPreset(&p)
	case p.Target != nil:
		return r.LoadTarget(p.Target)
	case p.Limit != nil:
		return r.LoadLimit(p.Limit)
	}
	return nil
}

// Preset returns the target and limit sections in the rig's form. Absent sections are nil.
func (f *File) Preset() rig.Preset {
	var p rig.Preset
	if f.Target != nil {
		t := f.Target.Rig()
		p.Target = &t
	}
	if f.Limit != nil {
		l := f.Limit.Rig()
		p.Limit = &l
	}
	return p
}

// Capture saves every section of r into a File.
//
// Parameters:
//   - r: the rig to read
//
// Returns:
//   - *File: sensitivity, current target and limit
func Capture(r rig.Rig) *File {
	s := FromSensitivity(r.SaveSensitivity())
	t := FromTarget(r.SaveTarget())
	l := FromLimit(r.SaveLimit())
	return &File{Sensitivity: &s, Target: &t, Limit: &l}
}
