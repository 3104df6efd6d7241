// Package config loads a rig host configuration from YAML: the input scheme, the starting pose, the
// reference plane and boundary, the tick rate and an inline preset.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/preset"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultTickRate is the tick rate used when a file does not set one.
const DefaultTickRate = 60

// Pose is a position and orientation.
type Pose struct {
	Position preset.Vec3     `yaml:"position"`
	Rotation preset.Rotation `yaml:"rotation"`
}

// UnmarshalYAML defaults the rotation to identity.
func (p *Pose) UnmarshalYAML(node *yaml.Node) error {
	type plain Pose
	v := plain{Rotation: preset.Rotation(mgl32.QuatIdent())}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Pose(v)
	return nil
}

// Config is a rig host configuration.
type Config struct {
	Input input.Module `yaml:"input"`
	// InitFromTransform reads the starting pose from the host camera instead of Transform.
	InitFromTransform *bool `yaml:"init_from_transform,omitempty"`
	Transform         *Pose `yaml:"transform,omitempty"`
	// Center is the starting orbit center. Where the view ray meets the plane takes precedence.
	Center   *preset.Vec3  `yaml:"center,omitempty"`
	Plane    *Pose         `yaml:"plane,omitempty"`
	Boundary []preset.Vec2 `yaml:"boundary,omitempty"`
	TickRate float64       `yaml:"tick_rate,omitempty"`
	Listen   string        `yaml:"listen,omitempty"`
	Preset   *preset.File  `yaml:"preset,omitempty"`
}

// Default returns the mouse scheme at the default tick rate with every rig default.
func Default() *Config {
	return &Config{
		Input:    input.ModuleMouse,
		TickRate: DefaultTickRate,
	}
}

// Decode reads a configuration document over Default.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - *Config: the decoded and validated configuration
//   - error: error if the YAML is malformed or the configuration is invalid
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a configuration file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - *Config: the decoded and validated configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return c, nil
}

// Validate checks the values decoding cannot.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return errors.Errorf("tick_rate must be positive, got %v", c.TickRate)
	}
	if c.Boundary != nil && len(c.Boundary) < 3 {
		return errors.Errorf("boundary needs at least 3 points, got %d", len(c.Boundary))
	}
	if c.Boundary != nil && c.Plane == nil {
		return errors.New("boundary requires a plane")
	}
	return nil
}

// InitFromTransformEnabled reports whether the rig should read its starting pose from the host.
// Defaults to true unless a transform is given.
func (c *Config) InitFromTransformEnabled() bool {
	return *common.Coalesce(c.InitFromTransform, boolPtr(c.Transform == nil))
}

// RigOptions converts the configuration into rig options. The inline preset is not included; apply
// it with ApplyPreset once the rig is initialized.
//
// Returns:
//   - []rig.RigOption: options for rig.NewRig
func (c *Config) RigOptions() []rig.RigOption {
	opts := []rig.RigOption{rig.WithInitFromTransform(c.InitFromTransformEnabled())}
	if c.Transform != nil {
		opts = append(opts, rig.WithPose(mgl32.Vec3(c.Transform.Position), mgl32.Quat(c.Transform.Rotation)))
	}
	if c.Plane != nil {
		opts = append(opts, rig.WithPlane(common.NewPlane(mgl32.Vec3(c.Plane.Position), mgl32.Quat(c.Plane.Rotation))))
	}
	if c.Boundary != nil {
		poly := make(common.Polygon, len(c.Boundary))
		for i, p := range c.Boundary {
			poly[i] = mgl32.Vec2(p)
		}
		opts = append(opts, rig.WithBoundary(poly))
	}
	if c.Center != nil {
		opts = append(opts, rig.WithOrbitCenter(mgl32.Vec3(*c.Center)))
	}
	if c.Preset != nil {
		if s := c.Preset.Sensitivity; s != nil {
			opts = append(opts, rig.WithSensitivity(s.Rig()))
		}
		if l := c.Preset.Limit; l != nil {
			opts = append(opts, rig.WithLimit(l.Rig()))
		}
	}
	return opts
}

// ApplyPreset starts the rig toward the inline preset's target, if any. Sensitivity and limits are
// already set through RigOptions.
func (c *Config) ApplyPreset(r rig.Rig) error {
	if c.Preset == nil || c.Preset.Target == nil {
		return nil
	}
	t := c.Preset.Target.Rig()
	return r.LoadTarget(&t)
}

// NewSource builds the configured input source over dev.
func (c *Config) NewSource(dev input.Device) input.Source {
	return input.NewSource(c.Input, dev)
}

func boolPtr(v bool) *bool {
	return &v
}
