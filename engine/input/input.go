package input

import (
	"strings"

	"github.com/pkg/errors"
)

// Module selects how raw device state is mapped onto a Snapshot.
type Module int

const (
	// ModuleMouse maps the left button to primary and the right button to secondary.
	ModuleMouse Module = iota
	// ModuleKeyboardMouse maps WASD to primary and the middle button to secondary (free look).
	ModuleKeyboardMouse
	// ModuleTouch maps one-finger drags to primary, three-finger drags to secondary and pinch to scroll.
	ModuleTouch
)

var moduleNames = map[Module]string{
	ModuleMouse:         "mouse",
	ModuleKeyboardMouse: "keyboard_mouse",
	ModuleTouch:         "touch",
}

// String returns the config name of the module.
func (m Module) String() string {
	if name, ok := moduleNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseModule resolves a module from its config name.
//
// Parameters:
//   - name: "mouse", "keyboard_mouse" or "touch" (case-insensitive)
//
// Returns:
//   - Module: the matching module
//   - error: error if the name is unknown
func ParseModule(name string) (Module, error) {
	for m, n := range moduleNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return ModuleMouse, errors.Errorf("unknown input module %q", name)
}

// UnmarshalText lets config files name the module.
func (m *Module) UnmarshalText(text []byte) error {
	v, err := ParseModule(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText encodes the module by name.
func (m Module) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// readerFunc maps one frame of device state onto a Snapshot.
type readerFunc func(d Device) Snapshot

// readers is the dispatch table from module to its mapping.
var readers = map[Module]readerFunc{
	ModuleMouse:         readMouse,
	ModuleKeyboardMouse: readKeyboardMouse,
	ModuleTouch:         readTouch,
}

// Source produces one Snapshot per tick from a device.
type Source interface {
	// Module returns the mapping in use.
	Module() Module

	// Device returns the underlying device.
	Device() Device

	// Read maps the device's current frame onto a Snapshot.
	//
	// Returns:
	//   - Snapshot: the input for this tick
	Read() Snapshot
}

type source struct {
	module Module
	device Device
	read   readerFunc
}

var _ Source = &source{}

// NewSource binds a device to a module's mapping. Unknown modules fall back to ModuleMouse.
//
// Parameters:
//   - module: the mapping to use
//   - device: the device to read from
//
// Returns:
//   - Source: the bound source
func NewSource(module Module, device Device) Source {
	read, ok := readers[module]
	if !ok {
		module = ModuleMouse
		read = readers[ModuleMouse]
	}
	return &source{module: module, device: device, read: read}
}

func (s *source) Module() Module {
	return s.module
}

func (s *source) Device() Device {
	return s.device
}

func (s *source) Read() Snapshot {
	if s.device == nil {
		return Idle()
	}
	return s.read(s.device)
}
