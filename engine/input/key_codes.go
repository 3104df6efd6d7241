package input

import (
	"strings"

	"github.com/pkg/errors"
)

// Key is a virtual key code. The values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

const (
	KeyW     Key = 87  // W key (ASCII)
	KeyA     Key = 65  // A key (ASCII)
	KeyS     Key = 83  // S key (ASCII)
	KeyD     Key = 68  // D key (ASCII)
	KeyRight Key = 262 // Right arrow (GLFW)
	KeyLeft  Key = 263 // Left arrow (GLFW)
	KeyDown  Key = 264 // Down arrow (GLFW)
	KeyUp    Key = 265 // Up arrow (GLFW)
	KeyEsc   Key = 256 // Escape key (GLFW)
)

// MouseButton is a pointer button index. The values match GLFW mouse button codes.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// MovementKeys are the keys the keyboard hybrid module treats as its primary "button".
var MovementKeys = []Key{KeyW, KeyA, KeyS, KeyD}

// AxisKeys are every key that feeds the keyboard hybrid's horizontal and vertical axes.
var AxisKeys = []Key{KeyW, KeyA, KeyS, KeyD, KeyRight, KeyLeft, KeyDown, KeyUp}

var keyNames = map[string]Key{
	"w":      KeyW,
	"a":      KeyA,
	"s":      KeyS,
	"d":      KeyD,
	"right":  KeyRight,
	"left":   KeyLeft,
	"down":   KeyDown,
	"up":     KeyUp,
	"escape": KeyEsc,
}

var buttonNames = map[string]MouseButton{
	"left":   MouseButtonLeft,
	"right":  MouseButtonRight,
	"middle": MouseButtonMiddle,
}

// UnmarshalText decodes a key name such as "w" or "left" (case-insensitive).
func (k *Key) UnmarshalText(text []byte) error {
	v, ok := keyNames[strings.ToLower(string(text))]
	if !ok {
		return errors.Errorf("unknown key %q", text)
	}
	*k = v
	return nil
}

// MarshalText encodes the key by name.
func (k Key) MarshalText() ([]byte, error) {
	for name, v := range keyNames {
		if v == k {
			return []byte(name), nil
		}
	}
	return nil, errors.Errorf("key %d has no name", int(k))
}

// UnmarshalText decodes a mouse button name: "left", "right" or "middle".
func (b *MouseButton) UnmarshalText(text []byte) error {
	v, ok := buttonNames[strings.ToLower(string(text))]
	if !ok {
		return errors.Errorf("unknown mouse button %q", text)
	}
	*b = v
	return nil
}

// MarshalText encodes the mouse button by name.
func (b MouseButton) MarshalText() ([]byte, error) {
	for name, v := range buttonNames {
		if v == b {
			return []byte(name), nil
		}
	}
	return nil, errors.Errorf("mouse button %d has no name", int(b))
}
