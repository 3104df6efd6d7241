package input

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// ButtonState is the per-frame state of a button or key.
type ButtonState struct {
	// Down is true only on the frame the button went down.
	Down bool
	// Held is true on every frame the button is down, including the first.
	Held bool
	// Up is true only on the frame the button was released.
	Up bool
}

// TouchPhase is the lifecycle phase of a touch point for the current frame.
type TouchPhase int

const (
	TouchNone TouchPhase = iota
	TouchBegan
	TouchStationary
	TouchMoved
	TouchEnded
)

// Touch is one contact point for the current frame.
type Touch struct {
	// ID identifies the contact across frames.
	ID int
	// Phase is the contact's phase this frame.
	Phase TouchPhase
	// Position is the current screen position in pixels.
	Position mgl32.Vec2
	// Delta is the movement since the previous frame in pixels.
	Delta mgl32.Vec2
}

// Device is the raw per-frame state of the host's pointer, keyboard and touch hardware.
// Implementations latch their state once per frame (see Poll on the adapters); every accessor
// returns the same value until the next latch.
type Device interface {
	// PointerDelta returns the pointer movement this frame, already scaled to axis units.
	//
	// Returns:
	//   - dx, dy: horizontal and vertical movement (positive right / up)
	PointerDelta() (dx, dy float32)

	// Scroll returns the scroll wheel movement this frame, positive away from the user.
	Scroll() float32

	// MouseButton returns the state of a pointer button.
	MouseButton(b MouseButton) ButtonState

	// Key returns the state of a keyboard key.
	Key(k Key) ButtonState

	// Touches returns the active contacts in a stable order.
	Touches() []Touch

	// PointerFree reports whether no other consumer (UI, overlay) currently claims the pointer.
	PointerFree() bool
}

// Poller is implemented by devices that latch their state once per frame. Hosts call Poll before
// reading a Source on every tick.
type Poller interface {
	Poll()
}

var touchPhaseNames = map[string]TouchPhase{
	"none":       TouchNone,
	"began":      TouchBegan,
	"stationary": TouchStationary,
	"moved":      TouchMoved,
	"ended":      TouchEnded,
}

// UnmarshalText decodes a touch phase name such as "began" or "moved".
func (p *TouchPhase) UnmarshalText(text []byte) error {
	v, ok := touchPhaseNames[strings.ToLower(string(text))]
	if !ok {
		return errors.Errorf("unknown touch phase %q", text)
	}
	*p = v
	return nil
}

// MarshalText encodes the touch phase by name.
func (p TouchPhase) MarshalText() ([]byte, error) {
	for name, v := range touchPhaseNames {
		if v == p {
			return []byte(name), nil
		}
	}
	return nil, errors.Errorf("touch phase %d has no name", int(p))
}
