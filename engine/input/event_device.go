package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPointerScale converts cursor pixels into pointer axis units.
const DefaultPointerScale = 0.1

// EventDevice is a Device fed by event callbacks (cursor moves, wheel, button and key changes) from a
// windowing backend. Events may arrive on any goroutine; Poll latches everything received since the
// previous Poll into the frame the accessors report.
type EventDevice struct {
	mu sync.Mutex

	scale float32

	// Pending since the last Poll
	cursor      mgl32.Vec2
	hasCursor   bool
	lastCursor  mgl32.Vec2
	hasLast     bool
	scroll      float32
	buttonsDown map[MouseButton]bool
	keysDown    map[Key]bool
	pointerFree bool

	// Latched by Poll
	frameDX, frameDY float32
	frameScroll      float32
	framePointerFree bool
	buttons          *EdgeTracker[MouseButton]
	keys             *EdgeTracker[Key]
}

var _ Device = &EventDevice{}
var _ Poller = &EventDevice{}

// NewEventDevice creates an event-fed device.
//
// Parameters:
//   - scale: pointer axis units per cursor pixel; <= 0 selects DefaultPointerScale
//
// Returns:
//   - *EventDevice: the device
func NewEventDevice(scale float32) *EventDevice {
	if scale <= 0 {
		scale = DefaultPointerScale
	}
	return &EventDevice{
		scale:            scale,
		buttonsDown:      make(map[MouseButton]bool),
		keysDown:         make(map[Key]bool),
		pointerFree:      true,
		framePointerFree: true,
		buttons:          NewEdgeTracker[MouseButton](),
		keys:             NewEdgeTracker[Key](),
	}
}

// CursorMoved records the cursor position in window pixels (origin top-left).
func (d *EventDevice) CursorMoved(x, y float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = mgl32.Vec2{x, y}
	d.hasCursor = true
}

// Scrolled accumulates vertical wheel movement. Positive is away from the user.
func (d *EventDevice) Scrolled(dy float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scroll += dy
}

// ButtonChanged records a mouse button press or release.
func (d *EventDevice) ButtonChanged(b MouseButton, pressed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buttonsDown[b] = pressed
}

// KeyChanged records a key press or release.
func (d *EventDevice) KeyChanged(k Key, pressed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keysDown[k] = pressed
}

// SetPointerFree records whether another consumer currently claims the pointer.
func (d *EventDevice) SetPointerFree(free bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pointerFree = free
}

// Poll latches the events received since the previous Poll.
func (d *EventDevice) Poll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.frameDX, d.frameDY = 0, 0
	if d.hasCursor {
		if d.hasLast {
			delta := d.cursor.Sub(d.lastCursor)
			// Screen Y grows downward; pointer Y grows upward.
			d.frameDX, d.frameDY = delta[0]*d.scale, -delta[1]*d.scale
		}
		d.lastCursor = d.cursor
		d.hasLast = true
		d.hasCursor = false
	}

	d.frameScroll = d.scroll
	d.scroll = 0
	d.framePointerFree = d.pointerFree

	for _, b := range []MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle} {
		d.buttons.Update(b, d.buttonsDown[b])
	}
	for _, k := range AxisKeys {
		d.keys.Update(k, d.keysDown[k])
	}
	d.keys.Update(KeyEsc, d.keysDown[KeyEsc])
}

func (d *EventDevice) PointerDelta() (float32, float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameDX, d.frameDY
}

func (d *EventDevice) Scroll() float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameScroll
}

func (d *EventDevice) MouseButton(b MouseButton) ButtonState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buttons.State(b)
}

func (d *EventDevice) Key(k Key) ButtonState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keys.State(k)
}

// Touches always returns nil; window backends report touch as pointer events.
func (d *EventDevice) Touches() []Touch {
	return nil
}

func (d *EventDevice) PointerFree() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.framePointerFree
}
