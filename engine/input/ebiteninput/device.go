// Package ebiteninput reads mouse, keyboard and touch state from ebiten as an input.Device.
package ebiteninput

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ebitenKeys = map[input.Key]ebiten.Key{
	input.KeyW:     ebiten.KeyW,
	input.KeyA:     ebiten.KeyA,
	input.KeyS:     ebiten.KeyS,
	input.KeyD:     ebiten.KeyD,
	input.KeyRight: ebiten.KeyArrowRight,
	input.KeyLeft:  ebiten.KeyArrowLeft,
	input.KeyDown:  ebiten.KeyArrowDown,
	input.KeyUp:    ebiten.KeyArrowUp,
	input.KeyEsc:   ebiten.KeyEscape,
}

var ebitenButtons = map[input.MouseButton]ebiten.MouseButton{
	input.MouseButtonLeft:   ebiten.MouseButtonLeft,
	input.MouseButtonRight:  ebiten.MouseButtonRight,
	input.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Device samples ebiten's input state. Poll must be called from the game's Update, once per tick.
type Device struct {
	scale float32

	cursor    mgl32.Vec2
	hasCursor bool

	dx, dy  float32
	scroll  float32
	focused bool
	touches []input.Touch
	prev    map[ebiten.TouchID]mgl32.Vec2

	buttons *input.EdgeTracker[input.MouseButton]
	keys    *input.EdgeTracker[input.Key]
}

var _ input.Device = &Device{}
var _ input.Poller = &Device{}

// NewDevice creates an ebiten-backed device.
//
// Parameters:
//   - scale: pointer axis units per pixel; <= 0 selects input.DefaultPointerScale
//
// Returns:
//   - *Device: the device
func NewDevice(scale float32) *Device {
	if scale <= 0 {
		scale = input.DefaultPointerScale
	}
	return &Device{
		scale:   scale,
		prev:    make(map[ebiten.TouchID]mgl32.Vec2),
		buttons: input.NewEdgeTracker[input.MouseButton](),
		keys:    input.NewEdgeTracker[input.Key](),
	}
}

// Poll samples the current tick.
func (d *Device) Poll() {
	x, y := ebiten.CursorPosition()
	cursor := mgl32.Vec2{float32(x), float32(y)}
	d.dx, d.dy = 0, 0
	if d.hasCursor {
		// Screen Y grows downward; the pointer axis grows upward.
		d.dx = (cursor[0] - d.cursor[0]) * d.scale
		d.dy = -(cursor[1] - d.cursor[1]) * d.scale
	}
	d.cursor, d.hasCursor = cursor, true

	_, wy := ebiten.Wheel()
	d.scroll = float32(wy)
	d.focused = ebiten.IsFocused()

	for b, eb := range ebitenButtons {
		d.buttons.Update(b, ebiten.IsMouseButtonPressed(eb))
	}
	for k, ek := range ebitenKeys {
		d.keys.Update(k, ebiten.IsKeyPressed(ek))
	}

	d.pollTouches()
}

// pollTouches derives touch phases from which IDs appeared, stayed or left since the previous tick.
func (d *Device) pollTouches() {
	d.touches = d.touches[:0]
	justPressed := inpututil.AppendJustPressedTouchIDs(nil)

	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		pos := mgl32.Vec2{float32(x), float32(y)}

		phase := input.TouchStationary
		var delta mgl32.Vec2
		last, seen := d.prev[id]
		switch {
		case slices.Contains(justPressed, id) || !seen:
			phase = input.TouchBegan
		case pos != last:
			phase = input.TouchMoved
			delta = mgl32.Vec2{(pos[0] - last[0]) * d.scale, -(pos[1] - last[1]) * d.scale}
		}
		d.prev[id] = pos
		d.touches = append(d.touches, input.Touch{ID: int(id), Phase: phase, Position: pos, Delta: delta})
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		d.touches = append(d.touches, input.Touch{
			ID:       int(id),
			Phase:    input.TouchEnded,
			Position: mgl32.Vec2{float32(x), float32(y)},
		})
		delete(d.prev, id)
	}

	slices.SortFunc(d.touches, func(a, b input.Touch) int { return a.ID - b.ID })
}

func (d *Device) PointerDelta() (float32, float32) {
	return d.dx, d.dy
}

func (d *Device) Scroll() float32 {
	return d.scroll
}

func (d *Device) MouseButton(b input.MouseButton) input.ButtonState {
	return d.buttons.State(b)
}

func (d *Device) Key(k input.Key) input.ButtonState {
	return d.keys.State(k)
}

func (d *Device) Touches() []input.Touch {
	return d.touches
}

// PointerFree reports whether the window has focus.
func (d *Device) PointerFree() bool {
	return d.focused
}
