package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventDevicePointerDelta(t *testing.T) {
	d := NewEventDevice(0.5)

	d.CursorMoved(100, 100)
	d.Poll()
	dx, dy := d.PointerDelta()
	assert.Zero(t, dx, "first position only seeds the reference")
	assert.Zero(t, dy)

	d.CursorMoved(104, 90)
	d.CursorMoved(110, 80)
	d.Poll()
	dx, dy = d.PointerDelta()
	assert.Equal(t, float32(5), dx)
	assert.Equal(t, float32(10), dy, "moving up the screen is positive")

	d.Poll()
	dx, dy = d.PointerDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestEventDeviceScrollAccumulatesPerFrame(t *testing.T) {
	d := NewEventDevice(0)
	d.Scrolled(1)
	d.Scrolled(0.5)
	d.Poll()
	assert.Equal(t, float32(1.5), d.Scroll())
	d.Poll()
	assert.Zero(t, d.Scroll())
}

func TestEventDeviceButtonsAndKeys(t *testing.T) {
	d := NewEventDevice(0)
	src := NewSource(ModuleMouse, d)

	d.ButtonChanged(MouseButtonRight, true)
	d.Poll()
	s := src.Read()
	assert.True(t, s.SecondaryDown)
	assert.True(t, s.SecondaryHeld)

	d.Poll()
	s = src.Read()
	assert.False(t, s.SecondaryDown)
	assert.True(t, s.SecondaryHeld)

	d.ButtonChanged(MouseButtonRight, false)
	d.KeyChanged(KeyW, true)
	d.SetPointerFree(false)
	d.Poll()
	s = src.Read()
	assert.True(t, s.SecondaryUp)
	assert.False(t, s.CanInteractStart)
	assert.True(t, d.Key(KeyW).Down)
	assert.Nil(t, d.Touches())
}
