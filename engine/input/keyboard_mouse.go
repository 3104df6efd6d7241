package input

// readKeyboardMouse treats the movement keys as the primary button and the middle mouse button as
// secondary. While the middle button is held the pointer drives the deltas (free look); otherwise the
// negated key axes do, so W pans the view the same way as dragging down.
func readKeyboardMouse(d Device) Snapshot {
	var primary ButtonState
	primary.Up = true
	for _, k := range MovementKeys {
		st := d.Key(k)
		primary.Down = primary.Down || st.Down
		primary.Held = primary.Held || st.Held
		// Release registers only when every movement key is released on the same frame.
		primary.Up = primary.Up && st.Up
	}

	secondary := d.MouseButton(MouseButtonMiddle)

	dx, dy := d.PointerDelta()
	if !secondary.Held {
		dx = -keyAxis(d, KeyD, KeyA, KeyRight, KeyLeft)
		dy = -keyAxis(d, KeyW, KeyS, KeyUp, KeyDown)
	}

	return Snapshot{
		PointerDeltaX:    dx,
		PointerDeltaY:    dy,
		Scroll:           d.Scroll(),
		PrimaryDown:      primary.Down,
		PrimaryHeld:      primary.Held,
		PrimaryUp:        primary.Up,
		SecondaryDown:    secondary.Down,
		SecondaryHeld:    secondary.Held,
		SecondaryUp:      secondary.Up,
		CanInteractStart: d.PointerFree(),
	}
}

// keyAxis returns +1, -1 or 0 from a positive and negative key pair, each with an alternate.
func keyAxis(d Device, pos, neg, altPos, altNeg Key) float32 {
	var v float32
	if d.Key(pos).Held || d.Key(altPos).Held {
		v++
	}
	if d.Key(neg).Held || d.Key(altNeg).Held {
		v--
	}
	return v
}
