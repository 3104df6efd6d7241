package input

func readMouse(d Device) Snapshot {
	dx, dy := d.PointerDelta()
	primary := d.MouseButton(MouseButtonLeft)
	secondary := d.MouseButton(MouseButtonRight)
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
