package input

// PinchScale converts the change in distance between two contacts (pixels) into scroll units.
const PinchScale = -0.01

// readTouch maps a single contact to primary and a three-contact gesture to secondary. Both read the
// phase of the first contact. Deltas always come from the first contact.
func readTouch(d Device) Snapshot {
	touches := d.Touches()

	primary, secondary := TouchNone, TouchNone
	switch len(touches) {
	case 1:
		primary = touches[0].Phase
	case 3:
		secondary = touches[0].Phase
	}

	var dx, dy float32
	if len(touches) > 0 {
		dx, dy = touches[0].Delta[0], touches[0].Delta[1]
	}

	return Snapshot{
		PointerDeltaX:    dx,
		PointerDeltaY:    dy,
		Scroll:           PinchScroll(touches),
		PrimaryDown:      primary == TouchBegan,
		PrimaryHeld:      primary == TouchMoved,
		PrimaryUp:        primary == TouchEnded,
		SecondaryDown:    secondary == TouchBegan,
		SecondaryHeld:    secondary == TouchMoved,
		SecondaryUp:      secondary == TouchEnded,
		CanInteractStart: d.PointerFree(),
	}
}

// PinchScroll simulates a scroll wheel from a two-contact pinch: spreading the fingers scrolls up
// (zooms in), pinching scrolls down. Any other contact count yields 0.
//
// Parameters:
//   - touches: the active contacts this frame
//
// Returns:
//   - float32: the simulated scroll amount
func PinchScroll(touches []Touch) float32 {
	if len(touches) != 2 {
		return 0
	}
	t0, t1 := touches[0], touches[1]
	prev0 := t0.Position.Sub(t0.Delta)
	prev1 := t1.Position.Sub(t1.Delta)

	prevMag := prev0.Sub(prev1).Len()
	mag := t0.Position.Sub(t1.Position).Len()
	return (prevMag - mag) * PinchScale
}
