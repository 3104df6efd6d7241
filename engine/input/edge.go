package input

// EdgeTracker derives per-frame Down/Held/Up states from a level signal ("is it pressed now").
// Adapters whose backend only reports levels feed every tracked control once per frame.
type EdgeTracker[K comparable] struct {
	held   map[K]bool
	states map[K]ButtonState
}

// NewEdgeTracker creates an empty tracker; every control starts released.
func NewEdgeTracker[K comparable]() *EdgeTracker[K] {
	return &EdgeTracker[K]{
		held:   make(map[K]bool),
		states: make(map[K]ButtonState),
	}
}

// Update records the level of a control for a new frame and returns its edge state.
//
// Parameters:
//   - k: the control
//   - pressed: whether the control is down this frame
//
// Returns:
//   - ButtonState: Down on the first pressed frame, Up on the first released frame, Held while pressed
func (t *EdgeTracker[K]) Update(k K, pressed bool) ButtonState {
	was := t.held[k]
	st := ButtonState{
		Down: pressed && !was,
		Held: pressed,
		Up:   !pressed && was,
	}
	t.held[k] = pressed
	t.states[k] = st
	return st
}

// State returns the state recorded by the last Update for the control.
func (t *EdgeTracker[K]) State(k K) ButtonState {
	return t.states[k]
}

// Reset releases every control without producing Up edges.
func (t *EdgeTracker[K]) Reset() {
	clear(t.held)
	clear(t.states)
}
