package input

// Snapshot is everything the rig reads from input on one tick.
// Primary drives panning and secondary drives orbiting, whatever physical control a module maps them to.
type Snapshot struct {
	PointerDeltaX float32 `json:"pointer_delta_x" yaml:"pointer_delta_x"`
	PointerDeltaY float32 `json:"pointer_delta_y" yaml:"pointer_delta_y"`
	Scroll        float32 `json:"scroll" yaml:"scroll"`

	PrimaryDown bool `json:"primary_down" yaml:"primary_down"`
	PrimaryHeld bool `json:"primary_held" yaml:"primary_held"`
	PrimaryUp   bool `json:"primary_up" yaml:"primary_up"`

	SecondaryDown bool `json:"secondary_down" yaml:"secondary_down"`
	SecondaryHeld bool `json:"secondary_held" yaml:"secondary_held"`
	SecondaryUp   bool `json:"secondary_up" yaml:"secondary_up"`

	// CanInteractStart is false while something else (UI, overlay) claims the pointer.
	CanInteractStart bool `json:"can_interact_start" yaml:"can_interact_start"`
}

// Idle returns a snapshot with no movement, no buttons and the pointer free.
func Idle() Snapshot {
	return Snapshot{CanInteractStart: true}
}
