package input

import (
	"io"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Frame is one recorded frame of device state. Buttons and keys list what is held; edges are
// derived from consecutive frames.
type Frame struct {
	// Repeat plays the frame this many times (0 and 1 both mean once).
	Repeat       int             `yaml:"repeat,omitempty"`
	PointerDelta [2]float32      `yaml:"pointer_delta,omitempty"`
	Scroll       float32         `yaml:"scroll,omitempty"`
	Buttons      []MouseButton   `yaml:"buttons,omitempty"`
	Keys         []Key           `yaml:"keys,omitempty"`
	Touches      []ScriptedTouch `yaml:"touches,omitempty"`
	// Blocked marks the pointer as claimed by something else for this frame.
	Blocked bool `yaml:"blocked,omitempty"`
}

// ScriptedTouch is the recorded form of a Touch.
type ScriptedTouch struct {
	ID       int        `yaml:"id"`
	Phase    TouchPhase `yaml:"phase"`
	Position [2]float32 `yaml:"position"`
	Delta    [2]float32 `yaml:"delta,omitempty"`
}

// Script is the on-disk form of a recording.
type Script struct {
	Frames []Frame `yaml:"frames"`
}

// DecodeScript reads a YAML script.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - []Frame: the recorded frames
//   - error: error if the YAML is malformed
func DecodeScript(r io.Reader) ([]Frame, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode input script")
	}
	return s.Frames, nil
}

// LoadScript reads a YAML script from a file.
func LoadScript(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open input script %s", path)
	}
	defer f.Close()

	frames, err := DecodeScript(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load input script %s", path)
	}
	return frames, nil
}

// ScriptedDevice replays recorded frames, one per Poll. Once the script is exhausted it reports an
// idle frame with everything released.
type ScriptedDevice struct {
	frames  []Frame
	next    int
	left    int
	current Frame
	done    bool

	buttons *EdgeTracker[MouseButton]
	keys    *EdgeTracker[Key]
}

var _ Device = &ScriptedDevice{}
var _ Poller = &ScriptedDevice{}

// NewScriptedDevice creates a device over the given frames. No frame is latched until the first Poll.
func NewScriptedDevice(frames ...Frame) *ScriptedDevice {
	return &ScriptedDevice{
		frames:  frames,
		buttons: NewEdgeTracker[MouseButton](),
		keys:    NewEdgeTracker[Key](),
	}
}

// Poll latches the next frame.
func (d *ScriptedDevice) Poll() {
	if d.left <= 0 {
		if d.next < len(d.frames) {
			d.current = d.frames[d.next]
			d.left = max(d.current.Repeat, 1)
			d.next++
		} else {
			d.current = Frame{}
			d.done = true
		}
	}
	if d.left > 0 {
		d.left--
	}

	for _, b := range []MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle} {
		d.buttons.Update(b, slices.Contains(d.current.Buttons, b))
	}
	for _, k := range append(slices.Clone(AxisKeys), KeyEsc) {
		d.keys.Update(k, slices.Contains(d.current.Keys, k))
	}
}

// Done reports whether the script has been exhausted.
func (d *ScriptedDevice) Done() bool {
	return d.done
}

// Len returns the number of frames the script plays, counting repeats.
func (d *ScriptedDevice) Len() int {
	n := 0
	for _, f := range d.frames {
		n += max(f.Repeat, 1)
	}
	return n
}

func (d *ScriptedDevice) PointerDelta() (float32, float32) {
	return d.current.PointerDelta[0], d.current.PointerDelta[1]
}

func (d *ScriptedDevice) Scroll() float32 {
	return d.current.Scroll
}

func (d *ScriptedDevice) MouseButton(b MouseButton) ButtonState {
	return d.buttons.State(b)
}

func (d *ScriptedDevice) Key(k Key) ButtonState {
	return d.keys.State(k)
}

func (d *ScriptedDevice) Touches() []Touch {
	if len(d.current.Touches) == 0 {
		return nil
	}
	out := make([]Touch, len(d.current.Touches))
	for i, t := range d.current.Touches {
		out[i] = Touch{
			ID:       t.ID,
			Phase:    t.Phase,
			Position: mgl32.Vec2(t.Position),
			Delta:    mgl32.Vec2(t.Delta),
		}
	}
	return out
}

func (d *ScriptedDevice) PointerFree() bool {
	return !d.current.Blocked
}
