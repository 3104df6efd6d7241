// Package window opens a desktop window and turns its pointer and keyboard events into an
// input.Device the rig can read.
package window

import (
	"runtime"

	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/pkg/errors"
)

// Window provides a platform window whose input feeds an input.Device.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Device returns the input device fed by this window's events.
	// The device must be polled once per tick by whoever reads it.
	//
	// Returns:
	//   - *input.EventDevice: the device
	Device() *input.EventDevice

	// SetTitle replaces the title bar text. Safe to call from any goroutine; applied on the next
	// message loop iteration.
	SetTitle(title string)

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error

	// ProcessMessages runs the window message loop on the calling goroutine, which must be the main
	// thread. Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	width  int
	height int

	pointerScale float32
	device       *input.EventDevice

	// pendingTitle is set from other goroutines and applied on the main thread.
	pendingTitle chan string

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate func()
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow opens a window with the specified options. Must be called on the main thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:        "oxy-rig",
		maxWidth:     3840,
		maxHeight:    2160,
		minWidth:     320,
		minHeight:    200,
		width:        1280,
		height:       720,
		pointerScale: input.DefaultPointerScale,
		pendingTitle: make(chan string, 1),
	}
	for _, opt := range options {
		opt(w)
	}
	w.device = input.NewEventDevice(w.pointerScale)

	if err := newPlatformWindow(w); err != nil {
		return nil, errors.Wrap(err, "create platform window")
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Device() *input.EventDevice {
	return w.device
}

func (w *engineWindow) SetTitle(title string) {
	select {
	case w.pendingTitle <- title:
	default:
		// Replace the title still waiting to be applied.
		select {
		case <-w.pendingTitle:
		default:
		}
		w.pendingTitle <- title
	}
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		select {
		case title := <-w.pendingTitle:
			w.title = title
			platformSetTitle(w, title)
		default:
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
