package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/sirupsen/logrus"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables periodic tick statistics.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow attaches a window. Its device becomes the default input device and its size drives the
// camera aspect ratio.
//
// Parameters:
//   - w: an opened Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets the camera the rig drives.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithRig hosts an already built rig. WithRigOptions is ignored when this is set.
//
// Parameters:
//   - r: the rig
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRig(r rig.Rig) EngineBuilderOption {
	return func(e *engine) {
		e.rig = r
	}
}

// WithRigOptions appends options for the rig the engine builds around its camera.
//
// Parameters:
//   - options: rig options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRigOptions(options ...rig.RigOption) EngineBuilderOption {
	return func(e *engine) {
		e.rigOptions = append(e.rigOptions, options...)
	}
}

// WithSource sets the input source read each tick.
// Defaults to the mouse scheme over the window's device, or idle input without a window.
//
// Parameters:
//   - src: the input source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSource(src input.Source) EngineBuilderOption {
	return func(e *engine) {
		e.source = src
	}
}

// WithLogger sets the logger used by the engine.
func WithLogger(logger logrus.FieldLogger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
