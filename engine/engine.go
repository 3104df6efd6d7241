package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Pose is the rig's output after one tick.
type Pose struct {
	Tick     uint64     `json:"tick"`
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Quat `json:"rotation"`
	Center   mgl32.Vec3 `json:"center"`
	Distance float32    `json:"distance"`
}

// engine implements the Engine interface.
// Owns one rig and serializes every access to it: the tick loop, Do callers and subscribers.
type engine struct {
	mu     sync.Mutex // guards rig, source and ticks
	rig    rig.Rig
	source input.Source
	ticks  uint64

	camera     camera.Camera
	window     window.Window
	logger     logrus.FieldLogger
	rigOptions []rig.RigOption

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	subsMu      sync.RWMutex
	subscribers map[string]func(Pose)
}

// Engine is the host loop around a rig: it polls input, ticks the rig at a fixed rate, writes the
// pose to the camera and publishes it to subscribers.
type Engine interface {
	// Rig returns the hosted rig. Access it through Do while the engine is running.
	//
	// Returns:
	//   - rig.Rig: the rig
	Rig() rig.Rig

	// Camera returns the camera the rig drives.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Window returns the window feeding input, or nil when running without one.
	Window() window.Window

	// Do runs fn with exclusive access to the rig, between ticks.
	//
	// Parameters:
	//   - fn: the function to run
	Do(fn func(r rig.Rig))

	// Step polls input and advances the rig by one tick of dt seconds.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//
	// Returns:
	//   - Pose: the pose after the tick
	Step(dt float32) Pose

	// RunFor advances the rig by ticks steps of the fixed tick interval without waiting in real time.
	//
	// Parameters:
	//   - ctx: cancels the run between ticks
	//   - ticks: number of steps to run
	//
	// Returns:
	//   - error: ctx.Err() if cancelled, nil otherwise
	RunFor(ctx context.Context, ticks uint64) error

	// Run ticks the rig in real time until ctx is done, Quit is called or the window closes.
	// With a window, Run must be called on the main thread; it drives the window's message loop.
	//
	// Parameters:
	//   - ctx: stops the engine when done
	//
	// Returns:
	//   - error: error if the engine is already running
	Run(ctx context.Context) error

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Ticks returns the number of ticks run so far.
	Ticks() uint64

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickInterval returns the current fixed tick interval.
	TickInterval() time.Duration

	// SetTickCallback registers a function called after each tick, outside the rig lock.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Subscribe registers fn to receive the pose after every tick. fn runs on the tick goroutine
	// and must not block.
	//
	// Parameters:
	//   - fn: the receiver
	//
	// Returns:
	//   - string: subscription id for Unsubscribe
	Subscribe(fn func(Pose)) string

	// Unsubscribe removes a subscription. Unknown ids are ignored.
	Unsubscribe(id string)

	// EnableProfiler enables periodic tick statistics in the log.
	EnableProfiler()

	// DisableProfiler disables tick statistics.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates an engine. Without WithRig it builds a rig driving the engine's camera from the
// WithRigOptions options; either way the rig is initialized before NewEngine returns.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		subscribers:     make(map[string]func(Pose)),
		engineTickRate:  time.Second / 60,
		logger:          logrus.StandardLogger(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.camera == nil {
		e.camera = camera.NewCamera()
	}
	if e.rig == nil {
		opts := append([]rig.RigOption{rig.WithTransform(e.camera), rig.WithLogger(e.logger)}, e.rigOptions...)
		e.rig = rig.NewRig(opts...)
	}
	e.logger = e.logger.WithField("component", "engine")
	e.rig.Initialize()

	if e.source == nil {
		var dev input.Device
		if e.window != nil {
			dev = e.window.Device()
		}
		e.source = input.NewSource(input.ModuleMouse, dev)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		if h := e.window.Height(); h > 0 {
			e.camera.SetAspect(float32(e.window.Width()) / float32(h))
		}
		e.window.SetResizeCallback(func(width, height int) {
			if height > 0 {
				e.camera.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engine) Rig() rig.Rig {
	return e.rig
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Do(fn func(r rig.Rig)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.rig)
}

func (e *engine) Step(dt float32) Pose {
	e.mu.Lock()
	if p, ok := e.source.Device().(input.Poller); ok {
		p.Poll()
	}
	e.rig.Tick(e.source.Read(), dt)
	e.ticks++
	st := e.rig.State()
	pose := Pose{
		Tick:     e.ticks,
		Position: st.Position,
		Rotation: st.Rotation,
		Center:   st.Center,
		Distance: st.Distance(),
	}
	e.mu.Unlock()

	e.publish(pose)
	if e.profilingEnabled.Load() {
		e.profiler.Tick(st)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	return pose
}

func (e *engine) RunFor(ctx context.Context, ticks uint64) error {
	dt := float32(e.engineTickRate.Seconds())
	for range ticks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e.Step(dt)
	}
	return nil
}

func (e *engine) Run(ctx context.Context) error {
	select {
	case <-e.quitChannel:
		return errors.New("engine has quit")
	default:
	}
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("engine is already running")
	}
	e.logger.WithField("tick_interval", e.engineTickRate).Info("engine started")

	e.wg.Add(2)
	go e.handleEngine()
	go e.handleContext(ctx)

	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				// Stops ProcessMessages on its next check.
				if err := e.window.Close(); err != nil {
					e.logger.WithError(err).Warn("close window")
				}
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
		if e.window.IsRunning() {
			_ = e.window.Close()
		}
	}

	e.wg.Wait()
	e.logger.WithField("ticks", e.Ticks()).Info("engine stopped")
	return nil
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Ticks at the configured rate and listens for dynamic rate changes via tickRateChannel.
// Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleContext quits the engine when ctx is done, and returns once the engine has quit.
func (e *engine) handleContext(ctx context.Context) {
	defer e.wg.Done()
	select {
	case <-ctx.Done():
		e.signalQuit()
	case <-e.quitChannel:
	}
}

func (e *engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) TickInterval() time.Duration {
	return e.engineTickRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) Subscribe(fn func(Pose)) string {
	id := uuid.NewString()
	e.subsMu.Lock()
	e.subscribers[id] = fn
	e.subsMu.Unlock()
	return id
}

func (e *engine) Unsubscribe(id string) {
	e.subsMu.Lock()
	delete(e.subscribers, id)
	e.subsMu.Unlock()
}

func (e *engine) publish(pose Pose) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, fn := range e.subscribers {
		fn(pose)
	}
}

// EnableProfiler enables periodic tick statistics in the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables tick statistics.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}
