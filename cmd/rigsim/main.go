// Command rigsim drives a camera rig without a renderer. By default it replays an input script
// headlessly and prints the final pose; -sweep converges every preset in a directory in parallel,
// -serve runs in real time behind the remote surface and -window reads input from a desktop window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/preset"
	"github.com/Carmen-Shannon/oxy-rig/engine/remote"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultTicks = 600

type options struct {
	config  string
	script  string
	ticks   uint64
	dt      float64
	sweep   string
	workers int
	serve   string
	window  bool
	uniform string
	save    string
	profile bool
	verbose bool
}

// report is the printed form of a pose.
type report struct {
	Name     string          `yaml:"name,omitempty"`
	Ticks    uint64          `yaml:"ticks"`
	Position preset.Vec3     `yaml:"position"`
	Rotation preset.Rotation `yaml:"rotation"`
	Center   preset.Vec3     `yaml:"center"`
	Distance float32         `yaml:"distance"`
	Error    string          `yaml:"error,omitempty"`
}

func newReport(name string, p engine.Pose) report {
	return report{
		Name:     name,
		Ticks:    p.Tick,
		Position: preset.Vec3(p.Position),
		Rotation: preset.Rotation(p.Rotation),
		Center:   preset.Vec3(p.Center),
		Distance: p.Distance,
	}
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "", "rig configuration file (YAML)")
	flag.StringVar(&o.script, "script", "", "input script to replay (YAML)")
	flag.Uint64Var(&o.ticks, "ticks", 0, "ticks to run headless (default: script length, or 600)")
	flag.Float64Var(&o.dt, "dt", 0, "seconds per headless tick (default: 1/tick_rate)")
	flag.StringVar(&o.sweep, "sweep", "", "directory of preset files to converge in parallel")
	flag.IntVar(&o.workers, "workers", runtime.NumCPU(), "sweep worker count")
	flag.StringVar(&o.serve, "serve", "", "run in real time and serve the remote surface on this address (overrides listen)")
	flag.BoolVar(&o.window, "window", false, "run in real time with input from a desktop window")
	flag.StringVar(&o.uniform, "uniform", "", "write the final camera uniform buffer to this file")
	flag.StringVar(&o.save, "save", "", "write the final rig preset to this file")
	flag.BoolVar(&o.profile, "profile", false, "log tick statistics")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	if o.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := run(o); err != nil {
		logrus.WithError(err).Fatal("rigsim failed")
	}
}

func run(o options) error {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return err
		}
	}
	if o.serve != "" {
		cfg.Listen = o.serve
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case o.sweep != "":
		results, err := runSweep(ctx, cfg, o.sweep, o.workers, o.ticksOr(defaultTicks))
		if err != nil {
			return err
		}
		return printYAML(results)
	case o.window:
		return runWindow(ctx, cfg, o)
	case cfg.Listen != "":
		return runServe(ctx, cfg, o)
	default:
		return runHeadless(ctx, cfg, o)
	}
}

func (o options) ticksOr(fallback uint64) uint64 {
	if o.ticks > 0 {
		return o.ticks
	}
	return fallback
}

// newEngine builds a host for cfg reading dev through the configured scheme.
func newEngine(cfg *config.Config, dev input.Device, extra ...engine.EngineBuilderOption) (engine.Engine, error) {
	var camOpts []camera.CameraBuilderOption
	if cfg.Transform != nil {
		camOpts = append(camOpts,
			camera.WithPosition(mgl32.Vec3(cfg.Transform.Position)),
			camera.WithRotation(mgl32.Quat(cfg.Transform.Rotation)),
		)
	}

	opts := append([]engine.EngineBuilderOption{
		engine.WithCamera(camera.NewCamera(camOpts...)),
		engine.WithRigOptions(cfg.RigOptions()...),
		engine.WithSource(cfg.NewSource(dev)),
		engine.WithTickRate(cfg.TickRate),
	}, extra...)
	e := engine.NewEngine(opts...)

	var err error
	e.Do(func(r rig.Rig) { err = cfg.ApplyPreset(r) })
	if err != nil {
		return nil, errors.Wrap(err, "apply preset")
	}
	return e, nil
}

func runHeadless(ctx context.Context, cfg *config.Config, o options) error {
	var frames []input.Frame
	if o.script != "" {
		var err error
		if frames, err = input.LoadScript(o.script); err != nil {
			return err
		}
	}
	dev := input.NewScriptedDevice(frames...)

	tickRate := cfg.TickRate
	if o.dt > 0 {
		tickRate = 1 / o.dt
	}
	e, err := newEngine(cfg, dev, engine.WithTickRate(tickRate), engine.WithProfiling(o.profile))
	if err != nil {
		return err
	}

	ticks := o.ticksOr(defaultTicks)
	if o.ticks == 0 && o.script != "" {
		ticks = uint64(dev.Len())
	}

	var last engine.Pose
	e.Subscribe(func(p engine.Pose) { last = p })
	if err := e.RunFor(ctx, ticks); err != nil {
		return errors.Wrap(err, "headless run")
	}

	if err := writeOutputs(e, o); err != nil {
		return err
	}
	return printYAML(newReport("", last))
}

func runServe(ctx context.Context, cfg *config.Config, o options) error {
	e, err := newEngine(cfg, nil, engine.WithProfiling(o.profile))
	if err != nil {
		return err
	}

	wait := serveRemote(ctx, e, cfg.Listen)
	if err := e.Run(ctx); err != nil {
		return err
	}
	if err := wait(); err != nil {
		return err
	}
	return writeOutputs(e, o)
}

func runWindow(ctx context.Context, cfg *config.Config, o options) error {
	w, err := window.NewWindow(window.WithTitle("rigsim"))
	if err != nil {
		return err
	}
	e, err := newEngine(cfg, w.Device(), engine.WithWindow(w), engine.WithProfiling(o.profile))
	if err != nil {
		return err
	}

	every := uint64(max(cfg.TickRate/4, 1))
	e.Subscribe(func(p engine.Pose) {
		if p.Tick%every == 0 {
			w.SetTitle(titleFor(p))
		}
	})

	wait := func() error { return nil }
	if cfg.Listen != "" {
		wait = serveRemote(ctx, e, cfg.Listen)
	}

	// The window loop must own the main thread.
	if err := e.Run(ctx); err != nil {
		return err
	}
	if err := wait(); err != nil {
		return err
	}
	return writeOutputs(e, o)
}

// serveRemote serves the remote surface until the engine stops. A listener failure quits the engine.
// The returned function stops the server and reports its error.
func serveRemote(ctx context.Context, e engine.Engine, addr string) func() error {
	srvCtx, cancel := context.WithCancel(ctx)
	srv := remote.NewServer(e)

	errc := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe(srvCtx, addr)
		if err != nil {
			e.Quit()
		}
		errc <- err
	}()

	return func() error {
		cancel()
		return <-errc
	}
}

func titleFor(p engine.Pose) string {
	return fmt.Sprintf("rigsim | tick %d | center %.1f %.1f %.1f | distance %.1f",
		p.Tick, p.Center[0], p.Center[1], p.Center[2], p.Distance)
}

func writeOutputs(e engine.Engine, o options) error {
	if o.uniform != "" {
		u := e.Camera().Uniform()
		if err := os.WriteFile(o.uniform, u.Marshal(), 0o644); err != nil {
			return errors.Wrapf(err, "write uniform %s", o.uniform)
		}
	}
	if o.save != "" {
		var f *preset.File
		e.Do(func(r rig.Rig) { f = preset.Capture(r) })
		if err := preset.Save(o.save, f); err != nil {
			return err
		}
	}
	return nil
}

func printYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "print results")
	}
	return enc.Close()
}
