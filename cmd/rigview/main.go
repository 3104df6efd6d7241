// Command rigview is a debug viewer for the camera rig. It reads mouse, keyboard or touch input
// through ebiten, draws the ground grid, the boundary and the orbit center as the rig's camera sees
// them, and prints the pose.
package main

import (
	"flag"
	"fmt"
	"image/color"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/input/ebiteninput"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	gridColor     = color.RGBA{0x40, 0x40, 0x48, 0xff}
	boundaryColor = color.RGBA{0xe0, 0xa0, 0x30, 0xff}
	centerColor   = color.RGBA{0x50, 0xd0, 0x70, 0xff}
)

// viewer is the ebiten.Game. The engine is stepped from Update, so ebiten's tick loop is the host loop.
type viewer struct {
	engine engine.Engine
	device *ebiteninput.Device
	tps    int
	width  int
	height int
	last   engine.Pose
}

func (v *viewer) Update() error {
	v.last = v.engine.Step(1 / float32(v.tps))
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	var (
		plane    *common.Plane
		boundary common.Polygon
	)
	v.engine.Do(func(r rig.Rig) {
		plane = r.Plane()
		boundary = r.Boundary()
	})
	if plane == nil {
		plane = common.NewPlane(mgl32.Vec3{}, mgl32.QuatIdent())
	}

	cam := v.engine.Camera()
	w, h := float32(v.width), float32(v.height)
	line := func(a, b mgl32.Vec3, clr color.Color) {
		sa, okA := cam.WorldToScreen(a, w, h)
		sb, okB := cam.WorldToScreen(b, w, h)
		if okA && okB {
			vector.StrokeLine(screen, sa[0], sa[1], sb[0], sb[1], 1, clr, true)
		}
	}

	for i := -200; i <= 200; i += 20 {
		f := float32(i)
		line(plane.LocalToWorld(mgl32.Vec2{f, -200}), plane.LocalToWorld(mgl32.Vec2{f, 200}), gridColor)
		line(plane.LocalToWorld(mgl32.Vec2{-200, f}), plane.LocalToWorld(mgl32.Vec2{200, f}), gridColor)
	}

	for i := range boundary {
		a := plane.LocalToWorld(boundary[i])
		b := plane.LocalToWorld(boundary[(i+1)%len(boundary)])
		line(a, b, boundaryColor)
	}

	if c, ok := cam.WorldToScreen(v.last.Center, w, h); ok {
		vector.DrawFilledCircle(screen, c[0], c[1], 4, centerColor, true)
	}

	euler := common.QuatToEuler(v.last.Rotation)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"tick %d  tps %.0f\nposition %6.1f %6.1f %6.1f\ncenter   %6.1f %6.1f %6.1f\npitch %5.1f yaw %6.1f\ndistance %.1f",
		v.last.Tick, ebiten.ActualTPS(),
		v.last.Position[0], v.last.Position[1], v.last.Position[2],
		v.last.Center[0], v.last.Center[1], v.last.Center[2],
		euler[0], euler[1], v.last.Distance,
	))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width, v.height = outsideWidth, outsideHeight
		if outsideHeight > 0 {
			v.engine.Camera().SetAspect(float32(outsideWidth) / float32(outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "rig configuration file (YAML)")
	scale := flag.Float64("scale", 0, "pointer units per pixel")
	flag.Parse()

	if err := run(*configPath, float32(*scale)); err != nil {
		logrus.WithError(err).Fatal("rigview failed")
	}
}

func run(configPath string, scale float32) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	camOpts := []camera.CameraBuilderOption{camera.WithAspect(1280.0 / 720.0)}
	if cfg.Transform != nil {
		camOpts = append(camOpts,
			camera.WithPosition(mgl32.Vec3(cfg.Transform.Position)),
			camera.WithRotation(mgl32.Quat(cfg.Transform.Rotation)),
		)
	}

	dev := ebiteninput.NewDevice(scale)
	e := engine.NewEngine(
		engine.WithCamera(camera.NewCamera(camOpts...)),
		engine.WithRigOptions(cfg.RigOptions()...),
		engine.WithSource(cfg.NewSource(dev)),
	)
	var err error
	e.Do(func(r rig.Rig) { err = cfg.ApplyPreset(r) })
	if err != nil {
		return errors.Wrap(err, "apply preset")
	}

	tps := max(int(cfg.TickRate), 1)
	ebiten.SetWindowTitle("rigview (" + cfg.Input.String() + ")")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	v := &viewer{engine: e, device: dev, tps: tps, width: 1280, height: 720}
	return ebiten.RunGame(v)
}
