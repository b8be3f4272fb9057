package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/clipspace/internal/config"
	"github.com/taigrr/clipspace/internal/logger"
	"github.com/taigrr/clipspace/pkg/geometry"
	"github.com/taigrr/clipspace/pkg/math3d"
	"github.com/taigrr/clipspace/pkg/render"
	"github.com/taigrr/clipspace/pkg/scene"
)

// springAxis eases a value toward a target.
type springAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newSpringAxis(cfg config.ViewerConfig, v float64) springAxis {
	return springAxis{
		Position: v,
		Target:   v,
		spring:   harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.SpringFrequency, cfg.SpringDamping),
	}
}

func (a *springAxis) update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

// orbitState is the observer's position on a circle around the scene.
type orbitState struct {
	center                 math3d.Vec3
	yaw, height, distance  springAxis
	minDistance, maxHeight float64
}

func newOrbitState(cfg *config.Config, s *scene.Scene) *orbitState {
	bounds := s.Bounds()
	if !bounds.IsValid() {
		bounds = geometry.NewAABB(math3d.Splat3(-10), math3d.Splat3(10))
	}
	size := bounds.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))

	return &orbitState{
		center:      bounds.Center(),
		yaw:         newSpringAxis(cfg.Viewer, math.Pi/4),
		height:      newSpringAxis(cfg.Viewer, extent*0.5),
		distance:    newSpringAxis(cfg.Viewer, extent*1.2),
		minDistance: extent * 0.1,
		maxHeight:   extent * 2,
	}
}

func (o *orbitState) update() {
	o.yaw.update()
	o.height.update()
	o.distance.update()
}

func (o *orbitState) apply(cam *render.Camera) {
	cam.Orbit(o.center, o.yaw.Position, o.distance.Position, o.height.Position)
	cam.SetClipPlanes(0.1, (o.distance.Position+o.height.Position)*4)
}

// handleKey adjusts the orbit targets. Unbound keys are ignored.
func (o *orbitState) handleKey(ev uv.KeyPressEvent) {
	step := o.distance.Target * 0.1
	switch {
	case ev.MatchString("a", "left"):
		o.yaw.Target -= math.Pi / 12
	case ev.MatchString("d", "right"):
		o.yaw.Target += math.Pi / 12
	case ev.MatchString("w", "up"):
		o.height.Target = math.Min(o.maxHeight, o.height.Target+step)
	case ev.MatchString("s", "down"):
		o.height.Target = math.Max(-o.maxHeight, o.height.Target-step)
	case ev.MatchString("+", "="):
		o.distance.Target = math.Max(o.minDistance, o.distance.Target-step)
	case ev.MatchString("-", "_"):
		o.distance.Target += step
	}
}

func newObserver(cfg *config.Config, aspect float64) *render.Camera {
	cam := render.NewCamera(cfg.Graphics.API)
	cam.SetFOV(math3d.Radians(60))
	cam.SetAspectRatio(aspect)
	return cam
}

// nextAPI returns the API after api in AllGraphicsAPIs, wrapping around.
func nextAPI(api math3d.GraphicsAPI) math3d.GraphicsAPI {
	all := math3d.AllGraphicsAPIs()
	for i, a := range all {
		if a == api {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func runViewer(cfg *config.Config, s *scene.Scene) error {
	// The terminal owns the screen from here on; keep log lines off it.
	if err := logger.InitFileOnly(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Named("viewer")

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fb := render.NewFramebuffer(termRenderer.FramebufferSize())

	observer := newObserver(cfg, fb.Aspect())
	orbit := newOrbitState(cfg, s)

	api := cfg.Graphics.API
	cullViewProj, err := cullMatrix(cfg, api)
	if err != nil {
		cleanup()
		return err
	}
	report := s.Cull(geometry.NewFrustumFromMatrix(cullViewProj))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	// Events are handed to the render loop so all state stays on one goroutine.
	events := make(chan uv.Event, 16)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.Viewer.FPS)

	for {
		now := time.Now()

	drain:
		for {
			select {
			case <-ctx.Done():
				cleanup()
				return nil
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Resize(width, height)
					termRenderer = render.NewTerminalRenderer(term, width, height)
					fb.Resize(termRenderer.FramebufferSize())
					observer.SetAspectRatio(fb.Aspect())
				case uv.KeyPressEvent:
					switch {
					case ev.MatchString("escape", "q", "ctrl+c"):
						cancel()
					case ev.MatchString("tab"):
						api = nextAPI(api)
						observer.SetAPI(api)
						if cullViewProj, err = cullMatrix(cfg, api); err != nil {
							cleanup()
							return err
						}
						report = s.Cull(geometry.NewFrustumFromMatrix(cullViewProj))
						log.Debug("switched api",
							zap.Stringer("api", api),
							zap.Int("culled", len(report.Culled())),
						)
					default:
						orbit.handleKey(ev)
					}
				}
			default:
				break drain
			}
		}

		orbit.update()
		orbit.apply(observer)

		drawFrame(fb, observer, s, report, cullViewProj, api)
		termRenderer.SetStatus(fmt.Sprintf(" %s | %d visible | %d culled | tab: api  esc: quit ",
			api, len(report.Visible()), len(report.Culled())))
		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
