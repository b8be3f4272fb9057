// clipspace - projection matrices and frustum culling for every graphics API.
//
// Builds the culling camera from config, extracts its frustum and reports
// which scene objects survive. Optional outputs:
//
//	-matrices   Print projection and view matrices for all five APIs
//	-png FILE   Save an observer's view of the scene and frustum
//	-view       Interactive terminal viewer
//
// Viewer controls:
//
//	A/D, Left/Right - Orbit the observer
//	W/S, Up/Down    - Raise/lower the observer
//	+/-             - Zoom
//	Tab             - Cycle the culling camera's graphics API
//	Esc             - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/taigrr/clipspace/internal/config"
	"github.com/taigrr/clipspace/internal/logger"
	"github.com/taigrr/clipspace/pkg/geometry"
	"github.com/taigrr/clipspace/pkg/math3d"
	"github.com/taigrr/clipspace/pkg/projection"
	"github.com/taigrr/clipspace/pkg/render"
	"github.com/taigrr/clipspace/pkg/scene"
)

var (
	showMatrices = flag.Bool("matrices", false, "Print projection and view matrices for every graphics API")
	pngPath      = flag.String("png", "", "Save an observer view of the scene to this PNG file")
	interactive  = flag.Bool("view", false, "Open the interactive terminal viewer")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "clipspace - frustum culling across graphics APIs\n\n")
		fmt.Fprintf(os.Stderr, "Usage: clipspace [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	config.ParseFlags()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Named("clipspace")

	s, err := loadScene(cfg.Scene.Path)
	if err != nil {
		return err
	}
	log.Debug("scene loaded", zap.String("scene", s.Name), zap.Int("objects", len(s.Objects)))

	api := cfg.Graphics.API
	viewProj, err := cullMatrix(cfg, api)
	if err != nil {
		return err
	}
	report := s.Cull(geometry.NewFrustumFromMatrix(viewProj))

	printReport(os.Stdout, report)
	log.Info("culled scene",
		zap.String("scene", s.Name),
		zap.Stringer("api", api),
		zap.Int("visible", len(report.Visible())),
		zap.Int("culled", len(report.Culled())),
		zap.Strings("culled_objects", report.Culled()),
	)

	if *showMatrices {
		if err := printMatrices(os.Stdout, cfg); err != nil {
			return err
		}
	}

	if *pngPath != "" {
		if err := saveSnapshot(*pngPath, cfg, s, report, viewProj); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.Info("snapshot saved", zap.String("path", *pngPath))
	}

	if *interactive {
		return runViewer(cfg, s)
	}
	return nil
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.DemoScene(), nil
	}
	s, err := scene.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return s, nil
}

// cullMatrix builds the culling camera's view-projection for api and checks
// the projection follows that API's Y convention.
func cullMatrix(cfg *config.Config, api math3d.GraphicsAPI) (math3d.Mat4, error) {
	view := cfg.Camera.ViewMatrix(api)
	proj := cfg.Camera.ProjectionMatrix(cfg.Graphics.Aspect(), api)
	if !projection.ValidateProjectionMatrix(proj, api) {
		return math3d.Mat4{}, fmt.Errorf("projection for %s has the wrong Y orientation", api)
	}
	return math3d.ViewProjection(view, proj), nil
}

func printReport(w io.Writer, report scene.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECT\tRESULT")
	for _, res := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\n", res.Name, res.Class)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d visible, %d culled\n", len(report.Visible()), len(report.Culled()))
}

func printMatrices(w io.Writer, cfg *config.Config) error {
	for _, api := range math3d.AllGraphicsAPIs() {
		proj := cfg.Camera.ProjectionMatrix(cfg.Graphics.Aspect(), api)
		fmt.Fprintf(w, "\n== %s (depth %s, %s, y-flip %v, top-left origin %v)\n",
			api, math3d.ClipSpaceDepthOf(api), math3d.HandednessOf(api),
			math3d.NeedsYFlip(api), math3d.ScreenOriginTopLeft(api))
		fmt.Fprintf(w, "projection:\n%s\n", proj)
		fmt.Fprintf(w, "view:\n%s\n", cfg.Camera.ViewMatrix(api))
		if !projection.ValidateProjectionMatrix(proj, api) {
			return fmt.Errorf("projection for %s has the wrong Y orientation", api)
		}
	}
	return nil
}

// saveSnapshot renders the scene and culling frustum from an observer placed
// above and behind the culling camera.
func saveSnapshot(path string, cfg *config.Config, s *scene.Scene, report scene.Report, cullViewProj math3d.Mat4) error {
	fb := render.NewFramebuffer(cfg.Graphics.Width, cfg.Graphics.Height)
	observer := newObserver(cfg, fb.Aspect())
	orbit := newOrbitState(cfg, s)
	orbit.apply(observer)

	drawFrame(fb, observer, s, report, cullViewProj, cfg.Graphics.API)
	return fb.SavePNG(path)
}

func drawFrame(fb *render.Framebuffer, observer *render.Camera, s *scene.Scene, report scene.Report, cullViewProj math3d.Mat4, api math3d.GraphicsAPI) {
	fb.Clear(render.ColorDark)
	w := render.NewWireframe(observer, fb)
	w.DrawGrid(math3d.Vec3{}, 200, 10, render.RGB(50, 50, 60))
	w.DrawAxes(5)
	w.DrawScene(s, report)
	w.DrawFrustum(cullViewProj, api, render.ColorCyan)
}
