package config

import (
	"flag"

	"github.com/taigrr/clipspace/pkg/math3d"
)

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAPI    = flag.String("api", "", "Graphics API: opengl, vulkan, metal, directx, webgpu")
	flagScene  = flag.String("scene", "", "Scene file (.yaml, .gltf or .glb)")
	flagOrtho  = flag.Bool("ortho", false, "Use an orthographic projection")
	flagWidth  = flag.Int("width", 0, "Render target width")
	flagHeight = flag.Int("height", 0, "Render target height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAPI != "" {
		api, err := math3d.ParseGraphicsAPI(*flagAPI)
		if err != nil {
			return err
		}
		cfg.Graphics.API = api
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagOrtho {
		cfg.Camera.Projection = ProjectionOrthographic
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	return nil
}
