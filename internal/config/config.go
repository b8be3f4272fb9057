// Package config handles clipspace configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/clipspace/pkg/math3d"
)

// Projection kinds accepted in CameraConfig.Projection.
const (
	ProjectionPerspective  = "perspective"
	ProjectionOrthographic = "orthographic"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig selects the target backend and the render target size used
// for the aspect ratio and viewport.
type GraphicsConfig struct {
	API    math3d.GraphicsAPI `yaml:"api"`
	Width  int                `yaml:"width"`
	Height int                `yaml:"height"`
}

// CameraConfig describes the culling camera.
type CameraConfig struct {
	Eye         [3]float64 `yaml:"eye"`
	Target      [3]float64 `yaml:"target"`
	Up          [3]float64 `yaml:"up"`
	FOVDegrees  float64    `yaml:"fov_degrees"`
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	Projection  string     `yaml:"projection"`
	OrthoHeight float64    `yaml:"ortho_height"`
}

// SceneConfig holds the scene file path. An empty path uses the built-in
// demo scene.
type SceneConfig struct {
	Path string `yaml:"path"`
}

// ViewerConfig holds terminal viewer settings.
type ViewerConfig struct {
	FPS             int     `yaml:"fps"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			API:    math3d.Vulkan,
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Eye:         [3]float64{0, 2, 0},
			Target:      [3]float64{0, 0, -10},
			Up:          [3]float64{0, 1, 0},
			FOVDegrees:  60,
			Near:        0.5,
			Far:         100,
			Projection:  ProjectionPerspective,
			OrthoHeight: 20,
		},
		Viewer: ViewerConfig{
			FPS:             30,
			SpringFrequency: 4.0,
			SpringDamping:   1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Aspect returns the render target width / height.
func (g GraphicsConfig) Aspect() float64 {
	return float64(g.Width) / float64(g.Height)
}

// ViewMatrix builds the camera view matrix for api.
func (c CameraConfig) ViewMatrix(api math3d.GraphicsAPI) math3d.Mat4 {
	return math3d.LookAt(
		math3d.V3FromArray(c.Eye),
		math3d.V3FromArray(c.Target),
		math3d.V3FromArray(c.Up),
		api,
	)
}

// ProjectionMatrix builds the camera projection matrix for api.
func (c CameraConfig) ProjectionMatrix(aspect float64, api math3d.GraphicsAPI) math3d.Mat4 {
	if c.Projection == ProjectionOrthographic {
		h := c.OrthoHeight / 2
		w := h * aspect
		return math3d.Orthographic(-w, w, -h, h, c.Near, c.Far, api)
	}
	return math3d.Perspective(math3d.Radians(c.FOVDegrees), aspect, c.Near, c.Far, api)
}

// Validate reports camera and target settings that cannot produce a usable
// projection. The math packages never validate; the CLI does it here.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	cam := c.Camera
	if cam.Near <= 0 {
		errs = append(errs, fmt.Errorf("camera near %v must be positive", cam.Near))
	}
	if cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("camera far %v must exceed near %v", cam.Far, cam.Near))
	}
	switch cam.Projection {
	case ProjectionPerspective:
		if cam.FOVDegrees <= 0 || cam.FOVDegrees >= 180 {
			errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", cam.FOVDegrees))
		}
	case ProjectionOrthographic:
		if cam.OrthoHeight <= 0 {
			errs = append(errs, fmt.Errorf("camera ortho_height %v must be positive", cam.OrthoHeight))
		}
	default:
		errs = append(errs, fmt.Errorf("camera projection %q is not %q or %q",
			cam.Projection, ProjectionPerspective, ProjectionOrthographic))
	}
	if c.Viewer.FPS <= 0 {
		errs = append(errs, fmt.Errorf("viewer fps %d must be positive", c.Viewer.FPS))
	}
	if math3d.V3FromArray(cam.Target).Sub(math3d.V3FromArray(cam.Eye)).LenSq() == 0 {
		errs = append(errs, errors.New("camera eye and target coincide"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
