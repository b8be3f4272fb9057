package math3d

import (
	"errors"
	"fmt"
	"strings"
)

// GraphicsAPI identifies the rendering backend a matrix is built for.
// Each backend fixes a clip-space depth range, a handedness and the
// direction of the Y axis in normalized device coordinates.
type GraphicsAPI int

const (
	OpenGL GraphicsAPI = iota
	Vulkan
	Metal
	DirectX
	WebGPU
)

// ClipSpaceDepth is the NDC depth range a backend clips against.
type ClipSpaceDepth int

const (
	ZeroToOne ClipSpaceDepth = iota
	NegOneToOne
)

// Handedness is the coordinate system convention of a backend.
type Handedness int

const (
	LeftHanded Handedness = iota
	RightHanded
)

// ErrUnknownGraphicsAPI is returned when parsing an unrecognized API name.
var ErrUnknownGraphicsAPI = errors.New("unknown graphics api")

// AllGraphicsAPIs returns every supported backend in declaration order.
func AllGraphicsAPIs() []GraphicsAPI {
	return []GraphicsAPI{OpenGL, Vulkan, Metal, DirectX, WebGPU}
}

// ClipSpaceDepthOf returns the NDC depth range of api.
// OpenGL clips z to [-1, 1]; every other backend clips to [0, 1].
func ClipSpaceDepthOf(api GraphicsAPI) ClipSpaceDepth {
	switch api {
	case OpenGL:
		return NegOneToOne
	case Vulkan, Metal, DirectX, WebGPU:
		return ZeroToOne
	}
	panic(fmt.Sprintf("math3d: invalid GraphicsAPI %d", int(api)))
}

// HandednessOf returns the coordinate convention of api.
// Metal and DirectX are left-handed; the rest are right-handed.
func HandednessOf(api GraphicsAPI) Handedness {
	switch api {
	case Metal, DirectX:
		return LeftHanded
	case OpenGL, Vulkan, WebGPU:
		return RightHanded
	}
	panic(fmt.Sprintf("math3d: invalid GraphicsAPI %d", int(api)))
}

// NeedsYFlip reports whether projections for api negate the Y scale term so
// that +Y in world space points up on screen.
func NeedsYFlip(api GraphicsAPI) bool {
	switch api {
	case Vulkan, Metal, WebGPU:
		return true
	case OpenGL, DirectX:
		return false
	}
	panic(fmt.Sprintf("math3d: invalid GraphicsAPI %d", int(api)))
}

// ScreenOriginTopLeft reports whether window coordinates of api start at the
// top-left corner. Only OpenGL uses a bottom-left origin.
func ScreenOriginTopLeft(api GraphicsAPI) bool {
	switch api {
	case OpenGL:
		return false
	case Vulkan, Metal, DirectX, WebGPU:
		return true
	}
	panic(fmt.Sprintf("math3d: invalid GraphicsAPI %d", int(api)))
}

// String returns the display name of the backend.
func (api GraphicsAPI) String() string {
	switch api {
	case OpenGL:
		return "OpenGL"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case DirectX:
		return "DirectX"
	case WebGPU:
		return "WebGPU"
	}
	return fmt.Sprintf("GraphicsAPI(%d)", int(api))
}

// ParseGraphicsAPI parses a backend name, ignoring case.
func ParseGraphicsAPI(s string) (GraphicsAPI, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opengl", "gl":
		return OpenGL, nil
	case "vulkan", "vk":
		return Vulkan, nil
	case "metal", "mtl":
		return Metal, nil
	case "directx", "d3d", "dx":
		return DirectX, nil
	case "webgpu", "wgpu":
		return WebGPU, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGraphicsAPI, s)
}

// MarshalText implements encoding.TextMarshaler.
func (api GraphicsAPI) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(api.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (api *GraphicsAPI) UnmarshalText(text []byte) error {
	v, err := ParseGraphicsAPI(string(text))
	if err != nil {
		return err
	}
	*api = v
	return nil
}

func (d ClipSpaceDepth) String() string {
	if d == NegOneToOne {
		return "[-1,1]"
	}
	return "[0,1]"
}

func (h Handedness) String() string {
	if h == LeftHanded {
		return "left-handed"
	}
	return "right-handed"
}
