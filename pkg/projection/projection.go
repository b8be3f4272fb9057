// Package projection maps points between world, clip, normalized device and
// window coordinates for each supported graphics backend.
package projection

import (
	"github.com/taigrr/clipspace/pkg/geometry"
	"github.com/taigrr/clipspace/pkg/math3d"
)

// Viewport is a window rectangle in pixels plus the depth range written to
// the depth buffer.
type Viewport struct {
	X, Y          float64
	Width, Height float64
	MinDepth      float64
	MaxDepth      float64
}

// NewViewport returns a viewport at the origin with depth range [0, 1].
func NewViewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height, MaxDepth: 1}
}

// Aspect returns width / height.
func (v Viewport) Aspect() float64 {
	return v.Width / v.Height
}

// flipsWindowY reports whether NDC +Y must be inverted to reach window
// coordinates. Y-flipped projections already produce Y-down NDC, so only a
// Y-up NDC drawn to a top-left origin needs it.
func flipsWindowY(api math3d.GraphicsAPI) bool {
	return math3d.ScreenOriginTopLeft(api) != math3d.NeedsYFlip(api)
}

// nearNDC returns the NDC depth of the near plane for api.
func nearNDC(api math3d.GraphicsAPI) float64 {
	if math3d.ClipSpaceDepthOf(api) == math3d.NegOneToOne {
		return -1
	}
	return 0
}

// NDCToScreen converts normalized device coordinates to window coordinates.
// Z becomes a depth in [MinDepth, MaxDepth].
func NDCToScreen(ndc math3d.Vec3, vp Viewport, api math3d.GraphicsAPI) math3d.Vec3 {
	tx := (ndc.X + 1) / 2
	ty := (ndc.Y + 1) / 2
	if flipsWindowY(api) {
		ty = 1 - ty
	}

	depth := ndc.Z
	if math3d.ClipSpaceDepthOf(api) == math3d.NegOneToOne {
		depth = (ndc.Z + 1) / 2
	}

	return math3d.V3(
		vp.X+tx*vp.Width,
		vp.Y+ty*vp.Height,
		vp.MinDepth+depth*(vp.MaxDepth-vp.MinDepth),
	)
}

// ScreenToNDC is the inverse of NDCToScreen.
func ScreenToNDC(screen math3d.Vec3, vp Viewport, api math3d.GraphicsAPI) math3d.Vec3 {
	tx := (screen.X - vp.X) / vp.Width
	ty := (screen.Y - vp.Y) / vp.Height
	if flipsWindowY(api) {
		ty = 1 - ty
	}

	depth := (screen.Z - vp.MinDepth) / (vp.MaxDepth - vp.MinDepth)
	if math3d.ClipSpaceDepthOf(api) == math3d.NegOneToOne {
		depth = depth*2 - 1
	}

	return math3d.V3(tx*2-1, ty*2-1, depth)
}

// Project maps a world-space point through mvp to window coordinates.
// ok is false when the point is at or behind the eye (w <= 0), where the
// perspective divide is meaningless.
func Project(world math3d.Vec3, mvp math3d.Mat4, vp Viewport, api math3d.GraphicsAPI) (math3d.Vec3, bool) {
	clip := mvp.MulVec4(math3d.V4FromV3(world, 1))
	if clip.W <= 0 {
		return math3d.Vec3{}, false
	}
	return NDCToScreen(clip.PerspectiveDivide(), vp, api), true
}

// Unproject maps window coordinates back to world space. invMVP is the
// inverse of the matrix given to Project. ok is false when the homogeneous
// result has w == 0.
func Unproject(screen math3d.Vec3, invMVP math3d.Mat4, vp Viewport, api math3d.GraphicsAPI) (math3d.Vec3, bool) {
	ndc := ScreenToNDC(screen, vp, api)
	p := invMVP.MulVec4(math3d.V4FromV3(ndc, 1))
	if p.W == 0 {
		return math3d.Vec3{}, false
	}
	return p.PerspectiveDivide(), true
}

// ScreenToWorldRay returns the picking ray through pixel (x, y). The ray
// starts on the near plane and points towards the far plane, so it works
// for both perspective and orthographic projections.
func ScreenToWorldRay(x, y float64, invViewProj math3d.Mat4, vp Viewport, api math3d.GraphicsAPI) (geometry.Ray, bool) {
	near, ok := Unproject(math3d.V3(x, y, vp.MinDepth), invViewProj, vp, api)
	if !ok {
		return geometry.Ray{}, false
	}
	far, ok := Unproject(math3d.V3(x, y, vp.MaxDepth), invViewProj, vp, api)
	if !ok {
		return geometry.Ray{}, false
	}
	return geometry.NewRay(near, far.Sub(near)), true
}

// FrustumCorners returns the world-space corners of the clip volume of
// viewProj, whose inverse is passed in. Corners are indexed like
// geometry.AABB.Corner: bit 0 selects +X, bit 1 +Y and bit 2 the far plane.
func FrustumCorners(invViewProj math3d.Mat4, api math3d.GraphicsAPI) [8]math3d.Vec3 {
	var out [8]math3d.Vec3
	zNear := nearNDC(api)
	for i := range out {
		ndc := math3d.V4(-1, -1, zNear, 1)
		if i&1 != 0 {
			ndc.X = 1
		}
		if i&2 != 0 {
			ndc.Y = 1
		}
		if i&4 != 0 {
			ndc.Z = 1
		}
		out[i] = invViewProj.MulVec4(ndc).PerspectiveDivide()
	}
	return out
}

// ValidateProjectionMatrix reports whether the Y-scale sign of proj matches
// what api expects: negative exactly when the backend needs a Y-flip.
func ValidateProjectionMatrix(proj math3d.Mat4, api math3d.GraphicsAPI) bool {
	return (proj[5] < 0) == math3d.NeedsYFlip(api)
}
