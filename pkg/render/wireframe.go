package render

import (
	"github.com/taigrr/clipspace/pkg/geometry"
	"github.com/taigrr/clipspace/pkg/math3d"
	"github.com/taigrr/clipspace/pkg/projection"
	"github.com/taigrr/clipspace/pkg/scene"
)

// boxEdges pairs corner indices that differ in exactly one axis bit, the
// ordering used by AABB.Corner and projection.FrustumCorners.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Classification colors used by DrawScene.
var (
	ColorInside       = ColorGreen
	ColorIntersecting = ColorYellow
	ColorOutside      = ColorRed
)

// ClassColor returns the color DrawScene uses for c.
func ClassColor(c geometry.Classification) Color {
	switch c {
	case geometry.Inside:
		return ColorInside
	case geometry.Intersecting:
		return ColorIntersecting
	default:
		return ColorOutside
	}
}

// Wireframe draws 3D lines through a camera into a framebuffer.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{camera: camera, fb: fb}
}

// DrawLine3D draws the part of the segment p1-p2 inside the camera frustum.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	vp := w.camera.ViewProjectionMatrix()
	a := vp.MulVec4(math3d.V4FromV3(p1, 1))
	b := vp.MulVec4(math3d.V4FromV3(p2, 1))

	a, b, ok := clipSegment(a, b, math3d.ClipSpaceDepthOf(w.camera.API))
	if !ok {
		return
	}

	x1, y1 := w.toPixel(a)
	x2, y2 := w.toPixel(b)
	w.fb.DrawLine(x1, y1, x2, y2, color)
}

func (w *Wireframe) toPixel(clip math3d.Vec4) (int, int) {
	api := w.camera.API
	view := projection.NewViewport(float64(w.fb.Width), float64(w.fb.Height))
	win := projection.NDCToScreen(clip.PerspectiveDivide(), view, api)
	if !math3d.ScreenOriginTopLeft(api) {
		win.Y = view.Height - win.Y
	}
	return int(win.X), int(win.Y)
}

// clipSegment clips a clip space segment against the six homogeneous clip
// planes (Liang-Barsky). ok is false when nothing of it remains.
func clipSegment(a, b math3d.Vec4, depth math3d.ClipSpaceDepth) (math3d.Vec4, math3d.Vec4, bool) {
	dist := func(v math3d.Vec4) [6]float64 {
		near := v.Z
		if depth == math3d.NegOneToOne {
			near = v.Z + v.W
		}
		return [6]float64{v.W + v.X, v.W - v.X, v.W + v.Y, v.W - v.Y, near, v.W - v.Z}
	}

	da, db := dist(a), dist(b)
	t0, t1 := 0.0, 1.0
	for i := range da {
		switch {
		case da[i] < 0 && db[i] < 0:
			return a, b, false
		case da[i] < 0:
			t0 = max(t0, da[i]/(da[i]-db[i]))
		case db[i] < 0:
			t1 = min(t1, da[i]/(da[i]-db[i]))
		}
	}
	if t0 > t1 {
		return a, b, false
	}

	d := b.Sub(a)
	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}

// DrawAABB draws the 12 edges of box.
func (w *Wireframe) DrawAABB(box geometry.AABB, color Color) {
	corners := box.Corners()
	w.drawBox(corners, color)
}

// DrawFrustum draws the frustum of another view-projection matrix built for
// api, such as a culling camera seen from an observer.
func (w *Wireframe) DrawFrustum(viewProj math3d.Mat4, api math3d.GraphicsAPI, color Color) {
	inv, ok := viewProj.TryInverse()
	if !ok {
		return
	}
	w.drawBox(projection.FrustumCorners(inv, api), color)
}

func (w *Wireframe) drawBox(corners [8]math3d.Vec3, color Color) {
	for _, e := range boxEdges {
		w.DrawLine3D(corners[e[0]], corners[e[1]], color)
	}
}

// DrawScene draws every object colored by its culling result.
func (w *Wireframe) DrawScene(s *scene.Scene, report scene.Report) {
	for i, obj := range s.Objects {
		color := ColorGray
		if i < len(report.Results) {
			color = ClassColor(report.Results[i].Class)
		}
		w.DrawAABB(obj.Bounds, color)
	}
}

// DrawAxes draws the world axes from the origin.
func (w *Wireframe) DrawAxes(length float64) {
	var origin math3d.Vec3
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}

// DrawGrid draws a square grid on the XZ plane centered on center.
func (w *Wireframe) DrawGrid(center math3d.Vec3, size, step float64, color Color) {
	half := size / 2
	for d := -half; d <= half; d += step {
		w.DrawLine3D(center.Add(math3d.V3(d, 0, -half)), center.Add(math3d.V3(d, 0, half)), color)
		w.DrawLine3D(center.Add(math3d.V3(-half, 0, d)), center.Add(math3d.V3(half, 0, d)), color)
	}
}
