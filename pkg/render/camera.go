package render

import (
	"math"

	"github.com/taigrr/clipspace/pkg/geometry"
	"github.com/taigrr/clipspace/pkg/math3d"
	"github.com/taigrr/clipspace/pkg/projection"
)

// Camera is a look-at camera whose matrices follow the conventions of one
// graphics API.
type Camera struct {
	API math3d.GraphicsAPI

	Position math3d.Vec3
	Target   math3d.Vec3
	UpHint   math3d.Vec3

	FOV         float64 // vertical, radians
	AspectRatio float64
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(api math3d.GraphicsAPI) *Camera {
	return &Camera{
		API:         api,
		Target:      math3d.Forward(),
		UpHint:      math3d.Up(),
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetAPI switches the conventions the matrices are built for.
func (c *Camera) SetAPI(api math3d.GraphicsAPI) {
	c.API = api
	c.viewDirty = true
	c.projDirty = true
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// LookAt aims the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets width / height.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Orbit places the camera on a horizontal circle around center and aims it
// there. yaw 0 puts the camera on the +Z side.
func (c *Camera) Orbit(center math3d.Vec3, yaw, distance, height float64) {
	c.Position = center.Add(math3d.V3(math.Sin(yaw)*distance, height, math.Cos(yaw)*distance))
	c.Target = center
	c.viewDirty = true
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position, c.Target, c.UpHint, c.API)
		c.viewDirty = false
		c.viewProjDirty = true
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far, c.API)
		c.projDirty = false
		c.viewProjDirty = true
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	if c.viewProjDirty {
		c.viewProjMatrix = math3d.ViewProjection(view, proj)
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// Frustum returns the world space view frustum.
func (c *Camera) Frustum() geometry.Frustum {
	return geometry.NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// WorldToScreen maps a world point to pixel coordinates with a top-left
// origin, whatever the API's window convention. visible is false when the
// point is outside the frustum.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	vp := projection.NewViewport(float64(screenWidth), float64(screenHeight))
	win, ok := projection.Project(worldPos, c.ViewProjectionMatrix(), vp, c.API)
	if !ok {
		return 0, 0, 0, false
	}
	x, y, depth = win.X, win.Y, win.Z
	if !math3d.ScreenOriginTopLeft(c.API) {
		y = vp.Height - y
	}
	visible = x >= 0 && x <= vp.Width && y >= 0 && y <= vp.Height && depth >= 0 && depth <= 1
	return x, y, depth, visible
}
