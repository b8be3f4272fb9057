// Package scene holds named bounding volumes and culls them against a view
// frustum.
package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/clipspace/pkg/geometry"
	"github.com/taigrr/clipspace/pkg/math3d"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported scene format")

// Object is a named bounding volume. When Sphere is set it is tested instead
// of Bounds; Bounds is still kept so the object can be drawn.
type Object struct {
	Name   string
	Bounds geometry.AABB
	Sphere *geometry.Sphere
}

// NewBoxObject creates an object bounded by the box min..max.
func NewBoxObject(name string, min, max math3d.Vec3) Object {
	return Object{Name: name, Bounds: geometry.NewAABB(min, max)}
}

// NewSphereObject creates an object bounded by a sphere.
func NewSphereObject(name string, center math3d.Vec3, radius float64) Object {
	s := geometry.NewSphere(center, radius)
	return Object{Name: name, Bounds: s.BoundingBox(), Sphere: &s}
}

// Classify tests the object against f.
func (o Object) Classify(f geometry.Frustum) geometry.Classification {
	if o.Sphere != nil {
		return f.ClassifySphere(*o.Sphere)
	}
	return f.ClassifyAABB(o.Bounds)
}

// Scene is an ordered list of objects.
type Scene struct {
	Name    string
	Objects []Object
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...Object) {
	s.Objects = append(s.Objects, objs...)
}

// Bounds returns the box enclosing every object, or an empty box.
func (s *Scene) Bounds() geometry.AABB {
	b := geometry.EmptyAABB()
	for _, o := range s.Objects {
		b = b.ExpandAABB(o.Bounds)
	}
	return b
}

// Result is the culling outcome for one object.
type Result struct {
	Name  string
	Class geometry.Classification
}

// Visible reports whether any part of the object may be on screen.
func (r Result) Visible() bool {
	return r.Class != geometry.Outside
}

// Report is the outcome of culling a scene, in scene order.
type Report struct {
	Results []Result
}

// Cull classifies every object in the scene against f.
func (s *Scene) Cull(f geometry.Frustum) Report {
	r := Report{Results: make([]Result, len(s.Objects))}
	for i, o := range s.Objects {
		r.Results[i] = Result{Name: o.Name, Class: o.Classify(f)}
	}
	return r
}

// Visible returns the names of objects that survived culling.
func (r Report) Visible() []string {
	var names []string
	for _, res := range r.Results {
		if res.Visible() {
			names = append(names, res.Name)
		}
	}
	return names
}

// Culled returns the names of objects entirely outside the frustum.
func (r Report) Culled() []string {
	var names []string
	for _, res := range r.Results {
		if !res.Visible() {
			names = append(names, res.Name)
		}
	}
	return names
}

// Count returns the number of objects with classification c.
func (r Report) Count(c geometry.Classification) int {
	n := 0
	for _, res := range r.Results {
		if res.Class == c {
			n++
		}
	}
	return n
}

// Lookup returns the result for the named object.
func (r Report) Lookup(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// DemoScene returns a small outdoor scene laid out around a camera at
// (0, 2, 0) looking down -Z. Three of its objects lie outside that camera's
// default frustum: one behind it, one past the far plane and one far to the
// left.
func DemoScene() *Scene {
	s := &Scene{Name: "demo"}
	s.Add(
		NewBoxObject("Tree_1", math3d.V3(-2, 0, -15), math3d.V3(-1, 5, -14)),
		NewBoxObject("Tree_2", math3d.V3(3, 0, -20), math3d.V3(4, 5, -19)),
		NewBoxObject("Rock_1", math3d.V3(-5, 0, -10), math3d.V3(-4, 1, -9)),
		NewBoxObject("House", math3d.V3(0, 0, -30), math3d.V3(5, 4, -25)),
		NewBoxObject("Enemy_behind", math3d.V3(-1, 0, 5), math3d.V3(1, 2, 7)),
		NewBoxObject("Distant_mountain", math3d.V3(-20, 0, -200), math3d.V3(20, 50, -150)),
		NewBoxObject("Far_left_tree", math3d.V3(-100, 0, -15), math3d.V3(-99, 5, -14)),
	)
	return s
}

// LoadFile loads a scene from a YAML, glTF or GLB file.
func LoadFile(path string) (*Scene, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
