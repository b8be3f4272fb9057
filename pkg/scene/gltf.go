package scene

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/clipspace/pkg/geometry"
	"github.com/taigrr/clipspace/pkg/math3d"
)

// LoadGLTF loads a .gltf or .glb file and returns one object per mesh node,
// bounded by the node's world space AABB.
func LoadGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := FromDocument(name, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// FromDocument walks the default scene of doc (or every root node when the
// document has no scenes) and collects mesh nodes as objects.
func FromDocument(name string, doc *gltf.Document) (*Scene, error) {
	s := &Scene{Name: name}
	visited := make(map[int]bool, len(doc.Nodes))

	var walk func(idx int, parent math3d.Mat4) error
	walk = func(idx int, parent math3d.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", idx)
		}
		if visited[idx] {
			return fmt.Errorf("node %d visited twice", idx)
		}
		visited[idx] = true

		node := doc.Nodes[idx]
		world := parent.Mul(localTransform(node))

		if node.Mesh != nil {
			bounds, err := meshBounds(doc, *node.Mesh)
			if err != nil {
				return fmt.Errorf("node %d: %w", idx, err)
			}
			if bounds.IsValid() {
				s.Add(Object{Name: nodeName(doc, idx), Bounds: bounds.Transform(world)})
			}
		}

		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := walk(root, math3d.Identity()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// rootNodes returns the nodes of the default scene, falling back to the first
// scene and then to every node that is nobody's child.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// localTransform returns the node's matrix when one is set, otherwise its
// translation, rotation and scale composed. Zero rotation and scale are
// treated as unset.
func localTransform(n *gltf.Node) math3d.Mat4 {
	m := math3d.Mat4(n.Matrix)
	if m != (math3d.Mat4{}) && m != math3d.Identity() {
		return m
	}

	t := math3d.V3FromArray(n.Translation)
	r := math3d.IdentityQuat()
	if n.Rotation != [4]float64{} {
		r = math3d.V4(n.Rotation[0], n.Rotation[1], n.Rotation[2], n.Rotation[3])
	}
	sc := math3d.Splat3(1)
	if n.Scale != [3]float64{} {
		sc = math3d.V3FromArray(n.Scale)
	}
	return math3d.TRS(t, r, sc)
}

func nodeName(doc *gltf.Document, idx int) string {
	node := doc.Nodes[idx]
	if node.Name != "" {
		return node.Name
	}
	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) && doc.Meshes[*node.Mesh].Name != "" {
		return doc.Meshes[*node.Mesh].Name
	}
	return fmt.Sprintf("node_%d", idx)
}

// meshBounds returns the local space box around every primitive of a mesh.
func meshBounds(doc *gltf.Document, meshIdx int) (geometry.AABB, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return geometry.AABB{}, fmt.Errorf("mesh index %d out of range", meshIdx)
	}

	bounds := geometry.EmptyAABB()
	for _, prim := range doc.Meshes[meshIdx].Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		b, err := positionBounds(doc, posIdx)
		if err != nil {
			return geometry.AABB{}, fmt.Errorf("mesh %q: %w", doc.Meshes[meshIdx].Name, err)
		}
		bounds = bounds.ExpandAABB(b)
	}
	return bounds, nil
}

// positionBounds uses the accessor's min/max when present, which glTF
// requires for POSITION, and otherwise scans the vertex data.
func positionBounds(doc *gltf.Document, accessorIdx int) (geometry.AABB, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return geometry.AABB{}, fmt.Errorf("accessor index %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if len(accessor.Min) >= 3 && len(accessor.Max) >= 3 {
		return geometry.NewAABB(
			math3d.V3(accessor.Min[0], accessor.Min[1], accessor.Min[2]),
			math3d.V3(accessor.Max[0], accessor.Max[1], accessor.Max[2]),
		), nil
	}

	positions, err := readPositions(doc, accessor)
	if err != nil {
		return geometry.AABB{}, fmt.Errorf("read positions: %w", err)
	}
	return geometry.AABBFromPoints(positions...), nil
}

// readPositions reads float VEC3 data from an embedded buffer.
func readPositions(doc *gltf.Document, accessor *gltf.Accessor) ([]math3d.Vec3, error) {
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	if idx := *accessor.BufferView; idx < 0 || idx >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view index %d out of range", idx)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer index %d out of range", view.Buffer)
	}
	buf := doc.Buffers[view.Buffer].Data
	if buf == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = 12
	}
	start := view.ByteOffset + accessor.ByteOffset
	if end := start + (accessor.Count-1)*stride + 12; accessor.Count > 0 && end > len(buf) {
		return nil, fmt.Errorf("accessor reads past buffer end (%d > %d)", end, len(buf))
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		off := start + i*stride
		out[i] = math3d.V3(
			float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off+8:]))),
		)
	}
	return out, nil
}
