package projection

import "github.com/taigrr/clipspace/pkg/math3d"

// LinearizeDepth converts a depth buffer value in [0, 1] back to a positive
// view-space distance for a perspective projection with the given planes.
func LinearizeDepth(depth, near, far float64, api math3d.GraphicsAPI) float64 {
	if math3d.ClipSpaceDepthOf(api) == math3d.NegOneToOne {
		ndc := depth*2 - 1
		return 2 * near * far / (far + near - ndc*(far-near))
	}
	return near * far / (far - depth*(far-near))
}

// EncodeDepth is the inverse of LinearizeDepth: it returns the depth buffer
// value a perspective projection writes for a view distance.
func EncodeDepth(distance, near, far float64, api math3d.GraphicsAPI) float64 {
	if math3d.ClipSpaceDepthOf(api) == math3d.NegOneToOne {
		ndc := (far + near - 2*near*far/distance) / (far - near)
		return (ndc + 1) / 2
	}
	return (far - near*far/distance) / (far - near)
}
