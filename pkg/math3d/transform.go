package math3d

// ViewProjection returns proj * view. Extracting a frustum from the result
// yields world-space planes.
func ViewProjection(view, proj Mat4) Mat4 {
	return proj.Mul(view)
}

// MVP returns proj * view * model. Extracting a frustum from the result
// yields planes in the model's local space.
func MVP(model, view, proj Mat4) Mat4 {
	return proj.Mul(view).Mul(model)
}

// ModelMatrix builds a model matrix from a position, a rotation quaternion
// (x, y, z, w) and a per-axis scale.
func ModelMatrix(position Vec3, rotation Vec4, scale Vec3) Mat4 {
	return TRS(position, rotation, scale)
}

// IdentityQuat returns the quaternion with no rotation.
func IdentityQuat() Vec4 {
	return Vec4{0, 0, 0, 1}
}
