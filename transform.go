package ambient

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// layout and motion properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-center) -> Scale -> Rotate -> Translate(center) -> Translate(X+TranslateX, Y+TranslateY)
func computeLocalTransform(n *Node, withTranslate bool) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)

	a := cos * n.ScaleX
	b := sin * n.ScaleX
	c := -sin * n.ScaleY
	d := cos * n.ScaleY

	cx := n.Width / 2
	cy := n.Height / 2

	tx := n.X - (a*cx + c*cy) + cx
	ty := n.Y - (b*cx + d*cy) + cy
	if withTranslate {
		tx += n.TranslateX
		ty += n.TranslateY
	}
	return [6]float64{a, b, c, d, tx, ty}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// WorldTransform returns the node's accumulated transform, computed on demand
// by walking up the parent chain. The engine owns few enough nodes that no
// dirty-flag cache is kept.
func (n *Node) WorldTransform() [6]float64 {
	local := computeLocalTransform(n, true)
	if n.Parent == nil {
		return local
	}
	return multiplyAffine(n.Parent.WorldTransform(), local)
}

// WorldAlpha returns the product of the node's alpha and its ancestors'.
func (n *Node) WorldAlpha() float64 {
	a := 1.0
	for p := n; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// Bounds returns the node's axis-aligned bounding box in world (viewport)
// coordinates, including its own motion offsets. This is what a browser
// reports as the bounding client rect.
func (n *Node) Bounds() Rect {
	return boxAABB(n.WorldTransform(), n.Width, n.Height)
}

// RestBounds returns the world bounding box without the node's own
// TranslateX/TranslateY, i.e. where the node sits at rest.
func (n *Node) RestBounds() Rect {
	m := computeLocalTransform(n, false)
	if n.Parent != nil {
		m = multiplyAffine(n.Parent.WorldTransform(), m)
	}
	return boxAABB(m, n.Width, n.Height)
}

func boxAABB(m [6]float64, w, h float64) Rect {
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = transformPoint(m, 0, 0)
	xs[1], ys[1] = transformPoint(m, w, 0)
	xs[2], ys[2] = transformPoint(m, 0, h)
	xs[3], ys[3] = transformPoint(m, w, h)
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.WorldTransform())
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.WorldTransform(), lx, ly)
}
