package geom

// Affine represents a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
type Affine [6]float64

// Identity returns the identity matrix.
func Identity() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// Multiply returns m * other: other is applied first, then m.
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Apply transforms a point.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ScaleFactor returns the horizontal scale, used for stroke widths and radii
// under uniform scaling.
func (m Affine) ScaleFactor() float64 {
	return V(m[0], m[1]).Hypot()
}

// Fit returns the uniform scale-then-translate matrix that places a
// srcW×srcH canvas centered inside a dstW×dstH page.
func Fit(srcW, srcH, dstW, dstH float64) Affine {
	if srcW <= 0 || srcH <= 0 {
		return Identity()
	}
	s := min(dstW/srcW, dstH/srcH)
	tx := (dstW - srcW*s) / 2
	ty := (dstH - srcH*s) / 2
	return Translate(tx, ty).Multiply(Scale(s, s))
}
