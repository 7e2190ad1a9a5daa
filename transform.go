package pathgen

import (
	"fmt"
	"math"
)

// === Affine Transformations ================================================

// AT is an affine transform of the plane. It maps (x,y) to
//
//	x' = a·x + b·y + c
//	y' = d·x + e·y + f
//
// The third row of the homogeneous matrix is always (0,0,1) and is not stored.
type AT struct {
	a, b, c float64
	d, e, f float64
}

// Translation transform. Translate a point by v.
func Translation(v Vector2) AT {
	return AT{a: 1, c: v.X, e: 1, f: v.Y}
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	sin, cos := math.Sincos(theta)
	return AT{a: cos, b: -sin, d: sin, e: cos}
}

// Scaling transform. Scales x and y independently; a negative factor mirrors.
// The preview maps field units to pixels with a scaling that flips the y-axis.
func Scaling(sx, sy float64) AT {
	return AT{a: sx, e: sy}
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|0,0,1]", m.a, m.b, m.c, m.d, m.e, m.f)
}

// Combine 2 affine transformations to a new one. The result applies m first,
// then n.
func (m AT) Combine(n AT) AT {
	return AT{
		a: n.a*m.a + n.b*m.d,
		b: n.a*m.b + n.b*m.e,
		c: n.a*m.c + n.b*m.f + n.c,
		d: n.d*m.a + n.e*m.d,
		e: n.d*m.b + n.e*m.e,
		f: n.d*m.c + n.e*m.f + n.f,
	}
}

// Transform a 2D-point. The argument is unchanged and a new vector is returned.
func (m AT) Transform(v Vector2) Vector2 {
	return V(m.a*v.X+m.b*v.Y+m.c, m.d*v.X+m.e*v.Y+m.f)
}
