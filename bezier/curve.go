/*
Package bezier implements Bezier curves in Bernstein polynomial form, cubic
Bezier splines and arc-length re-sampling.

A curve of degree n is given by n+1 control points. Its basis is kept as rows
of polynomial coefficients in descending powers of t, which makes derivatives
a simple transformation of the basis: multiply every coefficient by its power
and shift the row right by one.

Arc-length re-sampling works in two steps: first a curve is injected with
uniformly spaced parameter values, then a cumulative distance table (a LUT)
over these samples is inverted to find the parameter for a given distance
along the curve. The result is a sequence of samples which are (approximately)
equidistant in arc length.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bezier

import (
	"errors"
	"fmt"
	"math"

	"github.com/Genius6942/pathgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bezier'
func tracer() tracing.Trace {
	return tracing.Select("bezier")
}

var (
	// ErrControlCount is returned for a spline with a control point count other than 3k+1.
	ErrControlCount = errors.New("spline needs 3k+1 control points, k ≥ 1")
)

// DefaultInjections is the number of uniform parameter steps a curve is
// injected with before arc-length re-sampling.
const DefaultInjections = 50

// Choose returns the binomial coefficient (n k).
func Choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if n-k < k {
		k = n - k
	}
	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
	}
	return result
}

// Basis generates the Bernstein basis of degree n. Row i holds the
// coefficients of polynomial (n i)·tⁱ·(1-t)ⁿ⁻ⁱ, in descending powers of t.
func Basis(n int) [][]float64 {
	coeffs := make([][]float64, n+1)
	for i := 0; i <= n; i++ {
		row := make([]float64, 0, n+1)
		cof := Choose(n, i)
		for k := n - i; k >= 0; k-- {
			c := cof * Choose(n-i, k)
			if k%2 == 1 {
				c = -c
			}
			row = append(row, c)
		}
		for len(row) < n+1 {
			row = append(row, 0)
		}
		coeffs[i] = row
	}
	return coeffs
}

// === Curves ================================================================

// Sample is a point on a curve together with its curve parameter. For a
// spline, U is the global parameter: the integral part selects the segment.
type Sample struct {
	U        float64
	Position pathgen.Vector2
}

func (s Sample) String() string {
	return fmt.Sprintf("%s@%.4f", s.Position, s.U)
}

// Curve is a Bezier curve in Bernstein form. A curve keeps its most recent
// injection and the distance table built over it; apart from that it is
// immutable.
type Curve struct {
	points  []pathgen.Vector2
	coeffs  [][]float64
	samples []Sample
	lut     *LUT
	d1, d2  *Curve // derivatives, on demand
}

// NewCurve creates a Bezier curve from its control points. The degree of the
// curve is one less than the number of points. A cubic curve is created from
// 4 points.
func NewCurve(points ...pathgen.Vector2) *Curve {
	if len(points) == 0 {
		panic("bezier curve needs at least 1 control point")
	}
	return &Curve{
		points: append([]pathgen.Vector2(nil), points...),
		coeffs: Basis(len(points) - 1),
	}
}

// Degree returns the polynomial degree of c.
func (c *Curve) Degree() int {
	return len(c.points) - 1
}

// Points returns a copy of the control points of c.
func (c *Curve) Points() []pathgen.Vector2 {
	return append([]pathgen.Vector2(nil), c.points...)
}

// Start returns the first control point.
func (c *Curve) Start() pathgen.Vector2 {
	return c.points[0]
}

// End returns the last control point.
func (c *Curve) End() pathgen.Vector2 {
	return c.points[len(c.points)-1]
}

// Evaluate returns the point of c at parameter t. t is usually in [0…1],
// values outside extrapolate the polynomial.
func (c *Curve) Evaluate(t float64) pathgen.Vector2 {
	var pt pathgen.Vector2
	for i, row := range c.coeffs {
		b := 0.0
		for _, cf := range row { // Horner
			b = b*t + cf
		}
		pt = pt.Add(c.points[i].Scale(b))
	}
	return pt
}

// Derivative returns the derivative (velocity) of c as a new curve with
// the same control points and a transformed basis. c is unchanged.
func (c *Curve) Derivative() *Curve {
	if c.d1 == nil {
		c.d1 = c.derive()
	}
	return c.d1
}

// SecondDerivative returns the acceleration curve of c.
func (c *Curve) SecondDerivative() *Curve {
	if c.d2 == nil {
		c.d2 = c.Derivative().derive()
	}
	return c.d2
}

// ThirdDerivative returns the jerk curve of c.
func (c *Curve) ThirdDerivative() *Curve {
	return c.SecondDerivative().derive()
}

func (c *Curve) derive() *Curve {
	degree := c.Degree()
	d := &Curve{
		points: c.points,
		coeffs: make([][]float64, len(c.coeffs)),
	}
	for i, row := range c.coeffs {
		drow := make([]float64, len(row))
		for k := 0; k < len(row)-1; k++ {
			drow[k+1] = row[k] * float64(degree-k)
		}
		d.coeffs[i] = drow
	}
	return d
}

// Curvature returns the signed curvature of c at t. At a point where the
// velocity vanishes, curvature is not finite.
func (c *Curve) Curvature(t float64) float64 {
	v := c.Derivative().Evaluate(t)
	a := c.SecondDerivative().Evaluate(t)
	return v.Cross(a) / math.Pow(v.Magnitude(), 3)
}

// === Arc Length ============================================================

// Inject samples c at n+1 uniformly spaced parameters t = i/n. The samples are
// remembered for CumulativeDistances and returned to the caller. Any previous
// distance table is dropped.
func (c *Curve) Inject(n int) []Sample {
	if n < 1 {
		n = 1
	}
	samples := make([]Sample, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		samples[i] = Sample{U: t, Position: c.Evaluate(t)}
	}
	c.samples = samples
	c.lut = nil
	return append([]Sample(nil), samples...)
}

// CumulativeDistances builds the distance table over the most recent
// injection. If c has never been injected, the table is empty.
func (c *Curve) CumulativeDistances() *LUT {
	c.lut = buildLUT(c.samples, 0, 0)
	return c.lut
}

// T returns the curve parameter at arc length dist, interpolated linearly
// between the bracketing entries of the distance table. If no entry brackets
// dist (dist exceeds the table, or there is no table), T returns 0.
func (c *Curve) T(dist float64) float64 {
	if c.lut == nil {
		return 0
	}
	if t, ok := c.lut.Lookup(dist); ok {
		return t
	}
	return 0
}

// Length returns the arc length of c as approximated by the current distance
// table, or 0 if there is none.
func (c *Curve) Length() float64 {
	if c.lut == nil {
		return 0
	}
	return c.lut.Length()
}

// SpaceInject re-samples c at (nearly) equal arc-length distances dist. If c
// has not been injected, it will be injected with DefaultInjections steps first.
// With adjust set, dist is shrunk so that the samples end exactly at the end
// of the curve: floor(L/dist)+1 samples are returned, the first at t=0, the
// last at t=1.
func (c *Curve) SpaceInject(dist float64, adjust bool) ([]Sample, error) {
	if !(dist > 0) || math.IsInf(dist, 0) {
		return nil, fmt.Errorf("%w: %g", pathgen.ErrSpacing, dist)
	}
	if len(c.samples) == 0 {
		c.Inject(DefaultInjections)
	}
	if c.lut == nil {
		c.CumulativeDistances()
	}
	length := c.lut.Length()
	numPoints := int(math.Floor(length / dist))
	if adjust && numPoints > 0 {
		dist = length / float64(numPoints)
	}
	tracer().Debugf("curve of length %.4f, %d steps of %.4f", length, numPoints, dist)
	path := make([]Sample, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		d := math.Min(float64(i)*dist, length)
		t := c.T(d)
		path[i] = Sample{U: t, Position: c.Evaluate(t)}
	}
	return path, nil
}
