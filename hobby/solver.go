package hobby

import (
	"fmt"
	"math"

	"github.com/Genius6942/pathgen"
)

// segment is a view onto knots start … end of a parent path.
type segment struct {
	whole      *Path
	start, end int
}

func (seg segment) N() int                      { return seg.end - seg.start + 1 }
func (seg segment) Z(i int) pathgen.Vector2     { return seg.whole.Z(seg.start + i) }
func (seg segment) delta(i int) pathgen.Vector2 { return seg.Z(i + 1).Sub(seg.Z(i)) }
func (seg segment) d(i int) float64             { return seg.delta(i).Magnitude() }

// psi is the turning angle at knot i. It is 0 at both ends of a segment.
func (seg segment) psi(i int) float64 {
	if i <= 0 || i >= seg.N()-1 {
		return 0
	}
	return reduceAngle(seg.delta(i).Angle() - seg.delta(i-1).Angle())
}

func (seg segment) postTension(i int) float64 { return seg.whole.PostTension(seg.start + i) }
func (seg segment) preTension(i int) float64  { return seg.whole.PreTension(seg.start + i) }

// ValidateForSolve checks if a path is solvable by Hobby interpolation.
func (path *Path) ValidateForSolve() error {
	if path == nil {
		return ErrNilPath
	}
	n := path.N()
	if n < 2 {
		return fmt.Errorf("%w: open path needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, z := range path.points {
		if !z.IsFinite() {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	for i := 0; i < n-1; i++ {
		if path.points[i+1].Sub(path.points[i]).Magnitude() <= pathgen.Epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, i+1)
		}
	}
	return nil
}

// FindControls finds the Hobby spline control points for a skeleton path.
// Clients may provide a container for the control points; if controls is nil,
// one will be allocated.
func FindControls(path *Path, controls *Controls) (*Controls, error) {
	if err := path.ValidateForSolve(); err != nil {
		return nil, err
	}
	if controls == nil {
		controls = &Controls{}
	}
	for _, seg := range splitSegments(path) {
		tracer().Debugf("find controls for knots %d … %d", seg.start, seg.end)
		solveSegment(seg, controls)
	}
	tracer().Debugf("hobby path = %s", AsString(path, controls))
	return controls, nil
}

// MustFindControls is like FindControls, but panics on validation errors.
func MustFindControls(path *Path, controls *Controls) *Controls {
	c, err := FindControls(path, controls)
	if err != nil {
		panic(err)
	}
	return c
}

// isrough is a predicate: does knot i break the path into segments?
// Interior knots with an explicit direction or a non-neutral curl do.
func isrough(path *Path, i int) bool {
	if path.PreCurl(i) != 1 || path.PostCurl(i) != 1 {
		return true
	}
	return !path.PreDir(i).IsOrigin() || !path.PostDir(i).IsOrigin()
}

func splitSegments(path *Path) []segment {
	var segments []segment
	at := 0
	for i := 1; i < path.N()-1; i++ {
		if isrough(path, i) {
			segments = append(segments, segment{whole: path, start: at, end: i})
			at = i
		}
	}
	return append(segments, segment{whole: path, start: at, end: path.N() - 1})
}

func solveSegment(seg segment, controls *Controls) {
	n := seg.N()
	u := make([]float64, n)
	v := make([]float64, n)
	theta := make([]float64, n)
	startOpen(seg, u, v)
	buildEqs(seg, u, v)
	endOpen(seg, theta, u, v)
	setControls(seg, theta, controls)
}

func startOpen(seg segment, u, v []float64) {
	dir := seg.whole.PostDir(seg.start)
	if dir.IsOrigin() {
		a := recip(seg.postTension(0))
		b := recip(seg.preTension(1))
		c := square(a) * seg.whole.PostCurl(seg.start) / square(b)
		u[0] = ((3-a)*c + b) / (a*c + 3 - b)
		v[0] = -u[0] * seg.psi(1)
	} else {
		u[0] = 0
		v[0] = reduceAngle(dir.Angle() - seg.delta(0).Angle())
	}
}

func buildEqs(seg segment, u, v []float64) {
	for i := 1; i < seg.N()-1; i++ {
		a0 := recip(seg.postTension(i - 1))
		a1 := recip(seg.postTension(i))
		b1 := recip(seg.preTension(i))
		b2 := recip(seg.preTension(i + 1))
		A := a0 / (square(b1) * seg.d(i-1))
		B := (3 - a0) / (square(b1) * seg.d(i-1))
		C := (3 - b2) / (square(a1) * seg.d(i))
		D := b2 / (square(a1) * seg.d(i))
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*seg.psi(i) - D*seg.psi(i+1) - A*v[i-1]) / t
	}
}

func endOpen(seg segment, theta, u, v []float64) {
	last := seg.N() - 1
	dir := seg.whole.PreDir(seg.end)
	if dir.IsOrigin() {
		a := recip(seg.postTension(last - 1))
		b := recip(seg.preTension(last))
		c := square(b) * seg.whole.PreCurl(seg.end) / square(a)
		ulast := (b*c + 3 - a) / ((3-b)*c + a)
		if den := u[last-1] - ulast; pathgen.Is0(den) {
			// curl at both ends of a single step: a straight line
			theta[last] = 0
		} else {
			theta[last] = v[last-1] / den
		}
	} else {
		theta[last] = reduceAngle(dir.Angle() - seg.delta(last-1).Angle())
	}
	for i := last - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

func setControls(seg segment, theta []float64, controls *Controls) {
	for i := 0; i < seg.N()-1; i++ {
		phi := -seg.psi(i+1) - theta[i+1]
		a := recip(seg.postTension(i))
		b := recip(seg.preTension(i + 1))
		p2, p3 := controlPoints(phi, theta[i], a, b, seg.delta(i))
		controls.SetPostControl(seg.start+i, seg.Z(i).Add(p2))
		controls.SetPreControl(seg.start+i+1, seg.Z(i+1).Sub(p3))
	}
}

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	// empiric constants, as explained by J.Hobby
	constA := math.Sqrt2
	constB := 0.0625 // 1/16
	constC := (3 - math.Sqrt(5)) / 2
	constCC := 1 - constC
	st, ct := math.Sincos(theta) // out-angle at the first knot
	sf, cf := math.Sincos(phi)   // in-angle at the second knot
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

// controlPoints calculates the offsets of the control points between two
// knots: the first relative to the start knot, the second (negated) relative
// to the end knot.
func controlPoints(phi, theta, a, b float64, dvec pathgen.Vector2) (pathgen.Vector2, pathgen.Vector2) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	uv1 := dvec.Rotated(theta)
	uv2 := dvec.Rotated(-phi)
	return uv1.Scale(a / 3 * rho), uv2.Scale(b / 3 * sigma)
}

// reduceAngle makes an angle fit into -π … π.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

func recip(a float64) float64 {
	if math.IsNaN(a) {
		return 1.0
	}
	return 1.0 / a
}

func square(a float64) float64 {
	return a * a
}
