package bezier

import (
	"fmt"
	"math"

	"github.com/Genius6942/pathgen"
)

// Spline is a chain of cubic Bezier segments, built from 3k+1 control points.
// Segment i uses points 3i … 3i+3, so consecutive segments share their joint.
// A spline is parameterized globally by u ∈ [0,k]: the integral part of u
// selects a segment, the fractional part is the segment's parameter.
type Spline struct {
	points   []pathgen.Vector2
	segments []*Curve
	lut      *LUT
}

// NewSpline creates a spline from 3k+1 control points, with k ≥ 1. The points
// are copied.
func NewSpline(points []pathgen.Vector2) (*Spline, error) {
	if len(points) < 4 || (len(points)-1)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d points", ErrControlCount, len(points))
	}
	s := &Spline{points: append([]pathgen.Vector2(nil), points...)}
	for i := 3; i < len(s.points); i += 3 {
		s.segments = append(s.segments, NewCurve(s.points[i-3:i+1]...))
	}
	return s, nil
}

// MustSpline is like NewSpline, but panics on error.
func MustSpline(points []pathgen.Vector2) *Spline {
	s, err := NewSpline(points)
	if err != nil {
		panic(err)
	}
	return s
}

// K returns the number of segments.
func (s *Spline) K() int {
	return len(s.segments)
}

// Segment returns segment i.
func (s *Spline) Segment(i int) *Curve {
	return s.segments[i]
}

// Points returns a copy of the control points.
func (s *Spline) Points() []pathgen.Vector2 {
	return append([]pathgen.Vector2(nil), s.points...)
}

// locate splits a global parameter into segment and local parameter.
// u ≥ k maps to the end of the last segment, u < 0 to the start of the first.
func (s *Spline) locate(u float64) (*Curve, float64) {
	k := len(s.segments)
	if u >= float64(k) {
		return s.segments[k-1], 1
	}
	if u < 0 {
		return s.segments[0], 0
	}
	i := math.Floor(u)
	return s.segments[int(i)], u - i
}

// Evaluate returns the point of s at global parameter u.
func (s *Spline) Evaluate(u float64) pathgen.Vector2 {
	c, t := s.locate(u)
	return c.Evaluate(t)
}

// Curvature returns the signed curvature of s at global parameter u.
func (s *Spline) Curvature(u float64) float64 {
	c, t := s.locate(u)
	return c.Curvature(t)
}

// Inject injects every segment with floor(n/k) uniform steps and returns all
// samples, with global parameters. Joints appear twice, once as the end of a
// segment and once as the start of the next.
func (s *Spline) Inject(n int) []Sample {
	per := n / len(s.segments)
	var all []Sample
	for i, c := range s.segments {
		for _, smp := range c.Inject(per) {
			smp.U += float64(i)
			all = append(all, smp)
		}
	}
	s.lut = nil
	return all
}

// CumulativeDistances chains the distance tables of all segments into a single
// table over the whole spline. Segment i starts at the accumulated length of
// segments 0 … i-1.
func (s *Spline) CumulativeDistances() *LUT {
	lut := newLUT()
	offset := 0.0
	for i, c := range s.segments {
		lut.extend(c.samples, offset, float64(i))
		offset = lut.Length()
	}
	s.lut = lut
	return lut
}

// U returns the global parameter at arc length dist. If no table entry
// brackets dist, U returns k, i.e., the end of the spline.
func (s *Spline) U(dist float64) float64 {
	if u, ok := s.lut.Lookup(dist); ok {
		return u
	}
	return float64(len(s.segments))
}

// Length returns the arc length of s as approximated by the current distance
// table, or 0 if there is none.
func (s *Spline) Length() float64 {
	return s.lut.Length()
}

// SpaceInject re-samples s at equal arc-length distances. Every segment is
// injected with DefaultInjections steps, then the distance between samples is
// adjusted to L/floor(L/dist), so that the samples end exactly at the end of
// the spline. Calling SpaceInject again yields the same samples.
func (s *Spline) SpaceInject(dist float64) ([]Sample, error) {
	if !(dist > 0) || math.IsInf(dist, 0) {
		return nil, fmt.Errorf("%w: %g", pathgen.ErrSpacing, dist)
	}
	k := len(s.segments)
	s.Inject(DefaultInjections * k)
	s.CumulativeDistances()
	length := s.lut.Length()
	if pathgen.Is0(length) {
		tracer().Debugf("spline has zero length")
		return []Sample{{U: float64(k), Position: s.Evaluate(float64(k))}}, nil
	}
	numPoints := int(math.Floor(length / dist))
	if numPoints < 1 {
		numPoints = 1
	}
	dist = length / float64(numPoints)
	tracer().Debugf("spline of %d segments, length %.4f, %d steps of %.4f", k, length, numPoints, dist)
	path := make([]Sample, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		d := math.Min(float64(i)*dist, length)
		u := s.U(d)
		path[i] = Sample{U: u, Position: s.Evaluate(u)}
	}
	return path, nil
}
