/*
Package catmull generates trajectories along uniform Catmull-Rom splines.

A Catmull-Rom spline interpolates all of its points. Every segment between
P1 and P2 is shaped by its neighbours P0 and P3; for the first and last
segment the missing neighbours are made up as ghost points.

Two generators are provided. Generate samples the spline at uniform
parameter steps and derives speeds from the local parameter velocity, with
a linear stop ramp over the final 5 units. GenerateProfiled samples the same
way, but assigns speeds with the curvature-based velocity profiler from
package profile.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package catmull

import (
	"fmt"
	"math"

	"github.com/Genius6942/pathgen"
	"github.com/Genius6942/pathgen/profile"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'catmull'
func tracer() tracing.Trace {
	return tracing.Select("catmull")
}

// StopRamp is the distance before the end of a path over which speed is
// ramped down linearly.
const StopRamp = 5.0

// Segment is a Catmull-Rom segment. It runs from P1 (t=0) to P2 (t=1).
type Segment struct {
	P0, P1, P2, P3 pathgen.Vector2
}

// Evaluate returns the point of s at t.
func (s Segment) Evaluate(t float64) pathgen.Vector2 {
	c1 := pathgen.Sum(s.P0.Scale(-0.5), s.P2.Scale(0.5))
	c2 := pathgen.Sum(s.P0, s.P1.Scale(-2.5), s.P2.Scale(2), s.P3.Scale(-0.5))
	c3 := pathgen.Sum(s.P0.Scale(-0.5), s.P1.Scale(1.5), s.P2.Scale(-1.5), s.P3.Scale(0.5))
	return pathgen.Sum(s.P1, c1.Scale(t), c2.Scale(t*t), c3.Scale(t*t*t))
}

// Derivative returns dP/dt at t.
func (s Segment) Derivative(t float64) pathgen.Vector2 {
	c1 := pathgen.Sum(s.P0.Scale(-0.5), s.P2.Scale(0.5))
	c2 := pathgen.Sum(s.P0.Scale(2), s.P1.Scale(-5), s.P2.Scale(4), s.P3.Scale(-1))
	c3 := pathgen.Sum(s.P0.Scale(-1.5), s.P1.Scale(4.5), s.P2.Scale(-4.5), s.P3.Scale(1.5))
	return pathgen.Sum(c1, c2.Scale(t), c3.Scale(t*t))
}

// SecondDerivative returns d²P/dt² at t.
func (s Segment) SecondDerivative(t float64) pathgen.Vector2 {
	c2 := pathgen.Sum(s.P0.Scale(2), s.P1.Scale(-5), s.P2.Scale(4), s.P3.Scale(-1))
	c3 := pathgen.Sum(s.P0.Scale(-3), s.P1.Scale(9), s.P2.Scale(-9), s.P3.Scale(3))
	return c2.Add(c3.Scale(t))
}

// Curvature returns the signed curvature of s at t.
func (s Segment) Curvature(t float64) float64 {
	v := s.Derivative(t)
	a := s.SecondDerivative(t)
	return v.Cross(a) / math.Pow(v.Magnitude(), 3)
}

// Length returns the distance between the interpolated points P1 and P2.
func (s Segment) Length() float64 {
	return s.P1.Distance(s.P2)
}

// Chain is a sequence of Catmull-Rom segments with a global parameter u:
// the integral part of u selects a segment.
type Chain []Segment

// NewChain creates the segments through points, padded with ghost points.
// The leading ghost point is 2·P0 - P1. With mirrorEnd set, the trailing ghost
// is mirrored the same way, otherwise the last point is repeated.
func NewChain(points []pathgen.Vector2, mirrorEnd bool) Chain {
	if len(points) < 2 {
		return nil
	}
	n := len(points)
	padded := make([]pathgen.Vector2, 0, n+2)
	padded = append(padded, points[0].Scale(2).Sub(points[1]))
	padded = append(padded, points...)
	if mirrorEnd {
		padded = append(padded, points[n-1].Scale(2).Sub(points[n-2]))
	} else {
		padded = append(padded, points[n-1])
	}
	chain := make(Chain, 0, n-1)
	for j := 0; j+3 < len(padded); j++ {
		chain = append(chain, Segment{padded[j], padded[j+1], padded[j+2], padded[j+3]})
	}
	return chain
}

// Curvature returns the curvature at global parameter u.
func (ch Chain) Curvature(u float64) float64 {
	if len(ch) == 0 {
		return 0
	}
	if u >= float64(len(ch)) {
		return ch[len(ch)-1].Curvature(1)
	}
	if u < 0 {
		return ch[0].Curvature(0)
	}
	i := math.Floor(u)
	return ch[int(i)].Curvature(u - i)
}

// steps returns the number of samples for a segment. Segments which would
// get no sample are degenerate.
func steps(seg Segment, step float64) (int, float64) {
	dist := seg.Length()
	return int(math.Floor(dist / step)), dist
}

func checkInput(points []pathgen.Vector2, step float64) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: got %d", pathgen.ErrInsufficientPoints, len(points))
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: %g", pathgen.ErrSpacing, step)
	}
	return nil
}

// Generate creates a trajectory through points with samples about step
// units apart. Every segment between two consecutive points is sampled at
// n = floor(d/step) uniform parameter values t = i/n, i < n, where d is the
// distance between the two points. The speed of a sample is |dP/dt|/d.
// Samples on the final segment within StopRamp units of the last point have
// their speed scaled by distance/StopRamp. The last point is appended with
// speed 0.
//
// Segments too short for a single sample are skipped.
// The input is not modified.
func Generate(points []pathgen.Vector2, step float64) ([]pathgen.GeneratedPoint, error) {
	if err := checkInput(points, step); err != nil {
		return nil, err
	}
	last := points[len(points)-1]
	chain := NewChain(points, false)
	path := make([]pathgen.GeneratedPoint, 0, len(chain)*8)
	for j, seg := range chain {
		n, dist := steps(seg, step)
		if n == 0 {
			tracer().Debugf("skipping segment #%d: %v", j, pathgen.ErrDegenerateSegment)
			continue
		}
		final := j == len(chain)-1
		for i := 0; i < n; i++ {
			t := float64(i) / float64(n)
			pos := seg.Evaluate(t)
			speed := seg.Derivative(t).Magnitude() / dist
			if final {
				if r := pos.Distance(last); r < StopRamp {
					speed = speed * r / StopRamp
				}
			}
			path = append(path, pathgen.GP(pos, speed, len(path)))
		}
	}
	path = append(path, pathgen.GP(last, 0, len(path)))
	tracer().Debugf("catmull-rom: %d points → %d samples", len(points), len(path))
	return path, nil
}

// Sample samples a chain at uniform parameter steps, as Generate does, and
// returns the samples with their global parameter. The final sample is the
// end of the chain.
func Sample(chain Chain, step float64) []profile.Sample {
	var samples []profile.Sample
	for j, seg := range chain {
		n, _ := steps(seg, step)
		for i := 0; i < n; i++ {
			t := float64(i) / float64(n)
			samples = append(samples, profile.Sample{Position: seg.Evaluate(t), U: float64(j) + t})
		}
	}
	if len(chain) > 0 {
		end := chain[len(chain)-1].P2
		samples = append(samples, profile.Sample{Position: end, U: float64(len(chain))})
	}
	return samples
}

// GenerateProfiled creates a trajectory through points, with ghost points
// mirrored at both ends, and speeds assigned by the velocity profiler using
// the curvature of the spline.
func GenerateProfiled(points []pathgen.Vector2, step float64, lim profile.Limits) ([]pathgen.GeneratedPoint, error) {
	if err := checkInput(points, step); err != nil {
		return nil, err
	}
	chain := NewChain(points, true)
	samples := Sample(chain, step)
	speeds := profile.Profile(samples, chain, lim)
	path := make([]pathgen.GeneratedPoint, len(samples))
	for i, s := range samples {
		path[i] = pathgen.GP(s.Position, speeds[i], i)
	}
	return path, nil
}
