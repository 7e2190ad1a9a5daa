/*
Package trajectory stitches control points into a single trajectory.

A path of control points is cut into runs at interior reverse points. Each run
is handed to a generator (Catmull-Rom or Bezier spline), and the resulting
sub-trajectories are glued together, with the sign of the speeds flipping from
run to run. Generate is the single entry point of the engine: it never fails
and never panics, it returns an empty trajectory instead.

	cfg := trajectory.DefaultConfig()
	points := []waypoint.ControlPoint{
	    waypoint.At(-48, -48).WithHandles(pathgen.V(10, 0)),
	    waypoint.At(0, 0),
	    waypoint.At(48, 24).WithHandles(pathgen.V(-10, 0)),
	}
	path := trajectory.Generate(points, cfg)

Control points without handles get them from Hobby's spline algorithm.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package trajectory

import (
	"fmt"

	"github.com/Genius6942/pathgen"
	"github.com/Genius6942/pathgen/waypoint"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'trajectory'
func tracer() tracing.Trace {
	return tracing.Select("trajectory")
}

// Generator creates a sub-trajectory for a single run of control points.
// A run has at least 2 points, and no interior point of a run is a reverse
// point.
type Generator interface {
	GenerateRun(run []waypoint.ControlPoint) ([]pathgen.GeneratedPoint, error)
}

// GeneratorFunc adapts an ordinary function to a Generator.
type GeneratorFunc func(run []waypoint.ControlPoint) ([]pathgen.GeneratedPoint, error)

// GenerateRun calls f(run).
func (f GeneratorFunc) GenerateRun(run []waypoint.ControlPoint) ([]pathgen.GeneratedPoint, error) {
	return f(run)
}

// SplitRuns cuts points into runs at interior reverse points. A reverse point
// ends one run and starts the next one. The reverse flags of the first and
// the last point never split. Runs share their points with the input.
func SplitRuns(points []waypoint.ControlPoint) [][]waypoint.ControlPoint {
	if len(points) < 2 {
		return nil
	}
	var runs [][]waypoint.ControlPoint
	start := 0
	for i := 1; i < len(points)-1; i++ {
		if points[i].IsReverse() {
			runs = append(runs, points[start:i+1])
			start = i
		}
	}
	return append(runs, points[start:])
}

// Build generates all runs of points with gen and stitches the results
// together. The robot drives the first run forward unless the first point is
// a reverse point, and changes direction at every run boundary; speeds of
// backward runs are negated. Every run after the first drops its first point,
// which duplicates the last point of the previous run.
//
// Fewer than 2 points result in an empty trajectory.
func Build(points []waypoint.ControlPoint, gen Generator) ([]pathgen.GeneratedPoint, error) {
	path := []pathgen.GeneratedPoint{}
	if len(points) < 2 {
		return path, nil
	}
	runs := SplitRuns(points)
	reverse := !points[0].IsReverse()
	for r, run := range runs {
		sub, err := gen.GenerateRun(waypoint.CloneAll(run))
		if err != nil {
			return nil, fmt.Errorf("run #%d: %w", r, err)
		}
		reverse = !reverse
		if reverse {
			for i := range sub {
				if sub[i].Speed != 0 {
					sub[i].Speed = -sub[i].Speed
				}
			}
		}
		if r > 0 && len(sub) > 0 {
			sub = sub[1:]
		}
		tracer().Debugf("run #%d: %d points, reverse = %v, %d samples", r, len(run), reverse, len(sub))
		path = append(path, sub...)
	}
	tracer().Infof("%d control points in %d runs → %d trajectory points", len(points), len(runs), len(path))
	return path, nil
}

// NearestIndex returns the index of the trajectory point closest to p, or -1
// for an empty trajectory. Editors use it to attach flag points.
func NearestIndex(path []pathgen.GeneratedPoint, p pathgen.Vector2) int {
	nearest, best := -1, 0.0
	for i, gp := range path {
		if d := gp.Position.Distance(p); nearest < 0 || d < best {
			nearest, best = i, d
		}
	}
	return nearest
}

// PointAt returns the trajectory point at index, clamped to the last point.
// It returns false for an empty trajectory or a negative index.
func PointAt(path []pathgen.GeneratedPoint, index int) (pathgen.GeneratedPoint, bool) {
	if len(path) == 0 || index < 0 {
		return pathgen.GeneratedPoint{}, false
	}
	if index >= len(path) {
		index = len(path) - 1
	}
	return path[index], true
}
