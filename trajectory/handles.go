package trajectory

import (
	"github.com/Genius6942/pathgen"
	"github.com/Genius6942/pathgen/hobby"
	"github.com/Genius6942/pathgen/waypoint"
)

// FillHandles returns a copy of run in which every point carries the handles
// a Bezier spline needs: the first point an outgoing one, the last point an
// incoming one, interior points both.
//
// An interior point with a single handle gets a mirrored outgoing handle.
// Points without any handle get them from Hobby's algorithm, solved over all
// knots of the run, with the handles given by the user fixing the tangent
// directions at their knots. If the run cannot be solved, e.g. because two
// consecutive knots coincide, missing handles point a third of the way to
// the neighbouring knots.
func FillHandles(run []waypoint.ControlPoint) []waypoint.ControlPoint {
	run = waypoint.CloneAll(run)
	last := len(run) - 1
	missing := false
	for i := range run {
		cp := &run[i]
		if i > 0 && i < last && len(cp.Handles) == 1 {
			cp.Handles = append(cp.Handles, cp.Handles[0].Neg())
		}
		if len(cp.Handles) == 0 {
			missing = true
		}
	}
	if !missing || len(run) < 2 {
		return run
	}
	controls, err := hobby.FindControls(skeleton(run), nil)
	if err != nil {
		tracer().Infof("cannot solve for handles, using chords: %v", err)
	}
	for i := range run {
		cp := &run[i]
		if len(cp.Handles) > 0 {
			continue
		}
		var in, out pathgen.Vector2
		if err != nil {
			in, out = chordThirds(run, i)
		} else {
			in = controls.PreControl(i).Sub(cp.Position)
			out = controls.PostControl(i).Sub(cp.Position)
		}
		switch i {
		case 0:
			cp.Handles = []pathgen.Vector2{out}
		case last:
			cp.Handles = []pathgen.Vector2{in}
		default:
			cp.Handles = []pathgen.Vector2{in, out}
		}
	}
	return run
}

// skeleton creates a Hobby path through the points of a run. Non-zero
// handles become tangent directions.
func skeleton(run []waypoint.ControlPoint) *hobby.Path {
	last := len(run) - 1
	path := hobby.Nullpath()
	for i, cp := range run {
		if i > 0 {
			path.Curve()
		}
		path.Knot(cp.Position)
		if in, ok := cp.In(); ok && i > 0 && !in.IsOrigin() {
			path.SetPreDir(i, in.Neg())
		}
		if out, ok := cp.Out(); ok && i < last && !out.IsOrigin() {
			path.SetPostDir(i, out)
		}
	}
	return path.End()
}

func chordThirds(run []waypoint.ControlPoint, i int) (in, out pathgen.Vector2) {
	p := run[i].Position
	if i > 0 {
		in = run[i-1].Position.Sub(p).Scale(1.0 / 3)
	}
	if i < len(run)-1 {
		out = run[i+1].Position.Sub(p).Scale(1.0 / 3)
	}
	return
}

// ExpandRun creates the Bezier control polygon of a run whose handles have
// been filled: the first point p and p+out, for every interior point p+in, p
// and p+out, and for the last point p+in and p. A run of n points yields
// 3(n-1)+1 control points.
func ExpandRun(run []waypoint.ControlPoint) []pathgen.Vector2 {
	if len(run) == 0 {
		return nil
	}
	last := len(run) - 1
	points := make([]pathgen.Vector2, 0, 3*last+1)
	for i, cp := range run {
		in, _ := cp.In()
		out, _ := cp.Out()
		if i > 0 {
			points = append(points, cp.Position.Add(in))
		}
		points = append(points, cp.Position)
		if i < last {
			points = append(points, cp.Position.Add(out))
		}
	}
	return points
}
