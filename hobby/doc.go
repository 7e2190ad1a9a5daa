/*
Package hobby finds smooth tangent handles for a sequence of knots, using
John Hobby's spline interpolation algorithm.

Hobby splines are the splines of MetaFont and MetaPost. Compared to other
interpolating splines they avoid unwanted wiggles and keep curves close to
circular arcs where possible. The primary source of information is:

	Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
	Computer Science Dept. Stanford University
	Report No. STAN-CS-85-1047, Jan 1985

and the implementation in

	Computers & Typesetting, Vol. B & D.

Trajectories never close on themselves, therefore this package deals with
open paths only. Clients build a skeleton path with a builder and then solve
it for control points:

	path := hobby.Nullpath().Knot(pathgen.V(0,0)).Curve().
	    DirKnot(pathgen.V(20,10), pathgen.V(1,0)).Curve().
	    Knot(pathgen.V(40,0)).End()
	controls, err := hobby.FindControls(path, nil)

Knots with an explicit direction, or with a curl other than 1, break a path
into segments which are solved independently. The directions given at the
breakpoints are kept exactly.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package hobby

import (
	"fmt"
	"strings"

	"github.com/Genius6942/pathgen"
)

// AsString returns a path, optionally including control points, as a
// (debugging) string in MetaPost-like notation:
//
//	(0,0) .. controls (1.0000,0.0000) and (2.0000,0.0000)
//	  .. (3,0)
func AsString(path *Path, contr *Controls) string {
	var b strings.Builder
	for i := 0; i < path.N(); i++ {
		if i > 0 {
			if contr != nil {
				fmt.Fprintf(&b, " and %s\n  .. ", ptstring(contr.PreControl(i), true))
			} else {
				b.WriteString(" .. ")
			}
		}
		b.WriteString(ptstring(path.Z(i), false))
		if contr != nil && i < path.N()-1 {
			fmt.Fprintf(&b, " .. controls %s", ptstring(contr.PostControl(i), true))
		}
	}
	return b.String()
}

func ptstring(p pathgen.Vector2, iscontrol bool) string {
	if !p.IsFinite() {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X), round(p.Y))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X), round(p.Y))
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
