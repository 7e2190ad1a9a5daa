/*
Package waypoint models the control points a user places on the field.

A control point is a position with optional tangent handles, a reverse marker
and opaque user metadata (flags and display layers). Handles are stored as
offsets relative to the point. Interior points of a path usually carry two
handles (incoming first, outgoing second); the first and last point of a path
need only one.

Setting the reverse marker re-forces the handles to be collinear through the
point, so the tangent direction is consistent on both sides of a reversal:

	cp := waypoint.At(10, 5).WithHandles(pathgen.V(-3, 0), pathgen.V(4, 1))
	cp.SetReverse(true)  // both handles now point to (-x): a cusp

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package waypoint

import (
	"fmt"

	"github.com/Genius6942/pathgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'waypoint'
func tracer() tracing.Trace {
	return tracing.Select("waypoint")
}

// ControlPoint is a user-placed anchor of a path.
type ControlPoint struct {
	Position pathgen.Vector2   // anchor position
	Handles  []pathgen.Vector2 // tangent handles, relative to Position
	Flags    Flags             // user metadata, opaque to the engine
	Layers   []int             // display grouping, opaque to the engine
	reverse  bool              // robot drives backwards from here on
}

// At creates a control point without handles, on layer 0.
func At(x, y float64) ControlPoint {
	return ControlPoint{
		Position: pathgen.V(x, y),
		Flags:    Flags{},
		Layers:   []int{0},
	}
}

// WithHandles returns a copy of cp with its handles replaced.
func (cp ControlPoint) WithHandles(handles ...pathgen.Vector2) ControlPoint {
	c := cp.Clone()
	c.Handles = append([]pathgen.Vector2(nil), handles...)
	return c
}

// WithFlag returns a copy of cp with flag name set to v.
func (cp ControlPoint) WithFlag(name string, v FlagValue) ControlPoint {
	c := cp.Clone()
	c.Flags[name] = v
	return c
}

// WithLayers returns a copy of cp with its layers replaced.
func (cp ControlPoint) WithLayers(layers ...int) ControlPoint {
	c := cp.Clone()
	c.Layers = append([]int(nil), layers...)
	return c
}

// Reversed returns a copy of cp with the reverse marker set to rev. Handles
// are made collinear, see SetReverse.
func (cp ControlPoint) Reversed(rev bool) ControlPoint {
	c := cp.Clone()
	c.SetReverse(rev)
	return c
}

// IsReverse is a predicate: does a new direction segment start at cp?
func (cp ControlPoint) IsReverse() bool {
	return cp.reverse
}

// SetReverse sets the reverse marker. If cp has at least two handles, all
// handles are re-aligned to the first one (see MakeCollinear).
func (cp *ControlPoint) SetReverse(rev bool) {
	cp.reverse = rev
	if len(cp.Handles) >= 2 {
		cp.MakeCollinear(0)
	}
}

// MakeCollinear puts all handles onto the line through the point and the
// handle at index. Handle lengths are preserved. Other handles point into the
// opposite direction of the anchor handle for smooth points and into the same
// direction for reverse points (a cusp).
//
// A zero-length anchor handle defines no direction and leaves all handles
// unchanged.
func (cp *ControlPoint) MakeCollinear(index int) {
	if index < 0 || index > len(cp.Handles)-1 {
		return
	}
	anchor := cp.Handles[index]
	anchorDistance := anchor.Magnitude()
	if pathgen.Is0(anchorDistance) {
		tracer().Debugf("cannot align handles to zero-length handle #%d", index)
		return
	}
	multiplier := -1.0
	if cp.reverse {
		multiplier = 1.0
	}
	for i, h := range cp.Handles {
		if i == index {
			continue
		}
		ratio := h.Magnitude() / anchorDistance
		cp.Handles[i] = anchor.Scale(multiplier * ratio)
	}
}

// In returns the incoming handle, relative to the point.
func (cp ControlPoint) In() (pathgen.Vector2, bool) {
	if len(cp.Handles) == 0 {
		return pathgen.Origin, false
	}
	return cp.Handles[0], true
}

// Out returns the outgoing handle, relative to the point. For a point with a
// single handle this is the same handle as In(), which is what path endpoints
// use.
func (cp ControlPoint) Out() (pathgen.Vector2, bool) {
	if len(cp.Handles) == 0 {
		return pathgen.Origin, false
	}
	return cp.Handles[len(cp.Handles)-1], true
}

// Clone returns a deep copy of cp.
func (cp ControlPoint) Clone() ControlPoint {
	c := cp
	if cp.Handles != nil {
		c.Handles = append([]pathgen.Vector2(nil), cp.Handles...)
	}
	c.Flags = cp.Flags.Clone()
	if cp.Layers != nil {
		c.Layers = append([]int(nil), cp.Layers...)
	}
	return c
}

func (cp ControlPoint) String() string {
	r := ""
	if cp.reverse {
		r = " (reverse)"
	}
	return fmt.Sprintf("%s%v%s", cp.Position, cp.Handles, r)
}

// Positions extracts the anchor positions of a sequence of control points.
func Positions(cps []ControlPoint) []pathgen.Vector2 {
	pts := make([]pathgen.Vector2, len(cps))
	for i, cp := range cps {
		pts[i] = cp.Position
	}
	return pts
}

// CloneAll deep-copies a sequence of control points.
func CloneAll(cps []ControlPoint) []ControlPoint {
	c := make([]ControlPoint, len(cps))
	for i, cp := range cps {
		c[i] = cp.Clone()
	}
	return c
}
