/*
Package field models the playing field a robot drives on.

A field is a square keep-in area, centred on the origin, with straight
barriers the robot must not cross. Field units are inches; the default
field spans (-72,-72) to (72,72) with three barriers: two short ones across
the top and bottom and a long one along the centre line.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package field

import (
	"fmt"

	"github.com/Genius6942/pathgen"
	"github.com/Genius6942/pathgen/polygon"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'field'
func tracer() tracing.Trace {
	return tracing.Select("field")
}

// DefaultScale is half the side length of the default field.
const DefaultScale = 72.0

// Field is a keep-in area with barriers.
type Field struct {
	Scale    float64            // the field spans (-Scale,-Scale) to (Scale,Scale)
	Bounds   *polygon.Polygon   // keep-in area
	Barriers []*polygon.Polygon // open polylines
}

// New creates a square field of half side length scale, without barriers.
func New(scale float64) *Field {
	return &Field{
		Scale:  scale,
		Bounds: polygon.Box(pathgen.V(-scale, -scale), pathgen.V(scale, scale)),
	}
}

// Default returns the standard competition field.
func Default() *Field {
	return New(DefaultScale).
		WithBarrier(pathgen.V(-22.86, 46.77), pathgen.V(22.86, 46.77)).
		WithBarrier(pathgen.V(0, 46.77), pathgen.V(0, -46.77)).
		WithBarrier(pathgen.V(-22.86, -46.77), pathgen.V(22.86, -46.77))
}

// WithBarrier adds a barrier polyline through the given points.
func (f *Field) WithBarrier(points ...pathgen.Vector2) *Field {
	b := polygon.NullPolygon()
	for _, p := range points {
		b.Knot(p)
	}
	f.Barriers = append(f.Barriers, b.End())
	return f
}

// ViolationKind classifies a violation of the field rules.
type ViolationKind int

// Trajectories must stay in bounds and must not cross barriers.
const (
	OutOfBounds ViolationKind = iota
	BarrierCrossing
)

func (k ViolationKind) String() string {
	switch k {
	case OutOfBounds:
		return "out of bounds"
	case BarrierCrossing:
		return "barrier crossing"
	}
	return "<unknown>"
}

// Violation reports a trajectory point breaking a field rule. For a barrier
// crossing, Index is the point at the start of the crossing step.
type Violation struct {
	Kind     ViolationKind
	Index    int
	Position pathgen.Vector2
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at point #%d %s", v.Kind, v.Index, v.Position)
}

// InBounds is a predicate: is p inside the keep-in area?
func (f *Field) InBounds(p pathgen.Vector2) bool {
	return f.Bounds.Contains(p)
}

// Crosses is a predicate: does the step from a to b cross a barrier?
func (f *Field) Crosses(a, b pathgen.Vector2) bool {
	for _, barrier := range f.Barriers {
		if barrier.Crosses(a, b) {
			return true
		}
	}
	return false
}

// Check walks a trajectory and collects all violations of the field rules.
func (f *Field) Check(points []pathgen.GeneratedPoint) []Violation {
	var violations []Violation
	for i, p := range points {
		if !f.InBounds(p.Position) {
			violations = append(violations, Violation{Kind: OutOfBounds, Index: i, Position: p.Position})
		}
		if i+1 < len(points) && f.Crosses(p.Position, points[i+1].Position) {
			violations = append(violations, Violation{Kind: BarrierCrossing, Index: i, Position: p.Position})
		}
	}
	if len(violations) > 0 {
		tracer().Infof("trajectory has %d field violations", len(violations))
	}
	return violations
}
