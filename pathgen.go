/*
Package pathgen turns sparse, user-placed waypoints into dense, speed-annotated
trajectories for a mobile robot.

The root package holds the primitives shared by all sub-packages: 2D vectors,
affine transformations, generated trajectory points and a couple of numeric
helpers. Curve generation lives in sub-packages (catmull, bezier, hobby),
speed assignment in package profile, and package trajectory stitches everything
together into the engine's single entry point, trajectory.Generate.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pathgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathgen'
func tracer() tracing.Trace {
	return tracing.Select("pathgen")
}

var (
	// ErrInsufficientPoints indicates fewer than 2 points were given to a generator.
	ErrInsufficientPoints = errors.New("path needs at least 2 points")
	// ErrDegenerateSegment indicates two consecutive points collapse to one.
	ErrDegenerateSegment = errors.New("path has degenerate segment")
	// ErrSpacing indicates a non-positive or non-finite sampling step.
	ErrSpacing = errors.New("sampling step must be a positive number")
)

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// IsFinite is a predicate: is n neither NaN nor ±Inf?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Vector Data Type ======================================================

// Vector2 is a 2D point or vector. It is a value type: all operations return
// new vectors and never alias their operands.
type Vector2 struct {
	X float64
	Y float64
}

// Origin represents the frequently used constant (0,0).
var Origin = V(0, 0)

// V is a quick notation for contructing a vector from floats.
func V(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Pretty Stringer for vectors.
func (v Vector2) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// Add returns v + w.
func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vector2) Sub(w Vector2) Vector2 {
	return Vector2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by factor a.
func (v Vector2) Scale(a float64) Vector2 {
	return Vector2{v.X * a, v.Y * a}
}

// Div returns v divided by d. Division by zero yields ±Inf/NaN components,
// callers guard against it.
func (v Vector2) Div(d float64) Vector2 {
	return Vector2{v.X / d, v.Y / d}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// Dot returns the dot product of v and w.
func (v Vector2) Dot(w Vector2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z-component of the cross product of v and w.
func (v Vector2) Cross(w Vector2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Magnitude returns the length of v.
func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the euclidean distance between v and w.
func (v Vector2) Distance(w Vector2) float64 {
	return math.Hypot(v.X-w.X, v.Y-w.Y)
}

// Angle returns the direction of v in radians, in the range -π … π.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Lerp interpolates linearly between v (t=0) and w (t=1).
func (v Vector2) Lerp(w Vector2, t float64) Vector2 {
	return Vector2{(1-t)*v.X + t*w.X, (1-t)*v.Y + t*w.Y}
}

// Rotated returns v rotated around origin by theta (counterclockwise).
func (v Vector2) Rotated(theta float64) Vector2 {
	return Rotation(theta).Transform(v)
}

// RotatedAround returns v rotated around c by theta (counterclockwise).
func (v Vector2) RotatedAround(c Vector2, theta float64) Vector2 {
	return v.Sub(c).Rotated(theta).Add(c)
}

// Zap rounds x-part and y-part to Epsilon.
func (v Vector2) Zap() Vector2 {
	return Vector2{Zap(v.X), Zap(v.Y)}
}

// IsOrigin is a predicate: is this vector origin?
func (v Vector2) IsOrigin() bool {
	return v.Equal(Origin)
}

// Equal compares two vectors, tolerating differences below Epsilon.
func (v Vector2) Equal(w Vector2) bool {
	return Is0(v.X-w.X) && Is0(v.Y-w.Y)
}

// IsFinite is a predicate: are both components finite?
func (v Vector2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// Sum adds up any number of vectors.
func Sum(vs ...Vector2) Vector2 {
	var s Vector2
	for _, v := range vs {
		s = s.Add(v)
	}
	return s
}

// === Generated Points ======================================================

// GeneratedPoint is a point of a computed trajectory. Speed is signed, the sign
// encodes the direction of travel. Index is the position of the point within
// the sub-path it has been generated for.
type GeneratedPoint struct {
	Position Vector2
	Speed    float64
	Index    int
}

// GP is a quick notation for constructing a generated point.
func GP(pos Vector2, speed float64, index int) GeneratedPoint {
	return GeneratedPoint{Position: pos, Speed: speed, Index: index}
}

func (gp GeneratedPoint) String() string {
	return fmt.Sprintf("%s@%.4g", gp.Position, gp.Speed)
}

// Finite checks every point of a trajectory for NaN or infinite values. It returns
// the index of the first offending point, or -1.
func Finite(points []GeneratedPoint) int {
	for i, p := range points {
		if !p.Position.IsFinite() || !IsFinite(p.Speed) {
			tracer().Errorf("generated point #%d is not finite: %v", i, p)
			return i
		}
	}
	return -1
}
