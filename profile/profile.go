/*
Package profile assigns speeds to the samples of a trajectory.

Profiling runs in two passes. The first pass caps the speed at every sample by
the curvature of the path: the tighter the turn, the slower the robot, with
cap k/|κ|. The second pass walks backwards from the final sample, where the
robot comes to a stop, and limits every speed to what the robot can brake
down from within the distance to the next sample:

	v_i = min(v_i, sqrt(2·a·d_i + v_{i+1}²))

There is no forward pass: acceleration out of a turn or out of the start is
not limited.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package profile

import (
	"math"

	"github.com/Genius6942/pathgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'profile'
func tracer() tracing.Trace {
	return tracing.Select("profile")
}

// Limits are the physical limits of the robot.
type Limits struct {
	MaxVelocity     float64 // in field units per second
	MaxAcceleration float64 // in field units per second²
	K               float64 // curvature factor: speed cap in turns is K/|κ|
}

// Sample is a trajectory point together with the curve parameter it has been
// evaluated at.
type Sample struct {
	Position pathgen.Vector2
	U        float64
}

// Curvaturer is a curve which knows its curvature at a parameter u.
type Curvaturer interface {
	Curvature(u float64) float64
}

// CurvatureFunc adapts an ordinary function to a Curvaturer.
type CurvatureFunc func(u float64) float64

// Curvature calls f(u).
func (f CurvatureFunc) Curvature(u float64) float64 {
	return f(u)
}

// Straight is a Curvaturer for straight lines.
var Straight = CurvatureFunc(func(float64) float64 { return 0 })

// Cap returns the speed cap for curvature kappa. A curvature of zero or
// an undefined curvature (at a point where the curve stands still) does not
// constrain the speed. An infinite curvature forces a stop.
func (lim Limits) Cap(kappa float64) float64 {
	kappa = math.Abs(kappa)
	switch {
	case math.IsNaN(kappa) || kappa == 0:
		return lim.MaxVelocity
	case math.IsInf(kappa, 0):
		return 0
	}
	return math.Min(lim.MaxVelocity, lim.K/kappa)
}

// CurvatureCap is the first pass of profiling. It returns a speed for every
// sample, capped by the curvature at the sample. The final sample gets
// speed 0.
func CurvatureCap(samples []Sample, c Curvaturer, lim Limits) []float64 {
	speeds := make([]float64, len(samples))
	for i := 0; i < len(samples)-1; i++ {
		speeds[i] = lim.Cap(c.Curvature(samples[i].U))
	}
	return speeds
}

// BrakeBackward is the second pass of profiling. It walks from the
// second-to-last sample down to the first and lowers every speed to what
// the robot is able to decelerate from, given maximum acceleration maxAccel.
// speeds is modified in place and returned.
func BrakeBackward(samples []Sample, speeds []float64, maxAccel float64) []float64 {
	for i := len(samples) - 1; i > 0; i-- {
		dist := samples[i].Position.Distance(samples[i-1].Position)
		v := math.Sqrt(2*maxAccel*dist + speeds[i]*speeds[i])
		speeds[i-1] = math.Min(speeds[i-1], v)
	}
	return speeds
}

// Profile runs both passes and returns a speed for every sample. The speed of
// the final sample is 0.
func Profile(samples []Sample, c Curvaturer, lim Limits) []float64 {
	if len(samples) == 0 {
		return nil
	}
	speeds := CurvatureCap(samples, c, lim)
	speeds = BrakeBackward(samples, speeds, lim.MaxAcceleration)
	tracer().Debugf("profiled %d samples, v_0 = %.4g", len(samples), speeds[0])
	return speeds
}
