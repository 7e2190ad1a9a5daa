package profile

import (
	"math"
	"testing"

	"github.com/Genius6942/pathgen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var lim = Limits{MaxVelocity: 24, MaxAcceleration: 12, K: 3}

func line(n int, step float64) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Position: pathgen.V(float64(i)*step, 0), U: float64(i)}
	}
	return samples
}

func TestCap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	assert.Equal(t, 24.0, lim.Cap(0))
	assert.Equal(t, 24.0, lim.Cap(math.NaN()))
	assert.Equal(t, 0.0, lim.Cap(math.Inf(-1)))
	assert.Equal(t, 6.0, lim.Cap(0.5))
	assert.Equal(t, 6.0, lim.Cap(-0.5), "sign of curvature is irrelevant")
	assert.Equal(t, 24.0, lim.Cap(0.01))
}

func TestLastSpeedIsZero(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	speeds := Profile(line(30, 1), Straight, lim)
	assert.Len(t, speeds, 30)
	assert.Equal(t, 0.0, speeds[29])
	assert.Nil(t, Profile(nil, Straight, lim))
	assert.Equal(t, []float64{0}, Profile(line(1, 1), Straight, lim))
}

func TestBackwardInequality(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	samples := line(40, 0.5)
	wiggle := CurvatureFunc(func(u float64) float64 { return math.Sin(u) })
	speeds := Profile(samples, wiggle, lim)
	for i := 0; i < len(speeds)-1; i++ {
		d := samples[i].Position.Distance(samples[i+1].Position)
		bound := math.Sqrt(2*lim.MaxAcceleration*d + speeds[i+1]*speeds[i+1])
		assert.LessOrEqual(t, speeds[i], bound+1e-9, "sample %d", i)
		assert.LessOrEqual(t, speeds[i], lim.Cap(wiggle(samples[i].U))+1e-9, "sample %d", i)
	}
}

func TestStraightLineIsUncapped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	samples := line(100, 1)
	speeds := Profile(samples, Straight, lim)
	// braking from v to 0 takes v²/2a = 24 units
	for i := 0; i < len(samples)-1; i++ {
		remaining := float64(len(samples) - 1 - i)
		want := math.Min(24, math.Sqrt(2*12*remaining))
		assert.InDelta(t, want, speeds[i], 1e-9, "sample %d", i)
	}
}
