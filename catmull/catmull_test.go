package catmull

import (
	"errors"
	"math"
	"testing"

	"github.com/Genius6942/pathgen"
	"github.com/Genius6942/pathgen/profile"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	s := Segment{pathgen.V(-3, 1), pathgen.V(0, 0), pathgen.V(4, 2), pathgen.V(7, -1)}
	assert.True(t, s.Evaluate(0).Equal(s.P1))
	assert.True(t, s.Evaluate(1).Equal(s.P2))
	// tangent at P1 is (P2-P0)/2
	assert.True(t, s.Derivative(0).Equal(pathgen.V(3.5, 0.5)))
}

func TestSegmentCurvature(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	straight := Segment{pathgen.V(-1, 0), pathgen.V(0, 0), pathgen.V(1, 0), pathgen.V(2, 0)}
	assert.Equal(t, 0.0, straight.Curvature(0.3))
	left := Segment{pathgen.V(0, -1), pathgen.V(0, 0), pathgen.V(1, 1), pathgen.V(0, 2)}
	assert.Greater(t, left.Curvature(0.5), 0.0, "left turn has positive curvature")
}

func TestTwoPointScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	path, err := Generate([]pathgen.Vector2{pathgen.V(0, 0), pathgen.V(10, 0)}, 1)
	require.NoError(t, err)
	require.Len(t, path, 11)
	assert.True(t, path[0].Position.Equal(pathgen.V(0, 0)))
	assert.Equal(t, pathgen.V(10, 0), path[10].Position)
	assert.Equal(t, 0.0, path[10].Speed)
	for i, p := range path {
		assert.Equal(t, i, p.Index)
		assert.InDelta(t, 0, p.Position.Y, 1e-9)
		if i > 0 {
			assert.Greater(t, p.Position.X, path[i-1].Position.X)
		}
		if i < len(path)-1 {
			assert.Greater(t, p.Speed, 0.0)
		}
	}
	for i := len(path) - 5; i < len(path); i++ {
		assert.Less(t, path[i].Speed, path[i-1].Speed, "stop ramp at point %d", i)
	}
}

func TestInputErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	_, err := Generate([]pathgen.Vector2{pathgen.V(0, 0)}, 1)
	assert.True(t, errors.Is(err, pathgen.ErrInsufficientPoints))
	_, err = Generate([]pathgen.Vector2{pathgen.V(0, 0), pathgen.V(1, 1)}, 0)
	assert.True(t, errors.Is(err, pathgen.ErrSpacing))
	_, err = GenerateProfiled(nil, 1, profile.Limits{})
	assert.True(t, errors.Is(err, pathgen.ErrInsufficientPoints))
}

func TestDegenerateSegmentSkipped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	points := []pathgen.Vector2{pathgen.V(0, 0), pathgen.V(0, 0), pathgen.V(10, 0)}
	path, err := Generate(points, 1)
	require.NoError(t, err)
	assert.Equal(t, -1, pathgen.Finite(path))
	assert.Len(t, path, 11)
	assert.Equal(t, pathgen.V(0, 0), points[1], "input must not be modified")
	assert.Len(t, points, 3)
}

func TestProfiledStraight(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	lim := profile.Limits{MaxVelocity: 24, MaxAcceleration: 12, K: 3}
	points := []pathgen.Vector2{pathgen.V(0, 0), pathgen.V(10, 0), pathgen.V(20, 0)}
	path, err := GenerateProfiled(points, 1, lim)
	require.NoError(t, err)
	require.Len(t, path, 21)
	assert.Equal(t, 0.0, path[20].Speed)
	for i := 0; i < 20; i++ {
		assert.InDelta(t, float64(i), path[i].Position.X, 1e-9)
		want := math.Min(24, math.Sqrt(2*12*float64(20-i)))
		assert.InDelta(t, want, path[i].Speed, 1e-6, "point %d", i)
	}
}

func TestProfiledCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	lim := profile.Limits{MaxVelocity: 24, MaxAcceleration: 12, K: 3}
	points := []pathgen.Vector2{pathgen.V(0, 0), pathgen.V(20, 0), pathgen.V(20, 20), pathgen.V(40, 20)}
	path, err := GenerateProfiled(points, 1, lim)
	require.NoError(t, err)
	assert.Equal(t, -1, pathgen.Finite(path))
	assert.Equal(t, 0.0, path[len(path)-1].Speed)
	for i := 0; i < len(path)-1; i++ {
		d := path[i].Position.Distance(path[i+1].Position)
		bound := math.Sqrt(2*lim.MaxAcceleration*d + path[i+1].Speed*path[i+1].Speed)
		assert.LessOrEqual(t, path[i].Speed, bound+1e-9)
		assert.LessOrEqual(t, path[i].Speed, lim.MaxVelocity)
	}
}
