package field

import (
	"testing"

	"github.com/Genius6942/pathgen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straight(from, to pathgen.Vector2, n int) []pathgen.GeneratedPoint {
	pts := make([]pathgen.GeneratedPoint, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = pathgen.GP(from.Lerp(to, float64(i)/float64(n)), 1, i)
	}
	return pts
}

func TestDefaultField(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	f := Default()
	assert.Equal(t, 72.0, f.Scale)
	assert.Len(t, f.Barriers, 3)
	lo, hi := f.Bounds.BoundingBox()
	assert.Equal(t, pathgen.V(-72, -72), lo)
	assert.Equal(t, pathgen.V(72, 72), hi)
	assert.True(t, f.InBounds(pathgen.V(10, -50)))
	assert.False(t, f.InBounds(pathgen.V(80, 0)))
}

func TestCheckClean(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	f := Default()
	assert.Empty(t, f.Check(straight(pathgen.V(-60, 60), pathgen.V(60, 60), 24)))
	assert.Empty(t, f.Check(straight(pathgen.V(10, -40), pathgen.V(10, 40), 16)))
}

func TestCheckBarrierCrossing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	f := Default()
	v := f.Check(straight(pathgen.V(-30, 0), pathgen.V(30, 0), 11))
	require.Len(t, v, 1)
	assert.Equal(t, BarrierCrossing, v[0].Kind)
	assert.Equal(t, 5, v[0].Index)
	assert.Contains(t, v[0].String(), "barrier crossing")
}

func TestCheckOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	f := New(10)
	v := f.Check(straight(pathgen.V(0, 0), pathgen.V(24, 0), 4))
	require.Len(t, v, 3)
	for i, violation := range v {
		assert.Equal(t, OutOfBounds, violation.Kind)
		assert.Equal(t, i+2, violation.Index)
	}
}
