package hobby

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Genius6942/pathgen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFindControls(t *testing.T, path *Path) *Controls {
	t.Helper()
	c, err := FindControls(path, path.Controls)
	require.NoError(t, err)
	return c
}

func testpath() *Path {
	return Nullpath().Knot(pathgen.V(1, 1)).Curve().Knot(pathgen.V(2, 2)).
		Curve().Knot(pathgen.V(3, 1)).End()
}

func TestCreatePath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	path := testpath()
	assert.Equal(t, 3, path.N())
	assert.Equal(t, "(1,1) .. (2,2) .. (3,1)", AsString(path, nil))
}

func TestSetTension(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	path := Nullpath().Knot(pathgen.V(1, 1)).TensionCurve(1.0, 5.0).Knot(pathgen.V(2, 1)).End()
	assert.Equal(t, 1.0, path.PostTension(0))
	assert.Equal(t, 4.0, path.PreTension(1), "tension is clamped to 4")
	path.SetPostTension(0, 0.5)
	assert.Equal(t, 0.75, path.PostTension(0), "tension is clamped to 3/4")
}

func TestDir(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	path := Nullpath().DirKnot(pathgen.V(1, 1), pathgen.V(1, 0)).End()
	assert.Equal(t, pathgen.V(1, 0), path.PostDir(0))
	assert.True(t, path.PreDir(1).IsOrigin(), "unset direction is the zero vector")
}

func TestStraightLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	path := Nullpath().Knot(pathgen.V(0, 0)).Curve().Knot(pathgen.V(3, 0)).End()
	controls := mustFindControls(t, path)
	assert.True(t, controls.PostControl(0).Equal(pathgen.V(1, 0)), "post = %s", controls.PostControl(0))
	assert.True(t, controls.PreControl(1).Equal(pathgen.V(2, 0)), "pre = %s", controls.PreControl(1))
	assert.Equal(t, "(0,0) .. controls (1.0000,0.0000) and (2.0000,0.0000)\n  .. (3,0)",
		AsString(path, controls))
}

func TestSymmetricArc(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	controls := mustFindControls(t, testpath())
	pre, post := controls.PreControl(1), controls.PostControl(1)
	assert.InDelta(t, 2.0, pre.Y, 1e-9, "tangent at apex is horizontal")
	assert.InDelta(t, 2.0, post.Y, 1e-9, "tangent at apex is horizontal")
	assert.Less(t, pre.X, 2.0)
	assert.InDelta(t, 4.0-post.X, pre.X, 1e-9)
	first, last := controls.PostControl(0), controls.PreControl(2)
	assert.InDelta(t, 4.0-last.X, first.X, 1e-9)
	assert.InDelta(t, last.Y, first.Y, 1e-9)
	assert.False(t, controls.PreControl(0).IsFinite(), "no control before the first knot")
}

func TestStartDirection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	path := Nullpath().DirKnot(pathgen.V(0, 0), pathgen.V(0, 1)).Curve().Knot(pathgen.V(3, 0)).End()
	controls := mustFindControls(t, path)
	post := controls.PostControl(0)
	assert.InDelta(t, 0, post.X, 1e-9)
	assert.Greater(t, post.Y, 0.0)
	pre := controls.PreControl(1)
	assert.InDelta(t, 3, pre.X, 1e-9, "arc is mirror symmetric")
	assert.InDelta(t, post.Y, pre.Y, 1e-9)
}

func TestInteriorDirectionIsKept(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	path := Nullpath().Knot(pathgen.V(0, 0)).Curve().
		DirKnot(pathgen.V(5, 5), pathgen.V(1, 0)).Curve().
		Knot(pathgen.V(10, 0)).End()
	controls := mustFindControls(t, path)
	assert.InDelta(t, 5, controls.PreControl(1).Y, 1e-9)
	assert.Less(t, controls.PreControl(1).X, 5.0)
	assert.InDelta(t, 5, controls.PostControl(1).Y, 1e-9)
	assert.Greater(t, controls.PostControl(1).X, 5.0)
}

func TestSplitSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	assert.Len(t, splitSegments(testpath()), 1)
	rough := testpath()
	rough.SetPreCurl(1, 2.0)
	segs := splitSegments(rough)
	require.Len(t, segs, 2)
	assert.Equal(t, 0, segs[0].start)
	assert.Equal(t, 1, segs[0].end)
	assert.Equal(t, 1, segs[1].start)
	assert.Equal(t, 2, segs[1].end)
	dir := testpath()
	dir.SetPostDir(1, pathgen.V(1, 0))
	assert.Len(t, splitSegments(dir), 2)
	ends := testpath().SetPostDir(0, pathgen.V(1, 0)).SetPreDir(2, pathgen.V(1, 0))
	assert.Len(t, splitSegments(ends), 1, "directions at the ends do not split")
}

func TestPsi(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	seg := segment{whole: testpath(), start: 0, end: 2}
	assert.InDelta(t, -90.0, seg.psi(1)*180/math.Pi, 1e-9)
	assert.Equal(t, 0.0, seg.psi(0))
	assert.Equal(t, 0.0, seg.psi(2))
	assert.InDelta(t, math.Sqrt2, seg.d(1), 1e-12)
}

func TestFindControlsErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	_, err := FindControls(nil, nil)
	assert.True(t, errors.Is(err, ErrNilPath))
	_, err = FindControls(Nullpath().Knot(pathgen.V(0, 0)).End(), nil)
	assert.True(t, errors.Is(err, ErrTooFewKnots))
	_, err = FindControls(Nullpath().Knot(pathgen.V(0, 0)).Curve().Knot(pathgen.V(0, 0)).End(), nil)
	assert.True(t, errors.Is(err, ErrDegenerateSegment))
	assert.True(t, errors.Is(err, pathgen.ErrDegenerateSegment))
	_, err = FindControls(Nullpath().Knot(pathgen.V(0, 0)).Curve().Knot(pathgen.V(math.NaN(), 0)).End(), nil)
	assert.True(t, errors.Is(err, ErrInvalidKnot))
	assert.Panics(t, func() { MustFindControls(Nullpath().End(), nil) })
}

func TestEmptyPathJoinPanics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	assert.Panics(t, func() { Nullpath().Curve() })
	assert.Panics(t, func() { Nullpath().TensionCurve(1.2, 0.9) })
}

// A straight line gets its controls at a third and two thirds of the way.
func ExampleFindControls() {
	path := Nullpath().Knot(pathgen.V(0, 0)).Curve().Knot(pathgen.V(3, 0)).End()
	fmt.Printf("skeleton path = %s\n", AsString(path, nil))
	controls := MustFindControls(path, nil)
	fmt.Printf("smooth path = %s\n", AsString(path, controls))
	// Output:
	// skeleton path = (0,0) .. (3,0)
	// smooth path = (0,0) .. controls (1.0000,0.0000) and (2.0000,0.0000)
	//   .. (3,0)
}
