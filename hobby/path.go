package hobby

import (
	"errors"
	"math"

	"github.com/Genius6942/pathgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hobby'
func tracer() tracing.Trace {
	return tracing.Select("hobby")
}

var (
	// ErrNilPath indicates a nil path pointer.
	ErrNilPath = errors.New("path must not be nil")
	// ErrTooFewKnots indicates path knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot coordinate")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = pathgen.ErrDegenerateSegment
)

// unknown marks a control point not calculated yet.
var unknown = pathgen.V(math.NaN(), math.NaN())

// pair holds a pre- and a post-value at a knot.
type pair struct {
	pre, post float64
}

var neutral = pair{1, 1}

// Path is a skeleton path for Hobby's algorithm. To construct a path,
// start with Nullpath() and extend it. A zero direction is "no direction".
type Path struct {
	points   []pathgen.Vector2 // knot i
	predirs  []pathgen.Vector2 // explicit incoming direction at knot i
	postdirs []pathgen.Vector2 // explicit outgoing direction at knot i
	curls    []pair            // explicit curls at knot i
	tensions []pair            // explicit tensions at knot i
	Controls *Controls         // control points to be calculated
}

// Controls collects calculated spline control points. PreControl(i) is the
// control point before knot i, PostControl(i) the one after it.
type Controls struct {
	prec  []pathgen.Vector2
	postc []pathgen.Vector2
}

// Nullpath creates an empty path, to be extended by subsequent builder
// calls:
//
//	path := Nullpath().Knot(p0).Curve().Knot(p1).TensionCurve(1, 2).Knot(p2).End()
//
// The control point container path.Controls is empty and will be filled by
// FindControls.
func Nullpath() *Path {
	return &Path{Controls: &Controls{}}
}

// End ends an open path. Part of builder functionality.
func (path *Path) End() *Path {
	return path
}

// Knot adds a smooth knot to a path. Part of builder functionality.
func (path *Path) Knot(p pathgen.Vector2) *Path {
	path.points = append(path.points, p)
	return path
}

// DirKnot adds a knot with a given tangent direction.
// Part of builder functionality.
func (path *Path) DirKnot(p pathgen.Vector2, dir pathgen.Vector2) *Path {
	path.points = append(path.points, p)
	path.SetPreDir(path.N()-1, dir)
	path.SetPostDir(path.N()-1, dir)
	return path
}

// Curve connects the last knot with the next one by a smooth curve.
// Part of builder functionality.
func (path *Path) Curve() *Path {
	if path.N() == 0 {
		panic("cannot add curve to empty path")
	}
	return path.TensionCurve(1.0, 1.0)
}

// TensionCurve connects the last knot with the next one by a tense curve.
// Tensions are clamped to 3/4 … 4. Part of builder functionality.
func (path *Path) TensionCurve(t1, t2 float64) *Path {
	if path.N() == 0 {
		panic("cannot add curve to empty path")
	}
	if t1 != 1.0 {
		path.SetPostTension(path.N()-1, t1)
	}
	if t2 != 1.0 {
		path.SetPreTension(path.N(), t2)
	}
	return path
}

// N returns the knot count.
func (path *Path) N() int {
	return len(path.points)
}

// Z returns knot i.
func (path *Path) Z(i int) pathgen.Vector2 {
	return path.points[i]
}

// SetPreDir is a property setter.
func (path *Path) SetPreDir(i int, dir pathgen.Vector2) *Path {
	path.predirs = extendV(path.predirs, i, pathgen.Origin)
	path.predirs[i] = dir
	return path
}

// SetPostDir is a property setter.
func (path *Path) SetPostDir(i int, dir pathgen.Vector2) *Path {
	path.postdirs = extendV(path.postdirs, i, pathgen.Origin)
	path.postdirs[i] = dir
	return path
}

// SetPreCurl is a property setter.
func (path *Path) SetPreCurl(i int, curl float64) *Path {
	path.curls = extendP(path.curls, i)
	path.curls[i].pre = curl
	return path
}

// SetPostCurl is a property setter.
func (path *Path) SetPostCurl(i int, curl float64) *Path {
	path.curls = extendP(path.curls, i)
	path.curls[i].post = curl
	return path
}

// SetPreTension is a property setter. Tensions are clamped to 3/4 … 4.
func (path *Path) SetPreTension(i int, tension float64) *Path {
	path.tensions = extendP(path.tensions, i)
	path.tensions[i].pre = clampTension(tension)
	return path
}

// SetPostTension is a property setter. Tensions are clamped to 3/4 … 4.
func (path *Path) SetPostTension(i int, tension float64) *Path {
	path.tensions = extendP(path.tensions, i)
	path.tensions[i].post = clampTension(tension)
	return path
}

func clampTension(t float64) float64 {
	return math.Max(0.75, math.Min(4.0, t))
}

// PreDir gets the incoming direction at knot i, or the zero vector.
func (path *Path) PreDir(i int) pathgen.Vector2 {
	return getV(path.predirs, i, pathgen.Origin)
}

// PostDir gets the outgoing direction at knot i, or the zero vector.
func (path *Path) PostDir(i int) pathgen.Vector2 {
	return getV(path.postdirs, i, pathgen.Origin)
}

// PreCurl gets the curl before knot i.
func (path *Path) PreCurl(i int) float64 {
	return getP(path.curls, i).pre
}

// PostCurl gets the curl after knot i.
func (path *Path) PostCurl(i int) float64 {
	return getP(path.curls, i).post
}

// PreTension returns the tension before knot i.
func (path *Path) PreTension(i int) float64 {
	return getP(path.tensions, i).pre
}

// PostTension returns the tension after knot i.
func (path *Path) PostTension(i int) float64 {
	return getP(path.tensions, i).post
}

// --- Controls --------------------------------------------------------------

// SetPreControl is a property setter.
func (ctrls *Controls) SetPreControl(i int, c pathgen.Vector2) {
	ctrls.prec = extendV(ctrls.prec, i, unknown)
	ctrls.prec[i] = c
}

// SetPostControl is a property setter.
func (ctrls *Controls) SetPostControl(i int, c pathgen.Vector2) {
	ctrls.postc = extendV(ctrls.postc, i, unknown)
	ctrls.postc[i] = c
}

// PreControl returns the control point before knot i. Unknown control
// points have NaN coordinates.
func (ctrls *Controls) PreControl(i int) pathgen.Vector2 {
	return getV(ctrls.prec, i, unknown)
}

// PostControl returns the control point after knot i. Unknown control
// points have NaN coordinates.
func (ctrls *Controls) PostControl(i int) pathgen.Vector2 {
	return getV(ctrls.postc, i, unknown)
}

// --- Helpers ---------------------------------------------------------------

// extendV extends a slice to make room for index i, padding with deflt.
func extendV(arr []pathgen.Vector2, i int, deflt pathgen.Vector2) []pathgen.Vector2 {
	for len(arr) <= i {
		arr = append(arr, deflt)
	}
	return arr
}

func getV(arr []pathgen.Vector2, i int, deflt pathgen.Vector2) pathgen.Vector2 {
	if i < 0 || i >= len(arr) {
		return deflt
	}
	return arr[i]
}

func extendP(arr []pair, i int) []pair {
	for len(arr) <= i {
		arr = append(arr, neutral)
	}
	return arr
}

func getP(arr []pair, i int) pair {
	if i < 0 || i >= len(arr) {
		return neutral
	}
	return arr[i]
}
