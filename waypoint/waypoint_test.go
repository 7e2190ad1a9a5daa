package waypoint

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/Genius6942/pathgen"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestAtDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cp := At(1, 2)
	assert.Equal(t, pathgen.V(1, 2), cp.Position)
	assert.Equal(t, []int{0}, cp.Layers)
	assert.NotNil(t, cp.Flags)
	assert.False(t, cp.IsReverse())
	_, ok := cp.In()
	assert.False(t, ok, "point without handles has no incoming handle")
}

func TestInOut(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cp := At(0, 0).WithHandles(pathgen.V(-1, 0))
	in, _ := cp.In()
	out, _ := cp.Out()
	assert.Equal(t, in, out, "single handle serves both sides")
	cp = At(0, 0).WithHandles(pathgen.V(-1, 0), pathgen.V(2, 0))
	in, _ = cp.In()
	out, _ = cp.Out()
	assert.Equal(t, pathgen.V(-1, 0), in)
	assert.Equal(t, pathgen.V(2, 0), out)
}

func TestSetReverseMakesCusp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cp := At(10, 5).WithHandles(pathgen.V(-3, 0), pathgen.V(4, 1))
	cp.SetReverse(true)
	assert.True(t, cp.IsReverse())
	assert.Equal(t, pathgen.V(-3, 0), cp.Handles[0], "anchor handle must not move")
	h := cp.Handles[1]
	assert.InDelta(t, -math.Sqrt(17), h.X, 1e-9)
	assert.InDelta(t, 0.0, h.Y, 1e-9)
	assert.InDelta(t, math.Sqrt(17), h.Magnitude(), 1e-9, "length must be preserved")
}

func TestUnsetReverseMakesSmooth(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cp := At(0, 0).WithHandles(pathgen.V(0, 2), pathgen.V(1, 1)).Reversed(false)
	assert.False(t, cp.IsReverse())
	assert.InDelta(t, 0.0, cp.Handles[1].X, 1e-9)
	assert.InDelta(t, -math.Sqrt2, cp.Handles[1].Y, 1e-9)
	assert.InDelta(t, 0.0, cp.Handles[0].Cross(cp.Handles[1]), 1e-9, "handles must be collinear")
}

func TestReverseSingleHandleUntouched(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cp := At(0, 0).WithHandles(pathgen.V(3, 4)).Reversed(true)
	assert.Equal(t, []pathgen.Vector2{pathgen.V(3, 4)}, cp.Handles)
}

func TestMakeCollinearZeroAnchor(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cp := At(0, 0).WithHandles(pathgen.V(0, 0), pathgen.V(1, 1))
	cp.MakeCollinear(0)
	assert.Equal(t, pathgen.V(1, 1), cp.Handles[1])
	cp.MakeCollinear(7) // out of range, no-op
	assert.Equal(t, pathgen.V(1, 1), cp.Handles[1])
}

func TestCloneIsDeep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cp := At(0, 0).WithHandles(pathgen.V(1, 0)).WithFlag("intake", Bool(true))
	c := cp.Clone()
	c.Handles[0] = pathgen.V(9, 9)
	c.Flags["intake"] = Bool(false)
	c.Layers[0] = 3
	assert.Equal(t, pathgen.V(1, 0), cp.Handles[0])
	b, _ := cp.Flags["intake"].Bool()
	assert.True(t, b)
	assert.Equal(t, 0, cp.Layers[0])
}

func TestFlagJSON(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	fl := Flags{"intake": Bool(true), "wait": Number(1.5)}
	data, err := json.Marshal(fl)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"intake":true,"wait":1.5}`, string(data))
	var back Flags
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, BoolFlag, back["intake"].Kind())
	n, ok := back["wait"].Number()
	assert.True(t, ok)
	assert.Equal(t, 1.5, n)
	var f FlagValue
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &f))
	assert.Equal(t, NumberFlag, FlagKindFromString("number"))
	assert.Equal(t, NoFlag, FlagKindFromString("string"))
}

func TestExportRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	cps := []ControlPoint{
		At(0, 0).WithHandles(pathgen.V(5, 0)),
		At(20, 10).WithHandles(pathgen.V(-2, -3), pathgen.V(7, 1)).
			WithFlag("intake", Bool(true)).WithFlag("wait", Number(0.25)).WithLayers(1, 2),
		At(40, 0).WithHandles(pathgen.V(-5, 1)).Reversed(true),
	}
	// make handles of the middle point non-collinear by hand; a round trip
	// must not re-align them
	cps[1].Handles[1] = pathgen.V(7, 1)
	cps[1].reverse = true
	data, err := json.Marshal(ExportAll(cps))
	assert.NoError(t, err)
	var ex []Export
	assert.NoError(t, json.Unmarshal(data, &ex))
	back := ImportAll(ex)
	opts := cmp.Options{cmp.AllowUnexported(ControlPoint{}), cmpopts.EquateEmpty()}
	if diff := cmp.Diff(cps, back, opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	var e Export
	assert.NoError(t, json.Unmarshal([]byte(`{"x":1,"y":2}`), &e))
	cp := FromExport(e)
	assert.Equal(t, []int{0}, cp.Layers)
	assert.NotNil(t, cp.Flags)
	data, err := json.Marshal(At(1, 1).Export())
	assert.NoError(t, err)
	assert.JSONEq(t, `{"x":1,"y":1,"flags":{},"handles":[],"reverse":false,"layers":[0]}`, string(data))
}
