package waypoint

import "github.com/Genius6942/pathgen"

// Handle is the document form of a handle offset.
type Handle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Export is the document form of a control point.
type Export struct {
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Flags   Flags    `json:"flags"`
	Handles []Handle `json:"handles"`
	Reverse bool     `json:"reverse"`
	Layers  []int    `json:"layers"`
}

// Export converts cp to its document form. Collections are never nil, so the
// JSON document always carries empty objects and arrays instead of null.
func (cp ControlPoint) Export() Export {
	e := Export{
		X:       cp.Position.X,
		Y:       cp.Position.Y,
		Flags:   cp.Flags.Clone(),
		Handles: make([]Handle, len(cp.Handles)),
		Reverse: cp.reverse,
		Layers:  append([]int{}, cp.Layers...),
	}
	for i, h := range cp.Handles {
		e.Handles[i] = Handle{X: h.X, Y: h.Y}
	}
	return e
}

// FromExport re-creates a control point from its document form. The reverse
// marker is restored as-is, without re-aligning the handles, so that a
// document round trip reproduces the exported handles exactly. Missing layers
// default to layer 0.
func FromExport(e Export) ControlPoint {
	cp := ControlPoint{
		Position: pathgen.V(e.X, e.Y),
		Flags:    e.Flags.Clone(),
		reverse:  e.Reverse,
	}
	if len(e.Handles) > 0 {
		cp.Handles = make([]pathgen.Vector2, len(e.Handles))
		for i, h := range e.Handles {
			cp.Handles[i] = pathgen.V(h.X, h.Y)
		}
	}
	if e.Layers == nil {
		cp.Layers = []int{0}
	} else {
		cp.Layers = append([]int{}, e.Layers...)
	}
	return cp
}

// ExportAll converts a sequence of control points to document form.
func ExportAll(cps []ControlPoint) []Export {
	ex := make([]Export, len(cps))
	for i, cp := range cps {
		ex[i] = cp.Export()
	}
	return ex
}

// ImportAll converts document points back to control points.
func ImportAll(ex []Export) []ControlPoint {
	cps := make([]ControlPoint, len(ex))
	for i, e := range ex {
		cps[i] = FromExport(e)
	}
	return cps
}
