/*
Package polygon provides closed polygons for field geometry.

Polygons are built with a builder, similar to paths:

	pg := polygon.NullPolygon().Knot(pathgen.V(0,0)).Knot(pathgen.V(1,3)).Knot(pathgen.V(3,0)).Cycle()

The vertices are held in a polyclip contour, which provides point
containment and bounding boxes. For open polylines, like the barriers on a
field, package polygon offers segment intersection tests.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"strings"

	"github.com/Genius6942/pathgen"
	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'polygon'
func tracer() tracing.Trace {
	return tracing.Select("polygon")
}

// Polygon is a sequence of vertices. A polygon is closed by Cycle(); only
// closed polygons have an inside.
type Polygon struct {
	contour polyclip.Contour
	closed  bool
}

// NullPolygon creates an empty polygon, to be extended by builder calls.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex. Part of builder functionality.
func (pg *Polygon) Knot(p pathgen.Vector2) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X, Y: p.Y})
	return pg
}

// Line connects to the next vertex. Edges of a polygon are always straight,
// so this is a no-op kept for symmetry with path builders.
func (pg *Polygon) Line() *Polygon {
	return pg
}

// Cycle closes a polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.closed = true
	return pg
}

// End ends an open polyline. Part of builder functionality.
func (pg *Polygon) End() *Polygon {
	pg.closed = false
	return pg
}

// Box creates a closed rectangle from two opposite corners.
func Box(a, b pathgen.Vector2) *Polygon {
	return NullPolygon().Knot(a).Knot(pathgen.V(b.X, a.Y)).Knot(b).Knot(pathgen.V(a.X, b.Y)).Cycle()
}

// Segment creates an open polyline from a to b.
func Segment(a, b pathgen.Vector2) *Polygon {
	return NullPolygon().Knot(a).Knot(b).End()
}

// N returns the number of vertices.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// IsCycle is a predicate: is this polygon closed?
func (pg *Polygon) IsCycle() bool {
	return pg.closed
}

// Pt returns vertex i.
func (pg *Polygon) Pt(i int) pathgen.Vector2 {
	p := pg.contour[i]
	return pathgen.V(p.X, p.Y)
}

// Edges returns the edges of pg. A closed polygon includes the edge from the
// last vertex back to the first.
func (pg *Polygon) Edges() [][2]pathgen.Vector2 {
	n := pg.N()
	if n < 2 {
		return nil
	}
	edges := make([][2]pathgen.Vector2, 0, n)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]pathgen.Vector2{pg.Pt(i), pg.Pt(i + 1)})
	}
	if pg.closed && n > 2 {
		edges = append(edges, [2]pathgen.Vector2{pg.Pt(n - 1), pg.Pt(0)})
	}
	return edges
}

// Contains is a predicate: is p inside of pg? Open polylines contain no
// points.
func (pg *Polygon) Contains(p pathgen.Vector2) bool {
	if !pg.closed || pg.N() < 3 {
		return false
	}
	return pg.contour.Contains(polyclip.Point{X: p.X, Y: p.Y})
}

// BoundingBox returns the lower left and upper right corner of the smallest
// axis-aligned rectangle around pg.
func (pg *Polygon) BoundingBox() (pathgen.Vector2, pathgen.Vector2) {
	if pg.N() == 0 {
		return pathgen.Origin, pathgen.Origin
	}
	bb := pg.contour.BoundingBox()
	return pathgen.V(bb.Min.X, bb.Min.Y), pathgen.V(bb.Max.X, bb.Max.Y)
}

// Crosses is a predicate: does the line from a to b cross an edge of pg?
// Touching an edge at an end point or running parallel to it is not a
// crossing.
func (pg *Polygon) Crosses(a, b pathgen.Vector2) bool {
	for _, e := range pg.Edges() {
		if Intersects(a, b, e[0], e[1]) {
			tracer().Debugf("%s--%s crosses edge %s--%s", a, b, e[0], e[1])
			return true
		}
	}
	return false
}

// Intersects is a predicate: do the segments a1–a2 and b1–b2 properly
// intersect? Intersections at an end point of a segment and parallel
// segments do not count.
func Intersects(a1, a2, b1, b2 pathgen.Vector2) bool {
	det := (a2.X-a1.X)*(b2.Y-b1.Y) - (b2.X-b1.X)*(a2.Y-a1.Y)
	if det == 0 {
		return false
	}
	lambda := ((b2.Y-b1.Y)*(b2.X-a1.X) + (b1.X-b2.X)*(b2.Y-a1.Y)) / det
	gamma := ((a1.Y-a2.Y)*(b2.X-a1.X) + (a2.X-a1.X)*(b2.Y-a1.Y)) / det
	return 0 < lambda && lambda < 1 && 0 < gamma && gamma < 1
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	var b strings.Builder
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			b.WriteString(" -- ")
		}
		p := pg.Pt(i)
		fmt.Fprintf(&b, "(%.4g,%.4g)", p.X, p.Y)
	}
	if pg.closed {
		b.WriteString(" -- cycle")
	}
	return b.String()
}
