/*
Package preview renders a trajectory onto a picture of the field.

The field is drawn as a dark square with white barriers. Trajectory steps are
coloured by speed, from grey for standing still to lime for full speed, and
steps violating the field rules are drawn red. Control points are drawn as
small diamonds on top.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/Genius6942/pathgen"
	"github.com/Genius6942/pathgen/field"
	"github.com/Genius6942/pathgen/waypoint"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

// tracer writes to trace with key 'preview'
func tracer() tracing.Trace {
	return tracing.Select("preview")
}

// Colours of preview elements.
var (
	Background   = colornames.Black
	BarrierColor = colornames.White
	PointColor   = color.RGBA{0xff, 0x99, 0x99, 0xff}
	StopColor    = colornames.Dimgray
	PathColor    = colornames.Lime
	ErrorColor   = colornames.Red
)

// Options control a rendering.
type Options struct {
	Width, Height int          // image size in pixels
	Field         *field.Field // field to draw, default field if nil
	MaxVelocity   float64      // speed drawn in PathColor
	LineWidth     float64      // in pixels
	PointSize     float64      // in pixels
}

// DefaultOptions returns options for a 720×720 image of the default field.
func DefaultOptions() Options {
	return Options{
		Width:       720,
		Height:      720,
		Field:       field.Default(),
		MaxVelocity: 24,
		LineWidth:   3,
		PointSize:   7,
	}
}

// Canvas is an image of a field, with a mapping from field coordinates to
// pixels.
type Canvas struct {
	img  *image.RGBA
	at   pathgen.AT
	opts Options
}

// NewCanvas creates an image of the (empty) field.
func NewCanvas(opts Options) *Canvas {
	if opts.Field == nil {
		opts.Field = field.Default()
	}
	if opts.MaxVelocity <= 0 {
		opts.MaxVelocity = 24
	}
	w, h := float64(opts.Width), float64(opts.Height)
	scale := opts.Field.Scale
	c := &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		at:   pathgen.Scaling(w/2/scale, -h/2/scale).Combine(pathgen.Translation(pathgen.V(w/2, h/2))),
		opts: opts,
	}
	tracer().Debugf("field to pixel transform %s", c.at)
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	for _, barrier := range opts.Field.Barriers {
		for _, e := range barrier.Edges() {
			c.Line(e[0], e[1], opts.LineWidth, BarrierColor)
		}
	}
	return c
}

// Pixel maps a field position to pixel coordinates.
func (c *Canvas) Pixel(p pathgen.Vector2) pathgen.Vector2 {
	return c.at.Transform(p)
}

// Image returns the picture drawn so far.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Line draws a line between two field positions, width pixels wide.
func (c *Canvas) Line(a, b pathgen.Vector2, width float64, col color.Color) {
	pa, pb := c.Pixel(a), c.Pixel(b)
	d := pb.Sub(pa)
	if d.Magnitude() < pathgen.Epsilon {
		c.Dot(a, width, col)
		return
	}
	n := pathgen.V(-d.Y, d.X).Scale(width / 2 / d.Magnitude())
	c.fill(col, pa.Add(n), pb.Add(n), pb.Sub(n), pa.Sub(n))
}

// Dot draws a diamond at a field position, size pixels across.
func (c *Canvas) Dot(p pathgen.Vector2, size float64, col color.Color) {
	q, r := c.Pixel(p), size/2
	c.fill(col, q.Add(pathgen.V(0, -r)), q.Add(pathgen.V(r, 0)), q.Add(pathgen.V(0, r)), q.Add(pathgen.V(-r, 0)))
}

// fill fills a polygon given in pixel coordinates.
func (c *Canvas) fill(col color.Color, pts ...pathgen.Vector2) {
	z := vector.NewRasterizer(c.opts.Width, c.opts.Height)
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// SpeedColor interpolates between StopColor and PathColor by |speed|.
func (c *Canvas) SpeedColor(speed float64) color.Color {
	t := math.Min(1, math.Abs(speed)/c.opts.MaxVelocity)
	if !pathgen.IsFinite(t) {
		t = 0
	}
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
	}
	return color.RGBA{
		R: mix(StopColor.R, PathColor.R),
		G: mix(StopColor.G, PathColor.G),
		B: mix(StopColor.B, PathColor.B),
		A: 0xff,
	}
}

// Trajectory draws a trajectory. Steps leaving the field or crossing a
// barrier are drawn in ErrorColor.
func (c *Canvas) Trajectory(path []pathgen.GeneratedPoint) {
	bad := make(map[int]bool)
	for _, v := range c.opts.Field.Check(path) {
		bad[v.Index] = true
	}
	for i := 0; i+1 < len(path); i++ {
		col := c.SpeedColor(path[i].Speed)
		if bad[i] || bad[i+1] {
			col = ErrorColor
		}
		c.Line(path[i].Position, path[i+1].Position, c.opts.LineWidth, col)
	}
	tracer().Debugf("drew %d trajectory points, %d flagged", len(path), len(bad))
}

// ControlPoints draws control points.
func (c *Canvas) ControlPoints(points []waypoint.ControlPoint) {
	for _, cp := range points {
		c.Dot(cp.Position, c.opts.PointSize, PointColor)
	}
}

// Render draws the field, a trajectory and its control points.
func Render(path []pathgen.GeneratedPoint, points []waypoint.ControlPoint, opts Options) *image.RGBA {
	c := NewCanvas(opts)
	c.Trajectory(path)
	c.ControlPoints(points)
	return c.Image()
}

// WritePNG renders a preview and writes it as PNG.
func WritePNG(w io.Writer, path []pathgen.GeneratedPoint, points []waypoint.ControlPoint, opts Options) error {
	return png.Encode(w, Render(path, points, opts))
}
