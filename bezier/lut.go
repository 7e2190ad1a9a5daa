package bezier

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// LUT is a cumulative arc-length table. It maps distances along a curve to
// curve parameters. Entries are ordered by distance; a lookup finds the
// first entry at or beyond the requested distance and interpolates linearly
// towards its predecessor.
//
// Consecutive samples at the same distance (a curve standing still) produce
// a single entry: the earliest one wins.
type LUT struct {
	table  *treemap.Map // float64 distance → lutEntry
	length float64
	lastU  float64
}

type lutEntry struct {
	u     float64 // parameter at this distance
	prevU float64 // parameter of the preceding sample
	prevD float64 // distance of the preceding sample
}

func newLUT() *LUT {
	return &LUT{table: treemap.NewWith(utils.Float64Comparator)}
}

// add appends a sample at parameter u with cumulative distance d. Samples
// must be added in order.
func (lut *LUT) add(u, d float64) {
	prevU, prevD := u, d
	if lut.table.Size() > 0 {
		prevU, prevD = lut.lastU, lut.length
	}
	if _, exists := lut.table.Get(d); !exists {
		lut.table.Put(d, lutEntry{u: u, prevU: prevU, prevD: prevD})
	}
	lut.length = d
	lut.lastU = u
}

// buildLUT accumulates the distances between consecutive samples, starting at
// distance offset. Parameters are shifted by uOffset.
func buildLUT(samples []Sample, offset, uOffset float64) *LUT {
	lut := newLUT()
	lut.extend(samples, offset, uOffset)
	return lut
}

func (lut *LUT) extend(samples []Sample, offset, uOffset float64) {
	d := offset
	for i, s := range samples {
		if i > 0 {
			d += samples[i-1].Position.Distance(s.Position)
		}
		lut.add(s.U+uOffset, d)
	}
}

// Lookup returns the parameter at distance dist. It reports false if dist is
// beyond the end of the table. Distances before the start of the table map to
// the first parameter.
func (lut *LUT) Lookup(dist float64) (float64, bool) {
	if lut == nil || lut.table.Empty() {
		return 0, false
	}
	key, value := lut.table.Ceiling(dist)
	if key == nil {
		return 0, false
	}
	d, e := key.(float64), value.(lutEntry)
	if d == e.prevD {
		return e.u, true
	}
	s := (dist - e.prevD) / (d - e.prevD)
	return e.prevU + s*(e.u-e.prevU), true
}

// Length is the cumulative distance of the last sample.
func (lut *LUT) Length() float64 {
	if lut == nil {
		return 0
	}
	return lut.length
}

// Size returns the number of distinct distance entries.
func (lut *LUT) Size() int {
	if lut == nil {
		return 0
	}
	return lut.table.Size()
}
