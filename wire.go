// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

// WireMode selects how the bend point of a new wire is computed.
//
type WireMode uint8

// Wire build modes.
//
const (
	// Straight draws the axis-aligned part first, then the diagonal.
	Straight WireMode = iota
	// Diagonal draws the 45° part first, then the axis-aligned one.
	Diagonal
)

func (m WireMode) String() string {
	if m == Diagonal {
		return "diagonal"
	}
	return "straight"
}

// Bend returns the bend point of a wire from a to b.
//
func Bend(a, b Point, mode WireMode) Point {
	v := b.Sub(a)
	m := abs(v.X)
	if ay := abs(v.Y); ay < m {
		m = ay
	}
	diag := Point{sign(v.X) * m, sign(v.Y) * m}
	if mode == Diagonal {
		return a.Add(diag)
	}
	return b.Sub(diag)
}

// Wire is a two segment polyline from Start to End through Bend. Either
// segment may be empty.
//
type Wire struct {
	node
	Start, Bend, End Point
}

// NewWire returns an unregistered wire from a to b.
//
func NewWire(a, b Point, mode WireMode) *Wire {
	return &Wire{Start: a, Bend: Bend(a, b, mode), End: b}
}

// Kind implements Component.
func (w *Wire) Kind() Kind { return KindWire }

// Points returns the distinct control points of the wire in path order.
//
func (w *Wire) Points() []Point {
	pts := []Point{w.Start}
	if w.Bend != w.Start {
		pts = append(pts, w.Bend)
	}
	if w.End != pts[len(pts)-1] {
		pts = append(pts, w.End)
	}
	return pts
}

// CanFix implements Component. A wire can be fixed if it has a non-zero length
// and both of its segments are straight or diagonal.
//
func (w *Wire) CanFix() bool {
	if w.Start == w.End {
		return false
	}
	if _, ok := segmentLocations(nil, w.Start, w.Bend); !ok {
		return false
	}
	_, ok := segmentLocations(nil, w.Bend, w.End)
	return ok
}

// Locations implements Component.
//
func (w *Wire) Locations() []Location {
	locs, _ := segmentLocations(nil, w.Start, w.Bend)
	locs, _ = segmentLocations(locs, w.Bend, w.End)
	return locs
}

// Cells returns the cells crossed by the wire, both ends included.
//
func (w *Wire) Cells() []Point {
	pts := segmentCells(nil, w.Start, w.Bend)
	pts = segmentCells(pts, w.Bend, w.End)
	return append(pts, w.End)
}

// ConnexionPoints implements Component. Wires connect at both ends.
//
func (w *Wire) ConnexionPoints() []Point {
	return []Point{w.Start, w.End}
}

// joinWires returns the control points of the wire obtained by splicing a and b
// at their common end p. It returns false if the result needs more than two
// segments.
//
func joinWires(a, b *Wire, p Point) (start, bend, end Point, ok bool) {
	pa, pb := a.Points(), b.Points()
	switch {
	case pa[len(pa)-1] == p:
	case pa[0] == p:
		reversePoints(pa)
	default:
		return
	}
	switch {
	case pb[0] == p:
	case pb[len(pb)-1] == p:
		reversePoints(pb)
	default:
		return
	}
	pts := simplify(append(pa, pb[1:]...))
	switch len(pts) {
	case 2:
		start, bend, end = pts[0], pts[1], pts[1]
	case 3:
		start, bend, end = pts[0], pts[1], pts[2]
	default:
		return
	}
	return start, bend, end, start != end
}

func reversePoints(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// simplify drops repeated points and intermediate points that do not change the
// heading of a polyline.
//
func simplify(pts []Point) []Point {
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		if n := len(out); n >= 2 {
			d0, ok0 := directionOf(out[n-1].Sub(out[n-2]))
			d1, ok1 := directionOf(p.Sub(out[n-1]))
			if ok0 && ok1 && d0 == d1 {
				out[n-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
