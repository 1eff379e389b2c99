// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import "strconv"

// Point is a cell position on a board.
//
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
//
func Pt(x, y int) Point { return Point{x, y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Direction is one of the eight 45° headings on the grid. Directions double as
// the first eight cell layers.
//
type Direction uint8

// Directions, counter-clockwise from east.
//
const (
	East Direction = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
	dirCount
)

var dirDelta = [dirCount]Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var dirNames = [dirCount]string{"E", "NE", "N", "NW", "W", "SW", "S", "SE"}

func (d Direction) String() string {
	if d < dirCount {
		return dirNames[d]
	}
	return "Direction(?)"
}

// Delta returns the unit step for d.
func (d Direction) Delta() Point { return dirDelta[d] }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return (d + 4) % dirCount }

// Layer returns the cell layer used by wire halves heading in direction d.
func (d Direction) Layer() Layer { return Layer(d) }

// directionOf returns the heading of a non-zero step v that is either
// axis-aligned or diagonal.
//
func directionOf(v Point) (Direction, bool) {
	dx, dy := sign(v.X), sign(v.Y)
	if dx != 0 && dy != 0 && abs(v.X) != abs(v.Y) || dx == 0 && dy == 0 {
		return 0, false
	}
	for d, u := range dirDelta {
		if u.X == dx && u.Y == dy {
			return Direction(d), true
		}
	}
	return 0, false
}

// Layer is a sub-cell slot. Layers 0 to 7 are the wire layers (one per
// Direction); ConnexionLayer holds junctions.
//
type Layer uint8

// Layer constants.
//
const (
	ConnexionLayer Layer = 8
	LayerCount           = 9
)

// Location is a single (x, y, layer) slot on the grid.
//
type Location struct {
	Point
	Layer Layer
}

func (l Location) String() string {
	return l.Point.String() + ":" + strconv.Itoa(int(l.Layer))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// segmentLocations appends the layer slots used by the straight or diagonal
// segment from a to b. It returns false if the segment is not a valid 45°
// multiple.
//
func segmentLocations(locs []Location, a, b Point) ([]Location, bool) {
	if a == b {
		return locs, true
	}
	d, ok := directionOf(b.Sub(a))
	if !ok {
		return locs, false
	}
	step, back := d.Delta(), d.Opposite().Layer()
	for p := a; p != b; p = p.Add(step) {
		locs = append(locs,
			Location{p, d.Layer()},
			Location{p.Add(step), back})
	}
	return locs, true
}

// segmentCells appends the cells crossed by the segment from a to b, a
// included and b excluded.
//
func segmentCells(pts []Point, a, b Point) []Point {
	if a == b {
		return pts
	}
	d, ok := directionOf(b.Sub(a))
	if !ok {
		return pts
	}
	for p := a; p != b; p = p.Add(d.Delta()) {
		pts = append(pts, p)
	}
	return pts
}
