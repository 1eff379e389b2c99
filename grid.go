// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

// Column holds the component IDs occupying each layer of a cell. A zero entry
// is a free slot.
//
type Column [LayerCount]ID

// WireCount returns the number of occupied wire layers.
//
func (c Column) WireCount() int {
	n := 0
	for l := Layer(0); l < ConnexionLayer; l++ {
		if c[l] != 0 {
			n++
		}
	}
	return n
}

// Grid is a bounded spatial map from board cells to component IDs. It never
// interprets component semantics.
//
type Grid struct {
	size  int
	cells map[Point]*Column
}

// NewGrid returns an empty grid of the given side. Valid coordinates are in
// the range [-size/2, size/2).
//
func NewGrid(size int) *Grid {
	if size <= 0 || size&1 != 0 {
		panic("grid size must be even and positive")
	}
	return &Grid{size: size, cells: make(map[Point]*Column)}
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.size }

// InBounds returns true if p is a valid cell.
//
func (g *Grid) InBounds(p Point) bool {
	h := g.size / 2
	return p.X >= -h && p.X < h && p.Y >= -h && p.Y < h
}

// IsFree returns true if the given slot is inside the grid and unoccupied.
//
func (g *Grid) IsFree(p Point, l Layer) bool {
	if !g.InBounds(p) || l >= LayerCount {
		return false
	}
	c := g.cells[p]
	return c == nil || c[l] == 0
}

// Column returns a copy of the layers of cell p.
//
func (g *Grid) Column(p Point) Column {
	if c := g.cells[p]; c != nil {
		return *c
	}
	return Column{}
}

// At returns the ID occupying a slot, or 0.
//
func (g *Grid) At(p Point, l Layer) ID {
	if c := g.cells[p]; c != nil && l < LayerCount {
		return c[l]
	}
	return 0
}

// HasRoom returns true if all locations are in bounds, free, and distinct.
//
func (g *Grid) HasRoom(locs []Location) bool {
	seen := make(map[Location]struct{}, len(locs))
	for _, l := range locs {
		if _, dup := seen[l]; dup || !g.IsFree(l.Point, l.Layer) {
			return false
		}
		seen[l] = struct{}{}
	}
	return true
}

// Occupy assigns id to all locations. Either all locations are written or
// none is: it returns false without touching the grid if any slot is taken.
//
func (g *Grid) Occupy(locs []Location, id ID) bool {
	if id == 0 || !g.HasRoom(locs) {
		return false
	}
	for _, l := range locs {
		c := g.cells[l.Point]
		if c == nil {
			c = new(Column)
			g.cells[l.Point] = c
		}
		c[l.Layer] = id
	}
	return true
}

// Vacate clears the given locations.
//
func (g *Grid) Vacate(locs []Location) {
	for _, l := range locs {
		c := g.cells[l.Point]
		if c == nil {
			continue
		}
		c[l.Layer] = 0
		if *c == (Column{}) {
			delete(g.cells, l.Point)
		}
	}
}

// Cells calls fn for every non-empty cell. Iteration order is unspecified.
//
func (g *Grid) Cells(fn func(p Point, c Column) bool) {
	for p, c := range g.cells {
		if !fn(p, *c) {
			return
		}
	}
}
