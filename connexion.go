// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

// JunctionThreshold is the number of occupied wire layers from which a
// connexion is a visible junction. Below it, a connexion is a pass-through.
//
const JunctionThreshold = 3

// Connexion is a zero-footprint junction marker. It links every component
// occupying a wire layer of its cell.
//
type Connexion struct {
	node
	At     Point
	column [dirCount]bool
	wires  int
}

// NewConnexion returns an unregistered connexion at p.
//
func NewConnexion(p Point) *Connexion {
	return &Connexion{At: p}
}

// Kind implements Component.
func (c *Connexion) Kind() Kind { return KindConnexion }

// CanFix implements Component.
func (c *Connexion) CanFix() bool { return true }

// Locations implements Component.
func (c *Connexion) Locations() []Location {
	return []Location{{c.At, ConnexionLayer}}
}

// ConnexionPoints implements Component.
func (c *Connexion) ConnexionPoints() []Point {
	return []Point{c.At}
}

// Column returns which wire layers were occupied when the connexion was last
// sampled.
//
func (c *Connexion) Column() [8]bool { return c.column }

// WireCount returns the number of occupied wire layers at the last sampling.
func (c *Connexion) WireCount() int { return c.wires }

// Visible returns true if the connexion is a junction of at least
// JunctionThreshold wire layers.
//
func (c *Connexion) Visible() bool {
	return c.wires >= JunctionThreshold
}

func (c *Connexion) sample(g *Grid) {
	col := g.Column(c.At)
	c.wires = 0
	for l := range c.column {
		c.column[l] = col[l] != 0
		if c.column[l] {
			c.wires++
		}
	}
}
