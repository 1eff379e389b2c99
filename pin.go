// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

// PinType tells whether a pin is an input or an output.
//
type PinType uint8

// Pin types.
//
const (
	Input PinType = iota
	Output
)

func (t PinType) String() string {
	if t == Output {
		return "output"
	}
	return "input"
}

// Pin is a casing pin: an input or output lead of a Gate. Pins are created
// along with their gate.
//
type Pin struct {
	node
	Name   string
	Type   PinType
	Index  int // position among the parent's inputs or outputs
	At     Point
	Facing Direction // heading of a wire leaving the pin
}

// Kind implements Component.
func (p *Pin) Kind() Kind { return KindCasingPin }

// CanFix implements Component.
func (p *Pin) CanFix() bool { return p.Facing < dirCount }

// Locations implements Component. A pin occupies the wire layer opposite its
// facing so that a wire can leave the cell in the facing direction.
//
func (p *Pin) Locations() []Location {
	return []Location{{p.At, p.Facing.Opposite().Layer()}}
}

// ConnexionPoints implements Component.
func (p *Pin) ConnexionPoints() []Point {
	return []Point{p.At}
}

// triggersParent returns true if a level change on the pin requires its
// parent to be evaluated again.
//
func (p *Pin) triggersParent() bool { return p.Type == Input }

// BoardPin exposes one bit of a board's I/O interface. Input board pins drive
// their group with the corresponding bit of the network input; output board
// pins are read into the network output.
//
type BoardPin struct {
	node
	Name   string
	Type   PinType
	Bus    string // optional bus name
	At     Point
	Facing Direction

	index     int
	typeIndex int
	drive     Level
}

// NewBoardPin returns an unregistered board pin. Input pins face east and
// output pins face west.
//
func NewBoardPin(name string, typ PinType, at Point) *BoardPin {
	f := East
	if typ == Output {
		f = West
	}
	return &BoardPin{Name: name, Type: typ, At: at, Facing: f}
}

// Kind implements Component.
func (p *BoardPin) Kind() Kind { return KindBoardPin }

// CanFix implements Component.
func (p *BoardPin) CanFix() bool { return p.Facing < dirCount && p.Type <= Output }

// Locations implements Component.
func (p *BoardPin) Locations() []Location {
	return []Location{{p.At, p.Facing.Opposite().Layer()}}
}

// ConnexionPoints implements Component.
func (p *BoardPin) ConnexionPoints() []Point {
	return []Point{p.At}
}

// Index returns the position of the pin among all board pins.
func (p *BoardPin) Index() int { return p.index }

// TypeIndex returns the position of the pin among board pins of the same type.
// It is also the bit number of the pin in the network Input or Output.
//
func (p *BoardPin) TypeIndex() int { return p.typeIndex }

// Drive returns the level asserted by an input pin.
func (p *BoardPin) Drive() Level { return p.drive }
