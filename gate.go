// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"strconv"

	"github.com/pkg/errors"
)

// CasingWidth is the horizontal distance between the input and output pins of
// a gate.
//
const CasingWidth = 2

// Gate is a cased component: a part instance with input pins on its west side
// and output pins on its east side.
//
// The casing origin At is the position of the first input pin. Input i sits at
// (At.X, At.Y-i) and output j at (At.X+CasingWidth, At.Y-j). The casing body
// fills every wire layer of the cells strictly between the two pin columns.
//
type Gate struct {
	node
	Spec    *PartSpec
	At      Point
	Inputs  []*Pin
	Outputs []*Pin

	eval Evaluator
}

// NewGate returns an unregistered instance of spec with its origin at p.
//
func NewGate(spec *PartSpec, p Point) *Gate {
	g := &Gate{Spec: spec, At: p}
	for i, n := range spec.Inputs {
		g.Inputs = append(g.Inputs, &Pin{Name: n, Type: Input, Index: i, At: Point{p.X, p.Y - i}, Facing: West})
	}
	for i, n := range spec.Outputs {
		g.Outputs = append(g.Outputs, &Pin{Name: n, Type: Output, Index: i, At: Point{p.X + CasingWidth, p.Y - i}, Facing: East})
	}
	return g
}

// Kind implements Component.
func (g *Gate) Kind() Kind { return KindGate }

// Name returns the part name.
func (g *Gate) Name() string {
	if g.Spec == nil {
		return ""
	}
	return g.Spec.Name
}

// Children implements Component. The children of a gate are its pins, inputs
// first.
//
func (g *Gate) Children() []Component {
	cs := make([]Component, 0, len(g.Inputs)+len(g.Outputs))
	for _, p := range g.Inputs {
		cs = append(cs, p)
	}
	for _, p := range g.Outputs {
		cs = append(cs, p)
	}
	return cs
}

// Height returns the number of pin rows of the casing.
//
func (g *Gate) Height() int {
	h := len(g.Inputs)
	if len(g.Outputs) > h {
		h = len(g.Outputs)
	}
	if h == 0 {
		h = 1
	}
	return h
}

// CanFix implements Component.
//
func (g *Gate) CanFix() bool {
	return g.Spec != nil && g.Spec.check() == nil &&
		len(g.Inputs) == len(g.Spec.Inputs) && len(g.Outputs) == len(g.Spec.Outputs)
}

// Locations implements Component.
//
func (g *Gate) Locations() []Location {
	var locs []Location
	for x := g.At.X + 1; x < g.At.X+CasingWidth; x++ {
		for y := g.At.Y; y > g.At.Y-g.Height(); y-- {
			for l := Layer(0); l < ConnexionLayer; l++ {
				locs = append(locs, Location{Point{x, y}, l})
			}
		}
	}
	return locs
}

// ConnexionPoints implements Component. Casings connect through their pins only.
//
func (g *Gate) ConnexionPoints() []Point { return nil }

// Pin returns the pin with the given name.
// This function panics if the pin does not exist.
//
func (g *Gate) Pin(name string) *Pin {
	for _, p := range g.Inputs {
		if p.Name == name {
			return p
		}
	}
	for _, p := range g.Outputs {
		if p.Name == name {
			return p
		}
	}
	panic("pin " + name + " does not exist")
}

// Bus returns the pins of the given bus, bit 0 first.
// This function panics if the bus does not exist.
//
func (g *Gate) Bus(name string) []*Pin {
	var out []*Pin
	for i := 0; ; i++ {
		p := g.findPin(BusPinName(name, i))
		if p == nil {
			break
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		panic("bus " + name + " does not exist")
	}
	return out
}

func (g *Gate) findPin(name string) *Pin {
	for _, ps := range [2][]*Pin{g.Inputs, g.Outputs} {
		for _, p := range ps {
			if p.Name == name {
				return p
			}
		}
	}
	return nil
}

// InputReady returns true if every input pin carries a definite level.
//
func (g *Gate) InputReady() bool {
	for _, p := range g.Inputs {
		if !p.groupLevel().Defined() {
			return false
		}
	}
	return true
}

// Evaluate computes the gate outputs from the levels of its input groups and
// asserts them on the output groups. It is a no-op unless all inputs are
// defined; outputs are then left unchanged.
//
func (g *Gate) Evaluate() error {
	if g.eval == nil {
		return errors.New(g.Name() + ": gate not mounted")
	}
	if !g.InputReady() {
		return nil
	}
	in := make([]Level, len(g.Inputs))
	for i, p := range g.Inputs {
		in[i] = p.groupLevel()
	}
	out, err := safeEval(g.eval, in)
	if err != nil {
		return err
	}
	if len(out) != len(g.Outputs) {
		return errors.New(g.Name() + ": evaluator returned " + strconv.Itoa(len(out)) +
			" levels for " + strconv.Itoa(len(g.Outputs)) + " outputs")
	}
	for i, p := range g.Outputs {
		if p.group != nil {
			p.group.SetLevel(p.id, out[i])
		}
	}
	return nil
}

func (p *Pin) groupLevel() Level {
	if p.group == nil {
		return Undef
	}
	return p.group.level
}
