// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package layout

import (
	"github.com/db47h/hwboard"
	"github.com/pkg/errors"
)

// Build validates d and returns a network holding its placements. Gate parts
// are looked up in reg. The grid size set in d overrides any WithSize option.
//
// Placements are replayed in a single mutation: the network runs one solve
// pass once all components are registered. A solve error is returned along
// with the network.
//
func (d *Document) Build(reg *hwboard.Registry, opts ...hwboard.Option) (n *hwboard.Network, err error) {
	if err = d.Validate(); err != nil {
		return nil, err
	}
	if d.Size > 0 {
		opts = append(opts[:len(opts):len(opts)], hwboard.WithSize(d.Size))
	}
	n = hwboard.New(opts...)

	net := n
	net.Begin()
	defer func() {
		if serr := net.End(); err == nil && serr != nil {
			err = serr
		}
	}()

	for i := range d.Pins {
		p, perr := d.Pins[i].boardPin()
		if perr != nil {
			return nil, perr
		}
		if !n.AddBoardPin(p) {
			return nil, errors.Errorf("%s: cannot place pin %s at %v", d.Name, p.Name, p.At)
		}
	}
	for _, g := range d.Gates {
		gate, gerr := reg.NewGate(g.Part, g.At.pt())
		if gerr != nil {
			return nil, errors.Wrap(gerr, d.Name)
		}
		if !n.Register(gate) {
			return nil, errors.Errorf("%s: cannot place %s at %v", d.Name, g.Part, g.At.pt())
		}
	}
	for _, w := range d.Wires {
		wire := &hwboard.Wire{Start: w[0].pt(), Bend: w[1].pt(), End: w[len(w)-1].pt()}
		if len(w) == 2 {
			wire = n.NewWire(w[0].pt(), w[1].pt())
		}
		if !n.Register(wire) {
			return nil, errors.Errorf("%s: cannot place wire %v", d.Name, []Point(w))
		}
	}
	for _, c := range d.Connexions {
		p := c.pt()
		if hasConnexion(n, p) {
			continue
		}
		if !n.CanToggleConnexion(p) {
			return nil, errors.Errorf("%s: cannot place connexion at %v", d.Name, p)
		}
		n.ToggleConnexion(p)
	}
	return n, nil
}

func (p *Pin) boardPin() (*hwboard.BoardPin, error) {
	typ := hwboard.Input
	if p.Type == "output" {
		typ = hwboard.Output
	}
	bp := hwboard.NewBoardPin(p.Name, typ, p.At.pt())
	bp.Bus = p.Bus
	if p.Facing != "" {
		f, ok := parseDirection(p.Facing)
		if !ok {
			return nil, errors.Errorf("pin %s: invalid direction %q", p.Name, p.Facing)
		}
		bp.Facing = f
	}
	return bp, nil
}

func parseDirection(s string) (hwboard.Direction, bool) {
	for d := hwboard.East; d <= hwboard.SouthEast; d++ {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

func hasConnexion(n *hwboard.Network, p hwboard.Point) bool {
	for _, c := range n.CursorComponents(p) {
		if c.Kind() == hwboard.KindConnexion {
			return true
		}
	}
	return false
}

// FromNetwork returns a layout document for n. Connexions are recorded only
// when they can be toggled, connexions at component ends being derived again
// when the layout is built.
//
func FromNetwork(name string, n *hwboard.Network) *Document {
	d := &Document{Name: name, Size: n.Grid().Size()}
	for _, p := range n.Pins() {
		pin := Pin{Name: p.Name, Type: "input", Bus: p.Bus, At: pointOf(p.At)}
		if p.Type == hwboard.Output {
			pin.Type = "output"
		}
		if p.Facing != hwboard.NewBoardPin(p.Name, p.Type, p.At).Facing {
			pin.Facing = p.Facing.String()
		}
		d.Pins = append(d.Pins, pin)
	}
	for _, id := range n.Components() {
		switch c := n.Component(id).(type) {
		case *hwboard.Gate:
			d.Gates = append(d.Gates, Gate{Part: c.Name(), At: pointOf(c.At)})
		case *hwboard.Wire:
			w := Wire{pointOf(c.Start), pointOf(c.Bend), pointOf(c.End)}
			if c.Bend == c.Start || c.Bend == c.End {
				w = Wire{pointOf(c.Start), pointOf(c.End)}
			}
			d.Wires = append(d.Wires, w)
		case *hwboard.Connexion:
			if n.CanToggleConnexion(c.At) {
				d.Connexions = append(d.Connexions, pointOf(c.At))
			}
		}
	}
	return d
}

// Spec returns a PartSpec for the board described by d. Every gate instance
// builds its own network from d.
//
func Spec(d *Document, reg *hwboard.Registry) (*hwboard.PartSpec, error) {
	return hwboard.BoardSpec(d.Name, func() (*hwboard.Network, error) {
		return d.Build(reg)
	})
}
