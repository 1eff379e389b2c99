// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"github.com/pkg/errors"
)

// MaxIOBits is the maximum number of input or output bits accessible through
// the integer accessors.
//
const MaxIOBits = 64

// InputPins returns the input board pins ordered by TypeIndex.
//
func (n *Network) InputPins() []*BoardPin { return n.pinsOf(Input) }

// OutputPins returns the output board pins ordered by TypeIndex.
//
func (n *Network) OutputPins() []*BoardPin { return n.pinsOf(Output) }

// InputCount returns the number of input board pins.
func (n *Network) InputCount() int { return len(n.pinsOf(Input)) }

// OutputCount returns the number of output board pins.
func (n *Network) OutputCount() int { return len(n.pinsOf(Output)) }

// Input returns the value driven on the input pins. Pin 0 is the lsb.
//
func (n *Network) Input() uint64 {
	var v uint64
	for i, p := range n.InputPins() {
		if i < MaxIOBits && p.drive == High {
			v |= 1 << uint(i)
		}
	}
	return v
}

// SetInput drives the input pins with the bits of v, pin 0 being the lsb, and
// propagates the change. It returns the error of the solve pass, if any.
//
func (n *Network) SetInput(v uint64) error {
	ps := n.InputPins()
	in := make([]Level, len(ps))
	for i := range ps {
		in[i] = LevelOf(i < MaxIOBits && v&(1<<uint(i)) != 0)
	}
	return n.SetInputLevels(in)
}

// SetInputLevels drives each input pin with the corresponding level and
// propagates the change.
//
func (n *Network) SetInputLevels(in []Level) error {
	ps := n.InputPins()
	if len(in) != len(ps) {
		return errors.Wrapf(ErrInputCount, "got %d levels for %d input pins", len(in), len(ps))
	}
	return n.mutate(func() {
		for i, p := range ps {
			p.drive = in[i]
			p.group.SetLevel(p.id, in[i])
		}
	})
}

// Output returns the levels of the output pins packed into an integer, pin 0
// being the lsb. Pins that are not High read as 0.
//
func (n *Network) Output() uint64 {
	var v uint64
	for i, p := range n.OutputPins() {
		if i < MaxIOBits && p.Level() == High {
			v |= 1 << uint(i)
		}
	}
	return v
}

// OutputLevels returns the levels of the output pins.
//
func (n *Network) OutputLevels() []Level {
	ps := n.OutputPins()
	out := make([]Level, len(ps))
	for i, p := range ps {
		out[i] = p.Level()
	}
	return out
}

// InputValid returns a bitmask of the input pins whose group level is defined.
//
func (n *Network) InputValid() uint64 { return validMask(n.InputPins()) }

// OutputValid returns a bitmask of the output pins whose group level is
// defined.
//
func (n *Network) OutputValid() uint64 { return validMask(n.OutputPins()) }

func validMask(ps []*BoardPin) uint64 {
	var v uint64
	for i, p := range ps {
		if i < MaxIOBits && p.Level().Defined() {
			v |= 1 << uint(i)
		}
	}
	return v
}

// BusValue returns the value of the board pins of the named bus, ordered by
// pin index within the bus, pin 0 being the lsb. It returns false if no pin
// belongs to the bus or if any of its levels is not defined.
//
func (n *Network) BusValue(bus string) (uint64, bool) {
	var (
		v     uint64
		i     int
		valid = true
	)
	for _, p := range n.pins {
		if p.Bus != bus {
			continue
		}
		l := p.Level()
		if p.Type == Input {
			l = p.drive
		}
		valid = valid && l.Defined()
		if i < MaxIOBits && l == High {
			v |= 1 << uint(i)
		}
		i++
	}
	return v, i > 0 && valid
}
