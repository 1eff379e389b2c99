// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"github.com/pkg/errors"
)

// Pins returns the board pins ordered by Index.
//
func (n *Network) Pins() []*BoardPin {
	return append([]*BoardPin(nil), n.pins...)
}

// AddBoardPin registers a board pin. It is appended to the pin list.
//
func (n *Network) AddBoardPin(p *BoardPin) bool {
	return n.Register(p)
}

// RemoveBoardPin removes a board pin. The remaining pins are renumbered.
//
func (n *Network) RemoveBoardPin(p *BoardPin) {
	n.Remove(p)
}

// SetPinIndex moves p to position index in the pin list and renumbers all
// pins.
//
func (n *Network) SetPinIndex(p *BoardPin, index int) error {
	if p.id == 0 || n.components[p.id] != p {
		return errors.Wrap(ErrNotRegistered, "set pin index")
	}
	if index < 0 || index >= len(n.pins) {
		return errors.Wrapf(ErrPinIndex, "set pin index %d", index)
	}
	n.mutate(func() {
		ps := make([]*BoardPin, 0, len(n.pins))
		for _, q := range n.pins {
			if q != p {
				ps = append(ps, q)
			}
		}
		ps = append(ps, nil)
		copy(ps[index+1:], ps[index:])
		ps[index] = p
		n.pins = ps
		n.reindex()
	})
	return nil
}

// reindex renumbers pins so that Index is contiguous over all pins and
// TypeIndex is contiguous within each pin type.
//
func (n *Network) reindex() {
	var ti [2]int
	for i, p := range n.pins {
		p.index = i
		p.typeIndex = ti[p.Type]
		ti[p.Type]++
	}
}

func (n *Network) pinsOf(t PinType) []*BoardPin {
	var ps []*BoardPin
	for _, p := range n.pins {
		if p.Type == t {
			ps = append(ps, p)
		}
	}
	return ps
}
