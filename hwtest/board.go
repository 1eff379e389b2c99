// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing boards and parts.
//
package hwtest

import (
	"github.com/db47h/hwboard"
	"github.com/pkg/errors"
)

// Test board geometry. The gate origin is at (0, 0); input board pins sit
// PinDistance cells west of the gate inputs, output board pins PinDistance
// cells east of the gate outputs.
//
const PinDistance = 4

// Wrap returns a network holding a single instance of spec, with one input
// board pin wired to each gate input and one output board pin wired to each
// gate output. Board pins are named after the gate pins and registered in
// pin order, so that bit i of the network Input is the i-th gate input.
//
func Wrap(spec *hwboard.PartSpec, opts ...hwboard.Option) (*hwboard.Network, *hwboard.Gate, error) {
	n := hwboard.New(opts...)
	g := spec.NewGate(hwboard.Pt(0, 0))
	if !n.Register(g) {
		return nil, nil, errors.New("cannot register gate " + spec.Name)
	}
	for _, p := range g.Inputs {
		at := p.At.Add(hwboard.Pt(-PinDistance, 0))
		if err := wirePin(n, hwboard.NewBoardPin(p.Name, hwboard.Input, at), at, p.At); err != nil {
			return nil, nil, err
		}
	}
	for _, p := range g.Outputs {
		at := p.At.Add(hwboard.Pt(PinDistance, 0))
		if err := wirePin(n, hwboard.NewBoardPin(p.Name, hwboard.Output, at), p.At, at); err != nil {
			return nil, nil, err
		}
	}
	if err := n.Err(); err != nil {
		return nil, nil, err
	}
	return n, g, nil
}

func wirePin(n *hwboard.Network, p *hwboard.BoardPin, from, to hwboard.Point) error {
	if !n.AddBoardPin(p) {
		return errors.Errorf("cannot place board pin %s at %v", p.Name, p.At)
	}
	if !n.Register(n.NewWire(from, to)) {
		return errors.Errorf("cannot wire board pin %s from %v to %v", p.Name, from, to)
	}
	return nil
}
