// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"github.com/pkg/errors"
)

// A BuildFn builds a board network. It is called once by BoardSpec to read the
// board's I/O interface, then once for every gate instance.
//
type BuildFn func() (*Network, error)

// BoardSpec packages a board into a part. The inputs and outputs of the part
// are the board's input and output pins, in TypeIndex order, named after them.
//
// Each gate instance owns an independent network built by build. Evaluating
// the gate drives the board inputs, runs a solve pass on the inner network and
// reads the board outputs. An error from the inner solve pass fails the
// evaluation of the gate.
//
// An XOR part could be built from a board holding four NAND gates:
//
//	xor, err := hwboard.BoardSpec("XOR", func() (*hwboard.Network, error) {
//		n := hwboard.New()
//		// place pins, gates and wires...
//		return n, nil
//	})
//
func BoardSpec(name string, build BuildFn) (*PartSpec, error) {
	n, err := build()
	if err != nil {
		return nil, errors.Wrap(err, "build board "+name)
	}
	sp := &PartSpec{Name: name}
	for _, p := range n.InputPins() {
		sp.Inputs = append(sp.Inputs, p.Name)
	}
	for _, p := range n.OutputPins() {
		sp.Outputs = append(sp.Outputs, p.Name)
	}
	sp.Mount = func() (Evaluator, error) {
		bn, err := build()
		if err != nil {
			return nil, errors.Wrap(err, "build board "+name)
		}
		if bn.InputCount() != len(sp.Inputs) || bn.OutputCount() != len(sp.Outputs) {
			return nil, errors.New("board " + name + ": pin count changed between builds")
		}
		return &board{name: name, net: bn}, nil
	}
	if err := sp.check(); err != nil {
		return nil, err
	}
	return sp, nil
}

// board evaluates a nested board.
//
type board struct {
	name string
	net  *Network
}

func (b *board) Eval(in []Level) ([]Level, error) {
	if err := b.net.SetInputLevels(in); err != nil {
		return nil, errors.Wrap(err, "board "+b.name)
	}
	return b.net.OutputLevels(), nil
}
