// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/hwboard"
)

// Uint64 returns the levels as an unsigned integer. Level 0 is the lsb. It
// returns false if any level is not Low or High.
//
func Uint64(ls []hwboard.Level) (uint64, bool) {
	var out uint64
	for bit, l := range ls {
		if !l.Defined() {
			return 0, false
		}
		if l == hwboard.High && bit < 64 {
			out |= 1 << uint(bit)
		}
	}
	return out, true
}

// Levels returns the bits levels of v, lsb first.
//
func Levels(v uint64, bits int) []hwboard.Level {
	ls := make([]hwboard.Level, bits)
	for bit := range ls {
		ls[bit] = hwboard.LevelOf(bit < 64 && v&(1<<uint(bit)) != 0)
	}
	return ls
}

var (
	constTrue  = constant("TRUE", hwboard.High)
	constFalse = constant("FALSE", hwboard.Low)
)

func constant(name string, l hwboard.Level) *hwboard.PartSpec {
	return hwboard.Combinational(name, nil, []string{pOut},
		func([]hwboard.Level) []hwboard.Level { return []hwboard.Level{l} })
}

// True returns a constant High source.
//
//	Outputs: out
//	Function: out = 1
//
func True() *hwboard.PartSpec { return constTrue }

// False returns a constant Low source.
//
//	Outputs: out
//	Function: out = 0
//
func False() *hwboard.PartSpec { return constFalse }

// Probe creates a probe part. The f function is called with the input level
// every time the gate is evaluated.
//
//	Inputs: in
//	Function: f(in)
//
func Probe(f func(hwboard.Level)) *hwboard.PartSpec {
	return hwboard.Combinational("PROBE", []string{pIn}, nil,
		func(in []hwboard.Level) []hwboard.Level {
			f(in[0])
			return nil
		})
}

// Register adds the default gate set to r: NOT, AND, NAND, OR, NOR, XOR, XNOR,
// MUX, DMUX, HalfAdder, FullAdder, DLATCH, TRUE and FALSE.
//
func Register(r *hwboard.Registry) error {
	for _, sp := range []*hwboard.PartSpec{
		notGate, and, nand, or, nor, xor, xnor,
		mux, dmux, hAdder, adder, latch,
		constTrue, constFalse,
	} {
		if err := r.Register(sp); err != nil {
			return err
		}
	}
	return nil
}
