// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for hwboard.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/hwboard"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = hwboard.BusPinName(n, j)
		}
	}
	return b
}

var notGate = hwboard.Combinational("NOT", []string{pIn}, []string{pOut},
	func(in []hwboard.Level) []hwboard.Level { return []hwboard.Level{in[0].Not()} })

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not() *hwboard.PartSpec { return notGate }

// other gates
type gate func(a, b bool) bool

func (g gate) eval(in []hwboard.Level) []hwboard.Level {
	return []hwboard.Level{hwboard.LevelOf(g(in[0].Bool(), in[1].Bool()))}
}

func newGate(name string, fn func(a, b bool) bool) *hwboard.PartSpec {
	return hwboard.Combinational(name, gateIn, gateOut, gate(fn).eval)
}

var (
	gateIn  = []string{pA, pB}
	gateOut = []string{pOut}

	and  = newGate("AND", func(a, b bool) bool { return a && b })
	nand = newGate("NAND", func(a, b bool) bool { return !(a && b) })
	or   = newGate("OR", func(a, b bool) bool { return a || b })
	nor  = newGate("NOR", func(a, b bool) bool { return !(a || b) })
	xor  = newGate("XOR", func(a, b bool) bool { return a && !b || !a && b })
	xnor = newGate("XNOR", func(a, b bool) bool { return a && b || !a && !b })
)

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And() *hwboard.PartSpec { return and }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand() *hwboard.PartSpec { return nand }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or() *hwboard.PartSpec { return or }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor() *hwboard.PartSpec { return nor }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
//
func Xor() *hwboard.PartSpec { return xor }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor() *hwboard.PartSpec { return xnor }

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(bits int) *hwboard.PartSpec {
	return hwboard.Combinational("NOT"+strconv.Itoa(bits), bus(bits, pIn), bus(bits, pOut),
		func(in []hwboard.Level) []hwboard.Level {
			out := make([]hwboard.Level, len(in))
			for i, l := range in {
				out[i] = l.Not()
			}
			return out
		})
}

// GateN returns a N-bits logic gate.
//
//	Inputs: a[bits], b[bits]
//	Outouts: out[bits]
//	Function: for i := range out { out[i] = f(a[i], b[i]) }
//
func GateN(name string, bits int, f func(bool, bool) bool) *hwboard.PartSpec {
	return hwboard.Combinational(name+strconv.Itoa(bits), bus(bits, pA, pB), bus(bits, pOut),
		func(in []hwboard.Level) []hwboard.Level {
			out := make([]hwboard.Level, bits)
			for i := range out {
				out[i] = hwboard.LevelOf(f(in[i].Bool(), in[bits+i].Bool()))
			}
			return out
		})
}

// OrNWay returns a N-Way OR gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] || in[1] || in[2] || ... || in[n-1]
//
func OrNWay(ways int) *hwboard.PartSpec {
	return hwboard.Combinational("OR"+strconv.Itoa(ways)+"Way", bus(ways, pIn), []string{pOut},
		func(in []hwboard.Level) []hwboard.Level {
			for _, l := range in {
				if l == hwboard.High {
					return []hwboard.Level{hwboard.High}
				}
			}
			return []hwboard.Level{hwboard.Low}
		})
}

// AndNWay returns a N-Way AND gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] && in[1] && in[2] && ... && in[n-1]
//
func AndNWay(ways int) *hwboard.PartSpec {
	return hwboard.Combinational("AND"+strconv.Itoa(ways)+"Way", bus(ways, pIn), []string{pOut},
		func(in []hwboard.Level) []hwboard.Level {
			for _, l := range in {
				if l == hwboard.Low {
					return []hwboard.Level{hwboard.Low}
				}
			}
			return []hwboard.Level{hwboard.High}
		})
}
