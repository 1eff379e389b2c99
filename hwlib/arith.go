// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/hwboard"
)

var hAdder = hwboard.Logic("HalfAdder", []string{pA, pB}, []string{"s", "c"},
	func(in []bool) []bool {
		va, vb := in[0], in[1]
		return []bool{va && !vb || !va && vb, va && vb}
	})

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder() *hwboard.PartSpec { return hAdder }

var adder = hwboard.Logic("FullAdder", []string{pA, pB, "cin"}, []string{"s", "cout"},
	func(in []bool) []bool {
		va, vb, cin := in[0], in[1], in[2]
		s := va && !vb || !va && vb
		return []bool{s && !cin || !s && cin, s && cin || va && vb}
	})

// FullAdder returns a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder() *hwboard.PartSpec { return adder }

// AdderN returns a N-bits adder
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//
func AdderN(bits int) *hwboard.PartSpec {
	return hwboard.Logic("ADDER"+strconv.Itoa(bits), bus(bits, pA, pB), append(bus(bits, pOut), "c"),
		func(in []bool) []bool {
			out := make([]bool, bits+1)
			cc := false
			for i := 0; i < bits; i++ {
				va, vb := in[i], in[bits+i]
				s0 := va && !vb || !va && vb
				out[i] = !s0 && cc || s0 && !cc
				cc = va && vb || s0 && cc
			}
			out[bits] = cc
			return out
		})
}
