// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/hwboard"
)

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux() *hwboard.PartSpec { return mux }

var mux = hwboard.Combinational("MUX", []string{pA, pB, pSel}, []string{pOut},
	func(in []hwboard.Level) []hwboard.Level {
		if in[2] == hwboard.High {
			return []hwboard.Level{in[1]}
		}
		return []hwboard.Level{in[0]}
	})

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux() *hwboard.PartSpec { return dmux }

var dmux = hwboard.Combinational("DMUX", []string{pIn, pSel}, []string{pA, pB},
	func(in []hwboard.Level) []hwboard.Level {
		if in[1] == hwboard.High {
			return []hwboard.Level{hwboard.Low, in[0]}
		}
		return []hwboard.Level{in[0], hwboard.Low}
	})

// MuxN returns a PartSpec for an n-bits Mux
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
func MuxN(bits int) *hwboard.PartSpec {
	return hwboard.Combinational("MUX"+strconv.Itoa(bits), append(bus(bits, pA, pB), pSel), bus(bits, pOut),
		func(in []hwboard.Level) []hwboard.Level {
			out := make([]hwboard.Level, bits)
			src := in[:bits]
			if in[2*bits] == hwboard.High {
				src = in[bits : 2*bits]
			}
			copy(out, src)
			return out
		})
}
