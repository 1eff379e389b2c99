// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/hwboard"

// dLatch is a gated D latch. q starts Low and follows d while en is High.
//
type dLatch struct {
	D  hwboard.Level `hw:"in"`
	En hwboard.Level `hw:"in"`
	Q  hwboard.Level `hw:"out"`
	NQ hwboard.Level `hw:"out,nq"`

	state bool
}

func (l *dLatch) Update() {
	if l.En == hwboard.High {
		l.state = l.D == hwboard.High
	}
	l.Q = hwboard.LevelOf(l.state)
	l.NQ = hwboard.LevelOf(!l.state)
}

var latch = func() *hwboard.PartSpec {
	sp := hwboard.MakePart((*dLatch)(nil))
	sp.Name = "DLATCH"
	return sp
}()

// DLatch returns a gated D latch. Each gate instance has its own state.
//
//	Inputs: d, en
//	Outputs: q, nq
//	Function: if en == 1 { q = d }; nq = !q
//
func DLatch() *hwboard.PartSpec { return latch }
