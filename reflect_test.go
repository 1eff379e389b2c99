// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard_test

import (
	"testing"

	"github.com/db47h/hwboard"
	"github.com/db47h/hwboard/hwlib"
	"github.com/db47h/hwboard/hwtest"
	"github.com/google/go-cmp/cmp"
)

type testPart struct {
	A   [4]hwboard.Level `hw:"in"`
	B   [4]hwboard.Level `hw:"in"`
	Sel hwboard.Level    `hw:"in"`
	Out [4]hwboard.Level `hw:"out"`
}

func (t *testPart) Update() {
	if t.Sel == hwboard.High {
		t.Out = t.B
	} else {
		t.Out = t.A
	}
}

func Test_MakePart(t *testing.T) {
	p := hwboard.MakePart((*testPart)(nil))
	if diff := cmp.Diff(hwboard.MustExpandBuses("a[0..3]", "b[0..3]", "sel"), p.Inputs); diff != "" {
		t.Fatalf("inputs (-want +got):\n%s", diff)
	}
	hwtest.CompareParts(t, hwlib.MuxN(4), p)
}

type counter struct {
	In    hwboard.Level    `hw:"in,clk"`
	Out   [2]hwboard.Level `hw:"out"`
	count uint64
	last  hwboard.Level
}

func (c *counter) Update() {
	if c.In == hwboard.High && c.last != hwboard.High {
		c.count++
	}
	c.last = c.In
	copy(c.Out[:], hwlib.Levels(c.count, 2))
}

func Test_MakePart_state(t *testing.T) {
	p := hwboard.MakePart(&counter{})
	if diff := cmp.Diff([]string{"clk"}, p.Inputs); diff != "" {
		t.Fatalf("inputs (-want +got):\n%s", diff)
	}
	n, _, err := hwtest.Wrap(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		if err := n.SetInput(1); err != nil {
			t.Fatal(err)
		}
		if err := n.SetInput(0); err != nil {
			t.Fatal(err)
		}
		if out := n.Output(); out != uint64(i&3) {
			t.Fatalf("after %d pulses: got %d", i, out)
		}
	}
}

type badPart struct {
	In int `hw:"in"`
}

func (*badPart) Update() {}

func Test_MakePart_badField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MakePart should panic on int fields")
		}
	}()
	hwboard.MakePart((*badPart)(nil))
}
