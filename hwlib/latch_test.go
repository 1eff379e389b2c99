// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hl "github.com/db47h/hwboard/hwlib"
	"github.com/db47h/hwboard/hwtest"
)

func TestDLatch(t *testing.T) {
	n, _, err := hwtest.Wrap(hl.DLatch())
	if err != nil {
		t.Fatal(err)
	}
	// inputs: d (bit 0), en (bit 1); outputs: q (bit 0), nq (bit 1)
	td := []struct {
		in  uint64
		out uint64
	}{
		{0, 2}, // initial state
		{1, 2}, // d=1, disabled
		{3, 1}, // d=1, enabled
		{1, 1}, // hold
		{0, 1}, // hold
		{2, 2}, // d=0, enabled
		{0, 2}, // hold
	}
	for i, d := range td {
		if err := n.SetInput(d.in); err != nil {
			t.Fatal(err)
		}
		if out := n.Output(); out != d.out {
			t.Fatalf("step %d: in=%02b: expected %02b, got %02b", i, d.in, d.out, out)
		}
	}
}

func TestDLatch_instances(t *testing.T) {
	n1, _, err := hwtest.Wrap(hl.DLatch())
	if err != nil {
		t.Fatal(err)
	}
	n2, _, err := hwtest.Wrap(hl.DLatch())
	if err != nil {
		t.Fatal(err)
	}
	if err := n1.SetInput(3); err != nil {
		t.Fatal(err)
	}
	if n1.Output() != 1 || n2.Output() != 2 {
		t.Fatalf("latch state shared between instances: %02b, %02b", n1.Output(), n2.Output())
	}
}
