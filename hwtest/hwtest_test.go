// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest_test

import (
	"testing"

	hw "github.com/db47h/hwboard"
	hl "github.com/db47h/hwboard/hwlib"
	"github.com/db47h/hwboard/hwtest"
)

func TestCompareParts(t *testing.T) {
	or := hw.Logic("OR", []string{"a", "b"}, []string{"out"}, func(in []bool) []bool {
		return []bool{!(!in[0] && !in[1])}
	})
	hwtest.CompareParts(t, hl.Or(), or)
}

func TestCompareBoards_nested(t *testing.T) {
	adder, err := hw.BoardSpec("ADDER", func() (*hw.Network, error) {
		n, _, err := hwtest.Wrap(hl.FullAdder())
		return n, err
	})
	if err != nil {
		t.Fatal(err)
	}
	n1, _, err := hwtest.Wrap(hl.FullAdder())
	if err != nil {
		t.Fatal(err)
	}
	n2, _, err := hwtest.Wrap(adder)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.CheckInvariants(t, n1)
	hwtest.CheckInvariants(t, n2)
	hwtest.CompareBoards(t, n1, n2)
}

func TestWrap(t *testing.T) {
	n, g, err := hwtest.Wrap(hl.Mux())
	if err != nil {
		t.Fatal(err)
	}
	if n.InputCount() != 3 || n.OutputCount() != 1 {
		t.Fatalf("got %d inputs, %d outputs", n.InputCount(), n.OutputCount())
	}
	for i, p := range n.InputPins() {
		if p.Name != g.Inputs[i].Name {
			t.Errorf("input pin %d: got %q, expected %q", i, p.Name, g.Inputs[i].Name)
		}
		if p.Group() != g.Inputs[i].Group() {
			t.Errorf("input pin %s not connected to the gate", p.Name)
		}
	}
	hwtest.CheckInvariants(t, n)
}
