// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/hwboard"
	"github.com/db47h/hwboard/truthtable"
	"github.com/google/go-cmp/cmp"
)

// maxExhaustive is the input count above which CompareBoards tests random
// input values instead of the whole input space.
//
const maxExhaustive = 12

// CompareParts takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
func CompareParts(t *testing.T, part1, part2 *hwboard.PartSpec) {
	t.Helper()

	if diff := cmp.Diff(part1.Inputs, part2.Inputs); diff != "" {
		t.Fatalf("%s and %s inputs differ (-%s +%s):\n%s", part1.Name, part2.Name, part1.Name, part2.Name, diff)
	}
	if diff := cmp.Diff(part1.Outputs, part2.Outputs); diff != "" {
		t.Fatalf("%s and %s outputs differ (-%s +%s):\n%s", part1.Name, part2.Name, part1.Name, part2.Name, diff)
	}
	n1, _, err := Wrap(part1)
	if err != nil {
		t.Fatal(err)
	}
	n2, _, err := Wrap(part2)
	if err != nil {
		t.Fatal(err)
	}
	CompareBoards(t, n1, n2)
}

// CompareBoards compares the outputs of two boards given the same inputs. Both
// boards must have the same input and output counts. Boards with up to 12
// inputs are tested exhaustively, others with random inputs.
//
func CompareBoards(t *testing.T, b1, b2 *hwboard.Network) {
	t.Helper()

	if b1.InputCount() != b2.InputCount() || b1.OutputCount() != b2.OutputCount() {
		t.Fatalf("board interfaces differ: %d/%d inputs, %d/%d outputs",
			b1.InputCount(), b2.InputCount(), b1.OutputCount(), b2.OutputCount())
	}

	if b1.InputCount() <= maxExhaustive {
		t1, err := truthtable.Build(b1)
		if err != nil {
			t.Fatal(err)
		}
		t2, err := truthtable.Build(b2)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(t1.Rows, t2.Rows); diff != "" {
			t.Fatalf("truth tables differ:\n%s\n%s", diff, names(b1))
		}
		return
	}

	mask := uint64(1)<<uint(b1.InputCount()) - 1
	if b1.InputCount() >= 64 {
		mask = ^uint64(0)
	}
	for i := 0; i < 1<<maxExhaustive; i++ {
		v := rand.Uint64() & mask
		if err := b1.SetInput(v); err != nil {
			t.Fatal(err)
		}
		if err := b2.SetInput(v); err != nil {
			t.Fatal(err)
		}
		o1, o2 := b1.OutputLevels(), b2.OutputLevels()
		if diff := cmp.Diff(o1, o2); diff != "" {
			t.Fatalf("input %#x: outputs differ:\n%s\n%s", v, diff, names(b1))
		}
	}
}

func names(n *hwboard.Network) string {
	var in, out []string
	for _, p := range n.InputPins() {
		in = append(in, p.Name)
	}
	for _, p := range n.OutputPins() {
		out = append(out, p.Name)
	}
	return "inputs: " + strings.Join(in, ", ") + "; outputs: " + strings.Join(out, ", ")
}
