// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package truthtable enumerates the input space of a board and records its
// outputs.
//
package truthtable

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
)

// MaxInputs is the largest input count Build accepts.
//
const MaxInputs = 20

// ErrTooManyInputs is returned by Build for boards with more than MaxInputs
// inputs.
//
var ErrTooManyInputs = errors.New("too many inputs")

// Board is the subset of *hwboard.Network used to compute a truth table.
//
type Board interface {
	InputCount() int
	OutputCount() int
	Input() uint64
	SetInput(v uint64) error
	Output() uint64
	OutputValid() uint64
}

// Row is one line of a truth table. Bit i of In and Out is the level of the
// i-th input or output pin; Valid has a bit set for every output that was
// definite Low or High.
//
type Row struct {
	In    uint64
	Out   uint64
	Valid uint64
}

// Table is the truth table of a board.
//
type Table struct {
	Inputs  int
	Outputs int
	Rows    []Row
}

// Build enumerates all input values of b in increasing order and records the
// outputs for each one. The original input value is restored afterwards.
//
// An error from b.SetInput stops the enumeration; the original input is still
// restored.
//
func Build(b Board) (t *Table, err error) {
	ni := b.InputCount()
	if ni > MaxInputs {
		return nil, errors.Wrapf(ErrTooManyInputs, "%d inputs", ni)
	}
	saved := b.Input()
	defer func() {
		if rerr := b.SetInput(saved); err == nil && rerr != nil {
			err = errors.Wrap(rerr, "restore input")
		}
	}()

	t = &Table{Inputs: ni, Outputs: b.OutputCount()}
	n := uint64(1) << uint(ni)
	t.Rows = make([]Row, 0, n)
	for v := uint64(0); v < n; v++ {
		if err := b.SetInput(v); err != nil {
			return nil, errors.Wrapf(err, "input %#x", v)
		}
		t.Rows = append(t.Rows, Row{In: v, Out: b.Output(), Valid: b.OutputValid()})
	}
	return t, nil
}

// Results returns the Out column of t.
//
func (t *Table) Results() []uint64 {
	out := make([]uint64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Out
	}
	return out
}

// Format writes t as an aligned text table. Column headers are taken from
// inputs and outputs, or generated if nil. Undefined outputs print as "x".
//
func (t *Table) Format(w io.Writer, inputs, outputs []string) error {
	inputs = names(inputs, "i", t.Inputs)
	outputs = names(outputs, "o", t.Outputs)
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(inputs, "\t")+"\t|\t"+strings.Join(outputs, "\t")+"\t")
	for _, r := range t.Rows {
		var b strings.Builder
		for i := 0; i < t.Inputs; i++ {
			b.WriteString(bit(r.In, true, i))
			b.WriteByte('\t')
		}
		b.WriteString("|\t")
		for i := 0; i < t.Outputs; i++ {
			b.WriteString(bit(r.Out, r.Valid&(1<<uint(i)) != 0, i))
			b.WriteByte('\t')
		}
		fmt.Fprintln(tw, b.String())
	}
	return tw.Flush()
}

func bit(v uint64, valid bool, i int) string {
	switch {
	case !valid:
		return "x"
	case v&(1<<uint(i)) != 0:
		return "1"
	}
	return "0"
}

func names(ns []string, prefix string, n int) []string {
	if len(ns) == n {
		return ns
	}
	ns = make([]string, n)
	for i := range ns {
		ns[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return ns
}
