// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package book_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/hwboard"
	"github.com/db47h/hwboard/book"
	hl "github.com/db47h/hwboard/hwlib"
	"github.com/db47h/hwboard/hwtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adders = `
# adders built from boolean expressions
gate HalfAdder (a, b) -> (s, c) {
	s = a ^ b;
	c = a & b;
}

gate FullAdder (a, b, cin) -> (s, cout) {
	s = a ^ b ^ cin;
	cout = a & b | cin & (a ^ b);
}

// 4 bits AND, checks bus expansion
gate AND4 (a[4], b[4]) -> (out[4]) {
	out[0] = a[0] & b[0];
	out[1] = a[1] & b[1];
	out[2] = !(!a[2] | !b[2]);
	out[3] = a[3] & b[3];
}
`

func TestLoad(t *testing.T) {
	ps, err := book.LoadString("adders.hwb", adders)
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "HalfAdder", ps[0].Name)
	assert.Equal(t, []string{"a[0]", "a[1]", "a[2]", "a[3]", "b[0]", "b[1]", "b[2]", "b[3]"}, ps[2].Inputs)

	hwtest.CompareParts(t, ps[0], hl.HalfAdder())
	hwtest.CompareParts(t, ps[1], hl.FullAdder())
	hwtest.CompareParts(t, ps[2], hl.GateN("AND", 4, func(a, b bool) bool { return a && b }))
}

func TestLoad_precedence(t *testing.T) {
	ps, err := book.LoadString("prec.hwb", `
gate P (a, b, c) -> (x, y, z, k) {
	x = a | b & c;   // a | (b & c)
	y = a ^ b & c;   // a ^ (b & c)
	z = !a & b;      // (!a) & b
	k = x & 1 | 0;   // outputs assigned earlier are readable
}`)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	n, _, err := hwtest.Wrap(ps[0])
	require.NoError(t, err)
	for v := uint64(0); v < 8; v++ {
		a, b, c := v&1 != 0, v&2 != 0, v&4 != 0
		require.NoError(t, n.SetInput(v))
		out := n.OutputLevels()
		assert.Equal(t, hwboard.LevelOf(a || b && c), out[0], "x(%d)", v)
		assert.Equal(t, hwboard.LevelOf(a != (b && c)), out[1], "y(%d)", v)
		assert.Equal(t, hwboard.LevelOf(!a && b), out[2], "z(%d)", v)
		assert.Equal(t, out[0], out[3], "k(%d)", v)
	}
}

func TestLoad_errors(t *testing.T) {
	td := []struct {
		name string
		src  string
		msg  string
	}{
		{"syntax", `gate X (a) -> (b) { b = a }`, "parse book"},
		{"no output", `gate X (a) -> () { }`, "parse book"},
		{"unknown pin", `gate X (a) -> (b) { b = c; }`, "unknown pin c"},
		{"not an output", `gate X (a) -> (b) { a = b; }`, "a is not an output"},
		{"assigned twice", `gate X (a) -> (b) { b = a; b = !a; }`, "output b assigned twice"},
		{"not assigned", `gate X (a) -> (b, c) { b = a; }`, "output c not assigned"},
		{"used before assignment", `gate X (a) -> (b, c) { b = c; c = a; }`, "output c used before assignment"},
		{"self reference", `gate X (a) -> (b) { b = b; }`, "output b used before assignment"},
		{"bus without index", `gate X (a[2]) -> (b) { b = a; }`, "bus a referenced without a bit index"},
		{"bus out of range", `gate X (a[2]) -> (b) { b = a[2]; }`, "unknown pin a[2]"},
		{"bad width", `gate X (a[0]) -> (b) { b = 1; }`, "invalid width 0"},
		{"duplicate pin", `gate X (a, a) -> (b) { b = a; }`, "duplicate pin a"},
		{"duplicate bus", `gate X (a[2]) -> (a) { a = 1; }`, "duplicate pin a"},
		{"bad constant", `gate X (a) -> (b) { b = 2; }`, "invalid constant 2"},
		{"duplicate gate", `gate X (a) -> (b) { b = a; } gate X (a) -> (b) { b = a; }`, "duplicate gate X"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := book.LoadString(d.name, d.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), d.msg)
		})
	}
}

func TestRegisterFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "adders.hwb")
	require.NoError(t, os.WriteFile(name, []byte(adders), 0o644))

	r := hwboard.NewRegistry()
	require.NoError(t, book.RegisterFile(r, name))
	assert.Equal(t, []string{"AND4", "FullAdder", "HalfAdder"}, r.Names())

	// registering the same book twice fails on duplicate names
	assert.Error(t, book.RegisterFile(r, name))

	// a book may not redefine a default part
	r = hwboard.NewRegistry()
	require.NoError(t, hl.Register(r))
	assert.Error(t, book.RegisterFile(r, name))

	_, err := book.LoadFile(filepath.Join(t.TempDir(), "missing.hwb"))
	assert.Error(t, err)
}
