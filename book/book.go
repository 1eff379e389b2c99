// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package book loads component books: text files defining combinational parts
// with boolean expressions.
//
// A book is a list of gate definitions:
//
//	// 2 bits adder
//	gate ADD2 (a[2], b[2]) -> (out[2], c) {
//		out[0] = a[0] ^ b[0];
//		out[1] = a[1] ^ b[1] ^ (a[0] & b[0]);
//		c = a[1] & b[1] | (a[1] ^ b[1]) & a[0] & b[0];
//	}
//
// A pin declared as name[n] expands to the n pins name[0] to name[n-1]. Bus
// pins must always be referenced with a bit index. Assignments run in order;
// an expression may reference inputs and the outputs assigned before it. Every
// output must be assigned exactly once. Operators are ! (not), & (and), ^ (xor)
// and | (or), in decreasing order of precedence; 0 and 1 are constants.
//
package book

import (
	"io"
	"os"
	"strings"

	"github.com/db47h/hwboard"
	"github.com/pkg/errors"
)

// Parse parses a component book. The filename is only used in error messages.
//
func Parse(filename string, r io.Reader) (*File, error) {
	f, err := parser.Parse(filename, r)
	if err != nil {
		return nil, errors.Wrap(err, "parse book")
	}
	return f, nil
}

// Load parses and compiles a component book.
//
func Load(filename string, r io.Reader) ([]*hwboard.PartSpec, error) {
	f, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return f.Compile()
}

// LoadString is like Load but reads the book from src.
//
func LoadString(filename, src string) ([]*hwboard.PartSpec, error) {
	return Load(filename, strings.NewReader(src))
}

// LoadFile loads the component book in the named file.
//
func LoadFile(name string) ([]*hwboard.PartSpec, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(name, f)
}

// RegisterFile loads the component book in the named file and adds its parts
// to r.
//
func RegisterFile(r *hwboard.Registry, name string) error {
	ps, err := LoadFile(name)
	if err != nil {
		return err
	}
	for _, p := range ps {
		if err = r.Register(p); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

// Compile compiles all gate definitions in f.
//
func (f *File) Compile() ([]*hwboard.PartSpec, error) {
	seen := make(map[string]bool, len(f.Gates))
	ps := make([]*hwboard.PartSpec, 0, len(f.Gates))
	for _, g := range f.Gates {
		if seen[g.Name] {
			return nil, errors.Errorf("%s: duplicate gate %s", g.Pos, g.Name)
		}
		seen[g.Name] = true
		p, err := g.Compile()
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}
