// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package book

import (
	"github.com/db47h/hwboard"
	"github.com/pkg/errors"
)

// a node evaluates an expression given the gate inputs and the outputs
// computed so far.
type node func(in, out []bool) bool

type assignment struct {
	out  int
	expr node
}

// scope resolves pin references within a gate definition.
//
type scope struct {
	gate  string
	ins   map[string]int
	outs  map[string]int
	buses map[string]bool
	set   []bool
}

// Compile returns the PartSpec defined by g.
//
func (g *GateDef) Compile() (*hwboard.PartSpec, error) {
	s := &scope{
		gate:  g.Name,
		ins:   make(map[string]int),
		outs:  make(map[string]int),
		buses: make(map[string]bool),
	}
	ins, err := s.declare(g.Inputs, s.ins)
	if err != nil {
		return nil, err
	}
	outs, err := s.declare(g.Outputs, s.outs)
	if err != nil {
		return nil, err
	}
	s.set = make([]bool, len(outs))

	as := make([]assignment, 0, len(g.Body))
	for _, a := range g.Body {
		name, err := s.pinName(a.Dest)
		if err != nil {
			return nil, err
		}
		o, ok := s.outs[name]
		if !ok {
			return nil, errors.Errorf("%s: %s: %s is not an output", a.Pos, g.Name, name)
		}
		if s.set[o] {
			return nil, errors.Errorf("%s: %s: output %s assigned twice", a.Pos, g.Name, name)
		}
		e, err := s.expr(a.Expr)
		if err != nil {
			return nil, err
		}
		s.set[o] = true
		as = append(as, assignment{o, e})
	}
	for i, ok := range s.set {
		if !ok {
			return nil, errors.Errorf("%s: %s: output %s not assigned", g.Pos, g.Name, outs[i])
		}
	}

	return hwboard.Logic(g.Name, ins, outs, func(in []bool) []bool {
		out := make([]bool, len(outs))
		for _, a := range as {
			out[a.out] = a.expr(in, out)
		}
		return out
	}), nil
}

// declare expands pin declarations into pin names and records their index in
// m. Pin and bus names must be unique across inputs and outputs.
//
func (s *scope) declare(ds []*PinDecl, m map[string]int) ([]string, error) {
	var names []string
	for _, d := range ds {
		if s.declared(d.Name) {
			return nil, errors.Errorf("%s: %s: duplicate pin %s", d.Pos, s.gate, d.Name)
		}
		if d.Width == nil {
			m[d.Name] = len(names)
			names = append(names, d.Name)
			continue
		}
		if *d.Width < 1 || *d.Width > hwboard.MaxIOBits {
			return nil, errors.Errorf("%s: %s: invalid width %d for bus %s", d.Pos, s.gate, *d.Width, d.Name)
		}
		s.buses[d.Name] = true
		for i := 0; i < *d.Width; i++ {
			m[hwboard.BusPinName(d.Name, i)] = len(names)
			names = append(names, hwboard.BusPinName(d.Name, i))
		}
	}
	return names, nil
}

func (s *scope) declared(name string) bool {
	_, in := s.ins[name]
	_, out := s.outs[name]
	return in || out || s.buses[name]
}

func (s *scope) pinName(r *Ref) (string, error) {
	if r.Bit != nil {
		return hwboard.BusPinName(r.Name, *r.Bit), nil
	}
	if s.buses[r.Name] {
		return "", errors.Errorf("%s: %s: bus %s referenced without a bit index", r.Pos, s.gate, r.Name)
	}
	return r.Name, nil
}

func (s *scope) ref(r *Ref) (node, error) {
	name, err := s.pinName(r)
	if err != nil {
		return nil, err
	}
	if i, ok := s.ins[name]; ok {
		return func(in, _ []bool) bool { return in[i] }, nil
	}
	if o, ok := s.outs[name]; ok {
		if !s.set[o] {
			return nil, errors.Errorf("%s: %s: output %s used before assignment", r.Pos, s.gate, name)
		}
		return func(_, out []bool) bool { return out[o] }, nil
	}
	return nil, errors.Errorf("%s: %s: unknown pin %s", r.Pos, s.gate, name)
}

func (s *scope) expr(e *Expr) (node, error) {
	l, err := s.xor(e.Left)
	if err != nil {
		return nil, err
	}
	for _, x := range e.Right {
		r, err := s.xor(x)
		if err != nil {
			return nil, err
		}
		l = or(l, r)
	}
	return l, nil
}

func (s *scope) xor(e *XorExpr) (node, error) {
	l, err := s.and(e.Left)
	if err != nil {
		return nil, err
	}
	for _, x := range e.Right {
		r, err := s.and(x)
		if err != nil {
			return nil, err
		}
		l = xor(l, r)
	}
	return l, nil
}

func (s *scope) and(e *AndExpr) (node, error) {
	l, err := s.unary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, x := range e.Right {
		r, err := s.unary(x)
		if err != nil {
			return nil, err
		}
		l = and(l, r)
	}
	return l, nil
}

func (s *scope) unary(u *Unary) (node, error) {
	if u.Not != nil {
		e, err := s.unary(u.Not)
		if err != nil {
			return nil, err
		}
		return func(in, out []bool) bool { return !e(in, out) }, nil
	}
	return s.primary(u.Primary)
}

func (s *scope) primary(p *Primary) (node, error) {
	switch {
	case p.Const != nil:
		if *p.Const > 1 {
			return nil, errors.Errorf("%s: %s: invalid constant %d", p.Pos, s.gate, *p.Const)
		}
		v := *p.Const == 1
		return func(_, _ []bool) bool { return v }, nil
	case p.Ref != nil:
		return s.ref(p.Ref)
	}
	return s.expr(p.Sub)
}

func or(l, r node) node { return func(in, out []bool) bool { return l(in, out) || r(in, out) } }
func xor(l, r node) node { return func(in, out []bool) bool { return l(in, out) != r(in, out) } }
func and(l, r node) node { return func(in, out []bool) bool { return l(in, out) && r(in, out) } }
