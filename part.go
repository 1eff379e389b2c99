// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"fmt"

	"github.com/pkg/errors"
)

// An Evaluator computes the outputs of a gate from its inputs. Inputs are
// ordered as the PartSpec Inputs and are always Low or High; the returned
// slice must have one Level per output.
//
type Evaluator interface {
	Eval(in []Level) ([]Level, error)
}

// EvalFn adapts a plain function to the Evaluator interface.
//
type EvalFn func(in []Level) []Level

// Eval implements Evaluator.
func (f EvalFn) Eval(in []Level) ([]Level, error) { return f(in), nil }

// A MountFn returns a fresh Evaluator for a new gate instance. Stateless parts
// can return the same Evaluator every time; nested boards return a new network
// for each instance.
//
type MountFn func() (Evaluator, error)

// A PartSpec wraps a part specification (its blueprint): the ordered input and
// output pin names and a way to mount its behavior.
//
// Custom combinational parts are most easily created with Logic:
//
//	not := hwboard.Logic("NOT", []string{"in"}, []string{"out"},
//		func(in []bool) []bool { return []bool{!in[0]} })
//
type PartSpec struct {
	// Part name. Also used as the type tag in a Registry.
	Name string
	// Input pin names, top to bottom. Must be distinct.
	Inputs []string
	// Output pin names, top to bottom. Must be distinct.
	Outputs []string
	// Mount function (see MountFn).
	Mount MountFn
}

// NewGate returns an unregistered instance of the part with its casing origin
// at p.
//
func (s *PartSpec) NewGate(p Point) *Gate {
	return NewGate(s, p)
}

func (s *PartSpec) check() error {
	if s.Mount == nil {
		return errors.New("part " + s.Name + ": nil Mount function")
	}
	seen := make(map[string]bool, len(s.Inputs)+len(s.Outputs))
	for _, n := range append(append([]string(nil), s.Inputs...), s.Outputs...) {
		if n == "" {
			return errors.New("part " + s.Name + ": empty pin name")
		}
		if seen[n] {
			return errors.New("part " + s.Name + ": duplicate pin name " + n)
		}
		seen[n] = true
	}
	return nil
}

// Combinational returns a PartSpec for a pure function of Levels. The same
// function is shared by all instances.
//
func Combinational(name string, inputs, outputs []string, fn EvalFn) *PartSpec {
	return &PartSpec{
		Name:    name,
		Inputs:  inputs,
		Outputs: outputs,
		Mount:   func() (Evaluator, error) { return fn, nil },
	}
}

// Logic returns a PartSpec for a pure boolean function.
//
func Logic(name string, inputs, outputs []string, fn func(in []bool) []bool) *PartSpec {
	return Combinational(name, inputs, outputs, func(in []Level) []Level {
		b := make([]bool, len(in))
		for i, l := range in {
			b[i] = l.Bool()
		}
		r := fn(b)
		out := make([]Level, len(r))
		for i, v := range r {
			out[i] = LevelOf(v)
		}
		return out
	})
}

// safeEval runs e and turns panics into errors.
//
func safeEval(e Evaluator, in []Level) (out []Level, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(e, "panic")
				return
			}
			err = errors.New(fmt.Sprint("panic: ", r))
		}
	}()
	return e.Eval(in)
}
