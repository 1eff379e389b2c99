// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownPart is returned by Registry methods for unregistered part names.
//
var ErrUnknownPart = errors.New("unknown part")

// A Registry maps part names to PartSpecs. It is used to rebuild gates from
// their type tag when a board layout is loaded.
//
type Registry struct {
	specs map[string]*PartSpec
}

// NewRegistry returns a registry holding the given parts.
// This function panics if two parts share the same name.
//
func NewRegistry(specs ...*PartSpec) *Registry {
	r := &Registry{specs: make(map[string]*PartSpec)}
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds spec to the registry.
//
func (r *Registry) Register(spec *PartSpec) error {
	if spec == nil || spec.Name == "" {
		return errors.New("register: unnamed part")
	}
	if err := spec.check(); err != nil {
		return errors.Wrap(err, "register")
	}
	if _, ok := r.specs[spec.Name]; ok {
		return errors.New("register: duplicate part name " + spec.Name)
	}
	r.specs[spec.Name] = spec
	return nil
}

// Lookup returns the part registered under name.
//
func (r *Registry) Lookup(name string) (*PartSpec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Names returns the registered part names in lexical order.
//
func (r *Registry) Names() []string {
	ns := make([]string, 0, len(r.specs))
	for n := range r.specs {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// NewGate returns an unregistered instance of the named part at p.
//
func (r *Registry) NewGate(name string, p Point) (*Gate, error) {
	s, ok := r.specs[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownPart, name)
	}
	return NewGate(s, p), nil
}
