// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package layout reads and writes board layouts as YAML documents.
//
// A layout lists the placements of a board: board pins, gates by part name,
// wires and the connexions placed by the user at wire crossings. Building a
// layout replays these placements on a fresh network, in document order, so
// that junctions and wire merges are derived again by the network itself.
//
//	name: XOR
//	pins:
//	  - {name: a, type: input, at: [-4, 0]}
//	  - {name: out, type: output, at: [6, 0]}
//	gates:
//	  - {part: NAND, at: [0, 0]}
//	wires:
//	  - [[-4, 0], [0, 0]]
//	  - [[2, 0], [4, 2], [6, 2]]
//	connexions:
//	  - [3, 1]
//
package layout

import (
	"io"
	"os"

	"github.com/db47h/hwboard"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Point is a grid point, written as a [x, y] flow sequence.
//
type Point [2]int

func (p Point) pt() hwboard.Point { return hwboard.Pt(p[0], p[1]) }

func pointOf(p hwboard.Point) Point { return Point{p.X, p.Y} }

// MarshalYAML implements yaml.Marshaler.
func (p Point) MarshalYAML() (interface{}, error) { return flowNode([2]int(p)) }

// MarshalYAML implements yaml.Marshaler.
func (w Wire) MarshalYAML() (interface{}, error) { return flowNode([]Point(w)) }

func flowNode(v interface{}) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return &n, nil
}

// Document is a board layout.
//
type Document struct {
	Name       string  `yaml:"name" validate:"required"`
	Size       int     `yaml:"size,omitempty" validate:"omitempty,min=8,max=65536,even"`
	Pins       []Pin   `yaml:"pins,omitempty" validate:"dive"`
	Gates      []Gate  `yaml:"gates,omitempty" validate:"dive"`
	Wires      []Wire  `yaml:"wires,omitempty" validate:"dive,min=2,max=3"`
	Connexions []Point `yaml:"connexions,omitempty"`
}

// Pin is a board pin placement. Facing defaults to E for inputs and W for
// outputs.
//
type Pin struct {
	Name   string `yaml:"name" validate:"required"`
	Type   string `yaml:"type" validate:"oneof=input output"`
	Bus    string `yaml:"bus,omitempty"`
	At     Point  `yaml:"at"`
	Facing string `yaml:"facing,omitempty" validate:"omitempty,oneof=E NE N NW W SW S SE"`
}

// Gate is a gate placement. Part is the name of a registered PartSpec.
//
type Gate struct {
	Part string `yaml:"part" validate:"required"`
	At   Point  `yaml:"at"`
}

// Wire is a wire path: start and end points, or start, bend and end points.
//
type Wire []Point

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})
	return v
}

// Validate checks d for structural errors. Placement errors are only detected
// by Build.
//
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(err, "invalid layout")
	}
	return nil
}

// Load reads a layout document from r and validates it. Unknown fields are
// rejected.
//
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode layout")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads the layout document in the named file.
//
func LoadFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return d, nil
}

// Save writes d to w.
//
func (d *Document) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(err, "encode layout")
	}
	return enc.Close()
}

// SaveFile writes d to the named file.
//
func (d *Document) SaveFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = d.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
