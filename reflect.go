// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom parts built using reflection must
// implement. See MakePart.
//
type Updater interface {
	Update()
}

var levelType = reflect.TypeOf(Undef)

type field struct {
	index int  // struct field index
	bus   int  // array length, or -1 for a single pin
	input bool // input or output
}

// MakePart wraps an Updater into a custom part.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pins must be of type Level. Buses must be arrays of Level.
//
// Each gate gets a new zero value of the Updater's type. Before calling
// Update, input fields are set to the levels of the gate inputs; output
// fields are read afterwards. Other fields keep their value between calls,
// which allows sequential parts.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}
	if !reflect.PtrTo(typ).Implements(reflect.TypeOf((*Updater)(nil)).Elem()) {
		panic(errors.Errorf("*%s does not implement Updater", typ.Name()))
	}

	sp := &PartSpec{
		Name: typ.Name(),
	}
	var fields []field

	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		pin := strings.ToLower(f.Name)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pin = tv[1]
		}
		fd := field{index: i, bus: -1}
		switch tv[0] {
		case "in":
			fd.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		var names []string
		ft := f.Type
		switch {
		case ft.Kind() == reflect.Array && ft.Elem() == levelType:
			fd.bus = ft.Len()
			for b := 0; b < ft.Len(); b++ {
				names = append(names, BusPinName(pin, b))
			}
		case ft == levelType:
			names = []string{pin}
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name()))
		}
		if fd.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
		fields = append(fields, fd)
	}
	sp.Mount = mountPart(typ, fields, len(sp.Outputs))
	return sp
}

// reflectPart evaluates a part built by MakePart.
//
type reflectPart struct {
	v      reflect.Value
	fields []field
	outs   int
}

func mountPart(typ reflect.Type, fields []field, outs int) MountFn {
	return func() (Evaluator, error) {
		return &reflectPart{v: reflect.New(typ), fields: fields, outs: outs}, nil
	}
}

func (p *reflectPart) Eval(in []Level) ([]Level, error) {
	e := p.v.Elem()
	i := 0
	for _, f := range p.fields {
		if !f.input {
			continue
		}
		fv := e.Field(f.index)
		if f.bus < 0 {
			fv.Set(reflect.ValueOf(in[i]))
			i++
			continue
		}
		for b := 0; b < f.bus; b++ {
			fv.Index(b).Set(reflect.ValueOf(in[i]))
			i++
		}
	}

	p.v.Interface().(Updater).Update()

	out := make([]Level, 0, p.outs)
	for _, f := range p.fields {
		if f.input {
			continue
		}
		fv := e.Field(f.index)
		if f.bus < 0 {
			out = append(out, Level(fv.Uint()))
			continue
		}
		for b := 0; b < f.bus; b++ {
			out = append(out, Level(fv.Index(b).Uint()))
		}
	}
	return out, nil
}
