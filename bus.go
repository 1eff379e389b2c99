// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BusPinName returns the pin name for the n-th bit of the given bus.
//
func BusPinName(bus string, bit int) string {
	return bus + "[" + strconv.Itoa(bit) + "]"
}

// ParseBusPin splits a pin name of the form "bus[n]" into its bus name and bit
// number. It returns false if name is not a bus pin name.
//
func ParseBusPin(name string) (bus string, bit int, ok bool) {
	i := strings.IndexByte(name, '[')
	if i <= 0 || !strings.HasSuffix(name, "]") {
		return "", 0, false
	}
	bit, err := strconv.Atoi(name[i+1 : len(name)-1])
	if err != nil || bit < 0 {
		return "", 0, false
	}
	return name[:i], bit, true
}

// ExpandBus expands a bus range of the form "bus[start..end]" into individual
// pin names. Any other name is returned as is.
//
// start may be greater than end, in which case bits are listed in decreasing
// order.
//
func ExpandBus(name string) ([]string, error) {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	if bus == "" {
		return nil, errors.New("empty bus name")
	}
	n := name[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, errors.Wrap(err, "bus range start")
	}
	n = n[i+2:]
	i = strings.IndexRune(n, ']')
	if i < 0 {
		return nil, errors.New("no terminating ] in bus range")
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, errors.Wrap(err, "bus range end")
	}
	if start < 0 || end < 0 {
		return nil, errors.New("negative bit number in bus range " + name)
	}
	step := 1
	if end < start {
		step = -1
	}
	r := make([]string, 0, abs(end-start)+1)
	for i := start; ; i += step {
		r = append(r, BusPinName(bus, i))
		if i == end {
			break
		}
	}
	return r, nil
}

// ExpandBuses expands every name in names with ExpandBus.
//
func ExpandBuses(names ...string) ([]string, error) {
	var out []string
	for _, n := range names {
		ns, err := ExpandBus(n)
		if err != nil {
			return nil, errors.Wrap(err, "expand "+n)
		}
		out = append(out, ns...)
	}
	return out, nil
}

// MustExpandBuses is like ExpandBuses but panics on error.
//
func MustExpandBuses(names ...string) []string {
	out, err := ExpandBuses(names...)
	if err != nil {
		panic(err)
	}
	return out
}
