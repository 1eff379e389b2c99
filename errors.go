// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Errors returned by Network methods.
//
var (
	ErrNotRegistered = errors.New("component not registered")
	ErrPinIndex      = errors.New("pin index out of range")
	ErrInputCount    = errors.New("input count mismatch")
)

// EvalError is returned by SolveRequests when a gate evaluation fails. The pass
// is aborted and downstream levels are stale until the next pass.
//
type EvalError struct {
	Component ID   // failing gate
	Part      string
	Backtrace []ID // call chain that led to the evaluation
	Err       error
}

func (e *EvalError) Error() string {
	var b strings.Builder
	b.WriteString("evaluation of ")
	b.WriteString(e.Part)
	b.WriteString(" #")
	b.WriteString(strconv.Itoa(int(e.Component)))
	if len(e.Backtrace) > 0 {
		b.WriteString(" (backtrace")
		for _, id := range e.Backtrace {
			b.WriteString(" #")
			b.WriteString(strconv.Itoa(int(id)))
		}
		b.WriteByte(')')
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

// Cause returns the underlying evaluation error.
func (e *EvalError) Cause() error { return e.Err }

// Unwrap returns the underlying evaluation error.
func (e *EvalError) Unwrap() error { return e.Err }
