// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"go.uber.org/zap"
)

// a request asks for the evaluation of a component. trace is the chain of
// components whose evaluation led to the request.
type request struct {
	id    ID
	trace []ID
}

// request schedules the evaluation of component id from the current call
// chain.
//
func (n *Network) request(id ID) {
	n.CallRequest(id, n.trace)
}

// CallRequest evaluates component id. During a solve pass, the evaluation runs
// synchronously. While the network is Building, the request is deferred to the
// work-set. Otherwise the request is queued and a solve pass is run at once.
//
// A component already present in backtrace is not evaluated again: the loop is
// reported and broken.
//
func (n *Network) CallRequest(id ID, backtrace []ID) error {
	if n.solving && n.building == 0 {
		n.invoke(id, backtrace)
		return nil
	}
	if !n.queued[id] {
		n.queued[id] = true
		n.queue = append(n.queue, request{id, append([]ID(nil), backtrace...)})
	}
	if n.building > 0 {
		return nil
	}
	return n.SolveRequests()
}

// Pending returns the number of deferred requests.
//
func (n *Network) Pending() int { return len(n.queue) }

// SolveRequests drains the work-set, most recent request first. Each
// evaluation may trigger further evaluations, which run synchronously.
//
// If an evaluation fails, the pass stops and an *EvalError is returned. The
// failed request is dropped; requests not yet processed stay queued until the
// next pass.
//
func (n *Network) SolveRequests() error {
	if n.building > 0 || n.solving {
		return nil
	}
	n.solving = true
	defer func() { n.solving = false }()
	count := 0
	for len(n.queue) > 0 {
		r := n.queue[len(n.queue)-1]
		n.queue = n.queue[:len(n.queue)-1]
		delete(n.queued, r.id)
		n.invoke(r.id, r.trace)
		count++
		if err := n.fault; err != nil {
			n.fault = nil
			n.trace = nil
			n.log.Error("propagation aborted",
				zap.Int("component", int(err.Component)),
				zap.String("part", err.Part),
				zap.Ints("backtrace", idInts(err.Backtrace)),
				zap.Int("pending", len(n.queue)),
				zap.Error(err.Err))
			n.observer.SolveFailed(err)
			return err
		}
	}
	n.observer.Solved(count)
	return nil
}

// invoke evaluates component id with the given backtrace.
//
func (n *Network) invoke(id ID, backtrace []ID) {
	if n.fault != nil {
		return
	}
	for _, t := range backtrace {
		if t == id {
			n.log.Warn("unstable recursive loop",
				zap.Int("component", int(id)),
				zap.Ints("backtrace", idInts(backtrace)))
			n.observer.Oscillation(n.components[id], backtrace)
			return
		}
	}

	var g *Gate
	switch c := n.components[id].(type) {
	case *Gate:
		g = c
	case *Pin:
		g, _ = n.components[c.parent].(*Gate)
	}
	if g == nil {
		return
	}

	saved := n.trace
	n.trace = append(append(make([]ID, 0, len(backtrace)+1), backtrace...), id)
	err := g.Evaluate()
	n.trace = saved
	if err != nil {
		if n.fault == nil {
			n.fault = &EvalError{
				Component: g.id,
				Part:      g.Name(),
				Backtrace: append([]ID(nil), backtrace...),
				Err:       err,
			}
		}
		return
	}
	n.observer.Evaluated(g)
}
