// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

// An Observer is notified of network events. Rendering layers use it to
// restyle components; the metrics package counts events.
//
// Observer methods are called synchronously and must not mutate the network.
//
type Observer interface {
	// Registered is called for every component added to the network,
	// including connexions created at junctions.
	Registered(c Component)
	// Removed is called before a removed component is reset.
	Removed(c Component)
	// Merged is called when a wire absorbed another one.
	Merged(w *Wire)
	// LevelChanged is called when the level of c's group changed.
	LevelChanged(c Component, l Level)
	// Evaluated is called after a successful gate evaluation.
	Evaluated(g *Gate)
	// Oscillation is called when a propagation loop is broken at c.
	Oscillation(c Component, backtrace []ID)
	// Conflict is called when a group becomes Multiple.
	Conflict(g *Group)
	// Solved is called after a complete solve pass with the number of
	// requests processed.
	Solved(requests int)
	// SolveFailed is called when a solve pass is aborted.
	SolveFailed(err *EvalError)
}

// NopObserver ignores all events. Embed it to implement a subset of Observer.
//
type NopObserver struct{}

func (NopObserver) Registered(Component) {}
func (NopObserver) Removed(Component) {}
func (NopObserver) Merged(*Wire) {}
func (NopObserver) LevelChanged(Component, Level) {}
func (NopObserver) Evaluated(*Gate) {}
func (NopObserver) Oscillation(Component, []ID) {}
func (NopObserver) Conflict(*Group) {}
func (NopObserver) Solved(int) {}
func (NopObserver) SolveFailed(*EvalError) {}
