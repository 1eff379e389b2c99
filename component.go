// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import "sort"

// ID identifies a registered component. IDs are assigned on registration,
// strictly increasing, and never reused. 0 means "no component".
//
type ID int

// Kind enumerates the component variants.
//
type Kind uint8

// Component kinds.
//
const (
	KindWire Kind = iota + 1
	KindConnexion
	KindCasingPin
	KindBoardPin
	KindGate
)

var kindNames = [...]string{"Invalid", "Wire", "Connexion", "CasingPin", "BoardPin", "Gate"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// State is the lifecycle state of a component.
//
type State uint8

// Component states.
//
const (
	Build    State = iota // tentative placement, not registered
	Fixed                 // registered in a network
	Removing              // being removed
	Selected              // registered and selected by the user
)

// A Component is an element of a board network: a wire, a junction, a pin or a
// gate casing. The set of implementations is closed.
//
type Component interface {
	// ID returns the component ID, or 0 if the component is not registered.
	ID() ID
	// Kind returns the variant of the component.
	Kind() Kind
	// Level returns the level of the component's group as last notified.
	Level() Level
	// Group returns the component's group, nil if not registered.
	Group() *Group
	// Links returns the IDs of directly linked components in increasing order.
	Links() []ID
	// Parent returns the ID of the owning component, if any.
	Parent() ID
	// Children returns owned sub-components.
	Children() []Component
	// Locations returns the grid slots occupied by the component.
	Locations() []Location
	// ConnexionPoints returns the cells where the component takes part in
	// implicit junctions.
	ConnexionPoints() []Point
	// CanFix returns true if the current tentative placement may be committed.
	CanFix() bool

	base() *node
}

// node holds the state common to all components.
//
type node struct {
	id     ID
	parent ID
	state  State
	links  map[ID]struct{}
	group  *Group
	level  Level // last level notified
}

func (n *node) base() *node { return n }

func (n *node) ID() ID { return n.id }

func (n *node) Parent() ID { return n.parent }

func (n *node) State() State { return n.state }

func (n *node) Level() Level { return n.level }

func (n *node) Group() *Group { return n.group }

func (n *node) Children() []Component { return nil }

func (n *node) Links() []ID {
	return sortedIDs(n.links)
}

func (n *node) linked(id ID) bool {
	_, ok := n.links[id]
	return ok
}

// reset returns a removed component to the Build state so that it can be
// registered again under a new ID.
//
func (n *node) reset() {
	n.id = 0
	n.parent = 0
	n.state = Build
	n.links = nil
	n.group = nil
	n.level = Undef
}

// flatten returns c and all of its descendants, children first.
//
func flatten(c Component) []Component {
	var out []Component
	for _, ch := range c.Children() {
		out = append(out, flatten(ch)...)
	}
	return append(out, c)
}

// electrical returns true for components that take part in junctions.
//
func electrical(c Component) bool {
	switch c.Kind() {
	case KindWire, KindCasingPin, KindBoardPin:
		return true
	}
	return false
}

func hasPoint(pts []Point, p Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}

// cellsOf returns the distinct cells of the given locations, in order of first
// appearance.
//
func cellsOf(locs []Location) []Point {
	seen := make(map[Point]struct{}, len(locs))
	var pts []Point
	for _, l := range locs {
		if _, ok := seen[l.Point]; ok {
			continue
		}
		seen[l.Point] = struct{}{}
		pts = append(pts, l.Point)
	}
	return pts
}

func sortedIDs(m map[ID]struct{}) []ID {
	ids := make([]ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
