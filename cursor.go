// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import "sort"

// Spatial queries for interactive placement. None of them modify the network.

// CursorComponents returns the components occupying any layer of cell p, in
// increasing ID order. Casing pins are reported with their gate.
//
func (n *Network) CursorComponents(p Point) []Component {
	col := n.grid.Column(p)
	seen := make(map[ID]bool)
	var out []Component
	add := func(c Component) {
		if c != nil && !seen[c.ID()] {
			seen[c.ID()] = true
			out = append(out, c)
		}
	}
	for _, id := range col {
		if id == 0 {
			continue
		}
		c := n.components[id]
		if pin, ok := c.(*Pin); ok {
			add(n.components[pin.parent])
		}
		add(c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// CursorGroups returns the distinct groups of the electrical components at p,
// ordered by group ID.
//
func (n *Network) CursorGroups(p Point) []*Group {
	seen := make(map[*Group]bool)
	var out []*Group
	for _, c := range n.occupants(p) {
		if g := c.Group(); g != nil && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	if cx := n.connexionAt(p); cx != nil && cx.group != nil && !seen[cx.group] {
		out = append(out, cx.group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// CursorConnected returns the IDs of all components electrically connected to
// cell p, that is the members of CursorGroups(p), in increasing order.
//
func (n *Network) CursorConnected(p Point) []ID {
	var ids []ID
	for _, g := range n.CursorGroups(p) {
		ids = append(ids, g.Members()...)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FreeSlot returns true if the slot is inside the grid and unoccupied.
//
func (n *Network) FreeSlot(l Location) bool {
	return n.grid.IsFree(l.Point, l.Layer)
}

// Wired returns true if a wire crosses or ends at cell p.
//
func (n *Network) Wired(p Point) bool {
	for _, c := range n.occupants(p) {
		if c.Kind() == KindWire {
			return true
		}
	}
	return false
}

// HasItem returns true if any layer of cell p is occupied.
//
func (n *Network) HasItem(p Point) bool {
	for _, id := range n.grid.Column(p) {
		if id != 0 {
			return true
		}
	}
	return false
}
