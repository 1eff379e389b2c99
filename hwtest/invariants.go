// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"testing"

	"github.com/db47h/hwboard"
)

// CheckInvariants verifies the structural invariants of a network:
//
//	- grid slots hold 0 or the ID of a registered component
//	- links are symmetric and point to registered components
//	- every registered component belongs to exactly one group, and its group
//	  lists it
//	- group levels match their setters
//	- group members are connected by links between members of the group
//	- board pin Index and TypeIndex are contiguous
//
func CheckInvariants(t testing.TB, n *hwboard.Network) {
	t.Helper()

	n.Grid().Cells(func(p hwboard.Point, c hwboard.Column) bool {
		for l, id := range c {
			if id != 0 && n.Component(id) == nil {
				t.Errorf("grid slot %v/%d holds unregistered ID %d", p, l, id)
			}
		}
		return true
	})

	seen := make(map[hwboard.ID]hwboard.GroupID)
	for _, g := range n.Groups() {
		if g.Len() == 0 {
			t.Errorf("group %d is empty", g.ID())
		}
		if !g.Has(g.Anchor()) {
			t.Errorf("group %d anchor %d is not a member", g.ID(), g.Anchor())
		}
		if l, exp := g.Level(), hwboard.ResolveLevel(g.Setters()); l != exp {
			t.Errorf("group %d level %v, expected %v from setters %v", g.ID(), l, exp, g.Setters())
		}
		if !connected(n, g) {
			t.Errorf("group %d members %v are not connected", g.ID(), g.Members())
		}
		for _, id := range g.Members() {
			if gid, ok := seen[id]; ok {
				t.Errorf("component %d in groups %d and %d", id, gid, g.ID())
			}
			seen[id] = g.ID()
			c := n.Component(id)
			if c == nil {
				t.Errorf("group %d holds unregistered ID %d", g.ID(), id)
				continue
			}
			if c.Group() != g {
				t.Errorf("component %d lists another group than %d", id, g.ID())
			}
		}
	}

	for _, id := range n.Components() {
		c := n.Component(id)
		if _, ok := seen[id]; !ok {
			t.Errorf("%v %d has no group", c.Kind(), id)
		}
		for _, l := range c.Links() {
			o := n.Component(l)
			if o == nil {
				t.Errorf("component %d linked to unregistered ID %d", id, l)
				continue
			}
			if !linked(o, id) {
				t.Errorf("link %d-%d is not symmetric", id, l)
			}
			if o.Group() != c.Group() {
				t.Errorf("linked components %d and %d are in different groups", id, l)
			}
		}
	}

	var typeIdx [2]int
	for i, p := range n.Pins() {
		if p.Index() != i {
			t.Errorf("pin %s: Index %d, expected %d", p.Name, p.Index(), i)
		}
		if p.TypeIndex() != typeIdx[p.Type] {
			t.Errorf("pin %s: TypeIndex %d, expected %d", p.Name, p.TypeIndex(), typeIdx[p.Type])
		}
		typeIdx[p.Type]++
	}
}

func linked(c hwboard.Component, id hwboard.ID) bool {
	for _, l := range c.Links() {
		if l == id {
			return true
		}
	}
	return false
}

// connected returns true if all members of g are reachable from its anchor
// through links to other members.
//
func connected(n *hwboard.Network, g *hwboard.Group) bool {
	seen := map[hwboard.ID]bool{g.Anchor(): true}
	for q := []hwboard.ID{g.Anchor()}; len(q) > 0; q = q[1:] {
		c := n.Component(q[0])
		if c == nil {
			continue
		}
		for _, l := range c.Links() {
			if !seen[l] && g.Has(l) {
				seen[l] = true
				q = append(q, l)
			}
		}
	}
	return len(seen) == g.Len()
}
