// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"sort"

	"go.uber.org/zap"
)

// GroupID identifies a Group within its network.
//
type GroupID int

// A Group is a maximal set of linked components sharing one logic level.
//
// The level of a group is a function of its setters only: Undef with no
// setter, the asserted level with exactly one, and Multiple with two or more,
// whether or not they agree.
//
type Group struct {
	net        *Network
	id         GroupID
	anchor     ID
	members    map[ID]struct{}
	wires      map[ID]struct{}
	connexions map[ID]struct{}
	setters    map[ID]Level
	level      Level
}

func newGroup(n *Network, anchor ID) *Group {
	n.maxGroup++
	g := &Group{
		net:        n,
		id:         n.maxGroup,
		anchor:     anchor,
		members:    make(map[ID]struct{}),
		wires:      make(map[ID]struct{}),
		connexions: make(map[ID]struct{}),
		setters:    make(map[ID]Level),
	}
	n.groups[g.id] = g
	return g
}

// ID returns the group ID.
func (g *Group) ID() GroupID { return g.id }

// Anchor returns the ID of the member the group is anchored on.
func (g *Group) Anchor() ID { return g.anchor }

// Level returns the resolved level of the group.
func (g *Group) Level() Level { return g.level }

// Len returns the member count.
func (g *Group) Len() int { return len(g.members) }

// Members returns the member IDs in increasing order.
func (g *Group) Members() []ID { return sortedIDs(g.members) }

// Wires returns the IDs of member wires in increasing order.
func (g *Group) Wires() []ID { return sortedIDs(g.wires) }

// Connexions returns the IDs of member connexions in increasing order.
func (g *Group) Connexions() []ID { return sortedIDs(g.connexions) }

// Has returns true if id is a member of g.
func (g *Group) Has(id ID) bool {
	_, ok := g.members[id]
	return ok
}

// Setters returns a copy of the setter map.
//
func (g *Group) Setters() map[ID]Level {
	m := make(map[ID]Level, len(g.setters))
	for k, v := range g.setters {
		m[k] = v
	}
	return m
}

// ResolveLevel returns the level of a group with the given setters.
//
func ResolveLevel(setters map[ID]Level) Level {
	switch len(setters) {
	case 0:
		return Undef
	case 1:
		for _, l := range setters {
			return l
		}
	}
	return Multiple
}

// resolve recomputes the level and reports whether it changed.
//
func (g *Group) resolve() bool {
	l := ResolveLevel(g.setters)
	if l == g.level {
		return false
	}
	g.level = l
	if l == Multiple {
		g.net.log.Warn("multiple drivers",
			zap.Int("group", int(g.id)),
			zap.Int("setters", len(g.setters)),
			zap.Ints("ids", idInts(sortedSetters(g.setters))))
		g.net.observer.Conflict(g)
	}
	return true
}

// SetLevel records setter as asserting l and resolves the group level.
//
func (g *Group) SetLevel(setter ID, l Level) {
	if old, ok := g.setters[setter]; ok && old == l {
		return
	}
	if !g.Has(setter) {
		panic("hwboard: setter is not a member of the group")
	}
	g.setters[setter] = l
	if g.resolve() {
		g.refresh()
	}
}

// UnsetLevel removes setter from the group setters.
//
func (g *Group) UnsetLevel(setter ID) {
	if _, ok := g.setters[setter]; !ok {
		return
	}
	delete(g.setters, setter)
	if g.resolve() {
		g.refresh()
	}
}

// attach moves c into g, carrying its setter entry over from its previous
// group. Members are not notified.
//
func (g *Group) attach(c Component) {
	b := c.base()
	var (
		lvl    Level
		setter bool
	)
	if old := b.group; old != nil {
		if old == g {
			return
		}
		lvl, setter = old.setters[b.id]
		old.detach(c)
		if old.Len() == 0 {
			g.net.dropGroup(old)
		}
	}
	g.members[b.id] = struct{}{}
	switch c.Kind() {
	case KindWire:
		g.wires[b.id] = struct{}{}
	case KindConnexion:
		g.connexions[b.id] = struct{}{}
	}
	if setter {
		g.setters[b.id] = lvl
	}
	b.group = g
}

// detach removes c from g along with any setter entry. The level is not
// resolved.
//
func (g *Group) detach(c Component) {
	b := c.base()
	if _, ok := g.members[b.id]; !ok || b.group != g {
		panic("hwboard: component is not a member of the group")
	}
	delete(g.members, b.id)
	delete(g.wires, b.id)
	delete(g.connexions, b.id)
	delete(g.setters, b.id)
	b.group = nil
}

// merge moves all members of o into g and drops o.
//
func (g *Group) merge(o *Group) {
	if o == g {
		return
	}
	ids := o.Members()
	for _, id := range ids {
		g.attach(g.net.components[id])
	}
	g.net.dropGroup(o)
	if g.resolve() {
		g.refresh()
		return
	}
	for _, id := range ids {
		g.notify(g.net.components[id])
	}
}

// split removes the given members, then breaks the remaining members into
// connected sets. The set holding the anchor stays in g; every other set
// becomes a new group. It returns all resulting groups, g first, or nil if g
// was left empty.
//
func (g *Group) split(removed []Component) []*Group {
	hadSetters := len(g.setters) > 0
	for _, c := range removed {
		g.detach(c)
	}
	if g.Len() == 0 {
		g.net.dropGroup(g)
		return nil
	}

	parts := g.connected()
	keep := 0
	for i, p := range parts {
		if idIn(p, g.anchor) {
			keep = i
			break
		}
	}
	if !idIn(parts[keep], g.anchor) {
		g.anchor = parts[keep][0]
	}

	groups := []*Group{g}
	for i, p := range parts {
		if i == keep {
			continue
		}
		ng := newGroup(g.net, p[0])
		for _, id := range p {
			ng.attach(g.net.components[id])
		}
		groups = append(groups, ng)
	}

	for _, sg := range groups {
		sg.resolve()
		sg.refresh()
		if hadSetters && len(sg.setters) == 0 {
			g.net.log.Warn("group left without driver",
				zap.Int("group", int(sg.id)),
				zap.Int("members", sg.Len()))
		}
		if g.net.strict && sg.Len() == len(sg.connexions) {
			g.net.log.Warn("group holds only connexions",
				zap.Int("group", int(sg.id)),
				zap.Ints("ids", idInts(sg.Members())))
		}
	}
	return groups
}

// connected returns the connected sets of members under the link graph
// restricted to members of g. Sets and their elements are in increasing ID
// order.
//
func (g *Group) connected() [][]ID {
	seen := make(map[ID]bool, len(g.members))
	var parts [][]ID
	for _, root := range g.Members() {
		if seen[root] {
			continue
		}
		seen[root] = true
		part := []ID{root}
		for frontier := []ID{root}; len(frontier) > 0; {
			var next []ID
			for _, id := range frontier {
				for l := range g.net.components[id].base().links {
					if seen[l] || !g.Has(l) {
						continue
					}
					seen[l] = true
					part = append(part, l)
					next = append(next, l)
				}
			}
			frontier = next
		}
		sort.Slice(part, func(i, j int) bool { return part[i] < part[j] })
		parts = append(parts, part)
	}
	return parts
}

// refresh notifies every member whose last notified level is stale.
//
func (g *Group) refresh() {
	for _, id := range g.Members() {
		if c := g.net.components[id]; c != nil {
			g.notify(c)
		}
	}
}

func (g *Group) notify(c Component) {
	b := c.base()
	if b.level == g.level {
		return
	}
	b.level = g.level
	g.net.levelChanged(c)
}

func idIn(ids []ID, id ID) bool {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	return i < len(ids) && ids[i] == id
}

func idInts(ids []ID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

func sortedSetters(m map[ID]Level) []ID {
	ids := make([]ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
