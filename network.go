// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultSize is the default side length of a board grid.
//
const DefaultSize = 256

// Network is the component network of one board. It owns the spatial map, the
// component and group registries, the board pin ordering and the propagation
// work-set.
//
// A Network is not safe for concurrent use. Nested boards own independent
// networks.
//
type Network struct {
	grid       *Grid
	maxID      ID
	components map[ID]Component
	groups     map[GroupID]*Group
	maxGroup   GroupID
	casings    map[ID]*Gate
	pins       []*BoardPin

	building int
	solving  bool
	queue    []request
	queued   map[ID]bool
	trace    []ID
	fault    *EvalError
	err      error

	log      *zap.Logger
	observer Observer
	strict   bool
	mode     WireMode
}

// An Option configures a Network.
//
type Option func(*Network)

// WithSize sets the grid side. It must be even and positive.
//
func WithSize(size int) Option {
	return func(n *Network) { n.grid = NewGrid(size) }
}

// WithLogger sets the logger used for network diagnostics.
//
func WithLogger(l *zap.Logger) Option {
	return func(n *Network) { n.log = l }
}

// WithObserver registers an observer for network events.
//
func WithObserver(o Observer) Option {
	return func(n *Network) { n.observer = o }
}

// WithStrict enables extra consistency warnings, such as groups made only of
// connexions.
//
func WithStrict(strict bool) Option {
	return func(n *Network) { n.strict = strict }
}

// WithWireMode sets the bend mode used by (*Network).NewWire.
//
func WithWireMode(m WireMode) Option {
	return func(n *Network) { n.mode = m }
}

// New returns an empty network.
//
func New(opts ...Option) *Network {
	n := &Network{
		components: make(map[ID]Component),
		groups:     make(map[GroupID]*Group),
		casings:    make(map[ID]*Gate),
		queued:     make(map[ID]bool),
	}
	for _, o := range opts {
		o(n)
	}
	if n.grid == nil {
		n.grid = NewGrid(DefaultSize)
	}
	if n.log == nil {
		n.log = zap.L()
	}
	if n.observer == nil {
		n.observer = NopObserver{}
	}
	return n
}

// Grid returns the network's spatial map. Callers must not modify it.
func (n *Network) Grid() *Grid { return n.grid }

// NewWire returns an unregistered wire from a to b using the network wire mode.
func (n *Network) NewWire(a, b Point) *Wire { return NewWire(a, b, n.mode) }

// MaxID returns the last assigned component ID.
func (n *Network) MaxID() ID { return n.maxID }

// Component returns the registered component with the given ID, or nil.
//
func (n *Network) Component(id ID) Component {
	return n.components[id]
}

// Components returns the IDs of all registered components in increasing order.
//
func (n *Network) Components() []ID {
	ids := make([]ID, 0, len(n.components))
	for id := range n.components {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of registered components.
func (n *Network) Len() int { return len(n.components) }

// Groups returns all groups ordered by ID.
//
func (n *Network) Groups() []*Group {
	gs := make([]*Group, 0, len(n.groups))
	for _, g := range n.groups {
		gs = append(gs, g)
	}
	sort.Slice(gs, func(i, j int) bool { return gs[i].id < gs[j].id })
	return gs
}

// Casings returns the registered gates ordered by ID.
//
func (n *Network) Casings() []*Gate {
	gs := make([]*Gate, 0, len(n.casings))
	for _, g := range n.casings {
		gs = append(gs, g)
	}
	sort.Slice(gs, func(i, j int) bool { return gs[i].id < gs[j].id })
	return gs
}

// Err returns the error of the last automatic solve pass, run at the end of a
// mutation, or nil if it completed.
//
func (n *Network) Err() error { return n.err }

// Ready returns true if no mutation is in progress.
func (n *Network) Ready() bool { return n.building == 0 }

// Begin enters the Building state. Propagation requests are deferred until the
// matching End. Calls nest.
//
func (n *Network) Begin() {
	n.building++
}

// End leaves the Building state entered by Begin. When the outermost mutation
// ends, it runs a single SolveRequests pass and returns its error.
//
func (n *Network) End() error {
	if n.building == 0 {
		panic("hwboard: End without Begin")
	}
	n.building--
	if n.building > 0 {
		return nil
	}
	n.err = n.SolveRequests()
	return n.err
}

// mutate runs fn in a Begin/End scope and returns the error of the solve pass.
// If fn panics, the Ready state is still restored but the solve pass is
// skipped.
//
func (n *Network) mutate(fn func()) (err error) {
	n.Begin()
	done := false
	defer func() {
		if !done {
			n.building--
			return
		}
		err = n.End()
	}()
	fn()
	done = true
	return nil
}

// Register commits c and its children to the network. It returns false,
// leaving the network untouched, if c or any child cannot be fixed, is already
// registered, or does not fit on the grid.
//
// On success, c is linked to its neighbors, connexions are created at implicit
// junctions, wires joined end to end are merged, and c is evaluated.
//
func (n *Network) Register(c Component) bool {
	var ok bool
	n.mutate(func() { ok = n.register(c) })
	return ok
}

func (n *Network) register(c Component) bool {
	parts := flatten(c)
	var locs []Location
	for _, p := range parts {
		if p.ID() != 0 || !p.CanFix() {
			return false
		}
		locs = append(locs, p.Locations()...)
	}
	if !n.grid.HasRoom(locs) {
		return false
	}
	if g, ok := c.(*Gate); ok {
		ev, err := g.Spec.Mount()
		if err != nil {
			n.log.Warn("mount failed", zap.String("part", g.Name()), zap.Error(err))
			return false
		}
		g.eval = ev
	}

	for _, p := range parts {
		n.maxID++
		b := p.base()
		b.id = n.maxID
		b.state = Fixed
		b.links = make(map[ID]struct{})
		b.level = Undef
		n.components[b.id] = p
		if !n.grid.Occupy(p.Locations(), b.id) {
			panic("hwboard: grid rejected a checked placement")
		}
		newGroup(n, b.id).attach(p)
	}
	for _, ch := range c.Children() {
		ch.base().parent = c.ID()
	}

	switch c := c.(type) {
	case *Gate:
		n.casings[c.id] = c
	case *BoardPin:
		n.pins = append(n.pins, c)
		n.reindex()
		if c.Type == Input {
			c.drive = Low
			c.group.SetLevel(c.id, Low)
		}
	}
	for _, p := range parts {
		n.observer.Registered(p)
	}

	for _, p := range parts {
		if p.ID() == 0 || !electrical(p) {
			continue
		}
		for _, pt := range cellsOf(p.Locations()) {
			n.junction(pt, false)
		}
	}

	switch c := c.(type) {
	case *Gate:
		n.request(c.id)
	case *Pin:
		if c.parent != 0 {
			n.request(c.parent)
		}
	}
	return true
}

// Remove removes the given components and all their children. Casing pins are
// removed along with their gate. Connexions are ignored (see ToggleConnexion);
// connexions left with less than two occupants are removed as a side effect.
//
// Removed components return to the Build state and can be registered again
// under new IDs.
//
func (n *Network) Remove(cs ...Component) {
	n.mutate(func() { n.remove(n.expand(cs), true) })
}

// Select moves a registered component and its descendants to the Selected
// state, or back to Fixed if on is false. It returns false if c is not
// registered. Casing pins select their gate.
//
func (n *Network) Select(c Component, on bool) bool {
	cs := n.expand([]Component{c})
	if len(cs) == 0 {
		return false
	}
	st := Fixed
	if on {
		st = Selected
	}
	for _, c := range cs {
		c.base().state = st
	}
	return true
}

// Selection returns the IDs of the selected components in increasing order.
//
func (n *Network) Selection() []ID {
	var ids []ID
	for id, c := range n.components {
		if c.base().state == Selected {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// expand returns the registered components in cs with their descendants, in
// increasing ID order.
//
func (n *Network) expand(cs []Component) []Component {
	set := make(map[ID]Component)
	var add func(c Component)
	add = func(c Component) {
		if c == nil || c.ID() == 0 || n.components[c.ID()] != c {
			return
		}
		if _, ok := set[c.ID()]; ok {
			return
		}
		set[c.ID()] = c
		for _, ch := range c.Children() {
			add(ch)
		}
	}
	for _, c := range cs {
		if c == nil {
			continue
		}
		if p, ok := c.(*Pin); ok && p.parent != 0 {
			c = n.components[p.parent]
		}
		if c == nil || c.Kind() == KindConnexion {
			continue
		}
		add(c)
	}
	out := make([]Component, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// remove unregisters the given components. If settle is true, connexions that
// were linked to them are cleaned up or merged afterwards.
//
func (n *Network) remove(cs []Component, settle bool) {
	if len(cs) == 0 {
		return
	}
	removed := make(map[ID]bool, len(cs))
	for _, c := range cs {
		removed[c.ID()] = true
		c.base().state = Removing
	}

	touched := make(map[ID]*Connexion)
	byGroup := make(map[*Group][]Component)
	var order []*Group
	for _, c := range cs {
		b := c.base()
		for l := range b.links {
			if removed[l] {
				continue
			}
			o := n.components[l]
			delete(o.base().links, b.id)
			if cx, ok := o.(*Connexion); ok {
				touched[l] = cx
			}
		}
		b.links = make(map[ID]struct{})
		n.grid.Vacate(c.Locations())
		if b.group != nil {
			if _, ok := byGroup[b.group]; !ok {
				order = append(order, b.group)
			}
			byGroup[b.group] = append(byGroup[b.group], c)
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].id < order[j].id })
	for _, g := range order {
		g.split(byGroup[g])
	}

	pinsChanged := false
	for _, c := range cs {
		id := c.ID()
		delete(n.components, id)
		delete(n.queued, id)
		switch c := c.(type) {
		case *Gate:
			delete(n.casings, id)
			c.eval = nil
		case *BoardPin:
			pinsChanged = true
		}
		n.observer.Removed(c)
	}
	if pinsChanged {
		ps := n.pins[:0]
		for _, p := range n.pins {
			if !removed[p.id] {
				ps = append(ps, p)
			}
		}
		for i := len(ps); i < len(n.pins); i++ {
			n.pins[i] = nil
		}
		n.pins = ps
		n.reindex()
	}
	for _, c := range cs {
		c.base().reset()
	}

	if !settle {
		return
	}
	ids := make([]ID, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if cx := touched[id]; cx.id == id {
			n.settle(cx)
		}
	}
}

// settle removes cx if it no longer joins two components, or merges the two
// wires it joins.
//
func (n *Network) settle(cx *Connexion) {
	cx.sample(n.grid)
	if len(n.occupants(cx.At)) < 2 {
		n.remove([]Component{cx}, true)
		return
	}
	n.tryMerge(cx)
}

// occupants returns the components owning a wire layer of cell p, casing bodies
// excluded, in increasing ID order.
//
func (n *Network) occupants(p Point) []Component {
	col := n.grid.Column(p)
	var out []Component
	for l := Layer(0); l < ConnexionLayer; l++ {
		id := col[l]
		if id == 0 {
			continue
		}
		c := n.components[id]
		if c == nil || !electrical(c) {
			continue
		}
		dup := false
		for _, o := range out {
			if o.ID() == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// anchored returns true if any of occ advertises p as a connexion point.
//
func anchored(p Point, occ []Component) bool {
	for _, c := range occ {
		if hasPoint(c.ConnexionPoints(), p) {
			return true
		}
	}
	return false
}

func (n *Network) connexionAt(p Point) *Connexion {
	if cx, ok := n.components[n.grid.At(p, ConnexionLayer)].(*Connexion); ok {
		return cx
	}
	return nil
}

// junction links all occupants of cell p through a connexion. A connexion is
// created if none exists and either force is set or an occupant has a
// connexion point at p. It returns the connexion, or nil if there is none
// (anymore) at p.
//
func (n *Network) junction(p Point, force bool) *Connexion {
	occ := n.occupants(p)
	if len(occ) < 2 {
		return n.connexionAt(p)
	}
	cx := n.connexionAt(p)
	if cx == nil {
		if !force && !anchored(p, occ) {
			return nil
		}
		cx = NewConnexion(p)
		n.maxID++
		cx.id = n.maxID
		cx.state = Fixed
		cx.links = make(map[ID]struct{})
		n.components[cx.id] = cx
		if !n.grid.Occupy(cx.Locations(), cx.id) {
			panic("hwboard: connexion layer already taken")
		}
		newGroup(n, cx.id).attach(cx)
		n.observer.Registered(cx)
	}
	for _, o := range occ {
		n.link(cx, o)
	}
	cx.sample(n.grid)
	if n.tryMerge(cx) {
		return nil
	}
	return cx
}

// tryMerge splices the two wires joined end to end by cx into one, consuming
// cx and the wire with the higher ID. It returns true if the merge took place.
//
func (n *Network) tryMerge(cx *Connexion) bool {
	if cx.id == 0 || n.grid.Column(cx.At).WireCount() != 2 {
		return false
	}
	occ := n.occupants(cx.At)
	if len(occ) != 2 {
		return false
	}
	w1, ok1 := occ[0].(*Wire)
	w2, ok2 := occ[1].(*Wire)
	if !ok1 || !ok2 {
		return false
	}
	start, bend, end, ok := joinWires(w1, w2, cx.At)
	if !ok {
		return false
	}

	for _, l := range w2.Links() {
		if l != cx.id {
			n.link(w1, n.components[l])
		}
	}
	n.remove([]Component{w2, cx}, false)

	n.grid.Vacate(w1.Locations())
	w1.Start, w1.Bend, w1.End = start, bend, end
	if !n.grid.Occupy(w1.Locations(), w1.id) {
		panic("hwboard: merged wire does not fit its own path")
	}
	for _, l := range w1.Links() {
		if c, ok := n.components[l].(*Connexion); ok {
			c.sample(n.grid)
		}
	}
	n.observer.Merged(w1)
	return true
}

// link adds a symmetric edge between a and b and merges their groups.
//
func (n *Network) link(a, b Component) {
	if a == b || a.base().linked(b.ID()) {
		return
	}
	a.base().links[b.ID()] = struct{}{}
	b.base().links[a.ID()] = struct{}{}
	ga, gb := a.Group(), b.Group()
	if ga == gb {
		return
	}
	if ga.Len() < gb.Len() {
		ga, gb = gb, ga
	}
	ga.merge(gb)
}

// Link adds an explicit link between two registered components, merging their
// groups.
//
func (n *Network) Link(a, b ID) error {
	ca, cb := n.components[a], n.components[b]
	if ca == nil || cb == nil {
		return errors.Wrapf(ErrNotRegistered, "link %d-%d", a, b)
	}
	n.mutate(func() { n.link(ca, cb) })
	return nil
}

// Unlink removes the link between two registered components and splits their
// group if they are no longer connected.
//
func (n *Network) Unlink(a, b ID) error {
	ca, cb := n.components[a], n.components[b]
	if ca == nil || cb == nil {
		return errors.Wrapf(ErrNotRegistered, "unlink %d-%d", a, b)
	}
	if !ca.base().linked(b) {
		return nil
	}
	n.mutate(func() {
		delete(ca.base().links, b)
		delete(cb.base().links, a)
		ca.Group().split(nil)
	})
	return nil
}

// ToggleConnexion removes the connexion at p if it is not load-bearing, or
// creates one joining all components at p.
//
func (n *Network) ToggleConnexion(p Point) {
	n.mutate(func() {
		if cx := n.connexionAt(p); cx != nil {
			if n.canRemoveConnexion(cx) {
				n.remove([]Component{cx}, true)
			}
			return
		}
		n.junction(p, true)
	})
}

// CanToggleConnexion returns true if ToggleConnexion(p) would change the
// network.
//
func (n *Network) CanToggleConnexion(p Point) bool {
	if cx := n.connexionAt(p); cx != nil {
		return n.canRemoveConnexion(cx)
	}
	return len(n.occupants(p)) >= 2 && n.grid.IsFree(p, ConnexionLayer)
}

// canRemoveConnexion returns false for connexions that hold a component end to
// the rest of the junction.
//
func (n *Network) canRemoveConnexion(cx *Connexion) bool {
	occ := n.occupants(cx.At)
	return len(occ) < 2 || !anchored(cx.At, occ)
}

func (n *Network) dropGroup(g *Group) {
	delete(n.groups, g.id)
}

// levelChanged is called for every component whose group level changed.
//
func (n *Network) levelChanged(c Component) {
	n.observer.LevelChanged(c, c.Level())
	if p, ok := c.(*Pin); ok && p.triggersParent() && p.parent != 0 {
		n.request(p.parent)
	}
}
