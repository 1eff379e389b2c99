// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard_test

import (
	"sort"
	"testing"

	hw "github.com/db47h/hwboard"
	hl "github.com/db47h/hwboard/hwlib"
	"github.com/db47h/hwboard/hwtest"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recorder is an Observer that records events.
//
type recorder struct {
	hw.NopObserver
	registered  []hw.ID
	removed     []hw.ID
	merged      int
	oscillation [][]hw.ID
	conflicts   int
	failed      []*hw.EvalError
}

func (r *recorder) Registered(c hw.Component) { r.registered = append(r.registered, c.ID()) }
func (r *recorder) Removed(c hw.Component) { r.removed = append(r.removed, c.ID()) }
func (r *recorder) Merged(*hw.Wire) { r.merged++ }
func (r *recorder) Conflict(*hw.Group) { r.conflicts++ }
func (r *recorder) SolveFailed(e *hw.EvalError) {
	r.failed = append(r.failed, e)
}
func (r *recorder) Oscillation(c hw.Component, bt []hw.ID) {
	r.oscillation = append(r.oscillation, append([]hw.ID(nil), bt...))
}

func gridState(n *hw.Network) map[hw.Point]hw.Column {
	m := make(map[hw.Point]hw.Column)
	n.Grid().Cells(func(p hw.Point, c hw.Column) bool {
		m[p] = c
		return true
	})
	return m
}

func groupState(n *hw.Network) map[hw.ID][]hw.ID {
	return n.Snapshot().Groups
}

func TestRegister_roomCheck(t *testing.T) {
	n := hw.New()
	w1 := n.NewWire(hw.Pt(0, 0), hw.Pt(5, 0))
	if !n.Register(w1) {
		t.Fatal("cannot register first wire")
	}
	g := hw.NewGate(hl.And(), hw.Pt(20, 20))
	if !n.Register(g) {
		t.Fatal("cannot register gate")
	}

	grid, groups, snap := gridState(n), groupState(n), n.Snapshot()

	td := []struct {
		name string
		c    hw.Component
	}{
		{"overlapping wire", n.NewWire(hw.Pt(2, 0), hw.Pt(4, 0))},
		{"zero length wire", n.NewWire(hw.Pt(8, 8), hw.Pt(8, 8))},
		{"bad segment", &hw.Wire{Start: hw.Pt(8, 8), Bend: hw.Pt(9, 10), End: hw.Pt(9, 12)}},
		{"out of bounds", n.NewWire(hw.Pt(120, 0), hw.Pt(130, 0))},
		{"gate over gate body", hw.NewGate(hl.Not(), hw.Pt(21, 19))},
		{"registered twice", w1},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if n.Register(d.c) {
				t.Fatal("registration should fail")
			}
			if d.c != w1 && d.c.ID() != 0 {
				t.Fatalf("failed component got ID %d", d.c.ID())
			}
			if diff := cmp.Diff(grid, gridState(n)); diff != "" {
				t.Fatalf("grid changed (-before +after):\n%s", diff)
			}
			if diff := cmp.Diff(groups, groupState(n)); diff != "" {
				t.Fatalf("groups changed (-before +after):\n%s", diff)
			}
			if diff := cmp.Diff(snap, n.Snapshot()); diff != "" {
				t.Fatalf("snapshot changed (-before +after):\n%s", diff)
			}
		})
	}
	hwtest.CheckInvariants(t, n)
}

func TestRegister_ids(t *testing.T) {
	n := hw.New()
	w1 := n.NewWire(hw.Pt(0, 0), hw.Pt(3, 0))
	w2 := n.NewWire(hw.Pt(0, 2), hw.Pt(3, 2))
	w3 := n.NewWire(hw.Pt(0, 4), hw.Pt(3, 4))
	var last hw.ID
	check := func(c hw.Component) {
		t.Helper()
		if !n.Register(c) {
			t.Fatal("registration failed")
		}
		if c.ID() <= last {
			t.Fatalf("ID %d not greater than %d", c.ID(), last)
		}
		last = c.ID()
		if n.MaxID() != last {
			t.Fatalf("MaxID %d, expected %d", n.MaxID(), last)
		}
	}
	check(w1)
	check(w2)
	old := w1.ID()
	n.Remove(w1)
	if w1.ID() != 0 || n.Component(old) != nil {
		t.Fatal("removed wire still registered")
	}
	check(w3)
	check(w1)
	if w1.ID() == old {
		t.Fatal("ID reused")
	}
	hwtest.CheckInvariants(t, n)
}

func TestRegister_gate(t *testing.T) {
	n := hw.New()
	g := hw.NewGate(hl.FullAdder(), hw.Pt(0, 0))
	if !n.Register(g) {
		t.Fatal("cannot register gate")
	}
	// children get their IDs first
	for _, c := range g.Children() {
		if c.ID() >= g.ID() {
			t.Errorf("pin ID %d >= gate ID %d", c.ID(), g.ID())
		}
		if c.Parent() != g.ID() {
			t.Errorf("pin %d parent %d, expected %d", c.ID(), c.Parent(), g.ID())
		}
	}
	if p := g.Pin("cin"); p.At != hw.Pt(0, -2) || p.Facing != hw.West {
		t.Errorf("cin at %v facing %v", p.At, p.Facing)
	}
	if p := g.Pin("cout"); p.At != hw.Pt(hw.CasingWidth, -1) || p.Facing != hw.East {
		t.Errorf("cout at %v facing %v", p.At, p.Facing)
	}
	if n.HasItem(hw.Pt(1, -3)) || !n.HasItem(hw.Pt(1, -2)) {
		t.Error("casing body does not match the gate height")
	}
	// removing a pin removes the whole gate
	n.Remove(g.Pin("a"))
	if g.ID() != 0 || n.Len() != 0 {
		t.Fatalf("gate not removed: %d components left", n.Len())
	}
	if len(gridState(n)) != 0 {
		t.Fatal("grid not empty after removal")
	}
}

func TestGroupLevel(t *testing.T) {
	td := []struct {
		setters map[hw.ID]hw.Level
		level   hw.Level
	}{
		{nil, hw.Undef},
		{map[hw.ID]hw.Level{1: hw.High}, hw.High},
		{map[hw.ID]hw.Level{1: hw.Low}, hw.Low},
		{map[hw.ID]hw.Level{1: hw.Low, 2: hw.Low}, hw.Multiple},
		{map[hw.ID]hw.Level{1: hw.High, 2: hw.Low}, hw.Multiple},
	}
	for _, d := range td {
		if l := hw.ResolveLevel(d.setters); l != d.level {
			t.Errorf("ResolveLevel(%v) = %v, expected %v", d.setters, l, d.level)
		}
	}
}

func TestGroupLevel_multipleDrivers(t *testing.T) {
	var r recorder
	n := hw.New(hw.WithObserver(&r))
	p1 := hw.NewBoardPin("a", hw.Input, hw.Pt(0, 0))
	p2 := hw.NewBoardPin("b", hw.Input, hw.Pt(4, 0))
	p2.Facing = hw.West
	w := n.NewWire(hw.Pt(0, 0), hw.Pt(4, 0))
	for _, c := range []hw.Component{p1, p2, w} {
		if !n.Register(c) {
			t.Fatalf("cannot register %v", c.Kind())
		}
	}
	if p1.Group() != p2.Group() {
		t.Fatal("pins not connected")
	}
	if l := w.Level(); l != hw.Multiple {
		t.Fatalf("wire level %v, expected Multiple", l)
	}
	if r.conflicts == 0 {
		t.Fatal("conflict not reported")
	}
	n.RemoveBoardPin(p2)
	if l := w.Level(); l != hw.Low {
		t.Fatalf("wire level %v after removing a driver, expected Low", l)
	}
	hwtest.CheckInvariants(t, n)
}

func TestGroup_splitMerge(t *testing.T) {
	n := hw.New()
	w1 := n.NewWire(hw.Pt(0, 0), hw.Pt(3, 0))
	w2 := n.NewWire(hw.Pt(0, 2), hw.Pt(3, 2))
	n.Register(w1)
	n.Register(w2)
	before := groupState(n)
	if len(before) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(before))
	}

	if err := n.Link(w1.ID(), w2.ID()); err != nil {
		t.Fatal(err)
	}
	if w1.Group() != w2.Group() || len(n.Groups()) != 1 {
		t.Fatal("groups not merged")
	}
	hwtest.CheckInvariants(t, n)

	if err := n.Unlink(w1.ID(), w2.ID()); err != nil {
		t.Fatal(err)
	}
	hwtest.CheckInvariants(t, n)
	members := func(m map[hw.ID][]hw.ID) [][]hw.ID {
		var out [][]hw.ID
		for _, ids := range m {
			out = append(out, ids)
		}
		sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
		return out
	}
	if diff := cmp.Diff(members(before), members(groupState(n))); diff != "" {
		t.Fatalf("groups after unlink (-before +after):\n%s", diff)
	}

	if err := n.Link(w1.ID(), 1000); errors.Cause(err) != hw.ErrNotRegistered {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestWire_autoMerge(t *testing.T) {
	var r recorder
	n := hw.New(hw.WithObserver(&r))
	w1 := n.NewWire(hw.Pt(0, 0), hw.Pt(5, 0))
	w2 := n.NewWire(hw.Pt(5, 0), hw.Pt(10, 0))
	locs := make(map[hw.Location]bool)
	for _, w := range []*hw.Wire{w1, w2} {
		for _, l := range w.Locations() {
			locs[l] = true
		}
		if !n.Register(w) {
			t.Fatal("cannot register wire")
		}
	}

	if n.Len() != 1 {
		t.Fatalf("expected 1 component, got %d: %v", n.Len(), n.Components())
	}
	if w2.ID() != 0 || w1.ID() == 0 {
		t.Fatalf("expected w1 to absorb w2, got IDs %d, %d", w1.ID(), w2.ID())
	}
	if w1.Start != hw.Pt(0, 0) || w1.End != hw.Pt(10, 0) {
		t.Fatalf("merged wire from %v to %v", w1.Start, w1.End)
	}
	got := make(map[hw.Location]bool)
	for _, l := range w1.Locations() {
		got[l] = true
	}
	if diff := cmp.Diff(locs, got); diff != "" {
		t.Fatalf("merged locations (-want +got):\n%s", diff)
	}
	if r.merged != 1 {
		t.Fatalf("merge notified %d times", r.merged)
	}
	hwtest.CheckInvariants(t, n)
}

func TestWire_noMerge(t *testing.T) {
	n := hw.New()
	// an elbow: merging would need three segments
	w1 := &hw.Wire{Start: hw.Pt(0, 0), Bend: hw.Pt(3, 0), End: hw.Pt(3, 3)}
	w2 := &hw.Wire{Start: hw.Pt(3, 3), Bend: hw.Pt(6, 3), End: hw.Pt(6, 6)}
	n.Register(w1)
	n.Register(w2)
	if w2.ID() == 0 || n.Len() != 3 {
		t.Fatalf("unexpected merge: %d components", n.Len())
	}
	if w1.Group() != w2.Group() {
		t.Fatal("wires not connected")
	}
	cs := n.CursorComponents(hw.Pt(3, 3))
	if len(cs) != 3 || cs[2].Kind() != hw.KindConnexion {
		t.Fatalf("expected 2 wires and a connexion at (3,3), got %d components", len(cs))
	}
	// removing w2 leaves a dangling connexion, which is removed
	n.Remove(w2)
	if n.Len() != 1 {
		t.Fatalf("expected 1 component, got %d", n.Len())
	}
	hwtest.CheckInvariants(t, n)
}

func TestConnexion_toggle(t *testing.T) {
	n := hw.New()
	h := n.NewWire(hw.Pt(0, 0), hw.Pt(6, 0))
	v := n.NewWire(hw.Pt(3, -3), hw.Pt(3, 3))
	n.Register(h)
	n.Register(v)
	p := hw.Pt(3, 0)
	if h.Group() == v.Group() {
		t.Fatal("crossing wires connected without a connexion")
	}
	if !n.CanToggleConnexion(p) {
		t.Fatal("cannot toggle connexion on a crossing")
	}
	n.ToggleConnexion(p)
	if h.Group() != v.Group() {
		t.Fatal("wires not connected after toggle")
	}
	cx := n.CursorComponents(p)
	if len(cx) != 3 {
		t.Fatalf("expected 3 components at %v, got %d", p, len(cx))
	}
	if c, ok := cx[2].(*hw.Connexion); !ok || !c.Visible() || c.WireCount() != 4 {
		t.Fatalf("expected a visible 4-way connexion")
	}
	n.ToggleConnexion(p)
	if h.Group() == v.Group() {
		t.Fatal("wires still connected after second toggle")
	}
	hwtest.CheckInvariants(t, n)

	// T junction: the connexion holds the end of a wire and cannot be removed
	t2 := n.NewWire(hw.Pt(1, 0), hw.Pt(1, -2))
	n.Register(t2)
	if t2.ID() == 0 || t2.Group() != h.Group() {
		t.Fatal("T junction not connected")
	}
	if n.CanToggleConnexion(hw.Pt(1, 0)) {
		t.Fatal("load bearing connexion can be toggled")
	}
	n.ToggleConnexion(hw.Pt(1, 0))
	if t2.Group() != h.Group() {
		t.Fatal("load bearing connexion removed")
	}
	hwtest.CheckInvariants(t, n)
}

func TestRemove_propagates(t *testing.T) {
	n, g, err := hwtest.Wrap(hl.Not())
	if err != nil {
		t.Fatal(err)
	}
	if l := n.OutputLevels()[0]; l != hw.High {
		t.Fatalf("NOT 0 = %v", l)
	}
	n.Remove(g)
	if l := n.OutputLevels()[0]; l != hw.Undef {
		t.Fatalf("output level %v after gate removal, expected Undef", l)
	}
	if n.OutputValid() != 0 {
		t.Fatal("output still valid")
	}
	if len(n.Casings()) != 0 {
		t.Fatal("gate still registered")
	}
	hwtest.CheckInvariants(t, n)
}

func TestEvaluate_holdsOutputs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n, g, err := hwtest.Wrap(hl.And(), hw.WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	if err = n.SetInput(3); err != nil {
		t.Fatal(err)
	}
	if l := n.OutputLevels()[0]; l != hw.High {
		t.Fatalf("AND 1 1 = %v", l)
	}
	// unwire input b: the gate is no longer ready but keeps its outputs
	n.RemoveBoardPin(n.InputPins()[1])
	if l := g.Pin("b").Level(); l != hw.Undef {
		t.Fatalf("input b level %v, expected Undef", l)
	}
	if l := n.OutputLevels()[0]; l != hw.High {
		t.Fatalf("output level %v with an undefined input, expected High", l)
	}
	if c := logs.FilterMessage("group left without driver").Len(); c != 1 {
		t.Fatalf("got %d driver warnings, expected 1", c)
	}
	hwtest.CheckInvariants(t, n)
}

func TestStrict_connexionGroup(t *testing.T) {
	for _, strict := range []bool{false, true} {
		core, logs := observer.New(zap.WarnLevel)
		n := hw.New(hw.WithLogger(zap.New(core)), hw.WithStrict(strict))
		w1 := &hw.Wire{Start: hw.Pt(0, 0), Bend: hw.Pt(3, 0), End: hw.Pt(3, 3)}
		w2 := &hw.Wire{Start: hw.Pt(3, 3), Bend: hw.Pt(6, 3), End: hw.Pt(6, 6)}
		if !n.Register(w1) || !n.Register(w2) {
			t.Fatal("cannot register wires")
		}
		// removing both wires leaves the connexion alone in its group
		n.Remove(w1, w2)
		exp := 0
		if strict {
			exp = 1
		}
		if c := logs.FilterMessage("group holds only connexions").Len(); c != exp {
			t.Errorf("strict %v: got %d warnings, expected %d", strict, c, exp)
		}
		if n.Len() != 0 {
			t.Errorf("strict %v: %d components left", strict, n.Len())
		}
		hwtest.CheckInvariants(t, n)
	}
}

func TestSelect(t *testing.T) {
	n, g, err := hwtest.Wrap(hl.Not())
	if err != nil {
		t.Fatal(err)
	}
	if !n.Select(g.Pin("in"), true) {
		t.Fatal("cannot select gate")
	}
	if g.State() != hw.Selected || g.Pin("out").State() != hw.Selected {
		t.Fatal("gate and pins not selected")
	}
	exp := []hw.ID{g.Pin("in").ID(), g.Pin("out").ID(), g.ID()}
	if diff := cmp.Diff(exp, n.Selection()); diff != "" {
		t.Fatalf("selection (-expected +got):\n%s", diff)
	}
	n.Select(g, false)
	if g.State() != hw.Fixed || len(n.Selection()) != 0 {
		t.Fatal("gate still selected")
	}
	if n.Select(n.NewWire(hw.Pt(20, 20), hw.Pt(24, 20)), true) {
		t.Fatal("unregistered wire selected")
	}
	n.Select(g, true)
	n.Remove(g)
	if g.State() != hw.Build || len(n.Selection()) != 0 {
		t.Fatal("removed gate still selected")
	}
}

func TestBoardPins_index(t *testing.T) {
	n := hw.New()
	mk := func(name string, typ hw.PinType, y int) *hw.BoardPin {
		p := hw.NewBoardPin(name, typ, hw.Pt(0, y))
		if !n.AddBoardPin(p) {
			t.Fatalf("cannot add pin %s", name)
		}
		return p
	}
	a := mk("a", hw.Input, 0)
	x := mk("x", hw.Output, 2)
	mk("b", hw.Input, 4)
	mk("y", hw.Output, 6)
	c := mk("c", hw.Input, 8)

	names := func(ps []*hw.BoardPin) []string {
		var s []string
		for _, p := range ps {
			s = append(s, p.Name)
		}
		return s
	}
	steps := []struct {
		op   func() error
		pins []string
		ins  []string
	}{
		{func() error { return nil }, []string{"a", "x", "b", "y", "c"}, []string{"a", "b", "c"}},
		{func() error { return n.SetPinIndex(c, 0) }, []string{"c", "a", "x", "b", "y"}, []string{"c", "a", "b"}},
		{func() error { n.RemoveBoardPin(x); return nil }, []string{"c", "a", "b", "y"}, []string{"c", "a", "b"}},
		{func() error { return n.SetPinIndex(a, 3) }, []string{"c", "b", "y", "a"}, []string{"c", "b", "a"}},
		{func() error { n.RemoveBoardPin(c); return nil }, []string{"b", "y", "a"}, []string{"b", "a"}},
	}
	for i, s := range steps {
		if err := s.op(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if diff := cmp.Diff(s.pins, names(n.Pins())); diff != "" {
			t.Fatalf("step %d: pins (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(s.ins, names(n.InputPins())); diff != "" {
			t.Fatalf("step %d: input pins (-want +got):\n%s", i, diff)
		}
		hwtest.CheckInvariants(t, n)
	}

	if err := n.SetPinIndex(a, 5); errors.Cause(err) != hw.ErrPinIndex {
		t.Fatalf("expected ErrPinIndex, got %v", err)
	}
	if err := n.SetPinIndex(x, 0); errors.Cause(err) != hw.ErrNotRegistered {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestInput_bits(t *testing.T) {
	n, _, err := hwtest.Wrap(hl.GateN("XOR", 4, func(a, b bool) bool { return a != b }))
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetInput(0x3c); err != nil {
		t.Fatal(err)
	}
	if n.Input() != 0x3c {
		t.Fatalf("Input() = %#x", n.Input())
	}
	if out := n.Output(); out != 0xf {
		t.Fatalf("Output() = %#x, expected 0xf", out)
	}
	if n.InputValid() != 0xff || n.OutputValid() != 0xf {
		t.Fatalf("valid masks %#x %#x", n.InputValid(), n.OutputValid())
	}
	if err := n.SetInputLevels([]hw.Level{hw.High}); errors.Cause(err) != hw.ErrInputCount {
		t.Fatalf("expected ErrInputCount, got %v", err)
	}
}

func TestBusValue(t *testing.T) {
	n, _, err := hwtest.Wrap(hl.AdderN(4))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range n.Pins() {
		if bus, _, ok := hw.ParseBusPin(p.Name); ok {
			p.Bus = bus
		}
	}
	if err := n.SetInput(9 | 8<<4); err != nil {
		t.Fatal(err)
	}
	td := []struct {
		bus string
		v   uint64
	}{
		{"a", 9},
		{"b", 8},
		{"out", 1},
	}
	for _, d := range td {
		v, ok := n.BusValue(d.bus)
		if !ok || v != d.v {
			t.Errorf("bus %s = %d, %v; expected %d", d.bus, v, ok, d.v)
		}
	}
	if _, ok := n.BusValue("nope"); ok {
		t.Error("unknown bus is valid")
	}
}

func TestCursor(t *testing.T) {
	n := hw.New()
	w := n.NewWire(hw.Pt(0, 0), hw.Pt(4, 0))
	g := hw.NewGate(hl.Not(), hw.Pt(10, 0))
	n.Register(w)
	n.Register(g)

	if !n.Wired(hw.Pt(2, 0)) || n.Wired(hw.Pt(2, 1)) {
		t.Error("Wired")
	}
	if !n.HasItem(hw.Pt(11, 0)) || n.HasItem(hw.Pt(11, 1)) {
		t.Error("HasItem")
	}
	if n.FreeSlot(hw.Location{Point: hw.Pt(2, 0), Layer: hw.Layer(hw.East)}) {
		t.Error("FreeSlot on a wire")
	}
	if !n.FreeSlot(hw.Location{Point: hw.Pt(2, 0), Layer: hw.Layer(hw.North)}) {
		t.Error("FreeSlot next to a wire")
	}
	if n.FreeSlot(hw.Location{Point: hw.Pt(1000, 0)}) {
		t.Error("FreeSlot out of bounds")
	}
	cs := n.CursorComponents(hw.Pt(10, 0))
	if len(cs) != 2 || cs[1] != hw.Component(g) {
		t.Errorf("CursorComponents on a gate pin: %v", cs)
	}
	if gs := n.CursorGroups(hw.Pt(2, 0)); len(gs) != 1 || gs[0] != w.Group() {
		t.Error("CursorGroups")
	}
	if ids := n.CursorConnected(hw.Pt(0, 0)); len(ids) != 1 || ids[0] != w.ID() {
		t.Errorf("CursorConnected: %v", ids)
	}
}

func TestOptions(t *testing.T) {
	n := hw.New(hw.WithStrict(true), hw.WithSize(64), hw.WithWireMode(hw.Diagonal))
	w := n.NewWire(hw.Pt(0, 0), hw.Pt(4, 2))
	if w.Bend != hw.Pt(2, 2) {
		t.Fatalf("diagonal bend at %v", w.Bend)
	}
	if !n.Register(w) {
		t.Fatal("cannot register wire")
	}
	if n.Register(n.NewWire(hw.Pt(30, 0), hw.Pt(34, 0))) {
		t.Fatal("wire out of a 64 cells grid registered")
	}
}
