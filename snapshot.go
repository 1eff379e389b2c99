// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

// Snapshot is the durable state of a network: everything needed to tell two
// networks apart structurally.
//
type Snapshot struct {
	MaxID      ID
	Components map[ID]Kind
	Groups     map[ID][]ID // member IDs by anchor ID
	Casings    []ID
	Pins       []ID // board pins by Index
}

// Snapshot returns the current durable state of the network.
//
func (n *Network) Snapshot() Snapshot {
	s := Snapshot{
		MaxID:      n.maxID,
		Components: make(map[ID]Kind, len(n.components)),
		Groups:     make(map[ID][]ID, len(n.groups)),
	}
	for id, c := range n.components {
		s.Components[id] = c.Kind()
	}
	for _, g := range n.groups {
		s.Groups[g.anchor] = g.Members()
	}
	for _, g := range n.Casings() {
		s.Casings = append(s.Casings, g.id)
	}
	for _, p := range n.pins {
		s.Pins = append(s.Pins, p.id)
	}
	return s
}

// Start requests the evaluation of every gate and runs a solve pass. It must be
// called on a network rebuilt from persisted state before resuming
// propagation, and may be used to recover from an aborted pass.
//
func (n *Network) Start() error {
	return n.mutate(func() {
		for _, g := range n.Casings() {
			n.request(g.id)
		}
		for _, p := range n.InputPins() {
			p.group.SetLevel(p.id, p.drive)
		}
	})
}
