// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwboard implements the component network of a logic board simulator:
a grid of wires, junctions, pins and gate casings, the electrical groups they
form, and the incremental propagation of logic levels through them.

Components are placed with Register and removed with Remove. Registration
checks that the component fits on the grid, assigns it a fresh ID, links it
to its neighbors through Connexions at junction points and merges wires joined
end to end. Linked components form a Group sharing a single Level, resolved
from the components asserting a level on it (its setters): Undef without
setter, the asserted level with exactly one, Multiple with more.

Level changes propagate to the gates reading them. Structural mutations run in
a Building state where evaluation requests are deferred; a single solve pass
runs when the outermost mutation ends. Loops are broken by tracking the chain
of evaluations that led to a request.

Gate behavior is provided by a PartSpec: ordered input and output pin names
and an Evaluator. Parts can be plain functions (Combinational, Logic), Go
structs with tagged fields (MakePart), or whole boards (BoardSpec).

A Network is not safe for concurrent use.

*/
package hwboard
