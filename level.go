// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwboard

// Level is the logic level carried by a Group.
//
type Level uint8

// Logic levels. The zero value is Undef.
//
const (
	Undef    Level = iota // no driver
	Low                   // logic 0
	High                  // logic 1
	Multiple              // conflicting drivers
)

var levelNames = [...]string{"Undef", "Low", "High", "Multiple"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "Level(?)"
}

// Defined returns true if l is either Low or High.
//
func (l Level) Defined() bool {
	return l == Low || l == High
}

// Bool returns true if l is High.
//
func (l Level) Bool() bool {
	return l == High
}

// Not returns the logical negation of a defined level. Undef and Multiple are
// returned unchanged.
//
func (l Level) Not() Level {
	switch l {
	case Low:
		return High
	case High:
		return Low
	}
	return l
}

// LevelOf converts a bool to a Level.
//
func LevelOf(b bool) Level {
	if b {
		return High
	}
	return Low
}
