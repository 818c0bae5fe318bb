package layout

import "strings"

// Buoyancy is the row placement policy of a track or group.
type Buoyancy int

const (
	Floating Buoyancy = iota
	Sinking
	StackUp
	StackDown
)

var buoyancyNames = [...]string{
	Floating:  "floating",
	Sinking:   "sinking",
	StackUp:   "stackUp",
	StackDown: "stackDown",
}

func (b Buoyancy) String() string {
	if b < Floating || b > StackDown {
		return buoyancyNames[Floating]
	}
	return buoyancyNames[b]
}

// Stacked reports whether every unit gets its own row.
func (b Buoyancy) Stacked() bool { return b == StackUp || b == StackDown }

// ParseBuoyancy maps a case-insensitive policy name to a Buoyancy.
// Unknown names return Floating and false.
func ParseBuoyancy(s string) (Buoyancy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "floating":
		return Floating, true
	case "sinking":
		return Sinking, true
	case "stackup":
		return StackUp, true
	case "stackdown":
		return StackDown, true
	}
	return Floating, false
}
