package feature

import "fmt"

// Interval is a labeled range of sequence positions, 1-based and inclusive.
type Interval struct {
	label       string
	start, stop int
}

// NewInterval returns an Interval over [start, stop]. Reversed bounds are
// swapped so that Start() <= Stop() always holds.
func NewInterval(label string, start, stop int) Interval {
	if start > stop {
		start, stop = stop, start
	}
	return Interval{label: label, start: start, stop: stop}
}

// Label returns the feature label.
func (iv Interval) Label() string { return iv.label }

// Start returns the first position covered.
func (iv Interval) Start() int { return iv.start }

// Stop returns the last position covered.
func (iv Interval) Stop() int { return iv.stop }

// Width returns the number of positions covered. A zero-width interval
// (Start == Stop) covers one position.
func (iv Interval) Width() int { return iv.stop - iv.start + 1 }

// Overlaps reports whether the two intervals share at least one position.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.start <= o.stop && o.start <= iv.stop
}

func (iv Interval) String() string {
	if iv.label == "" {
		return fmt.Sprintf("[%d,%d]", iv.start, iv.stop)
	}
	return fmt.Sprintf("%s[%d,%d]", iv.label, iv.start, iv.stop)
}
