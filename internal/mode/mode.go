package mode

import "errors"

var ErrUnknownMode = errors.New("unknown mode")

// Range is the inclusive seat-number interval a mode may draw from.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Config partitions the seat-number range and optionally the name catalog
// into per-mode eligible subsets. Switching modes is a pure view change;
// nothing here mutates assignments. An empty Config exposes everything
// under the "" mode for variants without mode support.
type Config struct {
	Ranges  map[string]Range
	Names   map[string][]string
	Default string
}

// Valid reports whether label names a configured mode. With no ranges
// configured only the empty label is valid.
func (c Config) Valid(label string) bool {
	if len(c.Ranges) == 0 {
		return label == ""
	}
	_, ok := c.Ranges[label]
	return ok
}

// EligibleSeats filters the unresolved pool down to the mode's seat range.
func (c Config) EligibleSeats(label string, unresolved []int) []int {
	r, ok := c.Ranges[label]
	if !ok {
		if len(c.Ranges) == 0 {
			return append([]int(nil), unresolved...)
		}
		return nil
	}
	var pool []int
	for _, no := range unresolved {
		if no >= r.Min && no <= r.Max {
			pool = append(pool, no)
		}
	}
	return pool
}

// Candidates returns the mode's name sublist, or the full catalog when no
// per-mode list exists (backwards compatible with a flat names file).
func (c Config) Candidates(label string, catalog []string) []string {
	if sub, ok := c.Names[label]; ok {
		return sub
	}
	return catalog
}

// EligibleNames nets the mode's candidates against the union of assigned
// names across every tier and every mode. The netting is deliberately
// global: a name resolved under one mode stays unavailable under the other.
func (c Config) EligibleNames(label string, catalog []string, assigned map[string]bool) []string {
	var free []string
	for _, n := range c.Candidates(label, catalog) {
		if !assigned[n] {
			free = append(free, n)
		}
	}
	return free
}
