package constants

import (
	"strings"
)

// Mode is the extraction strategy handed to the engine.
type Mode string

const (
	// Lattice relies on ruling lines drawn in the document (the strict mode).
	Lattice Mode = "lattice"
	// Stream relies on whitespace between text runs (the permissive mode).
	Stream Mode = "stream"
)

var allModes = []Mode{
	Lattice,
	Stream,
}

func ModeNames() []string {
	result := make([]string, len(allModes))
	for i, m := range allModes {
		result[i] = string(m)
	}
	return result
}

// IsStrict reports whether m is the grid-based mode, the only one eligible for fallback.
func (m Mode) IsStrict() bool { return m == Lattice }

// Fallback returns the permissive counterpart of m.
func (m Mode) Fallback() Mode { return Stream }

// CanonicalizeMode maps user input (including the strict/permissive aliases) to a Mode.
func CanonicalizeMode(input string) (Mode, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Lattice, false
	}

	synonyms := map[string]Mode{
		"strict":     Lattice,
		"grid":       Lattice,
		"permissive": Stream,
		"text":       Stream,
	}
	if m, ok := synonyms[normalized]; ok {
		return m, true
	}

	for _, m := range allModes {
		if normalized == string(m) {
			return m, true
		}
	}
	return Lattice, false
}
