// SPDX-License-Identifier: MIT

// Package units provides the two immutable unit-constant sets used by the
// open-channel solvers: gravitational acceleration g and the Manning
// conversion factor k.
//
// The unit system is never a process-wide default. Every solver call takes
// a System argument and resolves its constants with Lookup, so concurrent
// calls with different systems cannot interfere.
//
//	c, err := units.Lookup(units.English)
//	// c.G == 32.2, c.K == 1.486
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUnitSystem is returned for any tag other than SI or English.
var ErrInvalidUnitSystem = errors.New("units: invalid unit system")

// System selects a unit system.
type System int

const (
	// SI uses metres, seconds, m³/s (g = 9.81, k = 1.0).
	SI System = iota

	// English uses feet, seconds, ft³/s (g = 32.2, k = 1.486).
	English
)

// Constants is the {g, k} pair for one unit system.
type Constants struct {
	// G is gravitational acceleration (m/s² or ft/s²).
	G float64

	// K is the Manning conversion factor (1.0 SI, 1.486 English).
	K float64
}

// table is read-only after package initialization.
var table = map[System]Constants{
	SI:      {G: 9.81, K: 1.0},
	English: {G: 32.2, K: 1.486},
}

// Lookup returns the constants for s.
// Returns ErrInvalidUnitSystem for unknown systems.
func Lookup(s System) (Constants, error) {
	c, ok := table[s]
	if !ok {
		return Constants{}, fmt.Errorf("%w: %d (use SI or English)", ErrInvalidUnitSystem, int(s))
	}

	return c, nil
}

// MustLookup is Lookup for package-level constants in tests and examples.
// It panics on an invalid system.
func MustLookup(s System) Constants {
	c, err := Lookup(s)
	if err != nil {
		panic(err)
	}

	return c
}

// Parse maps a tag to a System. Matching is case-insensitive; "US" is
// accepted as an alias of English.
func Parse(tag string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "si", "metric":
		return SI, nil
	case "english", "us":
		return English, nil
	default:
		return 0, fmt.Errorf("%w: %q (use SI or English)", ErrInvalidUnitSystem, tag)
	}
}

// String returns "SI" or "English".
func (s System) String() string {
	switch s {
	case SI:
		return "SI"
	case English:
		return "English"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Valid reports whether s is one of the two known systems.
func (s System) Valid() bool {
	_, ok := table[s]

	return ok
}

// LengthUnit is the report label for lengths and depths.
func (s System) LengthUnit() string {
	if s == English {
		return "ft"
	}

	return "m"
}

// DischargeUnit is the report label for discharge.
func (s System) DischargeUnit() string {
	if s == English {
		return "ft³/s"
	}

	return "m³/s"
}

// VelocityUnit is the report label for velocity.
func (s System) VelocityUnit() string {
	if s == English {
		return "ft/s"
	}

	return "m/s"
}

// MarshalText implements encoding.TextMarshaler.
func (s System) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUnitSystem, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so YAML documents and
// flag values decode through Parse.
func (s *System) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}
