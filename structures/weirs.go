// SPDX-License-Identifier: MIT

package structures

import (
	"fmt"
	"math"

	"github.com/katalvlaran/openchannel/units"
)

// WeirKind selects a tabulated discharge coefficient.
type WeirKind int

const (
	SharpCrested WeirKind = iota
	BroadCrested
	VNotch90
)

// coefficients holds Cd per kind, SI then English. Cd includes √(2g).
var coefficients = map[WeirKind][2]float64{
	SharpCrested: {1.84, 3.33},
	BroadCrested: {1.7, 3.09},
	VNotch90:     {1.38, 2.50},
}

// Coefficient returns the customary discharge coefficient for kind in u.
func Coefficient(kind WeirKind, u units.System) (float64, error) {
	if !u.Valid() {
		return 0, fmt.Errorf("structures: %w: %d", units.ErrInvalidUnitSystem, int(u))
	}
	c, ok := coefficients[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weir kind %d", ErrInvalidInput, int(kind))
	}
	if u == units.English {
		return c[1], nil
	}

	return c[0], nil
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidInput, name, v)
	}

	return nil
}

// RectangularWeir returns Q = Cd·L·H^(3/2).
func RectangularWeir(cd, length, head float64) (float64, error) {
	if err := positive("discharge coefficient", cd); err != nil {
		return 0, err
	}
	if err := positive("crest length", length); err != nil {
		return 0, err
	}
	if err := positive("head", head); err != nil {
		return 0, err
	}

	return cd * length * math.Pow(head, 1.5), nil
}

// VNotchWeir returns Q = Cd·tan(θ/2)·H^(5/2) for a notch angle 0 < θ ≤ π radians.
func VNotchWeir(cd, theta, head float64) (float64, error) {
	if err := positive("discharge coefficient", cd); err != nil {
		return 0, err
	}
	if math.IsNaN(theta) || theta <= 0 || theta > math.Pi {
		return 0, fmt.Errorf("%w: notch angle must be in (0, π], got %g", ErrInvalidInput, theta)
	}
	if err := positive("head", head); err != nil {
		return 0, err
	}

	return cd * math.Tan(theta/2) * math.Pow(head, 2.5), nil
}
