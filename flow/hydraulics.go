// SPDX-License-Identifier: MIT

package flow

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/units"
)

// constants looks up {g, k} for u.
func constants(u units.System) (units.Constants, error) {
	c, err := units.Lookup(u)
	if err != nil {
		return units.Constants{}, fmt.Errorf("flow: %w", err)
	}

	return c, nil
}

func requireGeometry(g channel.Geometry) error {
	if g == nil {
		return fmt.Errorf("%w: geometry is nil", ErrInvalidInput)
	}

	return nil
}

func requirePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidInput, name, v)
	}

	return nil
}

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidInput, name, v)
	}

	return nil
}

// geometryErr marks out-of-domain depths as invalid input as well.
func geometryErr(err error) error {
	if errors.Is(err, channel.ErrInvalidDepth) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return err
}

// areaRadius returns A(y) and R(y).
func areaRadius(g channel.Geometry, y float64) (a, r float64, err error) {
	if a, err = g.Area(y); err != nil {
		return 0, 0, geometryErr(err)
	}
	p, err := g.WettedPerimeter(y)
	if err != nil {
		return 0, 0, geometryErr(err)
	}

	return a, a / p, nil
}

// manning is Q = (k/n)·A·R^(2/3)·√S.
func manning(g channel.Geometry, y, n, s float64, c units.Constants) (float64, error) {
	a, r, err := areaRadius(g, y)
	if err != nil {
		return 0, err
	}

	return c.K / n * a * math.Pow(r, 2.0/3.0) * math.Sqrt(s), nil
}

// energy is E = y + Q²/(2gA²).
func energy(g channel.Geometry, y, q float64, c units.Constants) (float64, error) {
	a, err := g.Area(y)
	if err != nil {
		return 0, geometryErr(err)
	}

	return y + q*q/(2*c.G*a*a), nil
}

// friction is Sf = n²Q²/(k²A²R^(4/3)).
func friction(g channel.Geometry, y, q, n float64, c units.Constants) (float64, error) {
	a, r, err := areaRadius(g, y)
	if err != nil {
		return 0, err
	}

	return n * n * q * q / (c.K * c.K * a * a * math.Pow(r, 4.0/3.0)), nil
}

// froude is Fr = (Q/A)/√(g·A/T).
func froude(g channel.Geometry, y, q float64, c units.Constants) (float64, error) {
	a, err := g.Area(y)
	if err != nil {
		return 0, geometryErr(err)
	}
	d, err := channel.HydraulicDepth(g, y)
	if err != nil {
		return 0, geometryErr(err)
	}

	return (q / a) / math.Sqrt(c.G*d), nil
}
