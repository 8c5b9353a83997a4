// SPDX-License-Identifier: MIT

package channel

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDepth indicates a depth that is non-positive, non-finite, or
	// beyond the shape's physical bound.
	ErrInvalidDepth = errors.New("channel: invalid depth")

	// ErrInvalidDimension indicates a non-positive or non-finite shape dimension.
	ErrInvalidDimension = errors.New("channel: invalid dimension")

	// ErrNoFreeSurface indicates a depth with zero top width (full conduit),
	// where hydraulic depth and Froude number are undefined.
	ErrNoFreeSurface = errors.New("channel: no free surface")

	// ErrUnknownShape is returned by New for an unrecognized shape name.
	ErrUnknownShape = errors.New("channel: unknown shape")
)

// Geometry is the capability every cross-section provides. All three
// functions are pure in y and return ErrInvalidDepth outside the domain.
type Geometry interface {
	Area(y float64) (float64, error)
	WettedPerimeter(y float64) (float64, error)
	TopWidth(y float64) (float64, error)
}

// Bounded is implemented by shapes with a physical upper depth limit.
type Bounded interface {
	MaxDepth() float64
}

// DischargeLimited is implemented by shapes whose Manning discharge is
// non-monotonic in depth. Above DischargePeakDepth discharge decreases.
type DischargeLimited interface {
	DischargePeakDepth() float64
}

// HydraulicRadius returns R = A/P.
func HydraulicRadius(g Geometry, y float64) (float64, error) {
	a, err := g.Area(y)
	if err != nil {
		return 0, err
	}
	p, err := g.WettedPerimeter(y)
	if err != nil {
		return 0, err
	}

	return a / p, nil
}

// HydraulicDepth returns D = A/T. It returns ErrNoFreeSurface when T is zero.
func HydraulicDepth(g Geometry, y float64) (float64, error) {
	a, err := g.Area(y)
	if err != nil {
		return 0, err
	}
	t, err := g.TopWidth(y)
	if err != nil {
		return 0, err
	}
	if t <= 0 {
		return 0, fmt.Errorf("%w: top width is zero at y=%g", ErrNoFreeSurface, y)
	}

	return a / t, nil
}

// checkDepth validates 0 < y (finite).
func checkDepth(y float64) error {
	if math.IsNaN(y) || math.IsInf(y, 0) || y <= 0 {
		return fmt.Errorf("%w: depth must be positive and finite, got %g", ErrInvalidDepth, y)
	}

	return nil
}

// checkDimension validates a named shape dimension against its lower bound.
// strict selects v > 0 versus v >= 0.
func checkDimension(name string, v float64, strict bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidDimension, name, v)
	}
	if strict && v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidDimension, name, v)
	}
	if !strict && v < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %g", ErrInvalidDimension, name, v)
	}

	return nil
}
