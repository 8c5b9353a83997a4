// SPDX-License-Identifier: MIT

package flow

import (
	"fmt"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/units"
)

// Discharge returns the Manning uniform-flow discharge at depth y.
//
//	Q = (k/n)·A(y)·R(y)^(2/3)·√slope
//
// Errors: ErrInvalidInput for n ≤ 0, slope ≤ 0 or y outside the geometry's
// domain; a wrapped units.ErrInvalidUnitSystem for an unknown unit system.
func Discharge(g channel.Geometry, y, n, slope float64, u units.System) (float64, error) {
	if err := requireGeometry(g); err != nil {
		return 0, err
	}
	if err := requirePositive("manning n", n); err != nil {
		return 0, err
	}
	if err := requirePositive("slope", slope); err != nil {
		return 0, err
	}
	c, err := constants(u)
	if err != nil {
		return 0, err
	}

	return manning(g, y, n, slope, c)
}

// NormalDepth inverts Discharge: it returns the depth at which uniform flow
// carries q.
//
// Steps:
//  1. Validate q, n, slope and resolve the bracket (see package docs).
//  2. Reject brackets above DischargePeakDepth (ErrNonMonotonicBracket).
//  3. Solve Q(y) − q = 0 with Brent to the configured tolerance.
//
// A q larger than the bracket can carry fails with a *SolveError matching
// ErrNoConvergence; no depth from outside the bracket is ever returned.
func NormalDepth(g channel.Geometry, q, n, slope float64, u units.System, opts ...Option) (float64, error) {
	if err := requireGeometry(g); err != nil {
		return 0, err
	}
	if err := requirePositive("discharge", q); err != nil {
		return 0, err
	}
	if err := requirePositive("manning n", n); err != nil {
		return 0, err
	}
	if err := requirePositive("slope", slope); err != nil {
		return 0, err
	}
	c, err := constants(u)
	if err != nil {
		return 0, err
	}

	o := gatherOptions(opts)
	lo, hi, err := o.bracket(g)
	if err != nil {
		return 0, err
	}
	if dl, ok := g.(channel.DischargeLimited); ok && hi > dl.DischargePeakDepth() {
		return 0, fmt.Errorf("%w: upper end %g > %g", ErrNonMonotonicBracket, hi, dl.DischargePeakDepth())
	}

	residual := func(y float64) (float64, error) {
		qy, err := manning(g, y, n, slope, c)
		if err != nil {
			return 0, err
		}
		return qy - q, nil
	}

	return o.solve("normal depth", residual, lo, hi, o.tolerance(DefaultTolerance))
}

// Velocity returns the mean velocity Q/A at depth y.
func Velocity(g channel.Geometry, y, q float64) (float64, error) {
	if err := requireGeometry(g); err != nil {
		return 0, err
	}
	if err := requirePositive("discharge", q); err != nil {
		return 0, err
	}
	a, err := g.Area(y)
	if err != nil {
		return 0, geometryErr(err)
	}

	return q / a, nil
}

// RatingCurve tabulates uniform-flow discharge and velocity at each depth,
// in the order given. The first invalid depth aborts the table.
func RatingCurve(g channel.Geometry, n, slope float64, u units.System, depths []float64) ([]RatingPoint, error) {
	if err := requireGeometry(g); err != nil {
		return nil, err
	}
	if err := requirePositive("manning n", n); err != nil {
		return nil, err
	}
	if err := requirePositive("slope", slope); err != nil {
		return nil, err
	}
	c, err := constants(u)
	if err != nil {
		return nil, err
	}

	points := make([]RatingPoint, 0, len(depths))
	for _, y := range depths {
		q, err := manning(g, y, n, slope, c)
		if err != nil {
			return nil, fmt.Errorf("rating curve at y=%g: %w", y, err)
		}
		a, err := g.Area(y)
		if err != nil {
			return nil, geometryErr(err)
		}
		points = append(points, RatingPoint{Depth: y, Discharge: q, Velocity: q / a})
	}

	return points, nil
}
