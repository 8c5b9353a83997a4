// SPDX-License-Identifier: MIT

package flow

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/units"
)

// Offsets that keep the two alternate-depth brackets off the double root at
// critical depth.
const (
	SupercriticalOffset = 0.999
	SubcriticalOffset   = 1.001
)

// CriticalBand is the relative half-width around 1 (for Froude numbers) or
// around a reference depth inside which flow counts as critical.
const CriticalBand = 1e-3

// Froude returns Fr = V/√(g·A/T) at depth y.
//
// Errors: ErrInvalidInput for q ≤ 0 or y outside the domain;
// channel.ErrNoFreeSurface where the top width is zero (full pipe).
func Froude(g channel.Geometry, y, q float64, u units.System) (float64, error) {
	if err := requireGeometry(g); err != nil {
		return 0, err
	}
	if err := requirePositive("discharge", q); err != nil {
		return 0, err
	}
	c, err := constants(u)
	if err != nil {
		return 0, err
	}

	return froude(g, y, q, c)
}

// ClassifyRegime maps a Froude number to its regime; values within
// CriticalBand of 1 are Critical.
func ClassifyRegime(fr float64) Regime {
	switch {
	case math.Abs(fr-1) <= CriticalBand:
		return Critical
	case fr < 1:
		return Subcritical
	default:
		return Supercritical
	}
}

// CriticalDepth returns the depth at which Fr = 1, the root of
//
//	1 − Q²·T(y)/(g·A(y)³) = 0
//
// The residual is negative below critical depth and positive above it, so
// any bracket with lo < yc < hi converges.
func CriticalDepth(g channel.Geometry, q float64, u units.System, opts ...Option) (float64, error) {
	if err := requireGeometry(g); err != nil {
		return 0, err
	}
	if err := requirePositive("discharge", q); err != nil {
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

	return criticalDepth(g, q, c, o, lo, hi)
}

func criticalDepth(g channel.Geometry, q float64, c units.Constants, o Options, lo, hi float64) (float64, error) {
	residual := func(y float64) (float64, error) {
		a, err := g.Area(y)
		if err != nil {
			return 0, geometryErr(err)
		}
		t, err := g.TopWidth(y)
		if err != nil {
			return 0, geometryErr(err)
		}
		return 1 - q*q*t/(c.G*a*a*a), nil
	}

	return o.solve("critical depth", residual, lo, hi, o.tolerance(DefaultTolerance))
}

// MinimumSpecificEnergy returns critical depth and the specific energy there,
// the least energy at which q can pass the section.
func MinimumSpecificEnergy(g channel.Geometry, q float64, u units.System, opts ...Option) (yc, emin float64, err error) {
	if yc, err = CriticalDepth(g, q, u, opts...); err != nil {
		return 0, 0, err
	}
	c, _ := constants(u) // validated by CriticalDepth
	if emin, err = energy(g, yc, q, c); err != nil {
		return 0, 0, err
	}

	return yc, emin, nil
}

// AlternateDepths returns the supercritical and subcritical depths that carry
// q with specific energy e.
//
// Steps:
//  1. Solve critical depth yc over the bracket [lo, hi].
//  2. If e ≤ E(yc), fail with ErrEnergyBelowMinimum.
//  3. Solve E(y) − e = 0 on [lo, 0.999·yc] for ySuper.
//  4. Solve E(y) − e = 0 on [1.001·yc, hi] for ySub.
//
// Each branch fails independently with a *SolveError naming its bracket.
// Guarantees ySuper < yc < ySub on success.
func AlternateDepths(g channel.Geometry, e, q float64, u units.System, opts ...Option) (ySuper, ySub float64, err error) {
	if err = requireGeometry(g); err != nil {
		return 0, 0, err
	}
	if err = requirePositive("specific energy", e); err != nil {
		return 0, 0, err
	}
	if err = requirePositive("discharge", q); err != nil {
		return 0, 0, err
	}
	c, err := constants(u)
	if err != nil {
		return 0, 0, err
	}

	o := gatherOptions(opts)
	lo, hi, err := o.bracket(g)
	if err != nil {
		return 0, 0, err
	}

	yc, err := criticalDepth(g, q, c, o, lo, hi)
	if err != nil {
		return 0, 0, err
	}
	emin, err := energy(g, yc, q, c)
	if err != nil {
		return 0, 0, err
	}
	superLo, superHi := lo, SupercriticalOffset*yc
	if e <= emin {
		return 0, 0, &SolveError{
			Op: "alternate depths (supercritical)", Lo: superLo, Hi: superHi,
			Err: fmt.Errorf("%w: E=%g, Emin=%g at yc=%g", ErrEnergyBelowMinimum, e, emin, yc),
		}
	}

	residual := func(y float64) (float64, error) {
		ey, err := energy(g, y, q, c)
		if err != nil {
			return 0, err
		}
		return ey - e, nil
	}
	tol := o.tolerance(DefaultTolerance)

	if ySuper, err = o.solve("alternate depths (supercritical)", residual, superLo, superHi, tol); err != nil {
		return 0, 0, err
	}
	if ySub, err = o.solve("alternate depths (subcritical)", residual, SubcriticalOffset*yc, hi, tol); err != nil {
		return 0, 0, err
	}

	return ySuper, ySub, nil
}

// EnergyCurve tabulates specific energy and Froude number at each depth.
// A depth without a free surface (full pipe) is reported with Froude NaN.
func EnergyCurve(g channel.Geometry, q float64, u units.System, depths []float64) ([]EnergyPoint, error) {
	if err := requireGeometry(g); err != nil {
		return nil, err
	}
	if err := requirePositive("discharge", q); err != nil {
		return nil, err
	}
	c, err := constants(u)
	if err != nil {
		return nil, err
	}

	points := make([]EnergyPoint, 0, len(depths))
	for _, y := range depths {
		ey, err := energy(g, y, q, c)
		if err != nil {
			return nil, fmt.Errorf("energy curve at y=%g: %w", y, err)
		}
		fr, err := froude(g, y, q, c)
		if errors.Is(err, channel.ErrNoFreeSurface) {
			fr, err = math.NaN(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("energy curve at y=%g: %w", y, err)
		}
		points = append(points, EnergyPoint{Depth: y, Energy: ey, Froude: fr})
	}

	return points, nil
}
