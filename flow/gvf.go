// SPDX-License-Identifier: MIT

package flow

import (
	"fmt"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/units"
)

// SpecificEnergy returns E = y + Q²/(2g·A²).
func SpecificEnergy(g channel.Geometry, y, q float64, u units.System) (float64, error) {
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

	return energy(g, y, q, c)
}

// FrictionSlope returns Sf = n²Q²/(k²·A²·R^(4/3)).
func FrictionSlope(g channel.Geometry, y, q, n float64, u units.System) (float64, error) {
	if err := requireGeometry(g); err != nil {
		return 0, err
	}
	if err := requirePositive("discharge", q); err != nil {
		return 0, err
	}
	if err := requirePositive("manning n", n); err != nil {
		return 0, err
	}
	c, err := constants(u)
	if err != nil {
		return 0, err
	}

	return friction(g, y, q, n, c)
}

// reach holds the per-call constants of a prismatic reach.
type reach struct {
	g        channel.Geometry
	q, n, s0 float64
	c        units.Constants
}

func newReach(g channel.Geometry, q, n, s0 float64, u units.System) (reach, error) {
	if err := requireGeometry(g); err != nil {
		return reach{}, err
	}
	if err := requirePositive("discharge", q); err != nil {
		return reach{}, err
	}
	if err := requirePositive("manning n", n); err != nil {
		return reach{}, err
	}
	if err := requirePositive("bed slope", s0); err != nil {
		return reach{}, err
	}
	c, err := constants(u)
	if err != nil {
		return reach{}, err
	}

	return reach{g: g, q: q, n: n, s0: s0, c: c}, nil
}

// state returns E(y) and Sf(y).
func (r reach) state(y float64) (e, sf float64, err error) {
	if e, err = energy(r.g, y, r.q, r.c); err != nil {
		return 0, 0, err
	}
	if sf, err = friction(r.g, y, r.q, r.n, r.c); err != nil {
		return 0, 0, err
	}

	return e, sf, nil
}

// DirectStep returns the distance between sections with depths y1 and y2:
//
//	Δx = (E(y2) − E(y1)) / (s0 − (Sf(y1) + Sf(y2))/2)
//
// Positive Δx is downstream. Swapping y1 and y2 negates Δx up to the
// nonlinearity of the averaged friction slope. Equal depths give 0.
//
// Errors: ErrInvalidInput for invalid inputs, or when the averaged friction
// slope equals s0 (both depths at normal depth, distance unbounded).
func DirectStep(g channel.Geometry, y1, y2, q, n, s0 float64, u units.System) (float64, error) {
	r, err := newReach(g, q, n, s0, u)
	if err != nil {
		return 0, err
	}
	e1, sf1, err := r.state(y1)
	if err != nil {
		return 0, err
	}
	e2, sf2, err := r.state(y2)
	if err != nil {
		return 0, err
	}
	if y1 == y2 {
		return 0, nil
	}

	denom := s0 - (sf1+sf2)/2
	if denom == 0 {
		return 0, fmt.Errorf("%w: average friction slope equals bed slope between y=%g and y=%g", ErrInvalidInput, y1, y2)
	}

	return (e2 - e1) / denom, nil
}

// StandardStep returns the depth at xTarget given depth yStart at xStart by
// solving the energy balance between the two stations:
//
//	R(y2) = E(y1) + (s0 − (Sf(y1)+Sf(y2))/2)·Δx − E(y2) = 0,  Δx = xTarget − xStart
//
// If Δx is zero yStart is returned unchanged. The default tolerance is
// DefaultStepTolerance. The bracket should lie within a single flow regime;
// March chooses one automatically from critical depth. A bracket without a
// root yields a *SolveError matching ErrNoConvergence, meaning the profile
// cannot be continued past xStart.
func StandardStep(g channel.Geometry, xStart, yStart, xTarget, q, n, s0 float64, u units.System, opts ...Option) (float64, error) {
	r, err := newReach(g, q, n, s0, u)
	if err != nil {
		return 0, err
	}
	if err = requireFinite("start station", xStart); err != nil {
		return 0, err
	}
	if err = requireFinite("target station", xTarget); err != nil {
		return 0, err
	}
	o := gatherOptions(opts)
	lo, hi, err := o.bracket(g)
	if err != nil {
		return 0, err
	}

	return r.step(xStart, yStart, xTarget, o, lo, hi)
}

// step is StandardStep after validation and bracket resolution.
func (r reach) step(xStart, yStart, xTarget float64, o Options, lo, hi float64) (float64, error) {
	e1, sf1, err := r.state(yStart)
	if err != nil {
		return 0, err
	}
	dx := xTarget - xStart
	if dx == 0 {
		return yStart, nil
	}

	residual := func(y2 float64) (float64, error) {
		e2, sf2, err := r.state(y2)
		if err != nil {
			return 0, err
		}
		return e1 + (r.s0-(sf1+sf2)/2)*dx - e2, nil
	}

	return o.solve("standard step", residual, lo, hi, o.tolerance(DefaultStepTolerance))
}
