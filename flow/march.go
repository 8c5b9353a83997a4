// SPDX-License-Identifier: MIT

package flow

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/units"
)

// March defaults.
const (
	DefaultMarchRelTolerance = 0.01
	DefaultMaxSteps          = 1000
)

// MarchState is the state of a profile march.
//
//	Marching ──|y−yn|/yn < tol──▶ ConvergedToNormalDepth
//	    │
//	    └──standard step fails──▶ SolverFailure
//
// A march that exhausts MaxSteps stays in Marching.
type MarchState int

const (
	Marching MarchState = iota
	ConvergedToNormalDepth
	SolverFailure
)

func (s MarchState) String() string {
	switch s {
	case Marching:
		return "marching"
	case ConvergedToNormalDepth:
		return "converged to normal depth"
	case SolverFailure:
		return "solver failure"
	default:
		return fmt.Sprintf("MarchState(%d)", int(s))
	}
}

// Station is one computed section of a profile.
type Station struct {
	X      float64 `yaml:"x"`
	Depth  float64 `yaml:"depth"`
	Energy float64 `yaml:"energy"`
}

// MarchInput describes a profile computation on a prismatic reach.
//
// Start is the known control section (its Energy is ignored). Step is the
// signed station increment: negative marches upstream. Subcritical profiles
// are controlled downstream and must march upstream (Step < 0);
// supercritical profiles march downstream (Step > 0). NormalDepth and
// CriticalDepth are solved when zero. RelTolerance and MaxSteps fall back
// to DefaultMarchRelTolerance and DefaultMaxSteps when zero.
type MarchInput struct {
	Start         Station
	Step          float64
	Discharge     float64
	Manning       float64
	Slope         float64
	Units         units.System
	NormalDepth   float64
	CriticalDepth float64
	RelTolerance  float64
	MaxSteps      int
}

// Profile is the ordered result of a march.
type Profile struct {
	Stations      []Station
	State         MarchState
	NormalDepth   float64
	CriticalDepth float64
	Class         ProfileClass // curve family of the start depth
}

// Last returns the last computed station.
func (p Profile) Last() Station {
	if len(p.Stations) == 0 {
		return Station{}
	}

	return p.Stations[len(p.Stations)-1]
}

// StationError reports the station a march could not get past.
type StationError struct {
	From   Station // last successfully computed station
	Target float64 // station that could not be solved
	Err    error
}

func (e *StationError) Error() string {
	return fmt.Sprintf("flow: march stopped at x=%g (y=%g) stepping to x=%g: %v",
		e.From.X, e.From.Depth, e.Target, e.Err)
}

func (e *StationError) Unwrap() error { return e.Err }

// March computes a water-surface profile by repeated standard steps from
// in.Start, each step starting from the previous station's depth.
//
// Steps:
//  1. Validate inputs; resolve yn and yc if not supplied.
//  2. Reject a step direction against the regime of the start depth.
//     Choose the step bracket: WithBracket if given, otherwise the regime of
//     the start depth: [1.001·yc, hi] when subcritical, [lo, 0.999·yc] when
//     supercritical.
//  3. Step until |y−yn|/yn < RelTolerance (ConvergedToNormalDepth), a step
//     fails (SolverFailure with *StationError), or MaxSteps is reached.
//
// The returned Profile always holds every station computed before a stop.
// ctx is checked between stations; cancellation returns ctx.Err() wrapped
// with the profile in state Marching.
func March(ctx context.Context, g channel.Geometry, in MarchInput, opts ...Option) (Profile, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	failed := Profile{State: SolverFailure}

	r, err := newReach(g, in.Discharge, in.Manning, in.Slope, in.Units)
	if err != nil {
		return failed, err
	}
	if err = requireFinite("start station", in.Start.X); err != nil {
		return failed, err
	}
	if err = requireFinite("step", in.Step); err != nil {
		return failed, err
	}
	if in.Step == 0 {
		return failed, fmt.Errorf("%w: step must be non-zero", ErrInvalidInput)
	}
	if in.RelTolerance < 0 || math.IsNaN(in.RelTolerance) || in.MaxSteps < 0 {
		return failed, fmt.Errorf("%w: tolerance and step budget must be non-negative", ErrInvalidInput)
	}
	relTol, maxSteps := in.RelTolerance, in.MaxSteps
	if relTol == 0 {
		relTol = DefaultMarchRelTolerance
	}
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}

	o := gatherOptions(opts)
	yn, yc, err := referenceDepths(g, in, o)
	if err != nil {
		return failed, err
	}
	failed.NormalDepth, failed.CriticalDepth = yn, yc

	class, err := ClassifyProfile(in.Start.Depth, yn, yc)
	if err != nil {
		return failed, err
	}
	lo, hi, err := o.stepBracket(g, in.Start.Depth, yc)
	if err != nil {
		return failed, err
	}
	switch {
	case in.Start.Depth >= yc && in.Step > 0:
		return failed, fmt.Errorf("%w: subcritical start y=%g (yc=%g) must march upstream, got step %g",
			ErrInvalidInput, in.Start.Depth, yc, in.Step)
	case in.Start.Depth < yc && in.Step < 0:
		return failed, fmt.Errorf("%w: supercritical start y=%g (yc=%g) must march downstream, got step %g",
			ErrInvalidInput, in.Start.Depth, yc, in.Step)
	}

	e0, _, err := r.state(in.Start.Depth)
	if err != nil {
		return failed, err
	}
	cur := Station{X: in.Start.X, Depth: in.Start.Depth, Energy: e0}
	p := Profile{
		Stations:      make([]Station, 1, min(maxSteps, DefaultMaxSteps)+1),
		State:         Marching,
		NormalDepth:   yn,
		CriticalDepth: yc,
		Class:         class,
	}
	p.Stations[0] = cur

	converged := func(y float64) bool { return math.Abs(y-yn)/yn < relTol }
	if converged(cur.Depth) {
		p.State = ConvergedToNormalDepth
		return p, nil
	}

	for i := 0; i < maxSteps; i++ {
		if err = ctx.Err(); err != nil {
			return p, fmt.Errorf("flow: march cancelled at x=%g: %w", cur.X, err)
		}

		target := in.Start.X + float64(i+1)*in.Step
		y, err := r.step(cur.X, cur.Depth, target, o, lo, hi)
		if err != nil {
			p.State = SolverFailure
			return p, &StationError{From: cur, Target: target, Err: err}
		}
		e, _, err := r.state(y)
		if err != nil {
			p.State = SolverFailure
			return p, &StationError{From: cur, Target: target, Err: err}
		}
		cur = Station{X: target, Depth: y, Energy: e}
		p.Stations = append(p.Stations, cur)

		if converged(y) {
			p.State = ConvergedToNormalDepth
			return p, nil
		}
	}

	return p, nil
}

// referenceDepths returns yn and yc, solving those not given in in.
func referenceDepths(g channel.Geometry, in MarchInput, o Options) (yn, yc float64, err error) {
	yn, yc = in.NormalDepth, in.CriticalDepth
	if yn < 0 || yc < 0 || math.IsNaN(yn) || math.IsNaN(yc) {
		return 0, 0, fmt.Errorf("%w: reference depths must be non-negative", ErrInvalidInput)
	}
	iter := WithMaxIterations(o.MaxIterations)
	if yn == 0 {
		if yn, err = NormalDepth(g, in.Discharge, in.Manning, in.Slope, in.Units, iter); err != nil {
			return 0, 0, fmt.Errorf("march: %w", err)
		}
	}
	if yc == 0 {
		if yc, err = CriticalDepth(g, in.Discharge, in.Units, iter); err != nil {
			return 0, 0, fmt.Errorf("march: %w", err)
		}
	}

	return yn, yc, nil
}

// stepBracket resolves the bracket used for every standard step of a march.
func (o Options) stepBracket(g channel.Geometry, y0, yc float64) (lo, hi float64, err error) {
	if o.BracketSet {
		return o.bracket(g)
	}

	lo, hi = defaultBracket(g)
	if y0 >= yc {
		lo = SubcriticalOffset * yc
		if y0 >= hi {
			if b, ok := g.(channel.Bounded); ok {
				hi = b.MaxDepth()
			} else {
				hi = 2 * y0
			}
		}
	} else {
		hi = SupercriticalOffset * yc
	}

	fixed := o
	fixed.Lo, fixed.Hi, fixed.BracketSet = lo, hi, true

	return fixed.bracket(g)
}
