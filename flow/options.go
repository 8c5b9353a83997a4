// SPDX-License-Identifier: MIT

package flow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/rootfind"
)

// Defaults shared by the iterative operations.
const (
	DefaultBracketLo = 0.001
	DefaultBracketHi = 100.0

	// BoundedBracketFraction scales MaxDepth into the default upper end for
	// channel.Bounded shapes.
	BoundedBracketFraction = 0.9

	DefaultTolerance     = 1e-10
	DefaultStepTolerance = 1e-6
	DefaultMaxIterations = rootfind.DefaultMaxIter
)

const (
	panicToleranceInvalid     = "flow: WithTolerance: tol must be finite and > 0"
	panicMaxIterationsInvalid = "flow: WithMaxIterations: n must be > 0"
)

// Option configures an iterative operation.
type Option func(*Options)

// Options is the resolved configuration of an iterative operation.
//
// Lo, Hi     – search bracket; used only when BracketSet is true.
// Tolerance  – absolute depth tolerance; 0 selects the operation default.
// MaxIterations – root-finder iteration budget.
type Options struct {
	Lo, Hi        float64
	BracketSet    bool
	Tolerance     float64
	MaxIterations int
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{MaxIterations: DefaultMaxIterations}
}

// WithBracket sets the search bracket. Bracket values usually come from user
// data, so they are validated by the operation (ErrInvalidInput), not here.
func WithBracket(lo, hi float64) Option {
	return func(o *Options) {
		o.Lo, o.Hi = lo, hi
		o.BracketSet = true
	}
}

// WithTolerance sets the absolute tolerance on the solved depth.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxIterations caps root-finder iterations.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterationsInvalid)
	}

	return func(o *Options) { o.MaxIterations = n }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		if apply != nil {
			apply(&o)
		}
	}

	return o
}

// tolerance returns the configured tolerance or def.
func (o Options) tolerance(def float64) float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}

	return def
}

// bracket resolves the search interval for g.
func (o Options) bracket(g channel.Geometry) (lo, hi float64, err error) {
	lo, hi = o.Lo, o.Hi
	if !o.BracketSet {
		lo, hi = defaultBracket(g)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo <= 0 || lo >= hi {
		return 0, 0, fmt.Errorf("%w: bracket [%g, %g] must satisfy 0 < lo < hi", ErrInvalidInput, lo, hi)
	}
	if b, ok := g.(channel.Bounded); ok && hi > b.MaxDepth() {
		return 0, 0, fmt.Errorf("%w: bracket upper end %g exceeds maximum depth %g", ErrInvalidInput, hi, b.MaxDepth())
	}

	return lo, hi, nil
}

// defaultBracket is [DefaultBracketLo, DefaultBracketHi], with the upper end
// pulled below MaxDepth for bounded shapes.
func defaultBracket(g channel.Geometry) (lo, hi float64) {
	lo, hi = DefaultBracketLo, DefaultBracketHi
	if b, ok := g.(channel.Bounded); ok {
		hi = BoundedBracketFraction * b.MaxDepth()
		if lo >= hi {
			lo = hi * 1e-3
		}
	}

	return lo, hi
}

// solve runs Brent on f over [lo, hi] and wraps any failure in *SolveError.
func (o Options) solve(op string, f rootfind.Func, lo, hi, tol float64) (float64, error) {
	res, err := rootfind.Brent(f, lo, hi, rootfind.WithXTol(tol), rootfind.WithMaxIter(o.MaxIterations))
	if err != nil {
		return 0, &SolveError{Op: op, Lo: lo, Hi: hi, Err: err}
	}

	return res.Root, nil
}
