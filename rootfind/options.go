// SPDX-License-Identifier: MIT

package rootfind

import "math"

// Defaults. DefaultRTol is four machine epsilons, the smallest relative
// tolerance that is still meaningful in float64.
const (
	DefaultXTol    = 1e-10
	DefaultRTol    = 4 * 2.220446049250313e-16
	DefaultMaxIter = 100
)

const (
	panicXTolInvalid    = "rootfind: WithXTol: xtol must be finite and > 0"
	panicRTolInvalid    = "rootfind: WithRTol: rtol must be finite and >= DefaultRTol"
	panicMaxIterInvalid = "rootfind: WithMaxIter: maxIter must be > 0"
)

// Option configures a Brent call. Constructors panic on nonsensical values
// (programmer error); Brent itself never panics.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	XTol    float64
	RTol    float64
	MaxIter int
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{XTol: DefaultXTol, RTol: DefaultRTol, MaxIter: DefaultMaxIter}
}

// WithXTol sets the absolute tolerance on the root.
func WithXTol(xtol float64) Option {
	if math.IsNaN(xtol) || math.IsInf(xtol, 0) || xtol <= 0 {
		panic(panicXTolInvalid)
	}

	return func(o *Options) { o.XTol = xtol }
}

// WithRTol sets the relative tolerance on the root.
func WithRTol(rtol float64) Option {
	if math.IsNaN(rtol) || math.IsInf(rtol, 0) || rtol < DefaultRTol {
		panic(panicRTolInvalid)
	}

	return func(o *Options) { o.RTol = rtol }
}

// WithMaxIter caps the number of iterations.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.MaxIter = n }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		if apply != nil {
			apply(&o)
		}
	}

	return o
}
