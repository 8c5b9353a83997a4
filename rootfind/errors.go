// SPDX-License-Identifier: MIT

package rootfind

import (
	"errors"
	"fmt"
)

// ERROR HIERARCHY
// ---------------
// ErrNoConvergence is the umbrella sentinel. ErrNotBracketed and
// ErrMaxIterations wrap it so that callers who only care about "no root was
// produced" can match the umbrella, while callers who want to widen a bracket
// can match ErrNotBracketed specifically.
var (
	// ErrNoConvergence indicates that no root was produced.
	ErrNoConvergence = errors.New("rootfind: no convergence")

	// ErrNotBracketed indicates f(lo) and f(hi) share a sign.
	ErrNotBracketed = fmt.Errorf("%w: root not bracketed", ErrNoConvergence)

	// ErrMaxIterations indicates the iteration budget ran out before tolerance was met.
	ErrMaxIterations = fmt.Errorf("%w: iteration budget exhausted", ErrNoConvergence)

	// ErrInvalidBracket indicates lo ≥ hi or a non-finite bracket end.
	ErrInvalidBracket = errors.New("rootfind: invalid bracket")
)

// BracketError reports a failed search together with the attempted bracket.
type BracketError struct {
	Lo, Hi     float64 // attempted bracket
	FLo, FHi   float64 // residuals at the ends (NaN if not evaluated)
	Iterations int     // iterations performed
	Err        error   // one of the sentinels above, or a residual error
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%v in [%g, %g] (f(lo)=%g, f(hi)=%g, iterations=%d)",
		e.Err, e.Lo, e.Hi, e.FLo, e.FHi, e.Iterations)
}

func (e *BracketError) Unwrap() error { return e.Err }
