// SPDX-License-Identifier: MIT

// Package rootfind is the single bracketed root-finding primitive shared by
// every iterative solver in openchannel (normal depth, critical depth,
// alternate depths and standard-step depth).
//
// # Algorithm
//
// Brent implements the Brent–Dekker method: it keeps a bracket [a, b] with
// f(a)·f(b) < 0 and, at each iteration, tries inverse quadratic
// interpolation (or the secant step when only two points are distinct),
// falling back to bisection whenever the interpolated step would leave the
// bracket or shrink too slowly. Convergence is therefore guaranteed for any
// continuous f with a sign change, at worst at the bisection rate.
//
// # Contract
//
//  1. Both bracket ends are evaluated first.
//  2. If the residuals have the same sign the call fails with ErrNotBracketed
//     without iterating.
//  3. Otherwise iteration stops once the bracket half-width falls below
//     xtol + rtol·|x| or the residual is exactly zero.
//  4. Exhausting maxIter fails with ErrMaxIterations.
//
// ErrNotBracketed and ErrMaxIterations both satisfy
// errors.Is(err, ErrNoConvergence). Every failure is a *BracketError that
// carries the attempted bracket, so callers can decide whether to widen it.
// The package never retries with a different bracket: only the caller knows
// a physically sensible search range.
//
// Complexity: O(maxIter) residual evaluations, O(1) memory.
//
//	res, err := rootfind.Brent(func(x float64) (float64, error) {
//		return x*x - 2, nil
//	}, 0, 2, rootfind.WithXTol(1e-12))
//	// res.Root ≈ 1.41421356
package rootfind
