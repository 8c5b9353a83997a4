// SPDX-License-Identifier: MIT

package rootfind

import (
	"fmt"
	"math"
)

// Func is a residual function. A non-nil error aborts the search.
type Func func(x float64) (float64, error)

// Result describes a converged search.
type Result struct {
	Root        float64 // x with |f(x)| minimal among the last iterates
	Residual    float64 // f(Root)
	Iterations  int     // iterations performed
	Evaluations int     // residual evaluations, including the two ends
}

// Brent finds a root of f in [lo, hi].
//
// Steps:
//  1. Validate the bracket (finite, lo < hi) → ErrInvalidBracket.
//  2. Evaluate f(lo), f(hi); return an end whose residual is exactly zero.
//  3. Same sign at both ends → ErrNotBracketed.
//  4. Iterate: keep the best point xcur and the contrapoint xblk with
//     opposite sign; try inverse quadratic interpolation (secant when only
//     two points are distinct); accept the step only if it stays well inside
//     the bracket and shrinks fast enough, otherwise bisect.
//  5. Stop when |xblk − xcur|/2 < (xtol + rtol·|xcur|)/2 or f(xcur) == 0.
//
// Errors: *BracketError wrapping ErrInvalidBracket, ErrNotBracketed,
// ErrMaxIterations, or the residual's own error.
//
// Complexity: O(MaxIter) evaluations of f; O(1) memory.
func Brent(f Func, lo, hi float64, opts ...Option) (Result, error) {
	o := gatherOptions(opts)

	// Stage 1: bracket sanity.
	if !isFinite(lo) || !isFinite(hi) || lo >= hi {
		return Result{}, &BracketError{Lo: lo, Hi: hi, FLo: math.NaN(), FHi: math.NaN(),
			Err: fmt.Errorf("%w: need finite lo < hi", ErrInvalidBracket)}
	}

	// Stage 2: evaluate both ends.
	var (
		xpre, xcur = lo, hi
		fpre, fcur float64
		err        error
		evals      int
	)
	if fpre, err = f(xpre); err != nil {
		return Result{}, &BracketError{Lo: lo, Hi: hi, FLo: math.NaN(), FHi: math.NaN(), Err: err}
	}
	evals++
	if fcur, err = f(xcur); err != nil {
		return Result{}, &BracketError{Lo: lo, Hi: hi, FLo: fpre, FHi: math.NaN(), Err: err}
	}
	evals++
	if fpre == 0 {
		return Result{Root: xpre, Residual: 0, Evaluations: evals}, nil
	}
	if fcur == 0 {
		return Result{Root: xcur, Residual: 0, Evaluations: evals}, nil
	}

	// Stage 3: sign change required.
	if math.Signbit(fpre) == math.Signbit(fcur) {
		return Result{}, &BracketError{Lo: lo, Hi: hi, FLo: fpre, FHi: fcur, Err: ErrNotBracketed}
	}
	flo, fhi := fpre, fcur

	// Stage 4: Brent–Dekker iteration.
	var (
		xblk, fblk float64 // contrapoint: f(xblk) has the opposite sign of f(xcur)
		spre, scur float64 // previous and current step
		sbis, stry float64
		dpre, dblk float64
		delta      float64
		iter       int
	)
	for iter = 0; iter < o.MaxIter; iter++ {
		// refresh the contrapoint whenever the last step crossed the root
		if fpre != 0 && fcur != 0 && math.Signbit(fpre) != math.Signbit(fcur) {
			xblk, fblk = xpre, fpre
			spre = xcur - xpre
			scur = spre
		}
		// keep xcur as the point with the smallest residual
		if math.Abs(fblk) < math.Abs(fcur) {
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta = (o.XTol + o.RTol*math.Abs(xcur)) / 2
		sbis = (xblk - xcur) / 2
		if fcur == 0 || math.Abs(sbis) < delta {
			return Result{Root: xcur, Residual: fcur, Iterations: iter, Evaluations: evals}, nil
		}

		if math.Abs(spre) > delta && math.Abs(fcur) < math.Abs(fpre) {
			if xpre == xblk {
				// secant
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				// inverse quadratic interpolation
				dpre = (fpre - fcur) / (xpre - xcur)
				dblk = (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}
			if 2*math.Abs(stry) < math.Min(math.Abs(spre), 3*math.Abs(sbis)-delta) {
				spre, scur = scur, stry // accept interpolation
			} else {
				spre, scur = sbis, sbis // bisect
			}
		} else {
			spre, scur = sbis, sbis
		}

		xpre, fpre = xcur, fcur
		if math.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}

		if fcur, err = f(xcur); err != nil {
			return Result{}, &BracketError{Lo: lo, Hi: hi, FLo: flo, FHi: fhi, Iterations: iter + 1, Err: err}
		}
		evals++
	}

	return Result{}, &BracketError{Lo: lo, Hi: hi, FLo: flo, FHi: fhi, Iterations: iter, Err: ErrMaxIterations}
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
