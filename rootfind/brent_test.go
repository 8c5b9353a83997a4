// SPDX-License-Identifier: MIT

package rootfind_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/openchannel/rootfind"
)

func pure(f func(float64) float64) rootfind.Func {
	return func(x float64) (float64, error) { return f(x), nil }
}

// TestBrentSmoothFunctions checks convergence on well-behaved residuals.
func TestBrentSmoothFunctions(t *testing.T) {
	cases := []struct {
		name   string
		f      func(float64) float64
		lo, hi float64
		want   float64
	}{
		{"sqrt2", func(x float64) float64 { return x*x - 2 }, 0, 2, math.Sqrt2},
		{"cos fixed point", func(x float64) float64 { return math.Cos(x) - x }, 0, 1, 0.7390851332151607},
		{"cubic", func(x float64) float64 { return x*x*x - x - 2 }, 1, 2, 1.5213797068045676},
		{"decreasing", func(x float64) float64 { return 3 - x }, -10, 10, 3},
		{"exp", func(x float64) float64 { return math.Exp(x) - 10 }, 0, 5, math.Log(10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := rootfind.Brent(pure(tc.f), tc.lo, tc.hi)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, res.Root, 1e-9)
			assert.LessOrEqual(t, res.Iterations, rootfind.DefaultMaxIter)
			assert.GreaterOrEqual(t, res.Evaluations, 2)
		})
	}
}

// TestBrentDiscontinuous checks the bisection fallback on a step function.
func TestBrentDiscontinuous(t *testing.T) {
	step := pure(func(x float64) float64 {
		if x < 0.3 {
			return -1
		}
		return 1
	})
	res, err := rootfind.Brent(step, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, res.Root, 1e-9)
}

// TestBrentExactEnd returns an end whose residual is exactly zero without iterating.
func TestBrentExactEnd(t *testing.T) {
	res, err := rootfind.Brent(pure(func(x float64) float64 { return x - 2 }), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Root)
	assert.Equal(t, 0, res.Iterations)
	assert.Equal(t, 2, res.Evaluations)

	res, err = rootfind.Brent(pure(func(x float64) float64 { return x }), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Root)
}

// TestBrentNotBracketed ensures same-sign ends fail before iterating.
func TestBrentNotBracketed(t *testing.T) {
	calls := 0
	f := func(x float64) (float64, error) {
		calls++
		return x*x + 1, nil
	}
	_, err := rootfind.Brent(f, -1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, rootfind.ErrNotBracketed)
	assert.ErrorIs(t, err, rootfind.ErrNoConvergence)
	assert.Equal(t, 2, calls)

	var be *rootfind.BracketError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, -1.0, be.Lo)
	assert.Equal(t, 1.0, be.Hi)
	assert.Equal(t, 2.0, be.FLo)
	assert.Equal(t, 2.0, be.FHi)
}

// TestBrentInvalidBracket covers reversed, empty and non-finite brackets.
func TestBrentInvalidBracket(t *testing.T) {
	f := pure(func(x float64) float64 { return x })
	for _, b := range [][2]float64{{1, 0}, {1, 1}, {math.NaN(), 1}, {0, math.Inf(1)}} {
		_, err := rootfind.Brent(f, b[0], b[1])
		assert.ErrorIs(t, err, rootfind.ErrInvalidBracket, "bracket %v", b)
		assert.NotErrorIs(t, err, rootfind.ErrNoConvergence, "bracket %v", b)
	}
}

// TestBrentMaxIterations exhausts a one-iteration budget.
func TestBrentMaxIterations(t *testing.T) {
	f := pure(func(x float64) float64 { return math.Cos(x) - x })
	_, err := rootfind.Brent(f, 0, 1, rootfind.WithMaxIter(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, rootfind.ErrMaxIterations)
	assert.ErrorIs(t, err, rootfind.ErrNoConvergence)

	var be *rootfind.BracketError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 1, be.Iterations)
}

// TestBrentResidualError propagates the residual's own error.
func TestBrentResidualError(t *testing.T) {
	boom := errors.New("boom")
	f := func(x float64) (float64, error) {
		if x > 0.5 && x < 1 {
			return 0, boom
		}
		return x - 0.7, nil
	}
	_, err := rootfind.Brent(f, 0, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, rootfind.ErrNoConvergence)

	_, err = rootfind.Brent(func(float64) (float64, error) { return 0, boom }, 0, 1)
	assert.ErrorIs(t, err, boom)
}

// TestBrentTolerance checks that a looser xtol needs fewer evaluations.
func TestBrentTolerance(t *testing.T) {
	f := pure(func(x float64) float64 { return math.Cos(x) - x })
	tight, err := rootfind.Brent(f, 0, 1, rootfind.WithXTol(1e-14))
	require.NoError(t, err)
	loose, err := rootfind.Brent(f, 0, 1, rootfind.WithXTol(1e-3))
	require.NoError(t, err)
	assert.LessOrEqual(t, loose.Evaluations, tight.Evaluations)
	assert.InDelta(t, 0.7390851332151607, loose.Root, 1e-3)
}

// TestOptionPanics ensures invalid option values panic at construction.
func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { rootfind.WithXTol(0) })
	assert.Panics(t, func() { rootfind.WithXTol(math.NaN()) })
	assert.Panics(t, func() { rootfind.WithRTol(0) })
	assert.Panics(t, func() { rootfind.WithMaxIter(0) })
	assert.NotPanics(t, func() { rootfind.WithRTol(1e-8) })

	o := rootfind.DefaultOptions()
	assert.Equal(t, rootfind.DefaultXTol, o.XTol)
	assert.Equal(t, rootfind.DefaultMaxIter, o.MaxIter)
}
