// SPDX-License-Identifier: MIT

package flow_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/flow"
	"github.com/katalvlaran/openchannel/rootfind"
	"github.com/katalvlaran/openchannel/units"
)

// shapeCase pairs a geometry with a depth inside its monotonic region and a
// discharge that keeps critical depth inside the default bracket.
type shapeCase struct {
	name string
	g    channel.Geometry
	y    float64
	q    float64
}

func shapeCases() []shapeCase {
	return []shapeCase{
		{"rectangular", &channel.Rectangular{Width: 3}, 1.2, 10},
		{"trapezoidal", &channel.Trapezoidal{BottomWidth: 2, SideSlope: 1.5}, 0.8, 15},
		{"triangular", &channel.Triangular{SideSlope: 1}, 0.5, 2},
		{"circular", &channel.Circular{Diameter: 1}, 0.5, 0.5},
		{"parabolic", &channel.Parabolic{TopWidthFactor: 1}, 0.7, 3},
	}
}

// TestDischargeRectangular checks b=3 m, y=1 m, n=0.015, s=0.001 → Q ≈ 4.479 m³/s.
func TestDischargeRectangular(t *testing.T) {
	q, err := flow.Discharge(&channel.Rectangular{Width: 3}, 1.0, 0.015, 0.001, units.SI)
	require.NoError(t, err)
	assert.InEpsilon(t, 4.479, q, 0.01)
}

// TestDischargeEnglish verifies the k factor scales discharge by 1.486.
func TestDischargeEnglish(t *testing.T) {
	g := &channel.Rectangular{Width: 10}
	si, err := flow.Discharge(g, 2, 0.013, 0.001, units.SI)
	require.NoError(t, err)
	us, err := flow.Discharge(g, 2, 0.013, 0.001, units.English)
	require.NoError(t, err)
	assert.InDelta(t, 1.486, us/si, 1e-12)
}

// TestDischargeMonotonic checks Q increases with depth for every shape
// below its discharge peak.
func TestDischargeMonotonic(t *testing.T) {
	for _, tc := range shapeCases() {
		prev := 0.0
		for y := 0.05; y < 0.9; y += 0.05 {
			q, err := flow.Discharge(tc.g, y, 0.013, 0.001, units.SI)
			require.NoError(t, err, tc.name)
			assert.Greater(t, q, prev, "%s at y=%g", tc.name, y)
			prev = q
		}
	}
}

// TestNormalDepthRoundTrip checks NormalDepth(Discharge(y)) ≈ y for every shape.
func TestNormalDepthRoundTrip(t *testing.T) {
	const n, s = 0.013, 0.001
	for _, tc := range shapeCases() {
		t.Run(tc.name, func(t *testing.T) {
			q, err := flow.Discharge(tc.g, tc.y, n, s, units.SI)
			require.NoError(t, err)
			yn, err := flow.NormalDepth(tc.g, q, n, s, units.SI)
			require.NoError(t, err)
			assert.InDelta(t, tc.y, yn, 1e-7)

			// English units round-trip as well
			q, err = flow.Discharge(tc.g, tc.y, n, s, units.English)
			require.NoError(t, err)
			yn, err = flow.NormalDepth(tc.g, q, n, s, units.English)
			require.NoError(t, err)
			assert.InDelta(t, tc.y, yn, 1e-7)
		})
	}
}

// TestNormalDepthCircularUnreachable covers discharges above what the
// default bracket [0.001, 0.9·D] can carry.
func TestNormalDepthCircularUnreachable(t *testing.T) {
	const n, s = 0.013, 0.001
	pipe := &channel.Circular{Diameter: 1}

	// required depth 0.93·D lies above the default bracket
	q93, err := flow.Discharge(pipe, 0.93, n, s, units.SI)
	require.NoError(t, err)
	// 5% above the value at 0.9·D exceeds the peak of the discharge curve
	q90, err := flow.Discharge(pipe, 0.9, n, s, units.SI)
	require.NoError(t, err)

	for _, q := range []float64{q93, 1.05 * q90} {
		y, err := flow.NormalDepth(pipe, q, n, s, units.SI)
		require.Error(t, err)
		assert.Zero(t, y)
		assert.ErrorIs(t, err, flow.ErrNoConvergence)
		assert.ErrorIs(t, err, rootfind.ErrNotBracketed)

		var se *flow.SolveError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, flow.DefaultBracketLo, se.Lo)
		assert.InDelta(t, 0.9, se.Hi, 1e-15)
	}
}

// TestNormalDepthBracketChecks covers bracket validation.
func TestNormalDepthBracketChecks(t *testing.T) {
	const n, s = 0.013, 0.001
	pipe := &channel.Circular{Diameter: 1}

	_, err := flow.NormalDepth(pipe, 0.5, n, s, units.SI, flow.WithBracket(0.001, 1.0))
	assert.ErrorIs(t, err, flow.ErrNonMonotonicBracket)

	_, err = flow.NormalDepth(pipe, 0.5, n, s, units.SI, flow.WithBracket(0.001, 1.5))
	assert.ErrorIs(t, err, flow.ErrInvalidInput)

	// inside the monotonic region an explicit bracket is fine
	y, err := flow.NormalDepth(pipe, 0.5, n, s, units.SI, flow.WithBracket(0.01, 0.93))
	require.NoError(t, err)
	assert.Greater(t, y, 0.01)

	rect := &channel.Rectangular{Width: 3}
	for _, b := range [][2]float64{{2, 1}, {0, 1}, {-1, 1}, {math.NaN(), 1}} {
		_, err = flow.NormalDepth(rect, 5, n, s, units.SI, flow.WithBracket(b[0], b[1]))
		assert.ErrorIs(t, err, flow.ErrInvalidInput, "bracket %v", b)
	}

	// a bracket that cannot carry Q reports itself
	_, err = flow.NormalDepth(rect, 100, n, s, units.SI, flow.WithBracket(0.001, 0.5))
	var se *flow.SolveError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0.001, se.Lo)
	assert.Equal(t, 0.5, se.Hi)
	var be *rootfind.BracketError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 0.5, be.Hi)
}

// TestNormalDepthTolerance checks WithTolerance and WithMaxIterations are honoured.
func TestNormalDepthTolerance(t *testing.T) {
	rect := &channel.Rectangular{Width: 3}
	q, err := flow.Discharge(rect, 1.0, 0.015, 0.001, units.SI)
	require.NoError(t, err)

	y, err := flow.NormalDepth(rect, q, 0.015, 0.001, units.SI, flow.WithTolerance(1e-3))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, y, 2e-3)

	_, err = flow.NormalDepth(rect, q, 0.015, 0.001, units.SI, flow.WithMaxIterations(1))
	assert.ErrorIs(t, err, rootfind.ErrMaxIterations)
}

// TestUniformInvalidInput checks validation happens before any iteration.
func TestUniformInvalidInput(t *testing.T) {
	rect := &channel.Rectangular{Width: 3}
	cases := map[string]error{}

	_, cases["n=0"] = flow.Discharge(rect, 1, 0, 0.001, units.SI)
	_, cases["slope=0"] = flow.Discharge(rect, 1, 0.015, 0, units.SI)
	_, cases["y=0"] = flow.Discharge(rect, 0, 0.015, 0.001, units.SI)
	_, cases["y=NaN"] = flow.Discharge(rect, math.NaN(), 0.015, 0.001, units.SI)
	_, cases["nil geometry"] = flow.Discharge(nil, 1, 0.015, 0.001, units.SI)
	_, cases["normal q=0"] = flow.NormalDepth(rect, 0, 0.015, 0.001, units.SI)
	_, cases["normal q<0"] = flow.NormalDepth(rect, -5, 0.015, 0.001, units.SI)
	_, cases["normal n<0"] = flow.NormalDepth(rect, 5, -0.015, 0.001, units.SI)
	_, cases["velocity q=0"] = flow.Velocity(rect, 1, 0)
	_, cases["rating slope<0"] = flow.RatingCurve(rect, 0.015, -1, units.SI, []float64{1})

	for name, err := range cases {
		assert.ErrorIs(t, err, flow.ErrInvalidInput, name)
	}

	// pipe depth above the diameter is invalid input and a geometry error
	_, err := flow.Discharge(&channel.Circular{Diameter: 1}, 1.2, 0.013, 0.001, units.SI)
	assert.ErrorIs(t, err, flow.ErrInvalidInput)
	assert.ErrorIs(t, err, channel.ErrInvalidDepth)

	_, err = flow.Discharge(rect, 1, 0.015, 0.001, units.System(9))
	assert.ErrorIs(t, err, units.ErrInvalidUnitSystem)
}

// TestVelocityAndRatingCurve checks V = Q/A and the rating table order.
func TestVelocityAndRatingCurve(t *testing.T) {
	rect := &channel.Rectangular{Width: 3}
	v, err := flow.Velocity(rect, 2, 12)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	depths := []float64{0.5, 1.0, 1.5}
	pts, err := flow.RatingCurve(rect, 0.015, 0.001, units.SI, depths)
	require.NoError(t, err)
	require.Len(t, pts, 3)
	for i, p := range pts {
		assert.Equal(t, depths[i], p.Depth)
		q, err := flow.Discharge(rect, p.Depth, 0.015, 0.001, units.SI)
		require.NoError(t, err)
		assert.InDelta(t, q, p.Discharge, 1e-12)
		assert.InDelta(t, q/(3*p.Depth), p.Velocity, 1e-12)
	}

	_, err = flow.RatingCurve(rect, 0.015, 0.001, units.SI, []float64{1, -1})
	assert.ErrorIs(t, err, flow.ErrInvalidInput)
}

// TestOptionPanics ensures nonsensical option values panic at construction.
func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { flow.WithTolerance(0) })
	assert.Panics(t, func() { flow.WithTolerance(math.Inf(1)) })
	assert.Panics(t, func() { flow.WithMaxIterations(0) })
	assert.NotPanics(t, func() { flow.WithBracket(5, 1) })
}
