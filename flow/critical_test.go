// SPDX-License-Identifier: MIT

package flow_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/flow"
	"github.com/katalvlaran/openchannel/units"
)

// CriticalSuite exercises the critical-flow solver on every shape.
type CriticalSuite struct {
	suite.Suite
	cases []shapeCase
}

func (s *CriticalSuite) SetupTest() { s.cases = shapeCases() }

func TestCriticalSuite(t *testing.T) {
	suite.Run(t, new(CriticalSuite))
}

// TestFroudeAtCriticalDepth checks Fr(yc) ≈ 1 within 0.1%.
func (s *CriticalSuite) TestFroudeAtCriticalDepth() {
	for _, tc := range s.cases {
		for _, u := range []units.System{units.SI, units.English} {
			yc, err := flow.CriticalDepth(tc.g, tc.q, u)
			s.Require().NoError(err, "%s %s", tc.name, u)
			fr, err := flow.Froude(tc.g, yc, tc.q, u)
			s.Require().NoError(err, tc.name)
			s.InEpsilon(1.0, fr, 1e-3, "%s %s", tc.name, u)
			s.Equal(flow.Critical, flow.ClassifyRegime(fr))
		}
	}
}

// TestRectangularClosedForm checks yc = (Q²/(g·b²))^(1/3) for b=3, Q=10.
func (s *CriticalSuite) TestRectangularClosedForm() {
	const b, q = 3.0, 10.0
	g := units.MustLookup(units.SI).G
	want := math.Cbrt(q * q / (g * b * b))

	yc, err := flow.CriticalDepth(&channel.Rectangular{Width: b}, q, units.SI)
	s.Require().NoError(err)
	s.InDelta(want, yc, 1e-9)
}

// TestAlternateDepths checks ySuper < yc < ySub and E(ySuper) ≈ E(ySub) ≈ E.
func (s *CriticalSuite) TestAlternateDepths() {
	for _, tc := range s.cases {
		yc, err := flow.CriticalDepth(tc.g, tc.q, units.SI)
		s.Require().NoError(err, tc.name)
		e, err := flow.SpecificEnergy(tc.g, 1.5*yc, tc.q, units.SI)
		s.Require().NoError(err, tc.name)

		ySuper, ySub, err := flow.AlternateDepths(tc.g, e, tc.q, units.SI)
		s.Require().NoError(err, tc.name)
		s.Less(ySuper, yc, tc.name)
		s.Greater(ySub, yc, tc.name)
		s.InDelta(1.5*yc, ySub, 1e-7, tc.name)

		eSuper, err := flow.SpecificEnergy(tc.g, ySuper, tc.q, units.SI)
		s.Require().NoError(err)
		eSub, err := flow.SpecificEnergy(tc.g, ySub, tc.q, units.SI)
		s.Require().NoError(err)
		s.InEpsilon(e, eSuper, 1e-6, tc.name)
		s.InEpsilon(e, eSub, 1e-6, tc.name)

		frSuper, err := flow.Froude(tc.g, ySuper, tc.q, units.SI)
		s.Require().NoError(err)
		s.Equal(flow.Supercritical, flow.ClassifyRegime(frSuper), tc.name)
	}
}

// TestEnergyBelowMinimum checks the supercritical branch reports the energy deficit.
func (s *CriticalSuite) TestEnergyBelowMinimum() {
	rect := &channel.Rectangular{Width: 3}
	yc, emin, err := flow.MinimumSpecificEnergy(rect, 10, units.SI)
	s.Require().NoError(err)
	// rectangular channels have Emin = 1.5·yc
	s.InDelta(1.5*yc, emin, 1e-8)

	_, _, err = flow.AlternateDepths(rect, 0.9*emin, 10, units.SI)
	s.Require().Error(err)
	s.ErrorIs(err, flow.ErrEnergyBelowMinimum)
	s.ErrorIs(err, flow.ErrNoConvergence)

	var se *flow.SolveError
	s.Require().True(errors.As(err, &se))
	s.Equal(flow.DefaultBracketLo, se.Lo)
	s.InDelta(flow.SupercriticalOffset*yc, se.Hi, 1e-12)
}

// TestSubcriticalBranchBracket checks an upper end below the subcritical
// root fails on that branch only.
func (s *CriticalSuite) TestSubcriticalBranchBracket() {
	rect := &channel.Rectangular{Width: 3}
	yc, err := flow.CriticalDepth(rect, 10, units.SI)
	s.Require().NoError(err)
	e, err := flow.SpecificEnergy(rect, 3*yc, 10, units.SI)
	s.Require().NoError(err)

	_, _, err = flow.AlternateDepths(rect, e, 10, units.SI, flow.WithBracket(0.001, 2*yc))
	s.Require().Error(err)
	s.ErrorIs(err, flow.ErrNoConvergence)
	s.NotErrorIs(err, flow.ErrEnergyBelowMinimum)
	var se *flow.SolveError
	s.Require().True(errors.As(err, &se))
	s.Equal("alternate depths (subcritical)", se.Op)
	s.InDelta(2*yc, se.Hi, 1e-12)
}

// TestFroudeRegimes checks shallow fast flow is supercritical and deep slow flow subcritical.
func TestFroudeRegimes(t *testing.T) {
	rect := &channel.Rectangular{Width: 3}
	fr, err := flow.Froude(rect, 2.0, 5.0, units.SI)
	require.NoError(t, err)
	assert.Less(t, fr, 1.0)
	assert.Equal(t, flow.Subcritical, flow.ClassifyRegime(fr))

	fr, err = flow.Froude(rect, 0.3, 10.0, units.SI)
	require.NoError(t, err)
	assert.Greater(t, fr, 1.0)
	assert.Equal(t, flow.Supercritical, flow.ClassifyRegime(fr))

	// rectangular Fr = V/√(g·y)
	assert.InDelta(t, (10.0/0.9)/math.Sqrt(9.81*0.3), fr, 1e-12)
}

// TestFroudeFullPipe checks the full-pipe depth has no free surface.
func TestFroudeFullPipe(t *testing.T) {
	pipe := &channel.Circular{Diameter: 1}
	_, err := flow.Froude(pipe, 1.0, 0.5, units.SI)
	assert.ErrorIs(t, err, channel.ErrNoFreeSurface)

	// energy is still defined there
	e, err := flow.SpecificEnergy(pipe, 1.0, 0.5, units.SI)
	require.NoError(t, err)
	assert.Greater(t, e, 1.0)
}

// TestCriticalInvalidInput checks validation before iteration.
func TestCriticalInvalidInput(t *testing.T) {
	rect := &channel.Rectangular{Width: 3}
	errs := []error{}
	_, err := flow.Froude(rect, 1, 0, units.SI)
	errs = append(errs, err)
	_, err = flow.Froude(rect, 1, -5, units.SI)
	errs = append(errs, err)
	_, err = flow.CriticalDepth(rect, 0, units.SI)
	errs = append(errs, err)
	_, _, err = flow.AlternateDepths(rect, 0, 10, units.SI)
	errs = append(errs, err)
	_, _, err = flow.AlternateDepths(rect, -1, 10, units.SI)
	errs = append(errs, err)
	_, _, err = flow.AlternateDepths(rect, 2, 0, units.SI)
	errs = append(errs, err)
	_, err = flow.EnergyCurve(rect, 0, units.SI, []float64{1})
	errs = append(errs, err)

	for i, err := range errs {
		assert.ErrorIs(t, err, flow.ErrInvalidInput, "case %d", i)
	}

	_, err = flow.CriticalDepth(rect, 10, units.System(-1))
	assert.ErrorIs(t, err, units.ErrInvalidUnitSystem)
}

// TestEnergyCurve checks the specific-energy table and its minimum.
func TestEnergyCurve(t *testing.T) {
	rect := &channel.Rectangular{Width: 3}
	yc, emin, err := flow.MinimumSpecificEnergy(rect, 10, units.SI)
	require.NoError(t, err)

	depths := []float64{0.5 * yc, yc, 2 * yc}
	pts, err := flow.EnergyCurve(rect, 10, units.SI, depths)
	require.NoError(t, err)
	require.Len(t, pts, 3)
	assert.InDelta(t, emin, pts[1].Energy, 1e-12)
	assert.Greater(t, pts[0].Energy, emin)
	assert.Greater(t, pts[2].Energy, emin)
	assert.Greater(t, pts[0].Froude, 1.0)
	assert.InDelta(t, 1.0, pts[1].Froude, 1e-6)
	assert.Less(t, pts[2].Froude, 1.0)

	// full pipe: Froude is undefined and reported as NaN
	pts, err = flow.EnergyCurve(&channel.Circular{Diameter: 1}, 0.5, units.SI, []float64{0.5, 1.0})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(pts[0].Froude))
	assert.True(t, math.IsNaN(pts[1].Froude))
}

// TestClassifyRegime covers the critical band edges.
func TestClassifyRegime(t *testing.T) {
	assert.Equal(t, flow.Critical, flow.ClassifyRegime(1))
	assert.Equal(t, flow.Critical, flow.ClassifyRegime(1+flow.CriticalBand/2))
	assert.Equal(t, flow.Subcritical, flow.ClassifyRegime(0.5))
	assert.Equal(t, flow.Supercritical, flow.ClassifyRegime(2))
	assert.Equal(t, "supercritical", flow.Supercritical.String())
}
