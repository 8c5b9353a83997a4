// SPDX-License-Identifier: MIT

// Package flow implements steady open-channel hydraulics on top of the
// channel.Geometry capability: Manning uniform flow, critical flow and
// specific energy, and gradually varied flow (GVF) profile computation.
//
// Every function is a pure function of its explicit arguments. The unit
// system is passed to each call (units.SI or units.English); there is no
// package-level default and no shared mutable state, so calls are safe from
// any number of goroutines.
//
// # Operations
//
//	Uniform flow:
//	  – Discharge:      Q = (k/n)·A·R^(2/3)·√S            closed form
//	  – NormalDepth:    root of Q(y) − Q                    Brent
//	  – Velocity, RatingCurve
//
//	Critical flow:
//	  – Froude:         Fr = (Q/A) / √(g·A/T)               closed form
//	  – CriticalDepth:  root of 1 − Q²T/(gA³)               Brent
//	  – AlternateDepths: roots of E(y) − E on (lo, 0.999·yc) and (1.001·yc, hi)
//	  – MinimumSpecificEnergy, EnergyCurve, ClassifyRegime
//
//	Gradually varied flow:
//	  – SpecificEnergy: E  = y + Q²/(2gA²)
//	  – FrictionSlope:  Sf = n²Q²/(k²A²R^(4/3))
//	  – DirectStep:     Δx = (E2 − E1)/(S0 − Sf_avg)        closed form
//	  – StandardStep:   root of E1 + (S0 − Sf_avg)·Δx − E2  Brent
//	  – March:          repeated StandardStep as a state machine
//	  – ClassifySlope, ClassifyProfile
//
// # Brackets
//
// Iterative operations search a bracket [lo, hi]. The default is
// [DefaultBracketLo, DefaultBracketHi]; for channel.Bounded shapes the
// upper end defaults to BoundedBracketFraction·MaxDepth. WithBracket
// overrides it. A bracket that reaches past MaxDepth is ErrInvalidInput,
// and NormalDepth rejects an upper end above DischargePeakDepth for
// channel.DischargeLimited shapes with ErrNonMonotonicBracket, since the
// discharge curve is no longer monotonic there.
//
// The package never widens a bracket on its own. A failed search returns a
// *SolveError carrying the attempted bracket; errors.Is(err, ErrNoConvergence)
// reports whether the caller may retry with a different one.
//
// # Sign convention
//
// Stations increase downstream. A positive Δx from DirectStep, or a positive
// March step, moves downstream; negative values move upstream. Subcritical
// profiles are normally computed upstream from a downstream control and
// supercritical profiles downstream from an upstream control.
package flow
