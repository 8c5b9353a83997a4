// SPDX-License-Identifier: MIT

package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/openchannel/rootfind"
)

var (
	// ErrInvalidInput indicates a non-positive discharge, roughness, slope or
	// energy, or a depth outside the geometry's domain. It is detected before
	// any iteration starts.
	ErrInvalidInput = errors.New("flow: invalid input")

	// ErrNoConvergence is the root finder's umbrella failure: the bracket
	// holds no sign change or the iteration budget ran out.
	ErrNoConvergence = rootfind.ErrNoConvergence

	// ErrNonMonotonicBracket indicates a NormalDepth bracket that reaches into
	// the region where discharge decreases with depth.
	ErrNonMonotonicBracket = fmt.Errorf("flow: %w", errNonMonotonicBracket)
	errNonMonotonicBracket = errors.New("bracket extends above the discharge peak depth")

	// ErrEnergyBelowMinimum indicates a specific energy below the critical
	// minimum, for which no alternate depths exist.
	ErrEnergyBelowMinimum = fmt.Errorf("flow: energy below minimum specific energy: %w", ErrNoConvergence)
)

// SolveError reports a failed bracketed solve together with the bracket it
// searched. Err is usually a *rootfind.BracketError.
type SolveError struct {
	Op     string
	Lo, Hi float64
	Err    error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("flow: %s in [%g, %g]: %v", e.Op, e.Lo, e.Hi, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }

// Regime is the flow regime implied by a Froude number.
type Regime int

const (
	Subcritical Regime = iota
	Critical
	Supercritical
)

func (r Regime) String() string {
	switch r {
	case Subcritical:
		return "subcritical"
	case Critical:
		return "critical"
	case Supercritical:
		return "supercritical"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// SlopeClass classifies a positive bed slope by comparing normal and
// critical depth.
type SlopeClass int

const (
	Mild SlopeClass = iota
	CriticalSlope
	Steep
)

func (s SlopeClass) String() string {
	switch s {
	case Mild:
		return "mild"
	case CriticalSlope:
		return "critical"
	case Steep:
		return "steep"
	default:
		return fmt.Sprintf("SlopeClass(%d)", int(s))
	}
}

// ProfileClass is the GVF curve family a depth belongs to.
type ProfileClass string

const (
	ProfileM1 ProfileClass = "M1"
	ProfileM2 ProfileClass = "M2"
	ProfileM3 ProfileClass = "M3"
	ProfileS1 ProfileClass = "S1"
	ProfileS2 ProfileClass = "S2"
	ProfileS3 ProfileClass = "S3"
	ProfileC1 ProfileClass = "C1"
	ProfileC3 ProfileClass = "C3"

	// ProfileUniform marks a depth at normal depth, where no GVF curve applies.
	ProfileUniform ProfileClass = "uniform"
)

// RatingPoint is one row of a stage-discharge table.
type RatingPoint struct {
	Depth     float64 `yaml:"depth"`
	Discharge float64 `yaml:"discharge"`
	Velocity  float64 `yaml:"velocity"`
}

// EnergyPoint is one row of a specific-energy curve.
type EnergyPoint struct {
	Depth  float64 `yaml:"depth"`
	Energy float64 `yaml:"energy"`
	Froude float64 `yaml:"froude"`
}
