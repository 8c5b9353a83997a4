// SPDX-License-Identifier: MIT

package structures

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/flow"
	"github.com/katalvlaran/openchannel/units"
)

var (
	// ErrInvalidInput indicates a non-positive depth, discharge or weir
	// parameter, or an upstream Froude number that cannot produce a jump.
	ErrInvalidInput = errors.New("structures: invalid input")

	// ErrUnsupportedShape indicates an operation that is defined only for a
	// specific cross-section.
	ErrUnsupportedShape = errors.New("structures: unsupported shape")
)

// JumpType is the USBR classification of a hydraulic jump by upstream Froude number.
type JumpType int

const (
	Undular     JumpType = iota // 1   < Fr1 ≤ 1.7
	Weak                        // 1.7 < Fr1 ≤ 2.5
	Oscillating                 // 2.5 < Fr1 ≤ 4.5
	Steady                      // 4.5 < Fr1 ≤ 9
	Strong                      // Fr1 > 9
)

func (j JumpType) String() string {
	switch j {
	case Undular:
		return "undular"
	case Weak:
		return "weak"
	case Oscillating:
		return "oscillating"
	case Steady:
		return "steady"
	case Strong:
		return "strong"
	default:
		return fmt.Sprintf("JumpType(%d)", int(j))
	}
}

// MarshalText implements encoding.TextMarshaler for reports.
func (j JumpType) MarshalText() ([]byte, error) { return []byte(j.String()), nil }

// ClassifyJump returns the jump type for an upstream Froude number fr1 > 1.
func ClassifyJump(fr1 float64) (JumpType, error) {
	if math.IsNaN(fr1) || fr1 <= 1 {
		return 0, fmt.Errorf("%w: upstream Froude number must exceed 1, got %g", ErrInvalidInput, fr1)
	}

	switch {
	case fr1 <= 1.7:
		return Undular, nil
	case fr1 <= 2.5:
		return Weak, nil
	case fr1 <= 4.5:
		return Oscillating, nil
	case fr1 <= 9:
		return Steady, nil
	default:
		return Strong, nil
	}
}

// ConjugateDepth returns the sequent depth y2 and the head loss ΔE of a
// hydraulic jump with upstream depth y1 and Froude number fr1.
// g must be a *channel.Rectangular.
func ConjugateDepth(g channel.Geometry, y1, fr1 float64) (y2, dE float64, err error) {
	if _, ok := g.(*channel.Rectangular); !ok {
		return 0, 0, fmt.Errorf("%w: conjugate depth is exact only for rectangular channels, got %T", ErrUnsupportedShape, g)
	}
	if math.IsNaN(y1) || math.IsInf(y1, 0) || y1 <= 0 {
		return 0, 0, fmt.Errorf("%w: upstream depth must be positive, got %g", ErrInvalidInput, y1)
	}
	if math.IsInf(fr1, 0) || math.IsNaN(fr1) || fr1 <= 1 {
		return 0, 0, fmt.Errorf("%w: upstream Froude number must exceed 1 for a jump, got %g", ErrInvalidInput, fr1)
	}

	y2 = y1 / 2 * (math.Sqrt(1+8*fr1*fr1) - 1)
	dE = math.Pow(y2-y1, 3) / (4 * y1 * y2)

	return y2, dE, nil
}

// Jump is a complete hydraulic-jump analysis.
type Jump struct {
	Y1           float64  `yaml:"y1"`
	Y2           float64  `yaml:"y2"`
	Froude1      float64  `yaml:"froude1"`
	Froude2      float64  `yaml:"froude2"`
	Type         JumpType `yaml:"type"`
	E1           float64  `yaml:"e1"`
	E2           float64  `yaml:"e2"`
	EnergyLoss   float64  `yaml:"energy_loss"`
	Efficiency   float64  `yaml:"efficiency"`    // E2/E1
	RelativeLoss float64  `yaml:"relative_loss"` // ΔE/E1
	Height       float64  `yaml:"height"`        // y2 − y1
}

// AnalyzeJump analyses the jump formed by discharge q entering a rectangular
// channel at supercritical depth y1.
func AnalyzeJump(g channel.Geometry, q, y1 float64, u units.System) (Jump, error) {
	if _, ok := g.(*channel.Rectangular); !ok {
		return Jump{}, fmt.Errorf("%w: hydraulic jump analysis requires a rectangular channel, got %T", ErrUnsupportedShape, g)
	}

	fr1, err := flow.Froude(g, y1, q, u)
	if err != nil {
		return Jump{}, fmt.Errorf("structures: upstream Froude number: %w", err)
	}
	kind, err := ClassifyJump(fr1)
	if err != nil {
		return Jump{}, err
	}
	y2, dE, err := ConjugateDepth(g, y1, fr1)
	if err != nil {
		return Jump{}, err
	}

	e1, err := flow.SpecificEnergy(g, y1, q, u)
	if err != nil {
		return Jump{}, err
	}
	e2, err := flow.SpecificEnergy(g, y2, q, u)
	if err != nil {
		return Jump{}, err
	}
	fr2, err := flow.Froude(g, y2, q, u)
	if err != nil {
		return Jump{}, err
	}

	return Jump{
		Y1:           y1,
		Y2:           y2,
		Froude1:      fr1,
		Froude2:      fr2,
		Type:         kind,
		E1:           e1,
		E2:           e2,
		EnergyLoss:   dE,
		Efficiency:   e2 / e1,
		RelativeLoss: dE / e1,
		Height:       y2 - y1,
	}, nil
}
