// SPDX-License-Identifier: MIT

package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/flow"
	"github.com/katalvlaran/openchannel/structures"
)

// ErrNoDesign is returned when no width in the search range keeps the normal
// depth within the limit.
var ErrNoDesign = errors.New("scenario: no width satisfies the depth limit")

// Result holds whatever a scenario computed. Unused fields stay zero and are
// omitted from YAML.
type Result struct {
	Discharge          float64            `yaml:"discharge,omitempty"`
	NormalDepth        float64            `yaml:"normal_depth,omitempty"`
	CriticalDepth      float64            `yaml:"critical_depth,omitempty"`
	MinimumEnergy      float64            `yaml:"minimum_energy,omitempty"`
	SupercriticalDepth float64            `yaml:"supercritical_depth,omitempty"`
	SubcriticalDepth   float64            `yaml:"subcritical_depth,omitempty"`
	Velocity           float64            `yaml:"velocity,omitempty"`
	Froude             float64            `yaml:"froude,omitempty"`
	Regime             string             `yaml:"regime,omitempty"`
	Rating             []flow.RatingPoint `yaml:"rating,omitempty"`
	Profile            *ProfileResult     `yaml:"profile,omitempty"`
	Jump               *structures.Jump   `yaml:"jump,omitempty"`
	Design             *DesignResult      `yaml:"design,omitempty"`
}

// ProfileResult is a computed water-surface profile.
type ProfileResult struct {
	State         string            `yaml:"state"`
	Class         flow.ProfileClass `yaml:"class"`
	NormalDepth   float64           `yaml:"normal_depth"`
	CriticalDepth float64           `yaml:"critical_depth"`
	Stations      []flow.Station    `yaml:"stations"`
}

// DesignTrial is one width tried by the design search.
type DesignTrial struct {
	Width       float64 `yaml:"width"`
	NormalDepth float64 `yaml:"normal_depth"`
	OK          bool    `yaml:"ok"`
}

// DesignResult is the smallest adequate width and its flow at design discharge.
type DesignResult struct {
	Width       float64       `yaml:"width"`
	NormalDepth float64       `yaml:"normal_depth"`
	Discharge   float64       `yaml:"discharge"` // capacity at NormalDepth
	Velocity    float64       `yaml:"velocity"`
	Froude      float64       `yaml:"froude"`
	Trials      []DesignTrial `yaml:"trials"`
}

// Solve validates and computes s. The profile march and the design search
// honour ctx; the closed-form kinds ignore it.
func (s Scenario) Solve(ctx context.Context) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	if s.Kind == KindDesign {
		return s.design(ctx)
	}

	g, err := s.Channel.Geometry()
	if err != nil {
		return Result{}, err
	}
	opts := s.options()

	switch s.Kind {
	case KindNormalDepth:
		return s.normalDepth(g, opts)
	case KindCriticalDepth:
		yc, emin, err := flow.MinimumSpecificEnergy(g, s.Discharge, s.Units, opts...)
		if err != nil {
			return Result{}, err
		}
		return Result{CriticalDepth: yc, MinimumEnergy: emin}, nil
	case KindAlternateDepths:
		ySuper, ySub, err := flow.AlternateDepths(g, s.Energy, s.Discharge, s.Units, opts...)
		if err != nil {
			return Result{}, err
		}
		return Result{SupercriticalDepth: ySuper, SubcriticalDepth: ySub}, nil
	case KindDischarge:
		return s.discharge(g)
	case KindRating:
		pts, err := flow.RatingCurve(g, s.Manning, s.Slope, s.Units, s.Depths)
		if err != nil {
			return Result{}, err
		}
		return Result{Rating: pts}, nil
	case KindProfile:
		return s.profile(ctx, g)
	case KindJump:
		return s.jump(g)
	default:
		return Result{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidScenario, s.Kind)
	}
}

func (s Scenario) options() []flow.Option {
	var opts []flow.Option
	if s.Tolerance > 0 {
		opts = append(opts, flow.WithTolerance(s.Tolerance))
	}
	if s.MaxDepth > 0 {
		opts = append(opts, flow.WithBracket(flow.DefaultBracketLo, s.MaxDepth))
	}

	return opts
}

// flowState fills velocity, Froude number and regime at depth y. A full pipe
// has no Froude number and leaves those fields empty.
func (s Scenario) flowState(g channel.Geometry, y float64, r *Result) error {
	v, err := flow.Velocity(g, y, s.Discharge)
	if err != nil {
		return err
	}
	r.Velocity = v

	fr, err := flow.Froude(g, y, s.Discharge, s.Units)
	switch {
	case errors.Is(err, channel.ErrNoFreeSurface):
		return nil
	case err != nil:
		return err
	}
	r.Froude = fr
	r.Regime = flow.ClassifyRegime(fr).String()

	return nil
}

func (s Scenario) normalDepth(g channel.Geometry, opts []flow.Option) (Result, error) {
	yn, err := flow.NormalDepth(g, s.Discharge, s.Manning, s.Slope, s.Units, opts...)
	if err != nil {
		return Result{}, err
	}
	r := Result{NormalDepth: yn}
	// the critical-depth bracket is independent of the normal-depth cap
	if r.CriticalDepth, err = flow.CriticalDepth(g, s.Discharge, s.Units); err != nil {
		return Result{}, err
	}
	if err = s.flowState(g, yn, &r); err != nil {
		return Result{}, err
	}

	return r, nil
}

func (s Scenario) discharge(g channel.Geometry) (Result, error) {
	q, err := flow.Discharge(g, s.Depth, s.Manning, s.Slope, s.Units)
	if err != nil {
		return Result{}, err
	}
	r := Result{Discharge: q}
	s.Discharge = q
	if err = s.flowState(g, s.Depth, &r); err != nil {
		return Result{}, err
	}

	return r, nil
}

func (s Scenario) profile(ctx context.Context, g channel.Geometry) (Result, error) {
	ps := s.Profile
	in := flow.MarchInput{
		Start:        flow.Station{X: ps.StartX, Depth: ps.StartDepth},
		Step:         ps.Step,
		Discharge:    s.Discharge,
		Manning:      s.Manning,
		Slope:        s.Slope,
		Units:        s.Units,
		RelTolerance: ps.RelTolerance,
		MaxSteps:     ps.MaxSteps,
	}
	if in.Start.Depth == 0 {
		yc, err := flow.CriticalDepth(g, s.Discharge, s.Units)
		if err != nil {
			return Result{}, err
		}
		in.CriticalDepth = yc
		in.Start.Depth = ps.StartCriticalRatio * yc
	}

	// the march picks its own step brackets from the start regime
	var opts []flow.Option
	if s.Tolerance > 0 {
		opts = append(opts, flow.WithTolerance(s.Tolerance))
	}
	p, err := flow.March(ctx, g, in, opts...)
	res := Result{
		NormalDepth:   p.NormalDepth,
		CriticalDepth: p.CriticalDepth,
		Profile: &ProfileResult{
			State:         p.State.String(),
			Class:         p.Class,
			NormalDepth:   p.NormalDepth,
			CriticalDepth: p.CriticalDepth,
			Stations:      p.Stations,
		},
	}

	return res, err
}

func (s Scenario) jump(g channel.Geometry) (Result, error) {
	y1 := s.Depth
	if y1 == 0 {
		rect, ok := g.(*channel.Rectangular)
		if !ok {
			return Result{}, fmt.Errorf("%w: entering velocity needs a rectangular channel", structures.ErrUnsupportedShape)
		}
		y1 = s.Discharge / (rect.Width * s.Jump.Velocity)
	}

	j, err := structures.AnalyzeJump(g, s.Discharge, y1, s.Units)
	if err != nil {
		return Result{}, err
	}

	return Result{Jump: &j}, nil
}

// design tries widths start, start+step, ... up to the limit and stops at
// the first whose normal depth is within Design.MaxDepth.
func (s Scenario) design(ctx context.Context) (Result, error) {
	start, step, limit := s.Design.widths()
	opts := s.options()
	dr := &DesignResult{}

	for i := 0; ; i++ {
		b := start + float64(i)*step
		if b > limit+1e-9 {
			break
		}
		if err := ctx.Err(); err != nil {
			return Result{Design: dr}, err
		}

		dims := s.Channel.Dimensions
		dims.Width = b
		g, err := channel.New(s.Channel.Shape, dims)
		if err != nil {
			return Result{}, err
		}
		yn, err := flow.NormalDepth(g, s.Discharge, s.Manning, s.Slope, s.Units, opts...)
		if err != nil {
			return Result{Design: dr}, fmt.Errorf("scenario: width %g: %w", b, err)
		}
		ok := yn <= s.Design.MaxDepth
		dr.Trials = append(dr.Trials, DesignTrial{Width: b, NormalDepth: yn, OK: ok})
		if !ok {
			continue
		}

		q, err := flow.Discharge(g, yn, s.Manning, s.Slope, s.Units)
		if err != nil {
			return Result{Design: dr}, err
		}
		state := Result{}
		if err = s.flowState(g, yn, &state); err != nil {
			return Result{Design: dr}, err
		}
		dr.Width, dr.NormalDepth, dr.Discharge = b, yn, q
		dr.Velocity, dr.Froude = state.Velocity, state.Froude

		return Result{NormalDepth: yn, Design: dr}, nil
	}

	return Result{Design: dr}, fmt.Errorf("%w: widths %g..%g, depth limit %g",
		ErrNoDesign, start, limit, s.Design.MaxDepth)
}
