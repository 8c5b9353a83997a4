// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/flow"
	"github.com/katalvlaran/openchannel/scenario"
	"github.com/katalvlaran/openchannel/structures"
	"github.com/katalvlaran/openchannel/units"
)

// shapeFlags are the channel flags shared by the solver commands.
type shapeFlags struct {
	shape string
	dims  channel.Dimensions
}

func (s *shapeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.shape, "shape", channel.ShapeRectangular, "channel shape: rectangular, trapezoidal, triangular, circular, parabolic")
	fs.Float64Var(&s.dims.Width, "width", 0, "width (bottom width of a trapezoid)")
	fs.Float64Var(&s.dims.SideSlope, "side-slope", 0, "side slope z, horizontal per unit vertical")
	fs.Float64Var(&s.dims.Diameter, "diameter", 0, "pipe diameter")
	fs.Float64Var(&s.dims.TopWidthFactor, "top-width-factor", 0, "parabolic top-width factor c (T = 2c·√y)")
}

func (s *shapeFlags) channel() scenario.Channel {
	return scenario.Channel{Shape: s.shape, Dimensions: s.dims}
}

func (s *shapeFlags) geometry() (channel.Geometry, error) {
	return channel.New(s.shape, s.dims)
}

// flowFlags are the discharge and friction flags.
type flowFlags struct {
	discharge float64
	manning   float64
	slope     float64
	tolerance float64
}

func (f *flowFlags) register(fs *pflag.FlagSet, friction bool) {
	fs.Float64Var(&f.discharge, "discharge", 0, "discharge Q")
	if friction {
		fs.Float64Var(&f.manning, "manning", 0, "Manning roughness n")
		fs.Float64Var(&f.slope, "slope", 0, "bed slope S0")
	}
}

func registerTolerance(fs *pflag.FlagSet, tol *float64) {
	fs.Float64Var(tol, "tolerance", 0, "root-finding tolerance on depth (default solver tolerance)")
}

// toleranceOption checks tol before it reaches flow.WithTolerance, which
// panics on nonsense.
func toleranceOption(tol float64) ([]flow.Option, error) {
	switch {
	case tol == 0:
		return nil, nil
	case tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0):
		return nil, fmt.Errorf("--tolerance must be a positive number, got %g", tol)
	default:
		return []flow.Option{flow.WithTolerance(tol)}, nil
	}
}

// solveScenario runs one flag-built scenario and renders its scalar results.
func (a *app) solveScenario(cmd *cobra.Command, title string, s scenario.Scenario) error {
	s.Units = a.cfg.Units
	if s.Name == "" {
		s.Name = cmd.Name()
	}

	r, err := s.Solve(cmd.Context())
	if err != nil {
		a.log.Debug("solve failed", zap.Error(err))
		return err
	}
	a.log.Debug("solved", zap.String("kind", string(s.Kind)))

	return a.render(title, r, resultFields(r, s.Units))
}

func newDischargeCmd(a *app) *cobra.Command {
	var (
		sh    shapeFlags
		ff    flowFlags
		depth float64
	)
	cmd := &cobra.Command{
		Use:   "discharge",
		Short: "Manning discharge at a given depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.solveScenario(cmd, "Uniform flow discharge", scenario.Scenario{
				Kind: scenario.KindDischarge, Channel: sh.channel(),
				Depth: depth, Manning: ff.manning, Slope: ff.slope,
			})
		},
	}
	sh.register(cmd.Flags())
	cmd.Flags().Float64Var(&ff.manning, "manning", 0, "Manning roughness n")
	cmd.Flags().Float64Var(&ff.slope, "slope", 0, "bed slope S0")
	cmd.Flags().Float64Var(&depth, "depth", 0, "flow depth y")

	return cmd
}

func newNormalDepthCmd(a *app) *cobra.Command {
	var (
		sh       shapeFlags
		ff       flowFlags
		maxDepth float64
	)
	cmd := &cobra.Command{
		Use:   "normal-depth",
		Short: "Depth of uniform flow for a discharge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.solveScenario(cmd, "Normal depth", scenario.Scenario{
				Kind: scenario.KindNormalDepth, Channel: sh.channel(),
				Discharge: ff.discharge, Manning: ff.manning, Slope: ff.slope,
				MaxDepth: maxDepth, Tolerance: ff.tolerance,
			})
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), true)
	registerTolerance(cmd.Flags(), &ff.tolerance)
	cmd.Flags().Float64Var(&maxDepth, "max-depth", 0, "upper end of the depth bracket")

	return cmd
}

func newCriticalDepthCmd(a *app) *cobra.Command {
	var (
		sh shapeFlags
		ff flowFlags
	)
	cmd := &cobra.Command{
		Use:   "critical-depth",
		Short: "Critical depth and minimum specific energy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.solveScenario(cmd, "Critical flow", scenario.Scenario{
				Kind: scenario.KindCriticalDepth, Channel: sh.channel(),
				Discharge: ff.discharge, Tolerance: ff.tolerance,
			})
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), false)
	registerTolerance(cmd.Flags(), &ff.tolerance)

	return cmd
}

func newAlternateDepthsCmd(a *app) *cobra.Command {
	var (
		sh     shapeFlags
		ff     flowFlags
		energy float64
	)
	cmd := &cobra.Command{
		Use:   "alternate-depths",
		Short: "Supercritical and subcritical depths sharing a specific energy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.solveScenario(cmd, "Alternate depths", scenario.Scenario{
				Kind: scenario.KindAlternateDepths, Channel: sh.channel(),
				Discharge: ff.discharge, Energy: energy, Tolerance: ff.tolerance,
			})
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), false)
	registerTolerance(cmd.Flags(), &ff.tolerance)
	cmd.Flags().Float64Var(&energy, "energy", 0, "specific energy E")

	return cmd
}

func newFroudeCmd(a *app) *cobra.Command {
	var (
		sh    shapeFlags
		ff    flowFlags
		depth float64
	)
	cmd := &cobra.Command{
		Use:   "froude",
		Short: "Froude number and flow regime at a depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := sh.geometry()
			if err != nil {
				return err
			}
			fr, err := flow.Froude(g, depth, ff.discharge, a.cfg.Units)
			if err != nil {
				return err
			}
			regime := flow.ClassifyRegime(fr).String()
			doc := struct {
				Froude float64 `yaml:"froude"`
				Regime string  `yaml:"regime"`
			}{fr, regime}

			return a.render("Froude number", doc, []field{
				{label: "froude number", value: fr},
				{label: "regime", value: regime},
			})
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), false)
	cmd.Flags().Float64Var(&depth, "depth", 0, "flow depth y")

	return cmd
}

func newDirectStepCmd(a *app) *cobra.Command {
	var (
		sh     shapeFlags
		ff     flowFlags
		y1, y2 float64
	)
	cmd := &cobra.Command{
		Use:   "direct-step",
		Short: "Distance between two depths of a gradually varied profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := sh.geometry()
			if err != nil {
				return err
			}
			dx, err := flow.DirectStep(g, y1, y2, ff.discharge, ff.manning, ff.slope, a.cfg.Units)
			if err != nil {
				return err
			}
			doc := struct {
				Y1 float64 `yaml:"y1"`
				Y2 float64 `yaml:"y2"`
				Dx float64 `yaml:"dx"`
			}{y1, y2, dx}

			return a.render("Direct step", doc, []field{
				{"y1", y1, a.cfg.Units.LengthUnit()},
				{"y2", y2, a.cfg.Units.LengthUnit()},
				{"distance", dx, a.cfg.Units.LengthUnit()},
			})
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), true)
	cmd.Flags().Float64Var(&y1, "y1", 0, "depth at the first section")
	cmd.Flags().Float64Var(&y2, "y2", 0, "depth at the second section")

	return cmd
}

func newStandardStepCmd(a *app) *cobra.Command {
	var (
		sh                      shapeFlags
		ff                      flowFlags
		xStart, yStart, xTarget float64
		lo, hi                  float64
	)
	cmd := &cobra.Command{
		Use:   "standard-step",
		Short: "Depth at a target station from a known section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := sh.geometry()
			if err != nil {
				return err
			}
			opts, err := toleranceOption(ff.tolerance)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-depth") || cmd.Flags().Changed("max-depth") {
				opts = append(opts, flow.WithBracket(lo, hi))
			}
			y, err := flow.StandardStep(g, xStart, yStart, xTarget, ff.discharge, ff.manning, ff.slope, a.cfg.Units, opts...)
			if err != nil {
				return err
			}
			doc := struct {
				X     float64 `yaml:"x"`
				Depth float64 `yaml:"depth"`
			}{xTarget, y}

			return a.render("Standard step", doc, []field{
				{"station", xTarget, a.cfg.Units.LengthUnit()},
				{"depth", y, a.cfg.Units.LengthUnit()},
			})
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), true)
	registerTolerance(cmd.Flags(), &ff.tolerance)
	fs := cmd.Flags()
	fs.Float64Var(&xStart, "x-start", 0, "station of the known section")
	fs.Float64Var(&yStart, "y-start", 0, "depth at the known section")
	fs.Float64Var(&xTarget, "x-target", 0, "station to solve")
	fs.Float64Var(&lo, "min-depth", flow.DefaultBracketLo, "lower end of the depth bracket")
	fs.Float64Var(&hi, "max-depth", flow.DefaultBracketHi, "upper end of the depth bracket")

	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	var (
		sh shapeFlags
		ff flowFlags
		ps scenario.ProfileSpec
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Water-surface profile by repeated standard steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := scenario.Scenario{
				Name: cmd.Name(), Kind: scenario.KindProfile, Units: a.cfg.Units,
				Channel: sh.channel(), Discharge: ff.discharge, Manning: ff.manning, Slope: ff.slope,
				Tolerance: ff.tolerance, Profile: &ps,
			}
			r, err := s.Solve(cmd.Context())
			if r.Profile == nil {
				return err
			}
			if rerr := a.renderProfile(r.Profile, s.Units); rerr != nil {
				return rerr
			}

			return err
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), true)
	registerTolerance(cmd.Flags(), &ff.tolerance)
	fs := cmd.Flags()
	fs.Float64Var(&ps.StartX, "start-x", 0, "station of the control section")
	fs.Float64Var(&ps.StartDepth, "start-depth", 0, "depth at the control section")
	fs.Float64Var(&ps.StartCriticalRatio, "start-critical-ratio", 0, "start at this multiple of critical depth instead")
	fs.Float64Var(&ps.Step, "step", 0, "station increment; negative marches upstream")
	fs.Float64Var(&ps.RelTolerance, "rel-tolerance", 0, "stop when |y−yn|/yn is below this (default 0.01)")
	fs.IntVar(&ps.MaxSteps, "max-steps", 0, "step budget (default 1000)")

	return cmd
}

// renderProfile prints a station table in text mode.
func (a *app) renderProfile(p *scenario.ProfileResult, u units.System) error {
	if a.output == outputYAML {
		return a.render("", p, nil)
	}

	length := u.LengthUnit()
	if err := a.render(fmt.Sprintf("Water-surface profile (%s)", p.Class), nil, []field{
		{"normal depth", p.NormalDepth, length},
		{"critical depth", p.CriticalDepth, length},
		{"stations", fmt.Sprint(len(p.Stations)), ""},
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "  %12s %10s %10s\n", "x", "depth", "energy")
	for _, st := range p.Stations {
		fmt.Fprintf(a.out, "  %12.2f %10.4f %10.4f\n", st.X, st.Depth, st.Energy)
	}
	fmt.Fprintf(a.out, "  state: %s\n", stateColor(p.State).Sprint(p.State))

	return nil
}

func newJumpCmd(a *app) *cobra.Command {
	var (
		sh              shapeFlags
		ff              flowFlags
		depth, velocity float64
	)
	cmd := &cobra.Command{
		Use:   "jump",
		Short: "Hydraulic jump in a rectangular channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := scenario.Scenario{
				Name: cmd.Name(), Kind: scenario.KindJump, Units: a.cfg.Units,
				Channel: sh.channel(), Discharge: ff.discharge, Depth: depth,
			}
			if velocity != 0 {
				s.Jump = &scenario.JumpSpec{Velocity: velocity}
			}
			r, err := s.Solve(cmd.Context())
			if err != nil {
				return err
			}
			j := r.Jump
			length := a.cfg.Units.LengthUnit()

			return a.render(fmt.Sprintf("Hydraulic jump: %s", j.Type), j, []field{
				{"upstream depth y1", j.Y1, length},
				{"upstream Froude", j.Froude1, ""},
				{"sequent depth y2", j.Y2, length},
				{"downstream Froude", j.Froude2, ""},
				{"jump height", j.Height, length},
				{"energy loss", j.EnergyLoss, length},
				{"efficiency E2/E1", j.Efficiency, ""},
				{"relative loss", j.RelativeLoss, ""},
			})
		},
	}
	sh.register(cmd.Flags())
	ff.register(cmd.Flags(), false)
	cmd.Flags().Float64Var(&depth, "depth", 0, "upstream depth y1")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "upstream velocity V1, used when --depth is not given")

	return cmd
}

func newWeirCmd(a *app) *cobra.Command {
	var (
		kind          string
		cd, length, h float64
		angleDeg      float64
	)
	cmd := &cobra.Command{
		Use:   "weir",
		Short: "Discharge over a sharp-crested, broad-crested or V-notch weir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var wk structures.WeirKind
			switch kind {
			case "sharp":
				wk = structures.SharpCrested
			case "broad":
				wk = structures.BroadCrested
			case "vnotch":
				wk = structures.VNotch90
			default:
				return fmt.Errorf("unknown weir kind %q (use sharp, broad or vnotch)", kind)
			}
			if cd == 0 {
				var err error
				if cd, err = structures.Coefficient(wk, a.cfg.Units); err != nil {
					return err
				}
			}

			var (
				q   float64
				err error
			)
			if wk == structures.VNotch90 {
				q, err = structures.VNotchWeir(cd, angleDeg*math.Pi/180, h)
			} else {
				q, err = structures.RectangularWeir(cd, length, h)
			}
			if err != nil {
				return err
			}
			doc := struct {
				Kind        string  `yaml:"kind"`
				Coefficient float64 `yaml:"coefficient"`
				Head        float64 `yaml:"head"`
				Discharge   float64 `yaml:"discharge"`
			}{kind, cd, h, q}

			return a.render("Weir discharge", doc, []field{
				{"coefficient", cd, ""},
				{"head", h, a.cfg.Units.LengthUnit()},
				{"discharge", q, a.cfg.Units.DischargeUnit()},
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&kind, "kind", "sharp", "weir kind: sharp, broad or vnotch")
	fs.Float64Var(&cd, "cd", 0, "discharge coefficient (default tabulated for the kind and units)")
	fs.Float64Var(&length, "length", 0, "crest length")
	fs.Float64Var(&h, "head", 0, "head over the crest")
	fs.Float64Var(&angleDeg, "angle", 90, "V-notch angle in degrees")

	return cmd
}
