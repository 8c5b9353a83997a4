// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/openchannel/scenario"
)

// errScenariosFailed makes the exit status non-zero when any scenario failed.
var errScenariosFailed = errors.New("one or more scenarios failed")

func newRunCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "run <file.yaml>...",
		Short: "Solve every scenario in one or more YAML files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 0 {
				return fmt.Errorf("--workers must not be negative, got %d", workers)
			}
			if workers == 0 {
				workers = a.cfg.Workers
			}

			var all []scenario.Scenario
			for _, path := range args {
				f, err := scenario.Load(path)
				if err != nil {
					return err
				}
				a.log.Info("scenario file loaded", zap.String("path", path), zap.Int("scenarios", len(f.Scenarios)))
				all = append(all, f.Scenarios...)
			}

			r := scenario.Runner{Logger: a.log, Workers: workers}
			reports, err := r.Run(cmd.Context(), all)
			if rerr := a.renderReports(reports); rerr != nil {
				return rerr
			}
			if err != nil {
				return err
			}
			if n := scenario.Failed(reports); n > 0 {
				return fmt.Errorf("%w: %d of %d", errScenariosFailed, n, len(reports))
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel scenarios (default OPENCHANNEL_WORKERS or CPU count)")

	return cmd
}

// renderReports prints one block per report, or the whole list as YAML.
func (a *app) renderReports(reports []scenario.Report) error {
	if a.output == outputYAML {
		doc := struct {
			Reports []scenario.Report `yaml:"reports"`
		}{reports}

		return a.render("", doc, nil)
	}

	for _, rep := range reports {
		u := rep.Units
		title := fmt.Sprintf("%s [%s] %s", rep.Name, rep.Kind, stateColor(string(rep.Status)).Sprint(rep.Status))
		fields := resultFields(rep.Result, u)
		if rep.Error != "" {
			fields = append(fields, field{label: "error", value: rep.Error})
		}
		if err := a.render(title, nil, fields); err != nil {
			return err
		}

		res := rep.Result
		switch {
		case res.Profile != nil:
			if err := a.renderProfile(res.Profile, u); err != nil {
				return err
			}
		case res.Jump != nil:
			j := res.Jump
			fmt.Fprintf(a.out, "  %-22s %s (Fr1 = %.2f)\n", "jump", j.Type, j.Froude1)
			fmt.Fprintf(a.out, "  %-22s %s %s\n", "sequent depth y2", formatFloat(j.Y2), u.LengthUnit())
			fmt.Fprintf(a.out, "  %-22s %s %s\n", "energy loss", formatFloat(j.EnergyLoss), u.LengthUnit())
		case res.Design != nil && res.Design.Width > 0:
			fmt.Fprintf(a.out, "  %-22s %s %s\n", "minimum width", formatFloat(res.Design.Width), u.LengthUnit())
			fmt.Fprintf(a.out, "  %-22s %d\n", "widths tried", len(res.Design.Trials))
		case len(res.Rating) > 0:
			fmt.Fprintf(a.out, "  %10s %12s %10s\n", "depth", "discharge", "velocity")
			for _, p := range res.Rating {
				fmt.Fprintf(a.out, "  %10.4f %12.4f %10.4f\n", p.Depth, p.Discharge, p.Velocity)
			}
		}
	}

	return nil
}
