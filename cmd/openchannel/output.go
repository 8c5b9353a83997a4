// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/openchannel/scenario"
	"github.com/katalvlaran/openchannel/units"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	failColor   = color.New(color.FgRed, color.Bold)
)

// field is one labelled value of a text report. Value is a float64 or a string.
type field struct {
	label string
	value any
	unit  string
}

// render writes doc as YAML or fields as an aligned text block under title.
func (a *app) render(title string, doc any, fields []field) error {
	if a.output == outputYAML {
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	headerColor.Fprintln(a.out, title)
	for _, f := range fields {
		switch v := f.value.(type) {
		case float64:
			fmt.Fprintf(a.out, "  %-22s %s %s\n", f.label, formatFloat(v), f.unit)
		default:
			fmt.Fprintf(a.out, "  %-22s %v\n", f.label, v)
		}
	}

	return nil
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "-"
	case v != 0 && (math.Abs(v) < 1e-3 || math.Abs(v) >= 1e6):
		return fmt.Sprintf("%.4e", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

// resultFields lists the non-empty scalar values of a scenario result.
func resultFields(r scenario.Result, u units.System) []field {
	length, q, v := u.LengthUnit(), u.DischargeUnit(), u.VelocityUnit()
	candidates := []field{
		{"discharge", r.Discharge, q},
		{"normal depth", r.NormalDepth, length},
		{"critical depth", r.CriticalDepth, length},
		{"minimum energy", r.MinimumEnergy, length},
		{"supercritical depth", r.SupercriticalDepth, length},
		{"subcritical depth", r.SubcriticalDepth, length},
		{"velocity", r.Velocity, v},
		{"froude number", r.Froude, ""},
	}

	fields := make([]field, 0, len(candidates)+1)
	for _, f := range candidates {
		if f.value.(float64) != 0 {
			fields = append(fields, f)
		}
	}
	if r.Regime != "" {
		fields = append(fields, field{label: "regime", value: r.Regime})
	}

	return fields
}

// stateColor picks the color of a march or scenario status word.
func stateColor(status string) *color.Color {
	switch status {
	case "converged to normal depth", string(scenario.StatusOK):
		return okColor
	case "marching":
		return warnColor
	default:
		return failColor
	}
}
