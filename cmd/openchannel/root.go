// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/openchannel/internal/config"
	"github.com/katalvlaran/openchannel/internal/logging"
	"github.com/katalvlaran/openchannel/units"
)

// Output formats.
const (
	outputText = "text"
	outputYAML = "yaml"
)

// app carries the resolved global settings of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	unitsFlag string
	logLevel  string
	logFile   string
	envFile   string
	output    string
	noColor   bool

	cfg config.Config
	log *zap.Logger
}

// newRootCmd builds the command tree writing results to out and logs and
// errors to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "openchannel",
		Short:         "Open-channel hydraulics: uniform, critical and gradually varied flow",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.unitsFlag, "units", "", "unit system: SI or English (default from OPENCHANNEL_UNITS, else SI)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFile, "log-file", "", "also write JSON logs to this rotated file")
	pf.StringVar(&a.envFile, "env-file", "", "read settings from this .env file (default .env if present)")
	pf.StringVarP(&a.output, "output", "o", outputText, "output format: text or yaml")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored text output")

	root.AddCommand(
		newDischargeCmd(a),
		newNormalDepthCmd(a),
		newCriticalDepthCmd(a),
		newAlternateDepthsCmd(a),
		newFroudeCmd(a),
		newDirectStepCmd(a),
		newStandardStepCmd(a),
		newProfileCmd(a),
		newJumpCmd(a),
		newWeirCmd(a),
		newRunCmd(a),
	)

	return root
}

// setup resolves configuration and builds the logger. Flags win over the
// environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("units") {
		if cfg.Units, err = units.Parse(a.unitsFlag); err != nil {
			return err
		}
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = logging.ParseLevel(a.logLevel); err != nil {
			return err
		}
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}

	a.output = strings.ToLower(strings.TrimSpace(a.output))
	if a.output != outputText && a.output != outputYAML {
		return fmt.Errorf("unknown output format %q (use text or yaml)", a.output)
	}
	if a.noColor {
		color.NoColor = true
	}

	lc := cfg.Logging()
	lc.Console = a.errOut
	log, err := logging.New(lc)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.With(zap.String("command", cmd.Name()))
	a.log.Debug("configuration resolved",
		zap.Stringer("units", cfg.Units),
		zap.Int("workers", cfg.Workers),
		zap.String("output", a.output))

	return nil
}
