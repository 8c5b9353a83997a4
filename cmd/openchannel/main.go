// SPDX-License-Identifier: MIT

// Command openchannel solves open-channel flow problems from flags or from
// YAML scenario files.
//
//	openchannel normal-depth --shape trapezoidal --width 2 --side-slope 1.5 \
//	    --discharge 15 --manning 0.013 --slope 0.001
//	openchannel run examples/backwater.yaml --output yaml
//
// Settings come from flags, then OPENCHANNEL_* environment variables, then
// an optional .env file.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
