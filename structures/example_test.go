// SPDX-License-Identifier: MIT

package structures_test

import (
	"fmt"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/structures"
	"github.com/katalvlaran/openchannel/units"
)

// ExampleAnalyzeJump analyses a stilling-basin jump.
func ExampleAnalyzeJump() {
	basin, _ := channel.NewRectangular(6)
	j, err := structures.AnalyzeJump(basin, 50, 50.0/72, units.SI)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s jump, Fr1=%.2f\n", j.Type, j.Froude1)
	// Output:
	// steady jump, Fr1=4.60
}

// ExampleConjugateDepth shows that non-rectangular sections are refused.
func ExampleConjugateDepth() {
	trap, _ := channel.NewTrapezoidal(3, 1)
	_, _, err := structures.ConjugateDepth(trap, 0.5, 3)
	fmt.Println(err)
	// Output:
	// structures: unsupported shape: conjugate depth is exact only for rectangular channels, got *channel.Trapezoidal
}
