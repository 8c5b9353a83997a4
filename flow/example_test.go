// SPDX-License-Identifier: MIT

package flow_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/flow"
	"github.com/katalvlaran/openchannel/units"
)

// ExampleDischarge computes uniform-flow capacity of a 3 m rectangular channel.
func ExampleDischarge() {
	rect, _ := channel.NewRectangular(3.0)
	q, err := flow.Discharge(rect, 1.0, 0.015, 0.001, units.SI)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Q = %.3f %s\n", q, units.SI.DischargeUnit())
	// Output:
	// Q = 4.499 m³/s
}

// ExampleCriticalDepth solves the critical depth of a rectangular channel.
func ExampleCriticalDepth() {
	rect, _ := channel.NewRectangular(3.0)
	yc, err := flow.CriticalDepth(rect, 10.0, units.SI)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("yc = %.3f m\n", yc)
	// Output:
	// yc = 1.042 m
}

// ExampleNormalDepth shows the bracket failure for a pipe asked to carry
// more than its monotonic region allows.
func ExampleNormalDepth() {
	pipe, _ := channel.NewCircular(1.0)
	_, err := flow.NormalDepth(pipe, 5.0, 0.013, 0.001, units.SI)
	fmt.Println(errors.Is(err, flow.ErrNoConvergence))
	// Output:
	// true
}

// ExampleMarch traces the backwater curve upstream of a dam.
func ExampleMarch() {
	river, _ := channel.NewRectangular(50)
	p, err := flow.March(context.Background(), river, flow.MarchInput{
		Start:        flow.Station{X: 0, Depth: 8},
		Step:         -500,
		Discharge:    200,
		Manning:      0.03,
		Slope:        0.0004,
		Units:        units.SI,
		RelTolerance: 0.01,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(p.Class, p.State)
	// Output:
	// M1 converged to normal depth
}
