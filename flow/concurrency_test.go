// SPDX-License-Identifier: MIT

package flow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/flow"
	"github.com/katalvlaran/openchannel/units"
)

type solved struct {
	yn, yc, q float64
}

// solveAll runs the uniform and critical solvers on one unit system.
func solveAll(u units.System) (solved, error) {
	g := &channel.Circular{Diameter: 4}
	yn, err := flow.NormalDepth(g, 30, 0.013, 0.005, u)
	if err != nil {
		return solved{}, err
	}
	yc, err := flow.CriticalDepth(g, 30, u)
	if err != nil {
		return solved{}, err
	}
	q, err := flow.Discharge(g, 2, 0.013, 0.005, u)
	if err != nil {
		return solved{}, err
	}

	return solved{yn: yn, yc: yc, q: q}, nil
}

// TestSolversConcurrentUnits checks calls on different unit systems running
// at the same time give the same answers as serial calls.
func TestSolversConcurrentUnits(t *testing.T) {
	systems := []units.System{units.SI, units.English}
	baseline := make(map[units.System]solved, len(systems))
	for _, u := range systems {
		r, err := solveAll(u)
		require.NoError(t, err)
		baseline[u] = r
	}
	require.NotEqual(t, baseline[units.SI].yn, baseline[units.English].yn)

	const calls = 64
	got := make([]solved, calls)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(8)
	for i := 0; i < calls; i++ {
		g.Go(func() error {
			r, err := solveAll(systems[i%len(systems)])
			got[i] = r
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, r := range got {
		assert.Equal(t, baseline[systems[i%len(systems)]], r, "call %d", i)
	}
}
