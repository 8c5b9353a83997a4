// SPDX-License-Identifier: MIT

package scenario

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/openchannel/units"
)

// Status is the outcome of one scenario.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Report is the outcome of one scenario run.
type Report struct {
	RunID   string        `yaml:"run_id"`
	Name    string        `yaml:"name"`
	Kind    Kind          `yaml:"kind"`
	Units   units.System  `yaml:"units"`
	Status  Status        `yaml:"status"`
	Error   string        `yaml:"error,omitempty"`
	Elapsed time.Duration `yaml:"elapsed"`
	Result  Result        `yaml:"result"`

	// Err is the failure behind Error, kept for errors.Is.
	Err error `yaml:"-"`
}

// Failed counts failed reports.
func Failed(reports []Report) int {
	n := 0
	for _, r := range reports {
		if r.Status == StatusFailed {
			n++
		}
	}

	return n
}

// Runner solves scenarios on a bounded pool of goroutines.
//
// Logger may be nil. Workers ≤ 0 means one per CPU.
type Runner struct {
	Logger  *zap.Logger
	Workers int
}

// Run solves every scenario and returns one report per scenario in input
// order. A scenario failure is recorded in its report only. The returned
// error is non-nil only when ctx ends before all scenarios finish; the
// unfinished ones are reported as failed with the context error.
func (r Runner) Run(ctx context.Context, scenarios []Scenario) ([]Report, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	batch := uuid.NewString()
	log = log.With(zap.String("batch_id", batch))
	log.Info("running scenarios", zap.Int("count", len(scenarios)), zap.Int("workers", workers))

	reports := make([]Report, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range scenarios {
		g.Go(func() error {
			reports[i] = runOne(gctx, log, scenarios[i])
			return nil // a failed scenario never cancels its siblings
		})
	}
	_ = g.Wait()

	failed := Failed(reports)
	log.Info("scenarios finished", zap.Int("count", len(reports)), zap.Int("failed", failed))

	if err := ctx.Err(); err != nil {
		return reports, fmt.Errorf("scenario: run interrupted: %w", err)
	}

	return reports, nil
}

func runOne(ctx context.Context, log *zap.Logger, s Scenario) Report {
	rep := Report{
		RunID: uuid.NewString(),
		Name:  s.Name,
		Kind:  s.Kind,
		Units: s.Units,
	}
	log = log.With(
		zap.String("run_id", rep.RunID),
		zap.String("scenario", s.Name),
		zap.String("kind", string(s.Kind)),
	)

	start := time.Now()
	var err error
	if err = ctx.Err(); err == nil {
		rep.Result, err = s.Solve(ctx)
	}
	rep.Elapsed = time.Since(start)

	if err != nil {
		rep.Status, rep.Err, rep.Error = StatusFailed, err, err.Error()
		log.Warn("scenario failed", zap.Error(err), zap.Duration("elapsed", rep.Elapsed))

		return rep
	}

	rep.Status = StatusOK
	log.Debug("scenario solved", zap.Duration("elapsed", rep.Elapsed))

	return rep
}
