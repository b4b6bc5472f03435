package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

var ErrTimeout = errors.New("decomposition timed out")

type Options struct {
	// Timeout bounds one attempt. Zero means no deadline beyond the caller's context.
	Timeout time.Duration
	// MaxConcurrent caps simultaneous attempts. Zero means unbounded.
	MaxConcurrent int
	Now           func() time.Time
}

// Outcome carries the plan handed back to the caller. Err is nil when the
// runner succeeded and otherwise explains why Plan is the fallback.
type Outcome struct {
	Plan *Plan
	Err  error
}

// Orchestrator never fails: every runner error is replaced by the fallback plan.
type Orchestrator struct {
	runner  Runner
	timeout time.Duration
	sem     *semaphore.Weighted
	now     func() time.Time
}

func NewOrchestrator(runner Runner, opts Options) *Orchestrator {
	o := &Orchestrator{
		runner:  runner,
		timeout: opts.Timeout,
		now:     opts.Now,
	}
	if o.now == nil {
		o.now = time.Now
	}
	if opts.MaxConcurrent > 0 {
		o.sem = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}
	return o
}

func (o *Orchestrator) Decompose(ctx context.Context, req Request) Outcome {
	plan, err := o.attempt(ctx, req)
	if err != nil {
		slog.Warn("goal decomposition failed, using fallback plan",
			"error", err, "user_id", req.UserID, "timeframe", req.Timeframe)
		return Outcome{Plan: Fallback(req, o.now()), Err: err}
	}

	if plan.UserID == "" {
		plan.UserID = req.UserID
	}
	if plan.ProcessedAt == "" {
		plan.ProcessedAt = o.now().UTC().Format(milestoneLayout)
	}
	plan.normalize()

	return Outcome{Plan: plan}
}

// attempt bounds the wait for a slot and the run itself by one timeout.
func (o *Orchestrator) attempt(ctx context.Context, req Request) (*Plan, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	if o.sem != nil {
		if err := o.sem.Acquire(ctx, 1); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w waiting for a decomposer slot after %s", ErrTimeout, o.timeout)
			}
			return nil, fmt.Errorf("waiting for decomposer slot: %w", err)
		}
		defer o.sem.Release(1)
	}

	plan, err := o.runner.Decompose(ctx, req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, o.timeout)
		}
		return nil, err
	}

	return plan, nil
}
