package agent

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(ctx context.Context, req Request) (*Plan, error)

func (f runnerFunc) Decompose(ctx context.Context, req Request) (*Plan, error) {
	return f(ctx, req)
}

var fixedNow = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

func TestOrchestrator_PassesThroughSuccess(t *testing.T) {
	o := NewOrchestrator(runnerFunc(func(ctx context.Context, req Request) (*Plan, error) {
		return &Plan{Success: true, PlanID: "p1", Tasks: []Task{{Title: "Buy a guitar"}}}, nil
	}), Options{Now: fixedNow})

	out := o.Decompose(context.Background(), Request{Goal: "Learn guitar", Timeframe: "1-month", UserID: "u-1"})

	require.NoError(t, out.Err)
	assert.False(t, out.Plan.Fallback)
	assert.Equal(t, "p1", out.Plan.PlanID)
	assert.Equal(t, "u-1", out.Plan.UserID)
	assert.Equal(t, "2025-06-01T09:00:00.000Z", out.Plan.ProcessedAt)
	assert.Equal(t, []string{}, out.Plan.Tasks[0].Tags)
	assert.NotNil(t, out.Plan.PotentialObstacles)
}

func TestOrchestrator_FailureYieldsFallback(t *testing.T) {
	boom := errors.New("boom")
	o := NewOrchestrator(runnerFunc(func(ctx context.Context, req Request) (*Plan, error) {
		return nil, boom
	}), Options{Now: fixedNow})

	req := Request{Goal: "Learn guitar", Timeframe: "3-months", UserID: "u-1"}
	out := o.Decompose(context.Background(), req)

	assert.ErrorIs(t, out.Err, boom)
	assert.Equal(t, Fallback(req, fixedNow()), out.Plan)
}

func TestOrchestrator_Timeout(t *testing.T) {
	o := NewOrchestrator(runnerFunc(func(ctx context.Context, req Request) (*Plan, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), Options{Timeout: 20 * time.Millisecond, Now: fixedNow})

	out := o.Decompose(context.Background(), Request{Goal: "g", Timeframe: "1-week"})

	assert.ErrorIs(t, out.Err, ErrTimeout)
	assert.True(t, out.Plan.Fallback)
	assert.Equal(t, 7, out.Plan.Timeline.TotalDurationDays)
}

func TestOrchestrator_CapsConcurrency(t *testing.T) {
	var active, peak int32
	o := NewOrchestrator(runnerFunc(func(ctx context.Context, req Request) (*Plan, error) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return &Plan{Success: true}, nil
	}), Options{MaxConcurrent: 2, Now: fixedNow})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := o.Decompose(context.Background(), Request{Goal: "g", Timeframe: "t"})
			assert.NoError(t, out.Err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestOrchestrator_QueuedCallersShareOneTimeout(t *testing.T) {
	const timeout = 100 * time.Millisecond
	o := NewOrchestrator(runnerFunc(func(ctx context.Context, req Request) (*Plan, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), Options{Timeout: timeout, MaxConcurrent: 1, Now: fixedNow})

	const callers = 8
	latencies := make([]time.Duration, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			out := o.Decompose(context.Background(), Request{Goal: "g", Timeframe: "1-week"})
			latencies[i] = time.Since(start)
			assert.ErrorIs(t, out.Err, ErrTimeout)
			assert.True(t, out.Plan.Fallback)
		}()
	}
	wg.Wait()

	// a stuck decomposer must not stack timeouts for queued callers
	for _, d := range latencies {
		assert.Less(t, d, 3*timeout)
	}
}

func TestScriptRunner_NoInterpreterFallsBack(t *testing.T) {
	runner := NewScriptRunner("scripts/portia_agent.py", []string{"dreamtask-missing-python3", "dreamtask-missing-python"})
	o := NewOrchestrator(runner, Options{Timeout: time.Second, Now: fixedNow})

	out := o.Decompose(context.Background(), Request{Goal: "Learn guitar", Timeframe: "3-months", UserID: "u-1"})

	assert.ErrorIs(t, out.Err, ErrNoInterpreter)
	assert.ErrorContains(t, out.Err, "dreamtask-missing-python")
	assert.True(t, out.Plan.Fallback)
	assert.Len(t, out.Plan.Tasks, 5)
	assert.Equal(t, 90, out.Plan.Timeline.TotalDurationDays)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "decompose.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestScriptRunner_SkipsMissingInterpreterAndParsesOutput(t *testing.T) {
	script := writeScript(t, `echo "[DEBUG] goal=$1 timeframe=$2" >&2
echo "loading {"
printf '{"success": true, "user_id": "%s", "tasks": [{"title": "%s"}], "cloud": "%s"}\n' "$3" "$1" "$4"
`)
	runner := NewScriptRunner(script, []string{"dreamtask-missing-python3", "sh"})

	plan, err := runner.Decompose(context.Background(), Request{Goal: "Learn guitar", Timeframe: "3-months", UserID: "u-1"})

	require.NoError(t, err)
	assert.Equal(t, "u-1", plan.UserID)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "Learn guitar", plan.Tasks[0].Title)
}

func TestScriptRunner_NonZeroExitIsNotRetried(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "runs")
	script := writeScript(t, `echo run >> "`+marker+`"
echo "traceback: no module named portia" >&2
exit 3
`)
	runner := NewScriptRunner(script, []string{"sh", "sh"})

	_, err := runner.Decompose(context.Background(), Request{Goal: "g", Timeframe: "t", UserID: "u"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "no module named portia")

	runs, readErr := os.ReadFile(marker)
	require.NoError(t, readErr)
	assert.Equal(t, 1, strings.Count(string(runs), "run"))
}

func TestScriptRunner_ReportedFailure(t *testing.T) {
	script := writeScript(t, `echo '{"success": false, "error": "missing GOOGLE_API_KEY", "fallback": true}'`)
	runner := NewScriptRunner(script, []string{"sh"})

	_, err := runner.Decompose(context.Background(), Request{Goal: "g", Timeframe: "t"})

	assert.ErrorIs(t, err, ErrReported)
}
