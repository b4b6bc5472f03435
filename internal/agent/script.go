package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrNoInterpreter = errors.New("no usable interpreter found")

// maxStderr bounds how much decomposer stderr ends up in an error message.
const maxStderr = 512

// ScriptRunner runs a decomposer script as a subprocess. It is invoked as
//
//	<interpreter> <script> <goal> <timeframe> <userId> <cloudLogging>
//
// and must print one JSON object on stdout; stderr is diagnostic only.
type ScriptRunner struct {
	Script       string
	Interpreters []string
}

func NewScriptRunner(script string, interpreters []string) *ScriptRunner {
	return &ScriptRunner{Script: script, Interpreters: interpreters}
}

// Decompose tries each interpreter in order until one starts. Once a process
// has started its outcome is final: a non-zero exit or bad output is not
// retried with another interpreter.
func (r *ScriptRunner) Decompose(ctx context.Context, req Request) (*Plan, error) {
	args := []string{r.Script, req.Goal, req.Timeframe, req.UserID, strconv.FormatBool(req.CloudLogging)}
	env := append(os.Environ(), "PYTHONPATH="+filepath.Dir(r.Script))

	var startErrs []error
	for _, interpreter := range r.Interpreters {
		var stdout, stderr bytes.Buffer

		cmd := exec.CommandContext(ctx, interpreter, args...)
		cmd.Env = env
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		slog.Debug("starting decomposer", "interpreter", interpreter, "script", r.Script)

		if err := cmd.Start(); err != nil {
			slog.Debug("interpreter unavailable", "interpreter", interpreter, "error", err)
			startErrs = append(startErrs, fmt.Errorf("%s: %w", interpreter, err))
			continue
		}

		err := cmd.Wait()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			return nil, fmt.Errorf("decomposer %s failed: %w: %s", interpreter, err, tail(stderr.String()))
		}

		return decodePlan(stdout.Bytes())
	}

	if len(startErrs) == 0 {
		return nil, ErrNoInterpreter
	}
	return nil, fmt.Errorf("%w: %w", ErrNoInterpreter, errors.Join(startErrs...))
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = "..." + s[len(s)-maxStderr:]
	}
	return s
}
