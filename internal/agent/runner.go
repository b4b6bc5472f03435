package agent

import (
	"context"
)

// Runner performs one decomposition attempt.
type Runner interface {
	Decompose(ctx context.Context, req Request) (*Plan, error)
}
