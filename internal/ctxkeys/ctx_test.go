package ctxkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, UserID(ctx))

	ctx = WithUserID(ctx, "u-1")
	assert.Equal(t, "u-1", UserID(ctx))
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "r-1")
	assert.Equal(t, "r-1", RequestID(ctx))
	assert.Equal(t, "u-1", UserID(ctx))
}
