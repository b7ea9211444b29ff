package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	t.Run("returns empty string when unset", func(t *testing.T) {
		assert.Equal(t, "", GetRequestID(context.Background()))
	})

	t.Run("round-trips through WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "abc-123")
		assert.Equal(t, "abc-123", GetRequestID(ctx))
	})
}
