package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsTransient(t *testing.T) {
	t.Run("should report marked errors as transient", func(t *testing.T) {
		err := MarkTransient(errors.New("rate limited"))
		assert.True(t, IsTransient(err))
	})

	t.Run("should survive wrapping", func(t *testing.T) {
		err := fmt.Errorf("sending: %w", MarkTransient(errors.New("boom")))
		assert.True(t, IsTransient(err))
	})

	t.Run("should treat deadline exceeded as transient", func(t *testing.T) {
		assert.True(t, IsTransient(context.DeadlineExceeded))
	})

	t.Run("should treat plain errors as terminal", func(t *testing.T) {
		assert.False(t, IsTransient(errors.New("invalid number")))
	})

	t.Run("should treat nil as not transient", func(t *testing.T) {
		assert.False(t, IsTransient(nil))
		assert.Nil(t, MarkTransient(nil))
	})
}
