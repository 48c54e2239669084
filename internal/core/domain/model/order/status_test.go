package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "Pending"},
		{order.Confirmed, "Confirmed"},
		{order.Preparing, "Preparing"},
		{order.Ready, "Ready"},
		{order.OutForDelivery, "OutForDelivery"},
		{order.Completed, "Completed"},
		{order.Cancelled, "Cancelled"},
		{order.Rejected, "Rejected"},
		{order.Unknown, "Unknown"},
		{order.Status(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.status.String())
	}
}

func TestStatusValidate(t *testing.T) {
	t.Run("should accept defined statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready,
			order.OutForDelivery, order.Completed, order.Cancelled, order.Rejected,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatusTransitionTo(t *testing.T) {
	t.Run("should allow legal transitions", func(t *testing.T) {
		legal := []struct{ from, to order.Status }{
			{order.Pending, order.Confirmed},
			{order.Pending, order.Preparing},
			{order.Pending, order.Rejected},
			{order.Confirmed, order.Preparing},
			{order.Preparing, order.Ready},
			{order.Ready, order.OutForDelivery},
			{order.OutForDelivery, order.Completed},
		}

		for _, tr := range legal {
			got, err := tr.from.TransitionTo(tr.to)
			require.NoError(t, err, "%s -> %s", tr.from, tr.to)
			assert.Equal(t, tr.to, got)
		}
	})

	t.Run("should allow cancellation from every non-terminal status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready, order.OutForDelivery,
		} {
			got, err := s.TransitionTo(order.Cancelled)
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, got)
		}
	})

	t.Run("should reject illegal transitions", func(t *testing.T) {
		illegal := []struct{ from, to order.Status }{
			{order.Pending, order.Completed},
			{order.Pending, order.OutForDelivery},
			{order.Preparing, order.Rejected},
			{order.Ready, order.Completed},
			{order.Completed, order.Cancelled},
			{order.Cancelled, order.Pending},
			{order.Rejected, order.Preparing},
		}

		for _, tr := range illegal {
			_, err := tr.from.TransitionTo(tr.to)
			require.Error(t, err, "%s -> %s", tr.from, tr.to)
			require.ErrorIs(t, err, errs.ErrIllegalTransition)
		}
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Rejected.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
}
