package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "UNKNOWN"},
		{order.Pending, "PENDING"},
		{order.Acknowledged, "ACKNOWLEDGED"},
		{order.PaymentConfirmed, "PAYMENT_CONFIRMED"},
		{order.Processing, "PROCESSING"},
		{order.Dispatched, "DISPATCHED"},
		{order.Delivered, "DELIVERED"},
		{order.Escalated, "ESCALATED"},
		{order.Cancelled, "CANCELLED"},
		{order.Status(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips every valid status", func(t *testing.T) {
		statuses := []order.Status{
			order.Pending, order.Acknowledged, order.PaymentConfirmed,
			order.Processing, order.Dispatched, order.Delivered,
			order.Escalated, order.Cancelled,
		}

		for _, s := range statuses {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("SHIPPED")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects UNKNOWN", func(t *testing.T) {
		_, err := order.StatusFromString("UNKNOWN")

		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		require.NoError(t, order.Pending.Validate())
		require.NoError(t, order.Delivered.Validate())
		require.NoError(t, order.Escalated.Validate())
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Escalated.IsTerminal())
	assert.False(t, order.Dispatched.IsTerminal())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("forward progression is allowed", func(t *testing.T) {
		assert.True(t, order.Pending.CanTransitionTo(order.Acknowledged))
		assert.True(t, order.Acknowledged.CanTransitionTo(order.PaymentConfirmed))
		assert.True(t, order.PaymentConfirmed.CanTransitionTo(order.Processing))
		assert.True(t, order.Processing.CanTransitionTo(order.Dispatched))
		assert.True(t, order.Dispatched.CanTransitionTo(order.Delivered))
	})

	t.Run("skipping ahead is not allowed", func(t *testing.T) {
		assert.False(t, order.Pending.CanTransitionTo(order.PaymentConfirmed))
		assert.False(t, order.Pending.CanTransitionTo(order.Delivered))
		assert.False(t, order.Acknowledged.CanTransitionTo(order.Dispatched))
	})

	t.Run("moving backwards is not allowed", func(t *testing.T) {
		assert.False(t, order.Delivered.CanTransitionTo(order.Pending))
		assert.False(t, order.Dispatched.CanTransitionTo(order.Processing))
		assert.False(t, order.Acknowledged.CanTransitionTo(order.Pending))
	})

	t.Run("cancel is allowed from any active state", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Acknowledged, order.PaymentConfirmed,
			order.Processing, order.Dispatched, order.Escalated,
		} {
			assert.True(t, s.CanTransitionTo(order.Cancelled), "from %s", s)
		}
	})

	t.Run("cancel is not allowed from terminal states", func(t *testing.T) {
		assert.False(t, order.Delivered.CanTransitionTo(order.Cancelled))
		assert.False(t, order.Cancelled.CanTransitionTo(order.Cancelled))
	})

	t.Run("escalation is reachable only from pending", func(t *testing.T) {
		assert.True(t, order.Pending.CanTransitionTo(order.Escalated))
		assert.False(t, order.Acknowledged.CanTransitionTo(order.Escalated))
		assert.False(t, order.Dispatched.CanTransitionTo(order.Escalated))
		assert.False(t, order.Escalated.CanTransitionTo(order.Escalated))
	})

	t.Run("escalated orders can be acknowledged", func(t *testing.T) {
		assert.True(t, order.Escalated.CanTransitionTo(order.Acknowledged))
	})

	t.Run("unknown statuses allow nothing", func(t *testing.T) {
		assert.False(t, order.Unknown.CanTransitionTo(order.Pending))
		assert.False(t, order.Pending.CanTransitionTo(order.Unknown))
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("legal transition returns target", func(t *testing.T) {
		next, err := order.Pending.TransitionTo(order.Acknowledged)

		require.NoError(t, err)
		assert.Equal(t, order.Acknowledged, next)
	})

	t.Run("illegal transition returns typed error", func(t *testing.T) {
		_, err := order.Delivered.TransitionTo(order.Pending)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "DELIVERED -> PENDING")
	})
}
