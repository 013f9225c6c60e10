package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreatedAt = time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

func makeItems(t *testing.T, count int, unitPrice int64) []order.Item {
	t.Helper()

	items := make([]order.Item, 0, count)
	for i := 0; i < count; i++ {
		item, err := order.NewItem(kernel.NewUUID(), "Crate of widgets", 1, unitPrice)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func makeOrder(t *testing.T) *order.Order {
	t.Helper()

	number, err := kernel.GenerateOrderNumber(testCreatedAt)
	require.NoError(t, err)
	customer, err := order.NewCustomer(kernel.NewUUID(), "Asel Nurlanovna", "+7700555123")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		kernel.NewUUID(),
		customer,
		makeItems(t, 3, 5000),
		25_000,
		"pickup",
		false,
		testCreatedAt,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order with armed deadline and seeded timeline", func(t *testing.T) {
		o := makeOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.False(t, o.IsEscalated())
		assert.Regexp(t, kernel.OrderNumberPattern, o.Number().String())
		assert.Equal(t, int64(25_000), o.TotalAmount())
		assert.Equal(t, testCreatedAt, o.CreatedAt())
		assert.Equal(t, testCreatedAt.Add(order.AcknowledgementSLA), o.EscalationDeadline())

		timeline := o.Timeline()
		require.Len(t, timeline, 1)
		assert.Equal(t, order.Pending, timeline[0].Status())
		assert.Equal(t, testCreatedAt, timeline[0].Timestamp())
	})

	t.Run("records an OrderCreated event", func(t *testing.T) {
		o := makeOrder(t)

		events := o.Events()
		require.Len(t, events, 1)
		created, ok := events[0].(order.OrderCreated)
		require.True(t, ok)
		assert.Equal(t, 3, created.ItemCount)
		assert.Equal(t, int64(25_000), created.TotalAmount)
		assert.Equal(t, "Asel Nurlanovna", created.CustomerName)
		assert.Equal(t, o.EscalationDeadline(), created.Deadline)
	})

	t.Run("rejects empty line items", func(t *testing.T) {
		number, _ := kernel.GenerateOrderNumber(testCreatedAt)
		customer, _ := order.NewCustomer(kernel.NewUUID(), "Asel", "")

		_, err := order.NewOrder(
			kernel.NewUUID(), number, kernel.NewUUID(), customer,
			nil, 25_000, "pickup", false, testCreatedAt,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		number, _ := kernel.GenerateOrderNumber(testCreatedAt)
		customer, _ := order.NewCustomer(kernel.NewUUID(), "Asel", "")

		_, err := order.NewOrder(
			kernel.NewUUID(), number, kernel.NewUUID(), customer,
			makeItems(t, 1, 100), 0, "pickup", false, testCreatedAt,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "totalAmount")
	})

	t.Run("rejects invalid distributor id", func(t *testing.T) {
		number, _ := kernel.GenerateOrderNumber(testCreatedAt)
		customer, _ := order.NewCustomer(kernel.NewUUID(), "Asel", "")
		var invalidDistributor kernel.UUID

		_, err := order.NewOrder(
			kernel.NewUUID(), number, invalidDistributor, customer,
			makeItems(t, 1, 100), 100, "pickup", false, testCreatedAt,
		)

		require.Error(t, err)
	})

	t.Run("generated order numbers stay unique across orders", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			o := makeOrder(t)
			assert.False(t, seen[o.Number().String()])
			seen[o.Number().String()] = true
		}
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil order fails", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("zero value fails", func(t *testing.T) {
		o := &order.Order{}

		require.Error(t, o.Validate())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("acknowledge stamps the milestone and appends the timeline", func(t *testing.T) {
		o := makeOrder(t)
		at := testCreatedAt.Add(10 * time.Minute)

		require.NoError(t, o.Acknowledge(at))

		assert.Equal(t, order.Acknowledged, o.Status())
		require.NotNil(t, o.AcknowledgedAt())
		assert.Equal(t, at, *o.AcknowledgedAt())
		assert.Equal(t, at, o.UpdatedAt())

		timeline := o.Timeline()
		require.Len(t, timeline, 2)
		last, ok := timeline.Last()
		require.True(t, ok)
		assert.Equal(t, order.Acknowledged, last.Status())
	})

	t.Run("full happy path stamps every milestone", func(t *testing.T) {
		o := makeOrder(t)
		at := testCreatedAt

		step := func(target order.Status) {
			at = at.Add(5 * time.Minute)
			require.NoError(t, o.TransitionTo(target, "", at))
		}

		step(order.Acknowledged)
		step(order.PaymentConfirmed)
		step(order.Processing)
		step(order.Dispatched)
		step(order.Delivered)

		assert.Equal(t, order.Delivered, o.Status())
		assert.NotNil(t, o.AcknowledgedAt())
		assert.NotNil(t, o.PaymentConfirmedAt())
		assert.NotNil(t, o.DispatchedAt())
		assert.NotNil(t, o.DeliveredAt())
		assert.Len(t, o.Timeline(), 6)
	})

	t.Run("illegal transition leaves the order unmodified", func(t *testing.T) {
		o := makeOrder(t)

		err := o.TransitionTo(order.Delivered, "", testCreatedAt.Add(time.Minute))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.Timeline(), 1)
		assert.Equal(t, testCreatedAt, o.UpdatedAt())
	})

	t.Run("timeline timestamps never decrease", func(t *testing.T) {
		o := makeOrder(t)

		// Caller clock runs behind the creation timestamp.
		require.NoError(t, o.Acknowledge(testCreatedAt.Add(-time.Hour)))

		timeline := o.Timeline()
		require.Len(t, timeline, 2)
		assert.False(t, timeline[1].Timestamp().Before(timeline[0].Timestamp()))
	})

	t.Run("records OrderStatusChanged events", func(t *testing.T) {
		o := makeOrder(t)
		o.ClearEvents()

		require.NoError(t, o.Acknowledge(testCreatedAt.Add(time.Minute)))

		events := o.Events()
		require.Len(t, events, 1)
		changed, ok := events[0].(order.OrderStatusChanged)
		require.True(t, ok)
		assert.Equal(t, order.Pending, changed.From)
		assert.Equal(t, order.Acknowledged, changed.To)
	})
}

func TestOrder_Escalate(t *testing.T) {
	reason := "not acknowledged within SLA window"

	t.Run("escalates a pending order", func(t *testing.T) {
		o := makeOrder(t)
		at := testCreatedAt.Add(61 * time.Minute)

		escalated := o.Escalate(reason, at)

		require.True(t, escalated)
		assert.Equal(t, order.Escalated, o.Status())
		assert.True(t, o.IsEscalated())
		assert.Equal(t, reason, o.EscalationReason())
		require.NotNil(t, o.EscalatedAt())
		assert.Equal(t, at, *o.EscalatedAt())

		last, _ := o.Timeline().Last()
		assert.Equal(t, order.Escalated, last.Status())
		assert.Contains(t, last.Note(), "not acknowledged")
	})

	t.Run("is idempotent", func(t *testing.T) {
		o := makeOrder(t)
		at := testCreatedAt.Add(61 * time.Minute)

		require.True(t, o.Escalate(reason, at))
		require.False(t, o.Escalate(reason, at.Add(time.Minute)))

		escalatedEntries := 0
		for _, entry := range o.Timeline() {
			if entry.Status() == order.Escalated {
				escalatedEntries++
			}
		}
		assert.Equal(t, 1, escalatedEntries)
	})

	t.Run("is a no-op on acknowledged orders", func(t *testing.T) {
		o := makeOrder(t)
		require.NoError(t, o.Acknowledge(testCreatedAt.Add(10*time.Minute)))

		escalated := o.Escalate(reason, testCreatedAt.Add(61*time.Minute))

		assert.False(t, escalated)
		assert.Equal(t, order.Acknowledged, o.Status())
		assert.False(t, o.IsEscalated())
	})

	t.Run("acknowledging an escalated order clears the flag", func(t *testing.T) {
		o := makeOrder(t)
		require.True(t, o.Escalate(reason, testCreatedAt.Add(61*time.Minute)))

		require.NoError(t, o.Acknowledge(testCreatedAt.Add(65*time.Minute)))

		assert.Equal(t, order.Acknowledged, o.Status())
		assert.False(t, o.IsEscalated())
		assert.Empty(t, o.EscalationReason())
	})

	t.Run("records an OrderEscalated event", func(t *testing.T) {
		o := makeOrder(t)
		o.ClearEvents()

		o.Escalate(reason, testCreatedAt.Add(61*time.Minute))

		events := o.Events()
		require.Len(t, events, 1)
		escalated, ok := events[0].(order.OrderEscalated)
		require.True(t, ok)
		assert.Equal(t, reason, escalated.Reason)
	})
}

func TestOrder_Reassign(t *testing.T) {
	t.Run("routes back to pending under the new partner with a fresh deadline", func(t *testing.T) {
		o := makeOrder(t)
		require.True(t, o.Escalate("not acknowledged within SLA window", testCreatedAt.Add(61*time.Minute)))

		newPartner := kernel.NewUUID()
		at := testCreatedAt.Add(70 * time.Minute)
		require.NoError(t, o.Reassign(newPartner, "previous partner unreachable", at))

		assert.True(t, o.DistributorID().IsEqual(newPartner))
		assert.Equal(t, order.Pending, o.Status())
		assert.False(t, o.IsEscalated())
		assert.Empty(t, o.EscalationReason())
		assert.Equal(t, at.Add(order.AcknowledgementSLA), o.EscalationDeadline())

		last, _ := o.Timeline().Last()
		assert.Equal(t, order.Pending, last.Status())
		assert.Contains(t, last.Note(), "reassigned to partner")
		assert.Contains(t, last.Note(), "previous partner unreachable")
	})

	t.Run("rejects terminal orders", func(t *testing.T) {
		o := makeOrder(t)
		require.NoError(t, o.Cancel("customer withdrew", testCreatedAt.Add(time.Minute)))

		err := o.Reassign(kernel.NewUUID(), "", testCreatedAt.Add(2*time.Minute))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("rejects invalid partner id", func(t *testing.T) {
		o := makeOrder(t)
		var invalid kernel.UUID

		require.Error(t, o.Reassign(invalid, "", testCreatedAt.Add(time.Minute)))
	})

	t.Run("records an OrderReassigned event with the new deadline", func(t *testing.T) {
		o := makeOrder(t)
		o.ClearEvents()
		at := testCreatedAt.Add(30 * time.Minute)

		require.NoError(t, o.Reassign(kernel.NewUUID(), "", at))

		events := o.Events()
		require.Len(t, events, 1)
		reassigned, ok := events[0].(order.OrderReassigned)
		require.True(t, ok)
		assert.Equal(t, at.Add(order.AcknowledgementSLA), reassigned.Deadline)
	})
}

func TestOrder_IsOverdue(t *testing.T) {
	t.Run("pending order becomes overdue at the deadline", func(t *testing.T) {
		o := makeOrder(t)

		assert.False(t, o.IsOverdue(testCreatedAt.Add(59*time.Minute)))
		assert.True(t, o.IsOverdue(testCreatedAt.Add(60*time.Minute)))
		assert.True(t, o.IsOverdue(testCreatedAt.Add(61*time.Minute)))
	})

	t.Run("acknowledged order is never overdue", func(t *testing.T) {
		o := makeOrder(t)
		require.NoError(t, o.Acknowledge(testCreatedAt.Add(10*time.Minute)))

		assert.False(t, o.IsOverdue(testCreatedAt.Add(2*time.Hour)))
	})

	t.Run("already escalated order is not overdue again", func(t *testing.T) {
		o := makeOrder(t)
		require.True(t, o.Escalate("not acknowledged within SLA window", testCreatedAt.Add(61*time.Minute)))

		assert.False(t, o.IsOverdue(testCreatedAt.Add(2*time.Hour)))
	})
}

func TestOrder_LogCommunication(t *testing.T) {
	t.Run("appends contact events", func(t *testing.T) {
		o := makeOrder(t)
		at := testCreatedAt.Add(5 * time.Minute)

		require.NoError(t, o.LogCommunication("phone", "customer confirmed address", at))

		comms := o.Communications()
		require.Len(t, comms, 1)
		assert.Equal(t, "phone", comms[0].Channel())
		assert.Equal(t, at, comms[0].Timestamp())
	})

	t.Run("requires a channel", func(t *testing.T) {
		o := makeOrder(t)

		err := o.LogCommunication("", "msg", testCreatedAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
