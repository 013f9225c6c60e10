// Package notifications turns committed domain events into operator-facing
// alerts. Delivery is best-effort by contract: a lost notification is
// recoverable through the periodic reminders, a blocked mutation is not.
package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Dispatcher fans committed domain events out to the spoken and push alert
// channels. New orders alert the routed partner, escalations alert the
// escalation staff, reassignments alert the new partner.
type Dispatcher struct {
	spoken ports.SpokenAlertChannel
	push   ports.PushAlertChannel
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given alert channels.
func NewDispatcher(spoken ports.SpokenAlertChannel, push ports.PushAlertChannel, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		spoken: spoken,
		push:   push,
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// Publish dispatches alerts for each event. Implements ports.EventPublisher.
func (d *Dispatcher) Publish(ctx context.Context, events ...order.DomainEvent) {
	for _, event := range events {
		switch e := event.(type) {
		case order.OrderCreated:
			d.onCreated(ctx, e)
		case order.OrderEscalated:
			d.onEscalated(ctx, e)
		case order.OrderReassigned:
			d.onReassigned(ctx, e)
		}
	}
}

func (d *Dispatcher) onCreated(ctx context.Context, e order.OrderCreated) {
	text := fmt.Sprintf(
		"New order %s from %s, %s for %s.",
		e.OrderNumber, e.CustomerName, pluralize(e.ItemCount, "item"), formatAmount(e.TotalAmount),
	)
	d.spoken.Announce(ports.SpokenAlert{
		Text:     text,
		Priority: ports.PriorityHigh,
		Volume:   1.0,
		Rate:     1.0,
	})

	err := d.push.Push(ctx, ports.PushAlert{
		Title:              fmt.Sprintf("New order %s", e.OrderNumber),
		Body:               fmt.Sprintf("%s, %s, %s", e.CustomerName, pluralize(e.ItemCount, "item"), formatAmount(e.TotalAmount)),
		Tag:                "order-" + e.OrderID.String(),
		RequireInteraction: true,
		TargetURL:          "/orders/" + e.OrderID.String(),
	})
	if err != nil {
		d.logger.WarnContext(ctx, "new order push dropped", "order", e.OrderNumber.String())
	}
}

func (d *Dispatcher) onEscalated(ctx context.Context, e order.OrderEscalated) {
	d.spoken.Announce(ports.SpokenAlert{
		Text:     fmt.Sprintf("Order %s escalated. %s.", e.OrderNumber, e.Reason),
		Priority: ports.PriorityHigh,
		Volume:   1.0,
		Rate:     1.0,
	})

	err := d.push.Push(ctx, ports.PushAlert{
		Title:              fmt.Sprintf("Order %s escalated", e.OrderNumber),
		Body:               e.Reason,
		Tag:                "escalation-" + e.OrderID.String(),
		RequireInteraction: true,
		TargetURL:          "/orders/escalated",
	})
	if err != nil {
		d.logger.WarnContext(ctx, "escalation push dropped", "order", e.OrderNumber.String())
	}
}

func (d *Dispatcher) onReassigned(ctx context.Context, e order.OrderReassigned) {
	err := d.push.Push(ctx, ports.PushAlert{
		Title:     fmt.Sprintf("Order %s reassigned to you", e.OrderNumber),
		Body:      fmt.Sprintf("Acknowledge before %s.", e.Deadline.Format("15:04")),
		Tag:       "order-" + e.OrderID.String(),
		TargetURL: "/orders/" + e.OrderID.String(),
	})
	if err != nil {
		d.logger.WarnContext(ctx, "reassignment push dropped", "order", e.OrderNumber.String())
	}
}

func pluralize(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}

// formatAmount renders a minor-unit amount in rupees.
func formatAmount(amount int64) string {
	whole := amount / 100
	frac := amount % 100
	if frac == 0 {
		return fmt.Sprintf("%d rupees", whole)
	}
	return fmt.Sprintf("%d.%02d rupees", whole, frac)
}
