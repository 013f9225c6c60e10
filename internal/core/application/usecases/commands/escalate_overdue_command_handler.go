package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// EscalateOverdueCommandHandler runs the reconciliation sweep. Fetches every
// Pending order past its acknowledgement deadline and escalates each one,
// publishing OrderEscalated for the alert fan-out. Orders already escalated
// by their deadline timer are filtered out by the query and by the aggregate
// itself, so the sweep and the timers can race safely.
type EscalateOverdueCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewEscalateOverdueCommandHandler creates a handler for the overdue sweep.
func NewEscalateOverdueCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) EscalateOverdueCommandHandler {
	return EscalateOverdueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the sweep command and returns how many orders were escalated.
// All escalations commit in a single transaction.
func (h EscalateOverdueCommandHandler) Handle(ctx context.Context, cmd EscalateOverdueCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	overdue, err := uow.OrderRepository().GetPendingOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	escalated := overdue[:0]
	for _, aggregate := range overdue {
		if !aggregate.Escalate(SweepReason, now) {
			continue
		}

		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return 0, err
		}
		escalated = append(escalated, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range escalated {
		publishEvents(ctx, h.publisher, aggregate)
	}

	return len(escalated), nil
}
