package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// EscalateOrderCommandHandler handles single-order escalation requests
// coming from the deadline timer or from an operator. Ineligible orders
// (already escalated, acknowledged, cancelled) are skipped without error.
type EscalateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewEscalateOrderCommandHandler creates a handler for escalation requests.
func NewEscalateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) EscalateOrderCommandHandler {
	return EscalateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the escalation command. Returns true when the order was
// escalated, false when it was not eligible.
func (h EscalateOrderCommandHandler) Handle(ctx context.Context, cmd EscalateOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if !aggregate.Escalate(cmd.Reason(), time.Now()) {
		return false, nil
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	publishEvents(ctx, h.publisher, aggregate)
	return true, nil
}
