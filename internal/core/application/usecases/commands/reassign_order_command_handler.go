package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ReassignOrderCommandHandler handles order handovers between fulfillment
// partners. A successful reassignment re-arms the acknowledgement deadline
// and publishes OrderReassigned so the new partner gets alerted and the
// deadline timer is rescheduled.
type ReassignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewReassignOrderCommandHandler creates a handler for reassignment operations.
func NewReassignOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reassignment command and returns the updated order.
// Terminal orders cannot be reassigned.
func (h ReassignOrderCommandHandler) Handle(ctx context.Context, cmd ReassignOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Reassign(cmd.DistributorID(), cmd.Note(), time.Now()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, aggregate)
	return aggregate, nil
}
