package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Generates the order identity and human-readable order number, persists the
// order in Pending status with its escalation deadline armed, and publishes
// the OrderCreated event after commit so the notification fan-out can fire
// the "new order" alert.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence; the publisher
// may be nil when no notification fan-out is wired (e.g. in tests).
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command and returns the created order.
// Uses a transaction to ensure the order and its initial timeline entry are
// persisted atomically or rolled back on error.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	number, err := kernel.GenerateOrderNumber(now)
	if err != nil {
		return nil, err
	}

	customerData := cmd.Customer()
	customer, err := order.NewCustomer(customerData.ID, customerData.Name, customerData.Phone)
	if err != nil {
		return nil, err
	}

	itemsData := cmd.Items()
	items := make([]order.Item, 0, len(itemsData))
	for _, data := range itemsData {
		item, itemErr := order.NewItem(data.ProductID, data.Name, data.Quantity, data.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		cmd.DistributorID(),
		customer,
		items,
		cmd.TotalAmount(),
		cmd.DeliveryMode(),
		cmd.Urgent(),
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, newOrder)
	return newOrder, nil
}

// publishEvents hands an aggregate's recorded events to the publisher after
// a successful commit and clears them. Publishing is fire-and-forget; a nil
// publisher means no fan-out is wired.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, aggregate *order.Order) {
	events := aggregate.Events()
	aggregate.ClearEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	publisher.Publish(ctx, events...)
}
