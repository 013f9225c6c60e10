package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// DomainEvent is implemented by events recorded by order mutations.
// Mutations are pure state changes plus recorded events; a separate
// dispatcher performs side effects such as notification fan-out, so the
// state machine stays testable without a notification backend.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// OrderCreated is recorded when a new order enters the system in Pending status.
type OrderCreated struct {
	OrderID       kernel.UUID
	OrderNumber   kernel.OrderNumber
	DistributorID kernel.UUID
	CustomerName  string
	ItemCount     int
	TotalAmount   int64
	Deadline      time.Time
	At            time.Time
}

func (e OrderCreated) EventName() string {
	return "order.created"
}

func (e OrderCreated) OccurredAt() time.Time {
	return e.At
}

// OrderStatusChanged is recorded on every legal status transition.
type OrderStatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber kernel.OrderNumber
	From        Status
	To          Status
	Note        string
	At          time.Time
}

func (e OrderStatusChanged) EventName() string {
	return "order.status_changed"
}

func (e OrderStatusChanged) OccurredAt() time.Time {
	return e.At
}

// OrderEscalated is recorded when an order breaches the acknowledgement SLA
// and is forced into the Escalated state.
type OrderEscalated struct {
	OrderID       kernel.UUID
	OrderNumber   kernel.OrderNumber
	DistributorID kernel.UUID
	Reason        string
	At            time.Time
}

func (e OrderEscalated) EventName() string {
	return "order.escalated"
}

func (e OrderEscalated) OccurredAt() time.Time {
	return e.At
}

// OrderReassigned is recorded when an order is routed back to Pending under
// a new fulfillment partner with a fresh escalation deadline.
type OrderReassigned struct {
	OrderID       kernel.UUID
	OrderNumber   kernel.OrderNumber
	DistributorID kernel.UUID
	Deadline      time.Time
	At            time.Time
}

func (e OrderReassigned) EventName() string {
	return "order.reassigned"
}

func (e OrderReassigned) OccurredAt() time.Time {
	return e.At
}
