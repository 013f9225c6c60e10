package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetEscalatedOrdersQueryIsNotConstructed = errors.New(
	"GetEscalatedOrdersQuery must be created via NewGetEscalatedOrdersQuery constructor",
)

// GetEscalatedOrdersQuery retrieves all currently escalated orders for the
// escalation staff view. Orders acknowledged after escalation drop out of
// the result because acknowledgement clears the escalation flag.
type GetEscalatedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetEscalatedOrdersQuery creates a query to retrieve escalated orders.
func NewGetEscalatedOrdersQuery() GetEscalatedOrdersQuery {
	return GetEscalatedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetEscalatedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetEscalatedOrdersQueryIsNotConstructed)
}

// GetEscalatedOrdersQueryResponse is one escalated order summary row.
type GetEscalatedOrdersQueryResponse struct {
	ID               kernel.UUID
	Number           string
	DistributorID    kernel.UUID
	CustomerName     string
	TotalAmount      int64
	Status           order.Status
	EscalationReason string
	EscalatedAt      *time.Time
	CreatedAt        time.Time
}
