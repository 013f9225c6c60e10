package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery retrieves orders awaiting acknowledgement. With a
// distributor scope it serves a fulfillment partner's own work queue;
// without one it serves the supervisory view across all partners.
//
// Example:
//
//	query := NewGetPendingOrdersQuery(nil)
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending orders: %w", err)
//	}
//	fmt.Printf("%d orders awaiting acknowledgement\n", len(pending))
type GetPendingOrdersQuery struct {
	distributorID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query for pending orders. A nil
// distributorID returns pending orders across all fulfillment partners.
func NewGetPendingOrdersQuery(distributorID *kernel.UUID) (GetPendingOrdersQuery, error) {
	if distributorID != nil {
		if err := distributorID.Validate(); err != nil {
			return GetPendingOrdersQuery{}, err
		}
	}

	return GetPendingOrdersQuery{
		distributorID: distributorID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// DistributorID returns the partner scope, or nil for the supervisory view.
func (q GetPendingOrdersQuery) DistributorID() *kernel.UUID {
	return q.distributorID
}

// GetPendingOrdersQueryResponse is one pending order summary row.
type GetPendingOrdersQueryResponse struct {
	ID                 kernel.UUID
	Number             string
	DistributorID      kernel.UUID
	CustomerName       string
	TotalAmount        int64
	Urgent             bool
	Status             order.Status
	CreatedAt          time.Time
	EscalationDeadline time.Time
}
