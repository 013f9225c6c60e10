package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It holds the canonical set of orders and serves the status-scoped reads
// the visibility layer and the escalation sweep are built on.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetAll retrieves every stored order. Serves the full-collection
	// push of the store synchronization loop.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllPending retrieves all orders in Pending status.
	// Serves the supervisory view and the new-order detection loop.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// GetActiveByDistributor retrieves the pending and acknowledged orders
	// routed to one fulfillment partner.
	GetActiveByDistributor(ctx context.Context, distributorID kernel.UUID) ([]*order.Order, error)

	// GetEscalated retrieves all currently escalated orders.
	GetEscalated(ctx context.Context) ([]*order.Order, error)

	// GetPendingOverdue retrieves pending, non-escalated orders whose
	// escalation deadline has elapsed as of now. This is the read the
	// reconciliation sweep is built on.
	GetPendingOverdue(ctx context.Context, now time.Time) ([]*order.Order, error)
}
