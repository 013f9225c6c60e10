package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher delivers domain events to interested subscribers after a
// mutation commits. Publishing is fire-and-forget: implementations must not
// block the caller and must never let delivery failures surface back into
// the mutation path. Order state correctness is never contingent on
// notification success.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent)
}

