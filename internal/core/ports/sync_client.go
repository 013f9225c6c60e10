package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderSyncClient talks to the opaque external order store. The wire schema
// is out of scope for the core: a fetch returns the full current order
// collection and a push accepts the same shape it reads.
//
// Reconciliation is eventual and last-write-wins; independent sessions each
// hold their own copy and converge only through the periodic full re-fetch.
type OrderSyncClient interface {
	// FetchAll returns the complete current order collection.
	FetchAll(ctx context.Context) ([]order.Snapshot, error)

	// PushAll writes the full order collection to the external store.
	PushAll(ctx context.Context, snapshots []order.Snapshot) error
}
