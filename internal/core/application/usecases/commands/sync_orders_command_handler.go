package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SyncOrdersCommandHandler reconciles local storage with the external order
// store. Remote snapshots are restored through the full aggregate invariant
// checks; a remote copy wins over a local one only when its latest timeline
// activity is strictly newer. After merging, the full local collection is
// pushed back so other sessions can pick up local mutations.
type SyncOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	syncClient ports.OrderSyncClient
}

// NewSyncOrdersCommandHandler creates a handler for store synchronization cycles.
func NewSyncOrdersCommandHandler(uowFactory OrderUoWFactory, syncClient ports.OrderSyncClient) SyncOrdersCommandHandler {
	return SyncOrdersCommandHandler{
		uowFactory: uowFactory,
		syncClient: syncClient,
	}
}

// Handle runs one synchronization cycle and returns how many orders were
// applied from the remote collection. An invalid remote snapshot fails the
// whole cycle rather than silently dropping an order.
func (h SyncOrdersCommandHandler) Handle(ctx context.Context, cmd SyncOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	snapshots, err := h.syncClient.FetchAll(ctx)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	applied := 0
	for _, snapshot := range snapshots {
		remote, restoreErr := order.RestoreOrder(snapshot)
		if restoreErr != nil {
			return 0, restoreErr
		}

		changed, applyErr := h.apply(ctx, uow.OrderRepository(), remote)
		if applyErr != nil {
			return 0, applyErr
		}
		if changed {
			applied++
		}
	}

	merged, err := uow.OrderRepository().GetAll(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	outbound := make([]order.Snapshot, 0, len(merged))
	for _, aggregate := range merged {
		outbound = append(outbound, aggregate.Snapshot())
	}

	if err = h.syncClient.PushAll(ctx, outbound); err != nil {
		return 0, err
	}

	return applied, nil
}

// apply upserts one remote order. Unknown orders are added; known orders are
// overwritten only when the remote copy carries newer timeline activity.
func (h SyncOrdersCommandHandler) apply(
	ctx context.Context,
	repository ports.OrderRepository,
	remote *order.Order,
) (bool, error) {
	local, err := repository.Get(ctx, remote.ID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return true, repository.Add(ctx, remote)
		}
		return false, err
	}

	if !lastActivity(remote).After(lastActivity(local)) {
		return false, nil
	}

	return true, repository.Update(ctx, remote)
}

func lastActivity(aggregate *order.Order) time.Time {
	entry, ok := aggregate.Timeline().Last()
	if !ok {
		return time.Time{}
	}
	return entry.Timestamp()
}
