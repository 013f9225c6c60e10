package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSyncOrdersCommandIsNotConstructed = errors.New(
	"SyncOrdersCommand must be created via NewSyncOrdersCommand constructor",
)

// SyncOrdersCommand triggers a reconciliation cycle against the external
// order store. The cycle pulls the full remote collection, merges it into
// local storage with last-write-wins conflict resolution, then pushes the
// merged collection back so independent sessions converge.
type SyncOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncOrdersCommand creates a command to run one store synchronization cycle.
func NewSyncOrdersCommand() SyncOrdersCommand {
	return SyncOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SyncOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrdersCommandIsNotConstructed)
}
