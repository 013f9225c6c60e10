package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// SweepReason is the escalation reason recorded for orders caught by the
// periodic overdue sweep rather than by their own deadline timer.
const SweepReason = "not acknowledged within SLA window"

var ErrEscalateOverdueCommandIsNotConstructed = errors.New(
	"EscalateOverdueCommand must be created via NewEscalateOverdueCommand constructor",
)

// EscalateOverdueCommand triggers a reconciliation sweep over all Pending
// orders whose acknowledgement deadline has passed. The sweep is the safety
// net behind the per-order timers: a restart or missed timer never leaves an
// overdue order unescalated for more than one sweep interval.
//
// Example:
//
//	cmd := NewEscalateOverdueCommand()
//	ticker := time.NewTicker(time.Minute)
//	for range ticker.C {
//	    if _, err := handler.Handle(ctx, cmd); err != nil {
//	        log.Printf("overdue sweep failed: %v", err)
//	    }
//	}
type EscalateOverdueCommand struct {
	guard guard.ConstructorGuard
}

// NewEscalateOverdueCommand creates a command to sweep overdue orders.
func NewEscalateOverdueCommand() EscalateOverdueCommand {
	return EscalateOverdueCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *EscalateOverdueCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOverdueCommandIsNotConstructed)
}
