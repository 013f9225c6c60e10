package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrEscalateOrderCommandIsNotConstructed = errors.New(
		"EscalateOrderCommand must be created via NewEscalateOrderCommand constructor",
	)
	ErrEscalationReasonIsRequired = errors.New("escalation reason is required")
)

// EscalateOrderCommand represents a request to flag an unacknowledged order
// for escalation handling. Only Pending, not-yet-escalated orders are
// eligible; for anything else the request is a silent no-op, which makes the
// deadline timer and the periodic sweep safe to race.
type EscalateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewEscalateOrderCommand creates a command to escalate an order with the given reason.
func NewEscalateOrderCommand(orderID kernel.UUID, reason string) (EscalateOrderCommand, error) {
	cmd := EscalateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return EscalateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EscalateOrderCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOrderCommandIsNotConstructed)
}

// OrderID returns the order to escalate.
func (c EscalateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the recorded escalation reason.
func (c EscalateOrderCommand) Reason() string {
	return c.reason
}

func (c *EscalateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EscalateOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrEscalationReasonIsRequired
	}

	c.reason = reason
	return nil
}
