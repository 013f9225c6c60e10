package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand represents a request to hand an order over to a
// different fulfillment partner. Reassigning restarts the acknowledgement
// window for the new partner.
type ReassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	distributorID kernel.UUID
	note          string

	guard guard.ConstructorGuard
}

// NewReassignOrderCommand creates a command to reassign an order to the given partner.
func NewReassignOrderCommand(orderID, distributorID kernel.UUID, note string) (ReassignOrderCommand, error) {
	cmd := ReassignOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDistributorID(distributorID),
	); err != nil {
		return ReassignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

// OrderID returns the order to reassign.
func (c ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DistributorID returns the partner taking over the order.
func (c ReassignOrderCommand) DistributorID() kernel.UUID {
	return c.distributorID
}

// Note returns the optional timeline annotation for the handover.
func (c ReassignOrderCommand) Note() string {
	return c.note
}

func (c *ReassignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReassignOrderCommand) setDistributorID(distributorID kernel.UUID) error {
	if err := distributorID.Validate(); err != nil {
		return err
	}

	c.distributorID = distributorID
	return nil
}
