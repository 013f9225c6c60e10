package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrTargetStatusIsInvalid = errors.New("target status is invalid")
)

// TransitionOrderCommand represents a role-specific request to move an order
// to a new lifecycle status. The state machine decides legality; an illegal
// request is rejected with a transition error and leaves the order unmodified.
//
// Example:
//
//	cmd, err := NewAcknowledgeOrderCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	note    string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to move an order to the target status.
// Validates that the order ID and target status are valid values; whether the
// transition itself is legal is decided by the state machine at handling time.
func NewTransitionOrderCommand(orderID kernel.UUID, target order.Status, note string) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// NewAcknowledgeOrderCommand creates the convenience command for a
// fulfillment partner acknowledging an order.
func NewAcknowledgeOrderCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.Acknowledged, "order acknowledged")
}

// NewConfirmPaymentCommand creates the convenience command for confirming
// an order's payment.
func NewConfirmPaymentCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.PaymentConfirmed, "payment confirmed")
}

// NewCancelOrderCommand creates the convenience command for cancelling an order.
func NewCancelOrderCommand(orderID kernel.UUID, note string) (TransitionOrderCommand, error) {
	if note == "" {
		note = "order cancelled"
	}
	return NewTransitionOrderCommand(orderID, order.Cancelled, note)
}

// Validate ensures the command was created through a constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Note returns the timeline annotation for the transition.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return ErrTargetStatusIsInvalid
	}

	c.target = target
	return nil
}
