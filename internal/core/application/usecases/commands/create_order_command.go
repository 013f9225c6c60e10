package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired       = errors.New("at least one line item is required")
	ErrTotalAmountIsInvalid   = errors.New("total amount must be greater than 0")
	ErrCustomerNameIsRequired = errors.New("customer name is required")
)

// OrderItemData carries one line item of an incoming order payload.
type OrderItemData struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice int64
}

// CustomerData carries the ordering customer's identity and contact details.
type CustomerData struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

// CreateOrderCommand represents a checkout request to create a new purchase
// order routed to a fulfillment partner. The external collaborator supplies
// the order data; the handler generates the identity and order number.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(distributorID, customer, items, 25_000, "courier", false)
//	if err != nil {
//	    return fmt.Errorf("invalid order payload: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	distributorID kernel.UUID
	customer      CustomerData
	items         []OrderItemData
	totalAmount   int64
	deliveryMode  string
	urgent        bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new purchase order.
// Validates that the routing target is valid, the customer is named, the
// line items are non-empty, and the computed total is positive.
func NewCreateOrderCommand(
	distributorID kernel.UUID,
	customer CustomerData,
	items []OrderItemData,
	totalAmount int64,
	deliveryMode string,
	urgent bool,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		deliveryMode: deliveryMode,
		urgent:       urgent,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setDistributorID(distributorID),
		orderCommand.setCustomer(customer),
		orderCommand.setItems(items),
		orderCommand.setTotalAmount(totalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// DistributorID returns the fulfillment partner the order is routed to.
func (c CreateOrderCommand) DistributorID() kernel.UUID {
	return c.distributorID
}

// Customer returns the ordering customer's details.
func (c CreateOrderCommand) Customer() CustomerData {
	return c.customer
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []OrderItemData {
	return append([]OrderItemData(nil), c.items...)
}

// TotalAmount returns the computed order total in minor currency units.
func (c CreateOrderCommand) TotalAmount() int64 {
	return c.totalAmount
}

// DeliveryMode returns the delivery mode chosen at checkout.
func (c CreateOrderCommand) DeliveryMode() string {
	return c.deliveryMode
}

// Urgent returns the urgency flag supplied at checkout.
func (c CreateOrderCommand) Urgent() bool {
	return c.urgent
}

func (c *CreateOrderCommand) setDistributorID(distributorID kernel.UUID) error {
	if err := distributorID.Validate(); err != nil {
		return err
	}

	c.distributorID = distributorID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer CustomerData) error {
	if err := customer.ID.Validate(); err != nil {
		return err
	}
	if customer.Name == "" {
		return ErrCustomerNameIsRequired
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemData) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	c.items = append([]OrderItemData(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmount int64) error {
	if totalAmount <= 0 {
		return ErrTotalAmountIsInvalid
	}

	c.totalAmount = totalAmount
	return nil
}
