package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is a value object for a single ordered line: a product reference,
// the quantity ordered, and the unit price at the time of ordering.
// Prices are stored in minor currency units.
//
// Item is immutable and must be created via NewItem.
type Item struct {
	productID kernel.UUID
	name      string
	quantity  int
	unitPrice int64
}

// NewItem creates a validated line item.
// The product ID must be valid, the name non-empty, and both quantity
// and unit price positive.
func NewItem(productID kernel.UUID, name string, quantity int, unitPrice int64) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if unitPrice <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice",
			fmt.Errorf("%d is not greater than 0", unitPrice),
		)
	}

	return Item{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name captured at ordering time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price in minor currency units.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() int64 {
	return int64(i.quantity) * i.unitPrice
}

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through the NewCustomer factory method.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is a value object carrying the ordering customer's identity and
// contact details as captured at checkout.
type Customer struct {
	id    kernel.UUID
	name  string
	phone string
}

// NewCustomer creates a validated customer reference.
// The ID must be valid and the name non-empty; phone is optional.
func NewCustomer(id kernel.UUID, name, phone string) (Customer, error) {
	if err := id.Validate(); err != nil {
		return Customer{}, err
	}
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}

	return Customer{id: id, name: name, phone: phone}, nil
}

// ID returns the customer's identifier.
func (c Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Phone returns the customer's contact phone, possibly empty.
func (c Customer) Phone() string {
	return c.phone
}

// Validate ensures the Customer was created via NewCustomer.
func (c Customer) Validate() error {
	if c.name == "" {
		return ErrCustomerIsNotConstructed
	}
	return nil
}
