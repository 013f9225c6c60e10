package kernel

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrOrderNumberIsNotConstructed indicates that an OrderNumber was not initialized
// through GenerateOrderNumber or OrderNumberFromString.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via GenerateOrderNumber or OrderNumberFromString",
)

// OrderNumberPattern is the canonical format of a human-readable order number:
// a fixed prefix, the creation date as YYMMDD, and a 5-character random suffix.
var OrderNumberPattern = regexp.MustCompile(`^ORD-\d{6}-[A-Z0-9]{5}$`)

const (
	orderNumberPrefix       = "ORD"
	orderNumberSuffixLength = 5
	orderNumberAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// OrderNumber is a value object for the human-readable order identifier
// printed on invoices and spoken in staff alerts. It is unique across all
// orders; the date segment makes collisions only possible within a single
// day, and the random suffix makes them vanishingly unlikely there.
//
// OrderNumber is immutable. The zero value is invalid and must be created
// via GenerateOrderNumber or OrderNumberFromString.
//
// Example usage:
//
//	number, err := kernel.GenerateOrderNumber(time.Now())
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(number.String()) // e.g. "ORD-260829-K7Q2M"
type OrderNumber struct {
	value string
}

// GenerateOrderNumber creates a new order number for an order created at the
// given time. The random suffix is drawn from crypto/rand.
func GenerateOrderNumber(now time.Time) (OrderNumber, error) {
	buf := make([]byte, orderNumberSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return OrderNumber{}, fmt.Errorf("failed to generate order number suffix: %w", err)
	}

	suffix := make([]byte, orderNumberSuffixLength)
	for i, b := range buf {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}

	return OrderNumber{
		value: fmt.Sprintf("%s-%s-%s", orderNumberPrefix, now.Format("060102"), suffix),
	}, nil
}

// OrderNumberFromString parses an order number from its string representation.
// Returns an error if the string does not match the canonical format.
// Used when reconstructing orders from persistence or the external order store.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !OrderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"orderNumber",
			fmt.Errorf("%q does not match the ORD-YYMMDD-XXXXX format", s),
		)
	}
	return OrderNumber{value: s}, nil
}

// String returns the order number in its canonical ORD-YYMMDD-XXXXX form.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers for equality.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate checks if the order number is properly constructed.
// Returns ErrOrderNumberIsNotConstructed for the zero value.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
