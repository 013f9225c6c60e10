package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// It implements a state machine with an explicit allowed-transition table
// so orders can only move forward through the fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Acknowledged ──> PaymentConfirmed ──> Processing ──> Dispatched ──> Delivered
//	   │              ^
//	   └─> Escalated ─┘
//
//	Cancelled is reachable from any non-terminal state.
//	Delivered and Cancelled are terminal.
//
// Escalated is an exception state entered only from Pending when the
// acknowledgement SLA is breached. Reassignment is not a resting state:
// it routes the order back to Pending under a new fulfillment partner.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every order. The order is waiting
	// for its assigned fulfillment partner to acknowledge it.
	Pending

	// Acknowledged indicates the fulfillment partner has seen the order
	// and taken responsibility for it.
	Acknowledged

	// PaymentConfirmed indicates payment for the order has been verified.
	PaymentConfirmed

	// Processing indicates the order is being picked and packed.
	Processing

	// Dispatched indicates the order has left the warehouse.
	Dispatched

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Escalated indicates the order breached the acknowledgement SLA and
	// now requires supervisory attention. Entered only from Pending.
	Escalated

	// Cancelled indicates the order was abandoned. Terminal, retained for audit.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire names.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Pending:          "PENDING",
		Acknowledged:     "ACKNOWLEDGED",
		PaymentConfirmed: "PAYMENT_CONFIRMED",
		Processing:       "PROCESSING",
		Dispatched:       "DISPATCHED",
		Delivered:        "DELIVERED",
		Escalated:        "ESCALATED",
		Cancelled:        "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is excluded to support validation.
func getValidStatusStrings() map[Status]string {
	strings := getStatusStrings()
	delete(strings, Unknown)
	return strings
}

// nextStatuses is the allowed-transition table for forward progression.
// Cancelled and Escalated are handled separately in CanTransitionTo
// because their reachability depends on rules, not table rows.
func nextStatuses() map[Status]Status {
	return map[Status]Status{
		Pending:          Acknowledged,
		Escalated:        Acknowledged,
		Acknowledged:     PaymentConfirmed,
		PaymentConfirmed: Processing,
		Processing:       Dispatched,
		Dispatched:       Delivered,
	}
}

// StatusFromString parses a status from its wire name.
// Returns an error for unknown names; used when restoring orders from
// persistence or the external order store.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "PAYMENT_CONFIRMED".
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status ends the order lifecycle.
// Terminal orders are never deleted; they are retained for audit.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the status is valid and not terminal.
func (s Status) IsActive() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to the target without performing the transition.
//
// Rules:
//   - forward progression follows the allowed-transition table
//   - Cancelled is reachable from any active state
//   - Escalated is reachable only from Pending
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}

	switch target {
	case Cancelled:
		return s.IsActive()
	case Escalated:
		return s == Pending
	default:
		return nextStatuses()[s] == target
	}
}

// TransitionTo performs a table-checked transition to the target status.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, *errs.InvalidTransitionError) if the move is not allowed; the
//     caller's order must be left unmodified in that case
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
