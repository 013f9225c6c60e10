package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AcknowledgementSLA is the window within which a pending order must be
// acknowledged by its fulfillment partner before it is escalated.
const AcknowledgementSLA = 60 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method or restored through RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when an order is created without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order is the central aggregate of the fulfillment system. It owns the
// lifecycle state machine from creation to a terminal state, the escalation
// bookkeeping, and the append-only timeline and communication logs.
//
// Order maintains these invariants:
//   - the order number is unique across all orders and matches the
//     ORD-YYMMDD-XXXXX format
//   - the timeline is never empty after creation, its timestamps are
//     non-decreasing, and its last entry's status equals the current status
//   - isEscalated is true only between an SLA breach and the subsequent
//     acknowledgement or reassignment
//   - the escalation deadline is always in the future relative to the event
//     that last armed it (creation or reassignment)
//
// All fields are private; mutations go through validated methods that record
// domain events instead of performing side effects directly. Orders are
// never deleted: Delivered and Cancelled orders are retained for audit.
type Order struct {
	id            kernel.UUID
	number        kernel.OrderNumber
	distributorID kernel.UUID
	customer      Customer

	items        []Item
	totalAmount  int64
	deliveryMode string
	urgent       bool

	status           Status
	isEscalated      bool
	escalationReason string

	createdAt          time.Time
	updatedAt          time.Time
	escalationDeadline time.Time
	acknowledgedAt     *time.Time
	paymentConfirmedAt *time.Time
	dispatchedAt       *time.Time
	deliveredAt        *time.Time
	escalatedAt        *time.Time

	timeline       Timeline
	communications []CommunicationEntry

	events        []DomainEvent
	isConstructed bool
}

// NewOrder creates a new Order in Pending status.
//
// Parameters:
//   - id: unique identifier for the order
//   - number: generated human-readable order number
//   - distributorID: the fulfillment partner the order is routed to
//   - customer: the ordering customer's identity and contact details
//   - items: ordered line items, must be non-empty
//   - totalAmount: computed order total in minor currency units, must be positive
//   - deliveryMode: free-form delivery mode supplied by checkout
//   - urgent: urgency flag supplied by checkout
//   - now: creation time; also arms the escalation deadline at now + AcknowledgementSLA
//
// The constructor seeds the timeline with a single Pending entry and records
// an OrderCreated domain event for the notification fan-out.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	distributorID kernel.UUID,
	customer Customer,
	items []Item,
	totalAmount int64,
	deliveryMode string,
	urgent bool,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		distributorID.Validate(),
		customer.Validate(),
		validateItems(items),
		validateTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:                 id,
		number:             number,
		distributorID:      distributorID,
		customer:           customer,
		items:              append([]Item(nil), items...),
		totalAmount:        totalAmount,
		deliveryMode:       deliveryMode,
		urgent:             urgent,
		status:             Pending,
		createdAt:          now,
		updatedAt:          now,
		escalationDeadline: now.Add(AcknowledgementSLA),
		isConstructed:      true,
	}
	o.timeline = o.timeline.append(Pending, now, "order created")

	o.recordEvent(OrderCreated{
		OrderID:       o.id,
		OrderNumber:   o.number,
		DistributorID: o.distributorID,
		CustomerName:  o.customer.Name(),
		ItemCount:     len(o.items),
		TotalAmount:   o.totalAmount,
		Deadline:      o.escalationDeadline,
		At:            now,
	})

	return o, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

// DistributorID returns the currently assigned fulfillment partner.
func (o *Order) DistributorID() kernel.UUID {
	return o.distributorID
}

// Customer returns the ordering customer.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// TotalAmount returns the order total in minor currency units.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// DeliveryMode returns the delivery mode supplied at checkout.
func (o *Order) DeliveryMode() string {
	return o.deliveryMode
}

// IsUrgent reports whether the order was flagged urgent at checkout.
func (o *Order) IsUrgent() bool {
	return o.urgent
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// IsEscalated reports whether the order is currently escalated, i.e. it
// breached the SLA and has not been acknowledged or reassigned since.
func (o *Order) IsEscalated() bool {
	return o.isEscalated
}

// EscalationReason returns why the order was escalated, empty when not escalated.
func (o *Order) EscalationReason() string {
	return o.escalationReason
}

// CreatedAt returns the order's creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// EscalationDeadline returns the time by which the order must be
// acknowledged before it escalates. Re-armed on reassignment.
func (o *Order) EscalationDeadline() time.Time {
	return o.escalationDeadline
}

// AcknowledgedAt returns when the order was acknowledged, nil until reached.
func (o *Order) AcknowledgedAt() *time.Time {
	return copyTime(o.acknowledgedAt)
}

// PaymentConfirmedAt returns when payment was confirmed, nil until reached.
func (o *Order) PaymentConfirmedAt() *time.Time {
	return copyTime(o.paymentConfirmedAt)
}

// DispatchedAt returns when the order was dispatched, nil until reached.
func (o *Order) DispatchedAt() *time.Time {
	return copyTime(o.dispatchedAt)
}

// DeliveredAt returns when the order was delivered, nil until reached.
func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

// EscalatedAt returns when the order was escalated, nil if it never was.
func (o *Order) EscalatedAt() *time.Time {
	return copyTime(o.escalatedAt)
}

// Timeline returns a copy of the append-only status history.
func (o *Order) Timeline() Timeline {
	return append(Timeline(nil), o.timeline...)
}

// Communications returns a copy of the contact event log.
func (o *Order) Communications() []CommunicationEntry {
	return append([]CommunicationEntry(nil), o.communications...)
}

// Events returns the domain events recorded since the last ClearEvents call.
// The dispatcher publishes these after the mutation commits.
func (o *Order) Events() []DomainEvent {
	return append([]DomainEvent(nil), o.events...)
}

// ClearEvents drops the recorded events. Called after publishing.
func (o *Order) ClearEvents() {
	o.events = nil
}

// TransitionTo moves the order to the target status if the state machine
// allows it, appends a timeline entry, and stamps the matching milestone
// timestamp. Transitioning to Acknowledged clears the escalated flag.
//
// Returns *errs.InvalidTransitionError and leaves the order unmodified when
// the requested move is illegal.
func (o *Order) TransitionTo(target Status, note string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = newStatus

	switch target {
	case Acknowledged:
		o.acknowledgedAt = &now
		o.isEscalated = false
		o.escalationReason = ""
	case PaymentConfirmed:
		o.paymentConfirmedAt = &now
	case Dispatched:
		o.dispatchedAt = &now
	case Delivered:
		o.deliveredAt = &now
	}

	o.timeline = o.timeline.append(target, now, note)
	o.updatedAt = now

	o.recordEvent(OrderStatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number,
		From:        previous,
		To:          target,
		Note:        note,
		At:          now,
	})

	return nil
}

// Acknowledge marks the order as acknowledged by its fulfillment partner.
// Convenience wrapper over TransitionTo.
func (o *Order) Acknowledge(now time.Time) error {
	return o.TransitionTo(Acknowledged, "order acknowledged", now)
}

// ConfirmPayment marks the order's payment as confirmed.
// Convenience wrapper over TransitionTo.
func (o *Order) ConfirmPayment(now time.Time) error {
	return o.TransitionTo(PaymentConfirmed, "payment confirmed", now)
}

// Cancel moves the order to the terminal Cancelled state.
func (o *Order) Cancel(note string, now time.Time) error {
	return o.TransitionTo(Cancelled, note, now)
}

// Escalate forces the order into the Escalated state after an SLA breach.
//
// Escalation is idempotent: an order that is not currently Pending, or that
// is already escalated, is left untouched and false is returned. This is how
// races between a stale deadline firing and a concurrent status change are
// resolved: the stale fire becomes a silent no-op.
//
// Returns true when the order was escalated by this call.
func (o *Order) Escalate(reason string, now time.Time) bool {
	if o.Validate() != nil || o.status != Pending || o.isEscalated {
		return false
	}

	o.status = Escalated
	o.isEscalated = true
	o.escalatedAt = &now
	o.escalationReason = reason
	o.timeline = o.timeline.append(Escalated, now, reason)
	o.updatedAt = now

	o.recordEvent(OrderEscalated{
		OrderID:       o.id,
		OrderNumber:   o.number,
		DistributorID: o.distributorID,
		Reason:        reason,
		At:            now,
	})

	return true
}

// Reassign routes the order to a new fulfillment partner. The order returns
// to Pending, the escalated flag is cleared, and a fresh escalation deadline
// is armed at now + AcknowledgementSLA.
//
// Reassignment is not a resting state: the timeline records a Pending entry
// noting the new partner, keeping the last-entry-equals-status invariant.
func (o *Order) Reassign(newDistributorID kernel.UUID, note string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := newDistributorID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(),
			Pending.String(),
			errors.New("terminal orders cannot be reassigned"),
		)
	}

	o.distributorID = newDistributorID
	o.status = Pending
	o.isEscalated = false
	o.escalationReason = ""
	o.escalationDeadline = now.Add(AcknowledgementSLA)

	entryNote := fmt.Sprintf("reassigned to partner %s", newDistributorID)
	if note != "" {
		entryNote = fmt.Sprintf("%s: %s", entryNote, note)
	}
	o.timeline = o.timeline.append(Pending, now, entryNote)
	o.updatedAt = now

	o.recordEvent(OrderReassigned{
		OrderID:       o.id,
		OrderNumber:   o.number,
		DistributorID: o.distributorID,
		Deadline:      o.escalationDeadline,
		At:            now,
	})

	return nil
}

// IsOverdue reports whether the order is still Pending, not yet escalated,
// and past its escalation deadline. The reconciliation sweep escalates every
// order for which this holds.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.status == Pending && !o.isEscalated && !now.Before(o.escalationDeadline)
}

// LogCommunication appends a staff/customer contact event to the order.
func (o *Order) LogCommunication(channel, message string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}

	o.communications = append(o.communications, NewCommunicationEntry(channel, message, now))
	o.updatedAt = now
	return nil
}

func (o *Order) recordEvent(event DomainEvent) {
	o.events = append(o.events, event)
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	return nil
}

func validateTotalAmount(totalAmount int64) error {
	if totalAmount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalAmount",
			fmt.Errorf("%d is not greater than 0", totalAmount),
		)
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
