package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Snapshot is the serializable representation of an Order. It is the shape
// persisted to storage and exchanged with the external order store: a fetch
// returns the full current collection of snapshots and a push accepts the
// same shape it reads.
//
// Serializing and deserializing a snapshot preserves every order field,
// including the nested items, timeline, and communication log.
type Snapshot struct {
	ID                 string                  `json:"id"`
	OrderNumber        string                  `json:"orderNumber"`
	DistributorID      string                  `json:"distributorId"`
	Customer           CustomerSnapshot        `json:"customer"`
	Items              []ItemSnapshot          `json:"items"`
	TotalAmount        int64                   `json:"totalAmount"`
	DeliveryMode       string                  `json:"deliveryMode,omitempty"`
	Urgent             bool                    `json:"urgent"`
	Status             string                  `json:"status"`
	IsEscalated        bool                    `json:"isEscalated"`
	EscalationReason   string                  `json:"escalationReason,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
	EscalationDeadline time.Time               `json:"escalationTime"`
	AcknowledgedAt     *time.Time              `json:"acknowledgedAt,omitempty"`
	PaymentConfirmedAt *time.Time              `json:"paymentConfirmedAt,omitempty"`
	DispatchedAt       *time.Time              `json:"dispatchedAt,omitempty"`
	DeliveredAt        *time.Time              `json:"deliveredAt,omitempty"`
	EscalatedAt        *time.Time              `json:"escalatedAt,omitempty"`
	Timeline           []TimelineEntrySnapshot `json:"timeline"`
	Communications     []CommunicationSnapshot `json:"communications,omitempty"`
}

// CustomerSnapshot is the serializable form of a Customer value object.
type CustomerSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// ItemSnapshot is the serializable form of an ordered line item.
type ItemSnapshot struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}

// TimelineEntrySnapshot is the serializable form of a timeline entry.
type TimelineEntrySnapshot struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// CommunicationSnapshot is the serializable form of a communication log entry.
type CommunicationSnapshot struct {
	Channel   string    `json:"channel"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot captures the order's complete state for persistence or sync.
func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, len(o.items))
	for i, item := range o.items {
		items[i] = ItemSnapshot{
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		}
	}

	timeline := make([]TimelineEntrySnapshot, len(o.timeline))
	for i, entry := range o.timeline {
		timeline[i] = TimelineEntrySnapshot{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
		}
	}

	var communications []CommunicationSnapshot
	for _, entry := range o.communications {
		communications = append(communications, CommunicationSnapshot{
			Channel:   entry.Channel(),
			Message:   entry.Message(),
			Timestamp: entry.Timestamp(),
		})
	}

	return Snapshot{
		ID:            o.id.String(),
		OrderNumber:   o.number.String(),
		DistributorID: o.distributorID.String(),
		Customer: CustomerSnapshot{
			ID:    o.customer.ID().String(),
			Name:  o.customer.Name(),
			Phone: o.customer.Phone(),
		},
		Items:              items,
		TotalAmount:        o.totalAmount,
		DeliveryMode:       o.deliveryMode,
		Urgent:             o.urgent,
		Status:             o.status.String(),
		IsEscalated:        o.isEscalated,
		EscalationReason:   o.escalationReason,
		CreatedAt:          o.createdAt,
		UpdatedAt:          o.updatedAt,
		EscalationDeadline: o.escalationDeadline,
		AcknowledgedAt:     copyTime(o.acknowledgedAt),
		PaymentConfirmedAt: copyTime(o.paymentConfirmedAt),
		DispatchedAt:       copyTime(o.dispatchedAt),
		DeliveredAt:        copyTime(o.deliveredAt),
		EscalatedAt:        copyTime(o.escalatedAt),
		Timeline:           timeline,
		Communications:     communications,
	}
}

// RestoreOrder reconstructs an order aggregate from a snapshot read back
// from persistence or the external order store. The snapshot is re-validated
// so invariants broken by external data are caught at the boundary; no
// domain events are recorded by restoration.
func RestoreOrder(s Snapshot) (*Order, error) {
	id, err := kernel.UUIDFromString(s.ID)
	if err != nil {
		return nil, err
	}
	number, err := kernel.OrderNumberFromString(s.OrderNumber)
	if err != nil {
		return nil, err
	}
	distributorID, err := kernel.UUIDFromString(s.DistributorID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromString(s.Customer.ID)
	if err != nil {
		return nil, err
	}
	customer, err := NewCustomer(customerID, s.Customer.Name, s.Customer.Phone)
	if err != nil {
		return nil, err
	}
	status, err := StatusFromString(s.Status)
	if err != nil {
		return nil, err
	}

	if len(s.Items) == 0 {
		return nil, ErrItemsAreRequired
	}
	items := make([]Item, len(s.Items))
	for i, is := range s.Items {
		productID, itemErr := kernel.UUIDFromString(is.ProductID)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := NewItem(productID, is.Name, is.Quantity, is.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items[i] = item
	}

	timeline, err := restoreTimeline(s.Timeline, status)
	if err != nil {
		return nil, err
	}

	var communications []CommunicationEntry
	for _, cs := range s.Communications {
		communications = append(communications, NewCommunicationEntry(cs.Channel, cs.Message, cs.Timestamp))
	}

	if err = validateTotalAmount(s.TotalAmount); err != nil {
		return nil, err
	}

	return &Order{
		id:                 id,
		number:             number,
		distributorID:      distributorID,
		customer:           customer,
		items:              items,
		totalAmount:        s.TotalAmount,
		deliveryMode:       s.DeliveryMode,
		urgent:             s.Urgent,
		status:             status,
		isEscalated:        s.IsEscalated,
		escalationReason:   s.EscalationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		escalationDeadline: s.EscalationDeadline,
		acknowledgedAt:     copyTime(s.AcknowledgedAt),
		paymentConfirmedAt: copyTime(s.PaymentConfirmedAt),
		dispatchedAt:       copyTime(s.DispatchedAt),
		deliveredAt:        copyTime(s.DeliveredAt),
		escalatedAt:        copyTime(s.EscalatedAt),
		timeline:           timeline,
		communications:     communications,
		isConstructed:      true,
	}, nil
}

func restoreTimeline(entries []TimelineEntrySnapshot, current Status) (Timeline, error) {
	if len(entries) == 0 {
		return nil, errs.NewValueIsRequiredError("timeline")
	}

	timeline := make(Timeline, 0, len(entries))
	var previous time.Time
	for _, es := range entries {
		status, err := StatusFromString(es.Status)
		if err != nil {
			return nil, err
		}
		if es.Timestamp.Before(previous) {
			return nil, errs.NewValueIsInvalidError("timeline timestamps must be non-decreasing")
		}
		previous = es.Timestamp
		timeline = append(timeline, NewTimelineEntry(status, es.Timestamp, es.Note))
	}

	if last, _ := timeline.Last(); last.Status() != current {
		return nil, errs.NewValueIsInvalidError("timeline tail must match the order status")
	}

	return timeline, nil
}
