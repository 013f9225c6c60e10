// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Scalar fields the read side filters and sorts on are first-class columns;
// the nested items, timeline, and communication log live in jsonb columns.
// Lifecycle timestamps are owned by the domain, so GORM's automatic
// create/update time tracking is disabled.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number             string    `gorm:"uniqueIndex"`
	DistributorID      uuid.UUID `gorm:"type:uuid;index"`
	CustomerID         uuid.UUID `gorm:"type:uuid"`
	CustomerName       string
	CustomerPhone      string
	Items              ItemsJSON `gorm:"type:jsonb"`
	TotalAmount        int64
	DeliveryMode       string
	Urgent             bool
	Status             int  `gorm:"index"`
	IsEscalated        bool `gorm:"index"`
	EscalationReason   string
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
	EscalationDeadline time.Time
	AcknowledgedAt     *time.Time
	PaymentConfirmedAt *time.Time
	DispatchedAt       *time.Time
	DeliveredAt        *time.Time
	EscalatedAt        *time.Time
	Timeline           TimelineJSON       `gorm:"type:jsonb"`
	Communications     CommunicationsJSON `gorm:"type:jsonb"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemsJSON stores the order's line items as a jsonb column.
type ItemsJSON []order.ItemSnapshot

func (j ItemsJSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *ItemsJSON) Scan(value any) error {
	return scanJSON(value, j)
}

// TimelineJSON stores the order's status timeline as a jsonb column.
type TimelineJSON []order.TimelineEntrySnapshot

func (j TimelineJSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *TimelineJSON) Scan(value any) error {
	return scanJSON(value, j)
}

// CommunicationsJSON stores the order's communication log as a jsonb column.
type CommunicationsJSON []order.CommunicationSnapshot

func (j CommunicationsJSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *CommunicationsJSON) Scan(value any) error {
	return scanJSON(value, j)
}

func scanJSON(value, target any) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	return json.Unmarshal(raw, target)
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	snapshot := aggregate.Snapshot()

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Number:             snapshot.OrderNumber,
		DistributorID:      aggregate.DistributorID().Bytes(),
		CustomerID:         aggregate.Customer().ID().Bytes(),
		CustomerName:       snapshot.Customer.Name,
		CustomerPhone:      snapshot.Customer.Phone,
		Items:              ItemsJSON(snapshot.Items),
		TotalAmount:        snapshot.TotalAmount,
		DeliveryMode:       snapshot.DeliveryMode,
		Urgent:             snapshot.Urgent,
		Status:             int(aggregate.Status()),
		IsEscalated:        snapshot.IsEscalated,
		EscalationReason:   snapshot.EscalationReason,
		CreatedAt:          snapshot.CreatedAt,
		UpdatedAt:          snapshot.UpdatedAt,
		EscalationDeadline: snapshot.EscalationDeadline,
		AcknowledgedAt:     snapshot.AcknowledgedAt,
		PaymentConfirmedAt: snapshot.PaymentConfirmedAt,
		DispatchedAt:       snapshot.DispatchedAt,
		DeliveredAt:        snapshot.DeliveredAt,
		EscalatedAt:        snapshot.EscalatedAt,
		Timeline:           TimelineJSON(snapshot.Timeline),
		Communications:     CommunicationsJSON(snapshot.Communications),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder so every
// persistence row passes the same invariant checks as synced data.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	distributorID, err := kernel.UUIDFromBytes(dto.DistributorID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	snapshot := order.Snapshot{
		ID:            id.String(),
		OrderNumber:   dto.Number,
		DistributorID: distributorID.String(),
		Customer: order.CustomerSnapshot{
			ID:    customerID.String(),
			Name:  dto.CustomerName,
			Phone: dto.CustomerPhone,
		},
		Items:              []order.ItemSnapshot(dto.Items),
		TotalAmount:        dto.TotalAmount,
		DeliveryMode:       dto.DeliveryMode,
		Urgent:             dto.Urgent,
		Status:             order.Status(dto.Status).String(),
		IsEscalated:        dto.IsEscalated,
		EscalationReason:   dto.EscalationReason,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		EscalationDeadline: dto.EscalationDeadline,
		AcknowledgedAt:     dto.AcknowledgedAt,
		PaymentConfirmedAt: dto.PaymentConfirmedAt,
		DispatchedAt:       dto.DispatchedAt,
		DeliveredAt:        dto.DeliveredAt,
		EscalatedAt:        dto.EscalatedAt,
		Timeline:           []order.TimelineEntrySnapshot(dto.Timeline),
		Communications:     []order.CommunicationSnapshot(dto.Communications),
	}

	return order.RestoreOrder(snapshot)
}
