package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetEscalatedOrdersQueryHandler reads escalated order summaries off the
// database. The escalation flag, not the status column, drives the filter:
// an escalated order stays flagged until a partner acknowledges it.
type GetEscalatedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetEscalatedOrdersQueryHandler creates a handler for escalated order queries.
func NewGetEscalatedOrdersQueryHandler(db *gorm.DB) GetEscalatedOrdersQueryHandler {
	return GetEscalatedOrdersQueryHandler{db: db}
}

// Handle executes the query and returns escalated order summaries,
// oldest escalation first.
func (h GetEscalatedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetEscalatedOrdersQuery,
) ([]GetEscalatedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			distributor_id,
			customer_name,
			total_amount,
			status,
			escalation_reason,
			escalated_at,
			created_at
		FROM orders
		WHERE is_escalated
		ORDER BY escalated_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetEscalatedOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetEscalatedOrdersQueryResponse
		var id, distributorID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.Number,
			&distributorID,
			&resp.CustomerName,
			&resp.TotalAmount,
			&status,
			&resp.EscalationReason,
			&resp.EscalatedAt,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.DistributorID, err = kernel.UUIDFromBytes(distributorID[:]); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
