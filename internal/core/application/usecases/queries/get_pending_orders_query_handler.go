package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads pending order summaries straight off
// the database, bypassing aggregate reconstruction. Rows come back oldest
// first so the most overdue orders surface at the top of the queue.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for pending order queries.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query and returns pending order summaries.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			number,
			distributor_id,
			customer_name,
			total_amount,
			urgent,
			status,
			created_at,
			escalation_deadline
		FROM orders
		WHERE status = ?
	`
	args := []any{order.Pending}

	if scope := query.DistributorID(); scope != nil {
		sql += " AND distributor_id = ?"
		args = append(args, scope.Bytes())
	}
	sql += " ORDER BY created_at"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetPendingOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetPendingOrdersQueryResponse
		var id, distributorID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.Number,
			&distributorID,
			&resp.CustomerName,
			&resp.TotalAmount,
			&resp.Urgent,
			&status,
			&resp.CreatedAt,
			&resp.EscalationDeadline,
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
