package http

// Error is the standard error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CustomerRequest carries the ordering customer's details.
type CustomerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// OrderItemRequest carries one line item of an incoming order.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	DistributorID string             `json:"distributorId"`
	Customer      CustomerRequest    `json:"customer"`
	Items         []OrderItemRequest `json:"items"`
	TotalAmount   int64              `json:"totalAmount"`
	DeliveryMode  string             `json:"deliveryMode,omitempty"`
	Urgent        bool               `json:"urgent"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transition.
type TransitionOrderRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// ReassignOrderRequest is the body of POST /api/v1/orders/:id/reassign.
type ReassignOrderRequest struct {
	DistributorID string `json:"distributorId"`
	Note          string `json:"note,omitempty"`
}

// EscalateOrderRequest is the body of POST /api/v1/orders/:id/escalate.
type EscalateOrderRequest struct {
	Reason string `json:"reason"`
}

// EscalateOrderResponse reports whether the escalation took effect. False
// means the order was no longer eligible (already escalated or past Pending).
type EscalateOrderResponse struct {
	Escalated bool `json:"escalated"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Note string `json:"note,omitempty"`
}

// SessionRequest is the body of POST /api/v1/sessions. DistributorID is
// required for the distributor role and ignored otherwise.
type SessionRequest struct {
	ID            string `json:"id"`
	Role          string `json:"role"`
	DistributorID string `json:"distributorId,omitempty"`
}

// PendingOrderResponse is one row of GET /api/v1/orders/pending.
type PendingOrderResponse struct {
	ID                 string `json:"id"`
	Number             string `json:"number"`
	DistributorID      string `json:"distributorId"`
	CustomerName       string `json:"customerName"`
	TotalAmount        int64  `json:"totalAmount"`
	Urgent             bool   `json:"urgent"`
	Status             string `json:"status"`
	CreatedAt          string `json:"createdAt"`
	EscalationDeadline string `json:"escalationTime"`
}

// EscalatedOrderResponse is one row of GET /api/v1/orders/escalated.
type EscalatedOrderResponse struct {
	ID               string  `json:"id"`
	Number           string  `json:"number"`
	DistributorID    string  `json:"distributorId"`
	CustomerName     string  `json:"customerName"`
	TotalAmount      int64   `json:"totalAmount"`
	Status           string  `json:"status"`
	EscalationReason string  `json:"escalationReason"`
	EscalatedAt      *string `json:"escalatedAt,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}
