package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/notifications"
	"fulfillment/internal/pkg/errs"
)

// Server handles the HTTP API for order intake and the order lifecycle.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	escalateOrderHandler   commands.EscalateOrderCommandHandler
	reassignOrderHandler   commands.ReassignOrderCommandHandler

	// Query handlers
	getPendingOrdersHandler   queries.GetPendingOrdersQueryHandler
	getEscalatedOrdersHandler queries.GetEscalatedOrdersQueryHandler

	announcer *notifications.Announcer
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	escalateOrderHandler commands.EscalateOrderCommandHandler,
	reassignOrderHandler commands.ReassignOrderCommandHandler,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	getEscalatedOrdersHandler queries.GetEscalatedOrdersQueryHandler,
	announcer *notifications.Announcer,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		transitionOrderHandler:    transitionOrderHandler,
		escalateOrderHandler:      escalateOrderHandler,
		reassignOrderHandler:      reassignOrderHandler,
		getPendingOrdersHandler:   getPendingOrdersHandler,
		getEscalatedOrdersHandler: getEscalatedOrdersHandler,
		announcer:                 announcer,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/pending", s.GetPendingOrders)
	api.GET("/orders/escalated", s.GetEscalatedOrders)
	api.POST("/orders/:id/acknowledge", s.AcknowledgeOrder)
	api.POST("/orders/:id/confirm-payment", s.ConfirmPayment)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/escalate", s.EscalateOrder)
	api.POST("/orders/:id/reassign", s.ReassignOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/sessions", s.RegisterSession)
	api.DELETE("/sessions/:id", s.UnregisterSession)
}

// CreateOrder handles POST /api/v1/orders - registers a new purchase order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	distributorID, err := kernel.UUIDFromString(request.DistributorID)
	if err != nil {
		return badRequest(ctx, "Invalid distributor id: "+err.Error())
	}

	customerID, err := kernel.UUIDFromString(request.Customer.ID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	items := make([]commands.OrderItemData, 0, len(request.Items))
	for _, item := range request.Items {
		productID, productErr := kernel.UUIDFromString(item.ProductID)
		if productErr != nil {
			return badRequest(ctx, "Invalid product id: "+productErr.Error())
		}

		items = append(items, commands.OrderItemData{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		distributorID,
		commands.CustomerData{
			ID:    customerID,
			Name:  request.Customer.Name,
			Phone: request.Customer.Phone,
		},
		items,
		request.TotalAmount,
		request.DeliveryMode,
		request.Urgent,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, created.Snapshot())
}

// AcknowledgeOrder handles POST /api/v1/orders/:id/acknowledge - a distributor
// confirms they have seen the order and started work on it.
func (s *Server) AcknowledgeOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewAcknowledgeOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	return s.handleTransition(ctx, cmd)
}

// ConfirmPayment handles POST /api/v1/orders/:id/confirm-payment.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	return s.handleTransition(ctx, cmd)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves the order
// to an explicit target status with an optional timeline note.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request TransitionOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, request.Note)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	return s.handleTransition(ctx, cmd)
}

// EscalateOrder handles POST /api/v1/orders/:id/escalate - flags the order
// for supervisory attention. Responds with escalated=false when the order is
// no longer eligible; that outcome is not an error.
func (s *Server) EscalateOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request EscalateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewEscalateOrderCommand(orderID, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	escalated, err := s.escalateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, EscalateOrderResponse{Escalated: escalated})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Note)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	return s.handleTransition(ctx, cmd)
}

// ReassignOrder handles POST /api/v1/orders/:id/reassign - routes the order to
// a different fulfillment partner and restarts its acknowledgement window.
func (s *Server) ReassignOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request ReassignOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	distributorID, err := kernel.UUIDFromString(request.DistributorID)
	if err != nil {
		return badRequest(ctx, "Invalid distributor id: "+err.Error())
	}

	cmd, err := commands.NewReassignOrderCommand(orderID, distributorID, request.Note)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	reassigned, err := s.reassignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, reassigned.Snapshot())
}

// GetPendingOrders handles GET /api/v1/orders/pending - retrieves orders
// awaiting acknowledgement. An optional distributor_id query parameter scopes
// the result to one fulfillment partner's work queue.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	var scope *kernel.UUID
	if raw := ctx.QueryParam("distributor_id"); raw != "" {
		distributorID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid distributor id: "+err.Error())
		}
		scope = &distributorID
	}

	query, err := queries.NewGetPendingOrdersQuery(scope)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	pending, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve pending orders")
	}

	response := make([]PendingOrderResponse, len(pending))
	for i, row := range pending {
		response[i] = PendingOrderResponse{
			ID:                 row.ID.String(),
			Number:             row.Number,
			DistributorID:      row.DistributorID.String(),
			CustomerName:       row.CustomerName,
			TotalAmount:        row.TotalAmount,
			Urgent:             row.Urgent,
			Status:             row.Status.String(),
			CreatedAt:          row.CreatedAt.Format(time.RFC3339),
			EscalationDeadline: row.EscalationDeadline.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetEscalatedOrders handles GET /api/v1/orders/escalated - retrieves orders
// flagged for supervisor attention, oldest escalation first.
func (s *Server) GetEscalatedOrders(ctx echo.Context) error {
	query := queries.NewGetEscalatedOrdersQuery()

	escalated, err := s.getEscalatedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve escalated orders")
	}

	response := make([]EscalatedOrderResponse, len(escalated))
	for i, row := range escalated {
		var escalatedAt *string
		if row.EscalatedAt != nil {
			formatted := row.EscalatedAt.Format(time.RFC3339)
			escalatedAt = &formatted
		}

		response[i] = EscalatedOrderResponse{
			ID:               row.ID.String(),
			Number:           row.Number,
			DistributorID:    row.DistributorID.String(),
			CustomerName:     row.CustomerName,
			TotalAmount:      row.TotalAmount,
			Status:           row.Status.String(),
			EscalationReason: row.EscalationReason,
			EscalatedAt:      escalatedAt,
			CreatedAt:        row.CreatedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterSession handles POST /api/v1/sessions - starts reminder and
// new-order announcements for a connected operator session.
func (s *Server) RegisterSession(ctx echo.Context) error {
	var request SessionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if request.ID == "" {
		return badRequest(ctx, "Session id is required")
	}

	role := services.Role(request.Role)
	if err := role.Validate(); err != nil {
		return badRequest(ctx, "Invalid role: "+err.Error())
	}

	viewer := services.Viewer{Role: role}
	if role == services.RoleDistributor {
		distributorID, err := kernel.UUIDFromString(request.DistributorID)
		if err != nil {
			return badRequest(ctx, "Invalid distributor id: "+err.Error())
		}
		viewer.DistributorID = distributorID
	}

	s.announcer.RegisterSession(request.ID, viewer)
	return ctx.NoContent(http.StatusCreated)
}

// UnregisterSession handles DELETE /api/v1/sessions/:id.
func (s *Server) UnregisterSession(ctx echo.Context) error {
	s.announcer.UnregisterSession(ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleTransition(ctx echo.Context, cmd commands.TransitionOrderCommand) error {
	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, updated.Snapshot())
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// commandError maps application errors onto HTTP statuses: unknown orders to
// 404, illegal lifecycle moves to 409, everything else to 500.
func commandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return internalError(ctx, "Failed to process order")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
