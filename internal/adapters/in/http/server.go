// Package http exposes the order board over a REST API.
// It coordinates between HTTP handlers and application use cases, translating
// the error taxonomy of the lifecycle engine into HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the order board API.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	deliverOrderHandler commands.DeliverOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	// Query handlers
	getOpenOrdersHandler       queries.GetOpenOrdersQueryHandler
	getOwnerOrdersHandler      queries.GetOwnerOrdersQueryHandler
	getOrderDeliveriesHandler  queries.GetOrderDeliveriesQueryHandler
	getParticipantStatsHandler queries.GetParticipantStatsQueryHandler

	ledger          ports.Ledger
	defaultOrderTTL time.Duration
}

// NewServer creates a new HTTP server with the required command and query handlers.
// Orders posted without an explicit expiry get defaultOrderTTL.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOwnerOrdersHandler queries.GetOwnerOrdersQueryHandler,
	getOrderDeliveriesHandler queries.GetOrderDeliveriesQueryHandler,
	getParticipantStatsHandler queries.GetParticipantStatsQueryHandler,
	ledger ports.Ledger,
	defaultOrderTTL time.Duration,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		deliverOrderHandler:        deliverOrderHandler,
		cancelOrderHandler:         cancelOrderHandler,
		getOpenOrdersHandler:       getOpenOrdersHandler,
		getOwnerOrdersHandler:      getOwnerOrdersHandler,
		getOrderDeliveriesHandler:  getOrderDeliveriesHandler,
		getParticipantStatsHandler: getParticipantStatsHandler,
		ledger:                     ledger,
		defaultOrderTTL:            defaultOrderTTL,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOpenOrders)
	api.POST("/orders/:id/deliveries", s.DeliverOrder)
	api.GET("/orders/:id/deliveries", s.GetOrderDeliveries)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/participants/:id/orders", s.GetOwnerOrders)
	api.GET("/participants/:id/stats", s.GetParticipantStats)
	api.GET("/participants/:id/balance", s.GetBalance)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - posts a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid owner id: "+err.Error())
	}

	itemSpec, err := order.NewItemSpec(req.ItemType, req.ItemAttributes)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid item: "+err.Error())
	}

	expiresAt := time.Now().Add(s.defaultOrderTTL)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, ownerID, itemSpec, req.Quantity, req.PricePerUnit, req.Fee, expiresAt,
	)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// DeliverOrder handles POST /api/v1/orders/:id/deliveries - fulfills an order.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	var req DeliverOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	delivererID, err := kernel.UUIDFromString(req.DelivererID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid deliverer id: "+err.Error())
	}

	offeredItem, err := order.NewItemSpec(req.ItemType, req.ItemAttributes)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid item: "+err.Error())
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, delivererID, offeredItem, req.Quantity)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delivery data: "+err.Error())
	}

	record, err := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd)

	var partialErr *commands.PartialDeliveryError
	if errors.As(err, &partialErr) {
		// The deliverer was paid even though not everything could be recorded.
		return ctx.JSON(http.StatusOK, DeliverOrderResponse{
			OrderID:       partialErr.OrderID.String(),
			UnitsAccepted: partialErr.UnitsRecorded,
			Payment:       partialErr.Payment,
			Partial:       true,
		})
	}
	if err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliverOrderResponse{
		OrderID:       record.OrderID().String(),
		UnitsAccepted: record.Units(),
		Payment:       record.Payment(),
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - withdraws an order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	requesterID, err := kernel.UUIDFromString(req.RequesterID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid requester id: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, requesterID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid cancel data: "+err.Error())
	}

	refund, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CancelOrderResponse{
		OrderID: orderID.String(),
		Refund:  refund,
	})
}

// GetOpenOrders handles GET /api/v1/orders - lists orders accepting deliveries.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOwnerOrders handles GET /api/v1/participants/:id/orders - lists a
// participant's own orders across all statuses.
func (s *Server) GetOwnerOrders(ctx echo.Context) error {
	ownerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid participant id: "+err.Error())
	}

	query, err := queries.NewGetOwnerOrdersQuery(ownerID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	orders, err := s.getOwnerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrderDeliveries handles GET /api/v1/orders/:id/deliveries - lists an
// order's delivery history.
func (s *Server) GetOrderDeliveries(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderDeliveriesQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	deliveries, err := s.getOrderDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve deliveries")
	}

	response := make([]DeliveryDTO, len(deliveries))
	for i, d := range deliveries {
		response[i] = DeliveryDTO{
			ID:          d.ID.String(),
			OrderID:     d.OrderID.String(),
			DelivererID: d.DelivererID.String(),
			Units:       d.Units,
			Payment:     d.Payment,
			DeliveredAt: d.DeliveredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetParticipantStats handles GET /api/v1/participants/:id/stats.
func (s *Server) GetParticipantStats(ctx echo.Context) error {
	participantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid participant id: "+err.Error())
	}

	query, err := queries.NewGetParticipantStatsQuery(participantID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	statsResp, err := s.getParticipantStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve stats")
	}

	return ctx.JSON(http.StatusOK, ParticipantStatsDTO{
		ParticipantID:   statsResp.ParticipantID.String(),
		OrdersCreated:   statsResp.OrdersCreated,
		OrdersCompleted: statsResp.OrdersCompleted,
		OrdersDelivered: statsResp.OrdersDelivered,
		TotalSpent:      statsResp.TotalSpent,
		TotalEarned:     statsResp.TotalEarned,
	})
}

// GetBalance handles GET /api/v1/participants/:id/balance - proxies the
// participant's current balance from the currency provider.
func (s *Server) GetBalance(ctx echo.Context) error {
	participantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid participant id: "+err.Error())
	}

	balance, err := s.ledger.Balance(ctx.Request().Context(), participantID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadGateway, "Failed to retrieve balance")
	}

	return ctx.JSON(http.StatusOK, BalanceDTO{
		ParticipantID: participantID.String(),
		Balance:       balance,
	})
}

// commandError translates lifecycle engine errors into HTTP responses.
func (s *Server) commandError(ctx echo.Context, err error) error {
	var persistenceErr *commands.PersistenceError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, "Order not found")
	case errors.Is(err, commands.ErrQuotaExceeded):
		return errorJSON(ctx, http.StatusConflict, "Active order limit reached")
	case errors.Is(err, commands.ErrNotOrderOwner):
		return errorJSON(ctx, http.StatusForbidden, "Only the order owner may cancel it")
	case errors.Is(err, commands.ErrOrderNotActive):
		return errorJSON(ctx, http.StatusConflict, "Order is no longer accepting deliveries")
	case errors.Is(err, commands.ErrOrderNotCancellable):
		return errorJSON(ctx, http.StatusConflict, "Order can no longer be cancelled")
	case errors.Is(err, commands.ErrItemMismatch):
		return errorJSON(ctx, http.StatusUnprocessableEntity, "Offered item does not match the order")
	case errors.Is(err, order.ErrNothingToDeliver):
		return errorJSON(ctx, http.StatusConflict, "Order has no remaining quantity")
	case errors.Is(err, commands.ErrLedgerFailure):
		return errorJSON(ctx, http.StatusPaymentRequired, "Ledger operation failed")
	case errors.As(err, &persistenceErr):
		return errorJSON(ctx, http.StatusInternalServerError, "Order could not be persisted")
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorDTO{Code: code, Message: message})
}
