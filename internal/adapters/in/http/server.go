// Package http exposes the order processing API over echo. Handlers translate
// JSON bodies into commands and queries, and domain errors back into HTTP
// statuses; all business decisions live in the application layer.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/queries"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	addOrderItemHandler      commands.AddOrderItemCommandHandler
	removeOrderItemHandler   commands.RemoveOrderItemCommandHandler
	recordPaymentHandler     commands.RecordPaymentCommandHandler
	createStatusHandler      commands.CreateStatusCommandHandler
	updateStatusHandler      commands.UpdateStatusCommandHandler
	createTransitionHandler  commands.CreateTransitionCommandHandler

	getOrderHandler          queries.GetOrderQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
	getAllStatusesHandler    queries.GetAllStatusesQueryHandler
	getTransitionsHandler    queries.GetTransitionsFromQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	addOrderItemHandler commands.AddOrderItemCommandHandler,
	removeOrderItemHandler commands.RemoveOrderItemCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	createStatusHandler commands.CreateStatusCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	createTransitionHandler commands.CreateTransitionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getAllStatusesHandler queries.GetAllStatusesQueryHandler,
	getTransitionsHandler queries.GetTransitionsFromQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		addOrderItemHandler:      addOrderItemHandler,
		removeOrderItemHandler:   removeOrderItemHandler,
		recordPaymentHandler:     recordPaymentHandler,
		createStatusHandler:      createStatusHandler,
		updateStatusHandler:      updateStatusHandler,
		createTransitionHandler:  createTransitionHandler,
		getOrderHandler:          getOrderHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		getAllStatusesHandler:    getAllStatusesHandler,
		getTransitionsHandler:    getTransitionsHandler,
	}
}

// RegisterRoutes binds all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrdersByStatus)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/items", s.AddOrderItem)
	api.DELETE("/orders/:id/items/:itemId", s.RemoveOrderItem)
	api.POST("/orders/:id/payments", s.RecordPayment)

	api.GET("/statuses", s.GetAllStatuses)
	api.POST("/statuses", s.CreateStatus)
	api.PUT("/statuses/:code", s.UpdateStatus)
	api.GET("/statuses/:code/transitions", s.GetTransitionsFrom)
	api.POST("/transitions", s.CreateTransition)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.ItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.ItemInput{
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		request.CustomerName,
		request.CustomerEmail,
		request.CustomerClass,
		request.Currency,
		items,
		request.IsPriority,
		request.Notes,
		request.CreatedBy,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:          cmd.OrderID().String(),
		OrderNumber: cmd.OrderNumber().Value(),
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	model, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromReadModel(model))
}

// GetOrdersByStatus handles GET /api/v1/orders?status=CODE.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	query, err := queries.NewGetOrdersByStatusQuery(ctx.QueryParam("status"))
	if err != nil {
		return respondError(ctx, err)
	}

	models, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummariesFromReadModel(models))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, request.TargetStatus, request.Reason, request.ChangedBy, request.IsApproved)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request CancelOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason, request.CancelledBy)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderItem handles POST /api/v1/orders/:id/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request OrderItemRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewAddOrderItemCommand(
		orderID, request.ProductCode, request.ProductName, request.Quantity, request.UnitPrice)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.addOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:id/items/:itemId.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.removeOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordPayment handles POST /api/v1/orders/:id/payments.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request RecordPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRecordPaymentCommand(
		orderID, request.Amount, request.Method, request.Status, request.TransactionID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetAllStatuses handles GET /api/v1/statuses.
func (s *Server) GetAllStatuses(ctx echo.Context) error {
	includeInactive := ctx.QueryParam("include_inactive") == "true"

	models, err := s.getAllStatusesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAllStatusesQuery(includeInactive))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusesFromReadModel(models))
}

// CreateStatus handles POST /api/v1/statuses.
func (s *Server) CreateStatus(ctx echo.Context) error {
	var request StatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateStatusCommand(
		request.Code, request.Name, request.Description, request.DisplayOrder, flagsFromRequest(request))
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateStatus handles PUT /api/v1/statuses/:code.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	var request StatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateStatusCommand(
		ctx.Param("code"), request.Name, request.Description,
		request.DisplayOrder, flagsFromRequest(request), request.IsActive)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTransitionsFrom handles GET /api/v1/statuses/:code/transitions.
func (s *Server) GetTransitionsFrom(ctx echo.Context) error {
	query, err := queries.NewGetTransitionsFromQuery(ctx.Param("code"))
	if err != nil {
		return respondError(ctx, err)
	}

	models, err := s.getTransitionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionsFromReadModel(models))
}

// CreateTransition handles POST /api/v1/transitions.
func (s *Server) CreateTransition(ctx echo.Context) error {
	var request TransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateTransitionCommand(
		request.FromStatus, request.ToStatus, request.DisplayOrder, request.Description,
		status.Rules{
			RequiresApproval:       request.RequiresApproval,
			RequiresPayment:        request.RequiresPayment,
			RequiresInventoryCheck: request.RequiresInventoryCheck,
			RequiresReason:         request.RequiresReason,
		})
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

func flagsFromRequest(request StatusRequest) status.Flags {
	return status.Flags{
		IsFinal:                      request.IsFinal,
		IsCancellable:                request.IsCancellable,
		IsModifiable:                 request.IsModifiable,
		TriggersPayment:              request.TriggersPayment,
		TriggersInventoryReservation: request.TriggersInventoryReservation,
		TriggersShipping:             request.TriggersShipping,
		SendsNotification:            request.SendsNotification,
	}
}
