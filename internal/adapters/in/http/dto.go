package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerClass string             `json:"customer_class"`
	Currency      string             `json:"currency"`
	IsPriority    bool               `json:"is_priority"`
	Notes         string             `json:"notes"`
	CreatedBy     string             `json:"created_by"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderResponse returns the generated identifiers of a placed order.
type CreateOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
}

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	TargetStatus string `json:"target_status"`
	Reason       string `json:"reason"`
	ChangedBy    string `json:"changed_by"`
	IsApproved   bool   `json:"is_approved"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelled_by"`
}

// RecordPaymentRequest is the body of POST /api/v1/orders/:id/payments.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
}

// StatusRequest is the body of POST /api/v1/statuses and PUT
// /api/v1/statuses/:code.
type StatusRequest struct {
	Code                         string `json:"code"`
	Name                         string `json:"name"`
	Description                  string `json:"description"`
	DisplayOrder                 int    `json:"display_order"`
	IsFinal                      bool   `json:"is_final"`
	IsCancellable                bool   `json:"is_cancellable"`
	IsModifiable                 bool   `json:"is_modifiable"`
	TriggersPayment              bool   `json:"triggers_payment"`
	TriggersInventoryReservation bool   `json:"triggers_inventory_reservation"`
	TriggersShipping             bool   `json:"triggers_shipping"`
	SendsNotification            bool   `json:"sends_notification"`
	IsActive                     bool   `json:"is_active"`
}

// TransitionRequest is the body of POST /api/v1/transitions.
type TransitionRequest struct {
	FromStatus             string `json:"from_status"`
	ToStatus               string `json:"to_status"`
	DisplayOrder           int    `json:"display_order"`
	Description            string `json:"description"`
	RequiresApproval       bool   `json:"requires_approval"`
	RequiresPayment        bool   `json:"requires_payment"`
	RequiresInventoryCheck bool   `json:"requires_inventory_check"`
	RequiresReason         bool   `json:"requires_reason"`
}

// OrderResponse is the full order read model.
type OrderResponse struct {
	ID                 string                 `json:"id"`
	OrderNumber        string                 `json:"order_number"`
	CustomerName       string                 `json:"customer_name"`
	CustomerEmail      string                 `json:"customer_email"`
	CustomerClass      string                 `json:"customer_class"`
	IsPriority         bool                   `json:"is_priority"`
	Notes              string                 `json:"notes,omitempty"`
	Currency           string                 `json:"currency"`
	StatusCode         string                 `json:"status_code"`
	Subtotal           decimal.Decimal        `json:"subtotal"`
	DiscountAmount     decimal.Decimal        `json:"discount_amount"`
	TaxAmount          decimal.Decimal        `json:"tax_amount"`
	ShippingCost       decimal.Decimal        `json:"shipping_cost"`
	FinalAmount        decimal.Decimal        `json:"final_amount"`
	CancelledAt        *time.Time             `json:"cancelled_at,omitempty"`
	CancelledBy        string                 `json:"cancelled_by,omitempty"`
	CancellationReason string                 `json:"cancellation_reason,omitempty"`
	Version            int64                  `json:"version"`
	CreatedBy          string                 `json:"created_by"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
	Items              []OrderItemResponse    `json:"items"`
	History            []OrderHistoryResponse `json:"history"`
}

// OrderItemResponse is one line of the order read model.
type OrderItemResponse struct {
	ID             string          `json:"id"`
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

// OrderHistoryResponse is one audit trail entry of the order read model.
type OrderHistoryResponse struct {
	ID              string    `json:"id"`
	Sequence        int       `json:"sequence"`
	FromStatus      string    `json:"from_status,omitempty"`
	ToStatus        string    `json:"to_status"`
	ChangedBy       string    `json:"changed_by"`
	Reason          string    `json:"reason,omitempty"`
	IsAutomatic     bool      `json:"is_automatic"`
	ChangedAt       time.Time `json:"changed_at"`
	DurationSeconds *int64    `json:"duration_seconds,omitempty"`
}

// OrderSummaryResponse is one row of a status listing.
type OrderSummaryResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerClass string          `json:"customer_class"`
	IsPriority    bool            `json:"is_priority"`
	Currency      string          `json:"currency"`
	StatusCode    string          `json:"status_code"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StatusResponse is one status catalog row.
type StatusResponse struct {
	Code                         string `json:"code"`
	Name                         string `json:"name"`
	Description                  string `json:"description,omitempty"`
	DisplayOrder                 int    `json:"display_order"`
	IsFinal                      bool   `json:"is_final"`
	IsCancellable                bool   `json:"is_cancellable"`
	IsModifiable                 bool   `json:"is_modifiable"`
	TriggersPayment              bool   `json:"triggers_payment"`
	TriggersInventoryReservation bool   `json:"triggers_inventory_reservation"`
	TriggersShipping             bool   `json:"triggers_shipping"`
	SendsNotification            bool   `json:"sends_notification"`
	IsActive                     bool   `json:"is_active"`
}

// TransitionResponse is one allowed workflow edge.
type TransitionResponse struct {
	FromStatus             string `json:"from_status"`
	ToStatus               string `json:"to_status"`
	DisplayOrder           int    `json:"display_order"`
	Description            string `json:"description,omitempty"`
	RequiresApproval       bool   `json:"requires_approval"`
	RequiresPayment        bool   `json:"requires_payment"`
	RequiresInventoryCheck bool   `json:"requires_inventory_check"`
	RequiresReason         bool   `json:"requires_reason"`
}

func orderResponseFromReadModel(model queries.GetOrderQueryResponse) OrderResponse {
	response := OrderResponse{
		ID:                 model.ID.String(),
		OrderNumber:        model.OrderNumber,
		CustomerName:       model.CustomerName,
		CustomerEmail:      model.CustomerEmail,
		CustomerClass:      model.CustomerClass,
		IsPriority:         model.IsPriority,
		Notes:              model.Notes,
		Currency:           model.Currency,
		StatusCode:         model.StatusCode,
		Subtotal:           model.Subtotal,
		DiscountAmount:     model.DiscountAmount,
		TaxAmount:          model.TaxAmount,
		ShippingCost:       model.ShippingCost,
		FinalAmount:        model.FinalAmount,
		CancelledAt:        model.CancelledAt,
		CancelledBy:        model.CancelledBy,
		CancellationReason: model.CancellationReason,
		Version:            model.Version,
		CreatedBy:          model.CreatedBy,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
		Items:              make([]OrderItemResponse, 0, len(model.Items)),
		History:            make([]OrderHistoryResponse, 0, len(model.History)),
	}

	for _, item := range model.Items {
		response.Items = append(response.Items, OrderItemResponse{
			ID:             item.ID.String(),
			ProductCode:    item.ProductCode,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TotalPrice:     item.TotalPrice,
			DiscountAmount: item.DiscountAmount,
			TaxAmount:      item.TaxAmount,
			FinalAmount:    item.FinalAmount,
		})
	}
	for _, entry := range model.History {
		response.History = append(response.History, OrderHistoryResponse{
			ID:              entry.ID.String(),
			Sequence:        entry.Sequence,
			FromStatus:      entry.FromStatus,
			ToStatus:        entry.ToStatus,
			ChangedBy:       entry.ChangedBy,
			Reason:          entry.Reason,
			IsAutomatic:     entry.IsAutomatic,
			ChangedAt:       entry.ChangedAt,
			DurationSeconds: entry.DurationSeconds,
		})
	}

	return response
}

func orderSummariesFromReadModel(models []queries.GetOrdersByStatusQueryResponse) []OrderSummaryResponse {
	summaries := make([]OrderSummaryResponse, 0, len(models))
	for _, model := range models {
		summaries = append(summaries, OrderSummaryResponse{
			ID:            model.ID.String(),
			OrderNumber:   model.OrderNumber,
			CustomerName:  model.CustomerName,
			CustomerClass: model.CustomerClass,
			IsPriority:    model.IsPriority,
			Currency:      model.Currency,
			StatusCode:    model.StatusCode,
			FinalAmount:   model.FinalAmount,
			ItemCount:     model.ItemCount,
			CreatedAt:     model.CreatedAt,
		})
	}
	return summaries
}

func statusesFromReadModel(models []queries.GetAllStatusesQueryResponse) []StatusResponse {
	statuses := make([]StatusResponse, 0, len(models))
	for _, model := range models {
		statuses = append(statuses, StatusResponse{
			Code:                         model.Code,
			Name:                         model.Name,
			Description:                  model.Description,
			DisplayOrder:                 model.DisplayOrder,
			IsFinal:                      model.IsFinal,
			IsCancellable:                model.IsCancellable,
			IsModifiable:                 model.IsModifiable,
			TriggersPayment:              model.TriggersPayment,
			TriggersInventoryReservation: model.TriggersInventoryReservation,
			TriggersShipping:             model.TriggersShipping,
			SendsNotification:            model.SendsNotification,
			IsActive:                     model.IsActive,
		})
	}
	return statuses
}

func transitionsFromReadModel(models []queries.GetTransitionsFromQueryResponse) []TransitionResponse {
	transitions := make([]TransitionResponse, 0, len(models))
	for _, model := range models {
		transitions = append(transitions, TransitionResponse{
			FromStatus:             model.FromStatus,
			ToStatus:               model.ToStatus,
			DisplayOrder:           model.DisplayOrder,
			Description:            model.Description,
			RequiresApproval:       model.RequiresApproval,
			RequiresPayment:        model.RequiresPayment,
			RequiresInventoryCheck: model.RequiresInventoryCheck,
			RequiresReason:         model.RequiresReason,
		})
	}
	return transitions
}
