package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemRequest is one requested position of a new order.
type OrderItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest places a new order.
type CreateOrderRequest struct {
	ShippingAddress string             `json:"shippingAddress" validate:"required,max=500"`
	OrderItems      []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

// UpdateStatusRequest sets an order's status (admin only).
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse is the public shape of an order line.
type OrderItemResponse struct {
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the public shape of an order.
type OrderResponse struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"userId"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	ShippingAddress string              `json:"shippingAddress"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		items = append(items, OrderItemResponse{
			ProductID:   line.ProductID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal(),
		})
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// Create godoc
// @Summary Place an order
// @Description Create an order; stock is reserved atomically across all items
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Order data"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
	}

	lines := make([]service.OrderLineInput, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		lines = append(lines, service.OrderLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), claims.UserID, req.ShippingAddress, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// ListMine godoc
// @Summary List my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} PageResponse
// @Failure 401 {object} errors.Response
// @Router /orders/my [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	page := pageRequest(c)
	orders, total, err := h.orderService.ListUserOrders(c.Request().Context(), claims.UserID,
		model.OrderStatus(c.QueryParam("status")), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPageResponse(toOrderResponses(orders), page, total))
}

// GetMine godoc
// @Summary Get one of my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} errors.Response
// @Router /orders/my/{id} [get]
func (h *OrderHandler) GetMine(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrOrderNotFound)
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel godoc
// @Summary Cancel my order
// @Description Cancel a pending order and restore its stock
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /orders/my/{id}/cancel [put]
func (h *OrderHandler) Cancel(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrOrderNotFound)
	}

	order, err := h.orderService.CancelOrder(c.Request().Context(), id, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// List godoc
// @Summary List all orders
// @Description Paginated list of every order (admin only)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} PageResponse
// @Failure 403 {object} errors.Response
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page := pageRequest(c)
	orders, total, err := h.orderService.ListOrders(c.Request().Context(),
		model.OrderStatus(c.QueryParam("status")), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPageResponse(toOrderResponses(orders), page, total))
}

// Get godoc
// @Summary Get any order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrOrderNotFound)
	}

	order, err := h.orderService.GetOrderAdmin(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus godoc
// @Summary Set order status
// @Description Overwrite an order's status (admin only); no stock side effects
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrOrderNotFound)
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
	}

	status := model.OrderStatus(req.Status)
	if !model.ValidOrderStatus(status) {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "unknown order status"})
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponses(orders []model.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	return responses
}
