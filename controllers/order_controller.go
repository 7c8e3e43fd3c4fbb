package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

type OrderController struct {
	orders *services.OrderService
	cart   *services.CartService
	auth   *services.AuthService
}

func NewOrderController(orders *services.OrderService, cart *services.CartService, auth *services.AuthService) *OrderController {
	return &OrderController{orders: orders, cart: cart, auth: auth}
}

// @Summary Checkout
// @Description Creates an order from the current cart. The cart is kept until payment is confirmed so an abandoned payment can be retried.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Checkout details"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	addr := req.ShippingAddress
	userID := middleware.UserID(c)

	// Signed-in users with an empty address get their default saved one.
	if addr == (models.Address{}) && userID != models.GuestUserID {
		if user, err := ctrl.auth.CurrentUser(c.Request.Context(), userID); err == nil {
			if saved := user.DefaultAddress(); saved != nil {
				addr = saved.Address
			}
		}
	}

	state, err := ctrl.cart.Get(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "btc"
	}

	totals := ctrl.orders.ComputeTotals(state.Items)
	order, err := ctrl.orders.Create(c.Request.Context(), userID, state.Items, addr, req.DeliveryOption, totals, paymentMethod)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order created",
		Data:    order,
	})
}

// @Summary List orders
// @Description Orders for the current user, newest first. Guests see guest orders.
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Orders per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /orders [get]
func (ctrl *OrderController) List(c *gin.Context) {
	orders, err := ctrl.orders.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	total := len(orders)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders[start:end],
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

// @Summary Get order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetByID(c *gin.Context) {
	order, err := ctrl.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved",
		Data:    order,
	})
}

// @Summary Update order status
// @Description Simulated fulfillment progression. The target status must be reachable from the current one.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateStatusRequest true "Target status"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/status [patch]
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := ctrl.orders.UpdateStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(req.Status), req.Message)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order status updated",
		Data:    order,
	})
}
