package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type PaymentController struct {
	payments *services.PaymentService
	orders   *services.OrderService
}

func NewPaymentController(payments *services.PaymentService, orders *services.OrderService) *PaymentController {
	return &PaymentController{payments: payments, orders: orders}
}

// @Summary Get payment session
// @Description Payment record plus the BTC quote for the order total
// @Tags Payments
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id}/payment [get]
func (ctrl *PaymentController) Get(c *gin.Context) {
	orderID := c.Param("id")

	order, err := ctrl.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}

	data := gin.H{
		"quote": ctrl.payments.QuoteBTC(order.Totals.Total),
	}
	if record, err := ctrl.payments.Get(c.Request.Context(), orderID); err == nil {
		data["record"] = record
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment session retrieved",
		Data:    data,
	})
}

// @Summary Record wallet copy
// @Description Marks that the buyer copied the wallet address for this order
// @Tags Payments
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id}/payment/wallet-copy [post]
func (ctrl *PaymentController) RecordWalletCopy(c *gin.Context) {
	record, err := ctrl.payments.RecordWalletCopy(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to record wallet copy")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Wallet copy recorded",
		Data:    record,
	})
}

// @Summary Confirm payment
// @Description Records the buyer's payment confirmation, advances the order to payment_submitted, and clears the cart
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.ConfirmPaymentRequest false "Optional notes"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/payment/confirm [post]
func (ctrl *PaymentController) Confirm(c *gin.Context) {
	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondBindError(c, err)
		return
	}

	record, err := ctrl.payments.RecordConfirmation(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err, "Failed to confirm payment")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment confirmation recorded",
		Data:    record,
	})
}
