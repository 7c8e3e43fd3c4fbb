package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type CartController struct {
	cart    *services.CartService
	catalog *services.CatalogService
}

func NewCartController(cart *services.CartService, catalog *services.CatalogService) *CartController {
	return &CartController{cart: cart, catalog: catalog}
}

func cartResponse(state models.CartState) models.CartResponse {
	return models.CartResponse{
		Items:         state.Items,
		SavedForLater: state.SavedForLater,
		Total:         state.Total(),
		Count:         state.Count(),
	}
}

func lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid cart index",
			Error:   err.Error(),
		})
		return 0, false
	}
	return index, true
}

// @Summary Get cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) Get(c *gin.Context) {
	state, err := ctrl.cart.Get(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    cartResponse(state),
	})
}

// @Summary Add item to cart
// @Description Adds the product snapshot to the cart, merging quantity into an existing line with the same product and variant selection
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddItemRequest true "Item to add"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := ctrl.catalog.GetByID(req.ProductID)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}

	state, err := ctrl.cart.AddItem(c.Request.Context(), product, req.SelectedVariant, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to add item")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    cartResponse(state),
	})
}

// @Summary Remove item from cart
// @Tags Cart
// @Produce json
// @Param index path int true "Line index"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{index} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	state, err := ctrl.cart.RemoveItem(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Failed to remove item")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed",
		Data:    cartResponse(state),
	})
}

// @Summary Update line quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param index path int true "Line index"
// @Param request body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{index} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	state, err := ctrl.cart.UpdateQuantity(c.Request.Context(), index, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update quantity")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Quantity updated",
		Data:    cartResponse(state),
	})
}

// @Summary Save item for later
// @Tags Cart
// @Produce json
// @Param index path int true "Line index"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{index}/save [post]
func (ctrl *CartController) SaveForLater(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	state, err := ctrl.cart.SaveForLater(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Failed to save for later")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item saved for later",
		Data:    cartResponse(state),
	})
}

// @Summary Move saved item back to cart
// @Tags Cart
// @Produce json
// @Param index path int true "Saved line index"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/saved/{index}/move [post]
func (ctrl *CartController) MoveToCart(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	state, err := ctrl.cart.MoveToCart(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Failed to move to cart")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item moved to cart",
		Data:    cartResponse(state),
	})
}

// @Summary Remove saved item
// @Tags Cart
// @Produce json
// @Param index path int true "Saved line index"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/saved/{index} [delete]
func (ctrl *CartController) RemoveSaved(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	state, err := ctrl.cart.RemoveSaved(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Failed to remove saved item")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Saved item removed",
		Data:    cartResponse(state),
	})
}

// @Summary Clear cart
// @Description Empties the active cart; saved-for-later items survive
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) Clear(c *gin.Context) {
	state, err := ctrl.cart.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
		Data:    cartResponse(state),
	})
}
