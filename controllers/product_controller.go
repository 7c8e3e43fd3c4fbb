package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// @Summary Search products
// @Description Search, filter, sort, and paginate the catalog
// @Tags Products
// @Produce json
// @Param q query string false "Search query"
// @Param category query string false "Category or subcategory id"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param min_rating query number false "Minimum rating"
// @Param prime query bool false "Prime-eligible only"
// @Param sort query string false "Sort key" Enums(price-asc, price-desc, rating-desc, review-count-desc, newest, relevance)
// @Param limit query int false "Items per page" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) Search(c *gin.Context) {
	opts := services.SearchOptions{
		Category: c.Query("category"),
		SortBy:   c.DefaultQuery("sort", services.SortRelevance),
	}
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	opts.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if opts.Limit < 1 {
		opts.Limit = 20
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MaxPrice = &f
		}
	}
	if v := c.Query("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinRating = &f
		}
	}
	opts.PrimeOnly = c.Query("prime") == "true"

	result := ctrl.catalog.Search(c.Query("q"), opts)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data:    result,
	})
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetByID(c *gin.Context) {
	product, err := ctrl.catalog.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to get product",
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    product,
	})
}

// @Summary Get related products
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Param limit query int false "Max results" default(6)
// @Success 200 {object} models.Response
// @Router /products/{id}/related [get]
func (ctrl *ProductController) GetRelated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if limit < 1 {
		limit = 6
	}
	related := ctrl.catalog.GetRelated(c.Param("id"), limit)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Related products retrieved",
		Data:    related,
	})
}

// @Summary Get all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Categories retrieved",
		Data:    ctrl.catalog.Categories(),
	})
}

// @Summary Get deal products
// @Tags Products
// @Produce json
// @Param limit query int false "Max results" default(10)
// @Success 200 {object} models.Response
// @Router /deals [get]
func (ctrl *ProductController) GetDeals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Deals retrieved",
		Data:    ctrl.catalog.Deals(limit),
	})
}

// @Summary Get featured products
// @Tags Products
// @Produce json
// @Param limit query int false "Max results" default(10)
// @Success 200 {object} models.Response
// @Router /featured [get]
func (ctrl *ProductController) GetFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Featured products retrieved",
		Data:    ctrl.catalog.Featured(limit),
	})
}
