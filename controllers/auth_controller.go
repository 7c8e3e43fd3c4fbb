package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Account details"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Account created",
		Data:    resp,
	})
}

// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logged in",
		Data:    resp,
	})
}

// @Summary Get profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	user, err := ctrl.auth.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile retrieved",
		Data:    user,
	})
}

// @Summary Add address
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddressRequest true "Address"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/addresses [post]
func (ctrl *AuthController) AddAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	address, err := ctrl.auth.AddAddress(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err, "Failed to add address")
		return
	}
	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Address added",
		Data:    address,
	})
}

// @Summary Update address
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param request body models.AddressRequest true "Address"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/addresses/{id} [patch]
func (ctrl *AuthController) UpdateAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	address, err := ctrl.auth.UpdateAddress(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update address")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Address updated",
		Data:    address,
	})
}

// @Summary Remove address
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/addresses/{id} [delete]
func (ctrl *AuthController) RemoveAddress(c *gin.Context) {
	if err := ctrl.auth.RemoveAddress(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to remove address")
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Address removed",
	})
}
