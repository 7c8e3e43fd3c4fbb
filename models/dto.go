package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AddressRequest struct {
	Name    string `json:"name" binding:"required"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Default bool   `json:"default"`
}

type AddItemRequest struct {
	ProductID       string            `json:"product_id" binding:"required"`
	SelectedVariant map[string]string `json:"selected_variant"`
	Quantity        int               `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	DeliveryOption  string  `json:"delivery_option"`
	PaymentMethod   string  `json:"payment_method"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Message string `json:"message"`
}

type ConfirmPaymentRequest struct {
	Notes string `json:"notes"`
}

type CartResponse struct {
	Items         []LineItem `json:"items"`
	SavedForLater []LineItem `json:"saved_for_later"`
	Total         float64    `json:"total"`
	Count         int        `json:"count"`
}

type SearchResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"has_more"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
