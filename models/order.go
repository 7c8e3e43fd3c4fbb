package models

import "time"

type OrderStatus string

const (
	StatusPendingPayment   OrderStatus = "pending_payment"
	StatusPaymentSubmitted OrderStatus = "payment_submitted"
	StatusConfirmed        OrderStatus = "confirmed"
	StatusProcessing       OrderStatus = "processing"
	StatusShipped          OrderStatus = "shipped"
	StatusOutForDelivery   OrderStatus = "out_for_delivery"
	StatusDelivered        OrderStatus = "delivered"
	StatusCancelled        OrderStatus = "cancelled"
	StatusRefunded         OrderStatus = "refunded"
)

// statusRank orders the main fulfillment sequence. Side branches
// (cancelled, refunded) are not part of the sequence.
var statusRank = map[OrderStatus]int{
	StatusPendingPayment:   0,
	StatusPaymentSubmitted: 1,
	StatusConfirmed:        2,
	StatusProcessing:       3,
	StatusShipped:          4,
	StatusOutForDelivery:   5,
	StatusDelivered:        6,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	if _, ok := statusRank[s]; ok {
		return true
	}
	return s == StatusCancelled || s == StatusRefunded
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// CanTransitionTo reports whether target is reachable from s: forward moves
// along the fulfillment sequence, cancellation or refund from any
// non-terminal state, and re-entering the current status (so a repeated
// payment confirmation stays a no-op at the status level). Terminal states
// accept nothing.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !target.Valid() {
		return false
	}
	if s == target {
		return !s.IsTerminal()
	}
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled || target == StatusRefunded {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	return statusRank[target] > from
}

var statusLabels = map[OrderStatus]string{
	StatusPendingPayment:   "Awaiting Payment",
	StatusPaymentSubmitted: "Payment Submitted",
	StatusConfirmed:        "Order Confirmed",
	StatusProcessing:       "Processing",
	StatusShipped:          "Shipped",
	StatusOutForDelivery:   "Out for Delivery",
	StatusDelivered:        "Delivered",
	StatusCancelled:        "Cancelled",
	StatusRefunded:         "Refunded",
}

var statusColors = map[OrderStatus]string{
	StatusPendingPayment:   "#b12704",
	StatusPaymentSubmitted: "#f0c14b",
	StatusConfirmed:        "#067d62",
	StatusProcessing:       "#007185",
	StatusShipped:          "#007185",
	StatusOutForDelivery:   "#067d62",
	StatusDelivered:        "#067d62",
	StatusCancelled:        "#565959",
	StatusRefunded:         "#565959",
}

func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s OrderStatus) Color() string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return "#0f1111"
}

type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type StatusEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Message   string      `json:"message,omitempty"`
}

type Tracking struct {
	Carrier           string    `json:"carrier"`
	TrackingNumber    string    `json:"tracking_number"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

type Order struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	Items          []LineItem    `json:"items"`
	ShippingAddr   Address       `json:"shipping_address"`
	DeliveryOption string        `json:"delivery_option"`
	Totals         Totals        `json:"totals"`
	PaymentMethod  string        `json:"payment_method"`
	Status         OrderStatus   `json:"status"`
	StatusHistory  []StatusEntry `json:"status_history"`
	Tracking       *Tracking     `json:"tracking,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Clone deep-copies the order for copy-out reads.
func (o Order) Clone() Order {
	out := o
	out.Items = cloneLines(o.Items)
	out.StatusHistory = make([]StatusEntry, len(o.StatusHistory))
	copy(out.StatusHistory, o.StatusHistory)
	if o.Tracking != nil {
		tracking := *o.Tracking
		out.Tracking = &tracking
	}
	return out
}
