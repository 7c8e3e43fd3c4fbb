package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/repositories"
)

const (
	trackingCarrier     = "ShopMart Logistics"
	trackingChars       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	deliveryEstimate    = 72 * time.Hour
	defaultTaxRate      = 0.08
	defaultShippingCost = 0.0
)

// OrderService creates immutable order records from cart snapshots and owns
// the status state machine. Orders are persisted newest first under one
// storage key; totals are frozen at creation and never recomputed.
type OrderService struct {
	storage        repositories.Storage
	taxRate        float64
	nowFunc        func() time.Time
	trackingNumber func() string

	mu     sync.Mutex
	cached []models.Order
}

func NewOrderService(storage repositories.Storage, taxRate float64) *OrderService {
	if taxRate <= 0 {
		taxRate = defaultTaxRate
	}
	return &OrderService{
		storage:        storage,
		taxRate:        taxRate,
		nowFunc:        time.Now,
		trackingNumber: randomTrackingNumber,
	}
}

func randomTrackingNumber() string {
	var b strings.Builder
	b.WriteString("TRK")
	for i := 0; i < 9; i++ {
		b.WriteByte(trackingChars[rand.Intn(len(trackingChars))])
	}
	return b.String()
}

// ComputeTotals prices an order from its lines: shipping is free, tax is
// subtotal times the configured rate, every figure rounded to cents.
func (s *OrderService) ComputeTotals(lines []models.LineItem) models.Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	subtotal = subtotal.Round(2)
	shipping := decimal.NewFromFloat(defaultShippingCost)
	tax := subtotal.Mul(decimal.NewFromFloat(s.taxRate)).Round(2)
	total := subtotal.Add(shipping).Add(tax).Round(2)
	return models.Totals{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// Create allocates a new order in pending_payment with a single history
// entry. The lines are deep-copied; the caller's cart stays untouched.
func (s *OrderService) Create(ctx context.Context, userID string, lines []models.LineItem, addr models.Address, deliveryOption string, totals models.Totals, paymentMethod string) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, fmt.Errorf("order has no lines: %w", ErrInvalidArgument)
	}
	if err := validateAddress(addr); err != nil {
		return models.Order{}, err
	}
	if userID == "" {
		userID = models.GuestUserID
	}
	if deliveryOption == "" {
		deliveryOption = "standard"
	}

	now := s.nowFunc()
	order := models.Order{
		ID:             "order_" + uuid.NewString(),
		UserID:         userID,
		Items:          nil,
		ShippingAddr:   addr,
		DeliveryOption: deliveryOption,
		Totals:         totals,
		PaymentMethod:  paymentMethod,
		Status:         models.StatusPendingPayment,
		StatusHistory: []models.StatusEntry{{
			Status:    models.StatusPendingPayment,
			Timestamp: now,
			Message:   "Order created, awaiting payment",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.Items = models.CartState{Items: lines}.Clone().Items

	orders, err := s.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	orders = append([]models.Order{order}, orders...)
	if err := s.persist(ctx, orders); err != nil {
		return order.Clone(), err
	}
	return order.Clone(), nil
}

// UpdateStatus appends a history entry and moves the order to status. The
// target must be reachable from the current status. Entering confirmed
// synthesizes tracking info.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, message string) (models.Order, error) {
	orders, updated, err := s.applyStatus(ctx, orderID, status, message)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.persist(ctx, orders); err != nil {
		return updated.Clone(), err
	}
	return updated.Clone(), nil
}

// GetByID returns a deep copy of the order; mutating it cannot corrupt
// stored state.
func (s *OrderService) GetByID(ctx context.Context, orderID string) (models.Order, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return orders[i].Clone(), nil
		}
	}
	return models.Order{}, fmt.Errorf("order %q: %w", orderID, ErrNotFound)
}

// List returns deep copies of all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, len(orders))
	for i := range orders {
		out[i] = orders[i].Clone()
	}
	return out, nil
}

// ListByUser filters the order log to one user, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Order{}
	for i := range orders {
		if orders[i].UserID == userID {
			out = append(out, orders[i].Clone())
		}
	}
	return out, nil
}

// applyStatus loads the order log and applies the transition in memory.
// Used by UpdateStatus and by the payment tracker's combined write.
func (s *OrderService) applyStatus(ctx context.Context, orderID string, status models.OrderStatus, message string) ([]models.Order, models.Order, error) {
	if !status.Valid() {
		return nil, models.Order{}, fmt.Errorf("status %q: %w", status, ErrInvalidArgument)
	}
	orders, err := s.load(ctx)
	if err != nil {
		return nil, models.Order{}, err
	}
	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		if !orders[i].Status.CanTransitionTo(status) {
			return nil, models.Order{}, fmt.Errorf("%s -> %s: %w", orders[i].Status, status, ErrIllegalTransition)
		}
		now := s.nowFunc()
		orders[i].Status = status
		orders[i].UpdatedAt = now
		orders[i].StatusHistory = append(orders[i].StatusHistory, models.StatusEntry{
			Status:    status,
			Timestamp: now,
			Message:   message,
		})
		if status == models.StatusConfirmed && orders[i].Tracking == nil {
			orders[i].Tracking = &models.Tracking{
				Carrier:           trackingCarrier,
				TrackingNumber:    s.trackingNumber(),
				EstimatedDelivery: now.Add(deliveryEstimate),
			}
		}
		return orders, orders[i], nil
	}
	return nil, models.Order{}, fmt.Errorf("order %q: %w", orderID, ErrNotFound)
}

func (s *OrderService) load(ctx context.Context) ([]models.Order, error) {
	raw, err := s.storage.Get(ctx, repositories.KeyOrders)
	if err == repositories.ErrKeyNotFound {
		return []models.Order{}, nil
	}
	if err != nil {
		s.mu.Lock()
		cached := s.cached
		s.mu.Unlock()
		if cached != nil {
			out := make([]models.Order, len(cached))
			for i := range cached {
				out[i] = cached[i].Clone()
			}
			return out, nil
		}
		return nil, fmt.Errorf("load orders: %w: %v", ErrStorageUnavailable, err)
	}

	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		log.Printf("Failed to parse stored orders, starting empty: %v", err)
		return []models.Order{}, nil
	}
	return orders, nil
}

func (s *OrderService) persist(ctx context.Context, orders []models.Order) error {
	s.commit(orders)
	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := s.storage.Set(ctx, repositories.KeyOrders, payload); err != nil {
		return fmt.Errorf("persist orders: %w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *OrderService) commit(orders []models.Order) {
	s.mu.Lock()
	s.cached = orders
	s.mu.Unlock()
}

func validateAddress(addr models.Address) error {
	missing := []string{}
	if strings.TrimSpace(addr.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(addr.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(addr.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(addr.Zip) == "" {
		missing = append(missing, "zip")
	}
	if len(missing) > 0 {
		return fmt.Errorf("address missing %s: %w", strings.Join(missing, ", "), ErrInvalidArgument)
	}
	return nil
}
