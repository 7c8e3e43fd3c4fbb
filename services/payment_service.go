package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/repositories"
)

// PaymentService tracks wallet-copy and payment-confirmation events per
// order. Records are sparse and merge-on-write; they are a side channel next
// to the order status machine, not a state machine of their own. Confirming
// a payment is the one cross-store operation: it advances the order to
// payment_submitted and clears the active cart in the same write boundary.
type PaymentService struct {
	storage repositories.Storage
	orders  *OrderService
	cart    *CartService

	walletAddress string
	btcRate       float64
	nowFunc       func() time.Time
	// delay emulates payment-network latency; tests inject a no-op.
	delay func(ctx context.Context, d time.Duration) error
	wait  time.Duration

	mu     sync.Mutex
	cached map[string]models.PaymentRecord
}

func NewPaymentService(storage repositories.Storage, orders *OrderService, cart *CartService, walletAddress string, btcRate float64) *PaymentService {
	return &PaymentService{
		storage:       storage,
		orders:        orders,
		cart:          cart,
		walletAddress: walletAddress,
		btcRate:       btcRate,
		nowFunc:       time.Now,
		delay:         sleepDelay,
	}
}

func sleepDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *PaymentService) WalletAddress() string {
	return s.walletAddress
}

// QuoteBTC converts an order total to the mock BTC amount at the configured
// rate, eight decimal places.
func (s *PaymentService) QuoteBTC(totalUSD float64) models.BTCQuote {
	amount := decimal.NewFromFloat(totalUSD).Div(decimal.NewFromFloat(s.btcRate)).Round(8)
	return models.BTCQuote{
		WalletAddress: s.walletAddress,
		AmountUSD:     totalUSD,
		AmountBTC:     amount.StringFixed(8),
		Rate:          s.btcRate,
	}
}

// Get returns the payment record for an order, or ErrNotFound when no
// payment event has been recorded yet.
func (s *PaymentService) Get(ctx context.Context, orderID string) (models.PaymentRecord, error) {
	records, err := s.load(ctx)
	if err != nil {
		return models.PaymentRecord{}, err
	}
	record, ok := records[orderID]
	if !ok {
		return models.PaymentRecord{}, fmt.Errorf("payment record %q: %w", orderID, ErrNotFound)
	}
	return record, nil
}

// RecordWalletCopy merges the wallet address and copy timestamp into the
// order's payment record, creating the record on first use.
func (s *PaymentService) RecordWalletCopy(ctx context.Context, orderID string) (models.PaymentRecord, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return models.PaymentRecord{}, err
	}

	records, err := s.load(ctx)
	if err != nil {
		return models.PaymentRecord{}, err
	}
	now := s.nowFunc()
	record := records[orderID]
	record.OrderID = orderID
	record.WalletAddress = s.walletAddress
	record.CopiedAt = &now
	record.UpdatedAt = now
	records[orderID] = record

	if err := s.persist(ctx, records); err != nil {
		return record, err
	}
	return record, nil
}

// RecordConfirmation merges the paid fields into the record, advances the
// order to payment_submitted, and clears the active cart. All three
// documents go out in one SetMulti so a crash cannot leave a paid order
// next to an unpaid record.
func (s *PaymentService) RecordConfirmation(ctx context.Context, orderID, notes string) (models.PaymentRecord, error) {
	if err := s.delay(ctx, s.wait); err != nil {
		return models.PaymentRecord{}, err
	}

	records, err := s.load(ctx)
	if err != nil {
		return models.PaymentRecord{}, err
	}

	orders, _, err := s.orders.applyStatus(ctx, orderID, models.StatusPaymentSubmitted,
		"Payment confirmation received, pending verification")
	if err != nil {
		return models.PaymentRecord{}, err
	}

	cartState, cartPayload, err := s.cart.stageClear(ctx)
	if err != nil {
		return models.PaymentRecord{}, err
	}

	now := s.nowFunc()
	record := records[orderID]
	record.OrderID = orderID
	record.PaidAt = &now
	record.PaidStatus = models.PaidStatusPendingVerification
	record.PaymentNotes = notes
	record.UpdatedAt = now
	records[orderID] = record

	paymentsPayload, err := json.Marshal(records)
	if err != nil {
		return models.PaymentRecord{}, fmt.Errorf("encode payments: %w", err)
	}
	ordersPayload, err := json.Marshal(orders)
	if err != nil {
		return models.PaymentRecord{}, fmt.Errorf("encode orders: %w", err)
	}

	s.commit(records)
	s.orders.commit(orders)
	s.cart.commit(cartState)

	err = s.storage.SetMulti(ctx, map[string][]byte{
		repositories.KeyPayments: paymentsPayload,
		repositories.KeyOrders:   ordersPayload,
		repositories.KeyCart:     cartPayload,
	})
	if err != nil {
		return record, fmt.Errorf("persist payment confirmation: %w: %v", ErrStorageUnavailable, err)
	}
	return record, nil
}

func (s *PaymentService) load(ctx context.Context) (map[string]models.PaymentRecord, error) {
	raw, err := s.storage.Get(ctx, repositories.KeyPayments)
	if err == repositories.ErrKeyNotFound {
		return map[string]models.PaymentRecord{}, nil
	}
	if err != nil {
		s.mu.Lock()
		cached := s.cached
		s.mu.Unlock()
		if cached != nil {
			out := make(map[string]models.PaymentRecord, len(cached))
			for k, v := range cached {
				out[k] = v
			}
			return out, nil
		}
		return nil, fmt.Errorf("load payments: %w: %v", ErrStorageUnavailable, err)
	}

	records := map[string]models.PaymentRecord{}
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("Failed to parse stored payments, starting empty: %v", err)
		return map[string]models.PaymentRecord{}, nil
	}
	return records, nil
}

func (s *PaymentService) persist(ctx context.Context, records map[string]models.PaymentRecord) error {
	s.commit(records)
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode payments: %w", err)
	}
	if err := s.storage.Set(ctx, repositories.KeyPayments, payload); err != nil {
		return fmt.Errorf("persist payments: %w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PaymentService) commit(records map[string]models.PaymentRecord) {
	s.mu.Lock()
	s.cached = records
	s.mu.Unlock()
}
