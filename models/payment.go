package models

import "time"

const PaidStatusPendingVerification = "pending_verification"

// PaymentRecord is a sparse, order-keyed accumulator of payment events.
// Fields fill in independently as events arrive; it is not a state machine
// of its own.
type PaymentRecord struct {
	OrderID       string     `json:"order_id"`
	WalletAddress string     `json:"wallet_address,omitempty"`
	CopiedAt      *time.Time `json:"copied_at,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	PaidStatus    string     `json:"paid_status,omitempty"`
	PaymentNotes  string     `json:"payment_notes,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type BTCQuote struct {
	WalletAddress string  `json:"wallet_address"`
	AmountUSD     float64 `json:"amount_usd"`
	AmountBTC     string  `json:"amount_btc"`
	Rate          float64 `json:"rate"`
}
