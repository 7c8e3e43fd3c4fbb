package repositories

import (
	"context"
	"errors"
)

// Storage keys used by the stores. Each key holds one JSON document that is
// read in full and rewritten on every mutation.
const (
	KeyCart     = "cart"
	KeyOrders   = "orders"
	KeyPayments = "payments"
	KeyUsers    = "users"
)

// ErrKeyNotFound is returned by Get when a key has never been written.
var ErrKeyNotFound = errors.New("storage key not found")

// Storage is the durable key-value layer the cart, order, and payment
// stores write through to. SetMulti writes several keys in a single
// boundary where the backend supports it, so one logical operation that
// touches multiple documents cannot be torn by a crash between writes.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMulti(ctx context.Context, values map[string][]byte) error
}
