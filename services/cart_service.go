package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"storefront/models"
	"storefront/repositories"
)

// CartService owns the active cart and the saved-for-later list. Every
// mutation is a pure transition on CartState followed by one write-through
// to storage. The last good state is kept in memory so a storage read
// outage does not lose the session's cart.
type CartService struct {
	storage repositories.Storage

	mu     sync.Mutex
	cached *models.CartState
}

func NewCartService(storage repositories.Storage) *CartService {
	return &CartService{storage: storage}
}

// Get returns a deep copy of the current cart state.
func (s *CartService) Get(ctx context.Context) (models.CartState, error) {
	state, err := s.load(ctx)
	if err != nil {
		return models.CartState{}, err
	}
	return state.Clone(), nil
}

// AddItem merges the product+variant into the active cart: an existing line
// with the same identity key has its quantity incremented, otherwise a new
// line is appended. qty 0 means the default of one; negative is rejected.
func (s *CartService) AddItem(ctx context.Context, product models.Product, variant map[string]string, qty int) (models.CartState, error) {
	if qty < 0 {
		return models.CartState{}, fmt.Errorf("quantity %d: %w", qty, ErrInvalidArgument)
	}
	if qty == 0 {
		qty = 1
	}
	return s.mutate(ctx, func(state models.CartState) (models.CartState, error) {
		return cartAddItem(state, product.Snapshot(), variant, qty), nil
	})
}

// RemoveItem deletes the active line at index.
func (s *CartService) RemoveItem(ctx context.Context, index int) (models.CartState, error) {
	return s.mutate(ctx, func(state models.CartState) (models.CartState, error) {
		return cartRemoveItem(state, index)
	})
}

// UpdateQuantity sets the quantity of the active line at index. Zero and
// negative quantities are rejected; removal is an explicit operation.
func (s *CartService) UpdateQuantity(ctx context.Context, index, qty int) (models.CartState, error) {
	if qty < 1 {
		return models.CartState{}, fmt.Errorf("quantity %d: %w", qty, ErrInvalidArgument)
	}
	return s.mutate(ctx, func(state models.CartState) (models.CartState, error) {
		return cartUpdateQuantity(state, index, qty)
	})
}

// SaveForLater atomically relocates the active line at index to the end of
// the saved-for-later list.
func (s *CartService) SaveForLater(ctx context.Context, index int) (models.CartState, error) {
	return s.mutate(ctx, func(state models.CartState) (models.CartState, error) {
		return cartSaveForLater(state, index)
	})
}

// MoveToCart atomically relocates the saved line at index back to the end
// of the active cart.
func (s *CartService) MoveToCart(ctx context.Context, index int) (models.CartState, error) {
	return s.mutate(ctx, func(state models.CartState) (models.CartState, error) {
		return cartMoveToCart(state, index)
	})
}

// RemoveSaved deletes the saved-for-later line at index.
func (s *CartService) RemoveSaved(ctx context.Context, index int) (models.CartState, error) {
	return s.mutate(ctx, func(state models.CartState) (models.CartState, error) {
		return cartRemoveSaved(state, index)
	})
}

// Clear empties the active cart. Saved-for-later survives.
func (s *CartService) Clear(ctx context.Context) (models.CartState, error) {
	return s.mutate(ctx, func(state models.CartState) (models.CartState, error) {
		return cartClear(state), nil
	})
}

func (s *CartService) Total(ctx context.Context) (float64, error) {
	state, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return state.Total(), nil
}

func (s *CartService) Count(ctx context.Context) (int, error) {
	state, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return state.Count(), nil
}

// mutate applies a pure transition to the loaded state and writes the
// result through. On a write failure the mutated state stays cached in
// memory as the source of truth and the call reports ErrStorageUnavailable.
func (s *CartService) mutate(ctx context.Context, apply func(models.CartState) (models.CartState, error)) (models.CartState, error) {
	state, err := s.load(ctx)
	if err != nil {
		return models.CartState{}, err
	}
	next, err := apply(state)
	if err != nil {
		return models.CartState{}, err
	}
	if err := s.persist(ctx, next); err != nil {
		return next.Clone(), err
	}
	return next.Clone(), nil
}

func (s *CartService) load(ctx context.Context) (models.CartState, error) {
	raw, err := s.storage.Get(ctx, repositories.KeyCart)
	if err == repositories.ErrKeyNotFound {
		return models.CartState{}, nil
	}
	if err != nil {
		s.mu.Lock()
		cached := s.cached
		s.mu.Unlock()
		if cached != nil {
			return cached.Clone(), nil
		}
		return models.CartState{}, fmt.Errorf("load cart: %w: %v", ErrStorageUnavailable, err)
	}

	var state models.CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("Failed to parse stored cart, starting empty: %v", err)
		return models.CartState{}, nil
	}
	return state, nil
}

func (s *CartService) persist(ctx context.Context, state models.CartState) error {
	s.mu.Lock()
	clone := state.Clone()
	s.cached = &clone
	s.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, repositories.KeyCart, payload); err != nil {
		return fmt.Errorf("persist cart: %w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// stageClear prepares the cleared-cart payload for a combined multi-key
// write without persisting it yet.
func (s *CartService) stageClear(ctx context.Context) (models.CartState, []byte, error) {
	state, err := s.load(ctx)
	if err != nil {
		return models.CartState{}, nil, err
	}
	next := cartClear(state)
	payload, err := json.Marshal(next)
	if err != nil {
		return models.CartState{}, nil, fmt.Errorf("encode cart: %w", err)
	}
	return next, payload, nil
}

func (s *CartService) commit(state models.CartState) {
	s.mu.Lock()
	s.cached = &state
	s.mu.Unlock()
}

// --- pure transitions ---

func cartAddItem(state models.CartState, snapshot models.ProductSnapshot, variant map[string]string, qty int) models.CartState {
	next := state.Clone()
	key := models.LineIdentityKey(snapshot.ProductID, variant)
	for i := range next.Items {
		if next.Items[i].IdentityKey() == key {
			next.Items[i].Quantity += qty
			return next
		}
	}
	next.Items = append(next.Items, models.LineItem{
		ProductSnapshot: snapshot,
		SelectedVariant: cloneVariant(variant),
		Quantity:        qty,
	})
	return next
}

func cartRemoveItem(state models.CartState, index int) (models.CartState, error) {
	if index < 0 || index >= len(state.Items) {
		return state, fmt.Errorf("cart index %d: %w", index, ErrNotFound)
	}
	next := state.Clone()
	next.Items = append(next.Items[:index], next.Items[index+1:]...)
	return next, nil
}

func cartUpdateQuantity(state models.CartState, index, qty int) (models.CartState, error) {
	if index < 0 || index >= len(state.Items) {
		return state, fmt.Errorf("cart index %d: %w", index, ErrNotFound)
	}
	next := state.Clone()
	next.Items[index].Quantity = qty
	return next, nil
}

func cartSaveForLater(state models.CartState, index int) (models.CartState, error) {
	if index < 0 || index >= len(state.Items) {
		return state, fmt.Errorf("cart index %d: %w", index, ErrNotFound)
	}
	next := state.Clone()
	item := next.Items[index]
	next.Items = append(next.Items[:index], next.Items[index+1:]...)
	next.SavedForLater = append(next.SavedForLater, item)
	return next, nil
}

func cartMoveToCart(state models.CartState, index int) (models.CartState, error) {
	if index < 0 || index >= len(state.SavedForLater) {
		return state, fmt.Errorf("saved index %d: %w", index, ErrNotFound)
	}
	next := state.Clone()
	item := next.SavedForLater[index]
	next.SavedForLater = append(next.SavedForLater[:index], next.SavedForLater[index+1:]...)
	next.Items = append(next.Items, item)
	return next, nil
}

func cartRemoveSaved(state models.CartState, index int) (models.CartState, error) {
	if index < 0 || index >= len(state.SavedForLater) {
		return state, fmt.Errorf("saved index %d: %w", index, ErrNotFound)
	}
	next := state.Clone()
	next.SavedForLater = append(next.SavedForLater[:index], next.SavedForLater[index+1:]...)
	return next, nil
}

func cartClear(state models.CartState) models.CartState {
	next := state.Clone()
	next.Items = nil
	return next
}

func cloneVariant(variant map[string]string) map[string]string {
	if variant == nil {
		return nil
	}
	out := make(map[string]string, len(variant))
	for k, v := range variant {
		out[k] = v
	}
	return out
}
