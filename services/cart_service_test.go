package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/repositories"
)

func testProduct(id string, price float64) models.Product {
	return models.Product{
		ID:     id,
		Title:  "Test " + id,
		Price:  price,
		Images: []string{"/images/" + id + ".jpg"},
		Stock:  10,
		Prime:  true,
	}
}

func newTestCart(t *testing.T) (*CartService, *repositories.MemoryStorage) {
	t.Helper()
	storage := repositories.NewMemoryStorage()
	return NewCartService(storage), storage
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	product := testProduct("p-1", 19.99)
	variant := map[string]string{"Color": "Black", "Size": "M"}

	_, err := svc.AddItem(ctx, product, variant, 2)
	require.NoError(t, err)
	state, err := svc.AddItem(ctx, product, variant, 3)
	require.NoError(t, err)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)
}

func TestAddItemVariantOrderDoesNotSplitLines(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	product := testProduct("p-1", 19.99)

	_, err := svc.AddItem(ctx, product, map[string]string{"Color": "Black", "Size": "M"}, 1)
	require.NoError(t, err)
	state, err := svc.AddItem(ctx, product, map[string]string{"Size": "M", "Color": "Black"}, 1)
	require.NoError(t, err)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
}

func TestAddItemDifferentVariantAddsLine(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	product := testProduct("p-1", 19.99)

	_, err := svc.AddItem(ctx, product, map[string]string{"Color": "Black"}, 1)
	require.NoError(t, err)
	state, err := svc.AddItem(ctx, product, map[string]string{"Color": "Silver"}, 1)
	require.NoError(t, err)

	assert.Len(t, state.Items, 2)
}

func TestAddItemQuantityDefaultsToOne(t *testing.T) {
	svc, _ := newTestCart(t)
	state, err := svc.AddItem(context.Background(), testProduct("p-1", 9.99), nil, 0)
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)
}

func TestAddItemRejectsNegativeQuantity(t *testing.T) {
	svc, _ := newTestCart(t)
	_, err := svc.AddItem(context.Background(), testProduct("p-1", 9.99), nil, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, testProduct("p-1", 9.99), nil, 1)
	require.NoError(t, err)

	state, err := svc.UpdateQuantity(ctx, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, state.Items[0].Quantity)

	_, err = svc.UpdateQuantity(ctx, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.UpdateQuantity(ctx, 0, -2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.UpdateQuantity(ctx, 5, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItemOutOfRange(t *testing.T) {
	svc, _ := newTestCart(t)
	_, err := svc.RemoveItem(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveForLaterRoundTrip(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, testProduct("p-1", 9.99), nil, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, testProduct("p-2", 4.99), nil, 2)
	require.NoError(t, err)

	state, err := svc.SaveForLater(ctx, 0)
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	require.Len(t, state.SavedForLater, 1)
	assert.Equal(t, "p-1", state.SavedForLater[0].ProductID)

	state, err = svc.MoveToCart(ctx, 0)
	require.NoError(t, err)
	require.Len(t, state.Items, 2)
	require.Len(t, state.SavedForLater, 0)

	// The relocated line landed at the end of the active cart; saving it
	// again restores the original two-list partition.
	state, err = svc.SaveForLater(ctx, 1)
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	require.Len(t, state.SavedForLater, 1)
	assert.Equal(t, "p-2", state.Items[0].ProductID)
	assert.Equal(t, "p-1", state.SavedForLater[0].ProductID)
}

func TestClearKeepsSavedForLater(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, testProduct("p-1", 19.99), nil, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, testProduct("p-2", 5.00), nil, 1)
	require.NoError(t, err)
	_, err = svc.SaveForLater(ctx, 1)
	require.NoError(t, err)

	state, err := svc.Clear(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Items)
	assert.Len(t, state.SavedForLater, 1)

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTotalAndCount(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, testProduct("p-1", 19.99), nil, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, testProduct("p-2", 5.00), nil, 3)
	require.NoError(t, err)

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 54.98, total, 0.001)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

// flakyStorage fails reads and/or writes on demand.
type flakyStorage struct {
	*repositories.MemoryStorage
	getErr error
	setErr error
}

func (f *flakyStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStorage.Get(ctx, key)
}

func (f *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStorage.Set(ctx, key, value)
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	storage := &flakyStorage{MemoryStorage: repositories.NewMemoryStorage()}
	svc := NewCartService(storage)
	ctx := context.Background()

	storage.setErr = errors.New("disk full")
	state, err := svc.AddItem(ctx, testProduct("p-1", 9.99), nil, 1)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Len(t, state.Items, 1)

	// Reads now fail too; the cached state is the source of truth.
	storage.getErr = errors.New("disk gone")
	state, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Items, 1)

	// Once storage recovers, the next mutation persists everything.
	storage.getErr = nil
	storage.setErr = nil
	state, err = svc.AddItem(ctx, testProduct("p-1", 9.99), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Items[0].Quantity)
}

func TestCorruptStoredCartFallsBackToEmpty(t *testing.T) {
	storage := repositories.NewMemoryStorage()
	require.NoError(t, storage.Set(context.Background(), repositories.KeyCart, []byte("{not json")))

	svc := NewCartService(storage)
	state, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Items)
	assert.Empty(t, state.SavedForLater)
}
