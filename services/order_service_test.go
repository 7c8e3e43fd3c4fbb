package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/repositories"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func testAddress() models.Address {
	return models.Address{
		Name:    "John Smith",
		Street:  "123 Main St",
		City:    "Seattle",
		State:   "WA",
		Zip:     "98101",
		Country: "United States",
	}
}

func newTestOrders(t *testing.T) (*OrderService, *repositories.MemoryStorage) {
	t.Helper()
	storage := repositories.NewMemoryStorage()
	svc := NewOrderService(storage, 0.08)
	svc.nowFunc = func() time.Time { return testNow }
	svc.trackingNumber = func() string { return "TRKTEST00001" }
	return svc, storage
}

func testLines() []models.LineItem {
	return []models.LineItem{{
		ProductSnapshot: testProduct("p-1", 19.99).Snapshot(),
		Quantity:        2,
	}}
}

func createTestOrder(t *testing.T, svc *OrderService) models.Order {
	t.Helper()
	lines := testLines()
	order, err := svc.Create(context.Background(), "", lines, testAddress(), "standard", svc.ComputeTotals(lines), "btc")
	require.NoError(t, err)
	return order
}

func TestComputeTotals(t *testing.T) {
	svc, _ := newTestOrders(t)
	totals := svc.ComputeTotals(testLines())

	assert.Equal(t, 39.98, totals.Subtotal)
	assert.Equal(t, 3.20, totals.Tax)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 43.18, totals.Total)
}

func TestCreateInitialState(t *testing.T) {
	svc, _ := newTestOrders(t)
	order := createTestOrder(t, svc)

	assert.Equal(t, models.StatusPendingPayment, order.Status)
	assert.Equal(t, models.GuestUserID, order.UserID)
	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, models.StatusPendingPayment, order.StatusHistory[0].Status)
	assert.Equal(t, "Order created, awaiting payment", order.StatusHistory[0].Message)
	assert.Nil(t, order.Tracking)
	assert.Equal(t, testNow, order.CreatedAt)
}

func TestCreateRejectsEmptyLines(t *testing.T) {
	svc, _ := newTestOrders(t)
	_, err := svc.Create(context.Background(), "", nil, testAddress(), "standard", models.Totals{}, "btc")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateRejectsIncompleteAddress(t *testing.T) {
	svc, _ := newTestOrders(t)
	addr := testAddress()
	addr.Zip = "  "
	_, err := svc.Create(context.Background(), "", testLines(), addr, "standard", models.Totals{}, "btc")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateStatusAppendsHistory(t *testing.T) {
	svc, _ := newTestOrders(t)
	order := createTestOrder(t, svc)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, models.StatusPaymentSubmitted, "Payment received")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaymentSubmitted, updated.Status)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, "Payment received", updated.StatusHistory[1].Message)
}

func TestConfirmedSynthesizesTracking(t *testing.T) {
	svc, _ := newTestOrders(t)
	order := createTestOrder(t, svc)
	ctx := context.Background()

	updated, err := svc.UpdateStatus(ctx, order.ID, models.StatusPaymentSubmitted, "")
	require.NoError(t, err)
	assert.Nil(t, updated.Tracking)

	updated, err = svc.UpdateStatus(ctx, order.ID, models.StatusConfirmed, "")
	require.NoError(t, err)
	require.NotNil(t, updated.Tracking)
	assert.Equal(t, "ShopMart Logistics", updated.Tracking.Carrier)
	assert.Equal(t, "TRKTEST00001", updated.Tracking.TrackingNumber)
	assert.Equal(t, testNow.Add(72*time.Hour), updated.Tracking.EstimatedDelivery)

	// Re-entering confirmed later does not replace the tracking record.
	svc.trackingNumber = func() string { return "TRKOTHER" }
	updated, err = svc.UpdateStatus(ctx, order.ID, models.StatusProcessing, "")
	require.NoError(t, err)
	assert.Equal(t, "TRKTEST00001", updated.Tracking.TrackingNumber)
}

func TestBackwardTransitionRejected(t *testing.T) {
	svc, _ := newTestOrders(t)
	order := createTestOrder(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, order.ID, models.StatusDelivered, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, models.StatusPendingPayment, "")
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTerminalStatesAreFrozen(t *testing.T) {
	svc, _ := newTestOrders(t)
	order := createTestOrder(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, order.ID, models.StatusCancelled, "Buyer cancelled")
	require.NoError(t, err)

	for _, target := range []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusCancelled,
		models.StatusRefunded,
	} {
		_, err = svc.UpdateStatus(ctx, order.ID, target, "")
		assert.ErrorIs(t, err, ErrIllegalTransition, "cancelled -> %s", target)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestOrders(t)
	order := createTestOrder(t, svc)
	_, err := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatus("teleported"), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _ := newTestOrders(t)
	_, err := svc.UpdateStatus(context.Background(), "order_missing", models.StatusConfirmed, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDUnknownOrder(t *testing.T) {
	svc, _ := newTestOrders(t)
	_, err := svc.GetByID(context.Background(), "order_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestOrders(t)
	first := createTestOrder(t, svc)
	second := createTestOrder(t, svc)

	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestListByUserFilters(t *testing.T) {
	svc, _ := newTestOrders(t)
	ctx := context.Background()
	lines := testLines()
	mine, err := svc.Create(ctx, "user_a", lines, testAddress(), "standard", svc.ComputeTotals(lines), "btc")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user_b", lines, testAddress(), "standard", svc.ComputeTotals(lines), "btc")
	require.NoError(t, err)

	orders, err := svc.ListByUser(ctx, "user_a")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)
}

func TestReadsAreCopies(t *testing.T) {
	svc, _ := newTestOrders(t)
	order := createTestOrder(t, svc)
	ctx := context.Background()

	got, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	got.Status = models.StatusDelivered
	got.Items[0].Quantity = 99
	got.StatusHistory[0].Message = "tampered"

	fresh, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingPayment, fresh.Status)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
	assert.Equal(t, "Order created, awaiting payment", fresh.StatusHistory[0].Message)
}
