package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/repositories"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repositories.NewMemoryStorage())
}

func registerTestUser(t *testing.T, svc *AuthService) models.User {
	t.Helper()
	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
		Name:     "Jane Doe",
	})
	require.NoError(t, err)
	return resp.User
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuth(t)
	user := registerTestUser(t, svc)

	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.Password)
	require.Len(t, user.PaymentMethods, 1)
	assert.Equal(t, "btc", user.PaymentMethods[0].Type)
	assert.True(t, user.PaymentMethods[0].IsDefault)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Empty(t, resp.User.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuth(t)
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "jane@example.com",
		Password: "another-password",
		Name:     "Jane Again",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc := newTestAuth(t)
	registerTestUser(t, svc)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentUser(t *testing.T) {
	svc := newTestAuth(t)
	user := registerTestUser(t, svc)

	got, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Empty(t, got.Password)

	_, err = svc.CurrentUser(context.Background(), "user_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddressLifecycle(t *testing.T) {
	svc := newTestAuth(t)
	user := registerTestUser(t, svc)
	ctx := context.Background()

	first, err := svc.AddAddress(ctx, user.ID, models.AddressRequest{
		Name: "Jane Doe", Street: "123 Main St", City: "Seattle", State: "WA", Zip: "98101",
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, "United States", first.Country)

	second, err := svc.AddAddress(ctx, user.ID, models.AddressRequest{
		Name: "Jane Doe", Street: "9 Lake Ave", City: "Portland", State: "OR", Zip: "97201",
		Country: "Canada", Default: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)
	assert.Equal(t, "Canada", second.Country)

	got, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Addresses, 2)
	assert.False(t, got.Addresses[0].IsDefault)
	def := got.DefaultAddress()
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)

	updated, err := svc.UpdateAddress(ctx, user.ID, first.ID, models.AddressRequest{
		Name: "Jane Doe", Street: "456 Oak St", City: "Seattle", State: "WA", Zip: "98102",
	})
	require.NoError(t, err)
	assert.Equal(t, "456 Oak St", updated.Street)

	require.NoError(t, svc.RemoveAddress(ctx, user.ID, second.ID))
	got, err = svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "456 Oak St", got.Addresses[0].Street)

	err = svc.RemoveAddress(ctx, user.ID, "addr_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
