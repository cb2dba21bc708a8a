package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerRepo_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Customers()

	c := &entity.Customer{Email: "ana@example.com", FirstName: "Ana"}
	require.NoError(t, repo.Create(ctx, c))
	assert.NotEmpty(t, c.ID)

	err := repo.Create(ctx, &entity.Customer{Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacción de checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ErrorRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tx := NewTxRunner(s)

	require.NoError(t, tx.RunCheckout(ctx, func(orders repository.OrderRepository, _ repository.LicenseKeyRepository) error {
		return orders.Create(ctx, &entity.Order{ID: "NK2IT-1", Status: entity.OrderStatusProcessing})
	}))

	boom := errors.New("boom")
	err := tx.RunCheckout(ctx, func(orders repository.OrderRepository, keys repository.LicenseKeyRepository) error {
		o := &entity.Order{ID: "NK2IT-1", Status: entity.OrderStatusCompleted, PaymentStatus: entity.PaymentStatusCompleted}
		require.NoError(t, orders.UpdatePayment(ctx, o))
		require.NoError(t, orders.CreateItem(ctx, &entity.OrderItem{OrderID: "NK2IT-1", Quantity: 1, Price: decimal.NewFromInt(10)}))
		require.NoError(t, keys.Create(ctx, &entity.LicenseKey{OrderID: "NK2IT-1", Key: "SEPEP-AAAA-BBBB-CCCC-DDDD"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Orders().GetByID(ctx, "NK2IT-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, got.Status)

	items, err := s.Orders().ListItems(ctx, "NK2IT-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	keys, err := s.LicenseKeys().ListByOrder(ctx, "NK2IT-1")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestTxRunner_RollbackConservaEscriturasAjenas(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tx := NewTxRunner(s)

	require.NoError(t, s.LicenseKeys().Create(ctx, &entity.LicenseKey{OrderID: "NK2IT-0", Key: "K-OLD", Status: entity.LicenseStatusActive}))

	boom := errors.New("boom")
	err := tx.RunCheckout(ctx, func(orders repository.OrderRepository, keys repository.LicenseKeyRepository) error {
		require.NoError(t, orders.Create(ctx, &entity.Order{ID: "NK2IT-1", Status: entity.OrderStatusProcessing}))
		require.NoError(t, keys.Create(ctx, &entity.LicenseKey{OrderID: "NK2IT-1", Key: "K-NEW", Status: entity.LicenseStatusActive}))

		// escrituras concurrentes de otra petición (p. ej. una revocación admin)
		require.NoError(t, s.LicenseKeys().UpdateStatus(ctx, "K-OLD", entity.LicenseStatusRevoked))
		require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "NK2IT-2", Status: entity.OrderStatusProcessing}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	old, err := s.LicenseKeys().GetByKey(ctx, "K-OLD")
	require.NoError(t, err)
	assert.Equal(t, entity.LicenseStatusRevoked, old.Status)

	other, err := s.Orders().GetByID(ctx, "NK2IT-2")
	require.NoError(t, err)
	assert.NotNil(t, other)

	rolled, err := s.Orders().GetByID(ctx, "NK2IT-1")
	require.NoError(t, err)
	assert.Nil(t, rolled)

	gone, err := s.LicenseKeys().GetByKey(ctx, "K-NEW")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestOrderRepo_TotalDeLinea(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Orders()

	require.NoError(t, repo.Create(ctx, &entity.Order{ID: "NK2IT-1"}))
	price := decimal.RequireFromString("89.99")
	require.NoError(t, repo.CreateItem(ctx, &entity.OrderItem{OrderID: "NK2IT-1", Quantity: 3, Price: price, Total: price.Mul(decimal.NewFromInt(3))}))

	items, err := repo.ListItems(ctx, "NK2IT-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Total.Equal(decimal.RequireFromString("269.97")), items[0].Total.String())
}

func TestLicenseKeyRepo_ClaveDuplicada(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().LicenseKeys()

	require.NoError(t, repo.Create(ctx, &entity.LicenseKey{OrderID: "o1", Key: "K-1", Status: entity.LicenseStatusActive}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.LicenseKey{OrderID: "o2", Key: "K-1"}), domain.ErrDuplicate)

	require.NoError(t, repo.UpdateStatus(ctx, "K-1", entity.LicenseStatusRevoked))
	got, err := repo.GetByKey(ctx, "K-1")
	require.NoError(t, err)
	assert.Equal(t, entity.LicenseStatusRevoked, got.Status)

	require.NoError(t, repo.Create(ctx, &entity.LicenseKey{OrderID: "o3", Key: "K-3", Status: entity.LicenseStatusActive}))
	require.NoError(t, repo.UpdateStatus(ctx, "K-3", entity.LicenseStatusExpired))
	got, err = repo.GetByKey(ctx, "K-3")
	require.NoError(t, err)
	assert.Equal(t, entity.LicenseStatusExpired, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "K-2", entity.LicenseStatusRevoked), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// OTP
// ──────────────────────────────────────────────────────────────────────────────

func TestOtpRepo_SoloElUltimoUsable(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().OtpCodes()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.OtpCode{Email: "a@b.co", Code: "111111", CreatedAt: now.Add(-2 * time.Minute), ExpiresAt: now.Add(8 * time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.OtpCode{Email: "a@b.co", Code: "222222", CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(9 * time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.OtpCode{Email: "otro@b.co", Code: "333333", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}))

	latest, err := repo.LatestUsable(ctx, "a@b.co", now)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "222222", latest.Code)

	ok, err := repo.MarkVerified(ctx, latest.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkVerified(ctx, latest.ID)
	require.NoError(t, err)
	assert.False(t, ok, "un código solo se consume una vez")

	// Consumido el último, el anterior sigue vigente.
	prev, err := repo.LatestUsable(ctx, "a@b.co", now)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "111111", prev.Code)

	expired, err := repo.LatestUsable(ctx, "a@b.co", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, expired)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

func TestIdempotencyStore_Ciclo(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	cached, err := s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, cached)

	_, err = s.Begin(ctx, "k1")
	assert.ErrorIs(t, err, domain.ErrIdempotencyInFlight)

	require.NoError(t, s.Complete(ctx, "k1", []byte(`{"status":200}`)))
	cached, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":200}`, string(cached))

	// Expirada la retención la clave vuelve a estar libre.
	now = now.Add(2 * time.Minute)
	cached, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, s.Release(ctx, "k1"))
	cached, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}
