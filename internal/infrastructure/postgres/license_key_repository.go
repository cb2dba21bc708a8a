package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

var _ repository.LicenseKeyRepository = (*LicenseKeyRepo)(nil)

const licenseKeyColumns = `id, order_id, order_item_id, product_id, license_key, status, activated_at, created_at`

// LicenseKeyRepo implementación de LicenseKeyRepository (usable con pool o tx).
type LicenseKeyRepo struct {
	q Querier
}

// NewLicenseKeyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLicenseKeyRepository(q Querier) *LicenseKeyRepo {
	return &LicenseKeyRepo{q: q}
}

// Create inserta la clave. Con ON CONFLICT la colisión no aborta la transacción
// del checkout y se informa como domain.ErrDuplicate.
func (r *LicenseKeyRepo) Create(ctx context.Context, key *entity.LicenseKey) error {
	if key.ID == "" {
		key.ID = uuid.New().String()
	}
	query := `
		INSERT INTO license_keys (` + licenseKeyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (license_key) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		key.ID, key.OrderID, key.OrderItemID, key.ProductID, key.Key, key.Status, key.ActivatedAt, key.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert license key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// ListByOrder claves de la orden en orden de emisión.
func (r *LicenseKeyRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.LicenseKey, error) {
	query := `SELECT ` + licenseKeyColumns + ` FROM license_keys WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list license keys: %w", err)
	}
	defer rows.Close()
	var list []*entity.LicenseKey
	for rows.Next() {
		var k entity.LicenseKey
		if err := rows.Scan(&k.ID, &k.OrderID, &k.OrderItemID, &k.ProductID, &k.Key, &k.Status,
			&k.ActivatedAt, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan license key: %w", err)
		}
		list = append(list, &k)
	}
	return list, rows.Err()
}

// GetByKey obtiene la clave por su valor.
func (r *LicenseKeyRepo) GetByKey(ctx context.Context, key string) (*entity.LicenseKey, error) {
	query := `SELECT ` + licenseKeyColumns + ` FROM license_keys WHERE license_key = $1`
	var k entity.LicenseKey
	err := r.q.QueryRow(ctx, query, key).Scan(&k.ID, &k.OrderID, &k.OrderItemID, &k.ProductID, &k.Key,
		&k.Status, &k.ActivatedAt, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get license key: %w", err)
	}
	return &k, nil
}

// UpdateStatus cambia el estado de la clave.
func (r *LicenseKeyRepo) UpdateStatus(ctx context.Context, key, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE license_keys SET status = $2 WHERE license_key = $1`, key, status)
	if err != nil {
		return fmt.Errorf("update license key status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
