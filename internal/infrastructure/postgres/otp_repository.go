package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

var _ repository.OtpRepository = (*OtpRepo)(nil)

// OtpRepo implementación de OtpRepository.
type OtpRepo struct {
	q Querier
}

// NewOtpRepository construye el adaptador.
func NewOtpRepository(q Querier) *OtpRepo {
	return &OtpRepo{q: q}
}

// Create persiste un código nuevo.
func (r *OtpRepo) Create(ctx context.Context, code *entity.OtpCode) error {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	query := `
		INSERT INTO otp_codes (id, email, code, expires_at, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, code.ID, code.Email, code.Code, code.ExpiresAt, code.Verified, code.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert otp code: %w", err)
	}
	return nil
}

// LatestUsable último código no verificado y vigente del email.
func (r *OtpRepo) LatestUsable(ctx context.Context, email string, now time.Time) (*entity.OtpCode, error) {
	query := `
		SELECT id, email, code, expires_at, verified, created_at
		FROM otp_codes
		WHERE email = $1 AND verified = false AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`
	var c entity.OtpCode
	err := r.q.QueryRow(ctx, query, email, now).Scan(&c.ID, &c.Email, &c.Code, &c.ExpiresAt, &c.Verified, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get otp code: %w", err)
	}
	return &c, nil
}

// MarkVerified consume el código solo si seguía sin verificar.
func (r *OtpRepo) MarkVerified(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE otp_codes SET verified = true WHERE id = $1 AND verified = false`, id)
	if err != nil {
		return false, fmt.Errorf("mark otp verified: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
