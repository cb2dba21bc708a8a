package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

var _ repository.OtpRepository = (*OtpRepo)(nil)

// OtpRepo códigos OTP en memoria.
type OtpRepo struct{ s *Store }

// Create persiste el código.
func (r *OtpRepo) Create(_ context.Context, code *entity.OtpCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	cp := *code
	r.s.otpCodes = append(r.s.otpCodes, &cp)
	return nil
}

// LatestUsable último código usable del email (por CreatedAt, luego inserción).
func (r *OtpRepo) LatestUsable(_ context.Context, email string, now time.Time) (*entity.OtpCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest *entity.OtpCode
	for _, c := range r.s.otpCodes {
		if c.Email != email || !c.Usable(now) {
			continue
		}
		if latest == nil || !c.CreatedAt.Before(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// MarkVerified false si ya estaba verificado o no existe.
func (r *OtpRepo) MarkVerified(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.otpCodes {
		if c.ID == id {
			if c.Verified {
				return false, nil
			}
			c.Verified = true
			return true, nil
		}
	}
	return false, nil
}
