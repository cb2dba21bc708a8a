package repository

import (
	"context"
	"time"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// OtpRepository define el puerto de persistencia para códigos de verificación.
type OtpRepository interface {
	Create(ctx context.Context, code *entity.OtpCode) error

	// LatestUsable devuelve el registro más reciente del email que no esté
	// verificado ni expirado en now; nil, nil si no hay ninguno.
	LatestUsable(ctx context.Context, email string, now time.Time) (*entity.OtpCode, error)

	// MarkVerified marca el código como consumido. Devuelve false si otro
	// proceso lo consumió antes.
	MarkVerified(ctx context.Context, id string) (bool, error)
}
