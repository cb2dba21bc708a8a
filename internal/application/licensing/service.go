// Package licensing: consulta y revocación de claves emitidas.
package licensing

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/licenseshop-api/internal/application/dto"
	"github.com/jhoicas/licenseshop-api/internal/domain"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/license"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

// Service consulta de claves.
type Service struct {
	keys repository.LicenseKeyRepository
	gen  *license.Generator
	log  zerolog.Logger
}

// NewService construye el servicio; gen nil usa los prefijos por defecto.
func NewService(keys repository.LicenseKeyRepository, gen *license.Generator, log zerolog.Logger) *Service {
	if gen == nil {
		gen = license.NewGenerator(nil)
	}
	return &Service{keys: keys, gen: gen, log: log}
}

// NormalizeKey mayúsculas y sin espacios.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Lookup describe la clave: formato, producto por prefijo y, si fue emitida, su estado.
func (s *Service) Lookup(ctx context.Context, key string) (*dto.LicenseStatusResponse, error) {
	key = NormalizeKey(key)
	out := &dto.LicenseStatusResponse{
		LicenseKey:  key,
		ValidFormat: license.IsValidFormat(key),
		ProductID:   s.gen.ProductFromKey(key),
	}
	if !out.ValidFormat {
		return out, nil
	}
	lk, err := s.keys.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if lk != nil {
		out.Issued = true
		out.Status = lk.Status
		out.OrderID = lk.OrderID
		out.ProductID = lk.ProductID
	}
	return out, nil
}

// Revoke marca la clave como revocada. Revocar dos veces no es error.
func (s *Service) Revoke(ctx context.Context, key string) (*dto.LicenseStatusResponse, error) {
	key = NormalizeKey(key)
	lk, err := s.keys.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if lk == nil {
		return nil, fmt.Errorf("license key: %w", domain.ErrNotFound)
	}
	if lk.Status != entity.LicenseStatusRevoked {
		if err := s.keys.UpdateStatus(ctx, key, entity.LicenseStatusRevoked); err != nil {
			return nil, err
		}
		s.log.Info().Str("order_id", lk.OrderID).Str("product_id", lk.ProductID).Msg("clave revocada")
	}
	return &dto.LicenseStatusResponse{
		LicenseKey:  key,
		ValidFormat: license.IsValidFormat(key),
		ProductID:   lk.ProductID,
		Issued:      true,
		Status:      entity.LicenseStatusRevoked,
		OrderID:     lk.OrderID,
	}, nil
}
