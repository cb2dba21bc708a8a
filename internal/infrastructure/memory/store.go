// Package memory: repositorios en memoria para STORAGE_DRIVER=memory y tests.
// Comparten un Store protegido por mutex; los datos se pierden al reiniciar.
package memory

import (
	"sync"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu          sync.RWMutex
	txMu        sync.Mutex // serializa TxRunner.RunCheckout
	customers   map[string]*entity.Customer
	orders      map[string]*entity.Order
	items       map[string][]*entity.OrderItem // por order_id, en orden de inserción
	licenseKeys map[string]*entity.LicenseKey  // por clave
	keyOrder    []string
	otpCodes    []*entity.OtpCode
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		customers:   make(map[string]*entity.Customer),
		orders:      make(map[string]*entity.Order),
		items:       make(map[string][]*entity.OrderItem),
		licenseKeys: make(map[string]*entity.LicenseKey),
	}
}

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Orders repositorio de órdenes.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// LicenseKeys repositorio de claves.
func (s *Store) LicenseKeys() *LicenseKeyRepo { return &LicenseKeyRepo{s: s} }

// OtpCodes repositorio de códigos OTP.
func (s *Store) OtpCodes() *OtpRepo { return &OtpRepo{s: s} }
