package memory

import (
	"context"

	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/internal/domain/repository"
)

// TxRunner ejecuta bloques de checkout de forma serializada. Si fn falla se
// deshacen solo las filas que fn escribió; lo escrito fuera del bloque se conserva.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// RunCheckout ejecuta fn con los repositorios de órdenes y claves.
func (t *TxRunner) RunCheckout(_ context.Context, fn func(orderRepo repository.OrderRepository, keyRepo repository.LicenseKeyRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	log := &undoLog{s: t.s}
	err := fn(&txOrderRepo{OrderRepo: t.s.Orders(), log: log}, &txKeyRepo{LicenseKeyRepo: t.s.LicenseKeys(), log: log})
	if err != nil {
		log.rollback()
		return err
	}
	return nil
}

// undoLog acciones inversas de cada escritura; se aplican en orden inverso.
type undoLog struct {
	s     *Store
	steps []func()
}

func (l *undoLog) push(step func()) { l.steps = append(l.steps, step) }

func (l *undoLog) rollback() {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for i := len(l.steps) - 1; i >= 0; i-- {
		l.steps[i]()
	}
	l.steps = nil
}

type txOrderRepo struct {
	*OrderRepo
	log *undoLog
}

func (r *txOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if err := r.OrderRepo.Create(ctx, order); err != nil {
		return err
	}
	id := order.ID
	r.log.push(func() {
		delete(r.s.orders, id)
		delete(r.s.items, id)
	})
	return nil
}

func (r *txOrderRepo) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	if err := r.OrderRepo.CreateItem(ctx, item); err != nil {
		return err
	}
	orderID, itemID := item.OrderID, item.ID
	r.log.push(func() {
		its := r.s.items[orderID]
		for i, it := range its {
			if it.ID == itemID {
				r.s.items[orderID] = append(its[:i:i], its[i+1:]...)
				break
			}
		}
	})
	return nil
}

func (r *txOrderRepo) UpdatePayment(ctx context.Context, order *entity.Order) error {
	r.s.mu.RLock()
	var prev entity.Order
	if o, ok := r.s.orders[order.ID]; ok {
		prev = *o
	}
	r.s.mu.RUnlock()

	if err := r.OrderRepo.UpdatePayment(ctx, order); err != nil {
		return err
	}
	r.log.push(func() {
		if o, ok := r.s.orders[prev.ID]; ok {
			o.Status = prev.Status
			o.PaymentStatus = prev.PaymentStatus
			o.PaymentReference = prev.PaymentReference
			o.UpdatedAt = prev.UpdatedAt
		}
	})
	return nil
}

type txKeyRepo struct {
	*LicenseKeyRepo
	log *undoLog
}

func (r *txKeyRepo) Create(ctx context.Context, key *entity.LicenseKey) error {
	if err := r.LicenseKeyRepo.Create(ctx, key); err != nil {
		return err
	}
	k := key.Key
	r.log.push(func() {
		delete(r.s.licenseKeys, k)
		for i, v := range r.s.keyOrder {
			if v == k {
				r.s.keyOrder = append(r.s.keyOrder[:i:i], r.s.keyOrder[i+1:]...)
				break
			}
		}
	})
	return nil
}

func (r *txKeyRepo) UpdateStatus(ctx context.Context, key, status string) error {
	r.s.mu.RLock()
	var prev string
	if lk, ok := r.s.licenseKeys[key]; ok {
		prev = lk.Status
	}
	r.s.mu.RUnlock()

	if err := r.LicenseKeyRepo.UpdateStatus(ctx, key, status); err != nil {
		return err
	}
	r.log.push(func() {
		if lk, ok := r.s.licenseKeys[key]; ok {
			lk.Status = prev
		}
	})
	return nil
}
