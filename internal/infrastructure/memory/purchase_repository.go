package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación en memoria del historial de compras
// (append-only). Seq crece en orden de registro y desempata fechas iguales.
type PurchaseRepo struct {
	purchases []entity.Purchase
	nextSeq   int64
}

// NewPurchaseRepository construye el repositorio vacío.
func NewPurchaseRepository() *PurchaseRepo {
	return &PurchaseRepo{purchases: []entity.Purchase{}, nextSeq: 1}
}

// Create guarda una compra; asigna ID y Seq.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	purchase.Seq = r.nextSeq
	r.nextSeq++
	r.purchases = append(r.purchases, *purchase)
	return nil
}

// LatestByVariant devuelve la compra más reciente de la variante (Date desc,
// luego Seq desc) o nil, nil si no tiene historial.
func (r *PurchaseRepo) LatestByVariant(variantID string) (*entity.Purchase, error) {
	var best *entity.Purchase
	for i := range r.purchases {
		p := &r.purchases[i]
		if p.VariantID != variantID {
			continue
		}
		if best == nil || newerPurchase(p, best) {
			best = p
		}
	}
	if best == nil {
		return nil, nil
	}
	pc := *best
	return &pc, nil
}

// ListByVariant devuelve las compras de la variante, más recientes primero.
func (r *PurchaseRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.Purchase, error) {
	out := make([]*entity.Purchase, 0)
	for i := range r.purchases {
		if r.purchases[i].VariantID != variantID {
			continue
		}
		pc := r.purchases[i]
		out = append(out, &pc)
	}
	sort.Slice(out, func(i, j int) bool { return newerPurchase(out[i], out[j]) })
	if offset >= len(out) {
		return []*entity.Purchase{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func newerPurchase(a, b *entity.Purchase) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.Seq > b.Seq
}
