package repository

import "github.com/invorya/costeo-engine/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras (DIP).
// Historial append-only; LatestByVariant devuelve nil, nil si la variante no
// tiene compras ("más reciente" = Date desc, luego Seq desc).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	LatestByVariant(variantID string) (*entity.Purchase, error)
	ListByVariant(variantID string, limit, offset int) ([]*entity.Purchase, error)
}
