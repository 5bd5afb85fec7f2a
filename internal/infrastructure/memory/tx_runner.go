package memory

import (
	"context"

	"github.com/invorya/costeo-engine/internal/application/costing"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ costing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback directo sobre los repositorios en memoria.
// Sin atomicidad real: si fn falla a medias, lo ya escrito queda escrito.
// Suficiente para tests y demo; la garantía transaccional la da el adaptador
// de PostgreSQL.
type TxRunner struct {
	lotRepo         repository.LotRepository
	consumptionRepo repository.ConsumptionRepository
	purchaseRepo    repository.PurchaseRepository
}

// NewTxRunner construye el runner sobre los repositorios dados.
func NewTxRunner(
	lotRepo repository.LotRepository,
	consumptionRepo repository.ConsumptionRepository,
	purchaseRepo repository.PurchaseRepository,
) *TxRunner {
	return &TxRunner{
		lotRepo:         lotRepo,
		consumptionRepo: consumptionRepo,
		purchaseRepo:    purchaseRepo,
	}
}

// Run ejecuta fn con los mismos repositorios del proceso.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	consumptionRepo repository.ConsumptionRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	return fn(r.lotRepo, r.consumptionRepo, r.purchaseRepo)
}
