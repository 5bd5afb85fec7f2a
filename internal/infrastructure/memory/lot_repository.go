package memory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain/costing"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación en memoria de los lotes de despensa. Asigna Seq en
// orden de inserción y siempre lista en orden FIFO, como el adaptador de
// PostgreSQL. Devuelve copias: Remaining solo cambia vía UpdateRemaining.
type LotRepo struct {
	lots    []entity.Lot
	nextSeq int64
}

// NewLotRepository construye el repositorio vacío.
func NewLotRepository() *LotRepo {
	return &LotRepo{lots: []entity.Lot{}, nextSeq: 1}
}

// Create guarda un lote; asigna ID y Seq.
func (r *LotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	lot.Seq = r.nextSeq
	r.nextSeq++
	r.lots = append(r.lots, *lot)
	return nil
}

// GetByID devuelve el lote o nil, nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	for i := range r.lots {
		if r.lots[i].ID == id {
			lc := r.lots[i]
			return &lc, nil
		}
	}
	return nil, nil
}

// ListByIngredient devuelve los lotes del insumo en orden FIFO, incluidos los
// agotados.
func (r *LotRepo) ListByIngredient(ingredientID string) ([]*entity.Lot, error) {
	out := make([]*entity.Lot, 0)
	for i := range r.lots {
		if r.lots[i].IngredientID != ingredientID {
			continue
		}
		lc := r.lots[i]
		out = append(out, &lc)
	}
	return costing.OrderLots(out), nil
}

// ListByIngredientForUpdate es igual a ListByIngredient: en memoria no hay
// bloqueo de filas (proceso único, un solo escritor).
func (r *LotRepo) ListByIngredientForUpdate(ingredientID string) ([]*entity.Lot, error) {
	return r.ListByIngredient(ingredientID)
}

// UpdateRemaining fija el Remaining de un lote existente.
func (r *LotRepo) UpdateRemaining(lotID string, remaining decimal.Decimal) error {
	for i := range r.lots {
		if r.lots[i].ID == lotID {
			r.lots[i].Remaining = remaining
			return nil
		}
	}
	return fmt.Errorf("update remaining: lote %s no existe", lotID)
}
