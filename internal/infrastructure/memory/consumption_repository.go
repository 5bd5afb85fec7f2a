package memory

import (
	"github.com/google/uuid"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación en memoria del registro de consumos
// (append-only).
type ConsumptionRepo struct {
	consumptions []entity.Consumption
}

// NewConsumptionRepository construye el repositorio vacío.
func NewConsumptionRepository() *ConsumptionRepo {
	return &ConsumptionRepo{consumptions: []entity.Consumption{}}
}

// Create guarda una fila de consumo; asigna ID si viene vacío.
func (r *ConsumptionRepo) Create(consumption *entity.Consumption) error {
	if consumption.ID == "" {
		consumption.ID = uuid.New().String()
	}
	r.consumptions = append(r.consumptions, *consumption)
	return nil
}

// ListByAllocation devuelve las filas de una asignación en orden de registro.
func (r *ConsumptionRepo) ListByAllocation(allocationID string) ([]*entity.Consumption, error) {
	out := make([]*entity.Consumption, 0)
	for i := range r.consumptions {
		if r.consumptions[i].AllocationID != allocationID {
			continue
		}
		cc := r.consumptions[i]
		out = append(out, &cc)
	}
	return out, nil
}

// ListByIngredient devuelve los consumos de un insumo, más recientes primero.
func (r *ConsumptionRepo) ListByIngredient(ingredientID string, limit, offset int) ([]*entity.Consumption, error) {
	out := make([]*entity.Consumption, 0)
	for i := len(r.consumptions) - 1; i >= 0; i-- {
		if r.consumptions[i].IngredientID != ingredientID {
			continue
		}
		cc := r.consumptions[i]
		out = append(out, &cc)
	}
	if offset >= len(out) {
		return []*entity.Consumption{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
