package repository

import "github.com/invorya/costeo-engine/internal/domain/entity"

// ConsumptionRepository define el puerto de persistencia para el registro de
// consumos reales (DIP). Append-only: no hay update ni delete.
// ListByAllocation devuelve las filas en el orden en que se drenaron los
// lotes; ListByIngredient las devuelve más recientes primero.
type ConsumptionRepository interface {
	Create(consumption *entity.Consumption) error
	ListByAllocation(allocationID string) ([]*entity.Consumption, error)
	ListByIngredient(ingredientID string, limit, offset int) ([]*entity.Consumption, error)
}
