package repository

import (
	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes de despensa (DIP).
// Ambos List devuelven los lotes ya en orden FIFO (AcquiredAt asc, Seq asc),
// incluidos los agotados; el asignador depende de ese orden.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	ListByIngredient(ingredientID string) ([]*entity.Lot, error)
	// ListByIngredientForUpdate bloquea las filas para el consumo real
	// (SELECT FOR UPDATE). Usar solo dentro de una transacción.
	ListByIngredientForUpdate(ingredientID string) ([]*entity.Lot, error)
	UpdateRemaining(lotID string, remaining decimal.Decimal) error
}
