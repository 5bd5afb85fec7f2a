package costing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
)

// OrderLots devuelve una copia del slice en orden FIFO: AcquiredAt asc y, a
// igual fecha, Seq asc. No modifica el slice de entrada.
func OrderLots(lots []*entity.Lot) []*entity.Lot {
	ordered := make([]*entity.Lot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].AcquiredAt.Equal(ordered[j].AcquiredAt) {
			return ordered[i].AcquiredAt.Before(ordered[j].AcquiredAt)
		}
		return ordered[i].Seq < ordered[j].Seq
	})
	return ordered
}

// AllocateFIFO implementa la asignación de lotes más-antiguo-primero (servicio
// de dominio). Recorre los lotes en orden FIFO consumiendo de cada uno hasta
// cubrir requested o agotar la despensa; arma el desglose por lote y el costo
// de la porción cubierta. Función pura sobre la foto de lotes: nunca muta
// Remaining, eso es del camino de consumo real.
//
// El faltante no es un error: queda en Shortfall y Satisfied=false. requested
// negativo sí es error; requested cero devuelve satisfecho con desglose vacío.
func AllocateFIFO(ingredientID string, lots []*entity.Lot, requested decimal.Decimal) (*entity.AllocationResult, error) {
	if requested.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad solicitada %s", domain.ErrInvalidQuantity, requested)
	}

	result := &entity.AllocationResult{
		IngredientID: ingredientID,
		Requested:    requested,
		Consumed:     decimal.Zero,
		Shortfall:    decimal.Zero,
		TotalCost:    decimal.Zero,
		Lines:        []entity.AllocationLine{},
	}
	if requested.IsZero() {
		result.Satisfied = true
		return result, nil
	}

	need := requested
	for _, lot := range OrderLots(lots) {
		if need.IsZero() {
			break
		}
		if lot.Exhausted() {
			continue
		}
		take := lot.Remaining
		if take.GreaterThan(need) {
			take = need
		}
		result.Lines = append(result.Lines, entity.AllocationLine{
			LotID:      lot.ID,
			AcquiredAt: lot.AcquiredAt,
			Quantity:   take,
			UnitCost:   lot.UnitCost,
		})
		result.Consumed = result.Consumed.Add(take)
		result.TotalCost = result.TotalCost.Add(take.Mul(lot.UnitCost))
		need = need.Sub(take)
	}

	result.Shortfall = need
	result.Satisfied = need.IsZero()
	return result, nil
}
