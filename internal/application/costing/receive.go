package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

// ReceiveStockUseCase registra la recepción de una compra en despensa: crea el
// lote y su fila en el historial de compras como una sola transacción. Es el
// único camino de alta de lotes; después solo el asignador toca Remaining.
type ReceiveStockUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(txRunner TxRunner, ingredientRepo repository.IngredientRepository) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{txRunner: txRunner, ingredientRepo: ingredientRepo}
}

// ReceiveInput entrada para recibir una compra. Quantity y UnitCost van en la
// unidad de control del insumo; AcquiredAt en cero usa la fecha actual.
type ReceiveInput struct {
	IngredientID string
	VariantID    string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	AcquiredAt   time.Time
	Note         string
}

// Receive valida insumo y variante, crea el lote (Remaining = Received =
// Quantity) y registra la compra; Commit o Rollback como unidad.
func (uc *ReceiveStockUseCase) Receive(ctx context.Context, input ReceiveInput) (*entity.Lot, error) {
	if !input.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: cantidad recibida %s", domain.ErrInvalidQuantity, input.Quantity)
	}
	if input.UnitCost.IsNegative() {
		return nil, domain.NewValidationError("costo unitario negativo %s", input.UnitCost)
	}

	ingredient, err := uc.ingredientRepo.GetByID(input.IngredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, input.IngredientID)
	}
	variant, err := uc.ingredientRepo.GetVariant(input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVariantNotFound, input.VariantID)
	}
	if variant.IngredientID != input.IngredientID {
		return nil, domain.NewValidationError(
			"la variante %s pertenece al insumo %s, no a %s",
			variant.ID, variant.IngredientID, input.IngredientID)
	}

	now := time.Now()
	acquiredAt := input.AcquiredAt
	if acquiredAt.IsZero() {
		acquiredAt = now
	}

	lot := &entity.Lot{
		IngredientID: input.IngredientID,
		AcquiredAt:   acquiredAt,
		Received:     input.Quantity,
		Remaining:    input.Quantity,
		UnitCost:     input.UnitCost,
		Note:         input.Note,
		CreatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.ConsumptionRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		purchase := &entity.Purchase{
			VariantID: input.VariantID,
			Date:      acquiredAt,
			UnitPrice: input.UnitCost,
			CreatedAt: now,
		}
		return purchaseRepo.Create(purchase)
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}
