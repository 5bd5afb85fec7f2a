package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/costing"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

// AllocatorUseCase asigna consumo de despensa con FIFO. Simulate calcula sobre
// la foto de lotes sin tocar nada; Consume ejecuta la misma asignación de
// forma transaccional, descontando Remaining por lote (SELECT FOR UPDATE) y
// registrando el consumo. El faltante nunca es error: va en el resultado.
type AllocatorUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	lotRepo        repository.LotRepository
}

// NewAllocatorUseCase construye el caso de uso.
func NewAllocatorUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	lotRepo repository.LotRepository,
) *AllocatorUseCase {
	return &AllocatorUseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		lotRepo:        lotRepo,
	}
}

// ConsumeInput entrada para consumir despensa. Note es una anotación libre
// que queda en cada fila de consumo (p.ej. "producción pedido #42").
type ConsumeInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	Note         string
}

// Simulate ejecuta la asignación FIFO sin efecto alguno: mismo recorrido y
// mismo resultado que Consume sobre la despensa actual, pero ningún lote
// cambia. Pedir cero devuelve satisfecho sin leer lotes.
func (uc *AllocatorUseCase) Simulate(ctx context.Context, ingredientID string, quantity decimal.Decimal) (*entity.AllocationResult, error) {
	if err := uc.validate(ingredientID, quantity); err != nil {
		return nil, err
	}
	if quantity.IsZero() {
		return costing.AllocateFIFO(ingredientID, nil, quantity)
	}
	lots, err := uc.lotRepo.ListByIngredient(ingredientID)
	if err != nil {
		return nil, err
	}
	return costing.AllocateFIFO(ingredientID, lots, quantity)
}

// Consume inicia una transacción, bloquea los lotes del insumo (SELECT FOR
// UPDATE), asigna FIFO, descuenta Remaining por lote y registra una fila de
// consumo por lote afectado; Commit o Rollback como unidad.
func (uc *AllocatorUseCase) Consume(ctx context.Context, input ConsumeInput) (*entity.AllocationResult, error) {
	if err := uc.validate(input.IngredientID, input.Quantity); err != nil {
		return nil, err
	}
	if input.Quantity.IsZero() {
		return costing.AllocateFIFO(input.IngredientID, nil, input.Quantity)
	}

	var result *entity.AllocationResult
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		consumptionRepo repository.ConsumptionRepository,
		_ repository.PurchaseRepository,
	) error {
		res, err := uc.ConsumeInTx(lotRepo, consumptionRepo, input)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConsumeInTx ejecuta el consumo usando los repositorios proporcionados (misma
// transacción del caller); permite componer el consumo dentro de operaciones
// atómicas mayores. El caller responde por la validación de entrada.
func (uc *AllocatorUseCase) ConsumeInTx(
	lotRepo repository.LotRepository,
	consumptionRepo repository.ConsumptionRepository,
	input ConsumeInput,
) (*entity.AllocationResult, error) {
	lots, err := lotRepo.ListByIngredientForUpdate(input.IngredientID)
	if err != nil {
		return nil, err
	}
	res, err := costing.AllocateFIFO(input.IngredientID, lots, input.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	allocationID := uuid.New().String()
	byID := make(map[string]*entity.Lot, len(lots))
	for _, lot := range lots {
		byID[lot.ID] = lot
	}
	for _, line := range res.Lines {
		lot := byID[line.LotID]
		if err := lotRepo.UpdateRemaining(line.LotID, lot.Remaining.Sub(line.Quantity)); err != nil {
			return nil, err
		}
		cons := &entity.Consumption{
			AllocationID: allocationID,
			IngredientID: res.IngredientID,
			LotID:        line.LotID,
			Quantity:     line.Quantity,
			UnitCost:     line.UnitCost,
			Note:         input.Note,
			CreatedAt:    now,
		}
		if err := consumptionRepo.Create(cons); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// validate verifica cantidad no negativa y existencia del insumo.
func (uc *AllocatorUseCase) validate(ingredientID string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return fmt.Errorf("%w: cantidad solicitada %s", domain.ErrInvalidQuantity, quantity)
	}
	ingredient, err := uc.ingredientRepo.GetByID(ingredientID)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, ingredientID)
	}
	return nil
}
