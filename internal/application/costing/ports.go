package costing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el consumo real de
// lotes y para la recepción de compras.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		consumptionRepo repository.ConsumptionRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// UnitConverter convierte una cantidad de la unidad de la línea de receta a la
// unidad de control del insumo. Colaborador confiable: el motor no implementa
// conversión. La conversión masa<->volumen usa Ingredient.Density; si el dato
// necesario falta, devuelve ValidationError.
type UnitConverter interface {
	Convert(ingredient *entity.Ingredient, qty decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error)
}

// Allocator es el puerto del costeo de recetas hacia el asignador FIFO: el
// costeo solo simula, jamás consume.
type Allocator interface {
	Simulate(ctx context.Context, ingredientID string, quantity decimal.Decimal) (*entity.AllocationResult, error)
}

// PriceResolver es el puerto hacia el resolutor de precio de reposición.
// nil, nil significa "sin precio"; el caller decide si eso es fatal.
type PriceResolver interface {
	Resolve(ctx context.Context, ingredientID, preferredVariantID string) (*entity.PriceQuote, error)
}
