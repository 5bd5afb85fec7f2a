package costing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

// Compile checks: los casos de uso concretos satisfacen los puertos del costeo.
var _ Allocator = (*AllocatorUseCase)(nil)
var _ PriceResolver = (*PriceResolverService)(nil)

// RecipeCostUseCase calcula el costo de producir una receta.
//
// Costo real: cada línea se convierte a la unidad de control del insumo, se
// simula la asignación FIFO (nunca consume) y se suma el costo de la porción
// cubierta; el faltante se valora al precio de reposición. Costo estimado:
// todo al precio de reposición, ignorando la despensa. Ningún modo devuelve
// totales parciales: si falta un precio necesario, se aborta con
// ValidationError.
type RecipeCostUseCase struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	allocator      Allocator
	prices         PriceResolver
	converter      UnitConverter
}

// NewRecipeCostUseCase construye el caso de uso con sus colaboradores.
func NewRecipeCostUseCase(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	allocator Allocator,
	prices PriceResolver,
	converter UnitConverter,
) *RecipeCostUseCase {
	return &RecipeCostUseCase{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		allocator:      allocator,
		prices:         prices,
		converter:      converter,
	}
}

// ActualCost calcula el costo real de la receta contra la despensa actual.
// Solo simula: ningún lote cambia. Receta sin líneas cuesta cero sin tocar
// asignador ni resolutor de precios.
func (uc *RecipeCostUseCase) ActualCost(ctx context.Context, recipeID string) (decimal.Decimal, error) {
	lines, err := uc.recipeLines(recipeID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		ingredient, qty, err := uc.convertedQuantity(line)
		if err != nil {
			return decimal.Zero, err
		}
		if ingredient == nil {
			continue // línea en cero
		}

		res, err := uc.allocator.Simulate(ctx, line.IngredientID, qty)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(res.TotalCost)
		if res.Satisfied {
			continue
		}

		// Faltante: valorar al precio de reposición; sin precio no hay total.
		quote, err := uc.prices.Resolve(ctx, line.IngredientID, ingredient.PreferredVariantID)
		if err != nil {
			return decimal.Zero, err
		}
		if quote == nil {
			return decimal.Zero, domain.NewValidationError(
				"insumo %s: faltan %s %s en despensa y no hay precio de reposición",
				ingredient.Name, res.Shortfall, ingredient.Unit)
		}
		total = total.Add(res.Shortfall.Mul(quote.UnitPrice))
	}
	return total, nil
}

// EstimatedCost calcula el costo de la receta solo con precios de reposición,
// ignorando el estado de la despensa (cotización rápida / carta nueva).
func (uc *RecipeCostUseCase) EstimatedCost(ctx context.Context, recipeID string) (decimal.Decimal, error) {
	lines, err := uc.recipeLines(recipeID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		ingredient, qty, err := uc.convertedQuantity(line)
		if err != nil {
			return decimal.Zero, err
		}
		if ingredient == nil {
			continue
		}

		quote, err := uc.prices.Resolve(ctx, line.IngredientID, ingredient.PreferredVariantID)
		if err != nil {
			return decimal.Zero, err
		}
		if quote == nil {
			return decimal.Zero, domain.NewValidationError(
				"insumo %s: sin precio de reposición para estimar", ingredient.Name)
		}
		total = total.Add(qty.Mul(quote.UnitPrice))
	}
	return total, nil
}

// recipeLines valida que la receta exista y devuelve sus líneas.
func (uc *RecipeCostUseCase) recipeLines(recipeID string) ([]*entity.RecipeLine, error) {
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, recipeID)
	}
	return uc.recipeRepo.GetLines(recipeID)
}

// convertedQuantity valida la línea y la convierte a la unidad de control del
// insumo. Devuelve (nil, cero, nil) para líneas en cero, que se omiten; una
// cantidad negativa es dato corrupto de receta y aborta el costeo.
func (uc *RecipeCostUseCase) convertedQuantity(line *entity.RecipeLine) (*entity.Ingredient, decimal.Decimal, error) {
	if line.Quantity.IsZero() {
		return nil, decimal.Zero, nil
	}
	if line.Quantity.IsNegative() {
		return nil, decimal.Zero, domain.NewValidationError(
			"receta %s: línea con cantidad negativa %s para insumo %s",
			line.RecipeID, line.Quantity, line.IngredientID)
	}
	ingredient, err := uc.ingredientRepo.GetByID(line.IngredientID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if ingredient == nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, line.IngredientID)
	}
	qty, err := uc.converter.Convert(ingredient, line.Quantity, line.Unit, ingredient.Unit)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return ingredient, qty, nil
}
