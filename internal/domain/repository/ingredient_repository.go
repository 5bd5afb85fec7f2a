package repository

import "github.com/invorya/costeo-engine/internal/domain/entity"

// IngredientRepository define el puerto de persistencia para insumos y sus
// variantes (DIP). GetByID y GetVariant devuelven nil, nil si no existe.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	CreateVariant(variant *entity.IngredientVariant) error
	GetVariant(id string) (*entity.IngredientVariant, error)
	ListVariants(ingredientID string) ([]*entity.IngredientVariant, error)
}
