package repository

import "github.com/invorya/costeo-engine/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas (DIP).
// GetByID devuelve nil, nil si no existe; GetLines de una receta existente sin
// líneas devuelve slice vacío (caso distinto a receta inexistente).
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	AddLine(line *entity.RecipeLine) error
	GetByID(id string) (*entity.Recipe, error)
	GetLines(recipeID string) ([]*entity.RecipeLine, error)
}
