package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación en memoria del catálogo de insumos y
// variantes. Devuelve copias: el estado interno solo cambia por Create*.
// Pensado para tests y demo; proceso único, un solo escritor.
type IngredientRepo struct {
	ingredients map[string]entity.Ingredient
	variants    map[string]entity.IngredientVariant
}

// NewIngredientRepository construye el repositorio vacío.
func NewIngredientRepository() *IngredientRepo {
	return &IngredientRepo{
		ingredients: make(map[string]entity.Ingredient),
		variants:    make(map[string]entity.IngredientVariant),
	}
}

// Create guarda un insumo; asigna ID si viene vacío.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	r.ingredients[ingredient.ID] = *ingredient
	return nil
}

// GetByID devuelve el insumo o nil, nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, nil
	}
	return &ing, nil
}

// CreateVariant guarda una variante; asigna ID si viene vacío.
func (r *IngredientRepo) CreateVariant(variant *entity.IngredientVariant) error {
	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	r.variants[variant.ID] = *variant
	return nil
}

// GetVariant devuelve la variante o nil, nil si no existe.
func (r *IngredientRepo) GetVariant(id string) (*entity.IngredientVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// ListVariants devuelve las variantes de un insumo ordenadas por nombre.
func (r *IngredientRepo) ListVariants(ingredientID string) ([]*entity.IngredientVariant, error) {
	out := make([]*entity.IngredientVariant, 0)
	for _, v := range r.variants {
		if v.IngredientID != ingredientID {
			continue
		}
		vc := v
		out = append(out, &vc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
