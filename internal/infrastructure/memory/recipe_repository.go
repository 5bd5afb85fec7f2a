package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación en memoria de recetas y sus líneas.
type RecipeRepo struct {
	recipes map[string]entity.Recipe
	lines   []entity.RecipeLine
	nextSeq int64
}

// NewRecipeRepository construye el repositorio vacío.
func NewRecipeRepository() *RecipeRepo {
	return &RecipeRepo{recipes: make(map[string]entity.Recipe), lines: []entity.RecipeLine{}, nextSeq: 1}
}

// Create guarda una receta; asigna ID si viene vacío.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	r.recipes[recipe.ID] = *recipe
	return nil
}

// AddLine agrega una línea a la receta; asigna ID y Seq.
func (r *RecipeRepo) AddLine(line *entity.RecipeLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.Seq = r.nextSeq
	r.nextSeq++
	r.lines = append(r.lines, *line)
	return nil
}

// GetByID devuelve la receta o nil, nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetLines devuelve las líneas de la receta en orden de inserción. Receta sin
// líneas devuelve slice vacío (existir o no lo valida el caso de uso).
func (r *RecipeRepo) GetLines(recipeID string) ([]*entity.RecipeLine, error) {
	out := make([]*entity.RecipeLine, 0)
	for i := range r.lines {
		if r.lines[i].RecipeID != recipeID {
			continue
		}
		lc := r.lines[i]
		out = append(out, &lc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}
