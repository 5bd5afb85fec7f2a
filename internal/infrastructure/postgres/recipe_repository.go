package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del catálogo de recetas sobre PostgreSQL (usable
// con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la cabecera de una receta; asigna ID si viene vacío.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now()
	}
	if recipe.UpdatedAt.IsZero() {
		recipe.UpdatedAt = recipe.CreatedAt
	}
	query := `
		INSERT INTO recipes (id, name, yield, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Name, recipe.Yield, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// AddLine agrega una línea a la receta; asigna ID si viene vacío. Seq lo
// asigna la base: las líneas se leen en orden de alta.
func (r *RecipeRepo) AddLine(line *entity.RecipeLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recipe_lines (id, recipe_id, ingredient_id, quantity, unit)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.RecipeID, line.IngredientID, line.Quantity, line.Unit,
	)
	if err != nil {
		return fmt.Errorf("insert recipe line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una receta. Devuelve nil, nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `
		SELECT id, name, yield, created_at, updated_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.Name, &rec.Yield, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// GetLines lista las líneas de una receta en orden de alta. Receta sin líneas
// devuelve slice vacío.
func (r *RecipeRepo) GetLines(recipeID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT id, recipe_id, ingredient_id, quantity, unit, seq
		FROM recipe_lines WHERE recipe_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.RecipeLine, 0)
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.IngredientID, &l.Quantity, &l.Unit, &l.Seq); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
