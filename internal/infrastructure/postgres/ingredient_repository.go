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

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación del catálogo de insumos y variantes sobre
// PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un insumo; asigna ID si viene vacío.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	if ingredient.CreatedAt.IsZero() {
		ingredient.CreatedAt = time.Now()
	}
	if ingredient.UpdatedAt.IsZero() {
		ingredient.UpdatedAt = ingredient.CreatedAt
	}
	query := `
		INSERT INTO ingredients (id, name, unit, density, preferred_variant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	preferred := (*string)(nil)
	if ingredient.PreferredVariantID != "" {
		preferred = &ingredient.PreferredVariantID
	}
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.Density, preferred,
		ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID. Devuelve nil, nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `
		SELECT id, name, unit, density, preferred_variant_id, created_at, updated_at
		FROM ingredients WHERE id = $1`
	var i entity.Ingredient
	var preferred *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Name, &i.Unit, &i.Density, &preferred, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	if preferred != nil {
		i.PreferredVariantID = *preferred
	}
	return &i, nil
}

// CreateVariant persiste una variante de insumo; asigna ID si viene vacío.
func (r *IngredientRepo) CreateVariant(variant *entity.IngredientVariant) error {
	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	if variant.CreatedAt.IsZero() {
		variant.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO ingredient_variants (id, ingredient_id, name, supplier_name, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.IngredientID, variant.Name, variant.SupplierName, variant.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetVariant obtiene una variante por ID. Devuelve nil, nil si no existe.
func (r *IngredientRepo) GetVariant(id string) (*entity.IngredientVariant, error) {
	query := `
		SELECT id, ingredient_id, name, supplier_name, created_at
		FROM ingredient_variants WHERE id = $1`
	var v entity.IngredientVariant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.IngredientID, &v.Name, &v.SupplierName, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// ListVariants lista las variantes de un insumo ordenadas por nombre.
func (r *IngredientRepo) ListVariants(ingredientID string) ([]*entity.IngredientVariant, error) {
	query := `
		SELECT id, ingredient_id, name, supplier_name, created_at
		FROM ingredient_variants WHERE ingredient_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.IngredientVariant, 0)
	for rows.Next() {
		var v entity.IngredientVariant
		if err := rows.Scan(&v.ID, &v.IngredientID, &v.Name, &v.SupplierName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
