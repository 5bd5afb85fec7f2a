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

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo implementación de paquetes y su composición sobre PostgreSQL
// (usable con pool o tx).
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// Create persiste la cabecera de un paquete; asigna ID si viene vacío.
func (r *BundleRepo) Create(bundle *entity.Bundle) error {
	if bundle.ID == "" {
		bundle.ID = uuid.New().String()
	}
	if bundle.CreatedAt.IsZero() {
		bundle.CreatedAt = time.Now()
	}
	if bundle.UpdatedAt.IsZero() {
		bundle.UpdatedAt = bundle.CreatedAt
	}
	query := `
		INSERT INTO bundles (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		bundle.ID, bundle.Name, bundle.CreatedAt, bundle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bundle: %w", err)
	}
	return nil
}

// AddEdge agrega una arista de composición; asigna ID si viene vacío. Según
// Kind persiste exactamente un hijo: RECIPE -> child_recipe_id, BUNDLE ->
// child_bundle_id, MATERIAL -> ninguno.
func (r *BundleRepo) AddEdge(edge *entity.CompositionEdge) error {
	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}
	childRecipe := (*string)(nil)
	if edge.ChildRecipeID != "" {
		childRecipe = &edge.ChildRecipeID
	}
	childBundle := (*string)(nil)
	if edge.ChildBundleID != "" {
		childBundle = &edge.ChildBundleID
	}
	query := `
		INSERT INTO bundle_edges (id, bundle_id, kind, child_recipe_id, child_bundle_id)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		edge.ID, edge.BundleID, edge.Kind, childRecipe, childBundle,
	)
	if err != nil {
		return fmt.Errorf("insert bundle edge: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un paquete. Devuelve nil, nil si no existe.
func (r *BundleRepo) GetByID(id string) (*entity.Bundle, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM bundles WHERE id = $1`
	var b entity.Bundle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bundle: %w", err)
	}
	return &b, nil
}

// GetEdges lista las aristas de un paquete en orden de alta. Paquete sin
// aristas devuelve slice vacío.
func (r *BundleRepo) GetEdges(bundleID string) ([]*entity.CompositionEdge, error) {
	query := `
		SELECT id, bundle_id, kind, child_recipe_id, child_bundle_id, seq
		FROM bundle_edges WHERE bundle_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list bundle edges: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CompositionEdge, 0)
	for rows.Next() {
		var e entity.CompositionEdge
		var childRecipe, childBundle *string
		if err := rows.Scan(&e.ID, &e.BundleID, &e.Kind, &childRecipe, &childBundle, &e.Seq); err != nil {
			return nil, fmt.Errorf("scan bundle edge: %w", err)
		}
		if childRecipe != nil {
			e.ChildRecipeID = *childRecipe
		}
		if childBundle != nil {
			e.ChildBundleID = *childBundle
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
