package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación del registro de consumos sobre PostgreSQL
// (usable con pool o tx). Append-only: solo insert y lecturas.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create persiste una fila de consumo; asigna ID si viene vacío.
func (r *ConsumptionRepo) Create(consumption *entity.Consumption) error {
	if consumption.ID == "" {
		consumption.ID = uuid.New().String()
	}
	if consumption.CreatedAt.IsZero() {
		consumption.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO consumptions (id, allocation_id, ingredient_id, lot_id, quantity, unit_cost, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		consumption.ID, consumption.AllocationID, consumption.IngredientID, consumption.LotID,
		consumption.Quantity, consumption.UnitCost, consumption.Note, consumption.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumption: %w", err)
	}
	return nil
}

// ListByAllocation lista las filas de una asignación en el orden en que el
// asignador drenó los lotes.
func (r *ConsumptionRepo) ListByAllocation(allocationID string) ([]*entity.Consumption, error) {
	query := `
		SELECT id, allocation_id, ingredient_id, lot_id, quantity, unit_cost, note, created_at
		FROM consumptions WHERE allocation_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, allocationID)
	if err != nil {
		return nil, fmt.Errorf("list by allocation: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Consumption, 0)
	for rows.Next() {
		var c entity.Consumption
		if err := rows.Scan(&c.ID, &c.AllocationID, &c.IngredientID, &c.LotID,
			&c.Quantity, &c.UnitCost, &c.Note, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListByIngredient lista consumos de un insumo, más recientes primero, con paginación.
func (r *ConsumptionRepo) ListByIngredient(ingredientID string, limit, offset int) ([]*entity.Consumption, error) {
	query := `
		SELECT id, allocation_id, ingredient_id, lot_id, quantity, unit_cost, note, created_at
		FROM consumptions WHERE ingredient_id = $1
		ORDER BY seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ingredientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by ingredient: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Consumption, 0)
	for rows.Next() {
		var c entity.Consumption
		if err := rows.Scan(&c.ID, &c.AllocationID, &c.IngredientID, &c.LotID,
			&c.Quantity, &c.UnitCost, &c.Note, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
