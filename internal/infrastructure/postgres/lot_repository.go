package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de los lotes de despensa sobre PostgreSQL (usable con
// pool o tx). Seq lo asigna la base (BIGSERIAL): orden de inserción real aun
// con varias conexiones.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote nuevo; asigna ID si viene vacío. Seq queda en manos
// de la base y aparece en las lecturas posteriores.
func (r *LotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO lots (id, ingredient_id, acquired_at, received, remaining, unit_cost, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.IngredientID, lot.AcquiredAt, lot.Received, lot.Remaining,
		lot.UnitCost, lot.Note, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil, nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `
		SELECT id, ingredient_id, acquired_at, received, remaining, unit_cost, note, seq, created_at
		FROM lots WHERE id = $1`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.IngredientID, &l.AcquiredAt, &l.Received, &l.Remaining,
		&l.UnitCost, &l.Note, &l.Seq, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// ListByIngredient lista los lotes de un insumo en orden FIFO (acquired_at
// asc, seq asc), incluidos los agotados.
func (r *LotRepo) ListByIngredient(ingredientID string) ([]*entity.Lot, error) {
	return r.listByIngredient(ingredientID, false)
}

// ListByIngredientForUpdate lista en orden FIFO bloqueando las filas
// (SELECT FOR UPDATE). Usar solo dentro de una transacción: es el candado del
// consumo real contra consumos concurrentes del mismo insumo.
func (r *LotRepo) ListByIngredientForUpdate(ingredientID string) ([]*entity.Lot, error) {
	return r.listByIngredient(ingredientID, true)
}

func (r *LotRepo) listByIngredient(ingredientID string, forUpdate bool) ([]*entity.Lot, error) {
	query := `
		SELECT id, ingredient_id, acquired_at, received, remaining, unit_cost, note, seq, created_at
		FROM lots WHERE ingredient_id = $1
		ORDER BY acquired_at, seq`
	if forUpdate {
		query += " FOR UPDATE"
	}
	rows, err := r.q.Query(context.Background(), query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Lot, 0)
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.IngredientID, &l.AcquiredAt, &l.Received, &l.Remaining,
			&l.UnitCost, &l.Note, &l.Seq, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateRemaining fija el Remaining de un lote existente (solo lo usa el
// asignador dentro de la tx de consumo).
func (r *LotRepo) UpdateRemaining(lotID string, remaining decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE lots SET remaining = $2 WHERE id = $1`,
		lotID, remaining,
	)
	if err != nil {
		return fmt.Errorf("update lot remaining: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update remaining: lote %s no existe", lotID)
	}
	return nil
}
