package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del historial de compras sobre PostgreSQL
// (usable con pool o tx). Append-only; Seq lo asigna la base (BIGSERIAL) y
// desempata compras registradas con la misma fecha.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra; asigna ID si viene vacío.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO purchases (id, variant_id, date, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.VariantID, purchase.Date, purchase.UnitPrice, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// LatestByVariant obtiene la compra más reciente de una variante (date desc,
// a igual fecha la última registrada). Devuelve nil, nil si no hay compras.
func (r *PurchaseRepo) LatestByVariant(variantID string) (*entity.Purchase, error) {
	query := `
		SELECT id, variant_id, date, unit_price, seq, created_at
		FROM purchases WHERE variant_id = $1
		ORDER BY date DESC, seq DESC LIMIT 1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(
		&p.ID, &p.VariantID, &p.Date, &p.UnitPrice, &p.Seq, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest purchase: %w", err)
	}
	return &p, nil
}

// ListByVariant lista compras de una variante, más recientes primero, con paginación.
func (r *PurchaseRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, variant_id, date, unit_price, seq, created_at
		FROM purchases WHERE variant_id = $1
		ORDER BY date DESC, seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Purchase, 0)
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.VariantID, &p.Date, &p.UnitPrice, &p.Seq, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
