package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote de despensa: una entrada de stock con su costo
// unitario de adquisición. El orden FIFO es AcquiredAt asc y, a igual fecha,
// Seq asc (orden de inserción). Remaining solo lo decrementa el asignador;
// los lotes agotados (Remaining = 0) se conservan, nunca se borran.
type Lot struct {
	ID           string
	IngredientID string
	AcquiredAt   time.Time
	Received     decimal.Decimal // cantidad original del lote
	Remaining    decimal.Decimal // 0 <= Remaining <= Received
	UnitCost     decimal.Decimal
	Note         string
	Seq          int64 // desempate de orden a igual fecha de adquisición
	CreatedAt    time.Time
}

// Exhausted indica si el lote ya no tiene existencias.
func (l *Lot) Exhausted() bool {
	return !l.Remaining.IsPositive()
}
