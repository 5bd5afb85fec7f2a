package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra registrada de una variante de insumo.
// Historial append-only: alimenta el precio de reposición ("más reciente"
// = Date desc y, a igual fecha, Seq desc).
type Purchase struct {
	ID        string
	VariantID string
	Date      time.Time
	UnitPrice decimal.Decimal
	Seq       int64 // orden de registro, desempata compras con la misma fecha
	CreatedAt time.Time
}
