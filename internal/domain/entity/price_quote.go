package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote es el precio de reposición resuelto para un insumo: la compra
// más reciente de la variante preferida o, en su defecto, de cualquier
// variante. VariantID indica de cuál salió el precio.
type PriceQuote struct {
	IngredientID string
	VariantID    string
	UnitPrice    decimal.Decimal
	Date         time.Time
}
