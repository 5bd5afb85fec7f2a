package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un insumo de la despensa (materia prima de recetas).
// Unit es la unidad de control interna (g, ml, un); las líneas de receta pueden
// venir en otra unidad y se convierten antes de costear.
type Ingredient struct {
	ID                 string
	Name               string
	Unit               string
	Density            *decimal.Decimal // g/ml, solo si aplica conversión masa<->volumen
	PreferredVariantID string           // variante preferida para precio de reposición ("" = ninguna)
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
