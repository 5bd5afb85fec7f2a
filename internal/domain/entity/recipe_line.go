package entity

import "github.com/shopspring/decimal"

// RecipeLine representa una línea de receta: cantidad de un insumo en la
// unidad de la receta (puede diferir de la unidad de control del insumo).
type RecipeLine struct {
	ID           string
	RecipeID     string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
	Seq          int64
}
