package entity

import "time"

// IngredientVariant representa una presentación comprable de un insumo
// (marca/proveedor). Las compras se registran por variante.
type IngredientVariant struct {
	ID           string
	IngredientID string
	Name         string
	SupplierName string
	CreatedAt    time.Time
}
