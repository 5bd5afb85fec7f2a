package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consumption representa el registro append-only de un consumo real de
// despensa: una fila por lote afectado, agrupadas por AllocationID (todas las
// filas de la misma asignación comparten el ID).
type Consumption struct {
	ID           string
	AllocationID string
	IngredientID string
	LotID        string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	Note         string
	CreatedAt    time.Time
}
