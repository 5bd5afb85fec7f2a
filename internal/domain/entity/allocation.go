package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationLine detalla cuánto se tomó de un lote concreto y a qué costo.
type AllocationLine struct {
	LotID      string
	AcquiredAt time.Time
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}

// AllocationResult es el resultado de una asignación FIFO (real o simulada).
// Invariantes: Consumed + Shortfall = Requested; la suma de Lines.Quantity
// = Consumed; TotalCost cubre solo la porción consumida de lotes, el faltante
// se valora aparte (precio de reposición).
type AllocationResult struct {
	IngredientID string
	Requested    decimal.Decimal
	Consumed     decimal.Decimal
	Shortfall    decimal.Decimal
	Satisfied    bool
	TotalCost    decimal.Decimal
	Lines        []AllocationLine
}
