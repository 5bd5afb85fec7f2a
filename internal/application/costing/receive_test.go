package costing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/costeo-engine/internal/application/costing"
	"github.com/invorya/costeo-engine/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveStockUseCase: recibir una compra crea el lote y su fila de historial
// como una sola operación; es el único camino de alta de despensa.
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_CreaLoteYCompra(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedVariant(t, "var-cafe", "ing-cafe", "Café x 500g")

	lot, err := f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-cafe",
		VariantID:    "var-cafe",
		Quantity:     dec("500"),
		UnitCost:     dec("0.04"),
		AcquiredAt:   day("2026-02-10"),
		Note:         "factura 0147",
	})
	require.NoError(t, err)
	require.NotEmpty(t, lot.ID, "el repositorio asigna ID al lote")

	stored, err := f.lots.GetByID(lot.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assertDecEqual(t, "500", stored.Received)
	assertDecEqual(t, "500", stored.Remaining, "el lote nace con Remaining = Received")
	assert.Equal(t, "factura 0147", stored.Note)

	latest, err := f.purchases.LatestByVariant("var-cafe")
	require.NoError(t, err)
	require.NotNil(t, latest, "recibir deja la compra en el historial")
	assertDecEqual(t, "0.04", latest.UnitPrice)

	quote, err := f.prices.Resolve(context.Background(), "ing-cafe", "")
	require.NoError(t, err)
	require.NotNil(t, quote, "la compra recibida ya sirve de precio de reposición")
	assertDecEqual(t, "0.04", quote.UnitPrice)
}

func TestReceive_LoRecibidoEntraAlFIFOPorFecha(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedVariant(t, "var-cafe", "ing-cafe", "Café x 500g")

	_, err := f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-cafe", VariantID: "var-cafe",
		Quantity: dec("10"), UnitCost: dec("6.00"), AcquiredAt: day("2026-02-01"),
	})
	require.NoError(t, err)
	_, err = f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-cafe", VariantID: "var-cafe",
		Quantity: dec("10"), UnitCost: dec("5.00"), AcquiredAt: day("2026-01-10"),
	})
	require.NoError(t, err)

	res, err := f.allocator.Simulate(context.Background(), "ing-cafe", dec("15"))
	require.NoError(t, err)
	assertDecEqual(t, "80.00", res.TotalCost,
		"manda la fecha de adquisición, no el orden en que se recibieron")
}

func TestReceive_ValidaCantidadYCosto(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedVariant(t, "var-cafe", "ing-cafe", "Café x 500g")

	_, err := f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-cafe", VariantID: "var-cafe", Quantity: dec("0"), UnitCost: dec("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), "cantidad cero no crea lote")

	_, err = f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-cafe", VariantID: "var-cafe", Quantity: dec("-3"), UnitCost: dec("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-cafe", VariantID: "var-cafe", Quantity: dec("3"), UnitCost: dec("-1"),
	})
	assert.True(t, errors.Is(err, domain.ErrValidation), "costo unitario negativo no pasa")
}

func TestReceive_ValidaInsumoYVariante(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedIngredient(t, "ing-azucar", "Azúcar", "g")
	f.seedVariant(t, "var-cafe", "ing-cafe", "Café x 500g")

	_, err := f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-fantasma", VariantID: "var-cafe", Quantity: dec("1"), UnitCost: dec("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrIngredientNotFound))

	_, err = f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-cafe", VariantID: "var-fantasma", Quantity: dec("1"), UnitCost: dec("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrVariantNotFound))

	_, err = f.receiver.Receive(context.Background(), costing.ReceiveInput{
		IngredientID: "ing-azucar", VariantID: "var-cafe", Quantity: dec("1"), UnitCost: dec("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrValidation),
		"la variante debe pertenecer al insumo declarado")
}
