package costing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// PriceResolverService: variante preferida primero, fallback al resto, empates
// por orden de registro y "sin precio" como dato (nil, nil).
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_VariantePreferidaGanaAunqueHayaMasNueva(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g")
	f.seedVariant(t, "var-marca-a", "ing-harina", "Marca A x 1kg")
	f.seedVariant(t, "var-marca-b", "ing-harina", "Marca B x 1kg")
	f.seedPurchase(t, "var-marca-a", "2026-01-05", "10.00")
	f.seedPurchase(t, "var-marca-a", "2026-03-01", "12.00")
	f.seedPurchase(t, "var-marca-b", "2026-04-20", "9.00") // más nueva, pero de otra variante

	quote, err := f.prices.Resolve(context.Background(), "ing-harina", "var-marca-a")
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "var-marca-a", quote.VariantID, "la preferida con historial manda")
	assertDecEqual(t, "12.00", quote.UnitPrice, "la compra más reciente de la preferida")
}

func TestResolve_FallbackSiLaPreferidaNoTieneHistorial(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g")
	f.seedVariant(t, "var-marca-a", "ing-harina", "Marca A x 1kg")
	f.seedVariant(t, "var-marca-b", "ing-harina", "Marca B x 1kg")
	f.seedPurchase(t, "var-marca-b", "2026-02-14", "8.00")

	quote, err := f.prices.Resolve(context.Background(), "ing-harina", "var-marca-a")
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "var-marca-b", quote.VariantID,
		"sin historial en la preferida se recorre el resto de variantes")
	assertDecEqual(t, "8.00", quote.UnitPrice)
}

func TestResolve_SinPreferidaTomaLaMasRecienteGlobal(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g")
	f.seedVariant(t, "var-marca-a", "ing-harina", "Marca A x 1kg")
	f.seedVariant(t, "var-marca-b", "ing-harina", "Marca B x 1kg")
	f.seedPurchase(t, "var-marca-a", "2026-03-01", "12.00")
	f.seedPurchase(t, "var-marca-b", "2026-04-20", "9.00")

	quote, err := f.prices.Resolve(context.Background(), "ing-harina", "")
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "var-marca-b", quote.VariantID)
	assertDecEqual(t, "9.00", quote.UnitPrice)
}

func TestResolve_EmpateDeFechaGanaLaUltimaRegistrada(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g")
	f.seedVariant(t, "var-marca-a", "ing-harina", "Marca A x 1kg")
	f.seedPurchase(t, "var-marca-a", "2026-03-01", "12.00")
	f.seedPurchase(t, "var-marca-a", "2026-03-01", "12.50") // misma fecha, registrada después

	quote, err := f.prices.Resolve(context.Background(), "ing-harina", "var-marca-a")
	require.NoError(t, err)
	require.NotNil(t, quote)

	assertDecEqual(t, "12.50", quote.UnitPrice,
		"a igual fecha decide el orden de registro, determinista siempre")
}

func TestResolve_SinCompraAlgunaDevuelveNil(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g")
	f.seedVariant(t, "var-marca-a", "ing-harina", "Marca A x 1kg")

	quote, err := f.prices.Resolve(context.Background(), "ing-harina", "var-marca-a")
	require.NoError(t, err, "no tener precio no es un error del resolutor")
	assert.Nil(t, quote)
}

func TestResolve_InsumoSinVariantesDevuelveNil(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g")

	quote, err := f.prices.Resolve(context.Background(), "ing-harina", "")
	require.NoError(t, err)
	assert.Nil(t, quote)
}
