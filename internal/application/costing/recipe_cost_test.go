package costing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/costeo-engine/internal/application/costing"
	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/infrastructure/unitconv"
)

// ──────────────────────────────────────────────────────────────────────────────
// RecipeCostUseCase: costo real = FIFO simulado + reposición del faltante;
// costo estimado = solo reposición. Nunca un total parcial: si falta un precio
// necesario se aborta.
// ──────────────────────────────────────────────────────────────────────────────

func TestActualCost_DespensaCubreTodaLaReceta(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedLot(t, "lote-ene", "ing-cafe", "2026-01-10", "10", "5.00")
	f.seedLot(t, "lote-feb", "ing-cafe", "2026-02-01", "10", "6.00")
	f.seedRecipe(t, "rec-espresso", "Espresso doble")
	f.seedRecipeLine(t, "rec-espresso", "ing-cafe", "15", "g")

	cost, err := f.recipeCost.ActualCost(context.Background(), "rec-espresso")
	require.NoError(t, err)
	assertDecEqual(t, "80.00", cost, "10*5.00 + 5*6.00, todo desde despensa")

	lot, _ := f.lots.GetByID("lote-ene")
	assertDecEqual(t, "10", lot.Remaining, "costear jamás consume despensa")
}

func TestActualCost_MezclaDespensaYReposicion(t *testing.T) {
	// 3 unidades requeridas, 2 en despensa a 0.10; reposición a 0.15.
	f := newEngineFixture()
	f.seedIngredient(t, "ing-vaso", "Vaso desechable", "un")
	f.seedVariant(t, "var-vaso", "ing-vaso", "Paquete x 50")
	f.seedLot(t, "lote-vasos", "ing-vaso", "2026-01-10", "2", "0.10")
	f.seedPurchase(t, "var-vaso", "2026-02-01", "0.15")
	f.seedRecipe(t, "rec-combo", "Bebida para llevar")
	f.seedRecipeLine(t, "rec-combo", "ing-vaso", "3", "un")

	cost, err := f.recipeCost.ActualCost(context.Background(), "rec-combo")
	require.NoError(t, err)
	assertDecEqual(t, "0.35", cost, "2*0.10 de despensa + 1*0.15 de reposición")
}

func TestActualCost_UsaVariantePreferidaParaElFaltante(t *testing.T) {
	f := newEngineFixture()
	require.NoError(t, f.ingredients.Create(&entity.Ingredient{
		ID: "ing-leche", Name: "Leche entera", Unit: "ml", PreferredVariantID: "var-lechera",
	}))
	f.seedVariant(t, "var-lechera", "ing-leche", "La Lechera 1L")
	f.seedVariant(t, "var-generica", "ing-leche", "Genérica 1L")
	f.seedPurchase(t, "var-lechera", "2026-01-01", "0.002")
	f.seedPurchase(t, "var-generica", "2026-03-01", "0.001") // más nueva, variante no preferida
	f.seedRecipe(t, "rec-latte", "Latte")
	f.seedRecipeLine(t, "rec-latte", "ing-leche", "200", "ml")

	cost, err := f.recipeCost.ActualCost(context.Background(), "rec-latte")
	require.NoError(t, err)
	assertDecEqual(t, "0.4", cost, "200 ml faltantes a 0.002 de la variante preferida")
}

func TestActualCost_SinPrecioConFaltanteAborta(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-vaso", "Vaso desechable", "un")
	f.seedLot(t, "lote-vasos", "ing-vaso", "2026-01-10", "2", "0.10")
	f.seedRecipe(t, "rec-combo", "Bebida para llevar")
	f.seedRecipeLine(t, "rec-combo", "ing-vaso", "3", "un")

	_, err := f.recipeCost.ActualCost(context.Background(), "rec-combo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation),
		"faltante sin precio de reposición: mejor abortar que un total a medias")
}

func TestActualCost_SinPrecioPeroSinFaltanteNoEstorba(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-vaso", "Vaso desechable", "un")
	f.seedLot(t, "lote-vasos", "ing-vaso", "2026-01-10", "10", "0.10")
	f.seedRecipe(t, "rec-combo", "Bebida para llevar")
	f.seedRecipeLine(t, "rec-combo", "ing-vaso", "3", "un")

	cost, err := f.recipeCost.ActualCost(context.Background(), "rec-combo")
	require.NoError(t, err, "el precio de reposición solo se exige si hay faltante")
	assertDecEqual(t, "0.30", cost)
}

func TestActualCost_RecetaVaciaCuestaCeroSinColaboradores(t *testing.T) {
	f := newEngineFixture()
	f.seedRecipe(t, "rec-vacia", "Receta en borrador")

	uc := costing.NewRecipeCostUseCase(
		f.recipes, f.ingredients,
		forbiddenAllocator{t}, forbiddenResolver{t},
		unitconv.NewMetricConverter(),
	)

	cost, err := uc.ActualCost(context.Background(), "rec-vacia")
	require.NoError(t, err)
	assertDecEqual(t, "0", cost)

	cost, err = uc.EstimatedCost(context.Background(), "rec-vacia")
	require.NoError(t, err)
	assertDecEqual(t, "0", cost)
}

func TestActualCost_RecetaInexistente(t *testing.T) {
	f := newEngineFixture()
	_, err := f.recipeCost.ActualCost(context.Background(), "rec-fantasma")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))
}

func TestActualCost_InsumoInexistenteEnLinea(t *testing.T) {
	f := newEngineFixture()
	f.seedRecipe(t, "rec-rota", "Receta con insumo borrado")
	f.seedRecipeLine(t, "rec-rota", "ing-fantasma", "1", "g")

	_, err := f.recipeCost.ActualCost(context.Background(), "rec-rota")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIngredientNotFound))
}

func TestActualCost_LineaNegativaAborta(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedRecipe(t, "rec-rara", "Receta corrupta")
	f.seedRecipeLine(t, "rec-rara", "ing-cafe", "-5", "g")

	_, err := f.recipeCost.ActualCost(context.Background(), "rec-rara")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestActualCost_LineaEnCeroSeOmite(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedIngredient(t, "ing-canela", "Canela en polvo", "g")
	f.seedLot(t, "lote-cafe", "ing-cafe", "2026-01-10", "100", "5.00")
	f.seedRecipe(t, "rec-mixta", "Receta con línea en cero")
	f.seedRecipeLine(t, "rec-mixta", "ing-cafe", "10", "g")
	f.seedRecipeLine(t, "rec-mixta", "ing-canela", "0", "g") // sin despensa ni precio: da igual

	cost, err := f.recipeCost.ActualCost(context.Background(), "rec-mixta")
	require.NoError(t, err, "la línea en cero no debe exigir despensa ni precio")
	assertDecEqual(t, "50.00", cost)
}

func TestActualCost_ConvierteUnidadesDeLinea(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g")
	f.seedLot(t, "lote-harina", "ing-harina", "2026-01-10", "2000", "0.002")
	f.seedRecipe(t, "rec-pan", "Pan campesino")
	f.seedRecipeLine(t, "rec-pan", "ing-harina", "1.5", "kg") // receta en kg, control en g

	cost, err := f.recipeCost.ActualCost(context.Background(), "rec-pan")
	require.NoError(t, err)
	assertDecEqual(t, "3.000", cost, "1500 g * 0.002")
}

func TestActualCost_ConversionSinDensidadAborta(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-harina", "Harina de trigo", "g") // sin densidad
	f.seedRecipe(t, "rec-rara", "Receta en mililitros")
	f.seedRecipeLine(t, "rec-rara", "ing-harina", "100", "ml")

	_, err := f.recipeCost.ActualCost(context.Background(), "rec-rara")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEstimatedCost_IgnoraLaDespensa(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedVariant(t, "var-cafe", "ing-cafe", "Café x 500g")
	f.seedLot(t, "lote-barato", "ing-cafe", "2026-01-10", "100", "5.00")
	f.seedPurchase(t, "var-cafe", "2026-03-01", "7.00")
	f.seedRecipe(t, "rec-espresso", "Espresso doble")
	f.seedRecipeLine(t, "rec-espresso", "ing-cafe", "10", "g")

	estimated, err := f.recipeCost.EstimatedCost(context.Background(), "rec-espresso")
	require.NoError(t, err)
	assertDecEqual(t, "70.00", estimated, "10 * 7.00 de reposición, la despensa no cuenta")

	actual, err := f.recipeCost.ActualCost(context.Background(), "rec-espresso")
	require.NoError(t, err)
	assertDecEqual(t, "50.00", actual, "el costo real sí usa la despensa barata")
}

func TestEstimatedCost_SinPrecioAborta(t *testing.T) {
	f := newEngineFixture()
	f.seedIngredient(t, "ing-cafe", "Café molido", "g")
	f.seedLot(t, "lote-cafe", "ing-cafe", "2026-01-10", "100", "5.00")
	f.seedRecipe(t, "rec-espresso", "Espresso doble")
	f.seedRecipeLine(t, "rec-espresso", "ing-cafe", "10", "g")

	_, err := f.recipeCost.EstimatedCost(context.Background(), "rec-espresso")
	require.Error(t, err, "estimar requiere precio de reposición aunque haya despensa")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEstimatedCost_RecetaInexistente(t *testing.T) {
	f := newEngineFixture()
	_, err := f.recipeCost.EstimatedCost(context.Background(), "rec-fantasma")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))
}

// ── stubs que no deben tocarse ────────────────────────────────────────────────

type forbiddenAllocator struct{ t *testing.T }

func (fa forbiddenAllocator) Simulate(_ context.Context, _ string, _ decimal.Decimal) (*entity.AllocationResult, error) {
	fa.t.Fatal("la receta vacía no debe tocar el asignador")
	return nil, nil
}

type forbiddenResolver struct{ t *testing.T }

func (fr forbiddenResolver) Resolve(_ context.Context, _, _ string) (*entity.PriceQuote, error) {
	fr.t.Fatal("la receta vacía no debe tocar el resolutor de precios")
	return nil, nil
}
