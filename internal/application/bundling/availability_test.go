package bundling_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// AvailabilityUseCase: un paquete se vende solo si todas sus recetas requeridas
// están seleccionadas; al cambiar la selección, la cascada identifica qué
// paquetes expulsar y con qué nombres avisar.
// ──────────────────────────────────────────────────────────────────────────────

func TestIsAvailable_TodasLasRecetasSeleccionadas(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-desayuno", "Combo desayuno")
	f.addRecipeEdge(t, "combo-desayuno", "rec-arepa")
	f.addRecipeEdge(t, "combo-desayuno", "rec-cafe")

	res, err := f.availability.IsAvailable(context.Background(), "combo-desayuno",
		entity.NewRecipeSet("rec-arepa", "rec-cafe", "rec-jugo"))
	require.NoError(t, err)

	assert.True(t, res.Available)
	assert.Empty(t, res.MissingRecipeIDs)
	assert.Equal(t, []string{"rec-arepa", "rec-cafe"}, res.RequiredRecipeIDs)
}

func TestIsAvailable_FaltaUnaReceta(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-triple", "Combo triple")
	f.addRecipeEdge(t, "combo-triple", "rec-1")
	f.addRecipeEdge(t, "combo-triple", "rec-2")
	f.addRecipeEdge(t, "combo-triple", "rec-3")

	res, err := f.availability.IsAvailable(context.Background(), "combo-triple",
		entity.NewRecipeSet("rec-1", "rec-2"))
	require.NoError(t, err)

	assert.False(t, res.Available, "basta una receta sin seleccionar para vetar el paquete")
	assert.Equal(t, []string{"rec-3"}, res.MissingRecipeIDs)
}

func TestIsAvailable_SinRequisitosSiempreDisponible(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "kit-cubiertos", "Kit de cubiertos")
	f.addMaterialEdge(t, "kit-cubiertos")

	res, err := f.availability.IsAvailable(context.Background(), "kit-cubiertos", entity.NewRecipeSet())
	require.NoError(t, err)

	assert.True(t, res.Available, "sin recetas requeridas no hay nada que falte")
	assert.Empty(t, res.RequiredRecipeIDs)
}

func TestIsAvailable_SeleccionVacia(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-doble", "Combo doble")
	f.addRecipeEdge(t, "combo-doble", "rec-b")
	f.addRecipeEdge(t, "combo-doble", "rec-a")

	res, err := f.availability.IsAvailable(context.Background(), "combo-doble", entity.NewRecipeSet())
	require.NoError(t, err)

	assert.False(t, res.Available)
	assert.Equal(t, []string{"rec-a", "rec-b"}, res.MissingRecipeIDs, "faltan todas, ordenadas")
}

func TestFilterAvailable_ClasificaEnOrdenDeEntrada(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-1", "Combo 1")
	f.addRecipeEdge(t, "combo-1", "rec-si")
	f.seedBundle(t, "combo-2", "Combo 2")
	f.addRecipeEdge(t, "combo-2", "rec-no")
	f.seedBundle(t, "combo-3", "Combo 3")

	results, err := f.availability.FilterAvailable(context.Background(),
		[]string{"combo-2", "combo-3", "combo-1"}, entity.NewRecipeSet("rec-si"))
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "combo-2", results[0].BundleID)
	assert.False(t, results[0].Available)
	assert.Equal(t, "combo-3", results[1].BundleID)
	assert.True(t, results[1].Available)
	assert.Equal(t, "combo-1", results[2].BundleID)
	assert.True(t, results[2].Available)
}

func TestRemoveInvalidSelections_CascadaTrasDeseleccionarReceta(t *testing.T) {
	f := newBundleFixture()
	f.seedRecipe(t, "rec-arepa", "Arepa rellena")
	f.seedRecipe(t, "rec-cafe", "Café campesino")
	f.seedRecipe(t, "rec-jugo", "Jugo natural")
	f.seedBundle(t, "combo-desayuno", "Combo desayuno")
	f.addRecipeEdge(t, "combo-desayuno", "rec-arepa")
	f.addRecipeEdge(t, "combo-desayuno", "rec-cafe")
	f.seedBundle(t, "combo-tarde", "Combo tarde")
	f.addRecipeEdge(t, "combo-tarde", "rec-jugo")

	// rec-cafe sale de la selección: el desayuno cae, la tarde sobrevive.
	removed, err := f.availability.RemoveInvalidSelections(context.Background(),
		[]string{"combo-desayuno", "combo-tarde"},
		entity.NewRecipeSet("rec-arepa", "rec-jugo"))
	require.NoError(t, err)

	require.Len(t, removed, 1)
	assert.Equal(t, "combo-desayuno", removed[0].BundleID)
	assert.Equal(t, "Combo desayuno", removed[0].BundleName, "el nombre viaja para la notificación")
	assert.Equal(t, []string{"rec-cafe"}, removed[0].MissingRecipeIDs)
	assert.Equal(t, []string{"Café campesino"}, removed[0].MissingRecipeNames)
}

func TestRemoveInvalidSelections_TodoValidoDevuelveVacio(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-tarde", "Combo tarde")
	f.addRecipeEdge(t, "combo-tarde", "rec-jugo")

	removed, err := f.availability.RemoveInvalidSelections(context.Background(),
		[]string{"combo-tarde"}, entity.NewRecipeSet("rec-jugo"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestRemoveInvalidSelections_RecetaBorradaUsaElIDComoNombre(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-roto", "Combo con receta borrada")
	f.addRecipeEdge(t, "combo-roto", "rec-borrada") // nunca se creó en catálogo

	removed, err := f.availability.RemoveInvalidSelections(context.Background(),
		[]string{"combo-roto"}, entity.NewRecipeSet())
	require.NoError(t, err, "la notificación no se cae por un catálogo a medio editar")

	require.Len(t, removed, 1)
	assert.Equal(t, []string{"rec-borrada"}, removed[0].MissingRecipeNames,
		"sin nombre en catálogo, el ID hace de nombre")
}

func TestRemoveInvalidSelections_PropagaErroresDeDescomposicion(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-a", "Combo A")
	f.seedBundle(t, "combo-b", "Combo B")
	f.addBundleEdge(t, "combo-a", "combo-b")
	f.addBundleEdge(t, "combo-b", "combo-a")

	_, err := f.availability.RemoveInvalidSelections(context.Background(),
		[]string{"combo-a"}, entity.NewRecipeSet())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCircularReference),
		"el ciclo sube tal cual, la cascada no lo disfraza")
}

func TestIsAvailable_PaqueteInexistente(t *testing.T) {
	f := newBundleFixture()
	_, err := f.availability.IsAvailable(context.Background(), "combo-fantasma", entity.NewRecipeSet())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBundleNotFound))
}

func TestIsAvailable_AnidadoCuentaParaLaDisponibilidad(t *testing.T) {
	f := newBundleFixture()
	f.seedBundle(t, "combo-mega", "Combo mega")
	f.seedBundle(t, "sub-postre", "Postre del día")
	f.addRecipeEdge(t, "combo-mega", "rec-plato")
	f.addBundleEdge(t, "combo-mega", "sub-postre")
	f.addRecipeEdge(t, "sub-postre", "rec-flan")

	res, err := f.availability.IsAvailable(context.Background(), "combo-mega",
		entity.NewRecipeSet("rec-plato"))
	require.NoError(t, err)

	assert.False(t, res.Available, "la receta del paquete anidado también cuenta")
	assert.Equal(t, []string{"rec-flan"}, res.MissingRecipeIDs)
}
