// demo recorre el motor completo de punta a punta: alta de catálogo,
// recepción de compras en lotes, simulación y consumo FIFO, costeo de recetas
// y disponibilidad de paquetes.
//
// Uso: go run ./cmd/demo
// Sin DATABASE_URL corre sobre repositorios en memoria (autocontenido).
// Con DATABASE_URL usa PostgreSQL: pensado contra una base de pruebas con el
// esquema de internal/infrastructure/postgres/migrations/ aplicado; el
// catálogo se crea si no existe.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/application/bundling"
	"github.com/invorya/costeo-engine/internal/application/costing"
	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
	"github.com/invorya/costeo-engine/internal/infrastructure/memory"
	"github.com/invorya/costeo-engine/internal/infrastructure/postgres"
	"github.com/invorya/costeo-engine/internal/infrastructure/unitconv"
	"github.com/invorya/costeo-engine/pkg/config"
	"github.com/invorya/costeo-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	}).Component("demo")

	ctx := context.Background()

	var (
		ingredientRepo  repository.IngredientRepository
		lotRepo         repository.LotRepository
		purchaseRepo    repository.PurchaseRepository
		consumptionRepo repository.ConsumptionRepository
		recipeRepo      repository.RecipeRepository
		bundleRepo      repository.BundleRepository
		txRunner        costing.TxRunner
	)
	if cfg.DB.DatabaseURL != "" {
		log.Info().Msg("backend: PostgreSQL")
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		ingredientRepo = postgres.NewIngredientRepository(pool)
		lotRepo = postgres.NewLotRepository(pool)
		purchaseRepo = postgres.NewPurchaseRepository(pool)
		consumptionRepo = postgres.NewConsumptionRepository(pool)
		recipeRepo = postgres.NewRecipeRepository(pool)
		bundleRepo = postgres.NewBundleRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	} else {
		log.Info().Msg("backend: memoria (exporte DATABASE_URL para usar PostgreSQL)")
		memLots := memory.NewLotRepository()
		memPurchases := memory.NewPurchaseRepository()
		memConsumptions := memory.NewConsumptionRepository()
		ingredientRepo = memory.NewIngredientRepository()
		lotRepo = memLots
		purchaseRepo = memPurchases
		consumptionRepo = memConsumptions
		recipeRepo = memory.NewRecipeRepository()
		bundleRepo = memory.NewBundleRepository()
		txRunner = memory.NewTxRunner(memLots, memConsumptions, memPurchases)
	}

	receiver := costing.NewReceiveStockUseCase(txRunner, ingredientRepo)
	allocator := costing.NewAllocatorUseCase(txRunner, ingredientRepo, lotRepo)
	prices := costing.NewPriceResolverService(ingredientRepo, purchaseRepo)
	recipeCost := costing.NewRecipeCostUseCase(
		recipeRepo, ingredientRepo, allocator, prices, unitconv.NewMetricConverter(),
	)
	decomposer := bundling.NewBundleDecomposer(bundleRepo, cfg.Engine.MaxBundleDepth)
	availability := bundling.NewAvailabilityUseCase(decomposer, bundleRepo, recipeRepo)

	// ── 1. Catálogo ──────────────────────────────────────────────────────────
	// Insumos con unidad de control, variantes de compra, recetas y paquetes.
	// IDs legibles; si ya existen (base persistente) se reutilizan.

	seed := func(what string, err error) {
		if err != nil && !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Str("registro", what).Msg("alta de catálogo")
		}
	}

	seed("harina", ingredientRepo.Create(&entity.Ingredient{
		ID: "harina", Name: "Harina de maíz", Unit: "kg",
		PreferredVariantID: "harina-pan-1kg",
	}))
	seed("harina-pan-1kg", ingredientRepo.CreateVariant(&entity.IngredientVariant{
		ID: "harina-pan-1kg", IngredientID: "harina",
		Name: "Harina P.A.N. x 1 kg", SupplierName: "Distribuidora Central",
	}))
	seed("leche", ingredientRepo.Create(&entity.Ingredient{
		ID: "leche", Name: "Leche entera", Unit: "l",
		PreferredVariantID: "leche-bolsa-1l",
	}))
	seed("leche-bolsa-1l", ingredientRepo.CreateVariant(&entity.IngredientVariant{
		ID: "leche-bolsa-1l", IngredientID: "leche",
		Name: "Leche entera bolsa x 1 l", SupplierName: "Lácteos del Valle",
	}))

	seed("rec-arepas", recipeRepo.Create(&entity.Recipe{
		ID: "rec-arepas", Name: "Arepas de la casa", Yield: "10 porciones",
	}))
	seed("línea harina", recipeRepo.AddLine(&entity.RecipeLine{
		ID: "rec-arepas-harina", RecipeID: "rec-arepas",
		IngredientID: "harina", Quantity: decimal.RequireFromString("15000"), Unit: "g",
	}))
	seed("línea leche", recipeRepo.AddLine(&entity.RecipeLine{
		ID: "rec-arepas-leche", RecipeID: "rec-arepas",
		IngredientID: "leche", Quantity: decimal.RequireFromString("2000"), Unit: "ml",
	}))
	seed("rec-cafe", recipeRepo.Create(&entity.Recipe{
		ID: "rec-cafe", Name: "Café campesino", Yield: "1 taza",
	}))

	seed("combo-bebida", bundleRepo.Create(&entity.Bundle{ID: "combo-bebida", Name: "Bebida caliente"}))
	seed("arista café", bundleRepo.AddEdge(&entity.CompositionEdge{
		ID: "combo-bebida-cafe", BundleID: "combo-bebida",
		Kind: entity.EdgeTypeRECIPE, ChildRecipeID: "rec-cafe",
	}))
	seed("combo-desayuno", bundleRepo.Create(&entity.Bundle{ID: "combo-desayuno", Name: "Combo desayuno"}))
	seed("arista arepas", bundleRepo.AddEdge(&entity.CompositionEdge{
		ID: "combo-desayuno-arepas", BundleID: "combo-desayuno",
		Kind: entity.EdgeTypeRECIPE, ChildRecipeID: "rec-arepas",
	}))
	seed("arista bebida", bundleRepo.AddEdge(&entity.CompositionEdge{
		ID: "combo-desayuno-bebida", BundleID: "combo-desayuno",
		Kind: entity.EdgeTypeBUNDLE, ChildBundleID: "combo-bebida",
	}))
	seed("arista servilletas", bundleRepo.AddEdge(&entity.CompositionEdge{
		ID: "combo-desayuno-servilletas", BundleID: "combo-desayuno",
		Kind: entity.EdgeTypeMATERIAL,
	}))

	log.Info().Msg("catálogo listo: 2 insumos, 2 recetas, 2 paquetes")

	// ── 2. Recepción de compras ──────────────────────────────────────────────
	// Dos lotes de harina con costos distintos (el viejo más barato) y uno de
	// leche. Cada recepción crea el lote y la fila en el historial de compras.

	receive := func(input costing.ReceiveInput) *entity.Lot {
		lot, err := receiver.Receive(ctx, input)
		if err != nil {
			log.Fatal().Err(err).Str("insumo", input.IngredientID).Msg("recepción")
		}
		log.Info().
			Str("insumo", input.IngredientID).
			Str("cantidad", input.Quantity.String()).
			Str("costo_unitario", input.UnitCost.String()).
			Time("adquirido", lot.AcquiredAt).
			Msg("lote recibido")
		return lot
	}

	receive(costing.ReceiveInput{
		IngredientID: "harina", VariantID: "harina-pan-1kg",
		Quantity:   decimal.RequireFromString("10"),
		UnitCost:   decimal.RequireFromString("4.00"),
		AcquiredAt: time.Now().AddDate(0, 0, -30),
		Note:       "compra quincena pasada",
	})
	receive(costing.ReceiveInput{
		IngredientID: "harina", VariantID: "harina-pan-1kg",
		Quantity:   decimal.RequireFromString("10"),
		UnitCost:   decimal.RequireFromString("6.00"),
		AcquiredAt: time.Now().AddDate(0, 0, -10),
		Note:       "compra reciente, subió el precio",
	})
	receive(costing.ReceiveInput{
		IngredientID: "leche", VariantID: "leche-bolsa-1l",
		Quantity:   decimal.RequireFromString("5"),
		UnitCost:   decimal.RequireFromString("3.20"),
		AcquiredAt: time.Now().AddDate(0, 0, -3),
	})

	// ── 3. Simulación FIFO (no muta nada) ────────────────────────────────────

	sim, err := allocator.Simulate(ctx, "harina", decimal.RequireFromString("15"))
	if err != nil {
		log.Fatal().Err(err).Msg("simulación")
	}
	log.Info().
		Str("solicitado", sim.Requested.String()).
		Str("cubierto", sim.Consumed.String()).
		Str("costo_total", sim.TotalCost.String()).
		Int("lotes_tocados", len(sim.Lines)).
		Msg("simulación: 15 kg de harina salen del lote viejo primero")
	for _, line := range sim.Lines {
		log.Info().
			Str("lote", line.LotID).
			Str("cantidad", line.Quantity.String()).
			Str("costo_unitario", line.UnitCost.String()).
			Msg("  desglose")
	}

	// ── 4. Costeo de receta ──────────────────────────────────────────────────
	// Actual: despensa a costo FIFO. Estimado: precio de reposición (última
	// compra de la variante preferida). Las líneas vienen en g y ml; el motor
	// convierte a la unidad de control de cada insumo.

	actual, err := recipeCost.ActualCost(ctx, "rec-arepas")
	if err != nil {
		log.Fatal().Err(err).Msg("costo actual")
	}
	estimated, err := recipeCost.EstimatedCost(ctx, "rec-arepas")
	if err != nil {
		log.Fatal().Err(err).Msg("costo estimado")
	}
	log.Info().
		Str("actual", actual.String()).
		Str("estimado", estimated.String()).
		Msg("receta arepas: costo actual (FIFO) vs estimado (reposición)")

	// ── 5. Paquetes: descomposición y disponibilidad ─────────────────────────

	required, err := decomposer.RequiredRecipes(ctx, "combo-desayuno")
	if err != nil {
		log.Fatal().Err(err).Msg("descomposición")
	}
	log.Info().
		Strs("recetas", required.Sorted()).
		Msg("combo desayuno requiere (incluye el paquete anidado; el material no cuenta)")

	selected := entity.NewRecipeSet("rec-arepas")
	avail, err := availability.IsAvailable(ctx, "combo-desayuno", selected)
	if err != nil {
		log.Fatal().Err(err).Msg("disponibilidad")
	}
	log.Info().
		Bool("disponible", avail.Available).
		Strs("faltan", avail.MissingRecipeIDs).
		Msg("con solo arepas seleccionadas el combo no se puede vender")

	removed, err := availability.RemoveInvalidSelections(ctx, []string{"combo-desayuno", "combo-bebida"}, selected)
	if err != nil {
		log.Fatal().Err(err).Msg("cascada de invalidación")
	}
	for _, r := range removed {
		log.Info().
			Str("paquete", r.BundleName).
			Strs("recetas_faltantes", r.MissingRecipeNames).
			Msg("paquete expulsado de la selección")
	}

	// ── 6. Consumo real ──────────────────────────────────────────────────────
	// Mismo recorrido que la simulación, pero descuenta Remaining y deja el
	// registro de consumo, todo en una transacción.

	consumed, err := allocator.Consume(ctx, costing.ConsumeInput{
		IngredientID: "harina",
		Quantity:     decimal.RequireFromString("15"),
		Note:         "producción arepas del día",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("consumo")
	}
	log.Info().
		Str("cubierto", consumed.Consumed.String()).
		Str("costo_total", consumed.TotalCost.String()).
		Msg("consumo real registrado")

	if len(consumed.Lines) > 0 {
		rows, err := consumptionRepo.ListByAllocation(lastAllocationID(consumptionRepo, "harina"))
		if err != nil {
			log.Fatal().Err(err).Msg("registro de consumo")
		}
		for _, row := range rows {
			log.Info().
				Str("lote", row.LotID).
				Str("cantidad", row.Quantity.String()).
				Str("nota", row.Note).
				Msg("  registro")
		}
	}

	lots, err := lotRepo.ListByIngredient("harina")
	if err != nil {
		log.Fatal().Err(err).Msg("lotes tras consumo")
	}
	for _, lot := range lots {
		log.Info().
			Str("lote", lot.ID).
			Str("restante", lot.Remaining.String()).
			Bool("agotado", lot.Exhausted()).
			Msg("estado de lote (los agotados se conservan)")
	}

	// ── 7. Faltante como dato ────────────────────────────────────────────────
	// Queda poca harina: la simulación reporta el hueco en vez de fallar, y el
	// costo actual de la receta cubre el faltante a precio de reposición.

	short, err := allocator.Simulate(ctx, "harina", decimal.RequireFromString("15"))
	if err != nil {
		log.Fatal().Err(err).Msg("simulación con faltante")
	}
	log.Info().
		Bool("satisfecho", short.Satisfied).
		Str("faltante", short.Shortfall.String()).
		Msg("la despensa ya no alcanza: el faltante es dato, no error")

	actualAfter, err := recipeCost.ActualCost(ctx, "rec-arepas")
	if err != nil {
		log.Fatal().Err(err).Msg("costo actual tras consumo")
	}
	log.Info().
		Str("antes", actual.String()).
		Str("ahora", actualAfter.String()).
		Msg("la misma receta cuesta más: el faltante se valora a reposición")

	log.Info().Msg("recorrido completo")
}

// lastAllocationID saca el AllocationID del consumo más reciente del insumo:
// el resultado de Consume no lo expone, pero todas sus filas lo comparten.
func lastAllocationID(repo repository.ConsumptionRepository, ingredientID string) string {
	rows, err := repo.ListByIngredient(ingredientID, 1, 0)
	if err != nil || len(rows) == 0 {
		return ""
	}
	return rows[0].AllocationID
}
