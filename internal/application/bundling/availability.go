package bundling

import (
	"context"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

// AvailabilityUseCase decide qué paquetes pueden venderse con el conjunto de
// recetas actualmente seleccionado, y ejecuta la cascada de invalidación
// cuando la selección cambia. No persiste la selección: eso es del caller.
type AvailabilityUseCase struct {
	decomposer *BundleDecomposer
	bundleRepo repository.BundleRepository
	recipeRepo repository.RecipeRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(
	decomposer *BundleDecomposer,
	bundleRepo repository.BundleRepository,
	recipeRepo repository.RecipeRepository,
) *AvailabilityUseCase {
	return &AvailabilityUseCase{
		decomposer: decomposer,
		bundleRepo: bundleRepo,
		recipeRepo: recipeRepo,
	}
}

// IsAvailable indica si el paquete puede venderse: todas sus recetas
// requeridas deben estar en selected. Un paquete sin recetas requeridas (solo
// materiales) siempre está disponible. Errores de descomposición (ciclo,
// profundidad, paquete inexistente) se propagan tal cual.
func (uc *AvailabilityUseCase) IsAvailable(ctx context.Context, bundleID string, selected entity.RecipeSet) (*entity.AvailabilityResult, error) {
	required, err := uc.decomposer.RequiredRecipes(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	missing := required.Missing(selected)
	return &entity.AvailabilityResult{
		BundleID:          bundleID,
		Available:         len(missing) == 0,
		RequiredRecipeIDs: required.Sorted(),
		MissingRecipeIDs:  missing,
	}, nil
}

// FilterAvailable clasifica una lista de paquetes (p.ej. la carta completa)
// contra la selección, en el orden de entrada.
func (uc *AvailabilityUseCase) FilterAvailable(ctx context.Context, bundleIDs []string, selected entity.RecipeSet) ([]*entity.AvailabilityResult, error) {
	results := make([]*entity.AvailabilityResult, 0, len(bundleIDs))
	for _, bundleID := range bundleIDs {
		res, err := uc.IsAvailable(ctx, bundleID, selected)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RemoveInvalidSelections recalcula la disponibilidad de cada paquete
// seleccionado contra el nuevo conjunto de recetas y devuelve, en orden de
// entrada, los que quedaron inválidos con nombres para notificar al usuario.
// El caller es quien los expulsa de su selección.
func (uc *AvailabilityUseCase) RemoveInvalidSelections(ctx context.Context, selectedBundleIDs []string, selected entity.RecipeSet) ([]*entity.RemovedBundle, error) {
	removed := make([]*entity.RemovedBundle, 0)
	for _, bundleID := range selectedBundleIDs {
		res, err := uc.IsAvailable(ctx, bundleID, selected)
		if err != nil {
			return nil, err
		}
		if res.Available {
			continue
		}
		info, err := uc.removalInfo(bundleID, res.MissingRecipeIDs)
		if err != nil {
			return nil, err
		}
		removed = append(removed, info)
	}
	return removed, nil
}

// removalInfo arma el detalle del paquete expulsado. Si una receta faltante ya
// no existe en catálogo, su ID hace de nombre: la notificación no debe caerse
// por un catálogo a medio editar.
func (uc *AvailabilityUseCase) removalInfo(bundleID string, missingIDs []string) (*entity.RemovedBundle, error) {
	bundle, err := uc.bundleRepo.GetByID(bundleID)
	if err != nil {
		return nil, err
	}
	name := bundleID
	if bundle != nil {
		name = bundle.Name
	}

	names := make([]string, 0, len(missingIDs))
	for _, id := range missingIDs {
		recipe, err := uc.recipeRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if recipe != nil {
			names = append(names, recipe.Name)
		} else {
			names = append(names, id)
		}
	}
	return &entity.RemovedBundle{
		BundleID:           bundleID,
		BundleName:         name,
		MissingRecipeIDs:   missingIDs,
		MissingRecipeNames: names,
	}, nil
}
