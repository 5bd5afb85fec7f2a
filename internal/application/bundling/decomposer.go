package bundling

import (
	"context"
	"fmt"

	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

// DefaultMaxDepth es el límite de anidamiento de paquetes cuando la
// configuración no define otro.
const DefaultMaxDepth = 10

// BundleDecomposer expande recursivamente la composición de un paquete hasta
// el conjunto de recetas atómicas requeridas. Las aristas RECIPE aportan su
// receta, las BUNDLE se expanden y las MATERIAL se omiten. Un paquete ya
// visitado en cualquier punto del recorrido es referencia circular; el
// anidamiento más profundo que maxDepth corta antes de agotar la pila.
type BundleDecomposer struct {
	bundleRepo repository.BundleRepository
	maxDepth   int
}

// NewBundleDecomposer construye el descomponedor; maxDepth <= 0 usa
// DefaultMaxDepth.
func NewBundleDecomposer(bundleRepo repository.BundleRepository, maxDepth int) *BundleDecomposer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &BundleDecomposer{bundleRepo: bundleRepo, maxDepth: maxDepth}
}

// MaxDepth devuelve el límite vigente de anidamiento.
func (d *BundleDecomposer) MaxDepth() int {
	return d.maxDepth
}

// RequiredRecipes devuelve el conjunto de IDs de receta que exige la
// composición del paquete, sin duplicados y sin orden. Dos hijos atómicos con
// la misma receta colapsan en una sola entrada del conjunto.
func (d *BundleDecomposer) RequiredRecipes(ctx context.Context, bundleID string) (entity.RecipeSet, error) {
	required := entity.NewRecipeSet()
	visited := make(map[string]bool)
	if err := d.expand(bundleID, visited, nil, 1, required); err != nil {
		return nil, err
	}
	return required, nil
}

// expand recorre una rama de la composición. visited y required son únicos
// para todo el árbol de llamadas (jamás se duplican por rama, de eso depende
// la detección de ciclos); path y depth sí son por rama, para el diagnóstico.
func (d *BundleDecomposer) expand(bundleID string, visited map[string]bool, path []string, depth int, required entity.RecipeSet) error {
	if depth > d.maxDepth {
		return &domain.MaxDepthExceededError{BundleID: bundleID, Depth: depth, Max: d.maxDepth}
	}
	if visited[bundleID] {
		fullPath := append(append([]string{}, path...), bundleID)
		return &domain.CircularReferenceError{BundleID: bundleID, Path: fullPath}
	}

	bundle, err := d.bundleRepo.GetByID(bundleID)
	if err != nil {
		return err
	}
	if bundle == nil {
		return fmt.Errorf("%w: %s", domain.ErrBundleNotFound, bundleID)
	}
	visited[bundleID] = true
	path = append(path, bundleID)

	edges, err := d.bundleRepo.GetEdges(bundleID)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		switch edge.Kind {
		case entity.EdgeTypeRECIPE:
			required.Add(edge.ChildRecipeID)
		case entity.EdgeTypeBUNDLE:
			if err := d.expand(edge.ChildBundleID, visited, path, depth+1, required); err != nil {
				return err
			}
		case entity.EdgeTypeMATERIAL:
			// sin receta: no aporta al conjunto
		}
	}
	return nil
}
