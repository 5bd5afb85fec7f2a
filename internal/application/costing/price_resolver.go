package costing

import (
	"context"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

// PriceResolverService resuelve el precio de reposición de un insumo: la
// compra más reciente de la variante preferida o, si esa no tiene historial,
// la más reciente entre todas las variantes del insumo. "Más reciente" = Date
// desc y, a igual fecha, Seq desc (la última registrada gana).
type PriceResolverService struct {
	ingredientRepo repository.IngredientRepository
	purchaseRepo   repository.PurchaseRepository
}

// NewPriceResolverService construye el servicio.
func NewPriceResolverService(
	ingredientRepo repository.IngredientRepository,
	purchaseRepo repository.PurchaseRepository,
) *PriceResolverService {
	return &PriceResolverService{
		ingredientRepo: ingredientRepo,
		purchaseRepo:   purchaseRepo,
	}
}

// Resolve devuelve la cotización con la variante de la que salió el precio, o
// nil, nil si el insumo no tiene compra alguna. Que no haya precio no es un
// error aquí: el caller decide si es fatal (p.ej. costeo con faltante).
func (s *PriceResolverService) Resolve(ctx context.Context, ingredientID, preferredVariantID string) (*entity.PriceQuote, error) {
	if preferredVariantID != "" {
		latest, err := s.purchaseRepo.LatestByVariant(preferredVariantID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			return quoteFrom(ingredientID, latest), nil
		}
	}

	variants, err := s.ingredientRepo.ListVariants(ingredientID)
	if err != nil {
		return nil, err
	}
	var best *entity.Purchase
	for _, v := range variants {
		latest, err := s.purchaseRepo.LatestByVariant(v.ID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			continue
		}
		if best == nil || moreRecent(latest, best) {
			best = latest
		}
	}
	if best == nil {
		return nil, nil
	}
	return quoteFrom(ingredientID, best), nil
}

func quoteFrom(ingredientID string, p *entity.Purchase) *entity.PriceQuote {
	return &entity.PriceQuote{
		IngredientID: ingredientID,
		VariantID:    p.VariantID,
		UnitPrice:    p.UnitPrice,
		Date:         p.Date,
	}
}

// moreRecent compara compras: fecha posterior o, a igual fecha, mayor Seq.
func moreRecent(a, b *entity.Purchase) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.Seq > b.Seq
}
