package unitconv

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/invorya/costeo-engine/internal/application/costing"
	"github.com/invorya/costeo-engine/internal/domain"
	"github.com/invorya/costeo-engine/internal/domain/entity"
)

var _ costing.UnitConverter = (*MetricConverter)(nil)

// MetricConverter convierte cantidades entre unidades métricas de masa (mg, g,
// kg), de volumen (ml, l) y de conteo (un). El cruce masa<->volumen usa la
// densidad del insumo en g/ml; sin densidad no hay conversión y el costeo se
// aborta con ValidationError en vez de inventar un factor.
type MetricConverter struct{}

// NewMetricConverter construye el conversor.
func NewMetricConverter() *MetricConverter {
	return &MetricConverter{}
}

var massToGrams = map[string]decimal.Decimal{
	"mg": decimal.RequireFromString("0.001"),
	"g":  decimal.NewFromInt(1),
	"kg": decimal.NewFromInt(1000),
}

var volumeToMl = map[string]decimal.Decimal{
	"ml": decimal.NewFromInt(1),
	"l":  decimal.NewFromInt(1000),
}

var countUnits = map[string]bool{
	"un":  true,
	"und": true,
	"pza": true,
}

// Convert pasa qty de fromUnit a toUnit. Unidades iguales son identidad;
// unidades de conteo solo convierten entre sí 1:1.
func (c *MetricConverter) Convert(ingredient *entity.Ingredient, qty decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error) {
	from := normalize(fromUnit)
	to := normalize(toUnit)
	if from == to {
		return qty, nil
	}

	fromKind, err := kindOf(from)
	if err != nil {
		return decimal.Zero, err
	}
	toKind, err := kindOf(to)
	if err != nil {
		return decimal.Zero, err
	}

	switch {
	case fromKind == kindMass && toKind == kindMass:
		return qty.Mul(massToGrams[from]).Div(massToGrams[to]), nil
	case fromKind == kindVolume && toKind == kindVolume:
		return qty.Mul(volumeToMl[from]).Div(volumeToMl[to]), nil
	case fromKind == kindCount && toKind == kindCount:
		return qty, nil
	case fromKind == kindVolume && toKind == kindMass:
		density, err := densityOf(ingredient)
		if err != nil {
			return decimal.Zero, err
		}
		grams := qty.Mul(volumeToMl[from]).Mul(density)
		return grams.Div(massToGrams[to]), nil
	case fromKind == kindMass && toKind == kindVolume:
		density, err := densityOf(ingredient)
		if err != nil {
			return decimal.Zero, err
		}
		ml := qty.Mul(massToGrams[from]).Div(density)
		return ml.Div(volumeToMl[to]), nil
	default:
		return decimal.Zero, domain.NewValidationError(
			"insumo %s: no hay conversión de %s a %s", ingredient.Name, fromUnit, toUnit)
	}
}

type unitKind int

const (
	kindMass unitKind = iota
	kindVolume
	kindCount
)

func kindOf(unit string) (unitKind, error) {
	if _, ok := massToGrams[unit]; ok {
		return kindMass, nil
	}
	if _, ok := volumeToMl[unit]; ok {
		return kindVolume, nil
	}
	if countUnits[unit] {
		return kindCount, nil
	}
	return 0, domain.NewValidationError("unidad desconocida %q", unit)
}

func densityOf(ingredient *entity.Ingredient) (decimal.Decimal, error) {
	if ingredient.Density == nil || !ingredient.Density.IsPositive() {
		return decimal.Zero, domain.NewValidationError(
			"insumo %s: densidad no definida para convertir masa<->volumen", ingredient.Name)
	}
	return *ingredient.Density, nil
}

func normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
