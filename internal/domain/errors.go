package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Los tipos con carga útil de
// más abajo envuelven a su centinela, así funcionan errors.Is y errors.As.
var (
	ErrIngredientNotFound = errors.New("insumo no encontrado")
	ErrVariantNotFound    = errors.New("variante no encontrada")
	ErrRecipeNotFound     = errors.New("receta no encontrada")
	ErrBundleNotFound     = errors.New("paquete no encontrado")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrDuplicate          = errors.New("el registro ya existe")
	ErrValidation         = errors.New("validación fallida")
	ErrCircularReference  = errors.New("referencia circular en la composición")
	ErrMaxDepthExceeded   = errors.New("profundidad máxima de composición excedida")
)

// ValidationError señala datos que impiden costear (precio de reposición
// ausente, densidad faltante, línea negativa). El costeo nunca devuelve un
// total parcial: ante esto se aborta.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError construye un ValidationError con formato estilo Sprintf.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// CircularReferenceError señala un ciclo en la composición de paquetes.
// Path es la ruta de visita en orden, terminando en el paquete repetido.
type CircularReferenceError struct {
	BundleID string
	Path     []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("%s: paquete %s (ruta: %s)",
		ErrCircularReference.Error(), e.BundleID, strings.Join(e.Path, " -> "))
}

func (e *CircularReferenceError) Unwrap() error { return ErrCircularReference }

// MaxDepthExceededError señala anidamiento de paquetes más profundo que el
// límite configurado; distingue composiciones enormes de ciclos reales.
type MaxDepthExceededError struct {
	BundleID string
	Depth    int
	Max      int
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("%s: paquete %s a profundidad %d (límite %d)",
		ErrMaxDepthExceeded.Error(), e.BundleID, e.Depth, e.Max)
}

func (e *MaxDepthExceededError) Unwrap() error { return ErrMaxDepthExceeded }
