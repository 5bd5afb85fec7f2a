package repository

import "github.com/invorya/costeo-engine/internal/domain/entity"

// BundleRepository define el puerto de persistencia para paquetes y su
// composición (DIP). GetByID devuelve nil, nil si no existe; GetEdges de un
// paquete existente sin aristas devuelve slice vacío.
type BundleRepository interface {
	Create(bundle *entity.Bundle) error
	AddEdge(edge *entity.CompositionEdge) error
	GetByID(id string) (*entity.Bundle, error)
	GetEdges(bundleID string) ([]*entity.CompositionEdge, error)
}
