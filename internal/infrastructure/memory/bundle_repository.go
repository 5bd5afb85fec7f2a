package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/invorya/costeo-engine/internal/domain/entity"
	"github.com/invorya/costeo-engine/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo implementación en memoria de paquetes y su composición.
type BundleRepo struct {
	bundles map[string]entity.Bundle
	edges   []entity.CompositionEdge
	nextSeq int64
}

// NewBundleRepository construye el repositorio vacío.
func NewBundleRepository() *BundleRepo {
	return &BundleRepo{bundles: make(map[string]entity.Bundle), edges: []entity.CompositionEdge{}, nextSeq: 1}
}

// Create guarda un paquete; asigna ID si viene vacío.
func (r *BundleRepo) Create(bundle *entity.Bundle) error {
	if bundle.ID == "" {
		bundle.ID = uuid.New().String()
	}
	r.bundles[bundle.ID] = *bundle
	return nil
}

// AddEdge agrega una arista de composición; asigna ID y Seq.
func (r *BundleRepo) AddEdge(edge *entity.CompositionEdge) error {
	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}
	edge.Seq = r.nextSeq
	r.nextSeq++
	r.edges = append(r.edges, *edge)
	return nil
}

// GetByID devuelve el paquete o nil, nil si no existe.
func (r *BundleRepo) GetByID(id string) (*entity.Bundle, error) {
	b, ok := r.bundles[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// GetEdges devuelve las aristas del paquete en orden de inserción. Paquete sin
// aristas devuelve slice vacío.
func (r *BundleRepo) GetEdges(bundleID string) ([]*entity.CompositionEdge, error) {
	out := make([]*entity.CompositionEdge, 0)
	for i := range r.edges {
		if r.edges[i].BundleID != bundleID {
			continue
		}
		ec := r.edges[i]
		out = append(out, &ec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}
