package entity

import "sort"

// RecipeSet es un conjunto de IDs de receta. La descomposición de paquetes lo
// produce y el filtro de disponibilidad lo compara; el orden no es parte del
// valor, Sorted existe para salidas deterministas.
type RecipeSet map[string]struct{}

// NewRecipeSet construye el conjunto con los IDs dados.
func NewRecipeSet(ids ...string) RecipeSet {
	s := make(RecipeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add agrega un ID (idempotente).
func (s RecipeSet) Add(id string) {
	s[id] = struct{}{}
}

// Has indica si el ID pertenece al conjunto.
func (s RecipeSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len devuelve la cardinalidad.
func (s RecipeSet) Len() int {
	return len(s)
}

// Sorted devuelve los IDs ordenados lexicográficamente.
func (s RecipeSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Missing devuelve, ordenados, los IDs del conjunto que no están en other.
func (s RecipeSet) Missing(other RecipeSet) []string {
	missing := make([]string, 0)
	for id := range s {
		if !other.Has(id) {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}
