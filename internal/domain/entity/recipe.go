package entity

import "time"

// Recipe representa una receta de producción de un producto atómico.
// Las líneas viven en RecipeLine; aquí solo la cabecera.
type Recipe struct {
	ID        string
	Name      string
	Yield     string // porción/rendimiento descriptivo, p.ej. "1 porción"
	CreatedAt time.Time
	UpdatedAt time.Time
}
