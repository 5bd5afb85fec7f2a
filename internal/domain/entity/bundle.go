package entity

import "time"

// Bundle representa un paquete vendible (combo): composición de productos
// atómicos con receta, otros paquetes anidados y materiales sin receta.
type Bundle struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
