package entity

// AvailabilityResult indica si un paquete puede venderse con el conjunto de
// recetas actualmente seleccionado. Required y Missing van ordenados.
type AvailabilityResult struct {
	BundleID          string
	Available         bool
	RequiredRecipeIDs []string
	MissingRecipeIDs  []string
}

// RemovedBundle describe un paquete expulsado de la selección por la cascada
// de invalidación, con nombres para el mensaje al usuario.
type RemovedBundle struct {
	BundleID           string
	BundleName         string
	MissingRecipeIDs   []string
	MissingRecipeNames []string
}
