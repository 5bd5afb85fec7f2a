package entity

// Tipos de arista de composición de un paquete.
const (
	EdgeTypeRECIPE   = "RECIPE"   // hijo atómico con receta de producción
	EdgeTypeBUNDLE   = "BUNDLE"   // paquete anidado
	EdgeTypeMATERIAL = "MATERIAL" // material sin receta (empaque, desechable)
)

// CompositionEdge representa una arista padre->hijo en la composición de un
// paquete. Según Kind aplica exactamente uno de los campos Child*: RECIPE usa
// ChildRecipeID, BUNDLE usa ChildBundleID y MATERIAL no referencia ninguno.
type CompositionEdge struct {
	ID            string
	BundleID      string
	Kind          string
	ChildRecipeID string
	ChildBundleID string
	Seq           int64
}
