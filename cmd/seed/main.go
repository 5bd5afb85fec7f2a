// seed genera un script SQL para poblar el catálogo de insumos y variantes a
// partir de la planilla exportada del punto de venta (CSV separado por punto
// y coma, codificado en ISO-8859-1, decimales con coma).
//
// Columnas: id;nombre;unidad;densidad;variante_id;variante_nombre;proveedor;preferida
// densidad y las columnas de variante pueden ir vacías; preferida = "si" marca
// la variante de referencia para el precio de reposición.
//
// Uso: go run ./cmd/seed [ruta/insumos.csv]
// Por defecto busca insumos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type ingredientRow struct {
	id        string
	name      string
	unit      string
	density   string // vacío = NULL
	preferred string // vacío = NULL
}

type variantRow struct {
	id           string
	ingredientID string
	name         string
	supplier     string
}

func main() {
	csvPath := "insumos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// La planilla llega en ISO-8859-1 (tildes y eñes del catálogo).
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ingredients := make(map[string]*ingredientRow)
	variants := make(map[string]*variantRow)
	for n, rec := range records {
		if n == 0 && strings.EqualFold(field(rec, 0), "id") {
			continue // encabezado
		}
		if len(rec) < 3 || field(rec, 0) == "" {
			continue
		}
		id := field(rec, 0)
		density := field(rec, 3)
		if density != "" {
			// Decimales con coma en la planilla; validar que sea un número.
			density = strings.ReplaceAll(density, ",", ".")
			if _, err := decimal.NewFromString(density); err != nil {
				fmt.Fprintf(os.Stderr, "Fila %d: densidad inválida %q\n", n+1, field(rec, 3))
				os.Exit(1)
			}
		}
		ing, ok := ingredients[id]
		if !ok {
			ing = &ingredientRow{id: id}
			ingredients[id] = ing
		}
		ing.name = field(rec, 1)
		ing.unit = field(rec, 2)
		ing.density = density

		variantID := field(rec, 4)
		if variantID == "" {
			continue
		}
		variants[variantID] = &variantRow{
			id:           variantID,
			ingredientID: id,
			name:         field(rec, 5),
			supplier:     field(rec, 6),
		}
		preferred := strings.ToLower(field(rec, 7))
		if preferred == "si" || preferred == "sí" {
			ing.preferred = variantID
		}
	}
	if len(ingredients) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no trae filas de insumos")
		os.Exit(1)
	}

	// Salida estable: ordenado por ID
	ingIDs := make([]string, 0, len(ingredients))
	for id := range ingredients {
		ingIDs = append(ingIDs, id)
	}
	sort.Strings(ingIDs)
	varIDs := make([]string, 0, len(variants))
	for id := range variants {
		varIDs = append(varIDs, id)
	}
	sort.Strings(varIDs)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo de insumos y variantes de compra\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + " (planilla del punto de venta)\n\n")

	out.WriteString("-- 1. Insumos\n")
	out.WriteString("INSERT INTO ingredients (id, name, unit, density, preferred_variant_id) VALUES\n")
	for i, id := range ingIDs {
		ing := ingredients[id]
		sep := ","
		if i == len(ingIDs)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', %s, %s)%s\n",
			escapeSQL(ing.id), escapeSQL(ing.name), escapeSQL(ing.unit),
			nullableNumber(ing.density), nullableString(ing.preferred), sep)
	}
	out.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, unit = EXCLUDED.unit, density = EXCLUDED.density, preferred_variant_id = EXCLUDED.preferred_variant_id;\n\n")

	out.WriteString("-- 2. Variantes de compra\n")
	for _, id := range varIDs {
		v := variants[id]
		fmt.Fprintf(out, "INSERT INTO ingredient_variants (id, ingredient_id, name, supplier_name)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s')\n",
			escapeSQL(v.id), escapeSQL(v.ingredientID), escapeSQL(v.name), escapeSQL(v.supplier))
		out.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, supplier_name = EXCLUDED.supplier_name;\n")
	}

	fmt.Printf("Generado %s: %d insumos, %d variantes\n", outPath, len(ingIDs), len(varIDs))
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func nullableString(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func nullableNumber(s string) string {
	if s == "" {
		return "NULL"
	}
	return s
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
