// seed_catalog genera un script SQL idempotente con el catálogo de tipos de semilla
// a partir de la planilla heredada (CSV separado por ';', codificación ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [-in tipos_semilla.csv] [-out archivo.sql]
// Columnas: nombre;dias_maximos_almacenamiento. La primera fila es el encabezado.
// Sin -out escribe en stdout.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// namespace fijo: el mismo nombre produce siempre el mismo id.
var seedTypeNamespace = uuid.MustParse("6f1c2a8e-4b1d-4c3e-9a57-0d7e5b9c1f20")

type seedType struct {
	id      uuid.UUID
	name    string
	maxDays int
}

func main() {
	in := flag.String("in", "tipos_semilla.csv", "planilla CSV (ISO-8859-1)")
	outPath := flag.String("out", "", "archivo SQL de salida (por defecto stdout)")
	flag.Parse()

	f, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	types, err := parseCatalog(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := writeSQL(out, types); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generados %d tipos de semilla\n", len(types))
}

// parseCatalog lee la planilla ya decodificada a UTF-8. Nombres repetidos: gana la última fila.
func parseCatalog(r io.Reader) ([]seedType, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	byName := make(map[string]seedType)
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 {
			continue
		}
		if len(rec) < 1 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		name := strings.Join(strings.Fields(rec[0]), " ")
		days := 0
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			days, err = strconv.Atoi(strings.TrimSpace(rec[1]))
			if err != nil || days < 0 {
				return nil, fmt.Errorf("línea %d: días inválidos %q", line, rec[1])
			}
		}
		byName[strings.ToLower(name)] = seedType{
			id:      uuid.NewSHA1(seedTypeNamespace, []byte(strings.ToLower(name))),
			name:    name,
			maxDays: days,
		}
	}

	out := make([]seedType, 0, len(byName))
	for _, st := range byName {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}

func writeSQL(w io.Writer, types []seedType) error {
	if len(types) == 0 {
		_, err := io.WriteString(w, "-- catálogo vacío\n")
		return err
	}
	var b strings.Builder
	b.WriteString("-- Tipos de semilla\n")
	b.WriteString("INSERT INTO seed_types (id, name, max_storage_days) VALUES\n")
	for i, st := range types {
		sep := ","
		if i == len(types)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %d)%s\n", st.id, escapeSQL(st.name), st.maxDays, sep)
	}
	b.WriteString("ON CONFLICT (name) DO UPDATE SET max_storage_days = EXCLUDED.max_storage_days;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
