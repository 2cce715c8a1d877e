// seed_currencies genera el script SQL para poblar la tabla de monedas ISO 4217
// (código, nombre y unidades menores) a partir del XML oficial list_one.xml.
//
// Uso: go run ./cmd/seed_currencies [ruta/list_one.xml]
// Por defecto busca list_one.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_currencies.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type iso4217 struct {
	Published string `xml:"Pblshd,attr"`
	Table     struct {
		Entries []entry `xml:"CcyNtry"`
	} `xml:"CcyTbl"`
}

type entry struct {
	Country    string `xml:"CtryNm"`
	Name       string `xml:"CcyNm"`
	Code       string `xml:"Ccy"`
	MinorUnits string `xml:"CcyMnrUnts"`
}

func main() {
	xmlPath := "list_one.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var doc iso4217
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&doc); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Monedas únicas: el XML repite cada moneda por país. Unidades menores
	// "N.A." (metales, fondos) se omiten: no son monedas facturables.
	type currency struct {
		name       string
		minorUnits int
	}
	byCode := make(map[string]currency)
	for _, e := range doc.Table.Entries {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			continue
		}
		units, err := strconv.Atoi(strings.TrimSpace(e.MinorUnits))
		if err != nil {
			continue
		}
		byCode[code] = currency{name: strings.TrimSpace(e.Name), minorUnits: units}
	}

	var codes []string
	for c := range byCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_currencies.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Monedas ISO 4217 con unidades menores\n")
	fmt.Fprintf(out, "-- Generado desde list_one.xml (publicado %s)\n\n", doc.Published)

	out.WriteString("INSERT INTO currencies (code, name, minor_units) VALUES\n")
	for i, c := range codes {
		cur := byCode[c]
		sep := ","
		if i == len(codes)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', %d)%s\n", c, escapeSQL(cur.name), cur.minorUnits, sep)
	}
	out.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, minor_units = EXCLUDED.minor_units;\n")

	fmt.Printf("Generado %s: %d monedas\n", outPath, len(codes))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
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
