package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrColumnNotFound = errors.New("column not found")

// missingMarkers son los valores que se leen como celda vacia. Es la lista por defecto
// de na_values de pandas y la comparacion es exacta.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// Series es una columna del dataset. Missing[i] marca las celdas sin valor.
type Series struct {
	Name    string
	Values  []string
	Missing []bool
}

// MissingCount devuelve la cantidad de celdas vacias.
func (s *Series) MissingCount() int {
	n := 0
	for _, m := range s.Missing {
		if m {
			n++
		}
	}
	return n
}

// Present devuelve los valores no vacios en orden de aparicion.
func (s *Series) Present() []string {
	out := make([]string, 0, len(s.Values))
	for i, v := range s.Values {
		if !s.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Fill reemplaza todas las celdas vacias por value.
func (s *Series) Fill(value string) int {
	filled := 0
	for i := range s.Values {
		if s.Missing[i] {
			s.Values[i] = value
			s.Missing[i] = false
			filled++
		}
	}
	return filled
}

// ReferenceTable es el dataset de referencia en memoria, por columnas.
type ReferenceTable struct {
	series map[string]*Series
	rows   int
}

// Load abre y parsea el CSV de referencia.
func Load(path string) (*ReferenceTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return table, nil
}

// Read parsea un CSV con fila de cabecera.
func Read(r io.Reader) (*ReferenceTable, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty")
		}
		return nil, err
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	table := &ReferenceTable{
		series: make(map[string]*Series, len(headers)),
	}
	for _, h := range headers {
		if _, dup := table.series[h]; dup {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		table.series[h] = &Series{Name: h}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, val := range record {
			s := table.series[headers[i]]
			_, missing := missingMarkers[val]
			s.Values = append(s.Values, val)
			s.Missing = append(s.Missing, missing)
		}
		table.rows++
	}
	return table, nil
}

// Column devuelve la serie con ese nombre de cabecera.
func (t *ReferenceTable) Column(name string) (*Series, error) {
	s, ok := t.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return s, nil
}

// Require verifica que todas las columnas existan.
func (t *ReferenceTable) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.series[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(missing, ", "))
	}
	return nil
}

// Distinct devuelve los valores distintos de la columna en orden de primera aparicion,
// sin celdas vacias.
func (t *ReferenceTable) Distinct(name string) ([]string, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i, v := range s.Values {
		if s.Missing[i] {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Rows devuelve la cantidad de filas de datos, sin la cabecera.
func (t *ReferenceTable) Rows() int {
	return t.rows
}
