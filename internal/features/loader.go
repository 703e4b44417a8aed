package features

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"depression-api/internal/domain"
)

// LoadEncoderTable lee el artefacto de encoders: un objeto JSON que mapea el nombre
// de columna del dataset a la lista ordenada de clases (classes_ del LabelEncoder).
// Devuelve ademas las claves que no corresponden a ninguna columna del modelo.
func LoadEncoderTable(path string) (*EncoderTable, []string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read encoders %s: %w", path, err)
	}
	return ParseEncoderTable(payload)
}

// ParseEncoderTable decodifica el artefacto ya leido.
func ParseEncoderTable(payload []byte) (*EncoderTable, []string, error) {
	var raw map[string][]string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode encoders: %w", err)
	}

	encoders := make(map[domain.Column]Encoder, len(raw))
	var ignored []string
	for header, classes := range raw {
		col, ok := domain.ColumnByHeader(header)
		if !ok {
			ignored = append(ignored, header)
			continue
		}
		enc, err := NewLabelEncoder(classes)
		if err != nil {
			return nil, nil, fmt.Errorf("encoder %q: %w", header, err)
		}
		encoders[col] = enc
	}
	sort.Strings(ignored)

	table, err := NewEncoderTable(encoders)
	if err != nil {
		return nil, nil, err
	}
	return table, ignored, nil
}
