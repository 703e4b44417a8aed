package features

import (
	"errors"
	"fmt"

	"depression-api/internal/domain"
)

// Encoder traduce una categoria a su codigo entero y falla con categorias desconocidas.
type Encoder interface {
	Encode(value string) (int, error)
	Classes() []string
}

var (
	ErrUnseenLabel    = errors.New("unseen label")
	ErrMissingEncoder = errors.New("missing encoder")
)

// LabelEncoder es un encoder ajustado: el codigo de una clase es su posicion en classes.
type LabelEncoder struct {
	classes []string
	codes   map[string]int
}

// NewLabelEncoder valida y congela la lista de clases.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder has no classes")
	}
	codes := make(map[string]int, len(classes))
	for i, class := range classes {
		if _, dup := codes[class]; dup {
			return nil, fmt.Errorf("duplicate class %q", class)
		}
		codes[class] = i
	}
	return &LabelEncoder{
		classes: append([]string(nil), classes...),
		codes:   codes,
	}, nil
}

func (e *LabelEncoder) Encode(value string) (int, error) {
	code, ok := e.codes[value]
	if !ok {
		return 0, fmt.Errorf("%w: y contains previously unseen labels: ['%s']", ErrUnseenLabel, value)
	}
	return code, nil
}

func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// EncoderTable asocia cada columna categorica a su encoder. Es de solo lectura.
type EncoderTable struct {
	encoders map[domain.Column]Encoder
}

// NewEncoderTable copia el mapa recibido; las columnas numericas no aceptan encoder.
func NewEncoderTable(encoders map[domain.Column]Encoder) (*EncoderTable, error) {
	table := &EncoderTable{encoders: make(map[domain.Column]Encoder, len(encoders))}
	for col, enc := range encoders {
		if col.IsNumeric() {
			return nil, fmt.Errorf("column %q is numeric and cannot be encoded", col.Header())
		}
		if enc == nil {
			return nil, fmt.Errorf("column %q has a nil encoder", col.Header())
		}
		table.encoders[col] = enc
	}
	return table, nil
}

// Lookup devuelve el encoder de la columna, si existe.
func (t *EncoderTable) Lookup(col domain.Column) (Encoder, bool) {
	if t == nil {
		return nil, false
	}
	enc, ok := t.encoders[col]
	return enc, ok
}

// Columns lista las columnas con encoder en FeatureOrder.
func (t *EncoderTable) Columns() []domain.Column {
	out := make([]domain.Column, 0, len(t.encoders))
	for _, col := range domain.FeatureOrder {
		if _, ok := t.encoders[col]; ok {
			out = append(out, col)
		}
	}
	return out
}

// Missing devuelve las columnas categoricas sin encoder.
func (t *EncoderTable) Missing() []domain.Column {
	var out []domain.Column
	for _, col := range domain.CategoricalColumns() {
		if _, ok := t.Lookup(col); !ok {
			out = append(out, col)
		}
	}
	return out
}
