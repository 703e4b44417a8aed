package features

import (
	"errors"
	"fmt"
	"strings"

	"depression-api/internal/domain"
)

// Vector es la representacion numerica de un InputRecord en domain.FeatureOrder.
type Vector []float64

// EncodingError indica una categoria fuera del dominio de su encoder.
type EncodingError struct {
	Column  domain.Column
	Value   string
	Message string
	Err     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("Encoding error for column '%s': %s", e.Column.Header(), e.Message)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Encode arma el vector en orden fijo y aplica el encoder de cada columna categorica.
// No modifica el registro ni los encoders.
func Encode(record domain.InputRecord, encoders *EncoderTable) (Vector, error) {
	vector := make(Vector, domain.NumFeatures)
	for i, col := range domain.FeatureOrder {
		if col.IsNumeric() {
			n, _ := record.Number(col)
			vector[i] = float64(n)
			continue
		}

		value, _ := record.Category(col)
		enc, ok := encoders.Lookup(col)
		if !ok {
			return nil, fmt.Errorf("%w for column %q", ErrMissingEncoder, col.Header())
		}
		code, err := enc.Encode(value)
		if err != nil {
			return nil, &EncodingError{
				Column:  col,
				Value:   value,
				Message: encoderMessage(err),
				Err:     err,
			}
		}
		vector[i] = float64(code)
	}
	return vector, nil
}

// encoderMessage quita el prefijo del sentinel para exponer solo el mensaje del encoder.
func encoderMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, ErrUnseenLabel) {
		msg = strings.TrimPrefix(msg, ErrUnseenLabel.Error()+": ")
	}
	return msg
}
