package domain

import "time"

// Label es la etiqueta legible que devuelve /predict.
type Label string

const (
	LabelNoDepression Label = "NO DEPRESSION"
	LabelDepression   Label = "DEPRESSION"
)

// LabelForClass traduce el indice de clase del clasificador.
func LabelForClass(class int) (Label, bool) {
	switch class {
	case 0:
		return LabelNoDepression, true
	case 1:
		return LabelDepression, true
	default:
		return "", false
	}
}

// PredictionRecord es la fila de auditoria de una prediccion servida.
type PredictionRecord struct {
	ID        string      `json:"id"`
	Input     InputRecord `json:"input"`
	Class     int         `json:"class"`
	Label     Label       `json:"label"`
	CreatedAt time.Time   `json:"created_at"`
}
