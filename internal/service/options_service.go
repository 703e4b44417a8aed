package service

import (
	"fmt"

	"depression-api/internal/dataset"
	"depression-api/internal/domain"
)

// OptionField asocia una clave JSON de /options con su columna del dataset.
type OptionField struct {
	Key    string
	Column domain.Column
}

// OptionFields fija las nueve listas de /options y su orden.
var OptionFields = []OptionField{
	{Key: "Gender", Column: domain.ColumnGender},
	{Key: "City", Column: domain.ColumnCity},
	{Key: "Working_Professional_or_Student", Column: domain.ColumnWorkingProfessionalOrStudent},
	{Key: "Profession", Column: domain.ColumnProfession},
	{Key: "Sleep_Duration", Column: domain.ColumnSleepDuration},
	{Key: "Dietary_Habits", Column: domain.ColumnDietaryHabits},
	{Key: "Degree", Column: domain.ColumnDegree},
	{Key: "Have_Suicidal_Thoughts", Column: domain.ColumnHaveSuicidalThoughts},
	{Key: "Family_History", Column: domain.ColumnFamilyHistory},
}

// OptionHeaders devuelve las cabeceras que /options necesita del dataset.
func OptionHeaders() []string {
	out := make([]string, len(OptionFields))
	for i, f := range OptionFields {
		out[i] = f.Column.Header()
	}
	return out
}

// Options son los valores distintos por campo categorico.
type Options map[string][]string

// ListOptions calcula los valores distintos de cada columna en orden de primera aparicion.
func ListOptions(table *dataset.ReferenceTable) (Options, error) {
	if table == nil {
		return nil, fmt.Errorf("reference table is nil")
	}
	out := make(Options, len(OptionFields))
	for _, f := range OptionFields {
		values, err := table.Distinct(f.Column.Header())
		if err != nil {
			return nil, fmt.Errorf("options %s: %w", f.Key, err)
		}
		out[f.Key] = values
	}
	return out, nil
}

// OptionsService sirve las opciones precalculadas al arrancar.
type OptionsService struct {
	options Options
}

func NewOptionsService(table *dataset.ReferenceTable) (*OptionsService, error) {
	options, err := ListOptions(table)
	if err != nil {
		return nil, err
	}
	return &OptionsService{options: options}, nil
}

// Options devuelve una copia para que el llamador no altere el estado compartido.
func (s *OptionsService) Options() Options {
	out := make(Options, len(s.options))
	for k, v := range s.options {
		out[k] = append([]string(nil), v...)
	}
	return out
}
