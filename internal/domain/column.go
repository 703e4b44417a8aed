package domain

// Column identifica una columna del modelo. El conjunto es cerrado.
type Column int

const (
	ColumnGender Column = iota
	ColumnAge
	ColumnCity
	ColumnWorkingProfessionalOrStudent
	ColumnProfession
	ColumnWorkPressure
	ColumnJobSatisfaction
	ColumnSleepDuration
	ColumnDietaryHabits
	ColumnDegree
	ColumnHaveSuicidalThoughts
	ColumnWorkHours
	ColumnFinancialStress
	ColumnFamilyHistory
)

// FeatureOrder es el orden en que el clasificador fue entrenado.
// Cambiarlo altera la interpretacion de cada posicion del vector.
var FeatureOrder = [...]Column{
	ColumnGender,
	ColumnAge,
	ColumnCity,
	ColumnWorkingProfessionalOrStudent,
	ColumnProfession,
	ColumnWorkPressure,
	ColumnJobSatisfaction,
	ColumnSleepDuration,
	ColumnDietaryHabits,
	ColumnDegree,
	ColumnHaveSuicidalThoughts,
	ColumnWorkHours,
	ColumnFinancialStress,
	ColumnFamilyHistory,
}

// NumFeatures es el ancho del vector de features.
const NumFeatures = len(FeatureOrder)

type columnInfo struct {
	header  string
	numeric bool
}

var columns = map[Column]columnInfo{
	ColumnGender:                       {header: "Gender"},
	ColumnAge:                          {header: "Age", numeric: true},
	ColumnCity:                         {header: "City"},
	ColumnWorkingProfessionalOrStudent: {header: "Working Professional or Student"},
	ColumnProfession:                   {header: "Profession"},
	ColumnWorkPressure:                 {header: "Work Pressure", numeric: true},
	ColumnJobSatisfaction:              {header: "Job Satisfaction", numeric: true},
	ColumnSleepDuration:                {header: "Sleep Duration"},
	ColumnDietaryHabits:                {header: "Dietary Habits"},
	ColumnDegree:                       {header: "Degree"},
	ColumnHaveSuicidalThoughts:         {header: "Have you ever had suicidal thoughts ?"},
	ColumnWorkHours:                    {header: "Work/Study Hours", numeric: true},
	ColumnFinancialStress:              {header: "Financial Stress", numeric: true},
	ColumnFamilyHistory:                {header: "Family History of Mental Illness"},
}

// Header devuelve el nombre de la columna en el dataset y en el artefacto de encoders.
func (c Column) Header() string {
	if info, ok := columns[c]; ok {
		return info.header
	}
	return "unknown"
}

func (c Column) String() string {
	return c.Header()
}

// IsNumeric indica si la columna es entera y pasa sin encoder.
func (c Column) IsNumeric() bool {
	return columns[c].numeric
}

// ColumnByHeader resuelve el nombre de cabecera a su Column.
func ColumnByHeader(header string) (Column, bool) {
	for c, info := range columns {
		if info.header == header {
			return c, true
		}
	}
	return 0, false
}

// CategoricalColumns devuelve las columnas de texto en FeatureOrder.
func CategoricalColumns() []Column {
	out := make([]Column, 0, NumFeatures)
	for _, c := range FeatureOrder {
		if !c.IsNumeric() {
			out = append(out, c)
		}
	}
	return out
}
