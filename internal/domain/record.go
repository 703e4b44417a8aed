package domain

import "encoding/json"

// DefaultCategory reemplaza un campo de texto ausente o null.
const DefaultCategory = "Unknown"

// InputRecord describe a una persona tal como llega a POST /predict.
type InputRecord struct {
	Gender                       string `json:"Gender"`
	Age                          int    `json:"Age"`
	City                         string `json:"City"`
	WorkingProfessionalOrStudent string `json:"Working_Professional_or_Student"`
	Profession                   string `json:"Profession"`
	WorkPressure                 int    `json:"Work_Pressure"`
	JobSatisfaction              int    `json:"Job_Satisfaction"`
	SleepDuration                string `json:"Sleep_Duration"`
	DietaryHabits                string `json:"Dietary_Habits"`
	Degree                       string `json:"Degree"`
	HaveSuicidalThoughts         string `json:"Have_Suicidal_Thoughts"`
	WorkHours                    int    `json:"Work_Hours"`
	FinancialStress              int    `json:"Financial_Stress"`
	FamilyHistory                string `json:"Family_History"`
}

// Category devuelve el valor de texto de una columna categorica.
func (r InputRecord) Category(c Column) (string, bool) {
	switch c {
	case ColumnGender:
		return r.Gender, true
	case ColumnCity:
		return r.City, true
	case ColumnWorkingProfessionalOrStudent:
		return r.WorkingProfessionalOrStudent, true
	case ColumnProfession:
		return r.Profession, true
	case ColumnSleepDuration:
		return r.SleepDuration, true
	case ColumnDietaryHabits:
		return r.DietaryHabits, true
	case ColumnDegree:
		return r.Degree, true
	case ColumnHaveSuicidalThoughts:
		return r.HaveSuicidalThoughts, true
	case ColumnFamilyHistory:
		return r.FamilyHistory, true
	default:
		return "", false
	}
}

// Number devuelve el valor entero de una columna numerica.
func (r InputRecord) Number(c Column) (int, bool) {
	switch c {
	case ColumnAge:
		return r.Age, true
	case ColumnWorkPressure:
		return r.WorkPressure, true
	case ColumnJobSatisfaction:
		return r.JobSatisfaction, true
	case ColumnWorkHours:
		return r.WorkHours, true
	case ColumnFinancialStress:
		return r.FinancialStress, true
	default:
		return 0, false
	}
}

// NewInputRecord devuelve un registro con todas las categorias en DefaultCategory.
// Los campos de texto que el cliente no envia (o envia como null) quedan asi; un string
// vacio explicito no es ausencia y se codifica tal cual.
func NewInputRecord() InputRecord {
	return InputRecord{
		Gender:                       DefaultCategory,
		City:                         DefaultCategory,
		WorkingProfessionalOrStudent: DefaultCategory,
		Profession:                   DefaultCategory,
		SleepDuration:                DefaultCategory,
		DietaryHabits:                DefaultCategory,
		Degree:                       DefaultCategory,
		HaveSuicidalThoughts:         DefaultCategory,
		FamilyHistory:                DefaultCategory,
	}
}

// UnmarshalJSON decodifica sobre NewInputRecord: encoding/json no toca un campo ausente
// ni uno en null, asi que ambos conservan DefaultCategory.
func (r *InputRecord) UnmarshalJSON(data []byte) error {
	type plain InputRecord
	p := plain(NewInputRecord())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = InputRecord(p)
	return nil
}
