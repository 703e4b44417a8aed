package dataset

import (
	"fmt"
	"sort"
	"strconv"

	"depression-api/internal/domain"
)

// CleaningRule imputa los valores faltantes de una columna.
type CleaningRule interface {
	Apply(*ReferenceTable) (int, error)
	Name() string
}

// ImputeResult resume lo que hizo una regla.
type ImputeResult struct {
	Rule   string
	Column string
	Filled int
	Value  string
}

// DefaultRules es la secuencia fija de imputacion del dataset de referencia.
// Financial Stress es numerica en el request pero se imputa con la moda, como en el
// pipeline de entrenamiento.
func DefaultRules() []CleaningRule {
	return []CleaningRule{
		MedianRule{Column: domain.ColumnWorkPressure.Header()},
		MedianRule{Column: domain.ColumnJobSatisfaction.Header()},
		ConstantRule{Column: domain.ColumnProfession.Header(), Value: domain.DefaultCategory},
		ModeRule{Column: domain.ColumnDegree.Header()},
		ModeRule{Column: domain.ColumnDietaryHabits.Header()},
		ModeRule{Column: domain.ColumnFinancialStress.Header()},
	}
}

// ImputedColumns lista las columnas que tocan las reglas por defecto.
func ImputedColumns() []string {
	return []string{
		domain.ColumnWorkPressure.Header(),
		domain.ColumnJobSatisfaction.Header(),
		domain.ColumnProfession.Header(),
		domain.ColumnDegree.Header(),
		domain.ColumnDietaryHabits.Header(),
		domain.ColumnFinancialStress.Header(),
	}
}

// Clean aplica las reglas en orden. Falla en la primera regla que no puede imputar.
func (t *ReferenceTable) Clean(rules []CleaningRule) ([]ImputeResult, error) {
	results := make([]ImputeResult, 0, len(rules))
	for _, rule := range rules {
		res, err := applyRule(t, rule)
		if err != nil {
			return results, fmt.Errorf("%s: %w", rule.Name(), err)
		}
		results = append(results, res)
	}
	return results, nil
}

func applyRule(t *ReferenceTable, rule CleaningRule) (ImputeResult, error) {
	res := ImputeResult{Rule: rule.Name()}
	switch r := rule.(type) {
	case MedianRule:
		res.Column = r.Column
	case ModeRule:
		res.Column = r.Column
	case ConstantRule:
		res.Column = r.Column
		res.Value = r.Value
	}
	filled, err := rule.Apply(t)
	res.Filled = filled
	return res, err
}

// MedianRule rellena con la mediana de los valores presentes.
type MedianRule struct {
	Column string
}

func (r MedianRule) Name() string {
	return "median_fill"
}

func (r MedianRule) Apply(t *ReferenceTable) (int, error) {
	s, err := t.Column(r.Column)
	if err != nil {
		return 0, err
	}
	if s.MissingCount() == 0 {
		return 0, nil
	}
	present := s.Present()
	if len(present) == 0 {
		return 0, fmt.Errorf("column %q has no values to compute a median", r.Column)
	}
	values := make([]float64, len(present))
	for i, v := range present {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: non numeric value %q", r.Column, v)
		}
		values[i] = f
	}
	return s.Fill(strconv.FormatFloat(median(values), 'f', -1, 64)), nil
}

// ModeRule rellena con el valor mas frecuente; los empates van al menor valor.
type ModeRule struct {
	Column string
}

func (r ModeRule) Name() string {
	return "mode_fill"
}

func (r ModeRule) Apply(t *ReferenceTable) (int, error) {
	s, err := t.Column(r.Column)
	if err != nil {
		return 0, err
	}
	if s.MissingCount() == 0 {
		return 0, nil
	}
	value, ok := mode(s.Present())
	if !ok {
		return 0, fmt.Errorf("column %q has no values to compute a mode", r.Column)
	}
	return s.Fill(value), nil
}

// ConstantRule rellena con un literal.
type ConstantRule struct {
	Column string
	Value  string
}

func (r ConstantRule) Name() string {
	return "constant_fill"
}

func (r ConstantRule) Apply(t *ReferenceTable) (int, error) {
	s, err := t.Column(r.Column)
	if err != nil {
		return 0, err
	}
	return s.Fill(r.Value), nil
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// mode elige el valor mas frecuente. Los empates se resuelven como los ordena pandas:
// numericamente si toda la columna es numerica, lexicamente si no.
func mode(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	less := lexicalLess
	if allNumeric(counts) {
		less = numericLess
	}
	best := ""
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && less(v, best)) {
			best = v
			bestCount = c
		}
	}
	return best, true
}

func allNumeric(counts map[string]int) bool {
	for v := range counts {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

func lexicalLess(a, b string) bool {
	return a < b
}

// numericLess desempata por texto cuando dos valores valen lo mismo ("1" y "1.0").
func numericLess(a, b string) bool {
	fa, _ := strconv.ParseFloat(a, 64)
	fb, _ := strconv.ParseFloat(b, 64)
	if fa != fb {
		return fa < fb
	}
	return a < b
}

// LoadReference carga el CSV, verifica las columnas requeridas y aplica DefaultRules.
func LoadReference(path string, required ...string) (*ReferenceTable, []ImputeResult, error) {
	table, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := table.Require(append(ImputedColumns(), required...)...); err != nil {
		return nil, nil, err
	}
	results, err := table.Clean(DefaultRules())
	if err != nil {
		return nil, nil, err
	}
	return table, results, nil
}
