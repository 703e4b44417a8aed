package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,Gender,City,Working Professional or Student,Profession,Work Pressure,Job Satisfaction,Sleep Duration,Dietary Habits,Degree,Have you ever had suicidal thoughts ?,Work/Study Hours,Financial Stress,Family History of Mental Illness,Depression
0,Female,Pune,Working Professional,Chef,5.0,2.0,More than 8 hours,Healthy,BHM,No,1.0,2.0,No,0
1,Male,Surat,Student,,,,Less than 5 hours,Unhealthy,B.Ed,Yes,7.0,3.0,No,1
2,Male,Pune,Working Professional,Teacher,4.0,,5-6 hours,,B.Ed,Yes,3.0,,Yes,1
3,Female,Thane,Working Professional,Teacher,1.0,5.0,5-6 hours,Moderate,,No,10.0,3.0,Yes,0
4,,Pune,Student,,,4.0,7-8 hours,Moderate,LLB,No,9.0,2.0,No,0
`

func readSample(t *testing.T) *ReferenceTable {
	t.Helper()
	table, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return table
}

func values(t *testing.T, table *ReferenceTable, name string) []string {
	t.Helper()
	s, err := table.Column(name)
	require.NoError(t, err)
	return s.Values
}

func TestReadMarksMissingCells(t *testing.T) {
	table := readSample(t)

	assert.Equal(t, 5, table.Rows())
	s, err := table.Column("Profession")
	require.NoError(t, err)
	assert.Equal(t, 2, s.MissingCount())
	assert.Equal(t, []string{"Chef", "Teacher", "Teacher"}, s.Present())

	_, err = table.Column("Depression Score")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestCleanAppliesDefaultRules(t *testing.T) {
	table := readSample(t)

	results, err := table.Clean(DefaultRules())
	require.NoError(t, err)
	require.Len(t, results, 6)

	// mediana de 5,4,1 = 4
	assert.Equal(t, []string{"5.0", "4", "4.0", "1.0", "4"}, values(t, table, "Work Pressure"))
	// mediana de 2,5,4 = 4
	assert.Equal(t, []string{"2.0", "4", "4", "5.0", "4.0"}, values(t, table, "Job Satisfaction"))
	assert.Equal(t, []string{"Chef", "Unknown", "Teacher", "Teacher", "Unknown"}, values(t, table, "Profession"))
	assert.Equal(t, "B.Ed", values(t, table, "Degree")[3])
	// Moderate es la moda de Dietary Habits
	assert.Equal(t, "Moderate", values(t, table, "Dietary Habits")[2])
	// empate 2.0/3.0 en Financial Stress: gana el menor
	assert.Equal(t, "2.0", values(t, table, "Financial Stress")[2])

	assert.Equal(t, ImputeResult{Rule: "constant_fill", Column: "Profession", Filled: 2, Value: "Unknown"}, results[2])

	for _, name := range ImputedColumns() {
		s, err := table.Column(name)
		require.NoError(t, err)
		assert.Zero(t, s.MissingCount(), name)
	}
}

func TestMedianEvenCount(t *testing.T) {
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 3.0, median([]float64{5, 3, 1}))
}

func TestModeTieBreak(t *testing.T) {
	v, ok := mode([]string{"10", "9", "10", "9"})
	require.True(t, ok)
	assert.Equal(t, "9", v)

	v, ok = mode([]string{"b", "a", "b", "a", "c"})
	require.True(t, ok)
	assert.Equal(t, "a", v)

	// columna de texto: "10" < "9" como strings
	v, ok = mode([]string{"9", "10", "MBA", "9", "10"})
	require.True(t, ok)
	assert.Equal(t, "10", v)

	// mismo valor numerico escrito distinto: gana el menor string
	for i := 0; i < 20; i++ {
		v, ok = mode([]string{"1.0", "1", "2", "1.0", "1"})
		require.True(t, ok)
		require.Equal(t, "1", v)
	}

	_, ok = mode(nil)
	assert.False(t, ok)
}

func TestReadTreatsPandasMarkersAsMissing(t *testing.T) {
	markers := []string{"n/a", "#N/A", "<NA>", "-nan", "-NaN", "1.#QNAN", "-1.#IND", "#NA", "null"}
	csvBody := "Profession\n" + strings.Join(markers, "\n") + "\nChef\nn.a.\n"
	table, err := Read(strings.NewReader(csvBody))
	require.NoError(t, err)

	s, err := table.Column("Profession")
	require.NoError(t, err)
	assert.Equal(t, len(markers), s.MissingCount())
	assert.Equal(t, []string{"Chef", "n.a."}, s.Present())
}

func TestCleanFailsWithoutValues(t *testing.T) {
	table, err := Read(strings.NewReader("Degree\n\nNA\n"))
	require.NoError(t, err)

	_, err = table.Clean([]CleaningRule{ModeRule{Column: "Degree"}})
	assert.Error(t, err)

	_, err = table.Clean([]CleaningRule{MedianRule{Column: "Work Pressure"}})
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestDistinctKeepsFirstOccurrence(t *testing.T) {
	table := readSample(t)

	cities, err := table.Distinct("City")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pune", "Surat", "Thane"}, cities)

	genders, err := table.Distinct("Gender")
	require.NoError(t, err)
	assert.Equal(t, []string{"Female", "Male"}, genders)
}

func TestReadRejectsBadInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("a,a\n1,2\n"))
	assert.Error(t, err)
}

func TestLoadReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	table, results, err := LoadReference(path, "City", "Gender")
	require.NoError(t, err)
	assert.Len(t, results, 6)
	assert.Equal(t, 5, table.Rows())

	_, _, err = LoadReference(path, "Country")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, _, err = LoadReference(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
