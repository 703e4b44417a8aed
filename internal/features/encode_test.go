package features

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depression-api/internal/domain"
)

const encodersJSON = `{
	"Gender": ["Female", "Male", "Unknown"],
	"City": ["Bangalore", "Pune", "Unknown"],
	"Working Professional or Student": ["Student", "Unknown", "Working Professional"],
	"Profession": ["Teacher", "Unknown"],
	"Sleep Duration": ["5-6 hours", "7-8 hours", "Unknown"],
	"Dietary Habits": ["Healthy", "Moderate", "Unhealthy", "Unknown"],
	"Degree": ["B.Ed", "BSc", "Unknown"],
	"Have you ever had suicidal thoughts ?": ["No", "Unknown", "Yes"],
	"Family History of Mental Illness": ["No", "Unknown", "Yes"],
	"id": ["1", "2"]
}`

func testTable(t *testing.T) *EncoderTable {
	t.Helper()
	table, ignored, err := ParseEncoderTable([]byte(encodersJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, ignored)
	return table
}

func sampleRecord() domain.InputRecord {
	return domain.InputRecord{
		Gender:                       "Male",
		Age:                          29,
		City:                         "Pune",
		WorkingProfessionalOrStudent: "Working Professional",
		Profession:                   "Teacher",
		WorkPressure:                 4,
		JobSatisfaction:              2,
		SleepDuration:                "5-6 hours",
		DietaryHabits:                "Moderate",
		Degree:                       "B.Ed",
		HaveSuicidalThoughts:         "Yes",
		WorkHours:                    8,
		FinancialStress:              3,
		FamilyHistory:                "No",
	}
}

func TestEncodeBuildsVectorInFeatureOrder(t *testing.T) {
	table := testTable(t)

	vector, err := Encode(sampleRecord(), table)
	require.NoError(t, err)

	assert.Equal(t, Vector{1, 29, 1, 2, 0, 4, 2, 0, 1, 0, 2, 8, 3, 0}, vector)
}

func TestEncodeUnknownCategory(t *testing.T) {
	table := testTable(t)
	record := sampleRecord()
	record.City = "Atlantis"

	vector, err := Encode(record, table)
	require.Error(t, err)
	assert.Nil(t, vector)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, domain.ColumnCity, encErr.Column)
	assert.Equal(t, "Atlantis", encErr.Value)
	assert.Equal(t, "y contains previously unseen labels: ['Atlantis']", encErr.Message)
	assert.ErrorIs(t, err, ErrUnseenLabel)
	assert.Equal(t, "Encoding error for column 'City': y contains previously unseen labels: ['Atlantis']", err.Error())
}

func TestEncodeDefaultsKeepOrder(t *testing.T) {
	table := testTable(t)

	full := sampleRecord()
	defaulted := domain.NewInputRecord()
	defaulted.Age = full.Age
	defaulted.WorkPressure = full.WorkPressure
	defaulted.JobSatisfaction = full.JobSatisfaction
	defaulted.WorkHours = full.WorkHours
	defaulted.FinancialStress = full.FinancialStress
	defaulted.City = full.City

	a, err := Encode(full, table)
	require.NoError(t, err)
	b, err := Encode(defaulted, table)
	require.NoError(t, err)

	require.Len(t, b, domain.NumFeatures)
	for i, col := range domain.FeatureOrder {
		if col.IsNumeric() || col == domain.ColumnCity {
			assert.Equal(t, a[i], b[i], "column %s", col)
			continue
		}
		enc, _ := table.Lookup(col)
		code, err := enc.Encode(domain.DefaultCategory)
		require.NoError(t, err)
		assert.Equal(t, float64(code), b[i], "column %s", col)
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	table := testTable(t)
	record := sampleRecord()

	first, err := Encode(record, table)
	require.NoError(t, err)
	second, err := Encode(record, table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleRecord(), record)
}

func TestEncodeMissingEncoder(t *testing.T) {
	enc, err := NewLabelEncoder([]string{"Male"})
	require.NoError(t, err)
	table, err := NewEncoderTable(map[domain.Column]Encoder{domain.ColumnGender: enc})
	require.NoError(t, err)

	_, err = Encode(sampleRecord(), table)
	assert.ErrorIs(t, err, ErrMissingEncoder)
	assert.Contains(t, table.Missing(), domain.ColumnCity)
}

func TestLabelEncoder(t *testing.T) {
	enc, err := NewLabelEncoder([]string{"No", "Yes"})
	require.NoError(t, err)

	code, err := enc.Encode("Yes")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	_, err = enc.Encode("Maybe")
	assert.ErrorIs(t, err, ErrUnseenLabel)

	classes := enc.Classes()
	classes[0] = "mutated"
	assert.Equal(t, []string{"No", "Yes"}, enc.Classes())
}

func TestParseEncoderTableRejectsInvalidArtifacts(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{name: "malformed", payload: `{"Gender": `},
		{name: "duplicate class", payload: `{"Gender": ["Male", "Male"]}`},
		{name: "empty classes", payload: `{"Gender": []}`},
		{name: "numeric column", payload: `{"Financial Stress": ["1", "2"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseEncoderTable([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}

func TestLoadEncoderTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label_encoders.json")
	require.NoError(t, os.WriteFile(path, []byte(encodersJSON), 0o600))

	table, _, err := LoadEncoderTable(path)
	require.NoError(t, err)
	assert.Empty(t, table.Missing())
	assert.Len(t, table.Columns(), 9)

	_, _, err = LoadEncoderTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
