package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCourses_RankEncodings(t *testing.T) {
	// The source data mixes numeric and string ranks, including sentinel codes.
	input := `[
		{"code": "M3001", "name": "Bachelor of Science", "rank": "85.10", "institution": "Monash University"},
		{"code": "M6011", "name": "Doctor of Medicine", "rank": 99.85, "institution": "Monash University"},
		{"code": "UM-BDES", "name": "Bachelor of Design", "rank": "N/P", "institution": "University of Melbourne"},
		{"code": "D3002", "name": "Bachelor of Engineering", "rank": 80, "institution": "Deakin University"}
	]`

	courses, err := DecodeCourses(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, courses, 4)

	assert.Equal(t, "85.10", courses[0].Rank)
	assert.Equal(t, "99.85", courses[1].Rank)
	assert.Equal(t, "N/P", courses[2].Rank)
	assert.Equal(t, "80", courses[3].Rank)
}

func TestDecodeCourses_InvalidRankType(t *testing.T) {
	input := `[{"code": "M3001", "name": "Bachelor of Science", "rank": {"min": 80}, "institution": "Monash University"}]`

	_, err := DecodeCourses(strings.NewReader(input))
	assert.Error(t, err)
}

func TestDecodeCourses_Metadata(t *testing.T) {
	input := `[{"code": "M3001", "name": "Bachelor of Science", "rank": "85.10", "institution": "Monash University",
		"campus": "Clayton", "metadata": {"mode": "on-campus"}}]`

	courses, err := DecodeCourses(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Clayton", courses[0].Campus)
	assert.Equal(t, map[string]string{"mode": "on-campus"}, courses[0].Metadata)
}

func TestDecodeSubjects(t *testing.T) {
	input := `[
		{"code": "MM34", "name": "Mathematical Methods", "mean": 34.2, "stdev": 7.1, "scaling": {"30": 32.5}},
		{"code": "GM34", "name": "General Mathematics"}
	]`

	subjects, err := DecodeSubjects(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, subjects, 2)

	assert.Equal(t, 34.2, subjects[0].Mean)
	assert.Equal(t, map[string]float64{"30": 32.5}, subjects[0].Scaling)
	assert.Zero(t, subjects[1].Mean)
	assert.Nil(t, subjects[1].Scaling)
}

func TestDecodeStudents(t *testing.T) {
	input := `[
		{"name": "John Smith", "school": "Melbourne High School", "year": 2024,
			"subjects": [{"subject": "Chemistry", "score": 38}, {"subject": "Literature", "score": 50}]},
		{"name": "Jane Doe", "school": "Geelong Grammar"}
	]`

	students, err := DecodeStudents(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, students, 2)

	assert.Equal(t, 2024, students[0].Year)
	require.Len(t, students[0].Subjects, 2)
	assert.Equal(t, "Chemistry", students[0].Subjects[0].Subject)
	assert.True(t, students[0].Subjects[1].Perfect())

	assert.Zero(t, students[1].Year)
	assert.Empty(t, students[1].Subjects)
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := DecodeCourses(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)

	_, err = DecodeSubjects(strings.NewReader(`[`))
	assert.Error(t, err)

	_, err = DecodeStudents(strings.NewReader(``))
	assert.Error(t, err)
}
