package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atarsearch/atarsearch/core"
)

func TestStudentMatchesQuery(t *testing.T) {
	student := &core.Student{
		Name:   "John Smith",
		School: "Melbourne High School",
		Year:   2024,
		Subjects: []core.SubjectScore{
			{Subject: "Mathematical Methods", Score: 42},
			{Subject: "Chemistry", Score: 38},
		},
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches", "", true},
		{"whitespace query matches", "   ", true},
		{"name substring", "john", true},
		{"name substring across words", "ohn smi", true},
		{"school substring", "melbourne high", true},
		{"subject substring", "chemistry", true},
		{"case insensitive", "JOHN SMITH", true},
		{"words in any order", "Smith John", true},
		{"name word plus school word", "smith melbourne", true},
		{"name word plus subject word", "john methods", true},
		{"single word no substring", "jonathan", false},
		{"one word misses", "john doe", false},
		{"partial words still match", "smi joh", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StudentMatchesQuery(student, tt.query))
		})
	}
}

func TestStudentMatchesQuery_CommaSeparatedName(t *testing.T) {
	student := &core.Student{Name: "Smith, John", School: "Melbourne High School"}

	assert.True(t, StudentMatchesQuery(student, "john smith"))
	assert.True(t, StudentMatchesQuery(student, "smith john"))
}

func TestSortStudents(t *testing.T) {
	students := []*core.Student{
		{Name: "Charlie Brown", Year: 2023},
		{Name: "alice wright", Year: 2024},
		{Name: "Bob Taylor", Year: 2024},
		{Name: "Dana White"},
	}

	sorted := SortStudents(students)

	// Newest year first, names alphabetically within a year regardless of
	// case, missing year last.
	assert.Equal(t, "alice wright", sorted[0].Name)
	assert.Equal(t, "Bob Taylor", sorted[1].Name)
	assert.Equal(t, "Charlie Brown", sorted[2].Name)
	assert.Equal(t, "Dana White", sorted[3].Name)
}

func TestSortStudents_StableWithinTies(t *testing.T) {
	students := []*core.Student{
		{Name: "Same Name", School: "First School", Year: 2024},
		{Name: "Same Name", School: "Second School", Year: 2024},
	}

	sorted := SortStudents(students)
	assert.Equal(t, "First School", sorted[0].School)
	assert.Equal(t, "Second School", sorted[1].School)
}
