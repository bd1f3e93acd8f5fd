package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/atarsearch/atarsearch/core"
)

// StudentMatchesQuery is the server-side predicate for filtering an already
// fetched candidate set. It is true when the query is a substring of the
// student's name, school, or any subject name. Failing that, a multi-word
// query still matches when every word is found in some name word, school
// word, or subject name — so "Smith John" matches "John Smith".
func StudentMatchesQuery(student *core.Student, query string) bool {
	q := normalizeQuery(query)
	if q == "" {
		return true
	}

	name := strings.ToLower(student.Name)
	school := strings.ToLower(student.School)

	if strings.Contains(name, q) || strings.Contains(school, q) {
		return true
	}
	subjects := make([]string, len(student.Subjects))
	for i, score := range student.Subjects {
		subjects[i] = strings.ToLower(score.Subject)
		if strings.Contains(subjects[i], q) {
			return true
		}
	}

	words := strings.Fields(q)
	if len(words) < 2 {
		return false
	}

	candidates := splitNameWords(name)
	candidates = append(candidates, strings.Fields(school)...)
	candidates = append(candidates, subjects...)

	for _, word := range words {
		found := false
		for _, candidate := range candidates {
			if strings.Contains(candidate, word) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SortStudents sorts in place: newest year first (a missing year sorts as
// 0, i.e. oldest), ties broken alphabetically by name under English
// collation. Returns the slice for chaining.
func SortStudents(students []*core.Student) []*core.Student {
	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(students, func(i, j int) bool {
		if students[i].Year != students[j].Year {
			return students[i].Year > students[j].Year
		}
		return collator.CompareString(students[i].Name, students[j].Name) < 0
	})
	return students
}
