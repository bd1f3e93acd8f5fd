// Copyright 2025 Atarsearch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"unicode"
)

// MaxQueryLength is the longest raw query accepted at the boundary. The
// ranking code itself never rejects input; callers validate before searching.
const MaxQueryLength = 256

// ValidateCourse validates a Course according to domain rules.
//
// Validation rules:
//   - Code must not be empty
//   - Name must not be empty
//   - Institution must not be empty
//
// NOT validated:
//   - Rank (sentinel and unparsable values degrade to the unknown category)
//   - ID (0 is valid before storage assigns one)
func ValidateCourse(course *Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", ErrInvalidCourse)
	}

	if course.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrEmptyCode)
	}

	if course.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrEmptyName)
	}

	if course.Institution == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrEmptyInstitution)
	}

	return nil
}

// ValidateSubject validates a Subject according to domain rules.
func ValidateSubject(subject *Subject) error {
	if subject == nil {
		return fmt.Errorf("%w: subject is nil", ErrInvalidSubject)
	}

	if subject.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSubject, ErrEmptyCode)
	}

	if subject.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSubject, ErrEmptyName)
	}

	return nil
}

// ValidateStudent validates a Student according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Every study score must be within 0..50
//
// NOT validated:
//   - Year (0 means not recorded; sorting treats it as oldest)
//   - School (some source records omit it)
func ValidateStudent(student *Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", ErrInvalidStudent)
	}

	if student.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStudent, ErrEmptyName)
	}

	for _, score := range student.Subjects {
		if score.Score < 0 || score.Score > MaxSubjectScore {
			return fmt.Errorf("%w: %w: %s=%d", ErrInvalidStudent, ErrScoreOutOfRange, score.Subject, score.Score)
		}
	}

	return nil
}

// ValidateQuery applies the boundary checks the ranking code deliberately
// skips: a length cap and control-character rejection. Transport and CLI
// layers call this before handing the query to the search package.
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return fmt.Errorf("%w: %w: %d bytes", ErrInvalidQuery, ErrQueryTooLong, len(query))
	}

	for _, r := range query {
		if unicode.IsControl(r) && r != '\t' {
			return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrQueryControlChars)
		}
	}

	return nil
}
