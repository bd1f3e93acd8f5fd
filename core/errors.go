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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCourse indicates a Course failed validation.
	ErrInvalidCourse = errors.New("invalid course")

	// ErrInvalidSubject indicates a Subject failed validation.
	ErrInvalidSubject = errors.New("invalid subject")

	// ErrInvalidStudent indicates a Student failed validation.
	ErrInvalidStudent = errors.New("invalid student")

	// ErrEmptyCode indicates the Code field is empty.
	ErrEmptyCode = errors.New("code cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyInstitution indicates the Institution field is empty.
	ErrEmptyInstitution = errors.New("institution cannot be empty")

	// ErrScoreOutOfRange indicates a study score outside 0..50.
	ErrScoreOutOfRange = errors.New("study score out of range")

	// ErrInvalidQuery indicates a raw query string failed boundary validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrQueryTooLong indicates a query exceeding the length cap.
	ErrQueryTooLong = errors.New("query too long")

	// ErrQueryControlChars indicates a query containing control characters.
	ErrQueryControlChars = errors.New("query contains control characters")
)
