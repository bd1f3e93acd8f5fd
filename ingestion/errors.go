package ingestion

import "errors"

var (
	// ErrCourseRepositoryRequired is returned when a course repository is not provided.
	ErrCourseRepositoryRequired = errors.New("course repository required")

	// ErrSubjectRepositoryRequired is returned when a subject repository is not provided.
	ErrSubjectRepositoryRequired = errors.New("subject repository required")

	// ErrStudentRepositoryRequired is returned when a student repository is not provided.
	ErrStudentRepositoryRequired = errors.New("student repository required")
)
