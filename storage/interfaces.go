package storage

import (
	"context"

	"github.com/atarsearch/atarsearch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CourseRepository provides operations for managing course records.
type CourseRepository interface {
	Repository

	// AddCourses adds one or more courses to storage.
	// Courses with ID=0 get content-based IDs from (institution, code).
	// Returns the courses with IDs and timestamps populated.
	AddCourses(ctx context.Context, courses ...*core.Course) ([]*core.Course, error)

	// GetCourse retrieves a single course by ID.
	// Returns ErrNotFound if the course doesn't exist.
	GetCourse(ctx context.Context, id core.ID) (*core.Course, error)

	// GetCourseByCode retrieves a course by its institution and code.
	// Returns ErrNotFound if no such course exists.
	GetCourseByCode(ctx context.Context, institution, code string) (*core.Course, error)

	// ListCourses retrieves every stored course in key order.
	ListCourses(ctx context.Context) ([]*core.Course, error)

	// ListCoursesByInstitution retrieves every course offered by one institution.
	ListCoursesByInstitution(ctx context.Context, institution string) ([]*core.Course, error)

	// DeleteCourses removes courses and their indexes by ID.
	// Returns ErrNotFound if any course doesn't exist.
	DeleteCourses(ctx context.Context, ids ...core.ID) error

	// CountCourses returns the number of stored courses.
	CountCourses(ctx context.Context) (int, error)
}

// SubjectRepository provides operations for managing scaled subjects.
type SubjectRepository interface {
	Repository

	// AddSubjects adds one or more subjects to storage.
	// Subjects with ID=0 get content-based IDs from their code.
	AddSubjects(ctx context.Context, subjects ...*core.Subject) ([]*core.Subject, error)

	// GetSubject retrieves a single subject by ID.
	// Returns ErrNotFound if the subject doesn't exist.
	GetSubject(ctx context.Context, id core.ID) (*core.Subject, error)

	// GetSubjectByCode retrieves a subject by its code.
	// Returns ErrNotFound if no such subject exists.
	GetSubjectByCode(ctx context.Context, code string) (*core.Subject, error)

	// ListSubjects retrieves every stored subject in key order.
	ListSubjects(ctx context.Context) ([]*core.Subject, error)

	// DeleteSubjects removes subjects and their indexes by ID.
	DeleteSubjects(ctx context.Context, ids ...core.ID) error

	// CountSubjects returns the number of stored subjects.
	CountSubjects(ctx context.Context) (int, error)
}

// StudentRepository provides operations for managing student score records.
type StudentRepository interface {
	Repository

	// AddStudents adds one or more students to storage.
	// Students always get fresh sequence IDs.
	AddStudents(ctx context.Context, students ...*core.Student) ([]*core.Student, error)

	// GetStudent retrieves a single student by ID.
	// Returns ErrNotFound if the student doesn't exist.
	GetStudent(ctx context.Context, id core.ID) (*core.Student, error)

	// ListStudents retrieves every stored student in key order.
	ListStudents(ctx context.Context) ([]*core.Student, error)

	// ListStudentsByYear retrieves the students of one graduating year via
	// the year index.
	ListStudentsByYear(ctx context.Context, year int) ([]*core.Student, error)

	// DeleteStudents removes students and their indexes by ID.
	// Returns ErrNotFound if any student doesn't exist.
	DeleteStudents(ctx context.Context, ids ...core.ID) error

	// CountStudents returns the number of stored students.
	CountStudents(ctx context.Context) (int, error)
}
