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


package atarsearch

import (
	"context"
	"log/slog"

	"github.com/atarsearch/atarsearch/core"
	"github.com/atarsearch/atarsearch/ingestion"
	"github.com/atarsearch/atarsearch/search"
	"github.com/atarsearch/atarsearch/storage"
	"github.com/atarsearch/atarsearch/storage/badger"
)

// Database wires the record store and repositories behind the search calls
// the clients use.
type Database struct {
	backend     *badger.Backend
	courseRepo  storage.CourseRepository
	subjectRepo storage.SubjectRepository
	studentRepo storage.StudentRepository
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemory opens the backend in memory instead of on disk.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	courseRepo, err := badger.NewCourseRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	subjectRepo, err := badger.NewSubjectRepository(backend)
	if err != nil {
		courseRepo.Close()
		backend.Close()
		return nil, err
	}

	studentRepo, err := badger.NewStudentRepository(backend)
	if err != nil {
		subjectRepo.Close()
		courseRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:     backend,
		courseRepo:  courseRepo,
		subjectRepo: subjectRepo,
		studentRepo: studentRepo,
		logger:      slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.studentRepo.Close(); err != nil {
		db.logger.Error("error closing student repository", "err", err)
		return err
	}
	if err := db.subjectRepo.Close(); err != nil {
		db.logger.Error("error closing subject repository", "err", err)
		return err
	}
	if err := db.courseRepo.Close(); err != nil {
		db.logger.Error("error closing course repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) CourseRepository() storage.CourseRepository {
	return db.courseRepo
}

func (db *Database) SubjectRepository() storage.SubjectRepository {
	return db.subjectRepo
}

func (db *Database) StudentRepository() storage.StudentRepository {
	return db.studentRepo
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.courseRepo, db.subjectRepo, db.studentRepo, opts...)
}

// SearchCourses loads the stored courses and ranks them for the options.
// The raw search term is validated here, at the boundary, because the
// ranking code itself never rejects input.
func (db *Database) SearchCourses(ctx context.Context, opts search.CourseSearchOptions) ([]*core.EnrichedCourse, error) {
	if err := core.ValidateQuery(opts.SearchTerm); err != nil {
		return nil, err
	}
	courses, err := db.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	return search.SearchCourses(courses, opts), nil
}

// SearchSubjects loads the stored subjects and ranks them for the options.
// A nil alias table falls back to the default shorthand table.
func (db *Database) SearchSubjects(ctx context.Context, opts search.SubjectSearchOptions) ([]*core.Subject, error) {
	if err := core.ValidateQuery(opts.Query); err != nil {
		return nil, err
	}
	if opts.Aliases == nil {
		opts.Aliases = core.DefaultSubjectAliases
	}
	subjects, err := db.subjectRepo.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	return search.SearchSubjects(subjects, opts), nil
}

// SearchStudents fetches the candidate set (one year via the index, or the
// full set), applies the per-record predicate, and sorts the survivors by
// year then name.
func (db *Database) SearchStudents(ctx context.Context, query string, year int) ([]*core.Student, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	var students []*core.Student
	var err error
	if year > 0 {
		students, err = db.studentRepo.ListStudentsByYear(ctx, year)
	} else {
		students, err = db.studentRepo.ListStudents(ctx)
	}
	if err != nil {
		return nil, err
	}

	matched := make([]*core.Student, 0, len(students))
	for _, student := range students {
		if search.StudentMatchesQuery(student, query) {
			matched = append(matched, student)
		}
	}
	return search.SortStudents(matched), nil
}
