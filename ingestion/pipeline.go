package ingestion

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/atarsearch/atarsearch/core"
	"github.com/atarsearch/atarsearch/storage"
)

const defaultBatchSize = 200

// Pipeline bulk-loads admissions datasets into the record store. Batches
// are written concurrently through a worker pool; rows that fail domain
// validation are logged and skipped rather than aborting the load.
type Pipeline struct {
	courseRepo  storage.CourseRepository
	subjectRepo storage.SubjectRepository
	studentRepo storage.StudentRepository
	pool        *ants.Pool
	batchSize   int
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records each pool task writes per transaction.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	courseRepo storage.CourseRepository,
	subjectRepo storage.SubjectRepository,
	studentRepo storage.StudentRepository,
	opts ...Option,
) (*Pipeline, error) {
	if courseRepo == nil {
		return nil, ErrCourseRepositoryRequired
	}
	if subjectRepo == nil {
		return nil, ErrSubjectRepositoryRequired
	}
	if studentRepo == nil {
		return nil, ErrStudentRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		courseRepo:  courseRepo,
		subjectRepo: subjectRepo,
		studentRepo: studentRepo,
		pool:        pool,
		batchSize:   defaultBatchSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// LoadCourses decodes, validates, and stores course rows.
// Returns the number of records written.
func (p *Pipeline) LoadCourses(ctx context.Context, r io.Reader) (int, error) {
	decoded, err := DecodeCourses(r)
	if err != nil {
		return 0, err
	}

	courses := decoded[:0]
	for _, course := range decoded {
		if err := core.ValidateCourse(course); err != nil {
			p.logger.Warn("skipping invalid course row", "code", course.Code, "err", err)
			continue
		}
		courses = append(courses, course)
	}

	err = p.storeBatches(len(courses), func(start, end int) error {
		_, addErr := p.courseRepo.AddCourses(ctx, courses[start:end]...)
		return addErr
	})
	if err != nil {
		return 0, err
	}
	return len(courses), nil
}

// LoadSubjects decodes, validates, and stores subject rows.
// Returns the number of records written.
func (p *Pipeline) LoadSubjects(ctx context.Context, r io.Reader) (int, error) {
	decoded, err := DecodeSubjects(r)
	if err != nil {
		return 0, err
	}

	subjects := decoded[:0]
	for _, subject := range decoded {
		if err := core.ValidateSubject(subject); err != nil {
			p.logger.Warn("skipping invalid subject row", "code", subject.Code, "err", err)
			continue
		}
		subjects = append(subjects, subject)
	}

	err = p.storeBatches(len(subjects), func(start, end int) error {
		_, addErr := p.subjectRepo.AddSubjects(ctx, subjects[start:end]...)
		return addErr
	})
	if err != nil {
		return 0, err
	}
	return len(subjects), nil
}

// LoadStudents decodes, validates, and stores student rows.
// Returns the number of records written.
func (p *Pipeline) LoadStudents(ctx context.Context, r io.Reader) (int, error) {
	decoded, err := DecodeStudents(r)
	if err != nil {
		return 0, err
	}

	students := decoded[:0]
	for _, student := range decoded {
		if err := core.ValidateStudent(student); err != nil {
			p.logger.Warn("skipping invalid student row", "name", student.Name, "err", err)
			continue
		}
		students = append(students, student)
	}

	err = p.storeBatches(len(students), func(start, end int) error {
		_, addErr := p.studentRepo.AddStudents(ctx, students[start:end]...)
		return addErr
	})
	if err != nil {
		return 0, err
	}
	return len(students), nil
}

// storeBatches splits n records into batchSize slices and writes them on
// the pool, waiting for completion and keeping the first error.
func (p *Pipeline) storeBatches(n int, store func(start, end int) error) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < n; start += p.batchSize {
		end := start + p.batchSize
		if end > n {
			end = n
		}

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := store(start, end); err != nil {
				p.logger.Error("error storing batch", "start", start, "end", end, "err", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}

	wg.Wait()
	return firstErr
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
