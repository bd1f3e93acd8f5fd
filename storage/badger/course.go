package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/atarsearch/atarsearch/core"
	"github.com/atarsearch/atarsearch/storage"
)

// CourseRepository implements storage.CourseRepository for BadgerDB.
type CourseRepository struct {
	backend *Backend
}

var _ storage.CourseRepository = (*CourseRepository)(nil)

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(backend *Backend) (*CourseRepository, error) {
	return &CourseRepository{backend: backend}, nil
}

// Close releases resources. CourseRepository has no resources to release.
func (r *CourseRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CourseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCourses adds one or more courses to storage.
func (r *CourseRepository) AddCourses(ctx context.Context, courses ...*core.Course) ([]*core.Course, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, course := range courses {
			// Use content-based ID if not set
			if course.Id == 0 {
				course.Id = core.IDFromContent(course.ContentKey())
			}

			course.InsertedAt = time.Now().UTC()
			course.UpdatedAt = course.InsertedAt

			key := makeCourseKey(course.Id)
			value := storage.MarshalCourse(course)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update institution index
			indexKey := makeCourseInstitutionKey(course.Institution, course.Id)
			if err := tx.Set(indexKey, storage.MarshalID(course.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return courses, err
}

// GetCourse retrieves a single course by ID.
func (r *CourseRepository) GetCourse(ctx context.Context, id core.ID) (*core.Course, error) {
	var result *core.Course
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readCourse(tx, makeCourseKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetCourseByCode retrieves a course by its institution and code. The ID is
// content-based, so the lookup is a direct key read.
func (r *CourseRepository) GetCourseByCode(ctx context.Context, institution, code string) (*core.Course, error) {
	return r.GetCourse(ctx, core.CourseID(institution, code))
}

// ListCourses retrieves every stored course in key order.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]*core.Course, error) {
	var results []*core.Course
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(courseRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var course *core.Course
			err := iter.Item().Value(func(val []byte) error {
				var err error
				course, err = storage.UnmarshalCourse(val)
				return err
			})
			if err != nil {
				return err
			}
			if course != nil {
				results = append(results, course)
			}
		}
		return nil
	}, false)
	return results, err
}

// ListCoursesByInstitution retrieves courses via the institution index.
func (r *CourseRepository) ListCoursesByInstitution(ctx context.Context, institution string) ([]*core.Course, error) {
	var results []*core.Course
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialCourseInstitutionKey(institution)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var courseID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				courseID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			course, err := readCourse(tx, makeCourseKey(courseID))
			if err != nil {
				return err
			}
			if course != nil {
				results = append(results, course)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteCourses removes courses by their IDs.
func (r *CourseRepository) DeleteCourses(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCourseKey(id)

			course, err := readCourse(tx, key)
			if err != nil {
				return err
			}
			if course == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeCourseInstitutionKey(course.Institution, course.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountCourses returns the number of stored courses.
func (r *CourseRepository) CountCourses(ctx context.Context) (int, error) {
	return r.backend.countPrefix(courseRecordPrefix + ":")
}

// readCourse reads a course record from the transaction.
func readCourse(tx *badger.Txn, key []byte) (*core.Course, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var course *core.Course
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		course, unmarshalErr = storage.UnmarshalCourse(val)
		return unmarshalErr
	})
	return course, err
}
