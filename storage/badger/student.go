package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/atarsearch/atarsearch/core"
	"github.com/atarsearch/atarsearch/storage"
)

// StudentRepository implements storage.StudentRepository for BadgerDB.
type StudentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.StudentRepository = (*StudentRepository)(nil)

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(backend *Backend) (*StudentRepository, error) {
	idSeq, err := backend.GetSequence(studentIDSeq)
	if err != nil {
		return nil, err
	}

	return &StudentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *StudentRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *StudentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddStudents adds one or more students to storage.
func (r *StudentRepository) AddStudents(ctx context.Context, students ...*core.Student) ([]*core.Student, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, student := range students {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			student.Id = core.ID(nextID)

			student.InsertedAt = time.Now().UTC()
			student.UpdatedAt = student.InsertedAt

			key := makeStudentKey(student.Id)
			value := storage.MarshalStudent(student)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update year index
			yearKey := makeStudentYearKey(student.Year, student.Id)
			if err := tx.Set(yearKey, storage.MarshalID(student.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return students, err
}

// GetStudent retrieves a single student by ID.
func (r *StudentRepository) GetStudent(ctx context.Context, id core.ID) (*core.Student, error) {
	var result *core.Student
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readStudent(tx, makeStudentKey(id))
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

// ListStudents retrieves every stored student in key order.
func (r *StudentRepository) ListStudents(ctx context.Context) ([]*core.Student, error) {
	var results []*core.Student
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(studentRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var student *core.Student
			err := iter.Item().Value(func(val []byte) error {
				var err error
				student, err = storage.UnmarshalStudent(val)
				return err
			})
			if err != nil {
				return err
			}
			if student != nil {
				results = append(results, student)
			}
		}
		return nil
	}, false)
	return results, err
}

// ListStudentsByYear retrieves the students of one graduating year via the
// year index.
func (r *StudentRepository) ListStudentsByYear(ctx context.Context, year int) ([]*core.Student, error) {
	var results []*core.Student
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialStudentYearKey(year)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var studentID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				studentID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			student, err := readStudent(tx, makeStudentKey(studentID))
			if err != nil {
				return err
			}
			if student != nil {
				results = append(results, student)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteStudents removes students by their IDs.
func (r *StudentRepository) DeleteStudents(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeStudentKey(id)

			student, err := readStudent(tx, key)
			if err != nil {
				return err
			}
			if student == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeStudentYearKey(student.Year, student.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountStudents returns the number of stored students.
func (r *StudentRepository) CountStudents(ctx context.Context) (int, error) {
	return r.backend.countPrefix(studentRecordPrefix + ":")
}

// readStudent reads a student record from the transaction.
func readStudent(tx *badger.Txn, key []byte) (*core.Student, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var student *core.Student
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		student, unmarshalErr = storage.UnmarshalStudent(val)
		return unmarshalErr
	})
	return student, err
}
