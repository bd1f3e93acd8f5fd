package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/atarsearch/atarsearch/core"
	"github.com/atarsearch/atarsearch/storage"
)

// SubjectRepository implements storage.SubjectRepository for BadgerDB.
type SubjectRepository struct {
	backend *Backend
}

var _ storage.SubjectRepository = (*SubjectRepository)(nil)

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(backend *Backend) (*SubjectRepository, error) {
	return &SubjectRepository{backend: backend}, nil
}

// Close releases resources. SubjectRepository has no resources to release.
func (r *SubjectRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SubjectRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSubjects adds one or more subjects to storage.
func (r *SubjectRepository) AddSubjects(ctx context.Context, subjects ...*core.Subject) ([]*core.Subject, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, subject := range subjects {
			if subject.Id == 0 {
				subject.Id = core.SubjectID(subject.Code)
			}

			subject.InsertedAt = time.Now().UTC()
			subject.UpdatedAt = subject.InsertedAt

			key := makeSubjectKey(subject.Id)
			value := storage.MarshalSubject(subject)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update code index
			codeKey := makeSubjectCodeKey(subject.Code)
			if err := tx.Set(codeKey, storage.MarshalID(subject.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return subjects, err
}

// GetSubject retrieves a single subject by ID.
func (r *SubjectRepository) GetSubject(ctx context.Context, id core.ID) (*core.Subject, error) {
	var result *core.Subject
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readSubject(tx, makeSubjectKey(id))
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

// GetSubjectByCode retrieves a subject via the code index.
func (r *SubjectRepository) GetSubjectByCode(ctx context.Context, code string) (*core.Subject, error) {
	var result *core.Subject
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSubjectCodeKey(code))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var subjectID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			subjectID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readSubject(tx, makeSubjectKey(subjectID))
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

// ListSubjects retrieves every stored subject in key order.
func (r *SubjectRepository) ListSubjects(ctx context.Context) ([]*core.Subject, error) {
	var results []*core.Subject
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(subjectRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var subject *core.Subject
			err := iter.Item().Value(func(val []byte) error {
				var err error
				subject, err = storage.UnmarshalSubject(val)
				return err
			})
			if err != nil {
				return err
			}
			if subject != nil {
				results = append(results, subject)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteSubjects removes subjects by their IDs.
func (r *SubjectRepository) DeleteSubjects(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeSubjectKey(id)

			subject, err := readSubject(tx, key)
			if err != nil {
				return err
			}
			if subject == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeSubjectCodeKey(subject.Code)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountSubjects returns the number of stored subjects.
func (r *SubjectRepository) CountSubjects(ctx context.Context) (int, error) {
	return r.backend.countPrefix(subjectRecordPrefix + ":")
}

// readSubject reads a subject record from the transaction.
func readSubject(tx *badger.Txn, key []byte) (*core.Subject, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var subject *core.Subject
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		subject, unmarshalErr = storage.UnmarshalSubject(val)
		return unmarshalErr
	})
	return subject, err
}
