package repositories

import (
	"postfeed/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerAuthorRepository implements AuthorRepository using BadgerDB
type BadgerAuthorRepository struct {
	db *badger.DB
}

// NewBadgerAuthorRepository creates a new BadgerAuthorRepository
func NewBadgerAuthorRepository(db *badger.DB) *BadgerAuthorRepository {
	return &BadgerAuthorRepository{db: db}
}

// Create stores a new author. A zero ID is assigned from the author sequence.
func (r *BadgerAuthorRepository) Create(author *models.Author) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := reserveID(txn, AuthorSeqKey, author.ID)
		if err != nil {
			return err
		}
		author.ID = id

		data, err := marshalEntity(author)
		if err != nil {
			return err
		}
		return setNew(txn, idKey(AuthorKeyPrefix, author.ID), data)
	})
}

// GetByID retrieves an author by ID
func (r *BadgerAuthorRepository) GetByID(id int) (*models.Author, error) {
	var author models.Author
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, idKey(AuthorKeyPrefix, id), &author)
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// List retrieves all authors ordered by ID
func (r *BadgerAuthorRepository) List() ([]*models.Author, error) {
	authors := []*models.Author{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(AuthorKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var author models.Author
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &author)
			})
			if err != nil {
				return err
			}
			authors = append(authors, &author)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return authors, nil
}
