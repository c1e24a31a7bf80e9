package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store owns the badger database behind the posts API and hands out the
// per-entity repositories.
type Store struct {
	db       *badger.DB
	posts    *BadgerPostRepository
	authors  *BadgerAuthorRepository
	comments *BadgerCommentRepository
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	return open(opts)
}

// OpenInMemory opens a store that lives only in memory.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &Store{
		db:       db,
		posts:    NewBadgerPostRepository(db),
		authors:  NewBadgerAuthorRepository(db),
		comments: NewBadgerCommentRepository(db),
	}, nil
}

// Posts returns the post repository.
func (s *Store) Posts() *BadgerPostRepository { return s.posts }

// Authors returns the author repository.
func (s *Store) Authors() *BadgerAuthorRepository { return s.authors }

// Comments returns the comment repository.
func (s *Store) Comments() *BadgerCommentRepository { return s.comments }

// Clear drops all data, sequences included.
func (s *Store) Clear() error {
	return s.db.DropAll()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
