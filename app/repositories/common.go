package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	AuthorKeyPrefix  = "author:"
	CommentKeyPrefix = "comment:"

	// Comment ids are unique across posts; this index claims each one.
	CommentIDKeyPrefix = "comment-id:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey    = "seq:post"
	AuthorSeqKey  = "seq:author"
	CommentSeqKey = "seq:comment"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// idKey builds a key whose byte order matches numeric id order, so prefix
// iteration returns records sorted by id.
func idKey(prefix string, ids ...int) []byte {
	key := prefix
	for i, id := range ids {
		if i > 0 {
			key += ":"
		}
		key += fmt.Sprintf("%010d", id)
	}
	return []byte(key)
}

// reserveID returns the id to store a new entity under. A positive
// explicit id is kept and the sequence is moved past it; otherwise the
// next sequence value is taken.
func reserveID(txn *badger.Txn, seqKey string, explicit int) (int, error) {
	current, err := currentSeq(txn, seqKey)
	if err != nil {
		return 0, err
	}

	id := current + 1
	if explicit > 0 {
		id = explicit
	}
	if id > current {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(id))
		if err := txn.Set([]byte(seqKey), buf); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func currentSeq(txn *badger.Txn, seqKey string) (int, error) {
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt sequence %s", seqKey)
		}
		id = int(binary.BigEndian.Uint64(val))
		return nil
	})
	return id, err
}

// setNew stores data under key, failing if the key is taken.
func setNew(txn *badger.Txn, key, data []byte) error {
	_, err := txn.Get(key)
	if err == nil {
		return fmt.Errorf("%s: %w", key, ErrAlreadyExists)
	}
	if err != badger.ErrKeyNotFound {
		return err
	}
	return txn.Set(key, data)
}

// getEntity loads the value under key into entity.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
