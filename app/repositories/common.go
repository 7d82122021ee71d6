package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix     = "post:"
	UserKeyPrefix     = "user:"
	UsernameKeyPrefix = "username:"

	maxConflictRetries = 5
)

// Open opens a Badger database at path. An empty path opens an in-memory database.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.
		WithLogger(nil).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// update runs fn in a read-write transaction, retrying when a concurrent
// transaction touched the same keys.
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < maxConflictRetries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func view(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.View(fn)
}

func entityKey(prefix string, id primitive.ObjectID) []byte {
	return []byte(prefix + id.Hex())
}

// getEntity loads the value at key into entity, mapping a missing key to ErrNotFound.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

func setEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// scan decodes every value under prefix in key order.
func scan(txn *badger.Txn, prefix string, decode func(val []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		if err := it.Item().Value(decode); err != nil {
			return err
		}
	}
	return nil
}

// marshalEntity encodes an entity as BSON. The bson tags keep fields hidden from JSON output, such as the password hash.
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := bson.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity decodes BSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := bson.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
