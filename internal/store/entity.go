package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"
)

// Entity provides generic CRUD for one JSON-encoded type under a key prefix,
// with optional unique secondary indexes.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []Index[T]
}

// Index defines a unique secondary index on an entity.
type Index[T any] struct {
	name            string
	keyGen          func(*T) []string
	lookupTransform func(string) string
}

// NewEntity creates a new Entity for type T stored under prefix.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{store: s, prefix: prefix}
}

// WithIndex adds a unique secondary index.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	return e.WithIndexTransform(name, keyGen, nil)
}

// WithIndexTransform adds a unique secondary index whose lookups pass through
// lookupTransform first (e.g. case folding).
func (e *Entity[T]) WithIndexTransform(name string, keyGen func(*T) []string, lookupTransform func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:            name,
		keyGen:          keyGen,
		lookupTransform: lookupTransform,
	})
	return e
}

// Create stores a new entity under id.
// Returns ErrAlreadyExists if the id is taken, or *IndexConflictError if an
// index value is.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(entityKey(e.prefix, id))
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := e.checkIndexes(txn, entity, nil); err != nil {
			return err
		}
		if err := txn.Set(entityKey(e.prefix, id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return e.setIndexes(txn, id, entity)
	})
}

// Get retrieves an entity by id. Returns ErrNotFound if absent.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity *T
	err := e.store.db.View(func(txn *badger.Txn) error {
		var err error
		entity, err = e.read(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// GetByIndex retrieves an entity by secondary index value.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, idx := range e.indexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			value = idx.lookupTransform(value)
			break
		}
	}

	var entity *T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(e.prefix, indexName, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get index key: %w", err)
		}

		id, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("failed to read index value: %w", err)
		}
		entity, err = e.read(txn, string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Update replaces an existing entity and moves its index entries.
// Returns ErrNotFound if absent, or *IndexConflictError if a new index value is taken.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		old, err := e.read(txn, id)
		if err != nil {
			return err
		}

		if err := e.checkIndexes(txn, entity, old); err != nil {
			return err
		}
		if err := e.deleteIndexes(txn, old); err != nil {
			return err
		}
		if err := txn.Set(entityKey(e.prefix, id), data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return e.setIndexes(txn, id, entity)
	})
}

// Delete removes an entity and its index entries. Deleting a missing id is not an error.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		old, err := e.read(txn, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := e.deleteIndexes(txn, old); err != nil {
			return err
		}
		if err := txn.Delete(entityKey(e.prefix, id)); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
		return nil
	})
}

// List iterates over all entities in key order.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		prefix := []byte(e.prefix)

		err := e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				item := it.Item()
				if isIndexKey(e.prefix, item.Key()) {
					continue
				}

				var entity T
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				}); err != nil {
					return fmt.Errorf("failed to unmarshal entity: %w", err)
				}

				if !yield(&entity, nil) {
					return errStopIteration
				}
			}
			return nil
		})

		if err != nil && !errors.Is(err, errStopIteration) {
			yield(nil, err)
		}
	}
}

var errStopIteration = errors.New("stop iteration")

func (e *Entity[T]) read(txn *badger.Txn, id string) (*T, error) {
	item, err := txn.Get(entityKey(e.prefix, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	var entity T
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entity)
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return &entity, nil
}

// checkIndexes fails if any index value of entity is held by another record.
// Values already owned by old are allowed.
func (e *Entity[T]) checkIndexes(txn *badger.Txn, entity, old *T) error {
	for _, idx := range e.indexes {
		owned := make(map[string]bool)
		if old != nil {
			for _, v := range idx.keyGen(old) {
				owned[v] = true
			}
		}

		for _, v := range idx.keyGen(entity) {
			if owned[v] {
				continue
			}
			_, err := txn.Get(indexKey(e.prefix, idx.name, v))
			if err == nil {
				return &IndexConflictError{Index: idx.name, Value: v}
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("failed to check index key: %w", err)
			}
		}
	}
	return nil
}

func (e *Entity[T]) setIndexes(txn *badger.Txn, id string, entity *T) error {
	for _, idx := range e.indexes {
		for _, v := range idx.keyGen(entity) {
			if err := txn.Set(indexKey(e.prefix, idx.name, v), []byte(id)); err != nil {
				return fmt.Errorf("failed to set index key: %w", err)
			}
		}
	}
	return nil
}

func (e *Entity[T]) deleteIndexes(txn *badger.Txn, entity *T) error {
	for _, idx := range e.indexes {
		for _, v := range idx.keyGen(entity) {
			if err := txn.Delete(indexKey(e.prefix, idx.name, v)); err != nil {
				return fmt.Errorf("failed to delete index key: %w", err)
			}
		}
	}
	return nil
}
