package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type BadgerStore struct {
	db *badger.DB
}

func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}
	return NewBadgerStore(db), nil
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db}
}

func (k *BadgerStore) PutBatch(ctx context.Context, entries []Entry) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, e := range entries {
		select {
		case <-ctx.Done():
			return ErrContextCanceled
		default:
		}

		if err := batch.Set(e.Key, e.Value); err != nil {
			return err
		}
	}

	return batch.Flush()
}

func (k *BadgerStore) Get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (k *BadgerStore) Close() error {
	return k.db.Close()
}
