package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

type PebbleStore struct {
	db *pebble.DB
}

func OpenPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble %q: %w", dir, err)
	}
	return &PebbleStore{db: db}, nil
}

func (p *PebbleStore) PutBatch(ctx context.Context, entries []Entry) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, e := range entries {
		select {
		case <-ctx.Done():
			return ErrContextCanceled
		default:
		}

		if err := batch.Set(e.Key, e.Value, nil); err != nil {
			return err
		}
	}

	return batch.Commit(pebble.Sync)
}

func (p *PebbleStore) Get(key []byte) ([]byte, error) {
	val, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (p *PebbleStore) Close() error {
	return p.db.Close()
}
