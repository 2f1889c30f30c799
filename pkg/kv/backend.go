package kv

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrUnknownBackend  = errors.New("unknown kv backend")
	ErrContextCanceled = errors.New("context cancelled")
)

type Entry struct {
	Key   []byte
	Value []byte
}

// Backend key-value storage buat restriction chunk. Get return ErrKeyNotFound kalau key tidak ada.
type Backend interface {
	Get(key []byte) ([]byte, error)
	PutBatch(ctx context.Context, entries []Entry) error
	Close() error
}

const (
	BackendBadger = "badger"
	BackendPebble = "pebble"
)

// OpenBackend buka backend sesuai nama di dir
func OpenBackend(name, dir string) (Backend, error) {
	switch name {
	case BackendBadger:
		return OpenBadger(dir)
	case BackendPebble:
		return OpenPebble(dir)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
