package kv

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/restriction"
	"go.uber.org/zap"
)

const (
	DefaultChunkSize = 1024 // record per chunk
	metaVersion      = 1
	batchSize        = 1000
)

var (
	metaKey            = []byte("rs:meta")
	ErrNoRestrictions  = errors.New("restriction store not found in kv")
	ErrCorruptedChunks = errors.New("restriction chunks corrupted")
)

func chunkKey(idx int) []byte {
	return []byte(fmt.Sprintf("rs:%08d", idx))
}

// RestrictionKV simpan & load restriction.Store ke kv backend dalam chunk terkompresi
type RestrictionKV struct {
	backend   Backend
	chunkSize int
	log       *zap.Logger
}

func NewRestrictionKV(backend Backend, log *zap.Logger) *RestrictionKV {
	if log == nil {
		log = zap.NewNop()
	}
	return &RestrictionKV{backend: backend, chunkSize: DefaultChunkSize, log: log}
}

func (k *RestrictionKV) WithChunkSize(n int) *RestrictionKV {
	if n > 0 {
		k.chunkSize = n
	}
	return k
}

func (k *RestrictionKV) SaveStore(ctx context.Context, store *restriction.Store) error {
	records := store.Records()
	edgeCount := store.EdgeCount()
	chunkBytes := k.chunkSize * restriction.RecordSize

	jobs := make([]concurrent.Job[restrictionChunk], 0, (edgeCount+k.chunkSize-1)/k.chunkSize)
	for start := 0; start < edgeCount; start += k.chunkSize {
		end := min(len(records), start*restriction.RecordSize+chunkBytes)
		jobs = append(jobs, concurrent.NewJob(len(jobs), restrictionChunk{
			Start:   int32(start),
			Records: records[start*restriction.RecordSize : end],
		}))
	}

	k.log.Sugar().Infof("saving %d restriction records in %d chunks...", edgeCount, len(jobs))

	encoded, err := concurrent.RunJobs(runtime.NumCPU(), jobs, encodeChunk)
	if err != nil {
		return fmt.Errorf("encode restriction chunks: %w", err)
	}

	batch := make([]Entry, 0, batchSize)
	for i, val := range encoded {
		select {
		case <-ctx.Done():
			return ErrContextCanceled
		default:
		}

		batch = append(batch, Entry{Key: chunkKey(i), Value: val})
		if len(batch) == batchSize {
			if err := k.backend.PutBatch(ctx, batch); err != nil {
				return err
			}
			batch = make([]Entry, 0, batchSize)
		}
	}

	meta, err := encodeMeta(restrictionMeta{Version: metaVersion, EdgeCount: int32(edgeCount), ChunkSize: int32(k.chunkSize)})
	if err != nil {
		return err
	}
	// meta terakhir, store yang belum selesai disimpan tidak kebaca
	batch = append(batch, Entry{Key: metaKey, Value: meta})
	if err := k.backend.PutBatch(ctx, batch); err != nil {
		return err
	}

	k.log.Sugar().Infof("saving restriction records done")
	return nil
}

func (k *RestrictionKV) LoadStore(ctx context.Context) (*restriction.Store, error) {
	bb, err := k.backend.Get(metaKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrNoRestrictions
	}
	if err != nil {
		return nil, err
	}
	meta, err := decodeMeta(bb)
	if err != nil {
		return nil, fmt.Errorf("decode restriction meta: %w", err)
	}
	if meta.Version != metaVersion || meta.EdgeCount < 0 || meta.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: meta version %d, edges %d, chunk size %d", ErrCorruptedChunks,
			meta.Version, meta.EdgeCount, meta.ChunkSize)
	}

	edgeCount := int(meta.EdgeCount)
	chunkSize := int(meta.ChunkSize)
	records := make([]byte, edgeCount*restriction.RecordSize)

	for idx, start := 0, 0; start < edgeCount; idx, start = idx+1, start+chunkSize {
		select {
		case <-ctx.Done():
			return nil, ErrContextCanceled
		default:
		}

		val, err := k.backend.Get(chunkKey(idx))
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", ErrCorruptedChunks, idx, err)
		}
		chunk, err := decodeChunk(val)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", ErrCorruptedChunks, idx, err)
		}

		want := min(chunkSize, edgeCount-start) * restriction.RecordSize
		if int(chunk.Start) != start || len(chunk.Records) != want {
			return nil, fmt.Errorf("%w: chunk %d starts at %d with %d bytes", ErrCorruptedChunks, idx, chunk.Start, len(chunk.Records))
		}
		copy(records[start*restriction.RecordSize:], chunk.Records)
	}

	k.log.Info("restriction store loaded", zap.Int("edges", edgeCount))
	return restriction.NewStoreFromRecords(records)
}
