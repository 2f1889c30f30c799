package kv

import (
	"github.com/kelindar/binary"
)

// restrictionChunk potongan record restriction.Store mulai dari edge Start
type restrictionChunk struct {
	Start   int32
	Records []byte
}

type restrictionMeta struct {
	Version   uint16
	EdgeCount int32
	ChunkSize int32
}

func encodeChunk(c restrictionChunk) ([]byte, error) {
	bb, err := binary.Marshal(c)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeChunk(bbCompressed []byte) (restrictionChunk, error) {
	var c restrictionChunk
	bb, err := decompress(bbCompressed)
	if err != nil {
		return c, err
	}
	err = binary.Unmarshal(bb, &c)
	return c, err
}

func encodeMeta(m restrictionMeta) ([]byte, error) {
	return binary.Marshal(m)
}

func decodeMeta(bb []byte) (restrictionMeta, error) {
	var m restrictionMeta
	err := binary.Unmarshal(bb, &m)
	return m, err
}
