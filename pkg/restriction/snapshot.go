package restriction

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

/*
snapshot file restriction store. zstd stream:

	| magic "NXRS" | version uint16 | edgeCount uint32 | records (edgeCount * RecordSize) |
*/
const (
	snapshotVersion uint16 = 1
)

var (
	snapshotMagic = [4]byte{'N', 'X', 'R', 'S'}

	ErrBadSnapshot = errors.New("bad restriction snapshot")
)

func (s *Store) Save(w io.Writer) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	header := make([]byte, 10)
	copy(header[0:4], snapshotMagic[:])
	binary.LittleEndian.PutUint16(header[4:6], snapshotVersion)
	binary.LittleEndian.PutUint32(header[6:10], uint32(s.EdgeCount()))

	if _, err := enc.Write(header); err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(s.records); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func Load(r io.Reader) (*Store, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	header := make([]byte, 10)
	if _, err := io.ReadFull(dec, header); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrBadSnapshot, err)
	}
	if string(header[0:4]) != string(snapshotMagic[:]) {
		return nil, fmt.Errorf("%w: magic %q", ErrBadSnapshot, header[0:4])
	}
	if v := binary.LittleEndian.Uint16(header[4:6]); v != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, v)
	}
	edgeCount := int(binary.LittleEndian.Uint32(header[6:10]))

	records := make([]byte, edgeCount*RecordSize)
	if _, err := io.ReadFull(dec, records); err != nil {
		return nil, fmt.Errorf("%w: read %d records: %v", ErrBadSnapshot, edgeCount, err)
	}
	return NewStoreFromRecords(records)
}

func (s *Store) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := s.Save(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(bufio.NewReader(f))
}
