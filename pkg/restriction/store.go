package restriction

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
)

/*
record restriction per road segment (OriginalEdgeID), fixed width 12 byte:

	| vehicle type mask | destination byte | height | width | weight | length | axleload |
	      1 byte              1 byte          uint16   uint16  uint16   uint16   uint16

limit disimpan dalam centi unit (value*100), 0 = tidak ada limit. max 655.35.
*/
const (
	RecordSize   = 12
	limitsOffset = 2
	limitScale   = 100.0
	maxRawLimit  = math.MaxUint16
)

type EdgeRestriction struct {
	VehicleTypeMask vehicle.VehicleType
	DestinationByte vehicle.VehicleType
	Limits          [vehicle.DimensionCount]float64
}

func (r EdgeRestriction) DestinationOnly() bool {
	return r.DestinationByte != 0
}

func (r EdgeRestriction) Unrestricted() bool {
	return r.VehicleTypeMask == vehicle.Unknown
}

func (r EdgeRestriction) HasLimits() bool {
	for _, l := range r.Limits {
		if l > 0 {
			return true
		}
	}
	return false
}

func (r EdgeRestriction) IsZero() bool {
	return r.Unrestricted() && r.DestinationByte == 0 && !r.HasLimits()
}

// Store restriction semua road segment. read only setelah di load, aman dibaca banyak goroutine.
type Store struct {
	records []byte
}

func NewStore(edgeCount int) *Store {
	return &Store{records: make([]byte, edgeCount*RecordSize)}
}

func NewStoreFromRecords(records []byte) (*Store, error) {
	if len(records)%RecordSize != 0 {
		return nil, fmt.Errorf("restriction records length %d is not a multiple of %d", len(records), RecordSize)
	}
	return &Store{records: records}, nil
}

func (s *Store) EdgeCount() int {
	return len(s.records) / RecordSize
}

func (s *Store) Records() []byte {
	return s.records
}

func (s *Store) inRange(edgeID int32) bool {
	return edgeID >= 0 && int(edgeID) < s.EdgeCount()
}

func (s *Store) SetEdgeRestriction(edgeID int32, r EdgeRestriction) error {
	if !s.inRange(edgeID) {
		return fmt.Errorf("edge %d out of range [0,%d)", edgeID, s.EdgeCount())
	}
	encodeRecord(s.records[int(edgeID)*RecordSize:(int(edgeID)+1)*RecordSize], r)
	return nil
}

// record copy record edgeID ke buf. nil kalau edge di luar range store (dianggap unrestricted).
func (s *Store) record(edgeID int32, buf []byte) []byte {
	if !s.inRange(edgeID) {
		return nil
	}
	if len(buf) < RecordSize {
		buf = make([]byte, RecordSize)
	}
	start := int(edgeID) * RecordSize
	copy(buf[:RecordSize], s.records[start:start+RecordSize])
	return buf[:RecordSize]
}

// EdgeVehicleType mask kategori yang di restrict & destination byte
func (s *Store) EdgeVehicleType(edgeID int32, buf []byte) (vehicle.VehicleType, vehicle.VehicleType) {
	rec := s.record(edgeID, buf)
	if rec == nil {
		return vehicle.Unknown, 0
	}
	return vehicle.VehicleType(rec[0]), vehicle.VehicleType(rec[1])
}

// EdgeRestrictionValues isi out dengan semua limit dimensi edge. false kalau edge tidak punya data dimensi.
func (s *Store) EdgeRestrictionValues(edgeID int32, buf []byte, out *[vehicle.DimensionCount]float64) bool {
	*out = [vehicle.DimensionCount]float64{}
	rec := s.record(edgeID, buf)
	if rec == nil {
		return false
	}
	has := false
	for i := 0; i < vehicle.DimensionCount; i++ {
		out[i] = decodeLimit(rec, i)
		if out[i] > 0 {
			has = true
		}
	}
	return has
}

// EdgeRestrictionValue limit satu dimensi, 0 = tidak ada limit
func (s *Store) EdgeRestrictionValue(edgeID int32, dim vehicle.Dimension, buf []byte) float64 {
	if !dim.Valid() {
		return 0
	}
	rec := s.record(edgeID, buf)
	if rec == nil {
		return 0
	}
	return decodeLimit(rec, int(dim))
}

func (s *Store) Decode(edgeID int32) EdgeRestriction {
	var buf [RecordSize]byte
	rec := s.record(edgeID, buf[:])
	if rec == nil {
		return EdgeRestriction{}
	}
	return decodeRecord(rec)
}

func encodeRecord(dst []byte, r EdgeRestriction) {
	dst[0] = byte(r.VehicleTypeMask)
	dst[1] = byte(r.DestinationByte)
	for i, l := range r.Limits {
		binary.LittleEndian.PutUint16(dst[limitsOffset+2*i:], encodeLimit(l))
	}
}

func decodeRecord(rec []byte) EdgeRestriction {
	r := EdgeRestriction{
		VehicleTypeMask: vehicle.VehicleType(rec[0]),
		DestinationByte: vehicle.VehicleType(rec[1]),
	}
	for i := 0; i < vehicle.DimensionCount; i++ {
		r.Limits[i] = decodeLimit(rec, i)
	}
	return r
}

func encodeLimit(v float64) uint16 {
	if !(v > 0) {
		return 0
	}
	raw := math.Round(v * limitScale)
	if raw > maxRawLimit {
		raw = maxRawLimit
	}
	if raw < 1 {
		raw = 1
	}
	return uint16(raw)
}

func decodeLimit(rec []byte, dim int) float64 {
	return float64(binary.LittleEndian.Uint16(rec[limitsOffset+2*dim:])) / limitScale
}
