package datastructure

import (
	"encoding/binary"
	"math"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/util"
)

type CHNode struct {
	Lat float64
	Lon float64
	ID  int32
}

func NewCHNode(lat, lon float64, idx int32) CHNode {
	return CHNode{
		Lat: lat,
		Lon: lon,
		ID:  idx,
	}
}

/*
EdgeCH. directed edge state yang dilihat dari FromNodeID (base node) ke ToNodeID (adj node).

OriginalEdgeID adalah id undirected road segment (key ke restriction storage), jadi edge u->v dan
v->u punya OriginalEdgeID yang sama. EdgeID id internal dari out/in edge list graph.

Access: bitpacked forward/backward access per flag encoder relatif terhadap orientasi From->To.

	| car fwd | car bwd | hgv fwd | hgv bwd | bike fwd | bike bwd | foot fwd | ... |
	  bit 0     bit 1     bit 2     bit 3     bit 4      bit 5      bit 6
*/
type EdgeCH struct {
	EdgeID         int32
	OriginalEdgeID int32
	Weight         float64 // minute
	Dist           float64 // meter
	ToNodeID       int32
	FromNodeID     int32
	Access         int32
}

func NewEdgeCH(edgeID, originalEdgeID int32, weight, dist float64, toNodeID, fromNodeID int32, access int32) EdgeCH {
	return EdgeCH{
		EdgeID:         edgeID,
		OriginalEdgeID: originalEdgeID,
		Weight:         weight,
		Dist:           dist,
		ToNodeID:       toNodeID,
		FromNodeID:     fromNodeID,
		Access:         access,
	}
}

// NewEdgeCHPlain edge yang bisa dilewati dua arah oleh semua encoder
func NewEdgeCHPlain(edgeID int32, weight, dist float64, toNodeID, fromNodeID int32) EdgeCH {
	return NewEdgeCH(edgeID, edgeID, weight, dist, toNodeID, fromNodeID, AllAccess())
}

func (e EdgeCH) IsForward(enc FlagEncoder) bool {
	return util.IsBitSet(e.Access, enc.forwardBit())
}

func (e EdgeCH) IsBackward(enc FlagEncoder) bool {
	return util.IsBitSet(e.Access, enc.backwardBit())
}

// Reversed. edge yang sama dilihat dari ToNodeID, forward & backward access ditukar.
func (e EdgeCH) Reversed() EdgeCH {
	access := int32(0)
	for _, enc := range FlagEncoders() {
		access = util.BitPackIntBool(access, e.IsBackward(enc), enc.forwardBit())
		access = util.BitPackIntBool(access, e.IsForward(enc), enc.backwardBit())
	}
	r := e
	r.FromNodeID, r.ToNodeID = e.ToNodeID, e.FromNodeID
	r.Access = access
	return r
}

// SetAccess set forward/backward access buat satu encoder
func SetAccess(access int32, enc FlagEncoder, forward, backward bool) int32 {
	access = util.BitPackIntBool(access, forward, enc.forwardBit())
	access = util.BitPackIntBool(access, backward, enc.backwardBit())
	return access
}

func AllAccess() int32 {
	access := int32(0)
	for _, enc := range FlagEncoders() {
		access = SetAccess(access, enc, true, true)
	}
	return access
}

const edgeCHSize = 36

func (e *EdgeCH) Serialize() []byte {
	// 4byte*5 + 8byte*2 = 36byte

	buf := make([]byte, edgeCHSize)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(e.EdgeID))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(e.OriginalEdgeID))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(e.Weight))
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(e.Dist))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(e.ToNodeID))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(e.FromNodeID))
	binary.LittleEndian.PutUint32(buf[32:36], uint32(e.Access))

	return buf
}

func DeserializeEdgeCH(buf []byte) EdgeCH {
	edgeID := int32(binary.LittleEndian.Uint32(buf[0:4]))
	originalEdgeID := int32(binary.LittleEndian.Uint32(buf[4:8]))
	weight := math.Float64frombits(binary.LittleEndian.Uint64(buf[8:16]))
	dist := math.Float64frombits(binary.LittleEndian.Uint64(buf[16:24]))
	toNodeID := int32(binary.LittleEndian.Uint32(buf[24:28]))
	fromNodeID := int32(binary.LittleEndian.Uint32(buf[28:32]))
	access := int32(binary.LittleEndian.Uint32(buf[32:36]))

	return NewEdgeCH(edgeID, originalEdgeID, weight, dist, toNodeID, fromNodeID, access)
}
