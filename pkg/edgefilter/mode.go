package edgefilter

import (
	"sort"
)

type Mode int

const (
	// ModeClosestEdge mode awal, dipakai waktu snapping lokasi start/end ke edge terdekat
	ModeClosestEdge Mode = iota
	// ModeDestinationEdges cuma aktif selama search yang ngumpulin destination edges
	ModeDestinationEdges
	// ModeRoute main route search
	ModeRoute
)

func (m Mode) String() string {
	switch m {
	case ModeClosestEdge:
		return "closest_edge"
	case ModeDestinationEdges:
		return "destination_edges"
	case ModeRoute:
		return "route"
	default:
		return "invalid"
	}
}

// DestinationEdgeSet set OriginalEdgeID yang termasuk destination. nil = tidak ada destination restriction.
type DestinationEdgeSet map[int32]struct{}

func (s DestinationEdgeSet) Contains(edgeID int32) bool {
	if s == nil {
		return false
	}
	_, ok := s[edgeID]
	return ok
}

func (s DestinationEdgeSet) Len() int {
	return len(s)
}

// IDs sorted edge ids
func (s DestinationEdgeSet) IDs() []int32 {
	ids := make([]int32, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// filterState state mode filter. destination edge set cuma bisa ada di routeState.
type filterState interface {
	mode() Mode
}

type closestEdgeState struct{}

func (closestEdgeState) mode() Mode { return ModeClosestEdge }

type destinationEdgesState struct{}

func (destinationEdgesState) mode() Mode { return ModeDestinationEdges }

type routeState struct {
	destinationEdges DestinationEdgeSet
}

func (routeState) mode() Mode { return ModeRoute }
