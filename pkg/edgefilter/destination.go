package edgefilter

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
	"go.uber.org/zap"
)

const (
	OutcomeResolved = "resolved"
	OutcomeEmpty    = "empty"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
)

type Resolution struct {
	Outcome      string
	SettledNodes int
	Edges        int
}

/*
SetDestinationEdge kumpulin destination edges yang bisa dicapai dari base node edge (single source dijkstra
tanpa target, pakai filter ini sendiri di ModeDestinationEdges). setelahnya filter selalu pindah ke ModeRoute,
apapun hasilnya. kalau search gagal destination set nya nil.
*/
func (f *HeavyVehicleEdgeFilter) SetDestinationEdge(edge *datastructure.EdgeCH, graph routingalgorithm.Graph) {
	var set DestinationEdgeSet
	res := Resolution{Outcome: OutcomeSkipped}

	if edge != nil && edge.FromNodeID != -1 && graph != nil {
		f.state = destinationEdgesState{}
		set, res = f.resolveDestinationEdges(*edge, graph)
	}

	f.state = routeState{destinationEdges: set}
	f.resolution = res

	if f.observer != nil {
		f.observer.ObserveDestinationResolution(res.Outcome, res.SettledNodes)
	}
}

func (f *HeavyVehicleEdgeFilter) resolveDestinationEdges(edge datastructure.EdgeCH, graph routingalgorithm.Graph) (set DestinationEdgeSet, res Resolution) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Warn("destination edge search aborted",
				zap.Int32("edge", edge.OriginalEdgeID),
				zap.Error(fmt.Errorf("%v", r)))
			set, res = nil, Resolution{Outcome: OutcomeFailed}
		}
	}()

	rt := routingalgorithm.NewRouteAlgorithm(graph)
	spt, err := rt.ShortestPathTree(edge.FromNodeID, f.Accept, routingalgorithm.SPTOptions{
		MaxSettledNodes: f.maxSettledNodes,
	})
	if err != nil {
		f.log.Warn("destination edge search failed, continue without destination edges",
			zap.Int32("edge", edge.OriginalEdgeID),
			zap.Int32("node", edge.FromNodeID),
			zap.Int("settled", len(spt)),
			zap.Error(err))
		return nil, Resolution{Outcome: OutcomeFailed, SettledNodes: len(spt)}
	}

	set = make(DestinationEdgeSet, len(spt))
	for _, entry := range spt {
		if entry.IsRoot() {
			continue
		}
		set[entry.EdgeID] = struct{}{}
	}

	if !set.Contains(edge.OriginalEdgeID) {
		vt, dstByte := f.store.EdgeVehicleType(edge.OriginalEdgeID, f.buf)
		if vt&f.category == f.category && dstByte != 0 {
			set[edge.OriginalEdgeID] = struct{}{}
		}
	}

	if len(set) == 0 {
		return nil, Resolution{Outcome: OutcomeEmpty, SettledNodes: len(spt)}
	}

	f.log.Debug("destination edges resolved",
		zap.Int32("edge", edge.OriginalEdgeID),
		zap.Int("settled", len(spt)),
		zap.Int("destination_edges", len(set)))

	return set, Resolution{Outcome: OutcomeResolved, SettledNodes: len(spt), Edges: len(set)}
}
