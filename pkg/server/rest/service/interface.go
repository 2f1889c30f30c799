package service

import (
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/snap"
)

type Graph interface {
	routingalgorithm.Graph
}

type RoadSnapper interface {
	SnapToEdge(p datastructure.Coordinate, accept routingalgorithm.EdgeAccept) (snap.SnappedEdge, error)
}

type RoutingAlgorithm interface {
	ShortestPathBiDijkstra(from, to int32, accept routingalgorithm.EdgeAccept) ([]datastructure.Coordinate, []datastructure.EdgeCH, float64, float64)
	ShortestPathAStar(from, to int32, accept routingalgorithm.EdgeAccept) ([]datastructure.Coordinate, []datastructure.EdgeCH, float64, float64)
	ShortestPathTree(from int32, accept routingalgorithm.EdgeAccept, opts routingalgorithm.SPTOptions) (map[int32]datastructure.SPTEntry, error)
}
