package routingalgorithm

import "github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"

type Graph interface {
	GetNodeFirstOutEdges(nodeID int32) []int32
	GetOutEdge(edgeID int32) datastructure.EdgeCH
	GetNode(nodeID int32) datastructure.CHNode
	GetNumNodes() int
}

// EdgeAccept edge predicate. forward=false kalau edge dilewati berlawanan arah simpannya (backward search).
type EdgeAccept func(edge datastructure.EdgeCH, forward bool) bool

func AcceptAll(_ datastructure.EdgeCH, _ bool) bool {
	return true
}
