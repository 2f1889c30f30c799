package routingalgorithm

import (
	"errors"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
)

var (
	ErrSettledLimitExceeded = errors.New("settled node limit exceeded")
	ErrNodeOutOfRange       = errors.New("node id out of range")
)

type RouteAlgorithm struct {
	g Graph
}

func NewRouteAlgorithm(g Graph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

type cameFromPair struct {
	Edge   datastructure.EdgeCH
	NodeID int32
}

func (rt *RouteAlgorithm) validNode(nodeID int32) bool {
	return nodeID >= 0 && int(nodeID) < rt.g.GetNumNodes()
}
