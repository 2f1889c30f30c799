package snap

import (
	"errors"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/geo"
	"go.uber.org/zap"
)

var ErrNoEdgeFound = errors.New("no road segment found near location")

const (
	edgeBBRadius    = 0.025 // 25 meter dari fromNode & toNode (km)
	nearestK        = 16
	MaxSnapDistance = 2000.0 // meter
)

// roadLeaf satu road segment di rtree, stateID = edge state di base node (FromNodeID)
type roadLeaf struct {
	stateID int32
	rect    rtreego.Rect
}

func (l *roadLeaf) Bounds() rtreego.Rect {
	return l.rect
}

type SnappedEdge struct {
	Edge       datastructure.EdgeCH
	Projection datastructure.Coordinate
	Distance   float64 // meter
	// NodeID ujung edge yang paling dekat dengan projection
	NodeID int32
}

type RoadSnapper struct {
	rtree *rtreego.Rtree
	graph routingalgorithm.Graph
	log   *zap.Logger
}

func NewRoadSnapper(graph routingalgorithm.Graph, log *zap.Logger) *RoadSnapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoadSnapper{rtree: rtreego.NewTree(2, 25, 50), graph: graph, log: log}
}

// BuildRoadSnapper insert semua road segment graph ke rtree, satu leaf per OriginalEdgeID
func (rs *RoadSnapper) BuildRoadSnapper() {
	seen := make(map[int32]struct{})

	for nodeID := int32(0); int(nodeID) < rs.graph.GetNumNodes(); nodeID++ {
		for _, stateID := range rs.graph.GetNodeFirstOutEdges(nodeID) {
			edge := rs.graph.GetOutEdge(stateID)
			if _, ok := seen[edge.OriginalEdgeID]; ok {
				continue
			}
			seen[edge.OriginalEdgeID] = struct{}{}

			if len(seen)%10000 == 0 {
				rs.log.Sugar().Infof("insert road segment %d to r-tree...", len(seen))
			}

			rs.insertEdgeToRtree(edge)
		}
	}
	rs.log.Sugar().Infof("r-tree built with %d road segments", rs.rtree.Size())
}

func (rs *RoadSnapper) insertEdgeToRtree(edge datastructure.EdgeCH) {
	fromNode := rs.graph.GetNode(edge.FromNodeID)
	toNode := rs.graph.GetNode(edge.ToNodeID)

	upperFromLat, upperFromLon := geo.GetDestinationPoint(fromNode.Lat, fromNode.Lon, 45, edgeBBRadius)
	lowerFromLat, lowerFromLon := geo.GetDestinationPoint(fromNode.Lat, fromNode.Lon, 225, edgeBBRadius)

	upperToLat, upperToLon := geo.GetDestinationPoint(toNode.Lat, toNode.Lon, 45, edgeBBRadius)
	lowerToLat, lowerToLon := geo.GetDestinationPoint(toNode.Lat, toNode.Lon, 225, edgeBBRadius)

	latMin := min(lowerFromLat, lowerToLat)
	latMax := max(upperFromLat, upperToLat)

	lonMin := min(lowerFromLon, lowerToLon)
	lonMax := max(upperFromLon, upperToLon)

	rect, err := rtreego.NewRectFromPoints(rtreego.Point{latMin, lonMin}, rtreego.Point{latMax, lonMax})
	if err != nil {
		rs.log.Warn("skip road segment with invalid bounding box",
			zap.Int32("edge", edge.OriginalEdgeID), zap.Error(err))
		return
	}

	rs.rtree.Insert(&roadLeaf{stateID: edge.EdgeID, rect: rect})
}

/*
SnapToEdge cari road segment terdekat dari p yang lolos accept (edge filter di ModeClosestEdge) di salah satu arah.
return edge state yang base node nya FromNodeID road segment.
*/
func (rs *RoadSnapper) SnapToEdge(p datastructure.Coordinate, accept routingalgorithm.EdgeAccept) (SnappedEdge, error) {
	candidates := rs.rtree.NearestNeighbors(nearestK, rtreego.Point{p.Lat, p.Lon})

	best := SnappedEdge{Distance: math.MaxFloat64, NodeID: -1}
	for _, c := range candidates {
		leaf, ok := c.(*roadLeaf)
		if !ok {
			continue
		}
		edge := rs.graph.GetOutEdge(leaf.stateID)
		// cukup bisa dilewati salah satu arah
		if accept != nil && !accept(edge, true) && !accept(edge, false) {
			continue
		}

		fromNode := rs.graph.GetNode(edge.FromNodeID)
		toNode := rs.graph.GetNode(edge.ToNodeID)
		from := datastructure.NewCoordinate(fromNode.Lat, fromNode.Lon)
		to := datastructure.NewCoordinate(toNode.Lat, toNode.Lon)

		projection := geo.ProjectPointToLineCoord(from, to, p)
		dist := geo.DistanceS2(p.Lat, p.Lon, projection.Lat, projection.Lon)
		if dist >= best.Distance {
			continue
		}

		nodeID := edge.FromNodeID
		if geo.DistanceS2(projection.Lat, projection.Lon, to.Lat, to.Lon) <
			geo.DistanceS2(projection.Lat, projection.Lon, from.Lat, from.Lon) {
			nodeID = edge.ToNodeID
		}
		best = SnappedEdge{Edge: edge, Projection: projection, Distance: dist, NodeID: nodeID}
	}

	if best.NodeID == -1 || best.Distance > MaxSnapDistance {
		return SnappedEdge{}, ErrNoEdgeFound
	}
	return best, nil
}

// SnapToNode node terdekat dari ujung road segment terdekat, tanpa filter
func (rs *RoadSnapper) SnapToNode(p datastructure.Coordinate) (int32, error) {
	snapped, err := rs.SnapToEdge(p, nil)
	if err != nil {
		return -1, err
	}
	return snapped.NodeID, nil
}
