package routingalgorithm

import (
	"math"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/util"
)

/*
ShortestPathBiDijkstra bidirectional dijkstra from->to. forward search cek edge dengan accept(edge, true),
backward search dengan accept(edge, false). eta (minute) & dist (meter) -1 kalau tidak ada rute.
*/
func (rt *RouteAlgorithm) ShortestPathBiDijkstra(from, to int32, accept EdgeAccept) ([]datastructure.Coordinate, []datastructure.EdgeCH,
	float64, float64) {
	if !rt.validNode(from) || !rt.validNode(to) {
		return []datastructure.Coordinate{}, []datastructure.EdgeCH{}, -1, -1
	}
	if from == to {
		node := rt.g.GetNode(from)
		return []datastructure.Coordinate{datastructure.NewCoordinate(node.Lat, node.Lon)}, []datastructure.EdgeCH{}, 0, 0
	}

	forwQ := datastructure.NewMinHeap[int32]()
	backQ := datastructure.NewMinHeap[int32]()

	df := make(map[int32]float64)
	db := make(map[int32]float64)
	df[from] = 0.0
	db[to] = 0.0

	forwQ.Insert(datastructure.NewPriorityQueueNode(0.0, from))
	backQ.Insert(datastructure.NewPriorityQueueNode(0.0, to))

	settledF := make(map[int32]struct{})
	settledB := make(map[int32]struct{})

	cameFromf := make(map[int32]cameFromPair)
	cameFromf[from] = cameFromPair{datastructure.EdgeCH{}, -1}

	cameFromb := make(map[int32]cameFromPair)
	cameFromb[to] = cameFromPair{datastructure.EdgeCH{}, -1}

	estimate := math.MaxFloat64
	bestCommonVertex := int32(-1)

	turnF := true
	for forwQ.Size() > 0 || backQ.Size() > 0 {
		// stop kalau min forward + min backward >= cost best candidate path
		if forwQ.GetMinRank()+backQ.GetMinRank() >= estimate {
			break
		}

		if forwQ.Size() == 0 {
			turnF = false
		} else if backQ.Size() == 0 {
			turnF = true
		}

		frontier, dist, otherDist, settled, cameFrom := forwQ, df, db, settledF, cameFromf
		if !turnF {
			frontier, dist, otherDist, settled, cameFrom = backQ, db, df, settledB, cameFromb
		}

		node, _ := frontier.ExtractMin()
		settled[node.Item] = struct{}{}

		for _, arc := range rt.g.GetNodeFirstOutEdges(node.Item) {
			edge := rt.g.GetOutEdge(arc)
			toNID := edge.ToNodeID
			if _, ok := settled[toNID]; ok {
				continue
			}
			if !accept(edge, turnF) {
				continue
			}

			newCost := node.Rank + edge.Weight
			// relax edge
			if old, ok := dist[toNID]; !ok || newCost < old {
				dist[toNID] = newCost
				frontier.InsertOrDecrease(datastructure.NewPriorityQueueNode(newCost, toNID))
				cameFrom[toNID] = cameFromPair{edge, node.Item}
			}

			if other, ok := otherDist[toNID]; ok {
				// toNID visited di search arah lain & d(s,toNID) + d(t,toNID) < cost best candidate path, update best candidate path
				if pathDistance := dist[toNID] + other; pathDistance < estimate {
					estimate = pathDistance
					bestCommonVertex = toNID
				}
			}
		}

		turnF = !turnF
	}

	if bestCommonVertex == -1 {
		return []datastructure.Coordinate{}, []datastructure.EdgeCH{}, -1, -1
	}

	return rt.createPath(bestCommonVertex, cameFromf, cameFromb)
}

func (rt *RouteAlgorithm) createPath(commonVertex int32, cameFromf, cameFromb map[int32]cameFromPair) ([]datastructure.Coordinate,
	[]datastructure.EdgeCH, float64, float64) {
	eta, dist := 0.0, 0.0

	fPath := make([]datastructure.Coordinate, 0)
	fEdgePath := make([]datastructure.EdgeCH, 0)
	v := commonVertex
	for v != -1 {
		nodeV := rt.g.GetNode(v)
		fPath = append(fPath, datastructure.NewCoordinate(nodeV.Lat, nodeV.Lon))
		prev := cameFromf[v]
		if prev.NodeID != -1 {
			fEdgePath = append(fEdgePath, prev.Edge)
			eta += prev.Edge.Weight
			dist += prev.Edge.Dist
		}
		v = prev.NodeID
	}
	fPath = util.ReverseG(fPath)
	fEdgePath = util.ReverseG(fEdgePath)

	// backward search simpan edge dari node ke arah to, dibalik supaya searah perjalanan
	v = commonVertex
	for cameFromb[v].NodeID != -1 {
		next := cameFromb[v]
		fEdgePath = append(fEdgePath, next.Edge.Reversed())
		eta += next.Edge.Weight
		dist += next.Edge.Dist
		nodeNext := rt.g.GetNode(next.NodeID)
		fPath = append(fPath, datastructure.NewCoordinate(nodeNext.Lat, nodeNext.Lon))
		v = next.NodeID
	}

	return fPath, fEdgePath, eta, dist
}
