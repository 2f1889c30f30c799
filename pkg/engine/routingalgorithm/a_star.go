package routingalgorithm

import (
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/geo"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/util"
)

// https://www.cs.princeton.edu/courses/archive/spr06/cos423/Handouts/GH05.pdf

const heuristicSpeed = 130.0 // km/h, max speed biar heuristic nya admissible

// ShortestPathAStar eta (minute) & dist (meter) -1 kalau tidak ada rute
func (rt *RouteAlgorithm) ShortestPathAStar(from, to int32, accept EdgeAccept) ([]datastructure.Coordinate, []datastructure.EdgeCH, float64, float64) {
	if !rt.validNode(from) || !rt.validNode(to) {
		return []datastructure.Coordinate{}, []datastructure.EdgeCH{}, -1, -1
	}

	pq := datastructure.NewMinHeap[int32]()

	costSoFar := make(map[int32]float64)
	costSoFar[from] = 0.0

	distSoFar := make(map[int32]float64)
	distSoFar[from] = 0.0

	pq.Insert(datastructure.NewPriorityQueueNode(0.0, from))

	cameFrom := make(map[int32]cameFromPair)
	cameFrom[from] = cameFromPair{datastructure.EdgeCH{}, -1}

	visited := make(map[int32]struct{})
	toNode := rt.g.GetNode(to)

	for pq.Size() > 0 {
		current, _ := pq.ExtractMin()
		if current.Item == to {
			pathCoords := []datastructure.Coordinate{}
			pathEdges := []datastructure.EdgeCH{}

			for v := current.Item; cameFrom[v].NodeID != -1; v = cameFrom[v].NodeID {
				node := rt.g.GetNode(v)
				pathCoords = append(pathCoords, datastructure.NewCoordinate(node.Lat, node.Lon))
				pathEdges = append(pathEdges, cameFrom[v].Edge)
			}

			fromNode := rt.g.GetNode(from)
			pathCoords = append(pathCoords, datastructure.NewCoordinate(fromNode.Lat, fromNode.Lon))

			return util.ReverseG(pathCoords), util.ReverseG(pathEdges), costSoFar[to], distSoFar[to]
		}
		visited[current.Item] = struct{}{}

		for _, edgeID := range rt.g.GetNodeFirstOutEdges(current.Item) {
			edge := rt.g.GetOutEdge(edgeID)
			if _, ok := visited[edge.ToNodeID]; ok {
				continue
			}
			if !accept(edge, true) {
				continue
			}

			newCost := costSoFar[current.Item] + edge.Weight
			neighborP := rt.g.GetNode(edge.ToNodeID)

			if old, ok := costSoFar[edge.ToNodeID]; !ok || newCost < old {
				costSoFar[edge.ToNodeID] = newCost
				distSoFar[edge.ToNodeID] = distSoFar[current.Item] + edge.Dist

				priority := newCost + rt.pathEstimatedCostETA(neighborP, toNode) // add heuristic
				pq.InsertOrDecrease(datastructure.NewPriorityQueueNode(priority, edge.ToNodeID))
				cameFrom[edge.ToNodeID] = cameFromPair{edge, current.Item}
			}
		}
	}

	return []datastructure.Coordinate{}, []datastructure.EdgeCH{}, -1, -1
}

func (rt *RouteAlgorithm) pathEstimatedCostETA(from, to datastructure.CHNode) float64 {
	dist := geo.CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon) // in km

	eta := dist / heuristicSpeed // dist = km, speed = km/h , eta = h
	return eta * 60              // in minutes
}
