package isochrone

import (
	"sort"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
)

type RangeResult struct {
	Range   float64 `json:"range"`
	NodeIDs []int32 `json:"node_ids"`
	// BBox [minLat, minLon, maxLat, maxLon] node yang reachable
	BBox [4]float64 `json:"bbox"`
}

type Explorer interface {
	ShortestPathTree(from int32, accept routingalgorithm.EdgeAccept, opts routingalgorithm.SPTOptions) (map[int32]datastructure.SPTEntry, error)
}

type NodeLookup interface {
	GetNode(nodeID int32) datastructure.CHNode
}

/*
Compute node yang reachable dari start dalam setiap range. satu shortest path tree dengan MaxCost range terbesar,
node dibagi ke range yang paling kecil yang mencakup cost nya (range besar juga mencakup node range kecil).
*/
func Compute(explorer Explorer, nodes NodeLookup, start int32, accept routingalgorithm.EdgeAccept, params SearchParameters,
	maxSettledNodes int) ([]RangeResult, error) {
	opts := routingalgorithm.SPTOptions{
		Reverse:         params.Reverse,
		MaxSettledNodes: maxSettledNodes,
		MaxCost:         maxCost(params),
	}
	if params.RangeType == RangeDistance {
		opts.Metric = routingalgorithm.ByDistance
	}

	spt, err := explorer.ShortestPathTree(start, accept, opts)
	if err != nil {
		return nil, err
	}

	results := make([]RangeResult, len(params.Ranges))
	for i, r := range params.Ranges {
		results[i] = RangeResult{Range: r, NodeIDs: make([]int32, 0)}
	}

	for nodeID, entry := range spt {
		cost := entry.Dist
		if params.RangeType == RangeTime {
			cost = entry.Weight * 60 // weight dalam menit
		}
		for i := range results {
			if cost <= results[i].Range {
				results[i].NodeIDs = append(results[i].NodeIDs, nodeID)
			}
		}
	}

	for i := range results {
		sort.Slice(results[i].NodeIDs, func(a, b int) bool { return results[i].NodeIDs[a] < results[i].NodeIDs[b] })
		results[i].BBox = boundingBox(nodes, results[i].NodeIDs)
	}
	return results, nil
}

func maxCost(params SearchParameters) float64 {
	m := params.Ranges[len(params.Ranges)-1]
	if params.RangeType == RangeTime {
		return m / 60
	}
	return m
}

func boundingBox(nodes NodeLookup, ids []int32) [4]float64 {
	if len(ids) == 0 {
		return [4]float64{}
	}
	first := nodes.GetNode(ids[0])
	bb := [4]float64{first.Lat, first.Lon, first.Lat, first.Lon}
	for _, id := range ids[1:] {
		n := nodes.GetNode(id)
		bb[0] = min(bb[0], n.Lat)
		bb[1] = min(bb[1], n.Lon)
		bb[2] = max(bb[2], n.Lat)
		bb[3] = max(bb[3], n.Lon)
	}
	return bb
}
