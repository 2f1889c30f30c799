package routingalgorithm

import (
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
)

type Metric int

const (
	ByWeight   Metric = iota // minute
	ByDistance               // meter
)

type SPTOptions struct {
	// Reverse. search mundur lewat edge yang bisa dilewati menuju from.
	Reverse bool
	Metric  Metric
	// MaxSettledNodes 0 = unlimited. kalau terlewati search berhenti & return ErrSettledLimitExceeded.
	MaxSettledNodes int
	// MaxCost 0 = unlimited. node dengan cost > MaxCost tidak masuk tree.
	MaxCost float64
}

func (o SPTOptions) cost(e datastructure.EdgeCH) float64 {
	if o.Metric == ByDistance {
		return e.Dist
	}
	return e.Weight
}

/*
ShortestPathTree single source dijkstra tanpa target. return semua settled node -> SPTEntry.
root entry punya EdgeID -1.
*/
func (rt *RouteAlgorithm) ShortestPathTree(from int32, accept EdgeAccept, opts SPTOptions) (map[int32]datastructure.SPTEntry, error) {
	if !rt.validNode(from) {
		return nil, ErrNodeOutOfRange
	}

	pq := datastructure.NewMinHeap[int32]()
	best := make(map[int32]datastructure.SPTEntry)
	settled := make(map[int32]datastructure.SPTEntry)

	best[from] = datastructure.NewSPTEntry(from, -1, -1, 0, 0)
	pq.Insert(datastructure.NewPriorityQueueNode(0.0, from))

	forward := !opts.Reverse

	for pq.Size() > 0 {
		node, _ := pq.ExtractMin()
		entry := best[node.Item]
		settled[node.Item] = entry

		if opts.MaxSettledNodes > 0 && len(settled) > opts.MaxSettledNodes {
			return settled, ErrSettledLimitExceeded
		}

		for _, edgeID := range rt.g.GetNodeFirstOutEdges(node.Item) {
			edge := rt.g.GetOutEdge(edgeID)
			toNID := edge.ToNodeID
			if _, ok := settled[toNID]; ok {
				continue
			}
			if !accept(edge, forward) {
				continue
			}

			newCost := node.Rank + opts.cost(edge)
			if opts.MaxCost > 0 && newCost > opts.MaxCost {
				continue
			}

			prev, ok := best[toNID]
			prevCost := prev.Weight
			if opts.Metric == ByDistance {
				prevCost = prev.Dist
			}
			if ok && newCost >= prevCost {
				continue
			}

			best[toNID] = datastructure.NewSPTEntry(toNID, edge.OriginalEdgeID, node.Item,
				entry.Weight+edge.Weight, entry.Dist+edge.Dist)
			pq.InsertOrDecrease(datastructure.NewPriorityQueueNode(newCost, toNID))
		}
	}

	return settled, nil
}
