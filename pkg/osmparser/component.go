package osmparser

import (
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"go.uber.org/zap"
)

/*
KeepLargestComponent buang node & road di luar scc terbesar encoder enc, supaya lokasi tidak ke-snap ke pulau jalan
yang tidak terhubung. node id di-remap berurutan, road id (key restriction store) tidak berubah.
*/
func KeepLargestComponent(res ParseResult, enc datastructure.FlagEncoder, log *zap.Logger) (ParseResult, error) {
	if log == nil {
		log = zap.NewNop()
	}

	g := datastructure.NewGraph()
	if err := g.InitGraph(res.Nodes, res.Roads); err != nil {
		return ParseResult{}, err
	}
	keep := g.LargestComponent(enc)

	newID := make([]int32, len(res.Nodes))
	nodes := make([]datastructure.CHNode, 0, len(res.Nodes))
	for i, n := range res.Nodes {
		newID[i] = -1
		if !keep[i] {
			continue
		}
		newID[i] = int32(len(nodes))
		nodes = append(nodes, datastructure.NewCHNode(n.Lat, n.Lon, newID[i]))
	}

	roads := make([]datastructure.EdgeCH, 0, len(res.Roads))
	for _, r := range res.Roads {
		if !keep[r.FromNodeID] || !keep[r.ToNodeID] {
			continue
		}
		r.FromNodeID = newID[r.FromNodeID]
		r.ToNodeID = newID[r.ToNodeID]
		roads = append(roads, r)
	}

	log.Info("kept largest strongly connected component",
		zap.String("encoder", enc.String()),
		zap.Int("nodes", len(nodes)),
		zap.Int("removed_nodes", len(res.Nodes)-len(nodes)),
		zap.Int("removed_roads", len(res.Roads)-len(roads)))

	return ParseResult{Nodes: nodes, Roads: roads, Restrictions: res.Restrictions}, nil
}
