package datastructure

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

/*
Graph. road network graph buat routing.

setiap road segment (OriginalEdgeID) disimpan dua kali sebagai edge state di adjacency list kedua ujungnya:
di FromNodeID apa adanya, di ToNodeID sebagai Reversed(). Arah yang boleh dilewati ditentukan
dari access flags & edge filter, bukan dari list mana edge itu disimpan.
*/
type Graph struct {
	FirstOutEdges [][]int32
	OutEdges      []EdgeCH
	Nodes         []CHNode
	RoadCount     int
}

func NewGraph() *Graph {
	return &Graph{
		FirstOutEdges: make([][]int32, 0),
		OutEdges:      make([]EdgeCH, 0),
		Nodes:         make([]CHNode, 0),
	}
}

// InitGraph. roads: edge dengan FromNodeID->ToNodeID & EdgeID = id road segment.
func (g *Graph) InitGraph(nodes []CHNode, roads []EdgeCH) error {
	g.Nodes = append(g.Nodes[:0], nodes...)
	g.FirstOutEdges = make([][]int32, len(nodes))
	g.OutEdges = make([]EdgeCH, 0, 2*len(roads))

	duplicateEdges := make(map[int32]map[int32]struct{})
	maxRoadID := int32(-1)

	for _, road := range roads {
		if road.FromNodeID < 0 || int(road.FromNodeID) >= len(nodes) ||
			road.ToNodeID < 0 || int(road.ToNodeID) >= len(nodes) {
			return fmt.Errorf("road %d: node id out of range (%d -> %d)", road.EdgeID, road.FromNodeID, road.ToNodeID)
		}

		if _, ok := duplicateEdges[road.FromNodeID]; !ok {
			duplicateEdges[road.FromNodeID] = make(map[int32]struct{})
		}
		if _, ok := duplicateEdges[road.FromNodeID][road.ToNodeID]; ok {
			continue
		}
		duplicateEdges[road.FromNodeID][road.ToNodeID] = struct{}{}

		state := road
		state.OriginalEdgeID = road.EdgeID
		g.addEdgeState(state)
		g.addEdgeState(state.Reversed())

		if road.EdgeID > maxRoadID {
			maxRoadID = road.EdgeID
		}
	}

	g.RoadCount = int(maxRoadID + 1)
	return nil
}

func (g *Graph) addEdgeState(e EdgeCH) {
	e.EdgeID = int32(len(g.OutEdges))
	g.OutEdges = append(g.OutEdges, e)
	g.FirstOutEdges[e.FromNodeID] = append(g.FirstOutEdges[e.FromNodeID], e.EdgeID)
}

// GetNodeFirstOutEdges semua edge state yang base node nya nodeID
func (g *Graph) GetNodeFirstOutEdges(nodeID int32) []int32 {
	return g.FirstOutEdges[nodeID]
}

func (g *Graph) GetOutEdge(edgeID int32) EdgeCH {
	return g.OutEdges[edgeID]
}

func (g *Graph) GetOutEdges() []EdgeCH {
	return g.OutEdges
}

func (g *Graph) GetNode(nodeID int32) CHNode {
	return g.Nodes[nodeID]
}

func (g *Graph) GetNodes() []CHNode {
	return g.Nodes
}

func (g *Graph) GetNumNodes() int {
	return len(g.Nodes)
}

func (g *Graph) GetRoadCount() int {
	return g.RoadCount
}

// SaveToFile gob di-stream lewat zstd encoder
func (g *Graph) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(g); err != nil {
		zw.Close()
		return fmt.Errorf("encode graph %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Sync()
}

func LoadGraph(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer zr.Close()

	g := NewGraph()
	if err := gob.NewDecoder(zr).Decode(g); err != nil {
		return nil, fmt.Errorf("decode graph %s: %w", path, err)
	}
	return g, nil
}
