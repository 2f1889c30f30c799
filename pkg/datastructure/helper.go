package datastructure

import (
	"github.com/twpayne/go-polyline"
)

// SPTEntry. entry shortest path tree hasil single source search.
// EdgeID = OriginalEdgeID dari edge yang dipakai buat sampai ke NodeID, -1 untuk root.
type SPTEntry struct {
	NodeID int32
	EdgeID int32
	Parent int32
	Weight float64 // minute
	Dist   float64 // meter
}

func NewSPTEntry(nodeID, edgeID, parent int32, weight, dist float64) SPTEntry {
	return SPTEntry{
		NodeID: nodeID,
		EdgeID: edgeID,
		Parent: parent,
		Weight: weight,
		Dist:   dist,
	}
}

func (e SPTEntry) IsRoot() bool {
	return e.EdgeID == -1
}

func CreatePolyline(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

func DecodePolyline(s string) ([]Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	path := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, NewCoordinate(c[0], c[1]))
	}
	return path, nil
}
