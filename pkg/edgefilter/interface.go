package edgefilter

import (
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
)

type EdgeFilter interface {
	Accept(edge datastructure.EdgeCH, forward bool) bool
}

// DestinationDependentEdgeFilter filter yang perlu tau edge tujuan sebelum main search
type DestinationDependentEdgeFilter interface {
	EdgeFilter
	SetDestinationEdge(edge *datastructure.EdgeCH, graph routingalgorithm.Graph)
	Mode() Mode
}

type RestrictionStore interface {
	EdgeVehicleType(edgeID int32, buf []byte) (vehicle.VehicleType, vehicle.VehicleType)
	EdgeRestrictionValues(edgeID int32, buf []byte, out *[vehicle.DimensionCount]float64) bool
	EdgeRestrictionValue(edgeID int32, dim vehicle.Dimension, buf []byte) float64
}

type ResolutionObserver interface {
	ObserveDestinationResolution(outcome string, settledNodes int)
}
