package edgefilter

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/restriction"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
	"go.uber.org/zap"
)

/*
HeavyVehicleEdgeFilter edge filter buat kendaraan berat (hgv, bus, ...) berdasarkan restriction per road segment.

satu instance = satu query. tidak aman dipakai beberapa goroutine sekaligus karena mode & scratch buffer nya mutable.
*/
type HeavyVehicleEdgeFilter struct {
	encoder  datastructure.FlagEncoder
	in       bool
	out      bool
	category vehicle.VehicleType
	hazmat   bool
	dims     []vehicle.DimensionLimit
	store    RestrictionStore

	state  filterState
	buf    []byte
	limits [vehicle.DimensionCount]float64

	maxSettledNodes int
	log             *zap.Logger
	observer        ResolutionObserver
	resolution      Resolution
}

type Option func(*HeavyVehicleEdgeFilter)

// WithDirection default in & out true
func WithDirection(in, out bool) Option {
	return func(f *HeavyVehicleEdgeFilter) {
		f.in = in
		f.out = out
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(f *HeavyVehicleEdgeFilter) {
		if log != nil {
			f.log = log
		}
	}
}

// WithMaxSettledNodes batas settled node search destination edges. 0 = unlimited.
func WithMaxSettledNodes(n int) Option {
	return func(f *HeavyVehicleEdgeFilter) {
		f.maxSettledNodes = n
	}
}

func WithResolutionObserver(obs ResolutionObserver) Option {
	return func(f *HeavyVehicleEdgeFilter) {
		f.observer = obs
	}
}

func NewHeavyVehicleEdgeFilter(encoder datastructure.FlagEncoder, profile vehicle.Profile, store RestrictionStore,
	opts ...Option) *HeavyVehicleEdgeFilter {
	f := &HeavyVehicleEdgeFilter{
		encoder:  encoder,
		in:       true,
		out:      true,
		category: profile.Category(),
		hazmat:   profile.Hazmat(),
		dims:     profile.Dimensions(),
		store:    store,
		state:    closestEdgeState{},
		buf:      make([]byte, restriction.RecordSize),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *HeavyVehicleEdgeFilter) Accept(edge datastructure.EdgeCH, forward bool) bool {
	if !directionAllowed(edge, forward, f.encoder, f.in, f.out) {
		return false
	}

	edgeID := edge.OriginalEdgeID
	vt, dstByte := f.store.EdgeVehicleType(edgeID, f.buf)
	dst := dstByte != 0

	if vt != vehicle.Unknown {
		matches := vt&f.category == f.category

		switch st := f.state.(type) {
		case closestEdgeState:
			if (matches || dst) && dstByte != f.category {
				return false
			}
		case destinationEdgesState:
			return dst && matches
		case routeState:
			if dst {
				// dst tapi kategori tidak match tetap ditolak
				if !matches || !st.destinationEdges.Contains(edgeID) {
					return false
				}
			} else if matches {
				return false
			}
		}
	} else if f.state.mode() == ModeDestinationEdges {
		return false
	}

	if f.hazmat && vt.Has(vehicle.Hazmat) {
		return false
	}

	return f.acceptDimensions(edgeID)
}

func (f *HeavyVehicleEdgeFilter) acceptDimensions(edgeID int32) bool {
	switch len(f.dims) {
	case 0:
		return true
	case 1:
		d := f.dims[0]
		value := f.store.EdgeRestrictionValue(edgeID, d.Index, f.buf)
		return !(value > 0 && value < d.Value)
	}

	if !f.store.EdgeRestrictionValues(edgeID, f.buf, &f.limits) {
		return true
	}
	for _, d := range f.dims {
		if value := f.limits[d.Index]; value > 0 && value < d.Value {
			return false
		}
	}
	return true
}

func (f *HeavyVehicleEdgeFilter) Mode() Mode {
	return f.state.mode()
}

// DestinationEdges set hasil SetDestinationEdge, nil kalau belum di resolve atau tidak ada destination restriction
func (f *HeavyVehicleEdgeFilter) DestinationEdges() DestinationEdgeSet {
	if st, ok := f.state.(routeState); ok {
		return st.destinationEdges
	}
	return nil
}

func (f *HeavyVehicleEdgeFilter) Resolution() Resolution {
	return f.resolution
}

func (f *HeavyVehicleEdgeFilter) String() string {
	return fmt.Sprintf("%s, vehicle:%d, in:%t, out:%t", f.encoder, f.category, f.in, f.out)
}
