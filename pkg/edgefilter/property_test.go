package edgefilter

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/restriction"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
)

var categories = []vehicle.VehicleType{
	vehicle.Hgv, vehicle.Bus, vehicle.Agricultural, vehicle.Forestry, vehicle.Delivery, vehicle.Goods,
}

func centi(v int) float64 {
	return float64(v) / 100
}

func singleEdgeFilter(category vehicle.VehicleType, params vehicle.VehicleParameters, r restriction.EdgeRestriction) (*HeavyVehicleEdgeFilter, bool) {
	p, err := vehicle.NewProfile(category, params)
	if err != nil {
		return nil, false
	}
	store := restriction.NewStore(1)
	if err := store.SetEdgeRestriction(0, r); err != nil {
		return nil, false
	}
	return NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, p, store), true
}

func TestHeavyVehicleEdgeFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	edge := datastructure.NewEdgeCHPlain(0, 1, 100, 1, 0)

	properties.Property("destination edges mode accepts exactly matching destination edges", prop.ForAll(
		func(catIdx int, mask, dst uint8, height int) bool {
			cat := categories[catIdx]
			var limits [vehicle.DimensionCount]float64
			limits[vehicle.Height] = centi(height)
			f, ok := singleEdgeFilter(cat, vehicle.VehicleParameters{Height: 4, LoadCharacteristics: vehicle.LoadHazmat},
				restriction.EdgeRestriction{VehicleTypeMask: vehicle.VehicleType(mask), DestinationByte: vehicle.VehicleType(dst), Limits: limits})
			if !ok {
				return false
			}
			f.state = destinationEdgesState{}

			vt := vehicle.VehicleType(mask)
			want := dst != 0 && vt&cat == cat
			return f.Accept(edge, true) == want
		},
		gen.IntRange(0, len(categories)-1), gen.UInt8(), gen.UInt8(), gen.IntRange(0, 800),
	))

	properties.Property("unrestricted edge only depends on dimensions", prop.ForAll(
		func(catIdx int, height, limit int, route bool) bool {
			cat := categories[catIdx]
			var limits [vehicle.DimensionCount]float64
			limits[vehicle.Height] = centi(limit)
			f, ok := singleEdgeFilter(cat, vehicle.VehicleParameters{Height: centi(height)},
				restriction.EdgeRestriction{Limits: limits})
			if !ok {
				return false
			}
			if route {
				f.state = routeState{}
			}

			want := !(limit > 0 && centi(limit) < centi(height))
			return f.Accept(edge, true) == want
		},
		gen.IntRange(0, len(categories)-1), gen.IntRange(1, 800), gen.IntRange(0, 800), gen.Bool(),
	))

	properties.Property("accept is idempotent", prop.ForAll(
		func(catIdx int, mask, dst uint8, mode int, forward bool) bool {
			f, ok := singleEdgeFilter(categories[catIdx], vehicle.VehicleParameters{Width: 2.5, Weight: 12},
				restriction.EdgeRestriction{
					VehicleTypeMask: vehicle.VehicleType(mask),
					DestinationByte: vehicle.VehicleType(dst),
					Limits:          [vehicle.DimensionCount]float64{0, 2.55, 10},
				})
			if !ok {
				return false
			}
			switch mode {
			case 1:
				f.state = destinationEdgesState{}
			case 2:
				f.state = routeState{destinationEdges: DestinationEdgeSet{0: {}}}
			}

			first := f.Accept(edge, forward)
			return f.Accept(edge, forward) == first && f.Accept(edge, forward) == first
		},
		gen.IntRange(0, len(categories)-1), gen.UInt8(), gen.UInt8(), gen.IntRange(0, 2), gen.Bool(),
	))

	properties.Property("smaller vehicle is never rejected where larger one is accepted", prop.ForAll(
		func(catIdx int, mask, dst uint8, small, extra, limit int) bool {
			r := restriction.EdgeRestriction{
				VehicleTypeMask: vehicle.VehicleType(mask),
				DestinationByte: vehicle.VehicleType(dst),
				Limits:          [vehicle.DimensionCount]float64{0, 0, centi(limit)},
			}
			smaller, ok := singleEdgeFilter(categories[catIdx], vehicle.VehicleParameters{Weight: centi(small)}, r)
			if !ok {
				return false
			}
			larger, ok := singleEdgeFilter(categories[catIdx], vehicle.VehicleParameters{Weight: centi(small + extra)}, r)
			if !ok {
				return false
			}
			smaller.state = routeState{}
			larger.state = routeState{}

			return !larger.Accept(edge, true) || smaller.Accept(edge, true)
		},
		gen.IntRange(0, len(categories)-1), gen.UInt8(), gen.UInt8(),
		gen.IntRange(1, 4000), gen.IntRange(0, 4000), gen.IntRange(0, 10000),
	))

	properties.TestingRun(t)
}
