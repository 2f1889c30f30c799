package edgefilter

import (
	"testing"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/restriction"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hgvProfile(t *testing.T, params vehicle.VehicleParameters) vehicle.Profile {
	p, err := vehicle.NewProfile(vehicle.Hgv, params)
	require.NoError(t, err)
	return p
}

func storeWith(t *testing.T, restrictions ...restriction.EdgeRestriction) *restriction.Store {
	s := restriction.NewStore(len(restrictions))
	for i, r := range restrictions {
		require.NoError(t, s.SetEdgeRestriction(int32(i), r))
	}
	return s
}

func twoWay(id int32) datastructure.EdgeCH {
	return datastructure.NewEdgeCHPlain(id, 1, 100, 1, 0)
}

func setRouteMode(f *HeavyVehicleEdgeFilter, ids ...int32) {
	var set DestinationEdgeSet
	if len(ids) > 0 {
		set = make(DestinationEdgeSet)
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}
	f.state = routeState{destinationEdges: set}
}

func TestRouteModeRejectsRestrictedThroughEdge(t *testing.T) {
	store := storeWith(t, restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv})
	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{}), store)
	setRouteMode(f)

	assert.False(t, f.Accept(twoWay(0), true))
}

func TestRouteModeAcceptsResolvedDestinationEdge(t *testing.T) {
	store := storeWith(t,
		restriction.EdgeRestriction{},
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv, DestinationByte: vehicle.Hgv},
	)
	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{}), store)
	setRouteMode(f, 1)

	assert.True(t, f.Accept(twoWay(1), true))
	assert.True(t, f.Accept(twoWay(0), true))

	// tanpa destination set, destination edge ditolak
	setRouteMode(f)
	assert.False(t, f.Accept(twoWay(1), true))
}

func TestRouteModeDestinationEdgeOtherCategory(t *testing.T) {
	// destination buat bus, kendaraan hgv: ditolak walaupun edge ada di set
	store := storeWith(t, restriction.EdgeRestriction{VehicleTypeMask: vehicle.Bus, DestinationByte: vehicle.Bus})
	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{}), store)
	setRouteMode(f, 0)
	assert.False(t, f.Accept(twoWay(0), true))

	// restricted buat bus saja (bukan destination), hgv boleh lewat
	store = storeWith(t, restriction.EdgeRestriction{VehicleTypeMask: vehicle.Bus})
	f = NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{}), store)
	setRouteMode(f)
	assert.True(t, f.Accept(twoWay(0), true))
}

func TestHeightLimitRejects(t *testing.T) {
	var limits [vehicle.DimensionCount]float64
	limits[vehicle.Height] = 3.5
	store := storeWith(t, restriction.EdgeRestriction{Limits: limits})

	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{Height: 4.0}), store)
	assert.Equal(t, ModeClosestEdge, f.Mode())
	assert.False(t, f.Accept(twoWay(0), true))

	setRouteMode(f)
	assert.False(t, f.Accept(twoWay(0), true))

	// beberapa dimensi, baca record sekaligus
	f = NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{Height: 4.0, Weight: 10}), store)
	assert.False(t, f.Accept(twoWay(0), true))

	f = NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{Height: 3.5, Weight: 10}), store)
	assert.True(t, f.Accept(twoWay(0), true))
}

func TestDimensionChecks(t *testing.T) {
	store := storeWith(t, restriction.EdgeRestriction{
		Limits: [vehicle.DimensionCount]float64{0, 2.5, 7.5, 12, 0},
	})

	cases := []struct {
		name   string
		params vehicle.VehicleParameters
		want   bool
	}{
		{"no dimensions", vehicle.VehicleParameters{}, true},
		{"height without limit", vehicle.VehicleParameters{Height: 4.5}, true},
		{"too wide", vehicle.VehicleParameters{Width: 2.55}, false},
		{"weight equal to limit", vehicle.VehicleParameters{Weight: 7.5}, true},
		{"too heavy", vehicle.VehicleParameters{Height: 4, Weight: 7.6}, false},
		{"too long", vehicle.VehicleParameters{Width: 2, Weight: 3, Length: 18.75}, false},
		{"all fit", vehicle.VehicleParameters{Height: 4, Width: 2.5, Weight: 7, Length: 12, AxleLoad: 11}, true},
		{"axle load without limit", vehicle.VehicleParameters{AxleLoad: 11.5}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, c.params), store)
			assert.Equal(t, c.want, f.Accept(twoWay(0), true))
		})
	}
}

func TestHazmat(t *testing.T) {
	store := storeWith(t,
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hazmat},
		restriction.EdgeRestriction{},
	)

	carrier := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder,
		hgvProfile(t, vehicle.VehicleParameters{LoadCharacteristics: vehicle.LoadHazmat}), store)
	assert.False(t, carrier.Accept(twoWay(0), true))
	assert.True(t, carrier.Accept(twoWay(1), true))

	setRouteMode(carrier)
	assert.False(t, carrier.Accept(twoWay(0), true))

	plain := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{}), store)
	assert.True(t, plain.Accept(twoWay(0), true))
}

func TestClosestEdgeMode(t *testing.T) {
	store := storeWith(t,
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv},                                   // no through
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv, DestinationByte: vehicle.Hgv},     // destination hgv
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Bus, DestinationByte: vehicle.Bus},     // destination bus
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Bus},                                   // no through bus
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv | vehicle.Bus, DestinationByte: 0}, // no through hgv & bus
	)
	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{}), store)

	want := []bool{false, true, false, true, false}
	for id, w := range want {
		assert.Equal(t, w, f.Accept(twoWay(int32(id)), true), "edge %d", id)
	}
	assert.Equal(t, ModeClosestEdge, f.Mode())
}

func TestDestinationEdgesModeShortCircuit(t *testing.T) {
	var limits [vehicle.DimensionCount]float64
	limits[vehicle.Height] = 2
	store := storeWith(t,
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv | vehicle.Hazmat, DestinationByte: vehicle.Hgv, Limits: limits},
		restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv},
		restriction.EdgeRestriction{Limits: limits},
	)
	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder,
		hgvProfile(t, vehicle.VehicleParameters{Height: 4, LoadCharacteristics: vehicle.LoadHazmat}), store)
	f.state = destinationEdgesState{}

	// hazmat & height tidak dicek di mode ini
	assert.True(t, f.Accept(twoWay(0), true))
	assert.False(t, f.Accept(twoWay(1), true))
	assert.False(t, f.Accept(twoWay(2), true))
}

func TestDirectionGate(t *testing.T) {
	store := storeWith(t, restriction.EdgeRestriction{})
	p := hgvProfile(t, vehicle.VehicleParameters{})

	oneway := datastructure.NewEdgeCH(0, 0, 1, 1, 1, 0, datastructure.SetAccess(0, datastructure.HgvEncoder, true, false))
	carOnly := datastructure.NewEdgeCH(0, 0, 1, 1, 1, 0, datastructure.SetAccess(0, datastructure.CarEncoder, true, true))

	both := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, p, store)
	assert.True(t, both.Accept(oneway, true))
	assert.True(t, both.Accept(oneway, false))
	assert.False(t, both.Accept(carOnly, true))

	out := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, p, store, WithDirection(false, true))
	assert.True(t, out.Accept(oneway, true))
	assert.False(t, out.Accept(oneway, false))
	assert.False(t, out.Accept(oneway.Reversed(), true))
	assert.True(t, out.Accept(oneway.Reversed(), false))

	in := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, p, store, WithDirection(true, false))
	assert.False(t, in.Accept(oneway, true))
	assert.True(t, in.Accept(oneway.Reversed(), true))

	def := NewDefaultEdgeFilter(datastructure.HgvEncoder, false, true)
	assert.True(t, def.Accept(oneway, true))
	assert.False(t, def.Accept(oneway, false))
	assert.Equal(t, "hgv, in:false, out:true", def.String())
}

func TestUnknownEdgeIsUnrestricted(t *testing.T) {
	store := storeWith(t, restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv})
	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{Height: 4, Width: 3}), store)
	setRouteMode(f)

	assert.True(t, f.Accept(twoWay(99), true))
}

func TestString(t *testing.T) {
	store := storeWith(t)
	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder, hgvProfile(t, vehicle.VehicleParameters{}), store,
		WithDirection(false, true))
	assert.Equal(t, "hgv, vehicle:1, in:false, out:true", f.String())
}

func TestForProfile(t *testing.T) {
	store := storeWith(t)
	p := hgvProfile(t, vehicle.VehicleParameters{})

	_, ok := ForProfile(datastructure.DrivingHgv, &p, store).(*HeavyVehicleEdgeFilter)
	assert.True(t, ok)

	_, ok = ForProfile(datastructure.DrivingHgv, nil, store).(*DefaultEdgeFilter)
	assert.True(t, ok)

	_, ok = ForProfile(datastructure.FootWalking, &p, store).(*DefaultEdgeFilter)
	assert.True(t, ok)
}

func TestHeaviestProfilePassesLimitAboveStoreRange(t *testing.T) {
	// 800 t tersimpan sebagai 655.35
	var limits [vehicle.DimensionCount]float64
	limits[vehicle.Weight] = 800
	store := storeWith(t, restriction.EdgeRestriction{Limits: limits})

	f := NewHeavyVehicleEdgeFilter(datastructure.HgvEncoder,
		hgvProfile(t, vehicle.VehicleParameters{Weight: vehicle.MaxDimensionValue}), store)
	setRouteMode(f)
	assert.True(t, f.Accept(twoWay(0), true))

	_, err := vehicle.NewProfile(vehicle.Hgv, vehicle.VehicleParameters{Weight: 700})
	assert.Error(t, err)
}
