package service

import (
	"context"
	"testing"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/edgefilter"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/isochrone"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/restriction"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/snap"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
	0 --r0-- 1 --r1(hgv dst, maxheight 3.5)-- 2 --r2(hgv dst)-- 3
	          \                                                /
	           +----r4----------- 4 -------r3(hgv no)---------+

r1 & r2 5 menit, sisanya 1 menit.
*/
func newTestService(t *testing.T) *NavigationService {
	nodes := []datastructure.CHNode{
		datastructure.NewCHNode(-7.7700, 110.3700, 0),
		datastructure.NewCHNode(-7.7700, 110.3750, 1),
		datastructure.NewCHNode(-7.7700, 110.3800, 2),
		datastructure.NewCHNode(-7.7700, 110.3850, 3),
		datastructure.NewCHNode(-7.7750, 110.3800, 4),
	}
	roads := []datastructure.EdgeCH{
		datastructure.NewEdgeCHPlain(0, 1, 550, 1, 0),
		datastructure.NewEdgeCHPlain(1, 5, 550, 2, 1),
		datastructure.NewEdgeCHPlain(2, 5, 550, 3, 2),
		datastructure.NewEdgeCHPlain(3, 1, 780, 3, 4),
		datastructure.NewEdgeCHPlain(4, 1, 780, 4, 1),
	}
	g := datastructure.NewGraph()
	require.NoError(t, g.InitGraph(nodes, roads))

	var lowBridge [vehicle.DimensionCount]float64
	lowBridge[vehicle.Height] = 3.5

	store := restriction.NewStore(g.GetRoadCount())
	require.NoError(t, store.SetEdgeRestriction(1, restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv, DestinationByte: vehicle.Hgv, Limits: lowBridge}))
	require.NoError(t, store.SetEdgeRestriction(2, restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv, DestinationByte: vehicle.Hgv}))
	require.NoError(t, store.SetEdgeRestriction(3, restriction.EdgeRestriction{VehicleTypeMask: vehicle.Hgv}))

	snapper := snap.NewRoadSnapper(g, nil)
	snapper.BuildRoadSnapper()

	return NewNavigationService(g, snapper, routingalgorithm.NewRouteAlgorithm(g), store, nil,
		Config{MaxSettledNodes: 1000, IsochroneWorkers: 2}, nil)
}

var (
	nearNode0 = datastructure.NewCoordinate(-7.7699, 110.3705)
	nearNode3 = datastructure.NewCoordinate(-7.7699, 110.3840)
)

func TestShortestPathCar(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.ShortestPath(context.Background(), ShortestPathQuery{
		VehicleQuery: VehicleQuery{Profile: datastructure.DrivingCar},
		Src:          nearNode0,
		Dst:          nearNode3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.ETA, 1e-9)
	assert.Equal(t, []int32{0, 4, 3}, edgeIDs(res.Edges))
	assert.NotEmpty(t, res.Polyline)
	assert.Equal(t, "", res.Resolution)
}

func TestShortestPathHgvIntoDestinationArea(t *testing.T) {
	svc := newTestService(t)

	for _, astar := range []bool{false, true} {
		res, err := svc.ShortestPath(context.Background(), ShortestPathQuery{
			VehicleQuery: VehicleQuery{Profile: datastructure.DrivingHgv, VehicleType: vehicle.Hgv},
			Src:          nearNode0,
			Dst:          nearNode3,
			AStar:        astar,
		})
		require.NoError(t, err)
		assert.InDelta(t, 11.0, res.ETA, 1e-9)
		assert.Equal(t, []int32{0, 1, 2}, edgeIDs(res.Edges))
		assert.Equal(t, 2, res.DestinationEdges)
		assert.Equal(t, edgefilter.OutcomeResolved, res.Resolution)
	}
}

func TestShortestPathHgvTooTall(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ShortestPath(context.Background(), ShortestPathQuery{
		VehicleQuery: VehicleQuery{Profile: datastructure.DrivingHgv, Vehicle: vehicle.VehicleParameters{Height: 4}},
		Src:          nearNode0,
		Dst:          nearNode3,
	})
	require.Error(t, err)
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
}

func TestShortestPathInvalidVehicle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ShortestPath(context.Background(), ShortestPathQuery{
		VehicleQuery: VehicleQuery{Profile: datastructure.DrivingHgv, VehicleType: vehicle.Hazmat},
		Src:          nearNode0,
		Dst:          nearNode3,
	})
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
}

func TestShortestPathOutsideMap(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ShortestPath(context.Background(), ShortestPathQuery{
		VehicleQuery: VehicleQuery{Profile: datastructure.DrivingCar},
		Src:          datastructure.NewCoordinate(-6.2, 106.8),
		Dst:          nearNode3,
	})
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
}

func TestIsochrones(t *testing.T) {
	svc := newTestService(t)

	req := isochrone.Request{Travellers: []isochrone.Traveller{
		{Location: nearNode0, RangeType: isochrone.RangeTime, Ranges: []float64{600, 120}},
	}}

	car, err := svc.Isochrones(context.Background(), IsochroneQuery{
		VehicleQuery: VehicleQuery{Profile: datastructure.DrivingCar},
		Request:      req,
	})
	require.NoError(t, err)
	require.Len(t, car, 1)
	assert.Equal(t, int32(0), car[0].SnappedNodeID)
	assert.Equal(t, []int32{0, 1, 4}, car[0].Ranges[0].NodeIDs)
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, car[0].Ranges[1].NodeIDs)

	hgv, err := svc.Isochrones(context.Background(), IsochroneQuery{
		VehicleQuery: VehicleQuery{Profile: datastructure.DrivingHgv},
		Request:      req,
	})
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 4}, hgv[0].Ranges[1].NodeIDs)

	_, err = svc.Isochrones(context.Background(), IsochroneQuery{VehicleQuery: VehicleQuery{Profile: datastructure.DrivingCar}})
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
}

func edgeIDs(edges []datastructure.EdgeCH) []int32 {
	ids := make([]int32, len(edges))
	for i, e := range edges {
		ids[i] = e.OriginalEdgeID
	}
	return ids
}

/*
newOnewayService r0 oneway 0 -> 1 (car & hgv), jalan balik lewat 2:

	0 --r0--> 1
	 \       /
	  r2   r1
	    \ /
	     2
*/
func newOnewayService(t *testing.T) *NavigationService {
	nodes := []datastructure.CHNode{
		datastructure.NewCHNode(-7.7700, 110.3700, 0),
		datastructure.NewCHNode(-7.7700, 110.3800, 1),
		datastructure.NewCHNode(-7.7800, 110.3750, 2),
	}
	oneway := datastructure.SetAccess(datastructure.AllAccess(), datastructure.CarEncoder, true, false)
	oneway = datastructure.SetAccess(oneway, datastructure.HgvEncoder, true, false)
	roads := []datastructure.EdgeCH{
		datastructure.NewEdgeCH(0, 0, 1, 1100, 1, 0, oneway),
		datastructure.NewEdgeCHPlain(1, 3, 1200, 2, 1),
		datastructure.NewEdgeCHPlain(2, 3, 1200, 0, 2),
	}
	g := datastructure.NewGraph()
	require.NoError(t, g.InitGraph(nodes, roads))

	snapper := snap.NewRoadSnapper(g, nil)
	snapper.BuildRoadSnapper()

	return NewNavigationService(g, snapper, routingalgorithm.NewRouteAlgorithm(g), restriction.NewStore(g.GetRoadCount()), nil,
		Config{MaxSettledNodes: 1000, IsochroneWorkers: 1}, nil)
}

func TestShortestPathFollowsOneway(t *testing.T) {
	svc := newOnewayService(t)
	nearOnewayNode0 := datastructure.NewCoordinate(-7.7701, 110.3702)
	nearOnewayNode1 := datastructure.NewCoordinate(-7.7701, 110.3798)

	for _, profile := range []datastructure.RoutingProfile{datastructure.DrivingCar, datastructure.DrivingHgv} {
		for _, astar := range []bool{false, true} {
			with := ShortestPathQuery{VehicleQuery: VehicleQuery{Profile: profile}, Src: nearOnewayNode0, Dst: nearOnewayNode1, AStar: astar}
			res, err := svc.ShortestPath(context.Background(), with)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, res.ETA, 1e-9)
			assert.Equal(t, []int32{0}, edgeIDs(res.Edges))

			against := ShortestPathQuery{VehicleQuery: VehicleQuery{Profile: profile}, Src: nearOnewayNode1, Dst: nearOnewayNode0, AStar: astar}
			res, err = svc.ShortestPath(context.Background(), against)
			require.NoError(t, err)
			assert.InDelta(t, 6.0, res.ETA, 1e-9)
			assert.Equal(t, []int32{1, 2}, edgeIDs(res.Edges))
		}
	}
}
