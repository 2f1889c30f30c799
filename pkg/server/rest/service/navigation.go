package service

import (
	"context"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/edgefilter"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/geo"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
	"go.uber.org/zap"
)

type Config struct {
	MaxSettledNodes  int
	IsochroneWorkers int
}

type NavigationService struct {
	graph    Graph
	snapper  RoadSnapper
	routing  RoutingAlgorithm
	store    edgefilter.RestrictionStore
	observer edgefilter.ResolutionObserver
	cfg      Config
	log      *zap.Logger
}

func NewNavigationService(graph Graph, snapper RoadSnapper, routing RoutingAlgorithm, store edgefilter.RestrictionStore,
	observer edgefilter.ResolutionObserver, cfg Config, log *zap.Logger) *NavigationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NavigationService{graph: graph, snapper: snapper, routing: routing, store: store, observer: observer, cfg: cfg, log: log}
}

type VehicleQuery struct {
	Profile     datastructure.RoutingProfile
	VehicleType vehicle.VehicleType
	Vehicle     vehicle.VehicleParameters
}

type ShortestPathQuery struct {
	VehicleQuery
	Src datastructure.Coordinate
	Dst datastructure.Coordinate
	// AStar pakai A* bukan bidirectional dijkstra
	AStar bool
}

type ShortestPathResult struct {
	Polyline         string
	Path             []datastructure.Coordinate
	Edges            []datastructure.EdgeCH
	ETA              float64 // menit
	Dist             float64 // meter
	DestinationEdges int
	Resolution       string
}

// newFilter satu filter per query
func (uc *NavigationService) newFilter(q VehicleQuery) (edgefilter.EdgeFilter, error) {
	if !q.Profile.IsHeavyVehicle() {
		return edgefilter.ForProfile(q.Profile, nil, nil), nil
	}

	vt := q.VehicleType
	if vt == vehicle.Unknown {
		vt = vehicle.Hgv
	}
	profile, err := vehicle.NewProfile(vt, q.Vehicle)
	if err != nil {
		return nil, err
	}

	return edgefilter.ForProfile(q.Profile, &profile, uc.store,
		edgefilter.WithLogger(uc.log),
		edgefilter.WithMaxSettledNodes(uc.cfg.MaxSettledNodes),
		edgefilter.WithResolutionObserver(uc.observer),
	), nil
}

func (uc *NavigationService) ShortestPath(ctx context.Context, q ShortestPathQuery) (ShortestPathResult, error) {
	filter, err := uc.newFilter(q.VehicleQuery)
	if err != nil {
		return ShortestPathResult{}, err
	}

	src, err := uc.snapper.SnapToEdge(q.Src, filter.Accept)
	if err != nil {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrNotFound, "sorry!! the source location you entered is not covered on my map :(")
	}
	dst, err := uc.snapper.SnapToEdge(q.Dst, filter.Accept)
	if err != nil {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrNotFound, "sorry!! the destination location you entered is not covered on my map :(")
	}

	res := ShortestPathResult{}
	if df, ok := filter.(edgefilter.DestinationDependentEdgeFilter); ok {
		df.SetDestinationEdge(&dst.Edge, uc.graph)
		if hf, ok := df.(*edgefilter.HeavyVehicleEdgeFilter); ok {
			res.DestinationEdges = hf.DestinationEdges().Len()
			res.Resolution = hf.Resolution().Outcome
		}
	}

	if err := ctx.Err(); err != nil {
		return ShortestPathResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "request cancelled")
	}

	search := uc.routing.ShortestPathBiDijkstra
	if q.AStar {
		search = uc.routing.ShortestPathAStar
	}
	path, edges, eta, dist := search(src.NodeID, dst.NodeID, filter.Accept)
	if eta == -1 {
		uc.log.Debug("route not found",
			zap.String("profile", string(q.Profile)),
			zap.Int32("from", src.NodeID),
			zap.Int32("to", dst.NodeID))
		return ShortestPathResult{}, server.NewErrorf(server.ErrNotFound, "route not found between the given locations")
	}

	res.Path = geo.RamerDouglasPeucker(path)
	res.Polyline = datastructure.CreatePolyline(res.Path)
	res.Edges = edges
	res.ETA = eta
	res.Dist = dist
	return res, nil
}
