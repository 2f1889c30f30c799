package service

import (
	"context"
	"errors"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/edgefilter"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/isochrone"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
	"go.uber.org/zap"
)

type IsochroneQuery struct {
	VehicleQuery
	Request isochrone.Request
}

type TravellerResult struct {
	TravellerIndex int
	SnappedNodeID  int32
	Reverse        bool
	Ranges         []isochrone.RangeResult
}

// Isochrones satu goroutine per traveller lewat worker pool, tiap traveller punya filter sendiri
func (uc *NavigationService) Isochrones(ctx context.Context, q IsochroneQuery) ([]TravellerResult, error) {
	if !q.Request.IsValid() {
		return nil, server.NewErrorf(server.ErrBadParamInput, "isochrone request needs at least one traveller")
	}

	jobs := make([]concurrent.Job[int], 0, len(q.Request.Travellers))
	for i := range q.Request.Travellers {
		if _, err := q.Request.SearchParameters(i); err != nil {
			return nil, err
		}
		jobs = append(jobs, concurrent.NewJob(i, i))
	}

	results, err := concurrent.RunJobs(uc.cfg.IsochroneWorkers, jobs, func(idx int) (TravellerResult, error) {
		if err := ctx.Err(); err != nil {
			return TravellerResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "request cancelled")
		}
		return uc.travellerIsochrone(q, idx)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *NavigationService) travellerIsochrone(q IsochroneQuery, idx int) (TravellerResult, error) {
	params, err := q.Request.SearchParameters(idx)
	if err != nil {
		return TravellerResult{}, err
	}

	filter, err := uc.newFilter(q.VehicleQuery)
	if err != nil {
		return TravellerResult{}, err
	}

	snapped, err := uc.snapper.SnapToEdge(params.Location, filter.Accept)
	if err != nil {
		return TravellerResult{}, server.WrapErrorf(err, server.ErrNotFound, "traveller %d location is not covered on my map", idx)
	}

	if df, ok := filter.(edgefilter.DestinationDependentEdgeFilter); ok {
		// lokasi traveller di dalam area destination boleh keluar lewat destination edges disekitarnya
		df.SetDestinationEdge(&snapped.Edge, uc.graph)
	}

	ranges, err := isochrone.Compute(uc.routing, uc.graph, snapped.NodeID, filter.Accept, params, uc.cfg.MaxSettledNodes)
	if errors.Is(err, routingalgorithm.ErrSettledLimitExceeded) {
		return TravellerResult{}, server.WrapErrorf(err, server.ErrBadParamInput, "isochrone range of traveller %d is too large", idx)
	}
	if err != nil {
		return TravellerResult{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	uc.log.Debug("isochrone computed",
		zap.Int("traveller", idx),
		zap.Int32("node", snapped.NodeID),
		zap.Bool("reverse", params.Reverse))

	return TravellerResult{TravellerIndex: idx, SnappedNodeID: snapped.NodeID, Reverse: params.Reverse, Ranges: ranges}, nil
}
