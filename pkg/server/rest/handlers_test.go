package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/isochrone"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server/rest/service"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNavigationService struct {
	spQuery  service.ShortestPathQuery
	isoQuery service.IsochroneQuery
	err      error
}

func (f *fakeNavigationService) ShortestPath(ctx context.Context, q service.ShortestPathQuery) (service.ShortestPathResult, error) {
	f.spQuery = q
	if f.err != nil {
		return service.ShortestPathResult{}, f.err
	}
	path := []datastructure.Coordinate{datastructure.NewCoordinate(-7.77, 110.37), datastructure.NewCoordinate(-7.77, 110.385)}
	return service.ShortestPathResult{
		Polyline:         datastructure.CreatePolyline(path),
		Path:             path,
		Edges:            []datastructure.EdgeCH{{OriginalEdgeID: 0}, {OriginalEdgeID: 1}, {OriginalEdgeID: 2}},
		ETA:              11,
		Dist:             1650,
		DestinationEdges: 2,
	}, nil
}

func (f *fakeNavigationService) Isochrones(ctx context.Context, q service.IsochroneQuery) ([]service.TravellerResult, error) {
	f.isoQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return []service.TravellerResult{{
		TravellerIndex: 0,
		SnappedNodeID:  3,
		Ranges: []isochrone.RangeResult{
			{Range: 120, NodeIDs: []int32{0, 1}, BBox: [4]float64{-7.77, 110.37, -7.77, 110.375}},
		},
	}}, nil
}

func newTestServer(t *testing.T, svc NavigationService) *httptest.Server {
	reg := prometheus.NewRegistry()
	ts := httptest.NewServer(NewRouter(svc, reg, NewMetrics(reg), nil, false))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (int, map[string]interface{}) {
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func errorCode(body map[string]interface{}) float64 {
	e, _ := body["error"].(map[string]interface{})
	code, _ := e["code"].(float64)
	return code
}

const validShortestPath = `{"profile":"driving-hgv","vehicle_type":"hgv","vehicle":{"height":4,"hazmat":true},
	"src_lat":-7.7699,"src_lon":110.3705,"dst_lat":-7.7699,"dst_lon":110.384}`

func TestShortestPathHandler(t *testing.T) {
	svc := &fakeNavigationService{}
	ts := newTestServer(t, svc)

	status, body := post(t, ts, "/api/navigations/shortest-path", validShortestPath)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1650.0, body["distance"])
	assert.Equal(t, 2.0, body["destination_edges"])
	assert.Equal(t, []interface{}{0.0, 1.0, 2.0}, body["edge_path"])

	assert.Equal(t, datastructure.DrivingHgv, svc.spQuery.Profile)
	assert.Equal(t, vehicle.Hgv, svc.spQuery.VehicleType)
	assert.Equal(t, 4.0, svc.spQuery.Vehicle.Height)
	assert.True(t, svc.spQuery.Vehicle.LoadCharacteristics.IsSet(vehicle.LoadHazmat))
	assert.False(t, svc.spQuery.AStar)
}

func TestShortestPathHandlerPolylineOnly(t *testing.T) {
	ts := newTestServer(t, &fakeNavigationService{})

	body := strings.Replace(validShortestPath, `"profile"`, `"format":"encodedpolyline","algorithm":"astar","profile"`, 1)
	status, resp := post(t, ts, "/api/navigations/shortest-path", body)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp["path"])
	assert.NotContains(t, resp, "edge_path")
}

func TestShortestPathHandlerErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		svcErr error
		status int
		code   float64
	}{
		{"invalid json", `{"profile":`, nil, http.StatusBadRequest, AppCodeInvalidJSON},
		{"missing profile", `{"src_lat":1,"src_lon":1,"dst_lat":1,"dst_lon":1}`, nil, http.StatusBadRequest, AppCodeInvalidJSON},
		{"missing coordinate", `{"profile":"driving-car","src_lon":1,"dst_lat":1,"dst_lon":1}`, nil,
			http.StatusBadRequest, AppCodeInvalidParameter},
		{"unknown profile", strings.Replace(validShortestPath, "driving-hgv", "driving-tank", 1), nil,
			http.StatusBadRequest, AppCodeInvalidParameter},
		{"unknown vehicle type", strings.Replace(validShortestPath, `"vehicle_type":"hgv"`, `"vehicle_type":"tank"`, 1), nil,
			http.StatusBadRequest, AppCodeInvalidParameter},
		{"unsupported format", strings.Replace(validShortestPath, `"profile"`, `"format":"gpx","profile"`, 1), nil,
			http.StatusNotAcceptable, AppCodeUnsupportedExport},
		{"route not found", validShortestPath, server.NewErrorf(server.ErrNotFound, "route not found"),
			http.StatusNotFound, AppCodeRouteNotFound},
		{"internal", validShortestPath, io.ErrUnexpectedEOF, http.StatusInternalServerError, AppCodeUnknown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeNavigationService{err: c.svcErr})
			status, body := post(t, ts, "/api/navigations/shortest-path", c.body)
			assert.Equal(t, c.status, status)
			assert.Equal(t, c.code, errorCode(body))

			info, _ := body["info"].(map[string]interface{})
			assert.Equal(t, engineName, info["engine"])
		})
	}
}

func TestIsochronesHandler(t *testing.T) {
	svc := &fakeNavigationService{}
	ts := newTestServer(t, svc)

	status, body := post(t, ts, "/api/isochrones", `{"profile":"driving-car","units":"km","attributes":["AREA"],
		"travellers":[{"lat":-7.77,"lon":110.37,"location_type":"destination","range_type":"distance","ranges":[1,2]}]}`)
	require.Equal(t, http.StatusOK, status)

	travellers, _ := body["travellers"].([]interface{})
	require.Len(t, travellers, 1)
	ranges := travellers[0].(map[string]interface{})["ranges"].([]interface{})
	first := ranges[0].(map[string]interface{})
	assert.Equal(t, 2.0, first["count"])
	assert.NotNil(t, first["bbox"])

	req := svc.isoQuery.Request
	require.Len(t, req.Travellers, 1)
	assert.True(t, req.Travellers[0].Reverse())
	assert.Equal(t, isochrone.RangeDistance, req.Travellers[0].RangeType)
	assert.Equal(t, "km", req.Units)
}

func TestIsochronesHandlerErrors(t *testing.T) {
	ts := newTestServer(t, &fakeNavigationService{})

	status, body := post(t, ts, "/api/isochrones", `{"profile":"driving-car","travellers":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, float64(AppCodeInvalidJSON), errorCode(body))

	status, body = post(t, ts, "/api/isochrones", `{"profile":"driving-car","units":"ft",
		"travellers":[{"lat":-7.77,"lon":110.37,"ranges":[60]}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, float64(AppCodeInvalidParameter), errorCode(body))
	e := body["error"].(map[string]interface{})
	assert.NotEmpty(t, e["validation"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeNavigationService{})
	post(t, ts, "/api/navigations/shortest-path", validShortestPath)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `navigatorx_http_requests_total{method="POST",path="/api/navigations/shortest-path",status="200"} 1`)
}
