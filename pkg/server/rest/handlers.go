package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/isochrone"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server/rest/service"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
	"go.uber.org/zap"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, q service.ShortestPathQuery) (service.ShortestPathResult, error)
	Isochrones(ctx context.Context, q service.IsochroneQuery) ([]service.TravellerResult, error)
}

type NavigationHandler struct {
	svc      NavigationService
	validate *validator.Validate
	trans    ut.Translator
	log      *zap.Logger
}

func NewNavigationHandler(svc NavigationService, log *zap.Logger) *NavigationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &NavigationHandler{svc: svc, validate: validate, trans: trans, log: log}
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, log *zap.Logger) {
	handler := NewNavigationHandler(svc, log)

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Post("/navigations/shortest-path", handler.ShortestPath)
			r.Post("/isochrones", handler.Isochrones)
		})
	})
}

// VehicleRequest model info
//
//	@Description	dimensi kendaraan (meter / ton) & muatan
type VehicleRequest struct {
	Height   float64 `json:"height" validate:"gte=0,lte=100"`
	Width    float64 `json:"width" validate:"gte=0,lte=100"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=655.35"`
	Length   float64 `json:"length" validate:"gte=0,lte=655.35"`
	AxleLoad float64 `json:"axleload" validate:"gte=0,lte=655.35"`
	Hazmat   bool    `json:"hazmat"`
}

func (v *VehicleRequest) params() vehicle.VehicleParameters {
	if v == nil {
		return vehicle.VehicleParameters{}
	}
	p := vehicle.VehicleParameters{Height: v.Height, Width: v.Width, Weight: v.Weight, Length: v.Length, AxleLoad: v.AxleLoad}
	if v.Hazmat {
		p.LoadCharacteristics |= vehicle.LoadHazmat
	}
	return p
}

type vehicleFields struct {
	Profile     string          `json:"profile" validate:"required"`
	VehicleType string          `json:"vehicle_type"`
	Vehicle     *VehicleRequest `json:"vehicle"`
}

func (f vehicleFields) query() (service.VehicleQuery, error) {
	profile, err := datastructure.ParseRoutingProfile(f.Profile)
	if err != nil {
		return service.VehicleQuery{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid profile %q", f.Profile)
	}

	vt := vehicle.Hgv
	if f.VehicleType != "" {
		vt, err = vehicle.ParseVehicleType(f.VehicleType)
		if err != nil {
			return service.VehicleQuery{}, err
		}
	}
	return service.VehicleQuery{Profile: profile, VehicleType: vt, Vehicle: f.Vehicle.params()}, nil
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query antara 2 tempat di openstreetmap
type ShortestPathRequest struct {
	vehicleFields
	SrcLat    float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon    float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat    float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon    float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
	Algorithm string  `json:"algorithm" validate:"omitempty,oneof=dijkstra astar"`
	Format    string  `json:"format"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	if s.Profile == "" {
		return errors.New("invalid request: profile is required")
	}
	return nil
}

const (
	formatJSON     = "json"
	formatPolyline = "encodedpolyline"
)

// ShortestPathResponse model info
//
//	@Description	response body untuk shortest path query antara 2 tempat di openstreetmap
type ShortestPathResponse struct {
	Path             string                     `json:"path"`
	Dist             float64                    `json:"distance"`
	ETA              float64                    `json:"ETA"`
	Coordinates      []datastructure.Coordinate `json:"coordinates,omitempty"`
	EdgePath         []int32                    `json:"edge_path,omitempty"`
	DestinationEdges int                        `json:"destination_edges"`
}

func RenderShortestPathResponse(res service.ShortestPathResult, format string) *ShortestPathResponse {
	resp := &ShortestPathResponse{
		Path:             res.Polyline,
		Dist:             res.Dist,
		ETA:              res.ETA,
		DestinationEdges: res.DestinationEdges,
	}
	if format == formatPolyline {
		return resp
	}

	resp.Coordinates = res.Path
	resp.EdgePath = make([]int32, 0, len(res.Edges))
	for _, e := range res.Edges {
		resp.EdgePath = append(resp.EdgePath, e.OriginalEdgeID)
	}
	return resp
}

// validateStruct render error validation kalau gagal
func (h *NavigationHandler) validateStruct(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		vv := translateError(err, h.trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

func (h *NavigationHandler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if server.CodeOf(err) == server.ErrInternalServerError || server.CodeOf(err) == server.ErrUnknown {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	render.Render(w, r, ErrFromService(err))
}

// ShortestPath
//
//	@Summary		shortest path query antara 2 tempat, dengan vehicle restriction buat driving-hgv
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 tempat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}
	if data.Format != "" && data.Format != formatJSON && data.Format != formatPolyline {
		render.Render(w, r, ErrUnsupportedExport(data.Format))
		return
	}

	vq, err := data.vehicleFields.query()
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), service.ShortestPathQuery{
		VehicleQuery: vq,
		Src:          datastructure.NewCoordinate(data.SrcLat, data.SrcLon),
		Dst:          datastructure.NewCoordinate(data.DstLat, data.DstLon),
		AStar:        data.Algorithm == "astar",
	})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderShortestPathResponse(res, data.Format))
}

// TravellerRequest model info
//
//	@Description	satu lokasi isochrone
type TravellerRequest struct {
	Lat          float64   `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon          float64   `json:"lon" validate:"required,lt=180,gt=-180"`
	LocationType string    `json:"location_type" validate:"omitempty,oneof=start destination"`
	RangeType    string    `json:"range_type" validate:"omitempty,oneof=time distance"`
	Ranges       []float64 `json:"ranges" validate:"required,min=1,max=10,dive,gt=0"`
}

// IsochroneRequest model info
//
//	@Description	request body isochrone, node yang bisa dicapai dalam range waktu / jarak
type IsochroneRequest struct {
	vehicleFields
	Units      string             `json:"units" validate:"omitempty,oneof=m km mi"`
	Attributes []string           `json:"attributes"`
	Travellers []TravellerRequest `json:"travellers" validate:"required,min=1,max=5,dive"`
}

func (s *IsochroneRequest) Bind(r *http.Request) error {
	if len(s.Travellers) == 0 {
		return errors.New("invalid request: travellers is required")
	}
	return nil
}

type IsochroneRangeResponse struct {
	Range   float64     `json:"range"`
	NodeIDs []int32     `json:"node_ids"`
	Count   int         `json:"count"`
	BBox    *[4]float64 `json:"bbox,omitempty"`
}

type IsochroneTravellerResponse struct {
	Traveller int                      `json:"traveller"`
	NodeID    int32                    `json:"node_id"`
	Reverse   bool                     `json:"reverse"`
	Ranges    []IsochroneRangeResponse `json:"ranges"`
}

type IsochroneResponse struct {
	Travellers []IsochroneTravellerResponse `json:"travellers"`
}

func RenderIsochroneResponse(results []service.TravellerResult, req isochrone.Request) *IsochroneResponse {
	resp := &IsochroneResponse{Travellers: make([]IsochroneTravellerResponse, 0, len(results))}
	withArea := req.HasAttribute("area")
	for _, res := range results {
		tr := IsochroneTravellerResponse{Traveller: res.TravellerIndex, NodeID: res.SnappedNodeID, Reverse: res.Reverse}
		for _, rr := range res.Ranges {
			rangeResp := IsochroneRangeResponse{Range: rr.Range, NodeIDs: rr.NodeIDs, Count: len(rr.NodeIDs)}
			if withArea {
				bbox := rr.BBox
				rangeResp.BBox = &bbox
			}
			tr.Ranges = append(tr.Ranges, rangeResp)
		}
		resp.Travellers = append(resp.Travellers, tr)
	}
	return resp
}

// Isochrones
//
//	@Summary		isochrone per traveller, dengan vehicle restriction buat driving-hgv
//	@Tags			isochrones
//	@Param			body	body	IsochroneRequest	true	"request body isochrone"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/isochrones [post]
//	@Success		200	{object}	IsochroneResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) Isochrones(w http.ResponseWriter, r *http.Request) {
	data := &IsochroneRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}

	vq, err := data.vehicleFields.query()
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	req := isochrone.Request{Units: data.Units, Attributes: data.Attributes}
	for _, t := range data.Travellers {
		req.Travellers = append(req.Travellers, isochrone.Traveller{
			Location:     datastructure.NewCoordinate(t.Lat, t.Lon),
			LocationType: t.LocationType,
			RangeType:    isochrone.RangeType(t.RangeType),
			Ranges:       t.Ranges,
		})
	}

	results, err := h.svc.Isochrones(r.Context(), service.IsochroneQuery{VehicleQuery: vq, Request: req})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderIsochroneResponse(results, req))
}
