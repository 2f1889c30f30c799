package isochrone

import (
	"sort"
	"strings"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
)

type RangeType string

const (
	RangeTime     RangeType = "time"     // detik
	RangeDistance RangeType = "distance" // units request
)

const (
	UnitMeter     = "m"
	UnitKilometer = "km"
	UnitMile      = "mi"
)

const LocationDestination = "destination"

type Traveller struct {
	Location     datastructure.Coordinate
	LocationType string
	RangeType    RangeType
	Ranges       []float64
}

// Reverse traveller dengan location type destination: cari node yang bisa sampai ke lokasi
func (t Traveller) Reverse() bool {
	return strings.EqualFold(t.LocationType, LocationDestination)
}

type Request struct {
	Travellers []Traveller
	Units      string
	Attributes []string
}

func (r Request) IsValid() bool {
	return len(r.Travellers) >= 1
}

func (r Request) HasAttribute(attr string) bool {
	if attr == "" {
		return false
	}
	for _, a := range r.Attributes {
		if strings.EqualFold(attr, a) {
			return true
		}
	}
	return false
}

/*
SearchParameters parameter search buat traveller ke-idx. range distance di-convert ke meter
(km x1000, mi x1609.34), range time tidak di scale. ranges di sort ascending.
*/
func (r Request) SearchParameters(idx int) (SearchParameters, error) {
	if idx < 0 || idx >= len(r.Travellers) {
		return SearchParameters{}, server.NewErrorf(server.ErrBadParamInput, "traveller %d out of range", idx)
	}
	t := r.Travellers[idx]
	if len(t.Ranges) == 0 {
		return SearchParameters{}, server.NewErrorf(server.ErrBadParamInput, "traveller %d has no ranges", idx)
	}

	rangeType := t.RangeType
	if rangeType == "" {
		rangeType = RangeTime
	}
	if rangeType != RangeTime && rangeType != RangeDistance {
		return SearchParameters{}, server.NewErrorf(server.ErrBadParamInput, "invalid range_type %q", t.RangeType)
	}

	scale := 1.0
	if rangeType == RangeDistance {
		switch strings.ToLower(r.Units) {
		case "", UnitMeter:
		case UnitKilometer:
			scale = 1000
		case UnitMile:
			scale = 1609.34
		default:
			return SearchParameters{}, server.NewErrorf(server.ErrBadParamInput, "invalid units %q", r.Units)
		}
	}

	ranges := make([]float64, len(t.Ranges))
	for i, v := range t.Ranges {
		if !(v > 0) {
			return SearchParameters{}, server.NewErrorf(server.ErrBadParamInput, "range must be positive, got %v", v)
		}
		ranges[i] = v * scale
	}
	sort.Float64s(ranges)

	return SearchParameters{
		TravellerIndex: idx,
		Location:       t.Location,
		RangeType:      rangeType,
		Ranges:         ranges,
		Reverse:        t.Reverse(),
	}, nil
}

type SearchParameters struct {
	TravellerIndex int
	Location       datastructure.Coordinate
	RangeType      RangeType
	Ranges         []float64 // meter / detik
	Reverse        bool
}
