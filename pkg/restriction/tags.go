package restriction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
	"github.com/paulmach/osm"
)

// https://wiki.openstreetmap.org/wiki/Key:hgv , https://wiki.openstreetmap.org/wiki/Key:maxheight
var categoryTags = []struct {
	key string
	vt  vehicle.VehicleType
}{
	{"hgv", vehicle.Hgv},
	{"bus", vehicle.Bus},
	{"agricultural", vehicle.Agricultural},
	{"forestry", vehicle.Forestry},
	{"delivery", vehicle.Delivery},
	{"goods", vehicle.Goods},
}

var dimensionTags = [vehicle.DimensionCount]string{
	vehicle.Height:   "maxheight",
	vehicle.Width:    "maxwidth",
	vehicle.Weight:   "maxweight",
	vehicle.Length:   "maxlength",
	vehicle.AxleLoad: "maxaxleload",
}

// FromTags restriction untuk satu way dari tag osm nya
func FromTags(tags osm.Tags) EdgeRestriction {
	var r EdgeRestriction

	for _, c := range categoryTags {
		switch tags.Find(c.key) {
		case "no", "private":
			r.VehicleTypeMask |= c.vt
		case "destination", "delivery":
			r.VehicleTypeMask |= c.vt
			r.DestinationByte |= c.vt
		}
	}

	if tags.Find("hazmat") == "no" {
		r.VehicleTypeMask |= vehicle.Hazmat
	}

	for dim, key := range dimensionTags {
		v, ok := parseDimension(vehicle.Dimension(dim), tags.Find(key))
		if ok && v > 0 {
			r.Limits[dim] = v
		}
	}

	return r
}

// FromWay restriction way osm, pakai FromTags
func FromWay(way *osm.Way) EdgeRestriction {
	if way == nil {
		return EdgeRestriction{}
	}
	return FromTags(way.Tags)
}

// https://wiki.openstreetmap.org/wiki/Map_features/Units
var (
	valueWithUnit = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([a-z]*)$`)
	feetInches    = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*'\s*(?:([0-9]+(?:\.[0-9]+)?)\s*(?:"|''))?$`)

	// ke meter
	lengthUnits = map[string]float64{"": 1, "m": 1, "cm": 0.01, "ft": 0.3048, "in": 0.0254}
	// ke ton
	weightUnits = map[string]float64{"": 1, "t": 1, "kg": 0.001, "lb": 0.00045359237, "lbs": 0.00045359237, "st": 0.90718474}
)

// parseDimension nilai tag max* dalam meter (height, width, length) atau ton (weight, axleload).
// unit yang tidak dikenal / tidak cocok dengan dimensinya tidak dipakai.
func parseDimension(dim vehicle.Dimension, raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")))
	if s == "" {
		return 0, false
	}

	units := weightUnits
	if dim == vehicle.Height || dim == vehicle.Width || dim == vehicle.Length {
		units = lengthUnits
		if m := feetInches.FindStringSubmatch(s); m != nil {
			feet, _ := strconv.ParseFloat(m[1], 64)
			inches := 0.0
			if m[2] != "" {
				inches, _ = strconv.ParseFloat(m[2], 64)
			}
			return feet*0.3048 + inches*0.0254, true
		}
	}

	m := valueWithUnit.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	factor, ok := units[m[2]]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v * factor, true
}
