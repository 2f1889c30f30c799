package vehicle

import (
	"strings"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
)

// VehicleType bit kategori kendaraan. dipakai di profile (kategori kendaraan) dan di restriction mask edge.
type VehicleType uint8

const (
	Unknown      VehicleType = 0
	Hgv          VehicleType = 1
	Bus          VehicleType = 2
	Agricultural VehicleType = 4
	Forestry     VehicleType = 8
	Delivery     VehicleType = 16
	Goods        VehicleType = 32

	// Hazmat cuma ada di restriction mask edge: jalan ini terlarang buat muatan berbahaya.
	Hazmat VehicleType = 128
)

// Categories semua bit kategori yang valid buat profile
const Categories = Hgv | Bus | Agricultural | Forestry | Delivery | Goods

var vehicleTypeNames = map[string]VehicleType{
	"hgv":          Hgv,
	"bus":          Bus,
	"agricultural": Agricultural,
	"forestry":     Forestry,
	"delivery":     Delivery,
	"goods":        Goods,
}

func ParseVehicleType(v string) (VehicleType, error) {
	vt, ok := vehicleTypeNames[strings.ToLower(strings.TrimSpace(v))]
	if !ok {
		return Unknown, server.NewErrorf(server.ErrBadParamInput, "invalid value %q for parameter vehicle_type", v)
	}
	return vt, nil
}

func (vt VehicleType) Has(other VehicleType) bool {
	return vt&other == other
}

func (vt VehicleType) String() string {
	if vt == Unknown {
		return "unknown"
	}
	names := make([]string, 0, 2)
	for _, name := range []string{"hgv", "bus", "agricultural", "forestry", "delivery", "goods"} {
		if vt.Has(vehicleTypeNames[name]) {
			names = append(names, name)
		}
	}
	if vt.Has(Hazmat) {
		names = append(names, "hazmat")
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}
