package edgefilter

import (
	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/vehicle"
)

/*
ForProfile driving-hgv dengan vehicle profile pakai HeavyVehicleEdgeFilter, profile lain cuma cek arah akses.

filter buat routing cuma out (in:false, out:true): forward search lewat edge searah akses, backward/reverse search
panggil Accept(edge, false) jadi flag akses nya dibalik. oneway tidak bisa dilewati melawan arah.
*/
func ForProfile(profile datastructure.RoutingProfile, vp *vehicle.Profile, store RestrictionStore, opts ...Option) EdgeFilter {
	if profile.IsHeavyVehicle() && vp != nil && store != nil {
		opts = append([]Option{WithDirection(false, true)}, opts...)
		return NewHeavyVehicleEdgeFilter(profile.Encoder(), *vp, store, opts...)
	}
	return NewDefaultEdgeFilter(profile.Encoder(), false, true)
}
