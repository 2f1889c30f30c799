package datastructure

import "fmt"

// FlagEncoder. encoder akses jalan per moda (car/hgv/bike/foot/wheelchair), nentuin bit mana di EdgeCH.Access yang dibaca.
type FlagEncoder uint8

const (
	CarEncoder FlagEncoder = iota
	HgvEncoder
	BikeEncoder
	FootEncoder
	WheelchairEncoder
)

var flagEncoders = []FlagEncoder{CarEncoder, HgvEncoder, BikeEncoder, FootEncoder, WheelchairEncoder}

func FlagEncoders() []FlagEncoder {
	return flagEncoders
}

func (enc FlagEncoder) forwardBit() int32 {
	return int32(enc) * 2
}

func (enc FlagEncoder) backwardBit() int32 {
	return int32(enc)*2 + 1
}

func (enc FlagEncoder) String() string {
	return [...]string{"car", "hgv", "bike", "foot", "wheelchair"}[enc]
}

// RoutingProfile profile routing dari request
type RoutingProfile string

const (
	DrivingCar      RoutingProfile = "driving-car"
	DrivingHgv      RoutingProfile = "driving-hgv"
	CyclingRegular  RoutingProfile = "cycling-regular"
	CyclingRoad     RoutingProfile = "cycling-road"
	CyclingSafe     RoutingProfile = "cycling-safe"
	CyclingMountain RoutingProfile = "cycling-mountain"
	CyclingTour     RoutingProfile = "cycling-tour"
	CyclingElectric RoutingProfile = "cycling-electric"
	FootWalking     RoutingProfile = "foot-walking"
	FootHiking      RoutingProfile = "foot-hiking"
	Wheelchair      RoutingProfile = "wheelchair"
)

var profileEncoder = map[RoutingProfile]FlagEncoder{
	DrivingCar:      CarEncoder,
	DrivingHgv:      HgvEncoder,
	CyclingRegular:  BikeEncoder,
	CyclingRoad:     BikeEncoder,
	CyclingSafe:     BikeEncoder,
	CyclingMountain: BikeEncoder,
	CyclingTour:     BikeEncoder,
	CyclingElectric: BikeEncoder,
	FootWalking:     FootEncoder,
	FootHiking:      FootEncoder,
	Wheelchair:      WheelchairEncoder,
}

var ErrUnknownProfile = fmt.Errorf("unknown routing profile")

func ParseRoutingProfile(v string) (RoutingProfile, error) {
	p := RoutingProfile(v)
	if _, ok := profileEncoder[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, v)
	}
	return p, nil
}

func (p RoutingProfile) Encoder() FlagEncoder {
	return profileEncoder[p]
}

// IsHeavyVehicle. cuma driving-hgv yang pakai heavy vehicle restriction filter
func (p RoutingProfile) IsHeavyVehicle() bool {
	return p == DrivingHgv
}
