package vehicle

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server"
)

var validate = validator.New()

// VehicleParameters atribut fisik kendaraan dari request. meter / ton, 0 = tidak di set.
type VehicleParameters struct {
	Height              float64             `json:"height" validate:"gte=0,lte=100"`
	Width               float64             `json:"width" validate:"gte=0,lte=100"`
	Weight              float64             `json:"weight" validate:"gte=0,lte=655.35"`
	Length              float64             `json:"length" validate:"gte=0,lte=655.35"`
	AxleLoad            float64             `json:"axleload" validate:"gte=0,lte=655.35"`
	LoadCharacteristics LoadCharacteristics `json:"-"`
}

func (p VehicleParameters) values() [DimensionCount]float64 {
	return [DimensionCount]float64{p.Height, p.Width, p.Weight, p.Length, p.AxleLoad}
}

type DimensionLimit struct {
	Index Dimension
	Value float64
}

// Profile kendaraan untuk satu query. immutable setelah dibuat.
type Profile struct {
	category   VehicleType
	hazmat     bool
	dimensions []DimensionLimit
}

func NewProfile(category VehicleType, params VehicleParameters) (Profile, error) {
	if err := validate.Struct(params); err != nil {
		return Profile{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid vehicle parameters")
	}

	limits := make([]DimensionLimit, 0, DimensionCount)
	for i, v := range params.values() {
		if v > 0 {
			limits = append(limits, DimensionLimit{Index: Dimension(i), Value: v})
		}
	}

	return NewProfileFromLimits(category, params.LoadCharacteristics.IsSet(LoadHazmat), limits)
}

// NewProfileFromLimits. limits harus urut sesuai index dimensi, tanpa duplikat, value > 0.
func NewProfileFromLimits(category VehicleType, hazmat bool, limits []DimensionLimit) (Profile, error) {
	if category == Unknown || category&^Categories != 0 {
		return Profile{}, server.NewErrorf(server.ErrBadParamInput, "invalid vehicle category bitmask %d", category)
	}
	if len(limits) > DimensionCount {
		return Profile{}, server.NewErrorf(server.ErrBadParamInput, "too many dimension limits: %d", len(limits))
	}

	dims := make([]DimensionLimit, 0, len(limits))
	prev := Dimension(-1)
	for _, l := range limits {
		if !l.Index.Valid() {
			return Profile{}, server.NewErrorf(server.ErrBadParamInput, "dimension index %d out of range", l.Index)
		}
		if l.Index <= prev {
			return Profile{}, server.NewErrorf(server.ErrBadParamInput, "dimension %s out of order", l.Index)
		}
		if !(l.Value > 0) {
			return Profile{}, server.NewErrorf(server.ErrBadParamInput, "dimension %s must be positive, got %v", l.Index, l.Value)
		}
		if l.Value > MaxDimensionValue {
			return Profile{}, server.NewErrorf(server.ErrBadParamInput, "dimension %s must be at most %v, got %v", l.Index, MaxDimensionValue, l.Value)
		}
		dims = append(dims, l)
		prev = l.Index
	}

	return Profile{category: category, hazmat: hazmat, dimensions: dims}, nil
}

func (p Profile) Category() VehicleType {
	return p.category
}

func (p Profile) Hazmat() bool {
	return p.hazmat
}

// Dimensions copy dari dimensi yang di set, urut height, width, weight, length, axleload
func (p Profile) Dimensions() []DimensionLimit {
	out := make([]DimensionLimit, len(p.dimensions))
	copy(out, p.dimensions)
	return out
}

func (p Profile) String() string {
	return fmt.Sprintf("category:%s, hazmat:%t, dimensions:%v", p.category, p.hazmat, p.dimensions)
}
