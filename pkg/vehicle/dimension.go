package vehicle

// Dimension index dimensi, urutannya sekaligus urutan pengecekan di edge filter
type Dimension int

const (
	Height Dimension = iota
	Width
	Weight
	Length
	AxleLoad

	DimensionCount = 5
)

// MaxDimensionValue nilai dimensi terbesar yang masih bisa disimpan restriction store (uint16, 2 desimal)
const MaxDimensionValue = 655.35

func (d Dimension) Valid() bool {
	return d >= Height && d < DimensionCount
}

func (d Dimension) String() string {
	switch d {
	case Height:
		return "height"
	case Width:
		return "width"
	case Weight:
		return "weight"
	case Length:
		return "length"
	case AxleLoad:
		return "axleload"
	default:
		return "invalid"
	}
}

// LoadCharacteristics flag muatan kendaraan
type LoadCharacteristics uint8

const (
	LoadHazmat LoadCharacteristics = 1
)

func (lc LoadCharacteristics) IsSet(flag LoadCharacteristics) bool {
	return lc&flag != 0
}
