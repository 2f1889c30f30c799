package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitPacking(t *testing.T) {

	packed := int32(125)
	packed = BitPackInt(packed, int32(4), 8)
	packed = BitPackIntBool(packed, false, 20)
	packed = BitPackIntBool(packed, true, 21)
	packed = BitPackIntBool(packed, true, 30)

	assert.True(t, IsBitSet(packed, 21))
	assert.True(t, IsBitSet(packed, 30))
	assert.False(t, IsBitSet(packed, 20))

	rest, flag := BitUnpackIntBool(packed, 21)
	assert.True(t, flag)
	lower, upper := BitUnpackInt(rest, 8)
	assert.Equal(t, int32(125), lower)
	assert.Equal(t, int32(4), upper&0xff)

	packed = BitPackIntBool(packed, false, 21)
	assert.False(t, IsBitSet(packed, 21))
}

func TestParseLeadingFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3.5", 3.5, true},
		{"3.5 m", 3.5, true},
		{" 7,5t", 7.5, true},
		{"none", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := ParseLeadingFloat(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.InDelta(t, c.want, got, 1e-9, c.in)
	}
}

func TestReverseG(t *testing.T) {
	arr := []int{1, 2, 3}
	rev := ReverseG(arr)
	assert.Equal(t, []int{3, 2, 1}, rev)
	assert.Equal(t, []int{1, 2, 3}, arr)
}
