package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{in: "12", want: 12},
		{in: " 7 ", want: 7},
		{in: "010", want: 10},
		{in: "08", want: 8},
		{in: "-3", want: -3},
		{in: 5, want: 5},
		{in: float64(9), want: 9},
		{in: float32(4), want: 4},
	}
	for _, tt := range tests {
		got, err := ToInt(tt.in)
		require.NoError(t, err, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestToInt_Rejects(t *testing.T) {
	for _, in := range []any{"0x10", "1.5", "lots", "99999999999999999999", 1e300, -1e300, math.NaN(), math.Inf(1)} {
		_, err := ToInt(in)
		assert.Error(t, err, "%#v", in)
	}
}
