package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.683, 1.68},
		{1.685, 1.69},
		{2.379948, 2.38},
		{-1.005, -1.01},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round2(tc.in), "Round2(%v)", tc.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2244.00", Format(2244))
	assert.Equal(t, "0.96", Format(0.9617142857))
	assert.Equal(t, "0.00", Format(math.NaN()))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 211.0, RoundHalfUp(210.82))
	assert.Equal(t, 211.0, RoundHalfUp(210.5))
	assert.Equal(t, 210.0, RoundHalfUp(210.49))
}

func TestRatioGuardsZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(10, 0))
	assert.Equal(t, 2.5, Ratio(10, 4))
}
