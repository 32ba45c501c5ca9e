package estimate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/foamquote/internal/money"
)

func TestChargedLaborRate(t *testing.T) {
	assert.InDelta(t, 75.0, ChargedLaborRate(GlobalInputs{ManualLaborRate: 50, LaborMarkup: 50}), 1e-9)
	assert.InDelta(t, 50.0, ChargedLaborRate(GlobalInputs{ManualLaborRate: 50}), 1e-9)
}

func TestSolveLaborMarkup(t *testing.T) {
	markup, err := SolveLaborMarkup(50, 80)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, markup, 1e-9)

	markup, err = SolveLaborMarkup(50, 50)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, markup, 1e-9)
}

func TestSolveLaborMarkup_BelowActualRateIsRejected(t *testing.T) {
	_, err := SolveLaborMarkup(50, 49.99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBelowFloor))
	assert.Equal(t, "Charged rate must be at least $50.00 (the Actual Labor Rate)", err.Error())

	var floorErr *FloorError
	require.ErrorAs(t, err, &floorErr)
	assert.Equal(t, 50.0, floorErr.Floor)
}

func TestSolveLaborMarkup_ZeroManualRate(t *testing.T) {
	markup, err := SolveLaborMarkup(0, 40)
	require.NoError(t, err)
	assert.Equal(t, 0.0, markup)
}

func TestSolveLaborMarkup_RoundTrip(t *testing.T) {
	for _, charged := range []float64{45, 45.01, 61.37, 99.99, 123.45} {
		markup, err := SolveLaborMarkup(45, charged)
		require.NoError(t, err)
		forward := ChargedLaborRate(GlobalInputs{ManualLaborRate: 45, LaborMarkup: markup})
		assert.Equal(t, money.Round2(charged), money.Round2(forward), "charged=%v", charged)
	}
}

func TestMinPricePerSqFt(t *testing.T) {
	open := FoamDefaults(FoamOpen)
	assert.InDelta(t, 2244.0, MaterialCostPerSet(open), 1e-9)
	assert.InDelta(t, 6.0/14000*2244, MinPricePerSqFt(open), 1e-12)

	zero := open
	zero.BoardFeetPerSet = 0
	assert.Equal(t, 0.0, MinPricePerSqFt(zero))
}

func TestPricePerSqFt_FactoryDefaults(t *testing.T) {
	assert.Equal(t, 1.68, PricePerSqFt(FoamDefaults(FoamOpen)))
	assert.Equal(t, 2.38, PricePerSqFt(FoamDefaults(FoamClosed)))
}

func TestSolveMaterialMarkup_BelowFloorIsRejected(t *testing.T) {
	open := FoamDefaults(FoamOpen)

	_, err := SolveMaterialMarkup(open, 0.95)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBelowFloor)
	assert.Equal(t, "Price must be at least $0.96 (derived from Material Cost per Set)", err.Error())
}

func TestSolveMaterialMarkup_AtFloorGivesZeroMarkup(t *testing.T) {
	open := FoamDefaults(FoamOpen)

	markup, err := SolveMaterialMarkup(open, 0.96)
	require.NoError(t, err)
	assert.Equal(t, 0.0, markup)
	open.MaterialMarkup = markup
	assert.Equal(t, 0.96, PricePerSqFt(open))
}

func TestSolveMaterialMarkup_RoundTrip(t *testing.T) {
	for _, typ := range []FoamType{FoamOpen, FoamClosed} {
		app := FoamDefaults(typ)
		floor := money.Round2(MinPricePerSqFt(app))
		for _, price := range []float64{floor, floor + 0.01, 1.68, 2.38, 2.5, 3.17, 4.99, 12.34} {
			if price < floor {
				continue
			}
			markup, err := SolveMaterialMarkup(app, price)
			require.NoError(t, err)

			edited := app
			edited.MaterialMarkup = markup
			assert.Equal(t, money.Round2(price), PricePerSqFt(edited), "type=%s price=%v", typ, price)

			again, err := SolveMaterialMarkup(edited, PricePerSqFt(edited))
			require.NoError(t, err)
			assert.InDelta(t, markup, again, 1e-9, "re-commit at the same value must not drift")
		}
	}
}
