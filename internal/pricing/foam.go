package pricing

import (
	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/geometry"
	"github.com/Simplici0/foamquote/internal/money"
)

const (
	// GallonsPerSet is the size of one set of spray foam material.
	GallonsPerSet = 100

	rValuePerInchClosed = 7.2
	rValuePerInchOpen   = 3.8
)

// ApplicationResult is the cost breakdown of one foam layer over one area.
type ApplicationResult struct {
	AreaID             string            `json:"areaId"`
	ApplicationID      string            `json:"applicationId"`
	FoamType           estimate.FoamType `json:"foamType"`
	FoamThickness      float64           `json:"foamThickness"`
	SqFt               float64           `json:"sqft"`
	BoardFeet          float64           `json:"boardFeet"`
	Sets               float64           `json:"sets"`
	Gallons            float64           `json:"gallons"`
	MaterialCostPerSet float64           `json:"materialCostPerSet"`
	BaseMaterialCost   float64           `json:"baseMaterialCost"`
	MarkupAmount       float64           `json:"markupAmount"`
	RawTotal           float64           `json:"rawTotal"`
	TotalCost          float64           `json:"totalCost"`
	RValue             float64           `json:"rValue"`
	PricePerSqFt       float64           `json:"pricePerSqFt"`
}

// RValue is the thermal resistance of a layer.
func RValue(app estimate.FoamApplication) float64 {
	if app.FoamType.Normalize() == estimate.FoamClosed {
		return app.FoamThickness * rValuePerInchClosed
	}
	return app.FoamThickness * rValuePerInchOpen
}

// ComputeApplication prices one foam layer over an area.
//
// TotalCost is PricePerSqFt x SqFt, using the rounded unit price, so that an exported
// line item always satisfies quantity x unit price == total. It can differ from RawTotal
// by a few cents. The returned error is the area's pitch error, if any; the result
// is still fully populated from the unadjusted footprint.
func ComputeApplication(area estimate.Area, app estimate.FoamApplication) (ApplicationResult, error) {
	sqft, err := geometry.EffectiveSqFt(area.Surface())
	return computeForSqFt(area.ID, sqft, app), err
}

func computeForSqFt(areaID string, sqft float64, app estimate.FoamApplication) ApplicationResult {
	boardFeet := sqft * app.FoamThickness
	sets := money.Ratio(boardFeet, app.BoardFeetPerSet)
	costPerSet := estimate.MaterialCostPerSet(app)
	base := sets * costPerSet
	markup := base * (app.MaterialMarkup / 100)
	raw := base + markup

	pricePerSqFt := 0.0
	if sqft > 0 {
		pricePerSqFt = money.Round2(raw / sqft)
	}

	return ApplicationResult{
		AreaID:             areaID,
		ApplicationID:      app.ID,
		FoamType:           app.FoamType.Normalize(),
		FoamThickness:      app.FoamThickness,
		SqFt:               sqft,
		BoardFeet:          boardFeet,
		Sets:               sets,
		Gallons:            sets * GallonsPerSet,
		MaterialCostPerSet: costPerSet,
		BaseMaterialCost:   base,
		MarkupAmount:       markup,
		RawTotal:           raw,
		TotalCost:          pricePerSqFt * sqft,
		RValue:             RValue(app),
		PricePerSqFt:       pricePerSqFt,
	}
}
