package pricing

import (
	"github.com/samber/lo"

	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/geometry"
)

// PerFoam splits a quantity by foam chemistry.
type PerFoam struct {
	Open   float64 `json:"open"`
	Closed float64 `json:"closed"`
}

// Total is Open + Closed.
func (p PerFoam) Total() float64 { return p.Open + p.Closed }

func (p *PerFoam) add(t estimate.FoamType, v float64) {
	if t.Normalize() == estimate.FoamClosed {
		p.Closed += v
		return
	}
	p.Open += v
}

// AreaResult groups the application results of one area.
type AreaResult struct {
	AreaID       string              `json:"areaId"`
	Name         string              `json:"name"`
	AreaType     estimate.AreaType   `json:"areaType"`
	SqFt         float64             `json:"sqft"`
	PitchError   string              `json:"pitchError,omitempty"`
	Applications []ApplicationResult `json:"applications"`
	TotalCost    float64             `json:"totalCost"`
}

// EstimateResult is the job-level estimate.
type EstimateResult struct {
	TotalSqFt                 float64 `json:"totalSqFt"`
	TotalGallons              PerFoam `json:"totalGallons"`
	TotalSets                 PerFoam `json:"totalSets"`
	BaseMaterialCost          float64 `json:"baseMaterialCost"`
	MaterialMarkupAmount      float64 `json:"materialMarkupAmount"`
	FuelCost                  float64 `json:"fuelCost"`
	BaseLaborCost             float64 `json:"baseLaborCost"`
	ChargedLaborRate          float64 `json:"chargedLaborRate"`
	TotalBaseCost             float64 `json:"totalBaseCost"`
	LaborMarkupAmount         float64 `json:"laborMarkupAmount"`
	LaborTotal                float64 `json:"laborTotal"`
	CustomerCost              float64 `json:"customerCost"`
	NetProfitBeforeCommission float64 `json:"netProfitBeforeCommission"`
	MarginBeforeCommission    float64 `json:"marginBeforeCommission"`
	CommissionRate            float64 `json:"commissionRate"`
	Commission                float64 `json:"commission"`
	FinalProfit               float64 `json:"finalProfit"`
	FinalMargin               float64 `json:"finalMargin"`
	JobOverhead               float64 `json:"jobOverhead"`
	TrueNetProfit             float64 `json:"trueNetProfit"`
}

// Aggregate sums every application of every area together with labor, travel, waste
// and equipment into the customer charge. Commission and overhead are left zero.
func Aggregate(areas []estimate.Area, global estimate.GlobalInputs) (EstimateResult, []AreaResult) {
	var res EstimateResult
	breakdown := make([]AreaResult, 0, len(areas))

	for _, area := range areas {
		sqft, err := geometry.EffectiveSqFt(area.Surface())
		ar := AreaResult{
			AreaID:       area.ID,
			Name:         area.Name,
			AreaType:     area.AreaType.Normalize(),
			SqFt:         sqft,
			Applications: make([]ApplicationResult, 0, len(area.FoamApplications)),
		}
		if err != nil {
			ar.PitchError = err.Error()
		}

		for _, app := range area.FoamApplications {
			r := computeForSqFt(area.ID, sqft, app)
			ar.Applications = append(ar.Applications, r)

			res.TotalGallons.add(r.FoamType, r.Gallons)
			res.TotalSets.add(r.FoamType, r.Sets)
			res.BaseMaterialCost += r.BaseMaterialCost
			res.MaterialMarkupAmount += r.MarkupAmount
		}
		ar.TotalCost = lo.SumBy(ar.Applications, func(r ApplicationResult) float64 { return r.TotalCost })

		res.TotalSqFt += sqft
		breakdown = append(breakdown, ar)
	}

	res.FuelCost = global.TravelDistance * global.TravelRate
	res.BaseLaborCost = global.LaborHours * global.ManualLaborRate
	res.ChargedLaborRate = estimate.ChargedLaborRate(global)
	res.TotalBaseCost = res.BaseMaterialCost + res.BaseLaborCost + res.FuelCost + global.WasteDisposal + global.EquipmentRental
	res.LaborMarkupAmount = res.BaseLaborCost * (global.LaborMarkup / 100)
	res.LaborTotal = res.BaseLaborCost + res.LaborMarkupAmount + res.FuelCost + global.WasteDisposal + global.EquipmentRental
	res.CustomerCost = res.TotalBaseCost + res.MaterialMarkupAmount + res.LaborMarkupAmount

	return res, breakdown
}
