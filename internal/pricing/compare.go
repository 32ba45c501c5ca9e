package pricing

import "github.com/Simplici0/foamquote/internal/estimate"

// Reference landed costs per set used to cost actual material usage.
//
// TODO: cost actuals from each area's configured price instead of these references;
// kept until jobs record which supplier price the sprayed material was bought at.
const (
	ReferenceOpenCostPerSet   = 1870 * estimate.LandedCostFactor
	ReferenceClosedCostPerSet = 2470 * estimate.LandedCostFactor
)

// ActualResult mirrors EstimateResult for the job as it was performed.
// CustomerCost is the quoted price and is never recomputed.
type ActualResult struct {
	LaborHours                float64 `json:"laborHours"`
	TotalGallons              PerFoam `json:"totalGallons"`
	TotalSets                 PerFoam `json:"totalSets"`
	MaterialCost              float64 `json:"materialCost"`
	LaborCost                 float64 `json:"laborCost"`
	FuelCost                  float64 `json:"fuelCost"`
	WasteDisposal             float64 `json:"wasteDisposal"`
	EquipmentRental           float64 `json:"equipmentRental"`
	TotalBaseCost             float64 `json:"totalBaseCost"`
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

// Delta compares one figure between estimate and actual.
type Delta struct {
	Estimate   float64 `json:"estimate"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
}

func newDelta(est, act float64) Delta {
	return Delta{Estimate: est, Actual: act, Difference: act - est}
}

// Comparison lists estimate-vs-actual deltas.
type Comparison struct {
	LaborHours    Delta `json:"laborHours"`
	OpenGallons   Delta `json:"openGallons"`
	ClosedGallons Delta `json:"closedGallons"`
	MaterialCost  Delta `json:"materialCost"`
	LaborCost     Delta `json:"laborCost"`
	TotalBaseCost Delta `json:"totalBaseCost"`
	Commission    Delta `json:"commission"`
	FinalProfit   Delta `json:"finalProfit"`
	FinalMargin   Delta `json:"finalMargin"`
	JobOverhead   Delta `json:"jobOverhead"`
	TrueNetProfit Delta `json:"trueNetProfit"`
}

func effective(actual *float64, est float64) float64 {
	if actual == nil {
		return est
	}
	return *actual
}

// Compare recomputes profitability from actuals. Unset actuals fall back to the estimate.
func Compare(est EstimateResult, global estimate.GlobalInputs, settings estimate.BusinessSettings, actuals estimate.Actuals) (ActualResult, Comparison) {
	hours := effective(actuals.ActualLaborHours, global.LaborHours)
	gallons := PerFoam{
		Open:   effective(actuals.ActualOpenGallons, est.TotalGallons.Open),
		Closed: effective(actuals.ActualClosedGallons, est.TotalGallons.Closed),
	}
	sets := PerFoam{Open: gallons.Open / GallonsPerSet, Closed: gallons.Closed / GallonsPerSet}

	act := ActualResult{
		LaborHours:      hours,
		TotalGallons:    gallons,
		TotalSets:       sets,
		MaterialCost:    sets.Open*ReferenceOpenCostPerSet + sets.Closed*ReferenceClosedCostPerSet,
		LaborCost:       hours * global.ManualLaborRate,
		FuelCost:        est.FuelCost,
		WasteDisposal:   global.WasteDisposal,
		EquipmentRental: global.EquipmentRental,
		CustomerCost:    est.CustomerCost,
	}
	act.TotalBaseCost = act.MaterialCost + act.LaborCost + act.FuelCost + act.WasteDisposal + act.EquipmentRental

	c := ComputeCommission(act.CustomerCost, act.TotalBaseCost)
	act.NetProfitBeforeCommission = c.NetProfitBeforeCommission
	act.MarginBeforeCommission = c.MarginBeforeCommission
	act.CommissionRate = c.Rate
	act.Commission = c.Amount
	act.FinalProfit = c.FinalProfit
	act.FinalMargin = c.FinalMargin

	o := AllocateOverhead(settings, hours, act.FinalProfit)
	act.JobOverhead = o.JobOverhead
	act.TrueNetProfit = o.TrueNetProfit

	cmp := Comparison{
		LaborHours:    newDelta(global.LaborHours, hours),
		OpenGallons:   newDelta(est.TotalGallons.Open, gallons.Open),
		ClosedGallons: newDelta(est.TotalGallons.Closed, gallons.Closed),
		MaterialCost:  newDelta(est.BaseMaterialCost, act.MaterialCost),
		LaborCost:     newDelta(est.BaseLaborCost, act.LaborCost),
		TotalBaseCost: newDelta(est.TotalBaseCost, act.TotalBaseCost),
		Commission:    newDelta(est.Commission, act.Commission),
		FinalProfit:   newDelta(est.FinalProfit, act.FinalProfit),
		FinalMargin:   newDelta(est.FinalMargin, act.FinalMargin),
		JobOverhead:   newDelta(est.JobOverhead, act.JobOverhead),
		TrueNetProfit: newDelta(est.TrueNetProfit, act.TrueNetProfit),
	}
	return act, cmp
}
