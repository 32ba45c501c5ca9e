package pricing

import (
	"math"
	"testing"

	"github.com/Simplici0/foamquote/internal/estimate"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func sqftArea(sqft float64, apps ...estimate.FoamApplication) estimate.Area {
	return estimate.Area{
		ID:               estimate.NewID(),
		Name:             "Attic",
		AreaSqFt:         sqft,
		AreaType:         estimate.AreaGeneral,
		RoofPitch:        estimate.DefaultRoofPitch,
		FoamApplications: apps,
	}
}

func TestComputeApplication_OpenCellDefaults(t *testing.T) {
	app := estimate.NewFoamApplication(estimate.FoamOpen)

	r, err := ComputeApplication(sqftArea(1000, app), app)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "sets", r.Sets, 6000.0/14000)
	nearlyEqual(t, "gallons", r.Gallons, 600000.0/14000)
	nearlyEqual(t, "materialCostPerSet", r.MaterialCostPerSet, 2244)
	nearlyEqual(t, "baseMaterialCost", r.BaseMaterialCost, 961.7142857)
	nearlyEqual(t, "markupAmount", r.MarkupAmount, 721.2857143)
	nearlyEqual(t, "rawTotal", r.RawTotal, 1683)
	nearlyEqual(t, "pricePerSqFt", r.PricePerSqFt, 1.68)
	nearlyEqual(t, "totalCost", r.TotalCost, 1680)
	nearlyEqual(t, "rValue", r.RValue, 22.8)
}

func TestComputeApplication_ClosedCellRValue(t *testing.T) {
	app := estimate.NewFoamApplication(estimate.FoamClosed)

	r, _ := ComputeApplication(sqftArea(500, app), app)

	nearlyEqual(t, "rValue", r.RValue, 14.4)
	nearlyEqual(t, "pricePerSqFt", r.PricePerSqFt, 2.38)
	nearlyEqual(t, "totalCost", r.TotalCost, 1190)
}

func TestComputeApplication_ZeroSqFtAndZeroBoardFeet(t *testing.T) {
	app := estimate.NewFoamApplication(estimate.FoamOpen)
	r, _ := ComputeApplication(sqftArea(0, app), app)
	nearlyEqual(t, "pricePerSqFt", r.PricePerSqFt, 0)
	nearlyEqual(t, "totalCost", r.TotalCost, 0)

	app.BoardFeetPerSet = 0
	r, _ = ComputeApplication(sqftArea(100, app), app)
	nearlyEqual(t, "sets", r.Sets, 0)
	if math.IsNaN(r.BaseMaterialCost) || math.IsInf(r.BaseMaterialCost, 0) {
		t.Fatalf("baseMaterialCost must be finite, got %v", r.BaseMaterialCost)
	}
}

func TestComputeApplication_LineItemConsistency(t *testing.T) {
	app := estimate.NewFoamApplication(estimate.FoamClosed)
	for _, sqft := range []float64{137, 1000, 2468} {
		r, _ := ComputeApplication(sqftArea(sqft, app), app)
		nearlyEqual(t, "quantity x unitPrice", r.SqFt*r.PricePerSqFt, r.TotalCost)
	}
}

func TestAggregate_SumsAreasAndApplications(t *testing.T) {
	open := estimate.NewFoamApplication(estimate.FoamOpen)
	closed := estimate.NewFoamApplication(estimate.FoamClosed)
	areas := []estimate.Area{
		sqftArea(1000, open),
		{ID: "gable", Name: "Gable", Length: 10, Width: 20, AreaType: estimate.AreaGable, FoamApplications: []estimate.FoamApplication{closed, open}},
	}
	global := estimate.GlobalInputs{
		LaborHours:      10,
		ManualLaborRate: 40,
		LaborMarkup:     50,
		TravelDistance:  30,
		TravelRate:      0.5,
		WasteDisposal:   25,
		EquipmentRental: 75,
	}

	res, breakdown := Aggregate(areas, global)

	if len(breakdown) != 2 || len(breakdown[1].Applications) != 2 {
		t.Fatalf("unexpected breakdown: %+v", breakdown)
	}
	nearlyEqual(t, "gable sqft", breakdown[1].SqFt, 100)

	openSets := 6000.0/14000 + 600.0/14000
	closedSets := 200.0 / 4000
	nearlyEqual(t, "open sets", res.TotalSets.Open, openSets)
	nearlyEqual(t, "closed sets", res.TotalSets.Closed, closedSets)
	nearlyEqual(t, "open gallons", res.TotalGallons.Open, openSets*100)
	nearlyEqual(t, "closed gallons", res.TotalGallons.Closed, closedSets*100)

	base := openSets*2244 + closedSets*2964
	markup := openSets*2244*0.75 + closedSets*2964*0.6059
	nearlyEqual(t, "baseMaterialCost", res.BaseMaterialCost, base)
	nearlyEqual(t, "materialMarkupAmount", res.MaterialMarkupAmount, markup)
	nearlyEqual(t, "fuelCost", res.FuelCost, 15)
	nearlyEqual(t, "baseLaborCost", res.BaseLaborCost, 400)
	nearlyEqual(t, "totalBaseCost", res.TotalBaseCost, base+400+15+25+75)
	nearlyEqual(t, "laborMarkupAmount", res.LaborMarkupAmount, 200)
	nearlyEqual(t, "customerCost", res.CustomerCost, base+400+15+25+75+markup+200)
	nearlyEqual(t, "laborTotal", res.LaborTotal, 400+200+15+25+75)
	nearlyEqual(t, "chargedLaborRate", res.ChargedLaborRate, 60)
}

func TestAggregate_InvalidPitchDoesNotPoisonTotals(t *testing.T) {
	app := estimate.NewFoamApplication(estimate.FoamOpen)
	area := estimate.Area{ID: "roof", Length: 10, Width: 20, AreaType: estimate.AreaRoofDeck, RoofPitch: "4/0", FoamApplications: []estimate.FoamApplication{app}}

	res, breakdown := Aggregate([]estimate.Area{area}, estimate.GlobalInputs{})

	if breakdown[0].PitchError == "" {
		t.Fatalf("expected pitch error to be reported")
	}
	nearlyEqual(t, "sqft", breakdown[0].SqFt, 200)
	if math.IsNaN(res.CustomerCost) || math.IsInf(res.CustomerCost, 0) {
		t.Fatalf("customerCost must be finite, got %v", res.CustomerCost)
	}
}

func TestCommissionRate_Tiers(t *testing.T) {
	cases := []struct {
		margin float64
		want   float64
	}{
		{50, 0.12},
		{35.0, 0.12},
		{34.999, 0.10},
		{30.0, 0.10},
		{29.999, 0},
		{-10, 0},
	}
	for _, tc := range cases {
		nearlyEqual(t, "rate", CommissionRate(tc.margin), tc.want)
	}
}

func TestComputeCommission(t *testing.T) {
	c := ComputeCommission(1000, 600)
	nearlyEqual(t, "net", c.NetProfitBeforeCommission, 400)
	nearlyEqual(t, "margin", c.MarginBeforeCommission, 40)
	nearlyEqual(t, "amount", c.Amount, 48)
	nearlyEqual(t, "finalProfit", c.FinalProfit, 352)
	nearlyEqual(t, "finalMargin", c.FinalMargin, 35.2)

	mid := ComputeCommission(1000, 680)
	nearlyEqual(t, "mid rate", mid.Rate, 0.10)
	nearlyEqual(t, "mid amount", mid.Amount, 32)

	low := ComputeCommission(1000, 800)
	nearlyEqual(t, "low amount", low.Amount, 0)
	nearlyEqual(t, "low finalProfit", low.FinalProfit, 200)

	zero := ComputeCommission(0, 100)
	nearlyEqual(t, "zero margin", zero.MarginBeforeCommission, 0)
	nearlyEqual(t, "zero finalMargin", zero.FinalMargin, 0)
}

func TestOverhead(t *testing.T) {
	s := estimate.BusinessSettings{
		Salaries: 8000, Rent: 1500, RigLease: 2000, TruckLease: 800,
		Insurance: 600, Marketing: 500, Software: 100, Other: 500,
		ExpectedMonthlyHours: 140, TargetNetMargin: 20,
	}

	nearlyEqual(t, "monthly", MonthlyOverhead(s), 14000)
	nearlyEqual(t, "perHour", OverheadPerHour(s), 100)
	nearlyEqual(t, "breakEven", BreakEvenRevenue(s), 17500)

	o := AllocateOverhead(s, 12, 3000)
	nearlyEqual(t, "jobOverhead", o.JobOverhead, 1200)
	nearlyEqual(t, "trueNetProfit", o.TrueNetProfit, 1800)
}

func TestOverhead_GuardedDivision(t *testing.T) {
	s := estimate.BusinessSettings{Salaries: 5000, ExpectedMonthlyHours: 0, TargetNetMargin: 100}

	nearlyEqual(t, "perHour", OverheadPerHour(s), 0)
	nearlyEqual(t, "breakEven", BreakEvenRevenue(s), 0)
	o := AllocateOverhead(s, 10, 500)
	nearlyEqual(t, "trueNetProfit", o.TrueNetProfit, 500)
}

func TestCalculate_ActualsFallBackToEstimate(t *testing.T) {
	s := estimate.NewState()
	s.Areas[0].AreaSqFt = 1000
	s.Global = estimate.GlobalInputs{LaborHours: 8, ManualLaborRate: 35, LaborMarkup: 40}
	s.Settings = estimate.BusinessSettings{Salaries: 4000, ExpectedMonthlyHours: 160}

	r := Calculate(s)

	nearlyEqual(t, "effective hours", r.Actual.LaborHours, 8)
	if r.Comparison.LaborHours.Difference != 0 {
		t.Fatalf("labor hours delta = %v, want exactly 0", r.Comparison.LaborHours.Difference)
	}
	if r.Comparison.OpenGallons.Difference != 0 {
		t.Fatalf("open gallons delta = %v, want exactly 0", r.Comparison.OpenGallons.Difference)
	}
	nearlyEqual(t, "customer cost reused", r.Actual.CustomerCost, r.Estimate.CustomerCost)
	nearlyEqual(t, "jobOverhead", r.Estimate.JobOverhead, 25*8)
}

func TestCalculate_ActualsOverride(t *testing.T) {
	s := estimate.NewState()
	s.Areas[0].AreaSqFt = 1000
	s.Global = estimate.GlobalInputs{LaborHours: 8, ManualLaborRate: 35}
	s.Actuals = estimate.Actuals{
		ActualLaborHours:    estimate.Float(10),
		ActualOpenGallons:   estimate.Float(50),
		ActualClosedGallons: estimate.Float(0),
	}

	r := Calculate(s)

	nearlyEqual(t, "labor delta", r.Comparison.LaborHours.Difference, 2)
	nearlyEqual(t, "actual labor cost", r.Actual.LaborCost, 350)
	nearlyEqual(t, "actual material cost", r.Actual.MaterialCost, 0.5*2244)
	nearlyEqual(t, "actual base cost", r.Actual.TotalBaseCost, 0.5*2244+350)
	nearlyEqual(t, "actual final profit", r.Actual.FinalProfit,
		r.Estimate.CustomerCost-r.Actual.TotalBaseCost-r.Actual.Commission)
}

func TestCalculate_ActualMaterialUsesReferenceCosts(t *testing.T) {
	s := estimate.NewState()
	s.Areas[0].AreaSqFt = 1000
	s.Areas[0].FoamApplications[0].MaterialPrice = 3000
	s.Actuals = estimate.Actuals{ActualOpenGallons: estimate.Float(100)}

	r := Calculate(s)

	nearlyEqual(t, "actual material cost", r.Actual.MaterialCost, ReferenceOpenCostPerSet)
	nearlyEqual(t, "estimate material cost", r.Estimate.BaseMaterialCost, 6000.0/14000*3600)
}
