// Package pricing computes material quantities, customer price, commission and
// profitability of a spray foam job, and compares the estimate against actuals.
package pricing

import "github.com/Simplici0/foamquote/internal/estimate"

// Report groups the full pricing output of one snapshot.
type Report struct {
	Estimate   EstimateResult  `json:"estimate"`
	Actual     ActualResult    `json:"actual"`
	Comparison Comparison      `json:"comparison"`
	Areas      []AreaResult    `json:"areas"`
	Overhead   OverheadSummary `json:"overhead"`
}

// Calculate prices the snapshot. It is recomputed from scratch on every call.
func Calculate(s estimate.State) Report {
	est, areas := Aggregate(s.Areas, s.Global)

	c := ComputeCommission(est.CustomerCost, est.TotalBaseCost)
	est.NetProfitBeforeCommission = c.NetProfitBeforeCommission
	est.MarginBeforeCommission = c.MarginBeforeCommission
	est.CommissionRate = c.Rate
	est.Commission = c.Amount
	est.FinalProfit = c.FinalProfit
	est.FinalMargin = c.FinalMargin

	o := AllocateOverhead(s.Settings, s.Global.LaborHours, est.FinalProfit)
	est.JobOverhead = o.JobOverhead
	est.TrueNetProfit = o.TrueNetProfit

	act, cmp := Compare(est, s.Global, s.Settings, s.Actuals)

	return Report{
		Estimate:   est,
		Actual:     act,
		Comparison: cmp,
		Areas:      areas,
		Overhead:   Summarize(s.Settings),
	}
}
