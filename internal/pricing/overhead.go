package pricing

import (
	"github.com/samber/lo"

	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/money"
)

// OverheadSummary describes the business' monthly overhead.
type OverheadSummary struct {
	TotalMonthlyOverhead float64 `json:"totalMonthlyOverhead"`
	OverheadPerHour      float64 `json:"overheadPerHour"`
	BreakEvenRevenue     float64 `json:"breakEvenRevenue"`
}

// Overhead is the share of monthly overhead carried by one job.
type Overhead struct {
	PerHour       float64 `json:"perHour"`
	JobOverhead   float64 `json:"jobOverhead"`
	TrueNetProfit float64 `json:"trueNetProfit"`
}

// MonthlyOverhead sums the eight overhead categories.
func MonthlyOverhead(s estimate.BusinessSettings) float64 {
	return lo.Sum(s.OverheadCategories())
}

// OverheadPerHour spreads monthly overhead over the expected billable hours.
func OverheadPerHour(s estimate.BusinessSettings) float64 {
	if s.ExpectedMonthlyHours <= 0 {
		return 0
	}
	return money.Ratio(MonthlyOverhead(s), s.ExpectedMonthlyHours)
}

// BreakEvenRevenue is the monthly revenue needed to cover overhead at the target margin.
func BreakEvenRevenue(s estimate.BusinessSettings) float64 {
	if s.TargetNetMargin >= 100 {
		return 0
	}
	return money.Ratio(MonthlyOverhead(s), 1-s.TargetNetMargin/100)
}

// Summarize computes the business-level overhead figures.
func Summarize(s estimate.BusinessSettings) OverheadSummary {
	return OverheadSummary{
		TotalMonthlyOverhead: MonthlyOverhead(s),
		OverheadPerHour:      OverheadPerHour(s),
		BreakEvenRevenue:     BreakEvenRevenue(s),
	}
}

// AllocateOverhead charges the job for its labor hours and returns the true net profit.
func AllocateOverhead(s estimate.BusinessSettings, laborHours, finalProfit float64) Overhead {
	perHour := OverheadPerHour(s)
	job := perHour * laborHours
	return Overhead{
		PerHour:       perHour,
		JobOverhead:   job,
		TrueNetProfit: finalProfit - job,
	}
}
