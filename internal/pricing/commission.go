package pricing

import "github.com/Simplici0/foamquote/internal/money"

// Commission is the sales commission and the profit left after paying it.
type Commission struct {
	NetProfitBeforeCommission float64 `json:"netProfitBeforeCommission"`
	MarginBeforeCommission    float64 `json:"marginBeforeCommission"`
	Rate                      float64 `json:"rate"`
	Amount                    float64 `json:"amount"`
	FinalProfit               float64 `json:"finalProfit"`
	FinalMargin               float64 `json:"finalMargin"`
}

// CommissionRate returns the tier rate for a pre-commission margin in percent.
// Lower bounds are inclusive.
func CommissionRate(margin float64) float64 {
	switch {
	case margin >= 35:
		return 0.12
	case margin >= 30:
		return 0.10
	}
	return 0
}

// ComputeCommission applies the tiered commission to the pre-commission profit.
func ComputeCommission(customerCost, totalBaseCost float64) Commission {
	net := customerCost - totalBaseCost
	margin := 0.0
	if customerCost > 0 {
		margin = money.Ratio(net, customerCost) * 100
	}
	rate := CommissionRate(margin)
	amount := net * rate

	final := customerCost - totalBaseCost - amount
	finalMargin := 0.0
	if customerCost > 0 {
		finalMargin = money.Ratio(final, customerCost) * 100
	}

	return Commission{
		NetProfitBeforeCommission: net,
		MarginBeforeCommission:    margin,
		Rate:                      rate,
		Amount:                    amount,
		FinalProfit:               final,
		FinalMargin:               finalMargin,
	}
}
