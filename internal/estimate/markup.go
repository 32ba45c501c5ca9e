package estimate

import (
	"errors"
	"fmt"
	"math"

	"github.com/Simplici0/foamquote/internal/money"
)

// LandedCostFactor converts the supplier price of a set into its landed cost.
const LandedCostFactor = 1.20

// ErrBelowFloor matches every rejection where a derived markup would be negative.
var ErrBelowFloor = errors.New("value below zero-markup floor")

// FloorError is the user-facing rejection of a charged value below its cost floor.
type FloorError struct {
	Floor   float64
	Message string
}

func (e *FloorError) Error() string { return e.Message }

func (e *FloorError) Is(target error) bool { return target == ErrBelowFloor }

// ChargedLaborRate is the hourly rate billed to the customer.
func ChargedLaborRate(g GlobalInputs) float64 {
	return g.ManualLaborRate * (1 + g.LaborMarkup/100)
}

// SolveLaborMarkup derives the labor markup that produces charged.
func SolveLaborMarkup(manualRate, charged float64) (float64, error) {
	manualRate, charged = Clamp(manualRate), Clamp(charged)
	if charged < manualRate {
		return 0, &FloorError{
			Floor:   manualRate,
			Message: fmt.Sprintf("Charged rate must be at least $%s (the Actual Labor Rate)", money.Format(manualRate)),
		}
	}
	if manualRate == 0 {
		return 0, nil
	}
	return (charged/manualRate - 1) * 100, nil
}

// MaterialCostPerSet is the landed cost of one set.
func MaterialCostPerSet(app FoamApplication) float64 {
	return app.MaterialPrice * LandedCostFactor
}

// MinPricePerSqFt is the unit price at zero markup.
func MinPricePerSqFt(app FoamApplication) float64 {
	return money.Ratio(app.FoamThickness, app.BoardFeetPerSet) * MaterialCostPerSet(app)
}

// PricePerSqFt is the rounded unit price implied by the application's markup.
func PricePerSqFt(app FoamApplication) float64 {
	return money.Round2(MinPricePerSqFt(app) * (1 + app.MaterialMarkup/100))
}

// SolveMaterialMarkup derives the material markup that produces price per square foot.
func SolveMaterialMarkup(app FoamApplication, price float64) (float64, error) {
	committed := money.Round2(Clamp(price))
	floor := money.Round2(MinPricePerSqFt(app))
	if committed < floor {
		return 0, &FloorError{
			Floor:   floor,
			Message: fmt.Sprintf("Price must be at least $%s (derived from Material Cost per Set)", money.Format(floor)),
		}
	}
	costPerSet := MaterialCostPerSet(app)
	if costPerSet == 0 || app.FoamThickness == 0 {
		return 0, nil
	}
	pricePerSet := committed * (app.BoardFeetPerSet / app.FoamThickness)
	return math.Max(0, (pricePerSet/costPerSet-1)*100), nil
}
