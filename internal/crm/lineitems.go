// Package crm shapes a priced estimate into quote line items for the CRM.
package crm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/money"
	"github.com/Simplici0/foamquote/internal/pricing"
)

// LaborItemName names the aggregate labor, travel, waste and equipment line.
const LaborItemName = "Labor, Travel & Disposal"

// LineItem is one quote line. Quantity x UnitPrice == Total for every foam line.
type LineItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type descriptionKey struct {
	area estimate.AreaType
	foam estimate.FoamType
}

// Placeholders: thickness in inches, then R-value with one decimal.
var descriptions = map[descriptionKey]string{
	{estimate.AreaExteriorWalls, estimate.FoamOpen}:   "Install %sin open cell spray foam in exterior wall cavities for sound dampening and air sealing. Estimated R-value: R-%s.",
	{estimate.AreaExteriorWalls, estimate.FoamClosed}: "Install %sin closed cell spray foam in exterior wall cavities, adding a vapor retarder and structural rigidity. Estimated R-value: R-%s.",
	{estimate.AreaRoofDeck, estimate.FoamOpen}:        "Apply %sin open cell spray foam to the underside of the roof deck to create a conditioned attic. Estimated R-value: R-%s.",
	{estimate.AreaRoofDeck, estimate.FoamClosed}:      "Apply %sin closed cell spray foam to the underside of the roof deck as an air and moisture barrier. Estimated R-value: R-%s.",
	{estimate.AreaGable, estimate.FoamOpen}:           "Apply %sin open cell spray foam to the gable end walls. Estimated R-value: R-%s.",
	{estimate.AreaGable, estimate.FoamClosed}:         "Apply %sin closed cell spray foam to the gable end walls. Estimated R-value: R-%s.",
	{estimate.AreaGeneral, estimate.FoamOpen}:         "Apply %sin open cell spray foam insulation. Estimated R-value: R-%s.",
	{estimate.AreaGeneral, estimate.FoamClosed}:       "Apply %sin closed cell spray foam insulation. Estimated R-value: R-%s.",
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ItemName is "<area name> (<foam type> Cell <thickness>in)".
func ItemName(areaName string, foam estimate.FoamType, thickness float64) string {
	name := strings.TrimSpace(areaName)
	if name == "" {
		name = "Area"
	}
	return fmt.Sprintf("%s (%s Cell %sin)", name, foam.Normalize(), formatInches(thickness))
}

// Description renders the quote text for a layer.
func Description(areaType estimate.AreaType, foam estimate.FoamType, thickness, rValue float64) string {
	tmpl := descriptions[descriptionKey{areaType.Normalize(), foam.Normalize()}]
	return fmt.Sprintf(tmpl, formatInches(thickness), strconv.FormatFloat(rValue, 'f', 1, 64))
}

// LineItems lists one line per sprayed foam layer plus one aggregate labor line.
// Layers over zero square feet are skipped.
func LineItems(report pricing.Report) []LineItem {
	items := make([]LineItem, 0)
	for _, area := range report.Areas {
		for _, app := range area.Applications {
			qty := money.RoundHalfUp(app.SqFt)
			if qty <= 0 {
				continue
			}
			items = append(items, LineItem{
				Name:        ItemName(area.Name, app.FoamType, app.FoamThickness),
				Description: Description(area.AreaType, app.FoamType, app.FoamThickness, app.RValue),
				Quantity:    qty,
				UnitPrice:   app.PricePerSqFt,
				Total:       money.Round2(qty * app.PricePerSqFt),
			})
		}
	}

	if labor := money.Round2(report.Estimate.LaborTotal); labor > 0 {
		items = append(items, LineItem{
			Name:        LaborItemName,
			Description: "Crew labor, travel, waste disposal and equipment for the job.",
			Quantity:    1,
			UnitPrice:   labor,
			Total:       labor,
		})
	}
	return items
}

// Total sums the line totals.
func Total(items []LineItem) float64 {
	return money.Round2(lo.SumBy(items, func(i LineItem) float64 { return i.Total }))
}
