package estimate

import (
	"math"
	"strconv"
	"strings"
)

// Clamp turns NaN, infinities and negatives into 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseAmount reads a numeric form value. Anything unparseable or negative becomes 0.
func ParseAmount(raw string) float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return Clamp(v)
}

// ClampGlobal clamps every field of g.
func ClampGlobal(g GlobalInputs) GlobalInputs {
	return GlobalInputs{
		LaborHours:      Clamp(g.LaborHours),
		ManualLaborRate: Clamp(g.ManualLaborRate),
		LaborMarkup:     Clamp(g.LaborMarkup),
		TravelDistance:  Clamp(g.TravelDistance),
		TravelRate:      Clamp(g.TravelRate),
		WasteDisposal:   Clamp(g.WasteDisposal),
		EquipmentRental: Clamp(g.EquipmentRental),
	}
}

// ClampSettings clamps every overhead category. TargetNetMargin may be any value below 100
// and is only cleared when it is not a finite number.
func ClampSettings(b BusinessSettings) BusinessSettings {
	margin := b.TargetNetMargin
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		margin = 0
	}
	return BusinessSettings{
		Salaries:             Clamp(b.Salaries),
		Rent:                 Clamp(b.Rent),
		RigLease:             Clamp(b.RigLease),
		TruckLease:           Clamp(b.TruckLease),
		Insurance:            Clamp(b.Insurance),
		Marketing:            Clamp(b.Marketing),
		Software:             Clamp(b.Software),
		Other:                Clamp(b.Other),
		ExpectedMonthlyHours: Clamp(b.ExpectedMonthlyHours),
		TargetNetMargin:      margin,
	}
}

// ClampActuals clamps set values and leaves unset ones unset.
func ClampActuals(a Actuals) Actuals {
	return Actuals{
		ActualLaborHours:    clampPtr(a.ActualLaborHours),
		ActualOpenGallons:   clampPtr(a.ActualOpenGallons),
		ActualClosedGallons: clampPtr(a.ActualClosedGallons),
	}
}

func clampPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(Clamp(*v))
}

// ClampApplication clamps the numeric fields of app.
func ClampApplication(app FoamApplication) FoamApplication {
	app.FoamType = app.FoamType.Normalize()
	app.FoamThickness = Clamp(app.FoamThickness)
	app.MaterialPrice = Clamp(app.MaterialPrice)
	app.MaterialMarkup = Clamp(app.MaterialMarkup)
	app.BoardFeetPerSet = Clamp(app.BoardFeetPerSet)
	return app
}

// NormalizeArea clamps the area and restores the single-authority geometry invariant.
// When both paths are populated the direct square footage wins.
func NormalizeArea(a Area) Area {
	a = a.Clone()
	a.AreaType = a.AreaType.Normalize()
	a.AreaSqFt = Clamp(a.AreaSqFt)
	a.Length = Clamp(a.Length)
	a.Width = Clamp(a.Width)
	if a.AreaSqFt > 0 {
		a.Length, a.Width = 0, 0
	} else if a.Length > 0 || a.Width > 0 {
		a.ApplyPitchToManualArea = false
	}
	if strings.TrimSpace(a.RoofPitch) == "" {
		a.RoofPitch = DefaultRoofPitch
	}
	for i := range a.FoamApplications {
		a.FoamApplications[i] = ClampApplication(a.FoamApplications[i])
	}
	return a
}
