// Package estimate holds the job snapshot the pricing engine reads and the reducers
// that produce a new snapshot for every committed edit.
package estimate

import "github.com/Simplici0/foamquote/internal/geometry"

// AreaType selects how an area's square footage is resolved.
type AreaType string

const (
	AreaGeneral       AreaType = "General"
	AreaExteriorWalls AreaType = "Exterior Walls"
	AreaRoofDeck      AreaType = "Roof Deck"
	AreaGable         AreaType = "Gable"
)

// Normalize maps unknown or legacy spellings onto a known AreaType.
func (t AreaType) Normalize() AreaType {
	switch t {
	case AreaGeneral, AreaExteriorWalls, AreaRoofDeck, AreaGable:
		return t
	case "ExteriorWalls", "exterior_walls":
		return AreaExteriorWalls
	case "RoofDeck", "roof_deck":
		return AreaRoofDeck
	}
	return AreaGeneral
}

// FoamType is the spray foam chemistry.
type FoamType string

const (
	FoamOpen   FoamType = "Open"
	FoamClosed FoamType = "Closed"
)

// Normalize defaults anything that is not Closed to Open.
func (t FoamType) Normalize() FoamType {
	if t == FoamClosed {
		return FoamClosed
	}
	return FoamOpen
}

// FoamApplication is one foam layer sprayed over an area.
type FoamApplication struct {
	ID              string   `json:"id"`
	FoamType        FoamType `json:"foamType"`
	FoamThickness   float64  `json:"foamThickness"`
	MaterialPrice   float64  `json:"materialPrice"`
	MaterialMarkup  float64  `json:"materialMarkup"`
	BoardFeetPerSet float64  `json:"boardFeetPerSet"`
}

// Area is a surface of the job. Either AreaSqFt or Length/Width is authoritative, never both.
type Area struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	AreaSqFt               float64           `json:"areaSqFt"`
	Length                 float64           `json:"length"`
	Width                  float64           `json:"width"`
	AreaType               AreaType          `json:"areaType"`
	RoofPitch              string            `json:"roofPitch"`
	ApplyPitchToManualArea bool              `json:"applyPitchToManualArea"`
	FoamApplications       []FoamApplication `json:"foamApplications"`
}

// Clone returns a copy of the area that shares no slices with a.
func (a Area) Clone() Area {
	out := a
	out.FoamApplications = append([]FoamApplication(nil), a.FoamApplications...)
	return out
}

// Surface returns the geometry of a.
func (a Area) Surface() geometry.Surface {
	shape := geometry.Flat
	switch a.AreaType.Normalize() {
	case AreaRoofDeck:
		shape = geometry.RoofDeck
	case AreaGable:
		shape = geometry.Gable
	}
	return geometry.Surface{
		SqFt:                   a.AreaSqFt,
		Length:                 a.Length,
		Width:                  a.Width,
		Shape:                  shape,
		Pitch:                  a.RoofPitch,
		ApplyPitchToManualArea: a.ApplyPitchToManualArea,
	}
}

// GlobalInputs are the job-wide labor and logistics inputs.
type GlobalInputs struct {
	LaborHours      float64 `json:"laborHours"`
	ManualLaborRate float64 `json:"manualLaborRate"`
	LaborMarkup     float64 `json:"laborMarkup"`
	TravelDistance  float64 `json:"travelDistance"`
	TravelRate      float64 `json:"travelRate"`
	WasteDisposal   float64 `json:"wasteDisposal"`
	EquipmentRental float64 `json:"equipmentRental"`
}

// BusinessSettings describe the monthly overhead of the business.
type BusinessSettings struct {
	Salaries             float64 `json:"salaries" yaml:"salaries"`
	Rent                 float64 `json:"rent" yaml:"rent"`
	RigLease             float64 `json:"rigLease" yaml:"rig_lease"`
	TruckLease           float64 `json:"truckLease" yaml:"truck_lease"`
	Insurance            float64 `json:"insurance" yaml:"insurance"`
	Marketing            float64 `json:"marketing" yaml:"marketing"`
	Software             float64 `json:"software" yaml:"software"`
	Other                float64 `json:"other" yaml:"other"`
	ExpectedMonthlyHours float64 `json:"expectedMonthlyHours" yaml:"expected_monthly_hours"`
	TargetNetMargin      float64 `json:"targetNetMargin" yaml:"target_net_margin"`
}

// OverheadCategories returns the eight monthly overhead amounts.
func (b BusinessSettings) OverheadCategories() []float64 {
	return []float64{b.Salaries, b.Rent, b.RigLease, b.TruckLease, b.Insurance, b.Marketing, b.Software, b.Other}
}

// Actuals are post-job measurements. A nil field is unset and falls back to the estimate.
type Actuals struct {
	ActualLaborHours    *float64 `json:"actualLaborHours"`
	ActualOpenGallons   *float64 `json:"actualOpenGallons"`
	ActualClosedGallons *float64 `json:"actualClosedGallons"`
}

// Metadata describes the estimate itself.
type Metadata struct {
	Name     string `json:"name"`
	Customer string `json:"customer"`
	Address  string `json:"address"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

// State is an immutable snapshot of everything the engine reads.
type State struct {
	Metadata Metadata
	Global   GlobalInputs
	Settings BusinessSettings
	Areas    []Area
	Actuals  Actuals
}

// Clone deep-copies the snapshot.
func (s State) Clone() State {
	out := s
	out.Areas = make([]Area, len(s.Areas))
	for i, a := range s.Areas {
		out.Areas[i] = a.Clone()
	}
	out.Actuals = Actuals{
		ActualLaborHours:    clonePtr(s.Actuals.ActualLaborHours),
		ActualOpenGallons:   clonePtr(s.Actuals.ActualOpenGallons),
		ActualClosedGallons: clonePtr(s.Actuals.ActualClosedGallons),
	}
	return out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Float returns a pointer to v, for populating Actuals.
func Float(v float64) *float64 {
	return &v
}
