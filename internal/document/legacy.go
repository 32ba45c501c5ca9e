package document

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"

	"github.com/Simplici0/foamquote/internal/estimate"
)

// looseID accepts string or numeric identifiers; older saves used timestamps.
type looseID string

func (l *looseID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = looseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = looseID(n.String())
	return nil
}

type wireApplication struct {
	ID              looseID           `json:"id"`
	FoamType        estimate.FoamType `json:"foamType"`
	FoamThickness   *float64          `json:"foamThickness"`
	MaterialPrice   *float64          `json:"materialPrice"`
	MaterialMarkup  *float64          `json:"materialMarkup"`
	BoardFeetPerSet *float64          `json:"boardFeetPerSet"`
}

// wireArea embeds the legacy per-area foam scalars next to the current fields.
type wireArea struct {
	wireApplication

	ID                     looseID           `json:"id"`
	Name                   string            `json:"name"`
	AreaSqFt               float64           `json:"areaSqFt"`
	Length                 float64           `json:"length"`
	Width                  float64           `json:"width"`
	AreaType               estimate.AreaType `json:"areaType"`
	RoofPitch              string            `json:"roofPitch"`
	ApplyPitchToManualArea bool              `json:"applyPitchToManualArea"`
	FoamApplications       []wireApplication `json:"foamApplications"`
}

type wireDocument struct {
	Version          int                        `json:"version"`
	ID               string                     `json:"id"`
	Estimate         estimate.Metadata          `json:"estimate"`
	GlobalInputs     estimate.GlobalInputs      `json:"globalInputs"`
	BusinessSettings *estimate.BusinessSettings `json:"businessSettings"`
	Areas            []wireArea                 `json:"areas"`
	Actuals          estimate.Actuals           `json:"actuals"`
	SavedAt          string                     `json:"savedAt"`
}

// toApplication fills any missing field from the foam type's factory defaults.
func (w wireApplication) toApplication() estimate.FoamApplication {
	app := estimate.FoamDefaults(w.FoamType)
	app.ID = string(w.ID)
	if w.FoamThickness != nil {
		app.FoamThickness = *w.FoamThickness
	}
	if w.MaterialPrice != nil {
		app.MaterialPrice = *w.MaterialPrice
	}
	if w.MaterialMarkup != nil {
		app.MaterialMarkup = *w.MaterialMarkup
	}
	if w.BoardFeetPerSet != nil && *w.BoardFeetPerSet > 0 {
		app.BoardFeetPerSet = *w.BoardFeetPerSet
	}
	return app
}

// migrateArea maps any supported area shape onto the current one. Areas saved before
// multiple foam layers existed get a single application built from their scalar fields.
func migrateArea(w wireArea) estimate.Area {
	apps := lo.Map(w.FoamApplications, func(a wireApplication, _ int) estimate.FoamApplication {
		return a.toApplication()
	})
	if len(apps) == 0 {
		apps = []estimate.FoamApplication{w.wireApplication.toApplication()}
	}
	for i := range apps {
		if strings.TrimSpace(apps[i].ID) == "" {
			apps[i].ID = estimate.NewID()
		}
	}

	id := strings.TrimSpace(string(w.ID))
	if id == "" {
		id = estimate.NewID()
	}

	return estimate.NormalizeArea(estimate.Area{
		ID:                     id,
		Name:                   w.Name,
		AreaSqFt:               w.AreaSqFt,
		Length:                 w.Length,
		Width:                  w.Width,
		AreaType:               w.AreaType,
		RoofPitch:              w.RoofPitch,
		ApplyPitchToManualArea: w.ApplyPitchToManualArea,
		FoamApplications:       apps,
	})
}
