package estimate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/Simplici0/foamquote/internal/geometry"
)

var (
	ErrAreaNotFound        = errors.New("area not found")
	ErrApplicationNotFound = errors.New("foam application not found")
	ErrLastApplication     = errors.New("an area must keep at least one foam application")
)

// AddArea appends a new area of type t holding one open-cell application.
func AddArea(s State, t AreaType) State {
	out := s.Clone()
	out.Areas = append(out.Areas, NewArea(fmt.Sprintf("Area %d", len(s.Areas)+1), t))
	return out
}

// RemoveArea drops the area with the given id.
func RemoveArea(s State, id string) (State, error) {
	if _, _, ok := lo.FindIndexOf(s.Areas, func(a Area) bool { return a.ID == id }); !ok {
		return s, fmt.Errorf("remove area %s: %w", id, ErrAreaNotFound)
	}
	out := s.Clone()
	out.Areas = lo.Filter(out.Areas, func(a Area, _ int) bool { return a.ID != id })
	return out, nil
}

// UpdateArea replaces the area with the given id by fn's result, normalized.
func UpdateArea(s State, id string, fn func(Area) Area) (State, error) {
	_, idx, ok := lo.FindIndexOf(s.Areas, func(a Area) bool { return a.ID == id })
	if !ok {
		return s, fmt.Errorf("update area %s: %w", id, ErrAreaNotFound)
	}
	out := s.Clone()
	updated := fn(out.Areas[idx].Clone())
	updated.ID = id
	out.Areas[idx] = updated
	return out, nil
}

// SetAreaName renames an area.
func SetAreaName(s State, id, name string) (State, error) {
	return UpdateArea(s, id, func(a Area) Area {
		a.Name = strings.TrimSpace(name)
		return a
	})
}

// SetAreaType changes how the area's square footage is resolved.
func SetAreaType(s State, id string, t AreaType) (State, error) {
	return UpdateArea(s, id, func(a Area) Area {
		a.AreaType = t.Normalize()
		return a
	})
}

// SetAreaSqFt makes the direct square footage authoritative.
func SetAreaSqFt(s State, id string, sqft float64) (State, error) {
	return UpdateArea(s, id, func(a Area) Area {
		a.AreaSqFt = Clamp(sqft)
		if a.AreaSqFt > 0 {
			a.Length, a.Width = 0, 0
		}
		return a
	})
}

// SetAreaLength makes length x width authoritative.
func SetAreaLength(s State, id string, length float64) (State, error) {
	return UpdateArea(s, id, func(a Area) Area {
		a.Length = Clamp(length)
		return dimensionsAuthoritative(a)
	})
}

// SetAreaWidth makes length x width authoritative.
func SetAreaWidth(s State, id string, width float64) (State, error) {
	return UpdateArea(s, id, func(a Area) Area {
		a.Width = Clamp(width)
		return dimensionsAuthoritative(a)
	})
}

func dimensionsAuthoritative(a Area) Area {
	if a.Length > 0 || a.Width > 0 {
		a.AreaSqFt = 0
		a.ApplyPitchToManualArea = false
	}
	return a
}

// SetRoofPitch stores a validated "rise/run" pitch. Invalid input leaves s untouched.
func SetRoofPitch(s State, id, pitch string) (State, error) {
	if _, err := geometry.PitchFactor(pitch); err != nil {
		return s, err
	}
	return UpdateArea(s, id, func(a Area) Area {
		a.RoofPitch = strings.TrimSpace(pitch)
		return a
	})
}

// SetApplyPitchToManualArea toggles pitch adjustment of a directly entered square footage.
func SetApplyPitchToManualArea(s State, id string, apply bool) (State, error) {
	return UpdateArea(s, id, func(a Area) Area {
		a.ApplyPitchToManualArea = apply
		return a
	})
}

// AddFoamApplication adds a layer of type t with factory defaults.
func AddFoamApplication(s State, areaID string, t FoamType) (State, error) {
	return UpdateArea(s, areaID, func(a Area) Area {
		a.FoamApplications = append(a.FoamApplications, NewFoamApplication(t))
		return a
	})
}

// RemoveFoamApplication drops a layer. The last layer of an area cannot be removed.
func RemoveFoamApplication(s State, areaID, appID string) (State, error) {
	area, ok := findArea(s, areaID)
	if !ok {
		return s, fmt.Errorf("remove foam application: %w", ErrAreaNotFound)
	}
	if _, _, ok := lo.FindIndexOf(area.FoamApplications, func(f FoamApplication) bool { return f.ID == appID }); !ok {
		return s, fmt.Errorf("remove foam application %s: %w", appID, ErrApplicationNotFound)
	}
	if len(area.FoamApplications) <= 1 {
		return s, ErrLastApplication
	}
	return UpdateArea(s, areaID, func(a Area) Area {
		a.FoamApplications = lo.Filter(a.FoamApplications, func(f FoamApplication, _ int) bool { return f.ID != appID })
		return a
	})
}

// UpdateFoamApplication replaces one layer by fn's result, clamped.
func UpdateFoamApplication(s State, areaID, appID string, fn func(FoamApplication) FoamApplication) (State, error) {
	area, ok := findArea(s, areaID)
	if !ok {
		return s, fmt.Errorf("update foam application: %w", ErrAreaNotFound)
	}
	_, idx, ok := lo.FindIndexOf(area.FoamApplications, func(f FoamApplication) bool { return f.ID == appID })
	if !ok {
		return s, fmt.Errorf("update foam application %s: %w", appID, ErrApplicationNotFound)
	}
	return UpdateArea(s, areaID, func(a Area) Area {
		updated := ClampApplication(fn(a.FoamApplications[idx]))
		updated.ID = appID
		a.FoamApplications[idx] = updated
		return a
	})
}

// SetFoamType switches a layer's chemistry and resets it to that type's defaults.
func SetFoamType(s State, areaID, appID string, t FoamType) (State, error) {
	return UpdateFoamApplication(s, areaID, appID, func(FoamApplication) FoamApplication {
		return FoamDefaults(t)
	})
}

// SetGlobalInputs replaces the job-wide inputs.
func SetGlobalInputs(s State, g GlobalInputs) State {
	out := s.Clone()
	out.Global = ClampGlobal(g)
	return out
}

// SetBusinessSettings replaces the overhead settings.
func SetBusinessSettings(s State, b BusinessSettings) State {
	out := s.Clone()
	out.Settings = ClampSettings(b)
	return out
}

// SetActuals replaces the post-job actuals.
func SetActuals(s State, a Actuals) State {
	out := s.Clone()
	out.Actuals = ClampActuals(a)
	return out
}

// CommitChargedLaborRate derives the labor markup from an edited charged rate.
// A rate below the actual labor rate is rejected and s is returned unchanged.
func CommitChargedLaborRate(s State, charged float64) (State, error) {
	markup, err := SolveLaborMarkup(s.Global.ManualLaborRate, charged)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	out.Global.LaborMarkup = markup
	return out, nil
}

// CommitPricePerSqFt derives a layer's material markup from an edited unit price.
// A price below the zero-markup floor is rejected and s is returned unchanged.
func CommitPricePerSqFt(s State, areaID, appID string, price float64) (State, error) {
	area, ok := findArea(s, areaID)
	if !ok {
		return s, fmt.Errorf("commit price per sqft: %w", ErrAreaNotFound)
	}
	app, ok := lo.Find(area.FoamApplications, func(f FoamApplication) bool { return f.ID == appID })
	if !ok {
		return s, fmt.Errorf("commit price per sqft %s: %w", appID, ErrApplicationNotFound)
	}
	markup, err := SolveMaterialMarkup(app, price)
	if err != nil {
		return s, err
	}
	return UpdateFoamApplication(s, areaID, appID, func(f FoamApplication) FoamApplication {
		f.MaterialMarkup = markup
		return f
	})
}

func findArea(s State, id string) (Area, bool) {
	return lo.Find(s.Areas, func(a Area) bool { return a.ID == id })
}
