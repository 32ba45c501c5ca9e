package estimate

import "github.com/google/uuid"

const (
	openThickness       = 6
	openMaterialPrice   = 1870
	openMaterialMarkup  = 75
	openBoardFeetPerSet = 14000

	closedThickness       = 2
	closedMaterialPrice   = 2470
	closedMaterialMarkup  = 60.59
	closedBoardFeetPerSet = 4000

	DefaultRoofPitch = "4/12"
)

// NewID returns a fresh identifier for areas, applications and saved estimates.
func NewID() string {
	return uuid.NewString()
}

// FoamDefaults returns the factory settings for t with no ID assigned.
func FoamDefaults(t FoamType) FoamApplication {
	if t.Normalize() == FoamClosed {
		return FoamApplication{
			FoamType:        FoamClosed,
			FoamThickness:   closedThickness,
			MaterialPrice:   closedMaterialPrice,
			MaterialMarkup:  closedMaterialMarkup,
			BoardFeetPerSet: closedBoardFeetPerSet,
		}
	}
	return FoamApplication{
		FoamType:        FoamOpen,
		FoamThickness:   openThickness,
		MaterialPrice:   openMaterialPrice,
		MaterialMarkup:  openMaterialMarkup,
		BoardFeetPerSet: openBoardFeetPerSet,
	}
}

// NewFoamApplication creates an application of type t with the factory defaults.
func NewFoamApplication(t FoamType) FoamApplication {
	app := FoamDefaults(t)
	app.ID = NewID()
	return app
}

// NewArea creates an empty area holding a single open-cell application.
func NewArea(name string, t AreaType) Area {
	return Area{
		ID:               NewID(),
		Name:             name,
		AreaType:         t.Normalize(),
		RoofPitch:        DefaultRoofPitch,
		FoamApplications: []FoamApplication{NewFoamApplication(FoamOpen)},
	}
}

// DefaultBusinessSettings is used until the business stores its own figures.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		ExpectedMonthlyHours: 160,
		TargetNetMargin:      20,
	}
}

// NewState returns a snapshot with one general area and default settings.
func NewState() State {
	return State{
		Settings: DefaultBusinessSettings(),
		Areas:    []Area{NewArea("Area 1", AreaGeneral)},
	}
}
