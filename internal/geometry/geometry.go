// Package geometry resolves the sprayable square footage of a job area.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPitchFormat is returned when a roof pitch is not "rise/run" with run > 0.
var ErrInvalidPitchFormat = errors.New("invalid pitch format")

// Shape decides which adjustment applies to a surface.
type Shape int

const (
	Flat Shape = iota
	RoofDeck
	Gable
)

// Surface is the geometric description of an area.
type Surface struct {
	SqFt                   float64
	Length                 float64
	Width                  float64
	Shape                  Shape
	Pitch                  string
	ApplyPitchToManualArea bool
}

// ParsePitch splits a "rise/run" string. Rise must be >= 0 and run > 0.
func ParsePitch(pitch string) (rise, run float64, err error) {
	r, n, ok := strings.Cut(strings.TrimSpace(pitch), "/")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPitchFormat, pitch)
	}
	rise, err = strconv.ParseFloat(strings.TrimSpace(r), 64)
	if err != nil || math.IsNaN(rise) || math.IsInf(rise, 0) || rise < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPitchFormat, pitch)
	}
	run, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	if err != nil || math.IsNaN(run) || math.IsInf(run, 0) || run <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPitchFormat, pitch)
	}
	return rise, run, nil
}

// PitchFactor converts a horizontal footprint into sloped surface area.
func PitchFactor(pitch string) (float64, error) {
	rise, run, err := ParsePitch(pitch)
	if err != nil {
		return 1, err
	}
	return math.Sqrt(rise*rise+run*run) / run, nil
}

// EffectiveSqFt resolves the sprayable area. When the pitch cannot be parsed the
// unadjusted footprint is returned together with ErrInvalidPitchFormat.
func EffectiveSqFt(s Surface) (float64, error) {
	if s.SqFt > 0 {
		if s.Shape == RoofDeck && s.ApplyPitchToManualArea {
			factor, err := PitchFactor(s.Pitch)
			return nonNegative(s.SqFt * factor), err
		}
		return nonNegative(s.SqFt), nil
	}

	sqft := s.Length * s.Width
	switch s.Shape {
	case RoofDeck:
		factor, err := PitchFactor(s.Pitch)
		return nonNegative(sqft * factor), err
	case Gable:
		return nonNegative(0.5 * sqft), nil
	}
	return nonNegative(sqft), nil
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
