// Package document reads and writes the versioned JSON form of an estimate.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/Simplici0/foamquote/internal/estimate"
)

// SchemaVersion is the version written by Encode.
const SchemaVersion = 2

// ErrUnsupportedVersion is returned for documents written by a newer release.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// Document is the persisted form of an estimate.
type Document struct {
	Version          int                        `json:"version"`
	ID               string                     `json:"id,omitempty"`
	Estimate         estimate.Metadata          `json:"estimate"`
	GlobalInputs     estimate.GlobalInputs      `json:"globalInputs"`
	BusinessSettings *estimate.BusinessSettings `json:"businessSettings,omitempty"`
	Areas            []estimate.Area            `json:"areas"`
	Actuals          estimate.Actuals           `json:"actuals"`
	SavedAt          string                     `json:"savedAt,omitempty"`
}

// Decode validates, migrates and normalizes a document of any supported version.
func Decode(raw []byte) (Document, error) {
	if err := validate(raw); err != nil {
		return Document{}, err
	}

	var w wireDocument
	if err := json.Unmarshal(raw, &w); err != nil {
		return Document{}, fmt.Errorf("decode estimate document: %w", err)
	}
	if w.Version > SchemaVersion {
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, w.Version)
	}

	doc := Document{
		Version:      SchemaVersion,
		ID:           w.ID,
		Estimate:     w.Estimate,
		GlobalInputs: estimate.ClampGlobal(w.GlobalInputs),
		Areas:        lo.Map(w.Areas, func(a wireArea, _ int) estimate.Area { return migrateArea(a) }),
		Actuals:      estimate.ClampActuals(w.Actuals),
		SavedAt:      w.SavedAt,
	}
	if w.BusinessSettings != nil {
		s := estimate.ClampSettings(*w.BusinessSettings)
		doc.BusinessSettings = &s
	}
	return doc, nil
}

// Encode writes doc at the current schema version.
func Encode(doc Document) ([]byte, error) {
	doc.Version = SchemaVersion
	if doc.Areas == nil {
		doc.Areas = []estimate.Area{}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode estimate document: %w", err)
	}
	return out, nil
}

// Migrate upgrades raw to the current schema version.
func Migrate(raw []byte) ([]byte, error) {
	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Encode(doc)
}

// State builds the engine snapshot. fallback is used when the document carries no
// business settings of its own.
func (d Document) State(fallback estimate.BusinessSettings) estimate.State {
	settings := fallback
	if d.BusinessSettings != nil {
		settings = *d.BusinessSettings
	}
	s := estimate.State{
		Metadata: d.Estimate,
		Global:   d.GlobalInputs,
		Settings: settings,
		Areas:    d.Areas,
		Actuals:  d.Actuals,
	}
	return s.Clone()
}

// FromState captures a snapshot as a document.
func FromState(id string, s estimate.State) Document {
	s = s.Clone()
	settings := s.Settings
	return Document{
		Version:          SchemaVersion,
		ID:               id,
		Estimate:         s.Metadata,
		GlobalInputs:     s.Global,
		BusinessSettings: &settings,
		Areas:            s.Areas,
		Actuals:          s.Actuals,
	}
}
