package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/foamquote/internal/estimate"
)

// LoadBusinessSettings reads a business-settings YAML file. Keys that are absent keep
// their default value, and a missing file yields the defaults.
func LoadBusinessSettings(path string) (estimate.BusinessSettings, error) {
	settings := estimate.DefaultBusinessSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return estimate.BusinessSettings{}, fmt.Errorf("read business settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return estimate.BusinessSettings{}, fmt.Errorf("parse business settings %s: %w", path, err)
	}
	return estimate.ClampSettings(settings), nil
}
