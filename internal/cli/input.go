package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/config"
	"github.com/Simplici0/foamquote/internal/document"
	"github.com/Simplici0/foamquote/internal/estimate"
)

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func readDocument(cmd *cobra.Command, path string) (document.Document, error) {
	raw, err := readInput(cmd, path)
	if err != nil {
		return document.Document{}, err
	}
	return document.Decode(raw)
}

// loadState reads a document and resolves its business settings. A --settings file
// overrides the settings stored in the document.
func loadState(cmd *cobra.Command, opts *options, path, settingsPath string) (estimate.State, error) {
	doc, err := readDocument(cmd, path)
	if err != nil {
		return estimate.State{}, err
	}

	if settingsPath == "" {
		if doc.BusinessSettings == nil {
			opts.log.Warn("document has no business settings, using defaults", zap.String("file", path))
		}
		return doc.State(estimate.DefaultBusinessSettings()), nil
	}

	settings, err := config.LoadBusinessSettings(settingsPath)
	if err != nil {
		return estimate.State{}, err
	}
	opts.log.Debug("business settings loaded", zap.String("file", settingsPath))
	doc.BusinessSettings = nil
	return doc.State(settings), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
