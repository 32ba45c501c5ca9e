package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/document"
	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/geometry"
	"github.com/Simplici0/foamquote/internal/store"
)

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps an error onto the API status codes and logs anything unexpected.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *document.SchemaError
	var floorErr *estimate.FloorError
	switch {
	case errors.As(err, &floorErr):
		writeError(w, http.StatusUnprocessableEntity, floorErr.Message)
	case errors.As(err, &schemaErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid estimate document", Details: schemaErr.Messages})
	case errors.Is(err, document.ErrUnsupportedVersion),
		errors.Is(err, estimate.ErrLastApplication),
		errors.Is(err, geometry.ErrInvalidPitchFormat):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errMalformedBody):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, estimate.ErrAreaNotFound),
		errors.Is(err, estimate.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return raw, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	raw, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// decodeDocument reads an estimate document of any supported version.
func decodeDocument(w http.ResponseWriter, r *http.Request) (document.Document, error) {
	raw, err := readBody(w, r)
	if err != nil {
		return document.Document{}, err
	}
	if !json.Valid(raw) {
		return document.Document{}, fmt.Errorf("%w: body is not JSON", errMalformedBody)
	}
	return document.Decode(raw)
}
