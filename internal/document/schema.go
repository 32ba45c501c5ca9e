package document

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// The schema accepts both current and legacy area shapes; migration happens after validation.
const documentSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["areas"],
  "definitions": {
    "amount": { "type": ["number", "null"] },
    "application": {
      "type": "object",
      "properties": {
        "id": { "type": ["string", "number"] },
        "foamType": { "enum": ["Open", "Closed"] },
        "foamThickness": { "$ref": "#/definitions/amount" },
        "materialPrice": { "$ref": "#/definitions/amount" },
        "materialMarkup": { "$ref": "#/definitions/amount" },
        "boardFeetPerSet": { "$ref": "#/definitions/amount" }
      }
    },
    "area": {
      "type": "object",
      "properties": {
        "id": { "type": ["string", "number"] },
        "name": { "type": "string" },
        "areaSqFt": { "$ref": "#/definitions/amount" },
        "length": { "$ref": "#/definitions/amount" },
        "width": { "$ref": "#/definitions/amount" },
        "areaType": { "type": "string" },
        "roofPitch": { "type": "string" },
        "applyPitchToManualArea": { "type": "boolean" },
        "foamType": { "enum": ["Open", "Closed"] },
        "foamThickness": { "$ref": "#/definitions/amount" },
        "materialPrice": { "$ref": "#/definitions/amount" },
        "materialMarkup": { "$ref": "#/definitions/amount" },
        "boardFeetPerSet": { "$ref": "#/definitions/amount" },
        "foamApplications": {
          "type": ["array", "null"],
          "items": { "$ref": "#/definitions/application" }
        }
      }
    }
  },
  "properties": {
    "version": { "type": "integer", "minimum": 1 },
    "id": { "type": "string" },
    "estimate": { "type": "object" },
    "globalInputs": {
      "type": "object",
      "additionalProperties": { "$ref": "#/definitions/amount" }
    },
    "businessSettings": {
      "type": ["object", "null"],
      "additionalProperties": { "$ref": "#/definitions/amount" }
    },
    "actuals": {
      "type": ["object", "null"],
      "additionalProperties": { "$ref": "#/definitions/amount" }
    },
    "areas": {
      "type": "array",
      "items": { "$ref": "#/definitions/area" }
    },
    "savedAt": { "type": "string" }
  }
}`

var documentSchemaLoader = gojsonschema.NewStringLoader(documentSchemaJSON)

// SchemaError lists every violation found in a document.
type SchemaError struct {
	Messages []string
}

func (e *SchemaError) Error() string {
	return "invalid estimate document: " + strings.Join(e.Messages, "; ")
}

func validate(raw []byte) error {
	result, err := gojsonschema.Validate(documentSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate estimate document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return &SchemaError{Messages: msgs}
}
