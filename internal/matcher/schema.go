package matcher

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// outputSchemaJSON is the contract the matching service's reply must satisfy
// before any pairing is trusted.
const outputSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"donorId":   {"type": "string", "minLength": 1},
			"requestId": {"type": "string", "minLength": 1},
			"reason":    {"type": "string", "minLength": 1}
		},
		"required": ["donorId", "requestId", "reason"],
		"additionalProperties": true
	}
}`

var outputSchema = gojsonschema.NewStringLoader(outputSchemaJSON)

func validateOutput(raw string) error {
	result, err := gojsonschema.Validate(outputSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("response violates output schema: %s", strings.Join(msgs, "; "))
	}

	return nil
}
