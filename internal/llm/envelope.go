package llm

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// resultsKey wraps the record array for backends whose structured output must
// be a JSON object at the root (OpenAI json_schema, Anthropic tool input).
const resultsKey = "results"

// envelopeSchema returns {"results": [ {fields...} ]} as a plain JSON-schema map.
func envelopeSchema(s RecordSchema) map[string]interface{} {
	props := make(map[string]interface{}, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = map[string]interface{}{
			"type":        "string",
			"description": f.Description,
		}
	}

	return map[string]interface{}{
		resultsKey: map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":                 "object",
				"properties":           props,
				"required":             s.Names(),
				"additionalProperties": false,
			},
		},
	}
}

// unwrapResults extracts the raw array text from an envelope object.
func unwrapResults(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("envelope is not valid JSON")
	}
	r := gjson.GetBytes(raw, resultsKey)
	if !r.Exists() {
		return "", fmt.Errorf("envelope has no %q field", resultsKey)
	}
	return r.Raw, nil
}
