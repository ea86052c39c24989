package analysis

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema describes the shape the model must return. Key presence and
// types are enforced; score values are deliberately not bounds-checked so
// they pass through to callers unchanged.
const resultSchema = `{
  "type": "object",
  "required": ["overall_score", "breakdown", "recommendations"],
  "properties": {
    "overall_score": {"type": "integer"},
    "breakdown": {
      "type": "object",
      "required": ["naming", "modularity", "comments", "formatting", "reusability", "best_practices"],
      "properties": {
        "naming": {"type": "integer"},
        "modularity": {"type": "integer"},
        "comments": {"type": "integer"},
        "formatting": {"type": "integer"},
        "reusability": {"type": "integer"},
        "best_practices": {"type": "integer"}
      }
    },
    "recommendations": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

var compiledResultSchema = gojsonschema.NewStringLoader(resultSchema)

// validateResultShape checks a raw JSON document against the result schema.
func validateResultShape(raw []byte) error {
	result, err := gojsonschema.Validate(compiledResultSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("model output does not match result schema: %s", strings.Join(issues, "; "))
}
