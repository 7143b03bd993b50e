package grammardef

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the structural shape every JSON grammar document
// must satisfy before it is even unmarshaled into a Document, pushing
// malformed-document failures to load time instead of pattern-compile
// or tokenize time.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "rules"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "rules": {
      "type": "array",
      "items": {"$ref": "#/definitions/rule"}
    }
  },
  "definitions": {
    "rule": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "pattern": {"type": "string"},
        "lookbehind": {"type": "boolean"},
        "greedy": {"type": "boolean"},
        "ignoreCase": {"type": "boolean"},
        "ref": {"type": "string"},
        "inside": {"type": "object"},
        "patterns": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["pattern"]
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// ValidateJSON checks raw JSON bytes against the grammar document
// schema before they are unmarshaled into a Document.
func ValidateJSON(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("grammardef: schema validation: %w", err)
	}
	if !result.Valid() {
		var errs []error
		for _, re := range result.Errors() {
			errs = append(errs, fmt.Errorf("%s: %s", re.Field(), re.Description()))
		}
		return fmt.Errorf("grammardef: invalid grammar document: %v", errs)
	}
	return nil
}
