package engine

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analysis.schema.json
var analysisSchemaJSON string

var analysisSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(analysisSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("analysis schema invalid: %v", err))
	}
	analysisSchema = schema
}

// parseAnalysis parses AI output strictly as JSON, validates it against the
// Analysis schema, and normalizes the derived fields. Any deviation from the
// contract is an error; the orchestrator treats it as a fallback trigger.
func parseAnalysis(raw string) (Analysis, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Analysis{}, fmt.Errorf("empty AI output")
	}

	result, err := analysisSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return Analysis{}, fmt.Errorf("ai output parse: %w", err)
	}
	if !result.Valid() {
		return Analysis{}, fmt.Errorf("ai output schema: %s", formatSchemaErrors(result))
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("ai output decode: %w", err)
	}
	analysis.Normalize()
	return analysis, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	errs := result.Errors()
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return strings.Join(parts, "; ")
}
