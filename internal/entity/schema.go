package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildExtractionResultSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map. Callers validate emitted ExtractionResult JSON against it
// before handing the payload downstream.
func BuildExtractionResultSchema() map[string]any {
	score := map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0}
	confidence := map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
	stringList := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

	gap := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"field_name":  map[string]any{"type": "string", "minLength": 1},
			"remediation": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"field_name", "remediation"},
	}

	signal := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rule_name":       map[string]any{"type": "string", "minLength": 1},
			"field_name":      map[string]any{"type": "string"},
			"inferred_value":  map[string]any{"type": "string"},
			"confidence":      confidence,
			"evidence":        map[string]any{"type": "string"},
			"requires_review": map[string]any{"type": "boolean"},
		},
		"required": []string{"rule_name", "confidence"},
	}

	validation := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"completeness_score":     score,
			"data_quality_score":     score,
			"overall_score":          score,
			"critical_gaps":          map[string]any{"type": "array", "items": gap},
			"important_gaps":         map[string]any{"type": "array", "items": gap},
			"anomalies":              stringList,
			"warnings":               stringList,
			"ready_for_processing":   map[string]any{"type": "boolean"},
			"requires_manual_review": map[string]any{"type": "boolean"},
		},
		"required": []string{"completeness_score", "data_quality_score", "overall_score"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success":               map[string]any{"type": "boolean"},
			"document":              map[string]any{"type": "object"},
			"classification":        map[string]any{"type": "object"},
			"classifier_confidence": confidence,
			"signals":               map[string]any{"type": "array", "items": signal},
			"validation_result":     validation,
			"summary":               map[string]any{"type": "object"},
			"source_file":           map[string]any{"type": "string"},
			"processed_at":          map[string]any{"type": "string"},
			"error":                 map[string]any{"type": "string"},
		},
		"required": []string{"success", "classifier_confidence", "summary", "processed_at"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
