package api

// BuildResultJSONSchema returns the JSON-Schema of ExtractionResult as a generic map.
func BuildResultJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"success":        map[string]any{"const": true},
			"filename":       map[string]any{"type": "string"},
			"extracted_text": map[string]any{"type": "string", "minLength": 1},
			"suggestions": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": 3,
				"maxItems": 5,
			},
			"text_length": map[string]any{"type": "integer", "minimum": 1},
			"word_count":  map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"success", "filename", "extracted_text", "suggestions", "text_length", "word_count"},
	}
}

// BuildErrorJSONSchema returns the JSON-Schema of ErrorResponse.
func BuildErrorJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"success": map[string]any{"const": false},
			"error":   map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"success", "error"},
	}
}
