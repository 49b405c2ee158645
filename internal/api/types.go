// Package api holds the JSON payloads of the HTTP service and their schemas.
package api

import (
	"strings"
	"unicode/utf8"
)

// ExtractionResult is the 200 body of POST /extract.
type ExtractionResult struct {
	Success       bool     `json:"success"`
	Filename      string   `json:"filename"`
	ExtractedText string   `json:"extracted_text"`
	Suggestions   []string `json:"suggestions"`
	TextLength    int      `json:"text_length"`
	WordCount     int      `json:"word_count"`
}

// NewExtractionResult derives the counts from text. TextLength counts
// characters, not bytes.
func NewExtractionResult(filename, text string, suggestions []string) ExtractionResult {
	if suggestions == nil {
		suggestions = []string{}
	}
	return ExtractionResult{
		Success:       true,
		Filename:      filename,
		ExtractedText: text,
		Suggestions:   suggestions,
		TextLength:    utf8.RuneCountInString(text),
		WordCount:     len(strings.Fields(text)),
	}
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
