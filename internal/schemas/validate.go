// Package schemas provides JSON Schema validation for structured data returned by the model.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const careerPathSchemaName = "career_path.schema.json"

//go:embed career_path.schema.json
var careerPathSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Summary joins all field errors on one line, for logs and rejection reasons.
func (ve *ValidationError) Summary() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		parts = append(parts, err.Field+": "+err.Message)
	}
	return strings.Join(parts, "; ")
}

var compiledCareerPath = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(careerPathSchema))
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    careerPathSchemaName,
			Message: "embedded schema failed to compile",
			Cause:   err,
		}
	}
	return schema, nil
})

// CareerPathSchema returns the embedded JSON Schema for one CareerPath entry.
func CareerPathSchema() string {
	return careerPathSchema
}

// ValidateCareerPath validates one decoded entry (typically a map[string]any)
// against the embedded CareerPath schema.
func ValidateCareerPath(entry any) error {
	schema, err := compiledCareerPath()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(entry))
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	return buildValidationError(result)
}

// CareerPathRequired returns the schema's mandatory property names.
func CareerPathRequired() []string {
	var doc struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal([]byte(careerPathSchema), &doc); err != nil {
		return nil
	}
	return doc.Required
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return buildValidationError(result)
}

func buildValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
