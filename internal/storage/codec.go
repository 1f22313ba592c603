package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist/internal/task"
	"github.com/nibzard/tasklist/internal/utils"
)

// ErrCorrupt marks slot data that cannot be read back as a task list.
var ErrCorrupt = errors.New("corrupt task data")

//go:embed tasks.schema.json
var schemaSource string

const schemaURL = "https://github.com/nibzard/tasklist/tasks.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader([]byte(schemaSource))); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Schema returns the JSON Schema that slot data must satisfy.
func Schema() string {
	return schemaSource
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dot-notation path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	Tasks    int // number of tasks, when the document is an array
}

// Encode serialises a list with 2-space indentation and a trailing newline.
func Encode(l task.List) ([]byte, error) {
	if l == nil {
		l = task.List{}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task list: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode validates and parses slot data. Any failure wraps ErrCorrupt.
func Decode(data []byte) (task.List, error) {
	result := Validate(data)
	if !result.Valid {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, errors.Join(result.Errors...))
	}

	var l task.List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if l == nil {
		l = task.List{}
	}
	return l, nil
}

// Validate checks slot data against the task list schema.
// Duplicate ids are reported as warnings; they do not invalidate the data.
func Validate(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: errors.New("empty document")})
		return result
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("parse: %w", err)})
		return result
	}

	schema, err := compileSchema()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("compile schema: %w", err)})
		return result
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
		return result
	}

	items, _ := doc.([]interface{})
	result.Tasks = len(items)
	seen := make(map[string]int, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]interface{})
		id, _ := obj["id"].(string)
		if first, ok := seen[id]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("[%d].id: duplicate id %q (first at [%d])", i, id, first))
			continue
		}
		seen[id] = i
	}

	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
