package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

type responseKind int

const (
	kindNone responseKind = iota
	kindTask
	kindList
)

const (
	taskSchemaURL = "https://todoctl.local/schemas/task.json"
	listSchemaURL = "https://todoctl.local/schemas/tasks.json"
)

const taskSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title", "completed", "created_at", "updated_at"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string"},
    "description": {"type": ["string", "null"]},
    "completed": {"type": "boolean"},
    "created_at": {"type": "string"},
    "updated_at": {"type": "string"}
  }
}`

const listSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"$ref": "task.json"}
}`

// SchemaError reports a response that does not match the Task contract.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected response at %s: %s", e.Path, e.Message)
}

type schemas struct {
	task *jsonschema.Schema
	list *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchema)); err != nil {
		return nil, err
	}
	if err := compiler.AddResource(listSchemaURL, strings.NewReader(listSchema)); err != nil {
		return nil, err
	}
	task, err := compiler.Compile(taskSchemaURL)
	if err != nil {
		return nil, err
	}
	list, err := compiler.Compile(listSchemaURL)
	if err != nil {
		return nil, err
	}
	return &schemas{task: task, list: list}, nil
}

func (s *schemas) validate(kind responseKind, data []byte) error {
	var schema *jsonschema.Schema
	switch kind {
	case kindTask:
		schema = s.task
	case kindList:
		schema = s.list
	default:
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return &SchemaError{Path: "(root)", Message: "invalid JSON: " + err.Error()}
	}
	if err := schema.Validate(doc); err != nil {
		return mapValidationError(err)
	}
	return nil
}

// mapValidationError reduces a jsonschema error to its first leaf cause.
func mapValidationError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &SchemaError{Path: "(root)", Message: err.Error()}
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	path := leaf.InstanceLocation
	if path == "" {
		path = "(root)"
	}
	return &SchemaError{Path: path, Message: leaf.Message}
}
