package config

import (
	_ "embed"
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Schema definitions.
const (
	DefConfig   = "#Config"
	DefScenario = "#Scenario"
)

// ErrCodeInvalid marks a document rejected by the schema.
const ErrCodeInvalid = "SCHEMA_INVALID"

// SchemaError reports why a document does not satisfy a definition.
type SchemaError struct {
	Code       string
	Definition string
	Details    []string
}

func (e *SchemaError) Error() string {
	if len(e.Details) == 1 {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Definition, e.Details[0])
	}
	return fmt.Sprintf("%s: %s: %d problems, first: %s", e.Code, e.Definition, len(e.Details), e.Details[0])
}

// IsSchemaError returns true if err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// Schema validates YAML documents against the embedded CUE definitions.
// A Schema is not safe for concurrent use.
type Schema struct {
	ctx  *cue.Context
	root cue.Value
}

// LoadSchema compiles the embedded schema.
func LoadSchema() (*Schema, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{ctx: ctx, root: root}, nil
}

// ValidateYAML checks a YAML document against the named definition.
func (s *Schema) ValidateYAML(def string, data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return s.Validate(def, doc)
}

// Validate checks a decoded document against the named definition.
func (s *Schema) Validate(def string, doc any) error {
	schema := s.root.LookupPath(cue.ParsePath(def))
	if !schema.Exists() {
		return fmt.Errorf("schema has no definition %s", def)
	}

	v := schema.Unify(s.ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		var details []string
		for _, e := range cueerrors.Errors(err) {
			details = append(details, e.Error())
		}
		if len(details) == 0 {
			details = []string{err.Error()}
		}
		return &SchemaError{Code: ErrCodeInvalid, Definition: def, Details: details}
	}
	return nil
}
