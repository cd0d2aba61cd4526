// Package validation checks decoded documents against JSON schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// SchemaValidator compiles schemas from fsys on first use and caches them
type SchemaValidator struct {
	fsys    fs.FS
	printer *message.Printer

	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator reading schema files from fsys
func NewSchemaValidator(fsys fs.FS) *SchemaValidator {
	return &SchemaValidator{
		fsys:     fsys,
		printer:  message.NewPrinter(language.English),
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateYAML decodes data as YAML and validates it against the named schema
func (v *SchemaValidator) ValidateYAML(data []byte, schemaName string) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseDocument, err)
	}
	return v.Validate(doc, schemaName)
}

// Validate checks a decoded document. The document is normalized through
// JSON so YAML scalars reach the validator as JSON types.
func (v *SchemaValidator) Validate(doc any, schemaName string) error {
	schema, err := v.schema(schemaName)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseDocument, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseDocument, err)
	}

	if err := schema.Validate(inst); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *SchemaValidator) schema(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[name]; ok {
		return s, nil
	}

	f, err := v.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgLoadSchema, name, err)
	}
	defer f.Close()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgLoadSchema, name, err)
	}
	if err := v.compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgLoadSchema, name, err)
	}
	s, err := v.compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgCompileSchema, name, err)
	}

	v.schemas[name] = s
	return s, nil
}

// formatValidationError flattens the cause tree to one line per failing leaf
func (v *SchemaValidator) formatValidationError(err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%s: %w", ErrMsgValidationFailed, err)
	}

	var lines []string
	v.collectLeaves(verr, &lines)
	return fmt.Errorf("%s:\n%s", ErrMsgValidationFailed, strings.Join(lines, "\n"))
}

func (v *SchemaValidator) collectLeaves(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			v.collectLeaves(cause, lines)
		}
		return
	}

	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	*lines = append(*lines, fmt.Sprintf("  - at %s: %s", location, err.ErrorKind.LocalizedString(v.printer)))
}
