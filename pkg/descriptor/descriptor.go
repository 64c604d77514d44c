// Package descriptor parses and validates template descriptor documents.
//
// A descriptor is a JSON (comments and trailing commas allowed) or YAML
// document with four required top-level keys:
//
//	{
//	  "name": "cpp-test",
//	  "variables": { "name": { "%NAME%": "v", "%NAME-UPCASE%": "upper(v)" } },
//	  "constants": { "%AUTHOR%": "\"John Doe\"" },
//	  "actions": [
//	    ["mkdir -p tests"],
//	    ["tests/%NAME-LOWCASE%_test.hpp", "test/test.hpp"]
//	  ]
//	}
//
// "arguments" is accepted in place of "variables" and "package" in place of
// "actions". Other keys are ignored, except for the optional "description".
// A descriptor missing any required key is rejected as a whole.
package descriptor

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/ordered"
)

// Field names of a descriptor document
const (
	FieldName        = "name"
	FieldVariables   = "variables"
	FieldConstants   = "constants"
	FieldActions     = "actions"
	FieldDescription = "description"
)

// aliases maps each required field to the older names it may appear under
var aliases = map[string][]string{
	FieldVariables: {"arguments"},
	FieldActions:   {"package"},
}

// RequiredFields lists the top-level keys every descriptor must carry
var RequiredFields = []string{FieldName, FieldVariables, FieldConstants, FieldActions}

// Format is the document syntax of a descriptor
type Format string

const (
	// FormatJSON covers plain JSON and JSONC
	FormatJSON Format = "json"

	// FormatYAML is YAML 1.2
	FormatYAML Format = "yaml"
)

// Extension is the file extension of native descriptor files
const Extension = ".templatizer"

// FormatFromPath picks the format from a file extension. Unknown extensions
// are treated as JSON, the native descriptor syntax.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Descriptor is the validated, unresolved definition of one template
type Descriptor struct {
	Name        string                             `validate:"required"`
	Description string                             `validate:"-"`
	Variables   *ordered.Map[*ordered.Map[string]] `validate:"required"`
	Constants   *ordered.Map[string]               `validate:"required"`
	Actions     [][]string                         `validate:"required,dive,min=1,max=2,dive,required"`

	// Dir is the absolute directory the descriptor was loaded from. Relative
	// source templates resolve against it.
	Dir string `validate:"-"`
}

// Parse decodes and validates a descriptor document
func Parse(data []byte, format Format) (*Descriptor, error) {
	var (
		doc document
		err error
	)

	switch format {
	case FormatJSON:
		doc, err = newJSONDocument(data)
	case FormatYAML:
		doc, err = newYAMLDocument(data)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown descriptor format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "malformed %s descriptor", format)
	}

	d := &Descriptor{}
	targets := map[string]interface{}{
		FieldName:      &d.Name,
		FieldVariables: &d.Variables,
		FieldConstants: &d.Constants,
		FieldActions:   &d.Actions,
	}

	for _, field := range RequiredFields {
		key, ok := lookup(doc, field)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidTemplate, "missing required field %q", field).
				WithDetail("field", field)
		}
		if err := doc.decode(key, targets[field]); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidTemplate, "invalid field %q", field).
				WithDetail("field", field)
		}
	}

	if doc.has(FieldDescription) {
		// a description of the wrong type is ignored like any other extra key
		_ = doc.decode(FieldDescription, &d.Description)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// lookup finds the key under which field is present, trying aliases last
func lookup(doc document, field string) (string, bool) {
	if doc.has(field) {
		return field, true
	}
	for _, alias := range aliases[field] {
		if doc.has(alias) {
			return alias, true
		}
	}
	return "", false
}

// Validate checks the structural rules of a descriptor
func (d *Descriptor) Validate() error {
	if err := validateStruct(d); err != nil {
		return err
	}

	var nilArg string
	d.Variables.Range(func(arg string, tokens *ordered.Map[string]) bool {
		if tokens == nil {
			nilArg = arg
			return false
		}
		return true
	})
	if nilArg != "" {
		return errors.Newf(errors.ErrInvalidTemplate, "variables for argument %q must be an object", nilArg).
			WithDetail("field", FieldVariables).
			WithDetail("argument", nilArg)
	}

	return nil
}
