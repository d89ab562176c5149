// Package schema provides structural validation for decoded JSON values.
//
// Shapes describe the fields a decoded object must carry. Validation fails
// fast on the first violation and reports the field path, the expected
// kind, and the value actually received. Unknown extra fields are
// permitted and ignored, which tolerates drift in model output; enum
// fields must match a member of a fixed closed set exactly, case variants
// included.
package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the primitive kind a field must hold.
type Kind string

const (
	// KindString accepts string values.
	KindString Kind = "string"
	// KindBool accepts boolean values.
	KindBool Kind = "bool"
	// KindNumber accepts numeric values (JSON numbers decode to float64).
	KindNumber Kind = "number"
	// KindObject accepts nested objects.
	KindObject Kind = "object"
	// KindEnum accepts a string drawn from the field's Enum members.
	KindEnum Kind = "enum"
)

// Field describes one named parameter in a shape.
type Field struct {
	// Name is the stable identifier consumed by the external executor.
	Name string

	// Kind is the expected primitive kind.
	Kind Kind

	// Required marks fields that must be present.
	Required bool

	// Enum lists the closed member set for KindEnum fields.
	Enum []string

	// Default is filled in for absent optional fields by ApplyDefaults.
	Default any

	// Description is rendered into prompts, never used for validation.
	Description string
}

// Shape is an ordered list of fields. Order matters: validation reports
// the first violated field in declaration order.
type Shape struct {
	Fields []Field
}

// ValidationError reports the first violated field.
type ValidationError struct {
	Path     string
	Expected string
	Actual   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %v", e.Path, e.Expected, formatActual(e.Actual))
}

func formatActual(v any) string {
	if v == nil {
		return "nothing"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v (%T)", v, v)
}

// Validate checks value against shape, failing fast on the first violated
// field. A nil return means the value conforms.
func Validate(value map[string]any, shape Shape) error {
	for _, f := range shape.Fields {
		v, present := value[f.Name]
		if !present {
			if f.Required {
				return &ValidationError{Path: f.Name, Expected: expectation(f), Actual: nil}
			}
			continue
		}

		switch f.Kind {
		case KindString:
			if _, ok := v.(string); !ok {
				return &ValidationError{Path: f.Name, Expected: expectation(f), Actual: v}
			}
		case KindBool:
			if _, ok := v.(bool); !ok {
				return &ValidationError{Path: f.Name, Expected: expectation(f), Actual: v}
			}
		case KindNumber:
			if !isNumber(v) {
				return &ValidationError{Path: f.Name, Expected: expectation(f), Actual: v}
			}
		case KindObject:
			if _, ok := v.(map[string]any); !ok {
				return &ValidationError{Path: f.Name, Expected: expectation(f), Actual: v}
			}
		case KindEnum:
			s, ok := v.(string)
			if !ok || !contains(f.Enum, s) {
				return &ValidationError{Path: f.Name, Expected: expectation(f), Actual: v}
			}
		default:
			return &ValidationError{Path: f.Name, Expected: "known kind", Actual: string(f.Kind)}
		}
	}
	return nil
}

// ApplyDefaults returns args with defaults filled in for absent optional
// fields that declare one. The input map is not mutated.
func ApplyDefaults(args map[string]any, shape Shape) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	for _, f := range shape.Fields {
		if f.Default == nil {
			continue
		}
		if _, present := out[f.Name]; !present {
			out[f.Name] = f.Default
		}
	}
	return out
}

// expectation renders the expected kind for diagnostics, spelling out
// enum members so the operator sees the legal values.
func expectation(f Field) string {
	if f.Kind == KindEnum {
		return fmt.Sprintf("one of [%s]", strings.Join(f.Enum, ", "))
	}
	return string(f.Kind)
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return true
	}
	return false
}

func contains(set []string, s string) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}
