package entity

import "errors"

// ErrUnknownField reports a mutation naming a field the component does not
// declare. The field set of a component is fixed at construction; hitting
// this error means a schema mismatch between sender and local expectations,
// treat it as fatal rather than recoverable.
var ErrUnknownField = errors.New("unknown component field")

// Component is a named bag of typed fields sealed at construction: values
// change, the field set never does. Implementations dispatch on field name
// with a plain switch, no reflection.
type Component interface {
	FieldNames() []string
	Field(name string) (any, error)
	SetField(name string, v any) error
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
