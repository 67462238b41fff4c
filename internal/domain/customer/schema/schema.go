// Package schema provides a small declarative validator for JSON documents
// decoded into map[string]any. Objects are strict: fields not declared in the
// schema are rejected. Validation collects every failing field path instead of
// stopping at the first, and fills declared defaults for absent fields.
package schema

import (
	"fmt"
	"math"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

// FieldError is a single validation failure at a JSON path.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) String() string {
	return e.Path + ": " + e.Message
}

// Schema validates a decoded JSON value at the given path and returns the
// normalized value plus any field errors.
type Schema interface {
	Validate(path string, value any) (any, []FieldError)
}

// defaulter is implemented by schemas that can produce a value for an absent
// field.
type defaulter interface {
	defaultValue() (any, bool)
}

// Ptr returns a pointer to v, for inline default literals.
func Ptr[T any](v T) *T {
	return &v
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

func fail(path, format string, args ...any) []FieldError {
	return []FieldError{{Path: path, Message: fmt.Sprintf(format, args...)}}
}

// Format names supported by String.
const (
	FormatURL      = "url"
	FormatEmail    = "email"
	FormatDateTime = "datetime"
	FormatIP       = "ip"
)

// String validates JSON strings.
type String struct {
	MinLen     int
	MaxLen     int
	Pattern    *regexp.Regexp
	PatternMsg string
	Format     string
	Default    *string
	Nullable   bool
}

func (s String) defaultValue() (any, bool) {
	if s.Default == nil {
		return nil, false
	}
	return *s.Default, true
}

func (s String) Validate(path string, value any) (any, []FieldError) {
	if value == nil {
		if s.Nullable {
			return nil, nil
		}
		return nil, fail(path, "não pode ser nulo")
	}
	str, ok := value.(string)
	if !ok {
		return nil, fail(path, "deve ser um texto")
	}
	var errs []FieldError
	if s.MinLen > 0 && len(str) < s.MinLen {
		errs = append(errs, FieldError{path, fmt.Sprintf("deve ter no mínimo %d caracteres", s.MinLen)})
	}
	if s.MaxLen > 0 && len(str) > s.MaxLen {
		errs = append(errs, FieldError{path, fmt.Sprintf("deve ter no máximo %d caracteres", s.MaxLen)})
	}
	if s.Pattern != nil && !s.Pattern.MatchString(str) {
		msg := s.PatternMsg
		if msg == "" {
			msg = "formato inválido"
		}
		errs = append(errs, FieldError{path, msg})
	}
	switch s.Format {
	case FormatURL:
		if u, err := url.Parse(str); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{path, "deve ser uma URL válida"})
		}
	case FormatEmail:
		if _, err := mail.ParseAddress(str); err != nil {
			errs = append(errs, FieldError{path, "deve ser um e-mail válido"})
		}
	case FormatDateTime:
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			errs = append(errs, FieldError{path, "deve ser uma data/hora ISO 8601"})
		}
	case FormatIP:
		if net.ParseIP(str) == nil {
			errs = append(errs, FieldError{path, "deve ser um endereço IP válido"})
		}
	}
	return str, errs
}

// Number validates JSON numbers and normalizes them to float64.
type Number struct {
	Min     *float64
	Max     *float64
	Integer bool
	Default *float64
}

func (n Number) defaultValue() (any, bool) {
	if n.Default == nil {
		return nil, false
	}
	return *n.Default, true
}

func (n Number) Validate(path string, value any) (any, []FieldError) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return nil, fail(path, "deve ser um número")
	}
	var errs []FieldError
	if n.Integer && math.Trunc(f) != f {
		errs = append(errs, FieldError{path, "deve ser um número inteiro"})
	}
	if n.Min != nil && f < *n.Min {
		errs = append(errs, FieldError{path, fmt.Sprintf("deve ser maior ou igual a %v", *n.Min)})
	}
	if n.Max != nil && f > *n.Max {
		errs = append(errs, FieldError{path, fmt.Sprintf("deve ser menor ou igual a %v", *n.Max)})
	}
	return f, errs
}

// Bool validates JSON booleans.
type Bool struct {
	Default *bool
}

func (b Bool) defaultValue() (any, bool) {
	if b.Default == nil {
		return nil, false
	}
	return *b.Default, true
}

func (b Bool) Validate(path string, value any) (any, []FieldError) {
	v, ok := value.(bool)
	if !ok {
		return nil, fail(path, "deve ser um booleano")
	}
	return v, nil
}

// Enum validates a string against a fixed set of values.
type Enum struct {
	Values   []string
	Default  *string
	Nullable bool
}

func (e Enum) defaultValue() (any, bool) {
	if e.Default == nil {
		return nil, false
	}
	return *e.Default, true
}

func (e Enum) Validate(path string, value any) (any, []FieldError) {
	if value == nil {
		if e.Nullable {
			return nil, nil
		}
		return nil, fail(path, "não pode ser nulo")
	}
	str, ok := value.(string)
	if !ok {
		return nil, fail(path, "deve ser um texto")
	}
	for _, v := range e.Values {
		if str == v {
			return str, nil
		}
	}
	return nil, fail(path, "deve ser um de: %s", strings.Join(e.Values, ", "))
}

// Array validates JSON arrays element by element.
type Array struct {
	Elem     Schema
	MinItems int
	// HasDefault makes an absent field default to Default, or to an empty
	// array when Default is nil.
	HasDefault bool
	Default    []any
}

func (a Array) defaultValue() (any, bool) {
	if !a.HasDefault {
		return nil, false
	}
	if a.Default != nil {
		return a.Default, true
	}
	return []any{}, true
}

func (a Array) Validate(path string, value any) (any, []FieldError) {
	arr, ok := value.([]any)
	if !ok {
		return nil, fail(path, "deve ser uma lista")
	}
	var errs []FieldError
	if len(arr) < a.MinItems {
		errs = append(errs, FieldError{path, fmt.Sprintf("deve ter no mínimo %d itens", a.MinItems)})
	}
	out := make([]any, len(arr))
	for i, item := range arr {
		v, itemErrs := a.Elem.Validate(fmt.Sprintf("%s[%d]", path, i), item)
		out[i] = v
		errs = append(errs, itemErrs...)
	}
	return out, errs
}

// Field is a named member of an Object.
type Field struct {
	Name     string
	Schema   Schema
	Required bool
}

// Object validates a strict JSON object: unknown keys are rejected, absent
// fields receive their schema default when one is declared.
type Object struct {
	Fields []Field
	// DefaultEmpty makes an absent field default to the object validated
	// against an empty map, so nested defaults apply.
	DefaultEmpty bool
}

func (o Object) defaultValue() (any, bool) {
	if !o.DefaultEmpty {
		return nil, false
	}
	v, errs := o.Validate("", map[string]any{})
	if len(errs) > 0 {
		return nil, false
	}
	return v, true
}

func (o Object) Validate(path string, value any) (any, []FieldError) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fail(path, "deve ser um objeto")
	}

	var errs []FieldError

	known := make(map[string]bool, len(o.Fields))
	for _, f := range o.Fields {
		known[f.Name] = true
	}
	var unknown []string
	for k := range m {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		errs = append(errs, FieldError{joinPath(path, k), "campo não reconhecido"})
	}

	out := make(map[string]any, len(o.Fields))
	for _, f := range o.Fields {
		fieldPath := joinPath(path, f.Name)
		raw, present := m[f.Name]
		if !present {
			if d, hasDefault := defaultOf(f.Schema); hasDefault {
				out[f.Name] = d
			} else if f.Required {
				errs = append(errs, FieldError{fieldPath, "campo obrigatório"})
			}
			continue
		}
		v, fieldErrs := f.Schema.Validate(fieldPath, raw)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		out[f.Name] = v
	}
	return out, errs
}

func defaultOf(s Schema) (any, bool) {
	if d, ok := s.(defaulter); ok {
		return d.defaultValue()
	}
	return nil, false
}

// StringMap validates an object with arbitrary string keys and uniform values.
type StringMap struct {
	Elem Schema
	// HasDefault makes an absent field default to an empty map.
	HasDefault bool
}

func (s StringMap) defaultValue() (any, bool) {
	if !s.HasDefault {
		return nil, false
	}
	return map[string]any{}, true
}

func (s StringMap) Validate(path string, value any) (any, []FieldError) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fail(path, "deve ser um objeto")
	}
	var errs []FieldError
	out := make(map[string]any, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, elemErrs := s.Elem.Validate(joinPath(path, k), m[k])
		if len(elemErrs) > 0 {
			errs = append(errs, elemErrs...)
			continue
		}
		out[k] = v
	}
	return out, errs
}

// Any accepts any JSON value unchanged.
type Any struct{}

func (Any) Validate(_ string, value any) (any, []FieldError) {
	return value, nil
}
