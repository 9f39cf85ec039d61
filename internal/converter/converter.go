// Package converter parses free-form model output into structured values.
// Each converter supplies a format instruction appended to the prompt and a
// Convert function applied to the model's reply.
package converter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// ListConverter parses comma separated values into a string slice.
type ListConverter struct{}

func (ListConverter) Format() string {
	return "Your response should be a list of comma separated values, eg: `foo, bar, baz`"
}

func (ListConverter) Convert(text string) []string {
	cleaned := stripCodeFences(text)
	parts := strings.Split(cleaned, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// MapConverter parses a JSON object into a generic map.
type MapConverter struct{}

func (MapConverter) Format() string {
	return "Your response should be in JSON format.\n" +
		"Do not include any explanations, only provide a RFC8259 compliant JSON response " +
		"following this format without deviation.\n" +
		"Do not include markdown code blocks in your response."
}

func (MapConverter) Convert(text string) (map[string]interface{}, error) {
	cleaned := stripCodeFences(text)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model output as JSON object: %w", err)
	}
	return result, nil
}

// BeanConverter parses a JSON object into a typed struct. The format
// instruction sketches the expected properties from the target's json tags.
type BeanConverter[T any] struct{}

func NewBeanConverter[T any]() BeanConverter[T] {
	return BeanConverter[T]{}
}

func (BeanConverter[T]) Format() string {
	var target T
	return "Your response should be in JSON format.\n" +
		"Do not include any explanations, only provide a RFC8259 compliant JSON response " +
		"following this format without deviation.\n" +
		"Do not include markdown code blocks in your response.\n" +
		"Here is the JSON structure your response must follow:\n" +
		structSketch(reflect.TypeOf(target))
}

func (BeanConverter[T]) Convert(text string) (T, error) {
	var result T
	cleaned := stripCodeFences(text)
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return result, fmt.Errorf("failed to parse model output into %T: %w", result, err)
	}
	return result, nil
}

// structSketch renders a JSON property sketch for a struct type, e.g.
// {"author": string, "books": [string]}.
func structSketch(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		var fields []string
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := strings.Split(field.Tag.Get("json"), ",")[0]
			if name == "-" {
				continue
			}
			if name == "" {
				name = field.Name
			}
			fields = append(fields, fmt.Sprintf("%q: %s", name, structSketch(field.Type)))
		}
		return "{" + strings.Join(fields, ", ") + "}"
	case reflect.Slice, reflect.Array:
		return "[" + structSketch(t.Elem()) + "]"
	case reflect.Map:
		return "{" + structSketch(t.Key()) + ": " + structSketch(t.Elem()) + "}"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	default:
		return "any"
	}
}

// stripCodeFences removes markdown code fences models add despite being told
// not to.
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
