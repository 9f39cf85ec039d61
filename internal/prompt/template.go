// Package prompt provides string templates with {variable} placeholders
// substituted at request time before the prompt is sent to the model.
package prompt

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z_][a-zA-Z0-9_]*\}`)

// Template is a prompt string with named placeholders.
type Template struct {
	text string
	vars map[string]string
}

// New creates a template from an inline string.
func New(text string) *Template {
	return &Template{text: text, vars: make(map[string]string)}
}

// Load reads a template from an external file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template %s: %w", path, err)
	}
	return New(string(data)), nil
}

// Set assigns a variable value. It returns the template for chaining.
func (t *Template) Set(name, value string) *Template {
	t.vars[name] = value
	return t
}

// With assigns all variables from the map.
func (t *Template) With(vars map[string]string) *Template {
	for name, value := range vars {
		t.vars[name] = value
	}
	return t
}

// Render substitutes every placeholder and fails if the template references
// a variable that was never set. Substituted values are not re-scanned, so
// document content containing braces passes through untouched.
func (t *Template) Render() (string, error) {
	for _, placeholder := range placeholderPattern.FindAllString(t.text, -1) {
		name := strings.Trim(placeholder, "{}")
		if _, ok := t.vars[name]; !ok {
			return "", fmt.Errorf("unresolved template placeholder %s", placeholder)
		}
	}
	oldnew := make([]string, 0, len(t.vars)*2)
	for name, value := range t.vars {
		oldnew = append(oldnew, "{"+name+"}", value)
	}
	return strings.NewReplacer(oldnew...).Replace(t.text), nil
}
