package models

// Author is the typed target for the bean output converter demo.
type Author struct {
	Author string   `json:"author"`
	Books  []string `json:"books"`
}
