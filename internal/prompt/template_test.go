package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SubstitutesVariables(t *testing.T) {
	out, err := New("List YouTubers in {genre} with {count} entries").
		Set("genre", "tech").
		Set("count", "10").
		Render()

	assert.NoError(t, err)
	assert.Equal(t, "List YouTubers in tech with 10 entries", out)
}

func TestRender_WithMap(t *testing.T) {
	out, err := New("QUESTION: {input}\nDOCUMENTS: {documents}").
		With(map[string]string{
			"input":     "What do you offer?",
			"documents": "doc one\ndoc two",
		}).Render()

	assert.NoError(t, err)
	assert.Contains(t, out, "QUESTION: What do you offer?")
	assert.Contains(t, out, "doc two")
}

func TestRender_UnresolvedPlaceholderFails(t *testing.T) {
	_, err := New("Hello {name}, welcome to {place}").Set("name", "Ada").Render()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "{place}")
}

func TestRender_BracesInValuesPassThrough(t *testing.T) {
	out, err := New("CONTEXT: {context}").
		Set("context", `{"key": "value"} and {unbalanced`).
		Render()

	assert.NoError(t, err)
	assert.Contains(t, out, `{"key": "value"}`)
}

func TestRender_RepeatedPlaceholder(t *testing.T) {
	out, err := New("{word} and {word} again").Set("word", "echo").Render()

	assert.NoError(t, err)
	assert.Equal(t, "echo and echo again", out)
}

func TestLoad_ReadsTemplateFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.st")
	require.NoError(t, os.WriteFile(path, []byte("Hello {name}!"), 0o644))

	template, err := Load(path)
	require.NoError(t, err)

	out, err := template.Set("name", "world").Render()
	assert.NoError(t, err)
	assert.Equal(t, "Hello world!", out)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.st"))
	assert.Error(t, err)
}
