package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ReturnsRankedKeywords(t *testing.T) {
	ke := NewKeywordExtractor()

	keywords, err := ke.Extract("Carina Consultancy offers cloud migration and architecture reviews for software teams.", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, keywords)
	assert.LessOrEqual(t, len(keywords), 5)
	for _, word := range keywords {
		assert.NotContains(t, []string{"and", "for", "the"}, word)
	}
}

func TestExtract_RespectsLimit(t *testing.T) {
	ke := NewKeywordExtractor()

	keywords, err := ke.Extract("rowing sailing shooting skateboarding surfing wrestling weightlifting", 3)
	require.NoError(t, err)
	assert.Len(t, keywords, 3)
}

func TestExtract_SkipsShortAndNonAlphabeticTokens(t *testing.T) {
	ke := NewKeywordExtractor()

	keywords, err := ke.Extract("Go v2 is at 100% coverage", 10)
	require.NoError(t, err)
	for _, word := range keywords {
		assert.GreaterOrEqual(t, len(word), 3)
		assert.NotContains(t, word, "%")
	}
}
