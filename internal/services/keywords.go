package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// KeywordExtractor pulls representative keywords out of chunk text so they
// can travel in the chunk metadata.
type KeywordExtractor struct {
	stopWords map[string]bool
	minLength int
}

func NewKeywordExtractor() *KeywordExtractor {
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
		"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
		"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
		"be": true, "been": true, "have": true, "has": true, "had": true, "do": true,
		"does": true, "did": true, "will": true, "would": true, "could": true, "should": true,
		"this": true, "that": true, "these": true, "those": true, "i": true, "you": true,
		"he": true, "she": true, "it": true, "we": true, "they": true, "my": true,
		"your": true, "his": true, "her": true, "its": true, "our": true, "their": true,
		"what": true, "which": true, "who": true, "how": true, "when": true, "where": true,
	}
	return &KeywordExtractor{stopWords: stopWords, minLength: 3}
}

type keywordScore struct {
	word  string
	score float64
}

// Extract returns up to limit keywords ranked by part-of-speech weighted
// frequency. Nouns outrank adjectives, adjectives outrank everything else.
func (ke *KeywordExtractor) Extract(text string, limit int) ([]string, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if ke.shouldSkip(word) {
			continue
		}
		scores[word] += ke.tagWeight(tok.Tag)
	}

	ranked := make([]keywordScore, 0, len(scores))
	for word, score := range scores {
		if score > 0 {
			ranked = append(ranked, keywordScore{word: word, score: score})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].word < ranked[j].word
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	keywords := make([]string, len(ranked))
	for i, entry := range ranked {
		keywords[i] = entry.word
	}
	return keywords, nil
}

func (ke *KeywordExtractor) shouldSkip(word string) bool {
	if len(word) < ke.minLength || ke.stopWords[word] {
		return true
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func (ke *KeywordExtractor) tagWeight(tag string) float64 {
	switch {
	case strings.HasPrefix(tag, "NNP"):
		return 3.0
	case strings.HasPrefix(tag, "NN"):
		return 2.0
	case strings.HasPrefix(tag, "JJ"):
		return 1.5
	case strings.HasPrefix(tag, "VB"):
		return 1.0
	default:
		return 0
	}
}
