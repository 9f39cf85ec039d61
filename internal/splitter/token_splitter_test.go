package splitter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// wordTokenizer treats each whitespace-separated word as one token, which
// keeps the windowing arithmetic easy to verify.
type wordTokenizer struct{}

func (wordTokenizer) Encode(text string) []int {
	words := strings.Fields(text)
	tokens := make([]int, len(words))
	for i := range words {
		tokens[i] = i
	}
	// The token values are word indices into the last encoded text, so
	// Decode needs the words available.
	lastWords = words
	return tokens
}

func (wordTokenizer) Decode(tokens []int) string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = lastWords[tok]
	}
	return strings.Join(words, " ")
}

var lastWords []string

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestSplit_ShortTextIsSingleChunk(t *testing.T) {
	s := NewTokenTextSplitter(wordTokenizer{}, 10, 5)

	chunks := s.Split("just a few words")
	assert.Equal(t, []string{"just a few words"}, chunks)
}

func TestSplit_BlankTextYieldsNoChunks(t *testing.T) {
	s := NewTokenTextSplitter(wordTokenizer{}, 10, 5)

	assert.Nil(t, s.Split("   \n  "))
}

func TestSplit_WindowsOverlap(t *testing.T) {
	s := NewTokenTextSplitter(wordTokenizer{}, 10, 5)

	chunks := s.Split(words(23))
	// Windows of 10 tokens advancing by 5: [0,10) [5,15) [10,20) [15,23) [20,23).
	assert.Len(t, chunks, 5)
	assert.Equal(t, "w0", strings.Fields(chunks[0])[0])
	assert.Equal(t, "w5", strings.Fields(chunks[1])[0])
	assert.Equal(t, "w20", strings.Fields(chunks[4])[0])

	// Consecutive chunks share their overlap region.
	assert.Contains(t, strings.Fields(chunks[0]), "w7")
	assert.Contains(t, strings.Fields(chunks[1]), "w7")
}

func TestSplit_ExactMultipleEndsCleanly(t *testing.T) {
	s := NewTokenTextSplitter(wordTokenizer{}, 10, 5)

	chunks := s.Split(words(20))
	// [0,10) [5,15) [10,20) and the walk stops at the end of the tokens.
	assert.Len(t, chunks, 3)
	lastChunk := strings.Fields(chunks[len(chunks)-1])
	assert.Equal(t, "w19", lastChunk[len(lastChunk)-1])
}

func TestNewTokenTextSplitter_ClampsBadSizes(t *testing.T) {
	s := NewTokenTextSplitter(wordTokenizer{}, 0, -1)
	assert.Equal(t, DefaultChunkSize, s.chunkSize)
	assert.Equal(t, DefaultChunkOverlap, s.overlap)

	s = NewTokenTextSplitter(wordTokenizer{}, 10, 20)
	assert.Equal(t, 5, s.overlap)
}
