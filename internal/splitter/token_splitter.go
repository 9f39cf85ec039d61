// Package splitter chunks document text into overlapping token windows ahead
// of embedding.
package splitter

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultChunkSize is the window size in tokens.
	DefaultChunkSize = 800
	// DefaultChunkOverlap is how many tokens consecutive chunks share, so
	// context is preserved across chunk boundaries.
	DefaultChunkOverlap = 400

	encodingName = "cl100k_base"
)

// Tokenizer abstracts the token codec used by the splitter.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenTokenizer returns a cl100k_base tokenizer.
func NewTiktokenTokenizer() (Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", encodingName, err)
	}
	return &tiktokenTokenizer{enc: enc}, nil
}

func (t *tiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// TokenTextSplitter splits text into fixed-size token chunks with overlap.
type TokenTextSplitter struct {
	tokenizer Tokenizer
	chunkSize int
	overlap   int
}

// NewTokenTextSplitter builds a splitter. Non-positive sizes fall back to the
// defaults; the overlap is clamped below the chunk size.
func NewTokenTextSplitter(tokenizer Tokenizer, chunkSize, overlap int) *TokenTextSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &TokenTextSplitter{tokenizer: tokenizer, chunkSize: chunkSize, overlap: overlap}
}

// Split returns the chunk texts for the input. Blank input yields no chunks.
func (s *TokenTextSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := s.tokenizer.Encode(text)
	if len(tokens) <= s.chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	step := s.chunkSize - s.overlap
	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + s.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := strings.TrimSpace(s.tokenizer.Decode(tokens[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(tokens) {
			break
		}
	}
	return chunks
}
