// Package repositories contains the data access layer: the similarity index
// implementations and the Redis-backed conversation memory.
package repositories

import "context"

// Document is a text chunk stored in the similarity index.
type Document struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SearchResult pairs a document with its similarity score (0-1, higher is
// closer).
type SearchResult struct {
	Document Document `json:"document"`
	Score    float32  `json:"score"`
}

// VectorRepository abstracts the similarity index so the services do not care
// which backend holds the embeddings.
type VectorRepository interface {
	// Add embeds the documents and stores them. Documents without an ID
	// are assigned one.
	Add(ctx context.Context, docs []Document) error
	// Search embeds the query and returns the topK closest documents.
	Search(ctx context.Context, query string, topK int) ([]SearchResult, error)
	// Delete removes documents whose chunk ID or parent document_id
	// matches one of the given IDs, returning how many were removed.
	Delete(ctx context.Context, ids []string) (int, error)
	// All returns every stored document without embeddings.
	All(ctx context.Context) ([]Document, error)
	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)
}

// PersistentVectorRepository is implemented by stores that keep their index
// in a local file and participate in the save/load lifecycle.
type PersistentVectorRepository interface {
	VectorRepository
	Load(path string) error
	Save(path string) error
}
