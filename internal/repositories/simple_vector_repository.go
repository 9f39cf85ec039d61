package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/embedding"
)

// storeRecord is the on-disk and in-memory representation of one chunk.
type storeRecord struct {
	ID        string                 `json:"id"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Embedding []float32              `json:"embedding"`
}

// SimpleVectorRepository is a file-backed similarity index: brute-force
// cosine search over in-memory records, persisted wholesale as JSON.
type SimpleVectorRepository struct {
	mu       sync.RWMutex
	embedder embedding.Embedder
	records  []storeRecord
	logger   *log.Logger
}

func NewSimpleVectorRepository(embedder embedding.Embedder, logger *log.Logger) *SimpleVectorRepository {
	return &SimpleVectorRepository{embedder: embedder, logger: logger}
}

// Add embeds and stores the documents.
func (r *SimpleVectorRepository) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return apperrors.NewVectorStoreError("failed to embed documents", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}
		r.records = append(r.records, storeRecord{
			ID:        id,
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: vectors[i],
		})
	}
	r.logger.Printf("stored %d documents in simple vector store (total %d)", len(docs), len(r.records))
	return nil
}

// Search embeds the query and returns the topK closest documents by cosine
// similarity.
func (r *SimpleVectorRepository) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, apperrors.NewVectorStoreError("failed to embed query", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]SearchResult, 0, len(r.records))
	for _, record := range r.records {
		results = append(results, SearchResult{
			Document: Document{ID: record.ID, Content: record.Content, Metadata: record.Metadata},
			Score:    cosineSimilarity(queryVec, record.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Delete removes records matching the given chunk IDs or document_id
// metadata values.
func (r *SimpleVectorRepository) Delete(ctx context.Context, ids []string) (int, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	removed := 0
	for _, record := range r.records {
		docID, _ := record.Metadata["document_id"].(string)
		if wanted[record.ID] || (docID != "" && wanted[docID]) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	r.records = kept
	if removed > 0 {
		r.logger.Printf("deleted %d documents from simple vector store", removed)
	}
	return removed, nil
}

// All returns every stored document without embeddings.
func (r *SimpleVectorRepository) All(ctx context.Context) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]Document, len(r.records))
	for i, record := range r.records {
		docs[i] = Document{ID: record.ID, Content: record.Content, Metadata: record.Metadata}
	}
	return docs, nil
}

// Count returns the number of stored chunks.
func (r *SimpleVectorRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// Load replaces the in-memory index with the persisted one.
func (r *SimpleVectorRepository) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperrors.NewVectorStoreError("vector store file does not exist", err)
		}
		return apperrors.NewVectorStoreError("failed to read vector store file", err)
	}

	var records []storeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return apperrors.NewVectorStoreError("failed to parse vector store file", err)
	}

	r.mu.Lock()
	r.records = records
	r.mu.Unlock()
	r.logger.Printf("loaded %d documents from %s", len(records), path)
	return nil
}

// Save persists the whole index to disk, creating the parent directory if
// needed.
func (r *SimpleVectorRepository) Save(path string) error {
	r.mu.RLock()
	data, err := json.Marshal(r.records)
	count := len(r.records)
	r.mu.RUnlock()
	if err != nil {
		return apperrors.NewVectorStoreError("failed to serialize vector store", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewVectorStoreError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.NewVectorStoreError("failed to write vector store file", err)
	}
	r.logger.Printf("saved %d documents to %s", count, path)
	return nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
