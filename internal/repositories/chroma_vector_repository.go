package repositories

import (
	"context"
	"log"

	"github.com/google/uuid"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/db"
	"ai-tutorial/internal/embedding"
)

// ChromaVectorRepository implements VectorRepository against a ChromaDB
// collection. Unlike the simple store it has no save/load lifecycle: Chroma
// owns persistence.
type ChromaVectorRepository struct {
	client     *db.ChromaClient
	embedder   embedding.Embedder
	collection string
	logger     *log.Logger
}

func NewChromaVectorRepository(client *db.ChromaClient, embedder embedding.Embedder, collection string, logger *log.Logger) *ChromaVectorRepository {
	return &ChromaVectorRepository{
		client:     client,
		embedder:   embedder,
		collection: collection,
		logger:     logger,
	}
}

func (r *ChromaVectorRepository) Add(ctx context.Context, docs []Document) error {
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

	collection, err := r.client.EnsureCollection(ctx, r.collection)
	if err != nil {
		return apperrors.NewVectorStoreError("failed to resolve collection", err)
	}

	ids := make([]string, len(docs))
	contents := make([]string, len(docs))
	metadatas := make([]map[string]interface{}, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		ids[i] = doc.ID
		contents[i] = doc.Content
		metadatas[i] = doc.Metadata
	}

	if err := r.client.Add(ctx, collection.ID, ids, contents, vectors, metadatas); err != nil {
		return apperrors.NewVectorStoreError("failed to store documents", err)
	}
	r.logger.Printf("stored %d documents in chroma collection %s", len(docs), r.collection)
	return nil
}

func (r *ChromaVectorRepository) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, apperrors.NewVectorStoreError("failed to embed query", err)
	}

	collection, err := r.client.EnsureCollection(ctx, r.collection)
	if err != nil {
		return nil, apperrors.NewVectorStoreError("failed to resolve collection", err)
	}

	resp, err := r.client.Query(ctx, collection.ID, queryVec, topK)
	if err != nil {
		return nil, apperrors.NewVectorStoreError("failed to search vector store", err)
	}
	if len(resp.IDs) == 0 {
		return nil, nil
	}

	results := make([]SearchResult, 0, len(resp.IDs[0]))
	for i, id := range resp.IDs[0] {
		doc := Document{ID: id}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			doc.Content = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			doc.Metadata = resp.Metadatas[0][i]
		}
		var score float32
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			// Cosine distance to similarity.
			score = 1 - resp.Distances[0][i]
		}
		results = append(results, SearchResult{Document: doc, Score: score})
	}
	return results, nil
}

func (r *ChromaVectorRepository) Delete(ctx context.Context, ids []string) (int, error) {
	collection, err := r.client.EnsureCollection(ctx, r.collection)
	if err != nil {
		return 0, apperrors.NewVectorStoreError("failed to resolve collection", err)
	}

	// Expand parent document IDs to chunk IDs before deleting.
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	all, err := r.client.Get(ctx, collection.ID)
	if err != nil {
		return 0, apperrors.NewVectorStoreError("failed to list documents", err)
	}
	var chunkIDs []string
	for i, id := range all.IDs {
		docID := ""
		if i < len(all.Metadatas) {
			docID, _ = all.Metadatas[i]["document_id"].(string)
		}
		if wanted[id] || (docID != "" && wanted[docID]) {
			chunkIDs = append(chunkIDs, id)
		}
	}
	if len(chunkIDs) == 0 {
		return 0, nil
	}

	if err := r.client.Delete(ctx, collection.ID, chunkIDs); err != nil {
		return 0, apperrors.NewVectorStoreError("failed to delete documents", err)
	}
	r.logger.Printf("deleted %d documents from chroma collection %s", len(chunkIDs), r.collection)
	return len(chunkIDs), nil
}

func (r *ChromaVectorRepository) All(ctx context.Context) ([]Document, error) {
	collection, err := r.client.EnsureCollection(ctx, r.collection)
	if err != nil {
		return nil, apperrors.NewVectorStoreError("failed to resolve collection", err)
	}

	resp, err := r.client.Get(ctx, collection.ID)
	if err != nil {
		return nil, apperrors.NewVectorStoreError("failed to list documents", err)
	}

	docs := make([]Document, len(resp.IDs))
	for i, id := range resp.IDs {
		docs[i] = Document{ID: id}
		if i < len(resp.Documents) {
			docs[i].Content = resp.Documents[i]
		}
		if i < len(resp.Metadatas) {
			docs[i].Metadata = resp.Metadatas[i]
		}
	}
	return docs, nil
}

func (r *ChromaVectorRepository) Count(ctx context.Context) (int, error) {
	collection, err := r.client.EnsureCollection(ctx, r.collection)
	if err != nil {
		return 0, apperrors.NewVectorStoreError("failed to resolve collection", err)
	}
	count, err := r.client.Count(ctx, collection.ID)
	if err != nil {
		return 0, apperrors.NewVectorStoreError("failed to count documents", err)
	}
	return count, nil
}
