package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/repositories"
	"ai-tutorial/internal/splitter"
)

const (
	maxUploadSize = 10 << 20 // 10MB
	maxTextLength = 10000
)

// supportedExtensions lists the plain-text formats we accept for ingestion.
var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".text":     true,
	".log":      true,
	".csv":      true,
	".json":     true,
	".xml":      true,
	".html":     true,
	".htm":      true,
}

// DocumentInfo summarizes one ingested document for listing.
type DocumentInfo struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	IngestedAt string `json:"ingested_at,omitempty"`
}

// IngestionResult reports what a single ingestion produced.
type IngestionResult struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
}

// IngestionService turns uploaded text into chunked, embedded, keyword-tagged
// documents in the vector store.
type IngestionService struct {
	store    repositories.VectorRepository
	splitter *splitter.TokenTextSplitter
	keywords *KeywordExtractor
	logger   *log.Logger
}

func NewIngestionService(store repositories.VectorRepository, split *splitter.TokenTextSplitter, logger *log.Logger) *IngestionService {
	return &IngestionService{
		store:    store,
		splitter: split,
		keywords: NewKeywordExtractor(),
		logger:   logger,
	}
}

// IngestFile reads an uploaded file and ingests its content. The filename's
// extension decides whether the format is accepted.
func (s *IngestionService) IngestFile(ctx context.Context, filename string, size int64, r io.Reader) (IngestionResult, error) {
	if size > maxUploadSize {
		return IngestionResult{}, apperrors.NewValidationError("file", fmt.Sprintf("file exceeds maximum size of %d bytes", maxUploadSize))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return IngestionResult{}, apperrors.NewValidationError("file", fmt.Sprintf("unsupported file type %q, plain-text formats only", ext))
	}

	content, err := io.ReadAll(io.LimitReader(r, maxUploadSize+1))
	if err != nil {
		return IngestionResult{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > maxUploadSize {
		return IngestionResult{}, apperrors.NewValidationError("file", fmt.Sprintf("file exceeds maximum size of %d bytes", maxUploadSize))
	}

	return s.ingest(ctx, filename, filename, string(content))
}

// IngestText ingests raw text submitted directly, labelled with a title.
func (s *IngestionService) IngestText(ctx context.Context, title, text string) (IngestionResult, error) {
	if strings.TrimSpace(text) == "" {
		return IngestionResult{}, apperrors.NewValidationError("text", "text must not be blank")
	}
	if len(text) > maxTextLength {
		return IngestionResult{}, apperrors.NewValidationError("text", fmt.Sprintf("text must be at most %d characters", maxTextLength))
	}
	if strings.TrimSpace(title) == "" {
		title = "untitled"
	}
	return s.ingest(ctx, title, title, text)
}

// IngestLocalFile ingests a file from the local filesystem. Used at startup
// to build the index from the bundled FAQ document.
func (s *IngestionService) IngestLocalFile(ctx context.Context, path string) (IngestionResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.ingest(ctx, filepath.Base(path), filepath.Base(path), string(content))
}

func (s *IngestionService) ingest(ctx context.Context, filename, title, content string) (IngestionResult, error) {
	if strings.TrimSpace(content) == "" {
		return IngestionResult{}, apperrors.NewValidationError("file", "document content must not be blank")
	}

	documentID := uuid.New().String()
	chunks := s.splitter.Split(content)
	ingestedAt := time.Now().UTC().Format(time.RFC3339)

	docs := make([]repositories.Document, 0, len(chunks))
	for i, chunk := range chunks {
		keywords, err := s.keywords.Extract(chunk, 5)
		if err != nil {
			s.logger.Printf("keyword extraction failed for chunk %d of %s: %v", i, filename, err)
			keywords = nil
		}
		docs = append(docs, repositories.Document{
			Content: chunk,
			Metadata: map[string]interface{}{
				"filename":    filename,
				"title":       title,
				"document_id": documentID,
				"chunk_index": i,
				"keywords":    strings.Join(keywords, ","),
				"ingested_at": ingestedAt,
			},
		})
	}

	if err := s.store.Add(ctx, docs); err != nil {
		return IngestionResult{}, err
	}

	s.logger.Printf("ingested %s as %d chunks (document %s)", filename, len(docs), documentID)
	return IngestionResult{
		DocumentID: documentID,
		Filename:   filename,
		ChunkCount: len(docs),
	}, nil
}

// ListDocuments groups the stored chunks by source document.
func (s *IngestionService) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*DocumentInfo)
	for _, doc := range all {
		id, _ := doc.Metadata["document_id"].(string)
		if id == "" {
			id = doc.ID
		}
		info, ok := byID[id]
		if !ok {
			info = &DocumentInfo{DocumentID: id}
			if filename, ok := doc.Metadata["filename"].(string); ok {
				info.Filename = filename
			}
			if ingested, ok := doc.Metadata["ingested_at"].(string); ok {
				info.IngestedAt = ingested
			}
			byID[id] = info
		}
		info.ChunkCount++
	}

	out := make([]DocumentInfo, 0, len(byID))
	for _, info := range byID {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

// DeleteDocuments removes all chunks belonging to the given document IDs and
// returns how many chunks were deleted.
func (s *IngestionService) DeleteDocuments(ctx context.Context, ids []string) (int, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return 0, apperrors.NewValidationError("ids", "at least one document id is required")
	}
	return s.store.Delete(ctx, cleaned)
}

// Statistics reports aggregate numbers about the store.
func (s *IngestionService) Statistics(ctx context.Context) (map[string]interface{}, error) {
	docs, err := s.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	chunks, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"document_count":  len(docs),
		"chunk_count":     chunks,
		"max_upload_size": maxUploadSize,
	}, nil
}
