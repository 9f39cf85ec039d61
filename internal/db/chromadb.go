// Package db holds thin clients for the optional backing stores: a ChromaDB
// v2 HTTP client and a Redis connection wrapper.
package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChromaClient wraps HTTP calls to the ChromaDB v2 API. Rolling the handful
// of calls we need avoids compatibility churn in the official client.
type ChromaClient struct {
	baseURL    string
	serverURL  string
	httpClient *http.Client
}

// ChromaConfig holds connection settings for ChromaDB.
type ChromaConfig struct {
	Host     string
	Port     int
	Tenant   string
	Database string
	Timeout  time.Duration
}

// DefaultChromaConfig returns sensible defaults for a local ChromaDB.
func DefaultChromaConfig() ChromaConfig {
	return ChromaConfig{
		Host:     "localhost",
		Port:     8000,
		Tenant:   "default_tenant",
		Database: "default_database",
		Timeout:  30 * time.Second,
	}
}

// Collection is a ChromaDB collection handle.
type Collection struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
}

// QueryResponse is the shape the v2 query endpoint returns: one row of
// results per query embedding.
type QueryResponse struct {
	IDs       [][]string                 `json:"ids"`
	Documents [][]string                 `json:"documents"`
	Metadatas [][]map[string]interface{} `json:"metadatas"`
	Distances [][]float32                `json:"distances"`
}

// GetResponse is the shape of the v2 get endpoint.
type GetResponse struct {
	IDs       []string                 `json:"ids"`
	Documents []string                 `json:"documents"`
	Metadatas []map[string]interface{} `json:"metadatas"`
}

// NewChromaClient creates a client scoped to the configured tenant/database.
func NewChromaClient(config ChromaConfig) *ChromaClient {
	if config.Tenant == "" {
		config.Tenant = "default_tenant"
	}
	if config.Database == "" {
		config.Database = "default_database"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	serverURL := fmt.Sprintf("http://%s:%d", config.Host, config.Port)
	baseURL := fmt.Sprintf("%s/api/v2/tenants/%s/databases/%s", serverURL, config.Tenant, config.Database)

	return &ChromaClient{
		baseURL:    baseURL,
		serverURL:  serverURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Heartbeat checks whether ChromaDB is alive.
func (c *ChromaClient) Heartbeat(ctx context.Context) error {
	var out json.RawMessage
	return c.do(ctx, http.MethodGet, c.serverURL+"/api/v2/heartbeat", nil, &out)
}

// GetCollection looks a collection up by name.
func (c *ChromaClient) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var collection Collection
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, name)
	if err := c.do(ctx, http.MethodGet, url, nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// EnsureCollection returns the named collection, creating it with cosine
// space when it does not exist yet.
func (c *ChromaClient) EnsureCollection(ctx context.Context, name string) (*Collection, error) {
	if collection, err := c.GetCollection(ctx, name); err == nil {
		return collection, nil
	}

	payload := map[string]interface{}{
		"name":     name,
		"metadata": map[string]interface{}{"hnsw:space": "cosine"},
	}
	var collection Collection
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/collections", payload, &collection); err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return &collection, nil
}

// Add stores documents with precomputed embeddings in the collection.
func (c *ChromaClient) Add(ctx context.Context, collectionID string, ids, documents []string, embeddings [][]float32, metadatas []map[string]interface{}) error {
	payload := map[string]interface{}{
		"ids":        ids,
		"documents":  documents,
		"embeddings": embeddings,
		"metadatas":  metadatas,
	}
	url := fmt.Sprintf("%s/collections/%s/add", c.baseURL, collectionID)
	var out json.RawMessage
	return c.do(ctx, http.MethodPost, url, payload, &out)
}

// Query runs a nearest-neighbor search with one query embedding.
func (c *ChromaClient) Query(ctx context.Context, collectionID string, embedding []float32, nResults int) (*QueryResponse, error) {
	payload := map[string]interface{}{
		"query_embeddings": [][]float32{embedding},
		"n_results":        nResults,
		"include":          []string{"documents", "metadatas", "distances"},
	}
	url := fmt.Sprintf("%s/collections/%s/query", c.baseURL, collectionID)
	var result QueryResponse
	if err := c.do(ctx, http.MethodPost, url, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get retrieves all documents in the collection.
func (c *ChromaClient) Get(ctx context.Context, collectionID string) (*GetResponse, error) {
	payload := map[string]interface{}{
		"include": []string{"documents", "metadatas"},
	}
	url := fmt.Sprintf("%s/collections/%s/get", c.baseURL, collectionID)
	var result GetResponse
	if err := c.do(ctx, http.MethodPost, url, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes documents by ID.
func (c *ChromaClient) Delete(ctx context.Context, collectionID string, ids []string) error {
	payload := map[string]interface{}{"ids": ids}
	url := fmt.Sprintf("%s/collections/%s/delete", c.baseURL, collectionID)
	var out json.RawMessage
	return c.do(ctx, http.MethodPost, url, payload, &out)
}

// Count returns the number of stored embeddings.
func (c *ChromaClient) Count(ctx context.Context, collectionID string) (int, error) {
	var count int
	url := fmt.Sprintf("%s/collections/%s/count", c.baseURL, collectionID)
	if err := c.do(ctx, http.MethodGet, url, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *ChromaClient) do(ctx context.Context, method, url string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chromadb returned status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
