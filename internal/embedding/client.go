// Package embedding provides the client for the external embedding
// provider. The provider is an opaque capability: text in, fixed-dimension
// vector out. The engine core never calls it; callers resolve semantic
// scores at this boundary before invoking the scorer.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the embedding provider over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimension  int
}

// Config holds embedding client configuration.
type Config struct {
	APIKey    string
	Model     string // e.g. "all-MiniLM-L6-v2"
	BaseURL   string // Default: http://localhost:8000
	Dimension int    // Default: 384
	Timeout   time.Duration
}

// NewClient creates a new embedding client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	if cfg.Model == "" {
		cfg.Model = "all-MiniLM-L6-v2"
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = 384
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimension:  cfg.Dimension,
	}, nil
}

// Dimension returns the provider's vector dimension.
func (c *Client) Dimension() int {
	return c.dimension
}

// batchRequest is the provider's batch embedding request.
type batchRequest struct {
	Texts []string `json:"texts"`
	Model string   `json:"model,omitempty"`
}

// batchResponse is the provider's batch embedding response.
type batchResponse struct {
	Count      int         `json:"count"`
	Embeddings [][]float32 `json:"embeddings"`
	Dimension  int         `json:"dimension"`
}

// Embed generates one vector per input text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(batchRequest{Texts: texts, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embed/batch", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding provider returned %d: %s", resp.StatusCode, respBody)
	}

	var parsed batchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding provider returned %d vectors for %d texts",
			len(parsed.Embeddings), len(texts))
	}

	for i, vec := range parsed.Embeddings {
		if len(vec) != c.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(vec), c.dimension)
		}
	}

	return parsed.Embeddings, nil
}
