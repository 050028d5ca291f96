// Thin adapter over the Cloudinary Search API. Queries are a single
// attempt: a network or host failure surfaces to the caller unretried.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.cloudinary.com"

// Asset is one record from a media host search response.
type Asset struct {
	PublicID     string    `json:"public_id"`
	SecureURL    string    `json:"secure_url"`
	ResourceType string    `json:"resource_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchRequest describes one search call: a conjunctive expression
// over folder and resource type, a sort, and a hard result cap.
// Results beyond MaxResults are simply omitted, no pagination.
type SearchRequest struct {
	Expression string
	SortField  string
	SortOrder  string
	MaxResults int
}

// Searcher is what the gallery handlers depend on; tests inject fakes.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) ([]Asset, error)
}

// Client talks to the Cloudinary Search API for one cloud.
type Client struct {
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient creates a Cloudinary search client. A nil httpClient falls
// back to http.DefaultClient.
func NewClient(cloudName, apiKey, apiSecret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    defaultBaseURL,
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: httpClient,
	}
}

type searchBody struct {
	Expression string              `json:"expression"`
	SortBy     []map[string]string `json:"sort_by"`
	MaxResults int                 `json:"max_results"`
}

type searchResponse struct {
	TotalCount int     `json:"total_count"`
	Resources  []Asset `json:"resources"`
}

// Search executes one search against the host and returns the
// normalized asset records in the host's sort order.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Asset, error) {
	body := searchBody{
		Expression: req.Expression,
		SortBy: []map[string]string{
			{req.SortField: req.SortOrder},
		},
		MaxResults: req.MaxResults,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: encode search request: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/resources/search", c.baseURL, c.cloudName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("cloudinary: create search request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: search request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary: search failed (%d): %s", resp.StatusCode, string(raw))
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("cloudinary: decode search response: %w", err)
	}

	return parsed.Resources, nil
}
