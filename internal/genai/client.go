package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	requestTimeout  = 30 * time.Second
)

// GenerateRequest is the body sent to the generateContent endpoint.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
	Tools    []Tool    `json:"tools,omitempty"`
}

// GenerateResponse is the decoded body returned by the endpoint.
// Fields are passed through untouched; interpretation is the caller's.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// StatusError reports a non-2xx reply from the upstream API.
// The body is kept verbatim for diagnosis; the key never appears in it.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("genai: upstream returned %d: %s", e.StatusCode, e.Body)
}

// Client issues generate-content requests against the Gemini API.
type Client interface {
	GenerateContent(ctx context.Context, contents []Content, tools []Tool) (*GenerateResponse, error)
}

type client struct {
	http     *http.Client
	endpoint string
	apiKey   string
}

// NewClient builds a Client using apiKey as the query credential.
func NewClient(apiKey string) Client {
	return &client{
		http:     &http.Client{Timeout: requestTimeout},
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
	}
}

func (c *client) GenerateContent(ctx context.Context, contents []Content, tools []Tool) (*GenerateResponse, error) {
	body, err := json.Marshal(GenerateRequest{Contents: contents, Tools: tools})
	if err != nil {
		return nil, fmt.Errorf("genai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("genai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genai: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("genai: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out GenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("genai: decode response: %w", err)
	}
	return &out, nil
}

// FakeClient implements Client for tests, 與 database.FakeDB 同一套路。
type FakeClient struct {
	GenerateContentFn func(ctx context.Context, contents []Content, tools []Tool) (*GenerateResponse, error)
}

func (f *FakeClient) GenerateContent(ctx context.Context, contents []Content, tools []Tool) (*GenerateResponse, error) {
	if f.GenerateContentFn != nil {
		return f.GenerateContentFn(ctx, contents, tools)
	}
	panic("unexpected GenerateContent")
}
