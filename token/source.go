package token

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes bounds how much of a refresh response is read.
const maxResponseBytes = 1 << 20

// Source yields candidate tokens for the refresher. The zero candidate
// (nil, nil) means the caller currently has no token.
type Source interface {
	Fetch(ctx context.Context) (*Token, error)
}

// SourceFunc adapts a function to the [Source] interface.
type SourceFunc func(ctx context.Context) (*Token, error)

// Fetch describes the fetch operation and its observable behavior.
//
// Fetch may return an error when input validation, dependency calls, or security checks fail.
// Fetch does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f SourceFunc) Fetch(ctx context.Context) (*Token, error) {
	return f(ctx)
}

// HTTPSource obtains candidate tokens by POSTing to a refresh endpoint and
// decoding the response body through [ParseResponse].
type HTTPSource struct {
	client   *http.Client
	endpoint string
}

// NewHTTPSource describes the newhttpsource operation and its observable behavior.
//
// NewHTTPSource may return an error when input validation, dependency calls, or security checks fail.
// NewHTTPSource does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewHTTPSource(client *http.Client, endpoint string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		client:   client,
		endpoint: endpoint,
	}
}

// Fetch describes the fetch operation and its observable behavior.
//
// Fetch may return an error when input validation, dependency calls, or security checks fail.
// Fetch does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *HTTPSource) Fetch(ctx context.Context) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/jwt")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("refresh endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read refresh response: %w", err)
	}

	return ParseResponse(resp.Header.Get("Content-Type"), body)
}
