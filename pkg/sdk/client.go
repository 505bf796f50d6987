package booksearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Row is a single search result, keyed by column name. The shape is
// defined by the server's catalog functions and passed through as-is.
type Row map[string]any

// Client is the booksearch SDK entry point.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if baseURL == "" {
		return nil, fmt.Errorf("booksearch: base URL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("booksearch: invalid base URL: %w", err)
	}

	httpc := cfg.httpc
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		httpc:   httpc,
	}, nil
}

// SearchAuthors searches the catalog by author name.
func (c *Client) SearchAuthors(ctx context.Context, term string, opts ...SearchOption) ([]Row, error) {
	return c.search(ctx, "/author/", term, opts)
}

// SearchBooks searches the catalog by book title.
func (c *Client) SearchBooks(ctx context.Context, term string, opts ...SearchOption) ([]Row, error) {
	return c.search(ctx, "/books/", term, opts)
}

// Health checks the server's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.get(ctx, c.baseURL+"/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) search(ctx context.Context, prefix, term string, opts []SearchOption) ([]Row, error) {
	var q searchQuery
	for _, o := range opts {
		o.applySearch(&q)
	}

	u := c.baseURL + prefix + url.PathEscape(term)
	if q.publishByDate != nil {
		u += "?publish_by_date=" + url.QueryEscape(*q.publishByDate)
	}

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var rows []Row
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
			return nil, fmt.Errorf("booksearch: decode response: %w", err)
		}
		return rows, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		// The server body is a generic code/message pair; the status is
		// the signal.
		return nil, fmt.Errorf("%w: status %d", ErrSearchFailed, resp.StatusCode)
	}
}

func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("booksearch: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booksearch: request failed: %w", err)
	}
	return resp, nil
}
