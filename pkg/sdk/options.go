package booksearch

import (
	"net/http"
	"time"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	apiKey  string
	httpc   *http.Client
	timeout time.Duration
}

// WithAPIKey sets the bearer token sent with every request.
// Required only when the server has auth.api_keys configured.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpc = httpc
	})
}

// WithTimeout sets the per-request timeout. Default: 10s. Ignored when
// WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// SearchOption narrows a single search call.
type SearchOption interface {
	applySearch(*searchQuery)
}

type searchOptionFunc func(*searchQuery)

func (f searchOptionFunc) applySearch(q *searchQuery) { f(q) }

type searchQuery struct {
	publishByDate *string
}

// PublishedBy restricts results to books published by the given date.
// The value is passed to the server verbatim.
func PublishedBy(date string) SearchOption {
	return searchOptionFunc(func(q *searchQuery) {
		q.publishByDate = &date
	})
}
