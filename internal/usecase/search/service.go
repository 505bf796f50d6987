// Package search normalizes search terms and runs catalog queries.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/booksearch/internal/domain"
)

const defaultQueryTimeout = 5 * time.Second

// Service turns a raw search term into a catalog query: trim, derive the
// LIKE pattern, bound the query with a timeout, delegate to the repository.
// Both endpoints share this path so the two handlers cannot drift.
type Service struct {
	repo         Repository
	queryTimeout time.Duration
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, queryTimeout: defaultQueryTimeout}
}

// WithQueryTimeout overrides the per-query timeout. The pool is capacity
// limited, so a stalled query must not pin a connection indefinitely.
func (s *Service) WithQueryTimeout(d time.Duration) *Service {
	if d > 0 {
		s.queryTimeout = d
	}
	return s
}

// ByAuthor searches the catalog by author name.
func (s *Service) ByAuthor(ctx context.Context, term string, publishByDate *string) ([]domain.Row, error) {
	return s.run(ctx, term, publishByDate, s.repo.SearchAuthors)
}

// ByTitle searches the catalog by book title.
func (s *Service) ByTitle(ctx context.Context, term string, publishByDate *string) ([]domain.Row, error) {
	return s.run(ctx, term, publishByDate, s.repo.SearchBooks)
}

type searchFn func(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error)

func (s *Service) run(ctx context.Context, term string, publishByDate *string, call searchFn) ([]domain.Row, error) {
	pattern := domain.LikePattern(term)

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := call(ctx, pattern, publishByDate)
	if err != nil {
		// Collapse every database failure into the one sentinel the
		// transport maps to a generic 500. The cause stays in the
		// message for server-side logs only.
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}
	return rows, nil
}
