package search

import (
	"context"

	"github.com/kailas-cloud/booksearch/internal/domain"
)

// Repository executes catalog searches. publishByDate is passed through
// verbatim when present; nil means the function's own default applies.
type Repository interface {
	SearchAuthors(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error)
	SearchBooks(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error)
}
