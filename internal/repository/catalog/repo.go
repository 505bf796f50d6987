// Package catalog calls the stored search functions in PostgreSQL.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/booksearch/internal/domain"
	"github.com/kailas-cloud/booksearch/internal/postgres"
)

// The two catalog functions this service knows about. Query text is built
// only from these constants; every user-supplied value travels as a bound
// parameter.
const (
	fnSearchAuthor = "search_author"
	fnSearchBooks  = "search_books"
)

// querier is the consumer interface for statement execution (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repo implements usecase/search.Repository against the stored functions.
type Repo struct {
	db querier
}

// New creates a catalog repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

// SearchAuthors invokes search_author(pattern [, publish_by_date]).
func (r *Repo) SearchAuthors(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error) {
	return r.call(ctx, fnSearchAuthor, pattern, publishByDate)
}

// SearchBooks invokes search_books(pattern [, publish_by_date]).
func (r *Repo) SearchBooks(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error) {
	return r.call(ctx, fnSearchBooks, pattern, publishByDate)
}

// call selects the one- or two-argument form of the function depending on
// whether a date filter is present, so an absent filter uses the function's
// own default. fn is one of the package constants, never caller input.
func (r *Repo) call(ctx context.Context, fn, pattern string, publishByDate *string) ([]domain.Row, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if publishByDate == nil {
		rows, err = r.db.Query(ctx, "SELECT * FROM "+fn+"($1)", pattern)
	} else {
		rows, err = r.db.Query(ctx, "SELECT * FROM "+fn+"($1, $2)", pattern, *publishByDate)
	}
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", fn, err)
	}

	out, err := postgres.CollectMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("collect %s rows: %w", fn, err)
	}
	return out, nil
}
