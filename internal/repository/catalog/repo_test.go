package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Mocks ---

// fakeRows is a minimal pgx.Rows over a single text column.
type fakeRows struct {
	titles []string
	pos    int
}

func (f *fakeRows) Close()                        {}
func (f *fakeRows) Err() error                    { return nil }
func (f *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "title"}}
}
func (f *fakeRows) RawValues() [][]byte { return nil }
func (f *fakeRows) Conn() *pgx.Conn     { return nil }
func (f *fakeRows) Scan(...any) error   { return nil }

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.titles) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Values() ([]any, error) { return []any{f.titles[f.pos-1]}, nil }

type mockQuerier struct {
	sql  string
	args []any
	rows pgx.Rows
	err  error
}

func (m *mockQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.sql = sql
	m.args = args
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

// --- Tests ---

func TestSearchAuthors_OneArgForm(t *testing.T) {
	q := &mockQuerier{rows: &fakeRows{titles: []string{"The Hobbit"}}}
	repo := New(q)

	rows, err := repo.SearchAuthors(context.Background(), "%Tolkien%", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.sql != "SELECT * FROM search_author($1)" {
		t.Errorf("sql = %q", q.sql)
	}
	if len(q.args) != 1 || q.args[0] != "%Tolkien%" {
		t.Errorf("args = %v, want [%%Tolkien%%]", q.args)
	}
	if len(rows) != 1 || rows[0]["title"] != "The Hobbit" {
		t.Errorf("rows = %v", rows)
	}
}

func TestSearchAuthors_TwoArgForm(t *testing.T) {
	q := &mockQuerier{rows: &fakeRows{}}
	repo := New(q)

	date := "1954-07-29"
	if _, err := repo.SearchAuthors(context.Background(), "%Tolkien%", &date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.sql != "SELECT * FROM search_author($1, $2)" {
		t.Errorf("sql = %q", q.sql)
	}
	if len(q.args) != 2 || q.args[1] != "1954-07-29" {
		t.Errorf("args = %v, want pattern + raw date", q.args)
	}
}

func TestSearchBooks_TargetsBooksFunction(t *testing.T) {
	q := &mockQuerier{rows: &fakeRows{}}
	repo := New(q)

	if _, err := repo.SearchBooks(context.Background(), "%Hobbit%", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.sql != "SELECT * FROM search_books($1)" {
		t.Errorf("sql = %q", q.sql)
	}
}

func TestCall_QueryErrorWrapped(t *testing.T) {
	queryErr := errors.New("function search_author(text) does not exist")
	q := &mockQuerier{err: queryErr}
	repo := New(q)

	_, err := repo.SearchAuthors(context.Background(), "%x%", nil)
	if !errors.Is(err, queryErr) {
		t.Errorf("expected wrapped query error, got %v", err)
	}
}
