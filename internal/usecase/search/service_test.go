package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/booksearch/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	rows []domain.Row
	err  error

	authorsCalled bool
	booksCalled   bool
	pattern       string
	publishByDate *string
	hadDeadline   bool
}

func (m *mockRepo) SearchAuthors(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error) {
	m.authorsCalled = true
	return m.record(ctx, pattern, publishByDate)
}

func (m *mockRepo) SearchBooks(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error) {
	m.booksCalled = true
	return m.record(ctx, pattern, publishByDate)
}

func (m *mockRepo) record(ctx context.Context, pattern string, publishByDate *string) ([]domain.Row, error) {
	m.pattern = pattern
	m.publishByDate = publishByDate
	_, m.hadDeadline = ctx.Deadline()
	return m.rows, m.err
}

// --- Tests ---

func TestByAuthor_WrapsPattern(t *testing.T) {
	repo := &mockRepo{rows: []domain.Row{{"title": "The Hobbit"}}}
	svc := New(repo)

	rows, err := svc.ByAuthor(context.Background(), "  Tolkien ", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.authorsCalled {
		t.Error("expected SearchAuthors to be called")
	}
	if repo.booksCalled {
		t.Error("SearchBooks should not be called")
	}
	if repo.pattern != "%Tolkien%" {
		t.Errorf("pattern = %q, want %%Tolkien%%", repo.pattern)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
}

func TestByTitle_TargetsBooks(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if _, err := svc.ByTitle(context.Background(), "Hobbit", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.booksCalled {
		t.Error("expected SearchBooks to be called")
	}
	if repo.authorsCalled {
		t.Error("SearchAuthors should not be called")
	}
}

func TestRun_EmptyTermStaysEmpty(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if _, err := svc.ByTitle(context.Background(), "   ", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.pattern != "" {
		t.Errorf("pattern = %q, want empty passthrough", repo.pattern)
	}
}

func TestRun_DateFilterPassedRaw(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	date := "1954-07-29"
	if _, err := svc.ByAuthor(context.Background(), "Tolkien", &date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.publishByDate == nil || *repo.publishByDate != "1954-07-29" {
		t.Errorf("publishByDate = %v, want raw 1954-07-29", repo.publishByDate)
	}
}

func TestRun_AbsentDateFilterStaysNil(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if _, err := svc.ByAuthor(context.Background(), "Tolkien", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.publishByDate != nil {
		t.Errorf("publishByDate = %v, want nil", repo.publishByDate)
	}
}

func TestRun_RepoErrorMapsToSearchFailed(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection refused")}
	svc := New(repo)

	_, err := svc.ByAuthor(context.Background(), "Tolkien", nil)
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Errorf("expected ErrSearchFailed, got %v", err)
	}
}

func TestRun_QueryTimeoutApplied(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo).WithQueryTimeout(100 * time.Millisecond)

	if _, err := svc.ByAuthor(context.Background(), "Tolkien", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.hadDeadline {
		t.Error("expected query context to carry a deadline")
	}
}
