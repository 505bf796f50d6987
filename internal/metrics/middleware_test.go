package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/author/{author_name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	})

	req := httptest.NewRequest("GET", "/author/Tolkien", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	requestsVal := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/author/{author_name}", "200"))
	if requestsVal < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", requestsVal)
	}

	durationCount := testutil.CollectAndCount(httpRequestDuration)
	if durationCount == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_LabelsRoutePatternNotRawPath(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/books/{book_name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest("GET", "/books/The%20Hobbit", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	// The raw title must not become a label value.
	errVal := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/books/{book_name}", "500"))
	if errVal < 1 {
		t.Errorf("expected pattern-labeled counter >= 1, got %f", errVal)
	}
}
