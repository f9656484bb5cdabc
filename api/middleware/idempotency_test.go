package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

// newIdempotentAPI mounts the middleware the same way the real router does,
// with Use on the /api subrouter, so matching happens before chi resolves
// the final route pattern.
func newIdempotentAPI(store *fakeIdempotencyStore, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(Idempotency(store, nil))
		r.Route("/complaints", func(r chi.Router) {
			r.Post("/", handler)
			r.Get("/", handler)
		})
	})
	return r
}

func TestIdempotencyRequiresKeyOnComplaintIntake(t *testing.T) {
	store := newFakeIdempotencyStore()
	var calls int
	router := newIdempotentAPI(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/complaints", strings.NewReader(`{"order_number":"PO-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", rec.Code)
	}
	if calls != 0 {
		t.Fatalf("handler should not run without a key, ran %d times", calls)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", payload.Error.Code)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	var calls int
	router := newIdempotentAPI(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/complaints", strings.NewReader(`{"order_number":"PO-1"}`))
		req.Header.Set("Idempotency-Key", "queue-key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, rec.Code)
		}
		if body := rec.Body.String(); body != `{"data":{"id":1}}` {
			t.Fatalf("request %d: unexpected body %s", i, body)
		}
	}
	if calls != 1 {
		t.Fatalf("expected exactly one handler invocation, got %d", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	router := newIdempotentAPI(store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	first := httptest.NewRequest(http.MethodPost, "/api/complaints", strings.NewReader(`{"order_number":"PO-1"}`))
	first.Header.Set("Idempotency-Key", "shared-key")
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/api/complaints", strings.NewReader(`{"order_number":"PO-2"}`))
	second.Header.Set("Idempotency-Key", "shared-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for reused key, got %d", rec.Code)
	}
}

func TestIdempotencySkipsReads(t *testing.T) {
	store := newFakeIdempotencyStore()
	var calls int
	router := newIdempotentAPI(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/complaints", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || calls != 1 {
		t.Fatalf("read should pass through untouched, status=%d calls=%d", rec.Code, calls)
	}
}

type fakeIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.records[key]
	if !ok {
		return "", redis.Nil
	}
	return stored, nil
}

func (f *fakeIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[key]; ok {
		return false, nil
	}
	f.records[key] = value.(string)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idempotency:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.records, k)
	}
	return nil
}
