package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// QueuedResponsePayload is the synthetic body returned when a mutation is
// captured instead of delivered.
type QueuedResponsePayload struct {
	Queued         bool   `json:"queued"`
	IdempotencyKey string `json:"idempotency_key"`
}

// Transport wraps an http.RoundTripper and captures mutating requests that
// fail with a network error. Captured requests receive a synthetic 202 so
// the caller can keep working offline.
type Transport struct {
	next  http.RoundTripper
	queue *Queue
	logg  *logger.Logger
}

// NewTransport builds a Transport around next. A nil next falls back to
// http.DefaultTransport.
func NewTransport(next http.RoundTripper, queue *Queue, logg *logger.Logger) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{next: next, queue: queue, logg: logg}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !isMutating(req.Method) || t.queue == nil {
		return t.next.RoundTrip(req)
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	resp, err := t.next.RoundTrip(req)
	if err == nil {
		return resp, nil
	}
	if !isNetworkError(err) {
		return nil, err
	}

	key := req.Header.Get("Idempotency-Key")
	if key == "" {
		key = uuid.NewString()
	}

	queued := models.QueuedRequest{
		Method:         req.Method,
		Path:           req.URL.RequestURI(),
		Body:           body,
		ContentType:    req.Header.Get("Content-Type"),
		IdempotencyKey: key,
	}
	if qErr := t.queue.Enqueue(req.Context(), queued); qErr != nil {
		return nil, errors.Join(err, qErr)
	}

	if t.logg != nil {
		ctx := t.logg.WithFields(req.Context(), map[string]any{
			"method":          req.Method,
			"path":            req.URL.Path,
			"idempotency_key": key,
		})
		t.logg.Warn(ctx, "request queued for offline replay")
	}

	return syntheticAccepted(req, key), nil
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	// Timeouts, refused connections, and DNS failures all surface as
	// *url.Error from the transport. Anything that made it to the server
	// comes back as a response, not an error.
	return true
}

func syntheticAccepted(req *http.Request, key string) *http.Response {
	payload, _ := json.Marshal(QueuedResponsePayload{Queued: true, IdempotencyKey: key})
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return &http.Response{
		Status:        http.StatusText(http.StatusAccepted),
		StatusCode:    http.StatusAccepted,
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}
}
