package offline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
)

// Flusher periodically probes the backend and, once it answers, replays
// pending queued requests in FIFO order.
type Flusher struct {
	queue   *Queue
	client  *http.Client
	baseURL string
	cfg     config.OfflineConfig
	logg    *logger.Logger
	metrics *metrics.QueueMetrics
}

// NewFlusher wires a Flusher. The client must NOT use the offline
// Transport or failed replays would re-enqueue themselves.
func NewFlusher(queue *Queue, client *http.Client, baseURL string, cfg config.OfflineConfig, logg *logger.Logger, qm *metrics.QueueMetrics) (*Flusher, error) {
	if queue == nil {
		return nil, fmt.Errorf("queue is required")
	}
	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("valid base url is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	// A non-positive cap would keep rejected rows pending forever, and a
	// full batch of them would make Flush refetch the same rows in a loop.
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Flusher{
		queue:   queue,
		client:  client,
		baseURL: baseURL,
		cfg:     cfg,
		logg:    logg,
		metrics: qm,
	}, nil
}

// Run probes on the configured interval until ctx is cancelled.
func (f *Flusher) Run(ctx context.Context) {
	interval := f.cfg.ProbeInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !f.probe(ctx) {
				continue
			}
			if err := f.Flush(ctx); err != nil && f.logg != nil {
				f.logg.Error(ctx, "offline queue flush failed", err)
			}
		}
	}
}

// Flush replays pending requests oldest-first. It stops at the first
// network failure so ordering is preserved for the next pass.
func (f *Flusher) Flush(ctx context.Context) error {
	start := time.Now()
	defer func() {
		if f.metrics != nil {
			f.metrics.ObserveFlushDuration(time.Since(start))
		}
	}()

	batch := f.cfg.FlushBatch
	if batch <= 0 {
		batch = 50
	}

	for {
		rows, err := f.queue.FetchPending(ctx, batch)
		if err != nil {
			return fmt.Errorf("fetching pending requests: %w", err)
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			if err := f.replay(ctx, row); err != nil {
				f.updateDepth(ctx)
				return err
			}
		}
		if len(rows) < batch {
			break
		}
	}

	f.updateDepth(ctx)
	return nil
}

func (f *Flusher) replay(ctx context.Context, row models.QueuedRequest) error {
	req, err := http.NewRequestWithContext(ctx, row.Method, f.baseURL+row.Path, bytes.NewReader(row.Body))
	if err != nil {
		return fmt.Errorf("building replay request: %w", err)
	}
	if row.ContentType != "" {
		req.Header.Set("Content-Type", row.ContentType)
	}
	req.Header.Set("Idempotency-Key", row.IdempotencyKey)

	resp, err := f.client.Do(req)
	if err != nil {
		// network is gone again, keep the row pending
		if f.metrics != nil {
			f.metrics.IncFlushed("network_error")
		}
		return fmt.Errorf("replaying queued request %d: %w", row.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if f.metrics != nil {
			f.metrics.IncFlushed("sent")
		}
		return f.queue.MarkSent(ctx, row.ID)
	}

	// the server rejected it; count the attempt and move on
	if f.metrics != nil {
		f.metrics.IncFlushed("rejected")
	}
	cause := fmt.Errorf("server returned %d", resp.StatusCode)
	if err := f.queue.MarkAttemptFailed(ctx, row.ID, cause, f.cfg.MaxAttempts); err != nil {
		return err
	}
	if f.logg != nil {
		logCtx := f.logg.WithFields(ctx, map[string]any{
			"queued_id": row.ID,
			"status":    resp.StatusCode,
		})
		f.logg.Warn(logCtx, "queued request rejected on replay")
	}
	return nil
}

func (f *Flusher) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/health/ready", nil)
	if err != nil {
		return false
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (f *Flusher) updateDepth(ctx context.Context) {
	if f.metrics == nil {
		return
	}
	if pending, err := f.queue.PendingCount(ctx); err == nil {
		f.metrics.SetDepth(pending)
	}
}
