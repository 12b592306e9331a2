package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Dispatcher drains the notifications outbox on a fixed interval and POSTs
// each pending row to the configured endpoint, signing the body with the
// shared secret. Failed deliveries are retried with exponential backoff
// until max attempts is reached.
type Dispatcher struct {
	pool     PgxPool
	endpoint string
	secret   string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger
	stopCh   chan struct{}
}

func NewDispatcher(pool PgxPool, endpoint, secret string, interval time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		pool:     pool,
		endpoint: endpoint,
		secret:   secret,
		interval: interval,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("notification dispatcher started", "interval", d.interval)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped")
			return
		case <-d.stopCh:
			d.logger.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.processQueue(ctx); err != nil {
				d.logger.Error("failed to process notification queue", "error", err)
			}
		}
	}
}

func (d *Dispatcher) Stop() {
	close(d.stopCh)
}

func (d *Dispatcher) processQueue(ctx context.Context) error {
	query := `
		SELECT id, type, payload, attempts, max_attempts
		FROM notifications
		WHERE status = 'pending' AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY created_at ASC
		FOR UPDATE SKIP LOCKED
		LIMIT 10
	`

	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("query notification queue: %w", err)
	}
	defer rows.Close()

	var pending []QueuedNotification
	for rows.Next() {
		var n QueuedNotification
		err := rows.Scan(&n.ID, &n.Type, &n.Payload, &n.Attempts, &n.MaxAttempts)
		if err != nil {
			d.logger.Error("failed to scan queued notification", "error", err)
			continue
		}
		pending = append(pending, n)
	}
	rows.Close()

	for i := range pending {
		n := &pending[i]
		if err := d.deliver(ctx, n); err != nil {
			if retryErr := d.scheduleRetry(ctx, n, err.Error()); retryErr != nil {
				d.logger.Error("failed to schedule notification retry",
					"notification_id", n.ID,
					"error", retryErr,
				)
			}
			continue
		}
		if err := d.markDelivered(ctx, n.ID); err != nil {
			d.logger.Error("failed to mark notification delivered",
				"notification_id", n.ID,
				"error", err,
			)
		}
	}

	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, n *QueuedNotification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(n.Payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Aviva-Signature", Sign(d.secret, n.Payload))
	req.Header.Set("X-Aviva-Event", n.Type)
	req.Header.Set("User-Agent", "Aviva-Notifier/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return nil
}

func (d *Dispatcher) scheduleRetry(ctx context.Context, n *QueuedNotification, errorMsg string) error {
	if n.Attempts+1 >= n.MaxAttempts {
		return d.markFailed(ctx, n.ID, errorMsg)
	}

	delay := time.Duration(1<<n.Attempts) * time.Second
	nextRetry := time.Now().Add(delay)

	query := `
		UPDATE notifications
		SET attempts = attempts + 1,
		    next_retry_at = $1,
		    last_error = $2,
		    updated_at = NOW()
		WHERE id = $3
	`

	_, err := d.pool.Exec(ctx, query, nextRetry, errorMsg, n.ID)
	if err != nil {
		return fmt.Errorf("schedule retry: %w", err)
	}

	d.logger.Info("notification scheduled for retry",
		"notification_id", n.ID,
		"attempts", n.Attempts+1,
		"next_retry", nextRetry,
	)

	return nil
}

func (d *Dispatcher) markDelivered(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = 'delivered',
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := d.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}

	return nil
}

func (d *Dispatcher) markFailed(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE notifications
		SET status = 'failed',
		    last_error = $1,
		    updated_at = NOW()
		WHERE id = $2
	`

	_, err := d.pool.Exec(ctx, query, errorMsg, id)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}

	d.logger.Warn("notification delivery failed", "notification_id", id, "error", errorMsg)
	return nil
}
