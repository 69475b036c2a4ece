// Package webhook delivers signed batch completion callbacks.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yangnim21029/pagelens/models"
)

// Event types delivered to webhook endpoints.
const (
	EventBatchCompleted = "batch.completed"
	EventBatchFailed    = "batch.failed"
)

// Event is the payload sent to webhook endpoints. Batch carries the same
// shape as GET /batch/:id, so webhook consumers and pollers parse one format.
type Event struct {
	Type      string                     `json:"type"`
	JobID     string                     `json:"job_id"`
	Timestamp int64                      `json:"timestamp"`
	Batch     models.BatchStatusResponse `json:"batch"`
}

// NewBatchEvent builds the event for a finished batch job. Jobs where every
// item failed deliver batch.failed; partial and full success both deliver
// batch.completed.
func NewBatchEvent(batch models.BatchStatusResponse) *Event {
	typ := EventBatchCompleted
	if batch.Status == "failed" {
		typ = EventBatchFailed
	}
	return &Event{
		Type:      typ,
		JobID:     batch.ID,
		Timestamp: time.Now().Unix(),
		Batch:     batch,
	}
}

// Client delivers events over HTTP with a fixed signing secret and timeout.
type Client struct {
	secret     string
	httpClient *http.Client
}

// NewClient creates a webhook client. A timeout <= 0 falls back to 10s.
func NewClient(secret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Deliver sends a webhook event synchronously.
// The request body is signed with HMAC-SHA256 if the client has a secret.
// Header: X-PageLens-Signature: sha256=<hex>
func (c *Client) Deliver(ctx context.Context, url string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "PageLens-Webhook/1.0")

	if c.secret != "" {
		mac := hmac.New(sha256.New, []byte(c.secret))
		mac.Write(body)
		sig := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("X-PageLens-Signature", "sha256="+sig)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverAsync sends a webhook event asynchronously with up to 3 retries.
// Retry intervals: 1s, 5s, 30s.
func (c *Client) DeliverAsync(url string, event *Event) {
	go func() {
		delays := []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second}
		for attempt, delay := range delays {
			if delay > 0 {
				time.Sleep(delay)
			}
			err := c.Deliver(context.Background(), url, event)
			if err == nil {
				slog.Info("webhook delivered",
					"url", url,
					"event", event.Type,
					"job_id", event.JobID,
					"attempt", attempt+1,
				)
				return
			}
			slog.Warn("webhook delivery failed",
				"url", url,
				"event", event.Type,
				"job_id", event.JobID,
				"attempt", attempt+1,
				"error", err,
			)
		}
		slog.Error("webhook delivery exhausted all retries",
			"url", url,
			"event", event.Type,
			"job_id", event.JobID,
		)
	}()
}
