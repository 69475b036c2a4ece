package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/pipeline"
	"github.com/yangnim21029/pagelens/webhook"
)

// batchJob tracks one batch audit. Worker goroutines write results while
// status polls read them, so all field access goes through the mutex.
type batchJob struct {
	mu         sync.Mutex
	id         string
	status     string // "processing", "completed", "failed", "partial"
	completed  int
	results    []*models.AuditResponse
	webhookURL string
	expiresAt  time.Time
}

func newBatchJob(id string, total int, webhookURL string, ttl time.Duration) *batchJob {
	return &batchJob{
		id:         id,
		status:     "processing",
		results:    make([]*models.AuditResponse, total),
		webhookURL: webhookURL,
		expiresAt:  time.Now().Add(ttl),
	}
}

func (j *batchJob) setResult(idx int, resp *models.AuditResponse) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results[idx] = resp
	j.completed++
}

func (j *batchJob) finish(status string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = status
}

func (j *batchJob) snapshot() models.BatchStatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()
	results := make([]*models.AuditResponse, len(j.results))
	copy(results, j.results)
	return models.BatchStatusResponse{
		ID:        j.id,
		Status:    j.status,
		Completed: j.completed,
		Total:     len(j.results),
		Results:   results,
	}
}

func (j *batchJob) expired(now time.Time) bool {
	return now.After(j.expiresAt)
}

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

func init() {
	// Background goroutine to expire batch jobs past their TTL.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			batchStore.Range(func(key, value any) bool {
				if value.(*batchJob).expired(now) {
					batchStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// BatchOptions configures batch processing.
type BatchOptions struct {
	MaxConcurrency int
	MaxItems       int
	JobTTL         time.Duration
	Webhook        *webhook.Client
}

// PostBatch returns a handler for POST /api/v1/batch/audit.
// It validates the request, creates a batch job, and launches goroutines
// to audit each item concurrently.
func PostBatch(p *pipeline.Pipeline, opts BatchOptions, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchAuditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if opts.MaxItems > 0 && len(req.Items) > opts.MaxItems {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "too many items in batch",
				},
			})
			return
		}

		ttl := opts.JobTTL
		if ttl <= 0 {
			ttl = time.Hour
		}
		jobID := "batch-" + randomID()
		job := newBatchJob(jobID, len(req.Items), req.WebhookURL, ttl)
		batchStore.Store(jobID, job)

		// Launch audits in background.
		go runBatch(p, job, req, opts, metrics)

		c.JSON(http.StatusOK, models.BatchAuditResponse{
			ID:     jobID,
			Status: "processing",
			Total:  len(req.Items),
		})
	}
}

// GetBatch returns a handler for GET /api/v1/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		val, ok := batchStore.Load(jobID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, val.(*batchJob).snapshot())
	}
}

// runBatch audits all items in a batch job with concurrency limited by a
// semaphore, then fires the completion webhook if one was requested.
func runBatch(p *pipeline.Pipeline, job *batchJob, req models.BatchAuditRequest, opts BatchOptions, metrics *Metrics) {
	maxConcurrent := opts.MaxConcurrency
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var failed atomic.Int32

	for i, item := range req.Items {
		wg.Add(1)
		go func(idx int, item models.BatchAuditItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			resp := auditOne(p, item)
			job.setResult(idx, resp)
			if !resp.Success {
				failed.Add(1)
			}
			metrics.AuditsServed.Add(1)
		}(i, item)
	}

	wg.Wait()

	total := len(req.Items)
	failedCount := int(failed.Load())

	switch {
	case failedCount == total:
		job.finish("failed")
	case failedCount > 0:
		job.finish("partial")
	default:
		job.finish("completed")
	}

	final := job.snapshot()
	slog.Info("batch job finished",
		"id", final.ID,
		"status", final.Status,
		"completed", total-failedCount,
		"failed", failedCount,
		"total", total,
	)

	if job.webhookURL != "" && opts.Webhook != nil {
		opts.Webhook.DeliverAsync(job.webhookURL, webhook.NewBatchEvent(final))
	}
}

// auditOne runs a single audit for one batch item.
func auditOne(p *pipeline.Pipeline, item models.BatchAuditItem) *models.AuditResponse {
	start := time.Now()

	result, err := p.Run(context.Background(), &models.AuditRequest{
		HTML:            item.HTML,
		PageDetails:     item.PageDetails,
		FocusKeyword:    item.FocusKeyword,
		RelatedKeywords: item.RelatedKeywords,
		Options:         item.Options,
	})
	if err != nil {
		auditErr, ok := err.(*models.AuditError)
		if !ok {
			auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
		}
		return &models.AuditResponse{
			Success:          false,
			Error:            auditErr.ToDetail(),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		}
	}

	return &models.AuditResponse{
		Success:           true,
		Report:            result.Report,
		PageUnderstanding: result.PageUnderstanding,
		ProcessingTimeMs:  time.Since(start).Milliseconds(),
	}
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
