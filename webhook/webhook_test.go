package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yangnim21029/pagelens/models"
)

func finishedBatch(status string) models.BatchStatusResponse {
	return models.BatchStatusResponse{
		ID:        "batch-abc",
		Status:    status,
		Completed: 2,
		Total:     2,
	}
}

func TestNewBatchEvent(t *testing.T) {
	cases := []struct {
		status   string
		wantType string
	}{
		{"completed", EventBatchCompleted},
		{"partial", EventBatchCompleted},
		{"failed", EventBatchFailed},
	}
	for _, c := range cases {
		ev := NewBatchEvent(finishedBatch(c.status))
		if ev.Type != c.wantType {
			t.Errorf("status %s: event type = %s, want %s", c.status, ev.Type, c.wantType)
		}
		if ev.JobID != "batch-abc" {
			t.Errorf("status %s: JobID = %s", c.status, ev.JobID)
		}
	}
}

func TestDeliverSignsPayload(t *testing.T) {
	const secret = "test-secret"

	var gotSig string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-PageLens-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewClient(secret, 5*time.Second)
	event := NewBatchEvent(finishedBatch("completed"))
	if err := wh.Deliver(context.Background(), srv.URL, event); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if !strings.HasPrefix(gotSig, "sha256=") {
		t.Fatalf("signature header = %q", gotSig)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSig != want {
		t.Errorf("signature = %s, want %s", gotSig, want)
	}

	var decoded Event
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if decoded.Type != EventBatchCompleted || decoded.JobID != "batch-abc" {
		t.Errorf("decoded event = %+v", decoded)
	}
	if decoded.Batch.Completed != 2 || decoded.Batch.Total != 2 {
		t.Errorf("decoded batch = %+v", decoded.Batch)
	}
}

func TestDeliverNoSecretSkipsSignature(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHeader = r.Header.Get("X-PageLens-Signature") != ""
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewClient("", 0)
	if err := wh.Deliver(context.Background(), srv.URL, NewBatchEvent(finishedBatch("completed"))); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if sawHeader {
		t.Error("signature header set without a secret")
	}
}

func TestDeliverEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewClient("", 0)
	if err := wh.Deliver(context.Background(), srv.URL, NewBatchEvent(finishedBatch("failed"))); err == nil {
		t.Error("expected error for 502 response")
	}
}
