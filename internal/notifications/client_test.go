package notifications

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifyTransferSummary(t *testing.T) {
	var received string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		assert.Equal(t, "/transfers", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "transfers", true)
	client.NotifyTransferSummary(context.Background(), 120, 7, 95*time.Second)

	assert.Contains(t, received, "120 rows scanned")
	assert.Contains(t, received, "7 transferred")
}

func TestNotifyDisabledSendsNothing(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "transfers", false)
	client.NotifyTransferSummary(context.Background(), 1, 1, time.Second)

	assert.False(t, called)
}

func TestSendRetriesThenGivesUp(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "transfers", true)
	client.maxRetries = 2
	client.baseDelay = time.Millisecond

	err := client.send(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}
