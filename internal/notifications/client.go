// Package notifications pushes transfer run summaries to an ntfy topic so
// coordinators hear about stalled or unusually large runs without reading
// Cloud Run logs.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
	maxRetries int
	baseDelay  time.Duration
}

func NewClient(baseURL, topic string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		topic:      topic,
		enabled:    enabled,
		maxRetries: 3,
		baseDelay:  2 * time.Second,
	}
}

// NotifyTransferSummary sends a one-line summary of a completed transfer
// pass. Failures are logged and swallowed; a lost notification must never
// fail the job.
func (c *Client) NotifyTransferSummary(ctx context.Context, rowsScanned, rowsTransferred int, elapsed time.Duration) {
	if !c.enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return
	}

	message := fmt.Sprintf("Transfer pass: %d rows scanned, %d transferred in %s",
		rowsScanned, rowsTransferred, elapsed.Round(time.Second))

	if err := c.send(ctx, message); err != nil {
		log.Warn().Err(err).Msg("Failed to send transfer summary notification")
	}
}

func (c *Client) send(ctx context.Context, message string) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay * time.Duration(1<<(attempt-1))
			log.Debug().
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Retrying notification after delay")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := c.post(ctx, message)
		if err == nil {
			return nil
		}
		lastErr = err
		log.Debug().Err(err).Int("attempt", attempt+1).Msg("Notification attempt failed")
	}
	return fmt.Errorf("notification failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) post(ctx context.Context, message string) error {
	url := c.baseURL + "/" + c.topic
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Title", "Moxalise transfer")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}
	return nil
}
