// Package report delivers the one-shot case summary to the external
// case-management endpoint. Delivery is best-effort: callers log and move on.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	model "github.com/nvx-labs/scamtrap/internal/model/engagement"
)

// Client posts case reports over HTTP with a bounded timeout.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient builds a reporting client for the given collection endpoint.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Deliver posts the report. The response body is discarded; only transport
// errors and non-2xx statuses are surfaced as errors.
func (c *Client) Deliver(ctx context.Context, rep model.CaseReport) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collection endpoint returned %d", resp.StatusCode)
	}

	c.logger.Info("case report delivered",
		"session_id", rep.SessionID,
		"total_messages", rep.TotalMessagesExchanged,
	)
	return nil
}
