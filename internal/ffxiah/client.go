package ffxiah

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mogtools/ahsync/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "ahsync/1.0"
)

// Client fetches item pages from FFXIAH. It implements domain.PageFetcher.
type Client struct {
	base   string
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a page fetcher against base (DefaultBaseURL when empty).
func NewClient(base string, timeout time.Duration, logger *slog.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	http := resty.New()
	http.SetTimeout(timeout)
	http.SetHeader("User-Agent", userAgent)

	return &Client{base: base, http: http, logger: logger}
}

// ItemPage performs the GET for one item and returns the raw page text. Any
// transport error or non-success status is an error; the sync engine treats
// that as fatal for the whole batch.
func (c *Client) ItemPage(ctx context.Context, itemID int, name, server string) (string, error) {
	url := ItemURL(c.base, itemID, name, server)

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch item %d: %w", itemID, err)
	}
	if !resp.IsSuccess() {
		c.logger.Warn("item page request rejected", "itemID", itemID, "status", resp.StatusCode())
		return "", fmt.Errorf("fetch item %d: status %d: %w", itemID, resp.StatusCode(), domain.ErrFetchFailed)
	}

	return string(resp.Body()), nil
}
