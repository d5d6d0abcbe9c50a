// Package dashboard fetches the WEPA monitor page and reduces one printer's
// row to the raw component mapping the core consumes. All page-format
// knowledge lives here; nothing downstream ever sees markup.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsr4564/WepaAPP/internal/ports"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

type Client struct {
	httpClient *http.Client
	url        string
	printerID  string
	trays      []string
}

var _ ports.StatusSource = (*Client)(nil)

// NewClient builds a source for one printer on the monitor page. trays is
// the set of registry tray IDs to report explicitly on every fetch.
func NewClient(httpClient *http.Client, url, printerID string, trays []string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		url:        url,
		printerID:  printerID,
		trays:      trays,
	}
}

func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	if c.url == "" {
		return nil, errors.New("monitor url is not configured")
	}
	if c.printerID == "" {
		return nil, errors.New("printer id is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build monitor request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch monitor page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch monitor page: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read monitor page: %w", err)
	}

	record, err := parsePage(string(body), c.printerID)
	if err != nil {
		return nil, fmt.Errorf("parse monitor page: %w", err)
	}

	return rawSnapshot(record, c.trays), nil
}
