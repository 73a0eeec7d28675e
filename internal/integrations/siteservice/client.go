package siteservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging surface needed by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client resolves construction-site ids to display names through the
// site directory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSite fetches a site by id.
func (c *Client) GetSite(ctx context.Context, siteID int64) (*Site, error) {
	url := fmt.Sprintf("%s/internal/sites/%d", c.baseURL, siteID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return nil, ErrSiteNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var site Site
	if err := json.NewDecoder(resp.Body).Decode(&site); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &site, nil
}

// NameOrUnknown resolves a site name, degrading to UnknownSiteName on
// any failure. Lookups decorate read models and must never block a
// booking operation.
func (c *Client) NameOrUnknown(ctx context.Context, siteID int64) string {
	site, err := c.GetSite(ctx, siteID)
	if err != nil {
		c.log.Error("siteservice unavailable, degrading site name for site_id=%d: %v", siteID, err)
		return UnknownSiteName
	}
	return site.Name
}
