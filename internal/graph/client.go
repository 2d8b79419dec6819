// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph is a Microsoft Graph client covering the OneNote surface
// the exporter needs: notebook, section, and page enumeration plus page
// content retrieval. Requests are paced through a rate limiter and retried
// on throttling responses.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/notedown/internal/httputil"
	"github.com/pdiddy/notedown/pkg/types"
)

// graphAPIBase is the Microsoft Graph v1.0 endpoint. Declared as a var so
// tests can substitute an httptest server.
var graphAPIBase = "https://graph.microsoft.com/v1.0"

// DefaultRequestDelay is the minimum spacing between consecutive Graph
// requests when the config does not override it.
const DefaultRequestDelay = 500 * time.Millisecond

const defaultTimeout = 60 * time.Second

// Sentinel errors for the per-page failure taxonomy. Callers match them
// with errors.Is to decide whether a page is retryable.
var (
	// ErrNotFound means the page or resource does not exist (HTTP 404),
	// typically a subpage or a sync artifact. Permanent.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means access was denied (HTTP 403), often a
	// password-protected section. Worth retrying on a later run.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized means the bearer token is missing or expired (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")
)

// Client talks to the Microsoft Graph OneNote API.
type Client struct {
	httpClient *http.Client
	token      string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient creates a Graph client from config. A zero RequestDelay uses
// DefaultRequestDelay; a zero Timeout uses 60s.
func NewClient(cfg types.GraphConfig) *Client {
	delay := cfg.RequestDelay
	if delay <= 0 {
		delay = DefaultRequestDelay
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		maxRetries: cfg.MaxRetries,
	}
}

// ListNotebooks returns all notebooks for the signed-in user.
func (c *Client) ListNotebooks(ctx context.Context) ([]types.Notebook, error) {
	return listAll[types.Notebook](ctx, c, graphAPIBase+"/me/onenote/notebooks")
}

// ListSections returns the sections of a notebook in listed order.
func (c *Client) ListSections(ctx context.Context, notebookID string) ([]types.Section, error) {
	u := graphAPIBase + "/me/onenote/notebooks/" + url.PathEscape(notebookID) + "/sections"
	return listAll[types.Section](ctx, c, u)
}

// ListPages returns the pages of a section in listed order.
func (c *Client) ListPages(ctx context.Context, sectionID string) ([]types.Page, error) {
	u := graphAPIBase + "/me/onenote/sections/" + url.PathEscape(sectionID) + "/pages"
	return listAll[types.Page](ctx, c, u)
}

// GetPageContent fetches the raw XHTML content of a page.
func (c *Client) GetPageContent(ctx context.Context, pageID string) (string, error) {
	u := graphAPIBase + "/me/onenote/pages/" + url.PathEscape(pageID) + "/content"
	resp, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading page content: %w", err)
	}
	return string(data), nil
}

// listPage is one page of a paginated Graph collection response.
type listPage[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

// listAll fetches a paginated collection, following @odata.nextLink until
// it is absent.
func listAll[T any](ctx context.Context, c *Client, startURL string) ([]T, error) {
	var all []T
	for u := startURL; u != ""; {
		resp, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}

		var page listPage[T]
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing Graph response from %s: %w", u, err)
		}

		all = append(all, page.Value...)
		u = page.NextLink
	}
	return all, nil
}

// get issues an authenticated GET, waiting on the rate limiter first and
// mapping error status codes onto the sentinel taxonomy.
func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("Graph API request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusUnauthorized:
		drain(resp)
		return nil, fmt.Errorf("GET %s: %w", u, ErrUnauthorized)
	case http.StatusForbidden:
		drain(resp)
		return nil, fmt.Errorf("GET %s: %w", u, ErrForbidden)
	case http.StatusNotFound:
		drain(resp)
		return nil, fmt.Errorf("GET %s: %w", u, ErrNotFound)
	default:
		drain(resp)
		return nil, fmt.Errorf("Graph API returned HTTP %d for %s", resp.StatusCode, u)
	}
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
