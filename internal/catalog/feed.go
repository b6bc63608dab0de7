package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/harborlight/storefront-backend/pkg/errors"
	"github.com/harborlight/storefront-backend/pkg/logger"
)

// EmptyFeed is returned when no inventory path yields a usable CSV. It keeps
// downstream parsing on the happy path with zero products.
const EmptyFeed = "Name of Product,Code,Price in Store,Category\n"

const feedBodyReadLimit int64 = 32 << 20

var defaultHeaderMarkers = []string{"Name of Product", "Category"}

// FeedClient fetches the raw inventory CSV from the storefront's published
// feed. Paths are tried in order; the first body that looks like an
// inventory sheet wins.
type FeedClient struct {
	httpClient    *http.Client
	baseURL       string
	paths         []string
	headerMarkers []string
	logg          *logger.Logger
}

// FeedOption configures optional feed client behavior.
type FeedOption func(*FeedClient)

// WithFeedHTTPClient overrides the default HTTP client.
func WithFeedHTTPClient(client *http.Client) FeedOption {
	return func(c *FeedClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithFeedPaths overrides the ordered candidate paths.
func WithFeedPaths(paths []string) FeedOption {
	return func(c *FeedClient) {
		if len(paths) > 0 {
			c.paths = paths
		}
	}
}

// WithHeaderMarkers overrides the substrings used to recognize a valid feed.
func WithHeaderMarkers(markers []string) FeedOption {
	return func(c *FeedClient) {
		if len(markers) > 0 {
			c.headerMarkers = markers
		}
	}
}

// WithFeedTimeout overrides the per-fetch timeout.
func WithFeedTimeout(timeout time.Duration) FeedOption {
	return func(c *FeedClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewFeedClient builds the inventory feed client for the given base URL.
func NewFeedClient(baseURL string, logg *logger.Logger, opts ...FeedOption) (*FeedClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "feed base URL is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}

	client := &FeedClient{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       trimmed,
		paths:         []string{"/inventory-categorized.csv", "/inventory.csv"},
		headerMarkers: defaultHeaderMarkers,
		logg:          logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Fetch downloads the inventory CSV. Unreachable or unrecognizable paths are
// logged and skipped; when every path fails the empty feed is returned so a
// reload never surfaces a transport error to callers.
func (c *FeedClient) Fetch(ctx context.Context) string {
	for _, path := range c.paths {
		pathCtx := c.logg.WithField(ctx, "path", path)
		body, err := c.fetchPath(ctx, path)
		if err != nil {
			c.logg.Error(pathCtx, "inventory feed path unavailable", err)
			continue
		}
		if c.looksLikeFeed(body) {
			return body
		}
		c.logg.Warn(pathCtx, "inventory feed path returned unrecognized content")
	}

	c.logg.Warn(ctx, "no inventory feed path yielded a usable CSV")
	return EmptyFeed
}

func (c *FeedClient) fetchPath(ctx context.Context, path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build feed request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute feed request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d", resp.StatusCode), "feed request failed")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, feedBodyReadLimit))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read feed body")
	}

	return string(body), nil
}

func (c *FeedClient) looksLikeFeed(body string) bool {
	if strings.TrimSpace(body) == "" {
		return false
	}
	for _, marker := range c.headerMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
