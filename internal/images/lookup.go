package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/harborlight/storefront-backend/pkg/errors"
)

const defaultLookupBaseURL = "https://world.openfoodfacts.org/api/v0/product"

// ErrUnsupportedCode marks a product code that cannot be a barcode and is
// never sent to the lookup API.
var ErrUnsupportedCode = pkgerrors.New(pkgerrors.CodeValidation, "product code is not a lookupable barcode")

var nonDigits = regexp.MustCompile(`\D`)

// LookupClient queries the Open Food Facts product API for packshot URLs.
type LookupClient struct {
	httpClient *http.Client
	baseURL    string
}

// LookupOption configures optional lookup client behavior.
type LookupOption func(*LookupClient)

// WithLookupHTTPClient overrides the default HTTP client.
func WithLookupHTTPClient(client *http.Client) LookupOption {
	return func(c *LookupClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLookupBaseURL overrides the lookup API base URL.
func WithLookupBaseURL(baseURL string) LookupOption {
	return func(c *LookupClient) {
		trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithLookupTimeout overrides the per-request timeout.
func WithLookupTimeout(timeout time.Duration) LookupOption {
	return func(c *LookupClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewLookupClient builds the barcode lookup client.
func NewLookupClient(opts ...LookupOption) *LookupClient {
	client := &LookupClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultLookupBaseURL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Lookup resolves a product code to an image URL. Codes shorter than eight
// digits return ErrUnsupportedCode. A product the API does not know yields
// an empty URL without an error.
func (c *LookupClient) Lookup(ctx context.Context, code string) (string, error) {
	barcode := nonDigits.ReplaceAllString(code, "")
	if len(barcode) < 8 {
		return "", ErrUnsupportedCode
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s.json", c.baseURL, barcode), nil)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build image lookup request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute image lookup request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d", resp.StatusCode), "image lookup failed")
	}

	var payload struct {
		Status  int `json:"status"`
		Product struct {
			ImageFrontURL      string `json:"image_front_url"`
			ImageFrontSmallURL string `json:"image_front_small_url"`
			ImageURL           string `json:"image_url"`
			ImageSmallURL      string `json:"image_small_url"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode image lookup response")
	}

	if payload.Status != 1 {
		return "", nil
	}
	for _, url := range []string{
		payload.Product.ImageFrontURL,
		payload.Product.ImageFrontSmallURL,
		payload.Product.ImageURL,
		payload.Product.ImageSmallURL,
	} {
		if url != "" {
			return url, nil
		}
	}
	return "", nil
}
