package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org/api/v2/product"
	userAgent      = "GroceryCalc/1.0"
)

// Client translates a scanned barcode into a display name via the Open Food
// Facts API. Every failure mode — not found, non-2xx status, transport
// error, malformed response — collapses into the same absence signal, so
// callers fall back to manual entry without distinguishing causes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a lookup client. An empty baseURL selects the public
// Open Food Facts endpoint.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		logger:     logger,
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
	} `json:"product"`
}

// Lookup fetches the product behind a barcode. It returns the product name
// (with the brand appended in parentheses when present) and true on a hit,
// or "" and false for every kind of miss. No retries are performed.
func (c *Client) Lookup(ctx context.Context, barcode string) (string, bool) {
	name, err := c.fetch(ctx, barcode)
	if err != nil {
		c.logger.Debug("barcode lookup failed", "barcode", barcode, "error", err)
		return "", false
	}
	if name == "" {
		return "", false
	}
	return name, true
}

func (c *Client) fetch(ctx context.Context, barcode string) (string, error) {
	url := fmt.Sprintf("%s/%s.json", c.baseURL, barcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decode lookup response: %w", err)
	}

	if pr.Status != 1 || pr.Product.ProductName == "" {
		return "", nil
	}
	if pr.Product.Brands != "" {
		return fmt.Sprintf("%s (%s)", pr.Product.ProductName, pr.Product.Brands), nil
	}
	return pr.Product.ProductName, nil
}
