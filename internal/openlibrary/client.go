package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rshade/libris/internal/catalog"
	"github.com/rshade/libris/internal/logging"
)

// Client defaults.
const (
	DefaultBaseURL   = "https://openlibrary.org"
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "libris"

	// PageSize is the number of records requested per page.
	PageSize = 10

	searchPath   = "/search.json"
	searchFields = "key,title,author_name,first_publish_year,cover_i"
)

// Argument validation errors. These are returned before any request is made.
var (
	ErrInvalidQuery = errors.New("query must be a non-empty trimmed string")
	ErrInvalidPage  = errors.New("page must be >= 1")
)

// Config configures a Client. Zero values take the package defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// RequestsPerSecond throttles outgoing requests. 0 disables throttling.
	RequestsPerSecond float64

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Page is one page of search results.
type Page struct {
	Records []catalog.BookRecord
	// Total is the server-reported number of matches for the query.
	Total int
}

// searchResponse matches the subset of search.json we read.
type searchResponse struct {
	NumFound int                  `json:"numFound"`
	Docs     []catalog.BookRecord `json:"docs"`
}

// Client queries the Open Library search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    limiter,
	}
}

// SearchURL builds the request URL for a query page.
func (c *Client) SearchURL(query string, page int) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(PageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("fields", searchFields)
	return c.baseURL + searchPath + "?" + params.Encode()
}

// FetchPage retrieves one page of results for query. page is 1-based.
func (c *Client) FetchPage(ctx context.Context, query string, page int) (*Page, error) {
	if query == "" || strings.TrimSpace(query) != query {
		return nil, fmt.Errorf("%w: %q", ErrInvalidQuery, query)
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}

	log := logging.FromContext(ctx)
	reqURL := c.SearchURL(query, page)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newFetchError(query, page, 0, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newFetchError(query, page, 0, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("query", query).Int("page", page).Msg("search request failed")
		return nil, newFetchError(query, page, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newFetchError(query, page, resp.StatusCode, ErrUnexpectedStatus)
	}

	var body searchResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return nil, newFetchError(query, page, resp.StatusCode, fmt.Errorf("%w: %w", ErrMalformedPayload, decodeErr))
	}

	records := body.Docs
	if records == nil {
		records = []catalog.BookRecord{}
	}

	log.Debug().
		Str("query", query).
		Int("page", page).
		Int("records", len(records)).
		Int("total", body.NumFound).
		Dur("elapsed", time.Since(start)).
		Msg("search page fetched")

	return &Page{Records: records, Total: body.NumFound}, nil
}
