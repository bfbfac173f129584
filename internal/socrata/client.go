package socrata

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"insightcli/internal/config"
)

const userAgent = "insight-datakit/1.0"

// timeNow is swapped in tests for deterministic expiry clauses
var timeNow = time.Now

// Client downloads records from a Socrata Open Data endpoint
type Client struct {
	baseURL     string
	metadataURL string
	httpClient  *http.Client
	limiter     *rate.Limiter
	pageSize    int
	concurrency int
	logger      *slog.Logger
	validate    *validator.Validate
}

// DownloadRequest describes a filtered download. Validated before any
// network call is made.
type DownloadRequest struct {
	Limit     int      `validate:"gte=0"`
	Offset    int      `validate:"gte=0"`
	Zipcodes  []string `validate:"dive,len=5,numeric"`
	Breeds    []string `validate:"dive,min=1"`
	Gender    string   `validate:"omitempty,oneof=M F"`
	StartDate string   `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `validate:"omitempty,datetime=2006-01-02,required_with=StartDate"`
	Expiring  int      `validate:"gte=0"`
	Where     string
	Order     string
	Select    string
}

// Page is one page of raw CSV rows, header excluded
type Page struct {
	Header []string
	Rows   [][]string
}

// NewClient creates a Socrata client from downloader configuration
func NewClient(cfg config.DownloaderConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	rps := cfg.RPS
	if rps <= 0 {
		rps = 4
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50000
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		metadataURL: cfg.MetadataURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		pageSize:    pageSize,
		concurrency: concurrency,
		logger:      logger.With(slog.String("component", "socrata_client")),
		validate:    validator.New(),
	}
}

// BuildQuery converts a validated download request into a SoQL query
func (c *Client) BuildQuery(req DownloadRequest) (Query, error) {
	if err := c.validate.Struct(req); err != nil {
		return Query{}, fmt.Errorf("invalid download request: %w", err)
	}

	conditions := []string{}
	if len(req.Zipcodes) > 0 {
		conditions = append(conditions, ByZipcodes(req.Zipcodes))
	}
	if len(req.Breeds) > 0 {
		conditions = append(conditions, ByBreeds(req.Breeds))
	}
	if req.Gender != "" {
		conditions = append(conditions, ByGender(req.Gender))
	}
	if req.StartDate != "" && req.EndDate != "" {
		conditions = append(conditions, IssuedBetween(req.StartDate, req.EndDate))
	}
	if req.Expiring > 0 {
		conditions = append(conditions, ExpiringWithin(req.Expiring, timeNow()))
	}
	if req.Where != "" {
		conditions = append(conditions, req.Where)
	}

	return Query{
		Limit:  req.Limit,
		Offset: req.Offset,
		Where:  CombineWhere(conditions...),
		Order:  req.Order,
		Select: req.Select,
	}, nil
}

// FetchCSV performs a single request and parses the CSV response
func (c *Client) FetchCSV(ctx context.Context, query Query) (*Page, error) {
	body, err := c.get(ctx, c.baseURL, query, "text/csv, application/json")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV response: %w", err)
	}
	if len(records) == 0 {
		return &Page{}, nil
	}

	return &Page{Header: records[0], Rows: records[1:]}, nil
}

// FetchRaw performs a single request and returns the raw response body,
// used for JSON format downloads
func (c *Client) FetchRaw(ctx context.Context, query Query, format string) ([]byte, error) {
	base := c.baseURL
	accept := "text/csv"
	if format == "json" {
		base = strings.TrimSuffix(base, ".csv") + ".json"
		accept = "application/json"
	}

	body, err := c.get(ctx, base, query, accept)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(body)
}

// DownloadAll pages through the full (filtered) dataset with bounded
// concurrency. Pages are requested until one comes back short.
func (c *Client) DownloadAll(ctx context.Context, query Query) (*Page, error) {
	c.logger.InfoContext(ctx, "starting paged download",
		slog.Int("page_size", c.pageSize),
		slog.Int("concurrency", c.concurrency))

	result := &Page{}

	// The views API exposes no reliable total count, so pages are fetched in
	// windows of `concurrency`; a short page anywhere in the window marks the
	// end of the dataset.
	for window := 0; ; window++ {
		batch := make([]*Page, c.concurrency)

		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < c.concurrency; i++ {
			i := i
			pageQuery := query
			pageQuery.Limit = c.pageSize
			pageQuery.Offset = query.Offset + (window*c.concurrency+i)*c.pageSize

			g.Go(func() error {
				page, err := c.FetchCSV(gctx, pageQuery)
				if err != nil {
					return fmt.Errorf("page %d: %w", window*c.concurrency+i, err)
				}
				batch[i] = page
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		done := false
		for _, page := range batch {
			if result.Header == nil && len(page.Header) > 0 {
				result.Header = page.Header
			}
			result.Rows = append(result.Rows, page.Rows...)
			if len(page.Rows) < c.pageSize {
				done = true
				break
			}
		}
		if done {
			break
		}
	}

	c.logger.InfoContext(ctx, "paged download complete", slog.Int("rows", len(result.Rows)))
	return result, nil
}

// Sample fetches up to n records for quick inspection
func (c *Client) Sample(ctx context.Context, n int) (*Page, error) {
	return c.FetchCSV(ctx, Query{Limit: n})
}

// DatasetInfo fetches dataset metadata from the Socrata views API
func (c *Client) DatasetInfo(ctx context.Context) (map[string]interface{}, error) {
	body, err := c.get(ctx, c.metadataURL, Query{}, "application/json")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var info map[string]interface{}
	if err := json.NewDecoder(body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode dataset metadata: %w", err)
	}
	return info, nil
}

// SaveToFile downloads with the given query and writes the raw response to path
func (c *Client) SaveToFile(ctx context.Context, query Query, format, path string) error {
	data, err := c.FetchRaw(ctx, query, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	c.logger.InfoContext(ctx, "data saved",
		slog.String("path", path),
		slog.Int("bytes", len(data)))
	return nil
}

func (c *Client) get(ctx context.Context, base string, query Query, accept string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.URL.RawQuery = query.Values().Encode()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, base, strings.TrimSpace(string(snippet)))
	}

	return resp.Body, nil
}
