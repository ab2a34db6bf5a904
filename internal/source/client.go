// Package source talks to the four read-only JSON endpoints the viewer
// depends on: the bulk snapshot, the bulk details map, the offset-paged job
// list and the per-record details lookup.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/project-tktt/job-viewer/internal/domain"
)

// ErrStatus is wrapped by errors for non-2xx responses
var ErrStatus = errors.New("unexpected status")

// ErrNoBases is returned when an API call has no configured base
var ErrNoBases = errors.New("no api base configured")

// Config holds client configuration
type Config struct {
	SnapshotURL string
	DetailsURL  string
	APIBases    []string
	PageLimit   int
	Timeout     time.Duration
	UserAgent   string
	RatePerSec  float64
	RateBurst   int
}

// Client fetches snapshots, pages and details over HTTP
type Client struct {
	client  *http.Client
	config  Config
	limiter *HostLimiter
}

// NewClient creates a new HTTP source client
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 50
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "job-viewer/1.0"
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		config:  cfg,
		limiter: NewHostLimiter(cfg.RatePerSec, cfg.RateBurst),
	}
}

// APIBases returns the configured API bases in try order
func (c *Client) APIBases() []string {
	return c.config.APIBases
}

// FetchSnapshot downloads the bulk snapshot and returns its raw records
func (c *Client) FetchSnapshot(ctx context.Context) ([]map[string]any, error) {
	if c.config.SnapshotURL == "" {
		return nil, fmt.Errorf("fetch snapshot: no snapshot url")
	}
	body, err := c.get(ctx, c.config.SnapshotURL)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	return domain.ParseSnapshot(body)
}

// FetchDetailsMap downloads the bulk details map
func (c *Client) FetchDetailsMap(ctx context.Context) (map[string]*domain.Detail, error) {
	if c.config.DetailsURL == "" {
		return nil, fmt.Errorf("fetch details map: no details url")
	}
	body, err := c.get(ctx, c.config.DetailsURL)
	if err != nil {
		return nil, fmt.Errorf("fetch details map: %w", err)
	}

	var payload domain.DetailsMap
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse details map: %w", err)
	}
	if payload.Details == nil {
		payload.Details = make(map[string]*domain.Detail)
	}
	return payload.Details, nil
}

// FetchPage requests one page of the incremental endpoint.
// API bases are tried in order; the first successful response wins.
func (c *Client) FetchPage(ctx context.Context, offset int) (*domain.Page, error) {
	var page *domain.Page
	err := c.eachBase(func(base string) error {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(c.config.PageLimit))

		body, err := c.get(ctx, base+"/api/jobs?"+q.Encode())
		if err != nil {
			return err
		}
		var p domain.Page
		if err := json.Unmarshal(body, &p); err != nil {
			return fmt.Errorf("parse page: %w", err)
		}
		page = &p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch page offset=%d: %w", offset, err)
	}
	return page, nil
}

// FetchDetail looks up one record's details on a single API base
func (c *Client) FetchDetail(ctx context.Context, base, jobURL string) (*domain.Detail, error) {
	q := url.Values{}
	q.Set("url", jobURL)

	body, err := c.get(ctx, base+"/api/job_details?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var d domain.Detail
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("parse detail: %w", err)
	}
	return &d, nil
}

// eachBase calls fn for every API base until one succeeds.
// All failures are joined when none succeeds.
func (c *Client) eachBase(fn func(base string) error) error {
	if len(c.config.APIBases) == 0 {
		return ErrNoBases
	}
	var errs []error
	for _, base := range c.config.APIBases {
		err := fn(base)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", base, err))
	}
	return errors.Join(errs...)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.WaitURL(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
