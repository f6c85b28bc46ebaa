// Package search queries the remote Scoop catalog and the bucket registry.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gopak/scoopx/internal/config"
	"github.com/gopak/scoopx/internal/logging"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

var (
	// ErrService wraps every failure talking to the catalog or the registry.
	ErrService = errors.New("search service error")
	// ErrNoEndpoint means neither API_SEARCH nor search.endpoint is set.
	ErrNoEndpoint = errors.New("search endpoint not configured (set API_SEARCH)")
)

type Client struct {
	http        *resty.Client
	endpoint    string
	apiVersion  string
	apiKey      string
	registryURL string
	known       []config.KnownBucket
}

func NewClient(cfg config.Search) (*Client, error) {
	timeout, err := config.Duration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("search.timeout: %w", err)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = logging.NewLeveled("http")

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.SetTimeout(timeout)
	if cfg.UserAgent != "" {
		restyClient.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Origin != "" {
		restyClient.SetHeader("Origin", cfg.Origin)
		restyClient.SetHeader("Referer", cfg.Origin)
	}

	return &Client{
		http:        restyClient,
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		apiVersion:  cfg.APIVersion,
		apiKey:      cfg.APIKey,
		registryURL: cfg.RegistryURL,
		known:       append([]config.KnownBucket{}, cfg.KnownBuckets...),
	}, nil
}

// Search posts q to the catalog and decodes one page of hits.
func (c *Client) Search(ctx context.Context, q Query) (Envelope, error) {
	if c.endpoint == "" {
		return Envelope{}, ErrNoEndpoint
	}
	url := c.endpoint + "/search"
	logging.L().Debug("catalog search",
		zap.String("url", url),
		zap.String("keyword", q.Keyword),
		zap.String("filter", q.Filter()),
		zap.Int("skip", q.Skip))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api-version", c.apiVersion).
		SetHeader("api-key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(q.body()).
		Post(url)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrService, err)
	}
	if resp.IsError() {
		return Envelope{}, fmt.Errorf("%w: %s returned %s", ErrService, url, resp.Status())
	}
	env, err := decodeEnvelope(resp.Body())
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrService, err)
	}
	return env, nil
}

// Registry fetches the official bucket index and overlays configured buckets.
func (c *Client) Registry(ctx context.Context) (Registry, error) {
	byName := map[string]string{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&byName).
		Get(c.registryURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned %s", ErrService, c.registryURL, resp.Status())
	}
	if len(byName) == 0 {
		// some CDNs serve JSON as text/plain, which resty does not auto-decode
		if err := decodeRegistry(resp.Body(), &byName); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrService, err)
		}
	}
	for _, kb := range c.known {
		byName[kb.Name] = kb.Repository
	}
	return NewRegistry(byName), nil
}
