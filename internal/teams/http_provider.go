package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ceddto100/edgeline/internal/models"
)

// HTTPProviderConfig holds configuration for the remote stats provider
type HTTPProviderConfig struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
	CacheTTL     time.Duration
}

// DefaultHTTPProviderConfig returns recommended defaults
func DefaultHTTPProviderConfig(baseURL string) HTTPProviderConfig {
	return HTTPProviderConfig{
		BaseURL:      baseURL,
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		RateLimit:    5.0,
		CacheTTL:     15 * time.Minute,
	}
}

// HTTPProvider consumes a remote season-statistics API with retries, rate
// limiting, and a TTL snapshot cache. Snapshots are cached per sport; a
// cache hit never touches the network.
type HTTPProvider struct {
	cfg     HTTPProviderConfig
	client  *retryablehttp.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	logger  *logrus.Logger
}

// NewHTTPProvider creates a provider against the configured stats API
func NewHTTPProvider(cfg HTTPProviderConfig, logger *logrus.Logger) *HTTPProvider {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5.0
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}

	return &HTTPProvider{
		cfg:     cfg,
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		cache:   cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger:  logger,
	}
}

// Lookup implements Provider
func (p *HTTPProvider) Lookup(ctx context.Context, sport models.Sport, name string) (*models.TeamSnapshot, error) {
	all, err := p.All(ctx, sport)
	if err != nil {
		return nil, err
	}
	key := keyFor(name)
	for _, snap := range all {
		if keyFor(snap.Name) == key || keyFor(snap.Abbreviation) == key {
			return snap, nil
		}
	}
	return nil, models.ErrNotFound
}

// All implements Provider
func (p *HTTPProvider) All(ctx context.Context, sport models.Sport) ([]*models.TeamSnapshot, error) {
	cacheKey := "teams:" + string(sport)
	if cached, found := p.cache.Get(cacheKey); found {
		return cached.([]*models.TeamSnapshot), nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	endpoint := fmt.Sprintf("%s/teams/%s", p.cfg.BaseURL, url.PathEscape(string(sport)))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats request: %w", err)
	}
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("stats provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var snaps []*models.TeamSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snaps); err != nil {
		return nil, fmt.Errorf("failed to decode stats response: %w", err)
	}

	p.cache.Set(cacheKey, snaps, cache.DefaultExpiration)

	p.logger.WithFields(logrus.Fields{
		"sport":       sport,
		"teams":       len(snaps),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Fetched team snapshots from stats provider")

	return snaps, nil
}
