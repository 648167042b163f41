// Package feed retrieves athlete sheet exports from their published URLs.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/spec-kit/competition-service/internal/config"
	"github.com/spec-kit/competition-service/internal/observability"
)

// ErrUpstream marks a failed download of a sheet.
var ErrUpstream = errors.New("athlete sheet fetch failed")

// Fetcher downloads sheets, caching bodies and collapsing concurrent
// downloads of the same URL into one request.
type Fetcher struct {
	client  *resty.Client
	cache   Cache
	ttl     time.Duration
	group   singleflight.Group
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewFetcher builds a Fetcher. A nil cache or zero TTL disables caching.
func NewFetcher(cfg config.FeedConfig, cache Cache, logger *zap.Logger, metrics *observability.Metrics) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.FetchTimeout()).
		SetHeader("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1").
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)

	return &Fetcher{
		client:  client,
		cache:   cache,
		ttl:     cfg.CacheTTL(),
		logger:  logger,
		metrics: metrics,
	}
}

// retryCondition retries network errors and transient upstream statuses.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// Fetch returns the sheet body for url, from cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("%w: empty url", ErrUpstream)
	}
	if body, ok := f.cached(ctx, url); ok {
		f.metrics.RecordFeedFetch(observability.FeedFetchCacheHit)
		return body, nil
	}

	v, err, shared := f.group.Do(url, func() (any, error) {
		// detached so one caller's cancellation does not fail the others
		return f.download(context.WithoutCancel(ctx), url)
	})
	if err != nil {
		return "", err
	}
	if shared {
		f.logger.Debug("athlete sheet fetch shared", zap.String("url", url))
	}
	return v.(string), nil
}

// Refresh downloads url regardless of the cache and stores the result.
func (f *Fetcher) Refresh(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("%w: empty url", ErrUpstream)
	}
	v, err, _ := f.group.Do(url, func() (any, error) {
		return f.download(ctx, url)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops any cached copy of url.
func (f *Fetcher) Invalidate(ctx context.Context, url string) error {
	if f.cache == nil || url == "" {
		return nil
	}
	return f.cache.Delete(ctx, url)
}

func (f *Fetcher) cached(ctx context.Context, url string) (string, bool) {
	if f.cache == nil || f.ttl <= 0 {
		return "", false
	}
	body, ok, err := f.cache.Get(ctx, url)
	if err != nil {
		f.logger.Warn("athlete sheet cache read failed", zap.String("url", url), zap.Error(err))
		return "", false
	}
	return body, ok
}

func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	start := time.Now()
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		f.metrics.RecordFeedFetch(observability.FeedFetchFailed)
		f.logger.Warn("athlete sheet fetch failed", zap.String("url", url), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		f.metrics.RecordFeedFetch(observability.FeedFetchFailed)
		f.logger.Warn("athlete sheet fetch rejected",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	body := string(resp.Body())
	f.metrics.RecordFeedFetch(observability.FeedFetchUpstream)
	f.logger.Debug("athlete sheet fetched",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if f.cache != nil && f.ttl > 0 {
		if err := f.cache.Set(ctx, url, body, f.ttl); err != nil {
			f.logger.Warn("athlete sheet cache write failed", zap.String("url", url), zap.Error(err))
		}
	}
	return body, nil
}
