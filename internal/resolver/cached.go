package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"video-quiz/internal/cache"
	"video-quiz/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultMediaTTL is used when no TTL is configured.
const DefaultMediaTTL = 6 * time.Hour

// Cached wraps a resolver with a cache of complete records. Concurrent misses
// for the same reference share one resolution, which outlives the cancellation
// of any single caller. Cache failures are logged and never fail a request.
type Cached struct {
	next    domain.MediaResolver
	cache   domain.Cache
	ttl     time.Duration
	timeout time.Duration
	sfGroup singleflight.Group
	logger  *zap.Logger
}

// NewCached returns next unchanged when c is nil. timeout bounds a shared
// resolution; zero leaves the bound to next.
func NewCached(next domain.MediaResolver, c domain.Cache, ttl, timeout time.Duration, logger *zap.Logger) domain.MediaResolver {
	if c == nil {
		return next
	}
	if ttl <= 0 {
		ttl = DefaultMediaTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{next: next, cache: c, ttl: ttl, timeout: timeout, logger: logger}
}

func (c *Cached) Resolve(ctx context.Context, ref domain.VideoReference) (*domain.MediaRecord, error) {
	if ref.Language == "" {
		ref.Language = domain.DefaultLanguage
	}
	key := cache.MediaRecordKey(ref.URL, ref.Language)

	if record, ok := c.lookup(ctx, key); ok {
		return record, nil
	}

	ch := c.sfGroup.DoChan(key, func() (interface{}, error) {
		sharedCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			sharedCtx, cancel = context.WithTimeout(sharedCtx, c.timeout)
			defer cancel()
		}

		record, err := c.next.Resolve(sharedCtx, ref)
		if err != nil {
			return nil, err
		}
		// Degraded records are retried on the next request.
		if record.TranscriptStatus != domain.TranscriptDegraded {
			c.store(sharedCtx, key, record)
		}
		return record, nil
	})

	var res interface{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		if r.Shared {
			c.logger.Debug("Shared in-flight media resolution", zap.String("key", key))
		}
		res = r.Val
	}

	record, ok := res.(*domain.MediaRecord)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight.DoChan: %T", res), nil)
	}
	// Callers own their copy.
	out := *record
	return &out, nil
}

func (c *Cached) lookup(ctx context.Context, key string) (*domain.MediaRecord, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.logger.Warn("Media cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var record domain.MediaRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil || record.Transcript == "" {
		c.logger.Warn("Discarding unreadable media cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	c.logger.Debug("Media cache hit", zap.String("key", key))
	return &record, true
}

func (c *Cached) store(ctx context.Context, key string, record *domain.MediaRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		c.logger.Warn("Failed to encode media record for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		c.logger.Warn("Media cache write failed", zap.String("key", key), zap.Error(err))
	}
}
