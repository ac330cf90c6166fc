package whitelist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"consentd/internal/approval/models"
	"consentd/pkg/platform/circuit"
	"consentd/pkg/platform/sentinel"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "consentd_whitelist_cache_lookups_total",
	Help: "Whitelist cache lookups by result",
}, []string{"result"}) // result: "hit", "miss", "error", "bypass"

const (
	whitelistKeyPrefix = "whitelist:client:"
	generationPrefix   = "whitelist:gen:"
	defaultCacheTTL    = 5 * time.Minute
	defaultProbeTTL    = time.Second
)

var errStaleFill = errors.New("whitelist entry changed during lookup")

// Store is the backing whitelist store wrapped by the cache.
type Store interface {
	FindByClientID(ctx context.Context, clientID string) (*models.WhitelistedSite, error)
	Put(ctx context.Context, ws *models.WhitelistedSite) error
	Delete(ctx context.Context, clientID string) error
}

// RedisCache is a read-through cache in front of a whitelist Store. Only
// present entries are cached; a missing entry always falls through so a newly
// whitelisted client takes effect immediately.
//
// Writes bump a per-client generation counter along with deleting the entry.
// A lookup only refills the cache if the generation it saw before reading the
// backing store is still current, so a write racing a miss cannot leave the
// old entry cached.
//
// Redis failures degrade to the backing store. After repeated failures the
// breaker opens: lookups skip Redis entirely and a background PING is sent at
// most once per breaker cooldown until Redis recovers.
type RedisCache struct {
	next         Store
	client       *redis.Client
	ttl          time.Duration
	probeTimeout time.Duration
	logger       *slog.Logger
	breaker      *circuit.Breaker
}

// RedisCacheOption configures a RedisCache.
type RedisCacheOption func(*RedisCache)

func WithCacheTTL(ttl time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithCacheBreaker(b *circuit.Breaker) RedisCacheOption {
	return func(c *RedisCache) {
		if b != nil {
			c.breaker = b
		}
	}
}

// WithProbeTimeout bounds each recovery PING.
func WithProbeTimeout(d time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

func NewRedisCache(next Store, client *redis.Client, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		next:         next,
		client:       client,
		ttl:          defaultCacheTTL,
		probeTimeout: defaultProbeTTL,
		logger:       slog.Default(),
		breaker:      circuit.New("whitelist-cache"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *RedisCache) FindByClientID(ctx context.Context, clientID string) (*models.WhitelistedSite, error) {
	if c.breaker.IsOpen() {
		cacheLookups.WithLabelValues("bypass").Inc()
		if c.breaker.AllowProbe() {
			go c.probe(context.WithoutCancel(ctx))
		}
		return c.next.FindByClientID(ctx, clientID)
	}

	key, genKey := whitelistKeyPrefix+clientID, generationPrefix+clientID
	vals, err := c.client.MGet(ctx, key, genKey).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "whitelist cache unavailable", "error", err)
		cacheLookups.WithLabelValues("error").Inc()
		c.recordFailure(ctx)
		return c.next.FindByClientID(ctx, clientID)
	}
	c.recordSuccess(ctx)

	if raw, ok := vals[0].(string); ok {
		var ws models.WhitelistedSite
		if jsonErr := json.Unmarshal([]byte(raw), &ws); jsonErr == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			return &ws, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt whitelist cache entry", "client_id", clientID)
		cacheLookups.WithLabelValues("error").Inc()
	} else {
		cacheLookups.WithLabelValues("miss").Inc()
	}
	gen, _ := vals[1].(string)

	ws, err := c.next.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, clientID, gen, ws)
	return ws, nil
}

// fill caches ws unless the client's generation moved past gen.
func (c *RedisCache) fill(ctx context.Context, clientID, gen string, ws *models.WhitelistedSite) {
	payload, err := json.Marshal(ws)
	if err != nil {
		return
	}
	key, genKey := whitelistKeyPrefix+clientID, generationPrefix+clientID
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.logger.DebugContext(ctx, "skipped caching whitelist entry written during lookup", "client_id", clientID)
	default:
		c.logger.WarnContext(ctx, "failed to cache whitelist entry", "error", err)
	}
}

// probe pings Redis while the breaker is open so it can close again.
func (c *RedisCache) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.recordFailure(ctx)
		return
	}
	c.recordSuccess(ctx)
}

func (c *RedisCache) recordFailure(ctx context.Context) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "whitelist cache circuit opened", "breaker", c.breaker.Name())
	}
}

func (c *RedisCache) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "whitelist cache circuit closed", "breaker", c.breaker.Name())
	}
}

func (c *RedisCache) Put(ctx context.Context, ws *models.WhitelistedSite) error {
	if err := c.next.Put(ctx, ws); err != nil {
		return err
	}
	return c.invalidate(ctx, ws.ClientID)
}

func (c *RedisCache) Delete(ctx context.Context, clientID string) error {
	if err := c.next.Delete(ctx, clientID); err != nil {
		return err
	}
	return c.invalidate(ctx, clientID)
}

// invalidate drops the cached entry and bumps the generation so in-flight
// lookups do not refill it. The generation key outlives any cached entry.
func (c *RedisCache) invalidate(ctx context.Context, clientID string) error {
	genKey := generationPrefix + clientID
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, 2*c.ttl)
		pipe.Del(ctx, whitelistKeyPrefix+clientID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate whitelist cache: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
