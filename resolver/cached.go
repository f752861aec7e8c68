package resolver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/settings"
	"github.com/jellydator/ttlcache/v3"
)

// Cached remembers successful lookups of another Resolver for a while.
// Failures are not cached.
type Cached struct {
	inner   Resolver
	cache   *ttlcache.Cache[model.UtxoMeta, model.UtxoInfo]
	running atomic.Bool
}

// NewCached wraps inner. A capacity of 0 leaves the cache unbounded.
func NewCached(inner Resolver, ttl time.Duration, capacity uint64) *Cached {
	opts := []ttlcache.Option[model.UtxoMeta, model.UtxoInfo]{
		ttlcache.WithTTL[model.UtxoMeta, model.UtxoInfo](ttl),
		ttlcache.WithDisableTouchOnHit[model.UtxoMeta, model.UtxoInfo](),
	}

	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[model.UtxoMeta, model.UtxoInfo](capacity))
	}

	return &Cached{
		inner: inner,
		cache: ttlcache.New[model.UtxoMeta, model.UtxoInfo](opts...),
	}
}

// NewCachedFromSettings sizes the cache from the resolver settings.
func NewCachedFromSettings(inner Resolver, tSettings *settings.Settings) *Cached {
	capacity := uint64(0)
	if tSettings.Resolver.CacheSize > 0 {
		capacity = uint64(tSettings.Resolver.CacheSize)
	}

	return NewCached(inner, tSettings.Resolver.CacheTTL, capacity)
}

func (c *Cached) Resolve(ctx context.Context, meta model.UtxoMeta) (*model.UtxoInfo, error) {
	if item := c.cache.Get(meta); item != nil {
		info := item.Value()
		out := info.Clone()

		return &out, nil
	}

	info, err := c.inner.Resolve(ctx, meta)
	if err != nil {
		return nil, err
	}

	if info != nil {
		c.cache.Set(meta, info.Clone(), ttlcache.DefaultTTL)
	}

	return info, nil
}

// Start runs the expiry loop until Stop is called.
func (c *Cached) Start() {
	if c.running.CompareAndSwap(false, true) {
		go c.cache.Start()
	}
}

func (c *Cached) Stop() {
	if c.running.CompareAndSwap(true, false) {
		c.cache.Stop()
	}
}

// Invalidate drops meta from the cache.
func (c *Cached) Invalidate(meta model.UtxoMeta) {
	c.cache.Delete(meta)
}

func (c *Cached) Len() int {
	return c.cache.Len()
}

// Stats returns the cache hit and miss counts.
func (c *Cached) Stats() (hits, misses uint64) {
	m := c.cache.Metrics()
	return m.Hits, m.Misses
}
