package siteconfig

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/RATIU5/zaggonaut/internal/logger"
)

// CollectionLoader fetches the entries of a named content collection.
type CollectionLoader interface {
	LoadCollection(ctx context.Context, name string) ([]Entry, error)
}

// CollectionLoaderFunc adapts a function to CollectionLoader.
type CollectionLoaderFunc func(ctx context.Context, name string) ([]Entry, error)

func (f CollectionLoaderFunc) LoadCollection(ctx context.Context, name string) ([]Entry, error) {
	return f(ctx, name)
}

// Cache memoizes the configuration collection for the life of the
// process. Concurrent first callers share a single load; a failed load
// leaves the cache empty so the next call tries again.
type Cache struct {
	loader CollectionLoader
	log    logger.Logger

	mu    sync.RWMutex
	value *Configuration
	group singleflight.Group
}

type CacheOption func(*Cache)

func WithCacheLogger(l logger.Logger) CacheOption {
	return func(c *Cache) { c.log = l }
}

func NewCache(loader CollectionLoader, opts ...CacheOption) *Cache {
	c := &Cache{loader: loader, log: logger.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialized reports whether the configuration has been loaded.
func (c *Cache) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value != nil
}

// All returns the whole configuration record.
func (c *Cache) All(ctx context.Context) (*Configuration, error) {
	return c.load(ctx)
}

func (c *Cache) Site(ctx context.Context) (Site, error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return Site{}, err
	}
	return cfg.Site, nil
}

func (c *Cache) Collections(ctx context.Context) (Collections, error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return Collections{}, err
	}
	return cfg.Collections, nil
}

// Get returns the whole record for Wildcard or the section named by key.
func (c *Cache) Get(ctx context.Context, key Key) (any, error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Section(key)
}

// Section is the typed form of Get:
//
//	site, err := siteconfig.Section[siteconfig.Site](ctx, cache, siteconfig.SiteKey)
func Section[T any](ctx context.Context, c *Cache, key Key) (T, error) {
	var zero T
	v, err := c.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("configuration key %q holds %T, not %T", key, v, zero)
	}
	return typed, nil
}

func (c *Cache) load(ctx context.Context) (*Configuration, error) {
	c.mu.RLock()
	v := c.value
	c.mu.RUnlock()
	if v != nil {
		return v, nil
	}

	// The shared load must outlive any single caller giving up.
	ch := c.group.DoChan(CollectionName, func() (any, error) {
		c.mu.RLock()
		v := c.value
		c.mu.RUnlock()
		if v != nil {
			return v, nil
		}

		cfg, err := c.initialize(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.value = cfg
		c.mu.Unlock()
		return cfg, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Configuration), nil
	}
}

func (c *Cache) initialize(ctx context.Context) (*Configuration, error) {
	entries, err := c.loader.LoadCollection(ctx, CollectionName)
	if err != nil {
		c.log.Error("load configuration collection", logger.Err(err))
		return nil, fmt.Errorf("load %s collection: %w", CollectionName, err)
	}
	if len(entries) == 0 || entries[0].Data == nil {
		c.log.Error("configuration collection is empty", logger.Int("entries", len(entries)))
		return nil, ErrConfigurationMissing
	}
	c.log.Debug("configuration loaded", logger.String("entry", entries[0].ID))
	return entries[0].Data, nil
}
