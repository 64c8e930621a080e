package adapters

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"creditreport/internal/cache"
	"creditreport/internal/core"
	"creditreport/internal/host"
)

const groupsKey = "all_groups"

// CachedGroups decorates a host server so the group list is served from a
// TTL cache. Concurrent misses share one upstream call; errors are not
// cached.
type CachedGroups struct {
	host.Server
	cache *cache.LRUCache[[]core.GroupRecord]
	group singleflight.Group
}

func NewCachedGroups(server host.Server, ttl time.Duration) *CachedGroups {
	return &CachedGroups{
		Server: server,
		cache:  cache.NewLRUCache[[]core.GroupRecord](1, ttl),
	}
}

// Cache exposes the underlying cache for registration with a cache.Manager.
func (c *CachedGroups) Cache() *cache.LRUCache[[]core.GroupRecord] {
	return c.cache
}

func (c *CachedGroups) AllGroups(ctx context.Context) ([]core.GroupRecord, error) {
	if groups, ok := c.cache.Get(groupsKey); ok {
		return append([]core.GroupRecord(nil), groups...), nil
	}
	v, err, _ := c.group.Do(groupsKey, func() (any, error) {
		groups, err := c.Server.AllGroups(ctx)
		if err != nil {
			return nil, err
		}
		c.cache.Set(groupsKey, groups)
		return groups, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]core.GroupRecord(nil), v.([]core.GroupRecord)...), nil
}
