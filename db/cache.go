package db

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

const cacheTTL = time.Hour

// PageCache stores rendered list pages keyed by (route, page number),
// so writes can invalidate exactly the routes they touched instead of
// flushing everything.
type PageCache struct {
	Client *redis.Client
}

func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{Client: client}
}

func pageKey(route string, page int) string {
	return fmt.Sprintf("page:%s:%d", route, page)
}

func (c *PageCache) Get(route string, page int) ([]byte, bool) {
	b, err := c.Client.Get(pageKey(route, page)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *PageCache) Set(route string, page int, body []byte) {
	c.Client.Set(pageKey(route, page), body, cacheTTL)
}

// Invalidate drops every cached page of the given routes.
func (c *PageCache) Invalidate(routes ...string) {
	for _, route := range routes {
		iter := c.Client.Scan(0, "page:"+route+":*", 100).Iterator()
		for iter.Next() {
			c.Client.Del(iter.Val())
		}
	}
}
