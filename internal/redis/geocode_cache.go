package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// GeocodeCache stores resolved coordinates by normalized address so
// repeat submissions from the same street do not hammer the geocoder.
// A cache error behaves like a miss.
type GeocodeCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewGeocodeCache(r *Redis) *GeocodeCache {
	return &GeocodeCache{client: r.Client, ttl: r.CacheTTL}
}

type cachedCoords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (c *GeocodeCache) Get(ctx context.Context, address string) (lat, lon float64, ok bool) {
	data, err := c.client.Get(ctx, cacheKey(address)).Bytes()
	if err != nil {
		// goredis.Nil is an ordinary miss; anything else degrades to
		// a miss too, the live lookup still runs.
		return 0, 0, false
	}

	var coords cachedCoords
	if err := json.Unmarshal(data, &coords); err != nil {
		return 0, 0, false
	}
	return coords.Lat, coords.Lon, true
}

func (c *GeocodeCache) Set(ctx context.Context, address string, lat, lon float64) error {
	b, err := json.Marshal(cachedCoords{Lat: lat, Lon: lon})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(address), b, c.ttl).Err()
}
