package cache

import (
	"context"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/chrisdamba/commutetracker/internal/mapsapi"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSize = 1024
	DefaultTTL  = 24 * time.Hour
)

// Store is a persistent address -> location mapping.
type Store interface {
	GetMany(ctx context.Context, addresses []string) (map[string]models.Location, error)
	PutMany(ctx context.Context, results map[string]models.Location) error
}

// CachedGeocoder fronts a geocoder with an in-process LRU and an optional persistent store.
type CachedGeocoder struct {
	next  mapsapi.Geocoder
	lru   gcache.Cache
	store Store
}

func NewCachedGeocoder(next mapsapi.Geocoder, store Store, size int, ttl time.Duration) *CachedGeocoder {
	if size <= 0 {
		size = DefaultSize
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &CachedGeocoder{next: next, lru: b.Build(), store: store}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (models.Location, error) {
	key := Normalize(address)

	if v, err := c.lru.Get(key); err == nil {
		return v.(models.Location), nil
	}

	if c.store != nil {
		found, err := c.store.GetMany(ctx, []string{key})
		if err != nil {
			log.Warn().Err(err).Str("address", key).Msg("geocode store lookup failed")
		} else if loc, ok := found[key]; ok {
			c.remember(key, loc)
			return loc, nil
		}
	}

	loc, err := c.next.Geocode(ctx, address)
	if err != nil {
		return models.Location{}, err
	}

	c.remember(key, loc)
	if c.store != nil {
		if err := c.store.PutMany(ctx, map[string]models.Location{key: loc}); err != nil {
			log.Warn().Err(err).Str("address", key).Msg("geocode store write failed")
		}
	}

	return loc, nil
}

func (c *CachedGeocoder) remember(key string, loc models.Location) {
	if err := c.lru.Set(key, loc); err != nil {
		log.Debug().Err(err).Str("address", key).Msg("geocode cache set failed")
	}
}

// Normalize collapses runs of whitespace and trims the address.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
