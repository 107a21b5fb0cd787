package strategy

import (
	"context"
	"strings"
	"time"

	"golang-insider-scanner/internal/scanner/repository"

	"github.com/patrickmn/go-cache"
)

const powerTraderCacheKey = "power_trader_names"

// PowerTraderRegistry is a read-through cache over the power trader repository.
type PowerTraderRegistry struct {
	repo  repository.PowerTraderRepository
	cache *cache.Cache
	ttl   time.Duration
}

// NewPowerTraderRegistry caches names for ttl. A zero ttl disables caching.
func NewPowerTraderRegistry(repo repository.PowerTraderRepository, ttl time.Duration) *PowerTraderRegistry {
	return &PowerTraderRegistry{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl+time.Minute),
		ttl:   ttl,
	}
}

// Names returns the registered trader names.
func (r *PowerTraderRegistry) Names(ctx context.Context) ([]string, error) {
	if r.ttl > 0 {
		if cached, ok := r.cache.Get(powerTraderCacheKey); ok {
			return cached.([]string), nil
		}
	}
	names, err := r.repo.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	if r.ttl > 0 {
		r.cache.Set(powerTraderCacheKey, names, r.ttl)
	}
	return names, nil
}

// Invalidate drops the cached names so the next read hits the repository.
func (r *PowerTraderRegistry) Invalidate() {
	r.cache.Delete(powerTraderCacheKey)
}

// matchPowerTrader reports whether trader contains any registry name, ignoring case.
func matchPowerTrader(trader string, names []string) bool {
	if trader == "" {
		return false
	}
	lower := strings.ToLower(trader)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" && strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
