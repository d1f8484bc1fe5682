package workspaceservice

import (
	"context"
	"errors"
	"sync"
	"time"
)

const defaultCacheTTL = 10 * time.Minute

type cachedLocation struct {
	loc       *time.Location
	expiresAt time.Time
}

// TimezoneResolver определяет часовой пояс арендатора
// При любой ошибке WorkspaceService возвращает пояс по умолчанию (graceful degradation)
type TimezoneResolver struct {
	tenants  TenantGetter
	fallback *time.Location
	ttl      time.Duration
	log      Logger
	now      func() time.Time

	mu    sync.RWMutex
	cache map[int64]cachedLocation
}

// NewTimezoneResolver создает резолвер. tenants может быть nil, тогда всегда используется fallback
func NewTimezoneResolver(tenants TenantGetter, fallback *time.Location, ttl time.Duration, log Logger) *TimezoneResolver {
	if fallback == nil {
		fallback = time.UTC
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &TimezoneResolver{
		tenants:  tenants,
		fallback: fallback,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		cache:    make(map[int64]cachedLocation),
	}
}

// Resolve возвращает часовой пояс арендатора, никогда не возвращает nil
func (r *TimezoneResolver) Resolve(ctx context.Context, tenantID int64) *time.Location {
	if r.tenants == nil {
		return r.fallback
	}

	if loc, ok := r.cached(tenantID); ok {
		return loc
	}

	tenant, err := r.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			r.log.Warn("ResolveTimezone: tenant=%d not found in WorkspaceService, using %s", tenantID, r.fallback)
		} else {
			// Повышаем уровень до ERROR, чтобы быстрее заметить недоступность сервиса
			r.log.Error("ResolveTimezone: WorkspaceService unavailable, applying graceful degradation for tenant=%d: %v", tenantID, err)
		}
		return r.fallback
	}

	loc, err := time.LoadLocation(tenant.Timezone)
	if err != nil || tenant.Timezone == "" {
		r.log.Warn("ResolveTimezone: tenant=%d has invalid timezone %q, using %s", tenantID, tenant.Timezone, r.fallback)
		loc = r.fallback
	}

	r.store(tenantID, loc)
	return loc
}

func (r *TimezoneResolver) cached(tenantID int64) (*time.Location, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.cache[tenantID]
	if !ok || r.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.loc, true
}

func (r *TimezoneResolver) store(tenantID int64, loc *time.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache[tenantID] = cachedLocation{loc: loc, expiresAt: r.now().Add(r.ttl)}
}
