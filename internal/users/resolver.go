package users

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
)

const (
	usernameCacheExpireSeconds = 5 * 60
	megabyte                   = 1024 * 1024
)

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// NameResolver resolves usernames by user id, caching them for a few minutes.
type NameResolver struct {
	finder         userFinder
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewNameResolver(finder userFinder, cacheSizeMB int, metricsManager *metrics.Manager) *NameResolver {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	return &NameResolver{
		finder:         finder,
		cache:          freecache.NewCache(cacheSizeMB * megabyte),
		metricsManager: metricsManager,
	}
}

func (r *NameResolver) Username(ctx context.Context, userID uuid.UUID) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "usernameResolver.username")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := userID[:]
	if cached, err := r.cache.Get(cacheKey); err == nil {
		r.metricsManager.CounterUsernameCache.WithLabelValues("hit").Inc()
		return string(cached), nil
	}
	r.metricsManager.CounterUsernameCache.WithLabelValues("miss").Inc()

	user, err := r.finder.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.NotFound("user not found")
		}
		return "", apperr.Dependency(err, "find user")
	}

	if err := r.cache.Set(cacheKey, []byte(user.Username), usernameCacheExpireSeconds); err != nil {
		log.Errorf("failed to cache username of [%s]: %s", userID, err)
	}
	return user.Username, nil
}
