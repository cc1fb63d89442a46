package reniec

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
)

// Verifier resolves a national ID to a verified identity record.
type Verifier interface {
	Verify(ctx context.Context, nationalID string) (*entity.Identity, error)
}

func cacheKey(nationalID string) string {
	return "reniec:dni:" + nationalID
}

// CachedVerifier memoizes successful registry lookups in Redis. Registry data
// changes rarely, so a cache hit skips the external call entirely; cache
// failures fall through to the live lookup.
type CachedVerifier struct {
	Next   Verifier
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCachedVerifier(next Verifier, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedVerifier {
	return &CachedVerifier{Next: next, Redis: rdb, TTL: ttl, Logger: logger}
}

func (c *CachedVerifier) Verify(ctx context.Context, nationalID string) (*entity.Identity, error) {
	if err := ValidateNumber(nationalID); err != nil {
		return nil, err
	}

	if c.Redis != nil {
		var cached entity.Identity
		if ok, err := helpers.RedisGetJSON(ctx, c.Redis, cacheKey(nationalID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	id, err := c.Next.Verify(ctx, nationalID)
	if err != nil {
		return nil, err
	}

	if c.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, c.Redis, cacheKey(nationalID), id, c.TTL); err != nil && c.Logger != nil {
			c.Logger.WithError(err).WithField("dni", nationalID).Warn("caching registry lookup failed")
		}
	}
	return id, nil
}
