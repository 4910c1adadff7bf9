package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
)

func flashKey(sessionID string) string {
	return "flash:register:" + sessionID
}

// FlashStore keeps registration flashes in Redis as JSON with a TTL.
// Pop uses GETDEL so a flash is delivered at most once.
type FlashStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewFlashStore(rdb *goredis.Client, ttl time.Duration) *FlashStore {
	return &FlashStore{rdb: rdb, ttl: ttl}
}

func (s *FlashStore) Put(ctx context.Context, sessionID string, f entity.RegisterFlash) error {
	return helpers.RedisSetJSON(ctx, s.rdb, flashKey(sessionID), f, s.ttl)
}

func (s *FlashStore) Pop(ctx context.Context, sessionID string) (entity.RegisterFlash, bool, error) {
	var f entity.RegisterFlash
	ok, err := helpers.RedisPopJSON(ctx, s.rdb, flashKey(sessionID), &f)
	if err != nil || !ok {
		return entity.RegisterFlash{}, false, err
	}
	return f, true, nil
}

var _ repository.FlashRepository = (*FlashStore)(nil)
