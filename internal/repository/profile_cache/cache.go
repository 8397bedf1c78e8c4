package profile_cache

import (
	"context"
	"errors"
	"fmt"
	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

// Префикс ключа снимка пользователя
const keyPrefix = "casino-user:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Формат снимка в Redis
type snapshot struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Balance  int    `json:"balance"`
}

type cache struct {
	rdb redis.UniversalClient
}

func NewProfileCache(rdb redis.UniversalClient) repository.ProfileCache {
	return &cache{
		rdb: rdb,
	}
}

// Save - записывает снимок пользователя целиком. ttl совпадает со сроком жизни сессии
func (c *cache) Save(ctx context.Context, sessionID string, user *model.User, ttl time.Duration) error {
	data, err := encodeSnapshot(user)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(sessionID), data, ttl).Err()
}

// Update - перезаписывает существующий снимок, сохраняя его срок жизни.
// Если снимка нет, ничего не делает
func (c *cache) Update(ctx context.Context, sessionID string, user *model.User) error {
	data, err := encodeSnapshot(user)
	if err != nil {
		return err
	}
	err = c.rdb.SetArgs(ctx, key(sessionID), data, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// Load - читает снимок. repository.ErrNotFound если ключа нет,
// repository.ErrSnapshotMalformed если данные не разбираются
func (c *cache) Load(ctx context.Context, sessionID string) (*model.User, error) {
	data, err := c.rdb.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return decodeSnapshot(data)
}

func (c *cache) Delete(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, key(sessionID)).Err()
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func encodeSnapshot(user *model.User) ([]byte, error) {
	return json.Marshal(snapshot{
		ID:       user.ID,
		Username: user.Name,
		Balance:  user.Balance,
	})
}

func decodeSnapshot(data []byte) (*model.User, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrSnapshotMalformed, err)
	}
	if s.ID <= 0 || s.Username == "" || s.Balance < 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrSnapshotMalformed, data)
	}
	return &model.User{
		ID:      s.ID,
		Name:    s.Username,
		Balance: s.Balance,
	}, nil
}
