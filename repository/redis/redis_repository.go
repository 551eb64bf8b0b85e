package redis

import (
	"context"
	"strconv"
	"time"

	redisclient "github.com/Psybah/housify-expo-sub000/cmd/redis"
)

// Repository caches sessions and the per-user saved/unlocked listing sets.
// The sets are a rehydration cache only; MySQL stays the source of truth
// and unlock authorization never trusts this cache.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetResetToken(ctx context.Context, token string, userID uint64, ttl time.Duration) error
	AddToSet(ctx context.Context, kind string, userID, listingID uint64) error
	RemoveFromSet(ctx context.Context, kind string, userID, listingID uint64) error
	GetSet(ctx context.Context, kind string, userID uint64) ([]uint64, error)
	ReplaceSet(ctx context.Context, kind string, userID uint64, listingIDs []uint64) error
}

const (
	SetSaved    = "saved"
	SetUnlocked = "unlocked"
)

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// SetSession stores a session with userID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "session:" + sessionID
	return client.Set(ctx, key, userID, ttl).Err()
}

// GetSession retrieves userID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	client := redisclient.Get()
	if client == nil {
		return 0, nil
	}
	key := "session:" + sessionID
	val, err := client.Get(ctx, key).Uint64()
	if err != nil {
		return 0, err
	}
	return val, nil
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "session:" + sessionID
	return client.Del(ctx, key).Err()
}

// SetResetToken stores a short-lived password reset token.
func (r *redis) SetResetToken(ctx context.Context, token string, userID uint64, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "reset:" + token
	return client.Set(ctx, key, userID, ttl).Err()
}

func setKey(kind string, userID uint64) string {
	return kind + ":" + strconv.FormatUint(userID, 10)
}

func (r *redis) AddToSet(ctx context.Context, kind string, userID, listingID uint64) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.SAdd(ctx, setKey(kind, userID), listingID).Err()
}

func (r *redis) RemoveFromSet(ctx context.Context, kind string, userID, listingID uint64) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.SRem(ctx, setKey(kind, userID), listingID).Err()
}

func (r *redis) GetSet(ctx context.Context, kind string, userID uint64) ([]uint64, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	members, err := client.SMembers(ctx, setKey(kind, userID)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ReplaceSet rewrites the cached set wholesale after a DB read.
func (r *redis) ReplaceSet(ctx context.Context, kind string, userID uint64, listingIDs []uint64) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := setKey(kind, userID)
	pipe := client.TxPipeline()
	pipe.Del(ctx, key)
	if len(listingIDs) > 0 {
		members := make([]interface{}, 0, len(listingIDs))
		for _, id := range listingIDs {
			members = append(members, id)
		}
		pipe.SAdd(ctx, key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
