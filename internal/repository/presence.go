package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PresenceRepository keeps per-channel sets of online user IDs in redis.
// This is advisory runtime state for the REST side; the websocket hub is
// the actual delivery registry and never reads it.
type PresenceRepository interface {
	MarkJoined(ctx context.Context, channelID, userID uint) error
	// MarkLeft removes the user and returns how many users remain online.
	MarkLeft(ctx context.Context, channelID, userID uint) (int64, error)
	ActiveUsers(ctx context.Context, channelID uint) ([]uint, error)
	IsActive(ctx context.Context, channelID, userID uint) (bool, error)
}

type presenceRepository struct {
	rdb *redis.Client
}

func NewPresenceRepository(rdb *redis.Client) PresenceRepository {
	return &presenceRepository{rdb: rdb}
}

func (r *presenceRepository) key(channelID uint) string {
	return fmt.Sprintf("channel:%d:users_online", channelID)
}

func (r *presenceRepository) MarkJoined(ctx context.Context, channelID, userID uint) error {
	return r.rdb.SAdd(ctx, r.key(channelID), userID).Err()
}

func (r *presenceRepository) MarkLeft(ctx context.Context, channelID, userID uint) (int64, error) {
	key := r.key(channelID)
	if err := r.rdb.SRem(ctx, key, userID).Err(); err != nil {
		return 0, err
	}
	return r.rdb.SCard(ctx, key).Result()
}

func (r *presenceRepository) ActiveUsers(ctx context.Context, channelID uint) ([]uint, error) {
	values, err := r.rdb.SMembers(ctx, r.key(channelID)).Result()
	if err != nil {
		return nil, err
	}

	users := make([]uint, 0, len(values))
	for _, v := range values {
		var id uint
		if _, err := fmt.Sscanf(v, "%d", &id); err == nil {
			users = append(users, id)
		}
	}
	return users, nil
}

func (r *presenceRepository) IsActive(ctx context.Context, channelID, userID uint) (bool, error) {
	return r.rdb.SIsMember(ctx, r.key(channelID), userID).Result()
}
