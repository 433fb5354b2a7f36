package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scorekeep/scorekeep/internal/model"
	"github.com/scorekeep/scorekeep/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// A board stored in Redis survives process restarts, so an interrupted
// session can be resumed.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AllocatePlayerID(ctx context.Context) (model.PlayerID, error) {
	id, err := s.client.Incr(ctx, nextIDKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.PlayerID(id), nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	pipe := s.client.Pipeline()
	if err := queueSave(ctx, pipe, player); err != nil {
		return err
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	// One pipeline for the whole batch, so a score update lands as a unit
	pipe := s.client.Pipeline()
	for _, player := range players {
		if err := queueSave(ctx, pipe, player); err != nil {
			return err
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// queueSave adds the record, name index and roster entry for one player
// to the pipeline
func queueSave(ctx context.Context, pipe redis.Pipeliner, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.Set(ctx, nameIndexKey(player.Name), int64(player.ID), 0)
	pipe.ZAdd(ctx, rosterKey(), redis.Z{Score: float64(player.ID), Member: int64(player.ID)})
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	idStr, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.ZRange(ctx, rosterKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, err
		}
		keys = append(keys, playerKey(model.PlayerID(id)))
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(vals))
	for _, val := range vals {
		data, ok := val.(string)
		if !ok {
			// Roster entry with no record means the board is corrupt
			return nil, model.ErrPlayerNotFound
		}
		var player model.Player
		if err := json.Unmarshal([]byte(data), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

func (s *Storage) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.client.ZCard(ctx, rosterKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Storage) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, keyPrefix+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
