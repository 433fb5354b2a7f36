package redis

import (
	"fmt"

	"github.com/scorekeep/scorekeep/internal/model"
)

// Key prefix for all scoreboard data
const keyPrefix = "scorekeep"

// playerKey returns the Redis key for a Player record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// nameIndexKey returns the Redis key for the name -> player id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, name)
}

// rosterKey returns the Redis key for the sorted set of player ids.
// Members are scored by id so ranged reads come back in ascending id
// order.
func rosterKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// nextIDKey returns the Redis key for the id allocation counter
func nextIDKey() string {
	return fmt.Sprintf("%s:next_player_id", keyPrefix)
}
