package storage

import (
	"context"

	"github.com/scorekeep/scorekeep/internal/model"
)

// Storage defines the interface for scoreboard persistence
type Storage interface {
	// AllocatePlayerID returns the next sequential player id.
	// IDs start at 1 and are never reused.
	AllocatePlayerID(ctx context.Context) (model.PlayerID, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	SavePlayers(ctx context.Context, players []*model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	CountPlayers(ctx context.Context) (int, error)

	// Clear removes all scoreboard state
	Clear(ctx context.Context) error
}
