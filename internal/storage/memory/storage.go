package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/scorekeep/scorekeep/internal/model"
	"github.com/scorekeep/scorekeep/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// This is the default backend; the board is discarded when the process
// exits.
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	nameIndex map[string]model.PlayerID
	nextID    model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerID]*model.Player),
		nameIndex: make(map[string]model.PlayerID),
		nextID:    1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AllocatePlayerID(ctx context.Context) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(player)
	return nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, player := range players {
		s.store(player)
	}
	return nil
}

// store copies the record in, so callers cannot alias stored state.
// Caller must hold the write lock.
func (s *Storage) store(player *model.Player) {
	p := *player
	s.players[p.ID] = &p
	s.nameIndex[p.Name] = p.ID
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		p := *player
		players = append(players, &p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (s *Storage) CountPlayers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players), nil
}

func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[model.PlayerID]*model.Player)
	s.nameIndex = make(map[string]model.PlayerID)
	// A cleared board starts id allocation over
	s.nextID = 1
	return nil
}
