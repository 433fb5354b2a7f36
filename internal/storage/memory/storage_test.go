package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/scorekeep/scorekeep/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestAllocatePlayerIDIsSequential() {
	for want := model.PlayerID(1); want <= 3; want++ {
		id, err := s.storage.AllocatePlayerID(s.ctx)
		s.Require().NoError(err)
		s.Equal(want, id)
	}
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        1,
		Name:      "Alice",
		Score:     0,
		CreatedAt: time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.Score, retrieved.Score)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 42)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByName() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, Name: "Alice"})

	player, err := s.storage.GetPlayerByName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), player.ID)

	_, err = s.storage.GetPlayerByName(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersOrderedByID() {
	// Saved out of order; listing must come back ascending
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 3, Name: "Carol"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 2, Name: "Bob"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Alice", players[0].Name)
	s.Equal("Bob", players[1].Name)
	s.Equal("Carol", players[2].Name)
}

func (s *StorageSuite) TestListPlayersReturnsCopies() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, Name: "Alice", Score: 0})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	players[0].Score = 99

	stored, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(0, stored.Score)
}

func (s *StorageSuite) TestSavePlayersBulk() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, Name: "Alice", Score: 0})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 2, Name: "Bob", Score: 0})

	err := s.storage.SavePlayers(s.ctx, []*model.Player{
		{ID: 1, Name: "Alice", Score: 1},
		{ID: 2, Name: "Bob", Score: -1},
	})
	s.Require().NoError(err)

	alice, _ := s.storage.GetPlayer(s.ctx, 1)
	bob, _ := s.storage.GetPlayer(s.ctx, 2)
	s.Equal(1, alice.Score)
	s.Equal(-1, bob.Score)
}

func (s *StorageSuite) TestCountPlayers() {
	count, err := s.storage.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 2, Name: "Bob"})

	count, err = s.storage.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StorageSuite) TestClear() {
	_, _ = s.storage.AllocatePlayerID(s.ctx)
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: 1, Name: "Alice"})

	err := s.storage.Clear(s.ctx)
	s.Require().NoError(err)

	count, err := s.storage.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	_, err = s.storage.GetPlayerByName(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// A cleared board allocates from 1 again
	id, err := s.storage.AllocatePlayerID(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), id)
}
