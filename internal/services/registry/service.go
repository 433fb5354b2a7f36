package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/scorekeep/scorekeep/internal/dependencies/clock"
	"github.com/scorekeep/scorekeep/internal/model"
	"github.com/scorekeep/scorekeep/internal/storage"
)

// MaxNameLength is the maximum player name length, counted in
// codepoints rather than bytes
const MaxNameLength = 20

// Service owns player registration and the win/loss scoring rule.
// It never writes to the user streams; all messaging belongs to the
// console layer.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new registry Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Register validates a player name and adds the player to the board
// with a score of zero. The id counter advances only when validation
// passes, so failed calls never consume an id.
func (s *Service) Register(ctx context.Context, name string) (model.PlayerID, error) {
	if err := s.validateName(ctx, name); err != nil {
		return 0, err
	}

	id, err := s.storage.AllocatePlayerID(ctx)
	if err != nil {
		return 0, err
	}

	player := &model.Player{
		ID:        id,
		Name:      name,
		Score:     0,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return 0, err
	}

	s.logger.Debug("player registered",
		slog.Int64("id", int64(id)),
		slog.String("name", name))
	return id, nil
}

// validateName applies the registration rules in order: non-empty,
// length, forbidden characters, uniqueness
func (s *Service) validateName(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return model.ErrEmptyName
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: %q exceeds %d characters", model.ErrNameTooLong, name, MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", model.ErrInvalidCharacters, name)
		}
	}

	_, err := s.storage.GetPlayerByName(ctx, name)
	if err == nil {
		return fmt.Errorf("%w: %q", model.ErrDuplicateName, name)
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return err
	}

	return nil
}

// RecordResult credits a win to the given player: the winner gains one
// point and every other player loses one. The winner is looked up
// before any score changes, and the new scores are written as a single
// bulk save, so a failed lookup leaves the board untouched.
func (s *Service) RecordResult(ctx context.Context, winnerID model.PlayerID) error {
	if _, err := s.storage.GetPlayer(ctx, winnerID); err != nil {
		return fmt.Errorf("winner %d: %w", winnerID, err)
	}

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return err
	}

	for _, p := range players {
		if p.ID == winnerID {
			p.Score++
		} else {
			p.Score--
		}
	}

	if err := s.storage.SavePlayers(ctx, players); err != nil {
		return err
	}

	s.logger.Debug("result recorded", slog.Int64("winner", int64(winnerID)))
	return nil
}

// Standings returns every player's id, name and score in ascending id
// order. Reading has no side effects and always reflects current state.
func (s *Service) Standings(ctx context.Context) ([]model.Standing, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]model.Standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, model.Standing{
			ID:    p.ID,
			Name:  p.Name,
			Score: p.Score,
		})
	}
	return standings, nil
}

// Roster returns every player's id and name in ascending id order
func (s *Service) Roster(ctx context.Context) ([]model.RosterEntry, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]model.RosterEntry, 0, len(players))
	for _, p := range players {
		roster = append(roster, model.RosterEntry{
			ID:   p.ID,
			Name: p.Name,
		})
	}
	return roster, nil
}

// Count returns the number of registered players
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.CountPlayers(ctx)
}

// Interface for dependency injection
type ServiceInterface interface {
	Register(ctx context.Context, name string) (model.PlayerID, error)
	RecordResult(ctx context.Context, winnerID model.PlayerID) error
	Standings(ctx context.Context) ([]model.Standing, error)
	Roster(ctx context.Context) ([]model.RosterEntry, error)
	Count(ctx context.Context) (int, error)
}

var _ ServiceInterface = (*Service)(nil)
