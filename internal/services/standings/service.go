package standings

import (
	"sort"

	"github.com/scorekeep/scorekeep/internal/model"
)

// Service ranks scoreboard standings
type Service struct{}

// New creates a new standings Service
func New() *Service {
	return &Service{}
}

// Ranked returns the standings ordered by score descending, with the
// lower id first among equal scores. The input slice is not modified.
func (s *Service) Ranked(entries []model.Standing) []model.Standing {
	ranked := make([]model.Standing, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

// Leader returns the player with the highest score, or false if the
// board is empty or the top score is shared
func (s *Service) Leader(entries []model.Standing) (model.Standing, bool) {
	ranked := s.Ranked(entries)
	if len(ranked) == 0 {
		return model.Standing{}, false
	}
	if len(ranked) > 1 && ranked[1].Score == ranked[0].Score {
		return model.Standing{}, false
	}
	return ranked[0], true
}
