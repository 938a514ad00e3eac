package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/gameweek"
	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
)

type GameweekRepository struct {
	client *store.Client
	now    func() time.Time
}

func NewGameweekRepository(client *store.Client) *GameweekRepository {
	return &GameweekRepository{client: client, now: time.Now}
}

var _ gameweek.Repository = (*GameweekRepository)(nil)

func (r *GameweekRepository) Upsert(ctx context.Context, g gameweek.Gameweek) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validate gameweek: %w", err)
	}

	record := newGameweekRecord(g, r.now())
	return upsertByFilter(ctx, r.client, "gameweeks", record, store.Eq("id", g.ID))
}

func (r *GameweekRepository) CountFinished(ctx context.Context) (int, error) {
	count, err := r.client.Count(ctx, "gameweeks", store.Eq("finished", true))
	if err != nil {
		return 0, fmt.Errorf("count finished gameweeks: %w", err)
	}
	return count, nil
}

// Current returns the gameweek flagged current in the store. The second
// return is false when no row carries the flag.
func (r *GameweekRepository) Current(ctx context.Context) (gameweek.Gameweek, bool, error) {
	var rows []gameweekRecord
	if err := r.client.Select(ctx, "gameweeks", "*", &rows, store.Eq("is_current", true)); err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("select current gameweek: %w", err)
	}
	if len(rows) == 0 {
		return gameweek.Gameweek{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}
