package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/playerstat"
	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
)

type PlayerStatRepository struct {
	client *store.Client
	now    func() time.Time
}

func NewPlayerStatRepository(client *store.Client) *PlayerStatRepository {
	return &PlayerStatRepository{client: client, now: time.Now}
}

var _ playerstat.Repository = (*PlayerStatRepository)(nil)

func (r *PlayerStatRepository) Upsert(ctx context.Context, s playerstat.Stat) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validate player stat: %w", err)
	}

	record := newPlayerStatRecord(s, r.now())
	return upsertByFilter(ctx, r.client, "player_gw_stats", record,
		store.Eq("player_id", s.PlayerID), store.Eq("gameweek_id", s.GameweekID))
}
