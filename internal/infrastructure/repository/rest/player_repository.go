package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/player"
	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
)

type PlayerRepository struct {
	client *store.Client
	now    func() time.Time
}

func NewPlayerRepository(client *store.Client) *PlayerRepository {
	return &PlayerRepository{client: client, now: time.Now}
}

var _ player.Repository = (*PlayerRepository)(nil)

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	record := newPlayerRecord(p, r.now())
	return upsertByFilter(ctx, r.client, "players", record, store.Eq("id", p.ID))
}
