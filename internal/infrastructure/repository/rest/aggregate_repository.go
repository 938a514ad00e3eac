package rest

import (
	"context"
	"fmt"

	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
	"github.com/atsilverman/fpl-research/internal/usecase"
)

// AggregateRepository triggers store-side aggregate recomputation. The
// function is idempotent on the store side, so repeated calls are safe.
type AggregateRepository struct {
	client *store.Client
}

func NewAggregateRepository(client *store.Client) *AggregateRepository {
	return &AggregateRepository{client: client}
}

var _ usecase.AggregateRecomputer = (*AggregateRepository)(nil)

func (r *AggregateRepository) RecomputeTeamGameweekStats(ctx context.Context) error {
	if err := r.client.CallRPC(ctx, "recalculate_team_gw_stats", struct{}{}); err != nil {
		return fmt.Errorf("recalculate team gameweek stats: %w", err)
	}
	return nil
}
