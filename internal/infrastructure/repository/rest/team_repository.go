package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/team"
	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
)

type TeamRepository struct {
	client *store.Client
	now    func() time.Time
}

func NewTeamRepository(client *store.Client) *TeamRepository {
	return &TeamRepository{client: client, now: time.Now}
}

var _ team.Repository = (*TeamRepository)(nil)

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate team: %w", err)
	}

	record := newTeamRecord(t, r.now())
	return upsertByFilter(ctx, r.client, "teams", record, store.Eq("id", t.ID))
}
