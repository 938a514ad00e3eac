package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/fixture"
	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
)

type FixtureRepository struct {
	client *store.Client
	now    func() time.Time
}

func NewFixtureRepository(client *store.Client) *FixtureRepository {
	return &FixtureRepository{client: client, now: time.Now}
}

var _ fixture.Repository = (*FixtureRepository)(nil)

func (r *FixtureRepository) Upsert(ctx context.Context, f fixture.Fixture) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("validate fixture: %w", err)
	}

	record := newFixtureRecord(f, r.now())
	return upsertByFilter(ctx, r.client, "fixtures", record, store.Eq("id", f.ID))
}
