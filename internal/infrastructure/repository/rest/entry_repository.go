package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/entry"
	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
)

type EntryRepository struct {
	client *store.Client
	now    func() time.Time
}

func NewEntryRepository(client *store.Client) *EntryRepository {
	return &EntryRepository{client: client, now: time.Now}
}

var _ entry.Repository = (*EntryRepository)(nil)

func (r *EntryRepository) ListRegistered(ctx context.Context) ([]entry.Registered, error) {
	var rows []registeredRecord
	if err := r.client.Select(ctx, "user_entries", "entry_id,user_id", &rows); err != nil {
		return nil, fmt.Errorf("list registered entries: %w", err)
	}

	registered := make([]entry.Registered, 0, len(rows))
	for _, row := range rows {
		registered = append(registered, entry.Registered{EntryID: row.EntryID, UserID: row.UserID})
	}
	return registered, nil
}

func (r *EntryRepository) Upsert(ctx context.Context, e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate entry: %w", err)
	}

	record := newEntryRecord(e, r.now())
	return upsertByFilter(ctx, r.client, "user_entries", record, store.Eq("entry_id", e.EntryID))
}

// ReplacePicks swaps the full pick set for one manager and gameweek. The
// delete runs first so retired slots never linger next to the fresh set.
func (r *EntryRepository) ReplacePicks(ctx context.Context, userID string, gameweekID int64, picks []entry.Pick) error {
	if userID == "" {
		return fmt.Errorf("replace picks: user id is required")
	}
	if gameweekID <= 0 {
		return fmt.Errorf("replace picks: gameweek id is required")
	}

	records := make([]any, 0, len(picks))
	for _, p := range picks {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("validate pick: %w", err)
		}
		records = append(records, newPickRecord(p))
	}

	conditions := []store.Condition{store.Eq("user_id", userID), store.Eq("gameweek_id", gameweekID)}
	if err := r.client.DeleteByFilter(ctx, "user_gw_picks", conditions...); err != nil {
		return fmt.Errorf("delete stale picks: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	if err := r.client.Insert(ctx, "user_gw_picks", records); err != nil {
		return fmt.Errorf("insert picks: %w", err)
	}
	return nil
}
