package rest

import (
	"context"
	"fmt"

	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
)

// upsertByFilter is the update-or-insert fallback used by every repository:
// a targeted field-replace addressed by natural key first, then a create when
// no row matched. One extra round trip on first-ever sync of a record beats a
// separate existence check on every steady-state update.
func upsertByFilter(ctx context.Context, client *store.Client, table string, record any, conditions ...store.Condition) error {
	matched, err := client.UpdateByFilter(ctx, table, record, conditions...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if matched > 0 {
		return nil
	}

	if err := client.Insert(ctx, table, []any{record}); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}

	return nil
}
