package entry

import "context"

// Repository describes manager entry and squad ownership persistence needs
// from use cases. ReplacePicks is a full replace for (user, gameweek): it
// deletes whatever ownership rows exist before inserting the fresh set.
type Repository interface {
	ListRegistered(ctx context.Context) ([]Registered, error)
	Upsert(ctx context.Context, e Entry) error
	ReplacePicks(ctx context.Context, userID string, gameweekID int64, picks []Pick) error
}
