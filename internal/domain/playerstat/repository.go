package playerstat

import "context"

// Repository describes per-gameweek stat persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, s Stat) error
}
