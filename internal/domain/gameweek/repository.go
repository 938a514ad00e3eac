package gameweek

import "context"

// Repository describes gameweek persistence needs from use cases. The read
// side feeds the metrics sampler; both reads are cheap filtered queries.
type Repository interface {
	Upsert(ctx context.Context, g Gameweek) error
	CountFinished(ctx context.Context) (int, error)
	Current(ctx context.Context) (Gameweek, bool, error)
}
