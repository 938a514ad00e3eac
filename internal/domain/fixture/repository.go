package fixture

import "context"

// Repository describes fixture persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, f Fixture) error
}
