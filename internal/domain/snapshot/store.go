package snapshot

import "context"

// Store persists the snapshot document between cycles. Load reports ok=false
// when no snapshot has been written yet (first run).
type Store interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, s Snapshot) error
}
