package logging

import "sync"

// Dedup suppresses repeat log lines that share a signature, keeping noisy
// per-record warnings (a column missing from the backing schema fires once
// for every record in every batch) down to a single line per process.
type Dedup struct {
	logger *Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

func NewDedup(logger *Logger) *Dedup {
	if logger == nil {
		logger = Default()
	}
	return &Dedup{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// WarnOnce logs at warn level the first time signature is observed and
// silently drops it after that. Returns true when the line was emitted.
func (d *Dedup) WarnOnce(signature, msg string, args ...any) bool {
	if !d.mark(signature) {
		return false
	}
	d.logger.Warn(msg, args...)
	return true
}

// Seen reports whether signature has already been logged.
func (d *Dedup) Seen(signature string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[signature]
	return ok
}

func (d *Dedup) mark(signature string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[signature]; ok {
		return false
	}
	d.seen[signature] = struct{}{}
	return true
}
