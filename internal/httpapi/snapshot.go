package httpapi

import (
	"sync"

	"github.com/example/frontdesk/internal/refresh"
)

// SnapshotHolder caches the latest applied snapshot for the view handlers.
// Caching lives here in the presentation layer; the aggregation core holds no
// state. Apply is last-write-wins: when refresh cycles overlap, the later
// call replaces the earlier result with no ordering token.
type SnapshotHolder struct {
	mu      sync.RWMutex
	current refresh.Snapshot
	ready   bool
}

// NewSnapshotHolder returns an empty holder.
func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Apply replaces the cached snapshot. Safe for concurrent use.
func (h *SnapshotHolder) Apply(snapshot refresh.Snapshot) {
	h.mu.Lock()
	h.current = snapshot
	h.ready = true
	h.mu.Unlock()
}

// Latest returns the cached snapshot; the second return is false until the
// first Apply.
func (h *SnapshotHolder) Latest() (refresh.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.ready
}
