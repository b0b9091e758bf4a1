package catalog

import (
	"sync/atomic"
)

// Holder publishes the current snapshot. Readers take one pointer per
// calculation and never observe a partially replaced catalog.
type Holder struct {
	current atomic.Pointer[Snapshot]
	swaps   atomic.Int64
}

// NewHolder creates a holder, optionally seeded with a snapshot
func NewHolder(initial *Snapshot) *Holder {
	h := &Holder{}
	if initial != nil {
		h.current.Store(initial)
	}
	return h
}

// Current returns the active snapshot, or nil before the first load
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Swap installs next and returns the snapshot it replaced
func (h *Holder) Swap(next *Snapshot) *Snapshot {
	h.swaps.Add(1)
	return h.current.Swap(next)
}

// Swaps counts installs since creation
func (h *Holder) Swaps() int64 {
	return h.swaps.Load()
}
