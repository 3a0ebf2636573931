package kanban

import (
	"fmt"
	"sync"
)

type move struct {
	from, to string
}

// Board holds the item collection of one pipeline board.
//
// The collection is replaced, never edited in place, so a slice returned by [Board.Items] stays
// valid after later changes. Only the [Coordinator] changes item stages.
type Board struct {
	mu       sync.RWMutex
	registry *Registry
	filter   Filter
	items    []Item
	pending  map[string]move

	fetchSeq   uint64
	appliedSeq uint64
}

// NewBoard creates a board over a copy of items.
func NewBoard(registry *Registry, items []Item) *Board {
	return &Board{
		registry: registry,
		items:    append([]Item(nil), items...),
		pending:  make(map[string]move),
	}
}

func (b *Board) Kind() Kind { return b.registry.Kind() }

func (b *Board) Registry() *Registry { return b.registry }

func (b *Board) Filter() Filter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filter
}

func (b *Board) SetFilter(f Filter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = f
}

// Items returns the current collection.
func (b *Board) Items() []Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.items
}

// Layout groups the current collection into columns.
func (b *Board) Layout() Layout {
	return ComputeColumns(b.registry.Stages(), b.Items())
}

// Item looks up an item by ID.
func (b *Board) Item(id string) (Item, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, item := range b.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Pending reports whether the item has a transition in flight.
func (b *Board) Pending(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.pending[id]
	return ok
}

// PendingCount returns the number of transitions in flight.
func (b *Board) PendingCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.pending)
}

func (b *Board) replaceLocked(items []Item) {
	next := make([]Item, len(items))
	for i, item := range items {
		if m, ok := b.pending[item.ID]; ok {
			item.Stage = m.to
		}
		next[i] = item
	}
	b.items = next
}

// BeginFetch reserves a sequence number for a reload about to start.
// Call it before the store is queried.
func (b *Board) BeginFetch() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchSeq++
	return b.fetchSeq
}

// ApplyFetch swaps in the items of the reload numbered seq unless a newer reload was already
// applied. Items with a transition in flight keep their optimistic stage until it settles.
func (b *Board) ApplyFetch(seq uint64, items []Item) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.appliedSeq {
		return false
	}
	b.appliedSeq = seq
	b.replaceLocked(items)
	return true
}

// patch moves an item to stage optimistically and marks it pending.
func (b *Board) patch(id, stage string) (Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.pending[id]; ok {
		return Item{}, fmt.Errorf("%w: %s", ErrTransitionPending, id)
	}

	idx := b.indexLocked(id)
	if idx < 0 {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotOnBoard, id)
	}

	original := b.items[idx]
	b.pending[id] = move{from: original.Stage, to: stage}
	b.setLocked(idx, original.WithStage(stage))
	return original, nil
}

// settle clears the pending mark and stores the confirmed item.
func (b *Board) settle(id string, confirmed Item) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.pending, id)
	if idx := b.indexLocked(id); idx >= 0 && confirmed.ID == id {
		b.setLocked(idx, confirmed)
	}
}

// rollback restores the pre-transition stage of one item.
func (b *Board) rollback(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.pending[id]
	if !ok {
		return
	}
	delete(b.pending, id)

	if idx := b.indexLocked(id); idx >= 0 && b.items[idx].Stage == m.to {
		b.setLocked(idx, b.items[idx].WithStage(m.from))
	}
}

func (b *Board) indexLocked(id string) int {
	for i, item := range b.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// setLocked writes item at idx into a fresh copy of the collection.
func (b *Board) setLocked(idx int, item Item) {
	next := append([]Item(nil), b.items...)
	next[idx] = item
	b.items = next
}
