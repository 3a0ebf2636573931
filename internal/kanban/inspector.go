package kanban

import (
	"context"
	"sync"
)

// DetailRequest is a detail fetch issued by [Inspector.Open] or [Inspector.Reload].
type DetailRequest struct {
	Kind Kind
	ID   string

	ctx   context.Context
	token uint64
}

// DetailResult carries a fetched [Detail] back to the inspector.
type DetailResult struct {
	Detail Detail
	Err    error

	token uint64
}

// Inspector shows the full record of one selected item.
//
// Fetches are tagged; closing or reselecting invalidates earlier fetches so a late response never
// repopulates the view.
type Inspector struct {
	mu    sync.Mutex
	store Store
	coord *Coordinator

	selected *Item
	token    uint64
	cancel   context.CancelFunc

	loading bool
	detail  *Detail
	err     error
}

// NewInspector creates a closed inspector.
func NewInspector(store Store, coord *Coordinator) *Inspector {
	return &Inspector{store: store, coord: coord}
}

// Open selects item and returns the fetch to run for it.
func (in *Inspector) Open(ctx context.Context, item Item) *DetailRequest {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.selected = &item
	return in.requestLocked(ctx)
}

// Reload refetches the selected item. Returns nil when the inspector is closed.
func (in *Inspector) Reload(ctx context.Context) *DetailRequest {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.selected == nil {
		return nil
	}
	return in.requestLocked(ctx)
}

func (in *Inspector) requestLocked(parent context.Context) *DetailRequest {
	if in.cancel != nil {
		in.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	in.cancel = cancel
	in.token++
	in.loading = true
	in.err = nil

	return &DetailRequest{Kind: in.selected.Kind, ID: in.selected.ID, ctx: ctx, token: in.token}
}

// Fetch runs a request against the store. It may run on any goroutine.
func (in *Inspector) Fetch(req *DetailRequest) DetailResult {
	detail, err := in.store.GetItemDetail(req.ctx, req.Kind, req.ID)
	return DetailResult{Detail: detail, Err: err, token: req.token}
}

// Apply stores a fetch result if it belongs to the current selection.
func (in *Inspector) Apply(res DetailResult) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.selected == nil || res.token != in.token {
		return false
	}

	in.loading = false
	if res.Err != nil {
		in.err = res.Err
		in.detail = nil
		return true
	}

	d := res.Detail
	in.detail = &d
	in.err = nil
	return true
}

// Close clears the selection and abandons any fetch in flight.
func (in *Inspector) Close() {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.cancel != nil {
		in.cancel()
		in.cancel = nil
	}
	in.token++
	in.selected = nil
	in.detail = nil
	in.err = nil
	in.loading = false
}

func (in *Inspector) IsOpen() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.selected != nil
}

// Selected returns the selected item.
func (in *Inspector) Selected() (Item, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.selected == nil {
		return Item{}, false
	}
	return *in.selected, true
}

// Detail returns the loaded record, if any.
func (in *Inspector) Detail() (Detail, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.detail == nil {
		return Detail{}, false
	}
	return *in.detail, true
}

// Err returns the error of the last fetch, shown inline by the detail view.
func (in *Inspector) Err() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.err
}

func (in *Inspector) Loading() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.loading
}

// ChangeStage moves the selected item through the coordinator.
func (in *Inspector) ChangeStage(stage string) (*Transition, error) {
	item, ok := in.Selected()
	if !ok {
		return nil, ErrInspectorClosed
	}
	return in.coord.Begin(item, stage)
}

// Sync refreshes the selected item from the board after its stage changed.
func (in *Inspector) Sync(board *Board) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.selected == nil {
		return
	}
	if item, ok := board.Item(in.selected.ID); ok {
		in.selected = &item
		if in.detail != nil {
			in.detail.Item.Stage = item.Stage
		}
	}
}
