package kanban

import (
	"context"
	"sync"
	"time"
)

// Filter narrows the items a [Store] returns for a board.
type Filter struct {
	Search    string
	CompanyID string
	VacancyID string
	Status    string
	Stage     string
	Skills    []string
	Languages []string
	Page      int
	Limit     int
}

// StageChange is one entry of an item's stage history.
type StageChange struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	By   string    `json:"by"`
	At   time.Time `json:"at"`
}

// Field is a labelled value shown in the detail view.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Detail is the full record behind a board item.
type Detail struct {
	Item    Item          `json:"item"`
	Fields  []Field       `json:"fields"`
	History []StageChange `json:"history"`
}

// Store is the data collaborator of the board. Every call may block and may fail.
type Store interface {
	ListItems(ctx context.Context, kind Kind, filter Filter) ([]Item, error)
	ListStages(ctx context.Context, kind Kind) ([]string, error)
	SetItemStage(ctx context.Context, kind Kind, id, stage string) (Item, error)
	GetItemDetail(ctx context.Context, kind Kind, id string) (Detail, error)
}

// Notifier surfaces transient success and failure messages. Calls must not block.
type Notifier interface {
	NotifySuccess(message string)
	NotifyFailure(message string)
}

// Notice is a message captured by a [Recorder].
type Notice struct {
	Success bool
	Message string
}

// Recorder is a [Notifier] that keeps every message in order.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) NotifySuccess(message string) { r.add(Notice{Success: true, Message: message}) }

func (r *Recorder) NotifyFailure(message string) { r.add(Notice{Success: false, Message: message}) }

func (r *Recorder) add(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded messages.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Load fetches the stages and items for kind and returns a ready board.
func Load(ctx context.Context, store Store, kind Kind, filter Filter) (*Board, error) {
	stages, err := store.ListStages(ctx, kind)
	if err != nil {
		return nil, err
	}

	registry, err := NewRegistry(kind, stages)
	if err != nil {
		return nil, err
	}

	items, err := store.ListItems(ctx, kind, filter)
	if err != nil {
		return nil, err
	}

	board := NewBoard(registry, items)
	board.SetFilter(filter)
	return board, nil
}
