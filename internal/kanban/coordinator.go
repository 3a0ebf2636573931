package kanban

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Transition is a stage change that has been applied optimistically and awaits the store.
type Transition struct {
	Item Item
	From string
	To   string
}

// Outcome is the result of executing a [Transition] against the store.
type Outcome struct {
	Transition *Transition
	Updated    Item
	Err        error

	Items    []Item
	FetchErr error
	fetchSeq uint64
}

// Coordinator is the only component that changes item stages.
//
// A transition runs in three steps so a UI can stay responsive: [Coordinator.Begin] applies the
// move locally, [Coordinator.Execute] talks to the store (safe to run off the UI goroutine) and
// [Coordinator.Finish] reconciles the board and emits the notification.
type Coordinator struct {
	board    *Board
	store    Store
	notifier Notifier
	logger   *log.Logger
}

// NewCoordinator wires a coordinator to a board, its store and a notifier.
func NewCoordinator(board *Board, store Store, notifier Notifier, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{board: board, store: store, notifier: notifier, logger: logger}
}

func (c *Coordinator) Board() *Board { return c.board }

// Begin validates a move of item into dest and applies it to the board.
//
// A nil transition with a nil error means the item is already in dest and nothing happens.
func (c *Coordinator) Begin(item Item, dest string) (*Transition, error) {
	if !c.board.Registry().Contains(dest) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, dest)
	}

	current, ok := c.board.Item(item.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotOnBoard, item.ID)
	}

	if current.Stage == dest {
		return nil, nil
	}

	original, err := c.board.patch(current.ID, dest)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("transition started", "kind", original.Kind, "id", original.ID, "from", original.Stage, "to", dest)
	return &Transition{Item: original, From: original.Stage, To: dest}, nil
}

// Execute writes the new stage to the store and reloads the collection.
//
// It does not touch the board and may run on any goroutine.
func (c *Coordinator) Execute(ctx context.Context, t *Transition) Outcome {
	out := Outcome{Transition: t}
	kind := c.board.Kind()

	out.Updated, out.Err = c.store.SetItemStage(ctx, kind, t.Item.ID, t.To)

	out.fetchSeq = c.board.BeginFetch()
	out.Items, out.FetchErr = c.store.ListItems(ctx, kind, c.board.Filter())
	return out
}

// Finish reconciles the board with an [Outcome] and notifies the user.
func (c *Coordinator) Finish(out Outcome) {
	t := out.Transition
	kind := c.board.Kind()
	noun := strings.ToLower(kind.Label())

	if out.Err != nil {
		c.board.rollback(t.Item.ID)
		c.logger.Warn("transition failed", "kind", kind, "id", t.Item.ID, "to", t.To, "error", out.Err)
		c.notifier.NotifyFailure(fmt.Sprintf("Failed to update %s stage: %v", noun, out.Err))
	} else {
		c.board.settle(t.Item.ID, out.Updated)
		c.logger.Info("transition completed", "kind", kind, "id", t.Item.ID, "from", t.From, "to", t.To)
		c.notifier.NotifySuccess(kind.Label() + " stage updated")
	}

	if out.FetchErr != nil {
		c.logger.Warn("reload after transition failed", "kind", kind, "error", out.FetchErr)
		return
	}
	if !c.board.ApplyFetch(out.fetchSeq, out.Items) {
		c.logger.Debug("discarded stale reload", "kind", kind, "seq", out.fetchSeq)
	}
}

// RequestTransition runs a full transition synchronously and returns the store error, if any.
func (c *Coordinator) RequestTransition(ctx context.Context, item Item, dest string) error {
	t, err := c.Begin(item, dest)
	if err != nil || t == nil {
		return err
	}

	out := c.Execute(ctx, t)
	c.Finish(out)
	return out.Err
}

// Submit forwards a drag proposal to the coordinator.
func (c *Coordinator) Submit(p Proposal) (*Transition, error) {
	return c.Begin(p.Item, p.Stage)
}
