// package tasks implements bulk pipeline operations.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/shared"
)

// MoveResult is the outcome of moving a single item.
type MoveResult struct {
	ID      string
	Title   string
	From    string
	To      string
	Skipped bool  // Item was already in the destination stage
	Err     error // Non-nil when the move failed
}

// Label names the item for messages, falling back to its ID.
func (r MoveResult) Label() string {
	if r.Title != "" {
		return r.Title
	}
	return r.ID
}

// BulkMoveResult summarises a [StageMover.Run].
type BulkMoveResult struct {
	Batch   string // Correlates log lines of one run
	Stage   string
	Total   int
	Moved   int
	Skipped int
	Failed  int
	Results []MoveResult // In input order
}

// BulkMoveOpts contains configuration for bulk stage moves.
type BulkMoveOpts struct {
	NumWorkers int     // Concurrent workers (default: 3, max: 10)
	RateLimit  float64 // Moves per second (default: 5)
}

type moveJob struct {
	index int
	item  kanban.Item
}

// StageMover moves batches of items on one board.
type StageMover struct {
	coord  *kanban.Coordinator
	logger *log.Logger
}

// NewStageMover creates a mover that routes every move through coord.
func NewStageMover(coord *kanban.Coordinator, logger *log.Logger) *StageMover {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &StageMover{coord: coord, logger: shared.WithLogger(logger, "component", "stage-mover")}
}

// sendProgress sends a progress update through the channel without blocking.
func (m *StageMover) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run moves every item in ids to stage.
//
// Unknown IDs and store failures are reported per item. The returned error is only set for
// invalid input or when ctx ends before all moves were issued.
func (m *StageMover) Run(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	ids []string,
	stage string,
	opts BulkMoveOpts,
) (*BulkMoveResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no item ids given", shared.ErrMissingArgument)
	}

	board := m.coord.Board()
	if !board.Registry().Contains(stage) {
		return nil, fmt.Errorf("%w: %q", kanban.ErrUnknownStage, stage)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &BulkMoveResult{Batch: shared.GenerateID(), Stage: stage, Total: len(ids), Results: make([]MoveResult, len(ids))}
	logger := shared.WithLogger(m.logger, "batch", result.Batch)
	logger.Debug("bulk move started", "stage", stage, "items", len(ids), "workers", opts.NumWorkers)
	m.sendProgress(progress, resolveUpdate(len(ids)))

	var jobs []moveJob
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		item, ok := board.Item(id)
		switch {
		case seen[id]:
			result.Results[i] = MoveResult{ID: id, Title: item.Title, From: stage, To: stage, Skipped: true}
		case !ok:
			result.Results[i] = MoveResult{ID: id, To: stage, Err: fmt.Errorf("%w: %s", kanban.ErrItemNotOnBoard, id)}
		case item.Stage == stage:
			result.Results[i] = MoveResult{ID: id, Title: item.Title, From: item.Stage, To: stage, Skipped: true}
		default:
			jobs = append(jobs, moveJob{index: i, item: item})
		}
		seen[id] = true
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	queue := make(chan moveJob, len(jobs))
	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go m.moveWorker(ctx, &wg, queue, stage, result.Results)
	}

	var runErr error
	for _, job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			runErr = fmt.Errorf("bulk move interrupted: %w", err)
			break
		}
		queue <- job
	}
	close(queue)
	wg.Wait()

	for i, res := range result.Results {
		switch {
		case res.Err != nil:
			result.Failed++
			m.sendProgress(progress, moveFailedUpdate(i+1, result.Total, res))
		case res.Skipped:
			result.Skipped++
			m.sendProgress(progress, movedUpdate(i+1, result.Total, res))
		case res.To != "":
			result.Moved++
			m.sendProgress(progress, movedUpdate(i+1, result.Total, res))
		}
	}

	logger.Info("bulk move finished", "stage", stage, "moved", result.Moved, "skipped", result.Skipped, "failed", result.Failed)
	m.sendProgress(progress, completeUpdate(result))
	return result, runErr
}

// moveWorker runs queued moves until the queue closes. Each job writes only its own result slot.
func (m *StageMover) moveWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	queue <-chan moveJob,
	stage string,
	results []MoveResult,
) {
	defer wg.Done()

	for job := range queue {
		res := MoveResult{ID: job.item.ID, Title: job.item.Title, From: job.item.Stage, To: stage}
		if err := m.coord.RequestTransition(ctx, job.item, stage); err != nil {
			res.Err = err
			m.logger.Warn("move failed", "id", job.item.ID, "error", err)
		}
		results[job.index] = res
	}
}
