package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveItems Phase = iota
	MoveItems
	MoveFailed
	Complete
)

func (p Phase) String() string {
	switch p {
	case ResolveItems:
		return "resolve_items"
	case MoveItems:
		return "move_items"
	case MoveFailed:
		return "move_failed"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func resolveUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveItems,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Resolving %d items...", total),
	}
}

func movedUpdate(step, total int, res MoveResult) ProgressUpdate {
	msg := fmt.Sprintf("Moved %s from %s to %s", res.Title, res.From, res.To)
	if res.Skipped {
		msg = fmt.Sprintf("Skipped %s (already in %s)", res.Title, res.To)
	}
	return ProgressUpdate{Phase: MoveItems, Step: step, Total: total, Message: msg, Data: res}
}

func moveFailedUpdate(step, total int, res MoveResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MoveFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to move %s: %v", res.Label(), res.Err),
		Data:    res,
	}
}

func completeUpdate(result *BulkMoveResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    result.Total,
		Total:   result.Total,
		Message: fmt.Sprintf("Moved %d, skipped %d, failed %d", result.Moved, result.Skipped, result.Failed),
		Data:    result,
	}
}
