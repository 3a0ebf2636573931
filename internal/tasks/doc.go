// Package tasks runs long pipeline operations with real-time progress reporting.
//
// # Bulk Stage Moves
//
// [StageMover.Run] moves many items of one board into the same stage. Each move goes through the
// board's [kanban.Coordinator], so bulk moves get the same no-op guard, optimistic update,
// rollback, audit entry and notification as a drag on the board.
//
// Moves are issued by a small worker pool behind a rate limiter. Failures are collected per item
// and never stop the remaining moves.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
