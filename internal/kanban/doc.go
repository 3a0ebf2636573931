// Package kanban implements the pipeline board: stage columns, drag tracking, optimistic stage
// transitions and the item detail inspector.
//
// The package is UI-agnostic. A host (the terminal UI, the CLI or a bulk task) owns a [Board],
// feeds pointer events to a [DragTracker], forwards the resulting [Proposal] to a [Coordinator]
// and opens items in an [Inspector]. Data access goes through the [Store] collaborator and
// user-facing messages through a [Notifier].
//
// Lifecycle of an item with respect to the board:
//
//	Idle -> Dragging -> Transitioning -> Idle (destination column)
//	                                  -> Idle (origin column, on failure or no-op)
//
// Stage changes requested from the inspector skip the Dragging state.
package kanban
