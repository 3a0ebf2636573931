package kanban

import "errors"

var (
	ErrUnknownStage      = errors.New("stage is not part of the board")
	ErrTransitionPending = errors.New("item has a stage transition in flight")
	ErrItemNotOnBoard    = errors.New("item is not on the board")
	ErrDragActive        = errors.New("another item is already being dragged")
	ErrInspectorClosed   = errors.New("inspector has no selected item")
)
