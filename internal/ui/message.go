package ui

import (
	"github.com/desertthunder/recruitflow/internal/kanban"
)

// boardLoadedMsg carries the result of the initial board load.
type boardLoadedMsg struct {
	board *kanban.Board
	err   error
}

// itemsReloadedMsg carries a manual reload of the board's items.
type itemsReloadedMsg struct {
	seq   uint64
	items []kanban.Item
	err   error
}

// transitionMsg carries a finished store call for a transition started in Update.
type transitionMsg struct {
	outcome kanban.Outcome
}

// detailMsg carries an inspector fetch result.
type detailMsg struct {
	result kanban.DetailResult
}

// toastExpiredMsg removes the toast with id.
type toastExpiredMsg struct {
	id int
}
