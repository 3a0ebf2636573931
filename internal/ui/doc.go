// Package ui implements the pipeline board as an interactive terminal interface using bubbletea's Elm architecture.
//
// The board renders one lane per stage in registry order, plus a read-only "Unassigned" lane for
// items whose stage is not on the board. Cards move between lanes in two ways:
//  1. Mouse: press a card, drag it over another lane and release. The [kanban.DragTracker]
//     resolves the lane under the pointer on every motion event.
//  2. Keyboard: select a card with h/j/k/l and press < or > to move it one stage.
//
// Both paths hand the move to the [kanban.Coordinator]. The local patch happens inside Update, the
// store call and refetch run as a [tea.Cmd], and the result message settles or rolls back the move.
//
// Pressing enter (or clicking a card) opens the detail inspector beside the board. Its stage list
// re-enters the same coordinator. Success and failure notifications appear as toasts that expire
// after the configured duration.
//
// Keyboard navigation uses vim-style bindings with contextual help displayed via charmbracelet/bubbles/help.
package ui
