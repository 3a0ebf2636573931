package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = stageItem{}
)

// stageItem is one entry of the inspector's stage picker.
type stageItem struct {
	name    string
	current bool
}

func (i stageItem) FilterValue() string { return i.name }
func (i stageItem) Title() string {
	if i.current {
		return fmt.Sprintf("%s (current)", i.name)
	}
	return i.name
}
func (i stageItem) Description() string { return "" }

// newStagePicker builds the stage list shown in the inspector with the cursor on current.
func newStagePicker(stages []string, current string, width, height int) list.Model {
	items := make([]list.Item, len(stages))
	selected := 0
	for i, s := range stages {
		items[i] = stageItem{name: s, current: s == current}
		if s == current {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, width, height)
	l.Title = "Move to"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.Select(selected)
	return l
}

// pickedStage returns the stage under the picker cursor.
func pickedStage(l list.Model) (string, bool) {
	item, ok := l.SelectedItem().(stageItem)
	if !ok {
		return "", false
	}
	return item.name, true
}
