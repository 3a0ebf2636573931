package kanban

// Layout is the grouping of items into stage columns.
//
// Every registered stage has an entry in Columns, empty or not. Items whose stage is not
// registered land in Unassigned and in no column.
type Layout struct {
	Stages     []string
	Columns    map[string][]Item
	Unassigned []Item
}

// ComputeColumns partitions items by stage, keeping the input order within each column.
//
// The result depends only on its arguments.
func ComputeColumns(stages []string, items []Item) Layout {
	layout := Layout{
		Stages:  append([]string(nil), stages...),
		Columns: make(map[string][]Item, len(stages)),
	}

	for _, s := range stages {
		layout.Columns[s] = []Item{}
	}

	for _, item := range items {
		col, ok := layout.Columns[item.Stage]
		if !ok {
			layout.Unassigned = append(layout.Unassigned, item)
			continue
		}
		layout.Columns[item.Stage] = append(col, item)
	}

	return layout
}

// Column returns the items of stage in order.
func (l Layout) Column(stage string) []Item {
	return l.Columns[stage]
}

// Count returns the number of items placed in a column.
func (l Layout) Count() int {
	n := 0
	for _, col := range l.Columns {
		n += len(col)
	}
	return n
}

// Locate finds the column and row of the item with id.
func (l Layout) Locate(id string) (stage string, row int, ok bool) {
	for _, s := range l.Stages {
		for i, item := range l.Columns[s] {
			if item.ID == id {
				return s, i, true
			}
		}
	}
	return "", 0, false
}

// At returns the item at row of stage.
func (l Layout) At(stage string, row int) (Item, bool) {
	col := l.Columns[stage]
	if row < 0 || row >= len(col) {
		return Item{}, false
	}
	return col[row], true
}
