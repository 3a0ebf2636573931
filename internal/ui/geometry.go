package ui

import "github.com/desertthunder/recruitflow/internal/kanban"

const (
	headerHeight = 2 // title line and margin
	footerHeight = 3 // status, toast, help
	laneHeadRows = 2 // top border and lane title
	cardHeight   = 4 // border, title, subtitle, border
	laneGap      = 1
	minLaneWidth = 16
)

// geometry maps lanes and cards onto terminal cells. It is rebuilt on every resize and layout change.
type geometry struct {
	width   int // board area only, the inspector panel is excluded
	height  int
	lanes   []string
	stages  int // leading lanes that are stage columns; the rest are read-only
	laneW   int
	offsets []int
}

func newGeometry(width, height int, lanes []string, stages int) geometry {
	g := geometry{width: width, height: height, lanes: lanes, stages: stages, offsets: make([]int, len(lanes))}
	if n := len(lanes); n > 0 {
		g.laneW = max(minLaneWidth, (width-laneGap*(n-1))/n)
	}
	return g
}

// laneHeight is the outer height of a lane, borders included.
func (g geometry) laneHeight() int {
	return max(laneHeadRows+cardHeight+1, g.height-headerHeight-footerHeight)
}

// visibleRows is how many cards fit in a lane.
func (g geometry) visibleRows() int {
	return max(1, (g.laneHeight()-laneHeadRows-1)/cardHeight)
}

func (g geometry) laneRect(i int) kanban.Rect {
	return kanban.Rect{X: i * (g.laneW + laneGap), Y: headerHeight, W: g.laneW, H: g.laneHeight()}
}

// zones returns drop zones for the stage lanes in column order. Read-only lanes get no zone.
func (g geometry) zones() []kanban.DropZone {
	zones := make([]kanban.DropZone, 0, g.stages)
	for i := 0; i < g.stages && i < len(g.lanes); i++ {
		zones = append(zones, kanban.DropZone{Stage: g.lanes[i], Rect: g.laneRect(i)})
	}
	return zones
}

// laneAt returns the lane index under p.
func (g geometry) laneAt(p kanban.Point) (int, bool) {
	for i := range g.lanes {
		if g.laneRect(i).Contains(p, 0) {
			return i, true
		}
	}
	return 0, false
}

// hit returns the lane and card row under p. Rows count from the top of the lane, scroll offset included.
func (g geometry) hit(p kanban.Point) (lane, row int, ok bool) {
	lane, ok = g.laneAt(p)
	if !ok {
		return 0, 0, false
	}

	y := p.Y - headerHeight - laneHeadRows
	if y < 0 {
		return lane, 0, false
	}

	visible := y / cardHeight
	if visible >= g.visibleRows() {
		return lane, 0, false
	}
	return lane, visible + g.offsets[lane], true
}

// scrollTo adjusts the offset of lane so row is visible.
func (g *geometry) scrollTo(lane, row int) {
	if lane < 0 || lane >= len(g.offsets) {
		return
	}

	rows := g.visibleRows()
	switch {
	case row < g.offsets[lane]:
		g.offsets[lane] = row
	case row >= g.offsets[lane]+rows:
		g.offsets[lane] = row - rows + 1
	}
}
