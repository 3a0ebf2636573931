package kanban

// Point is a pointer position in cell coordinates.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned area in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r grown by tolerance cells on every side.
func (r Rect) Contains(p Point, tolerance int) bool {
	return p.X >= r.X-tolerance && p.X < r.X+r.W+tolerance &&
		p.Y >= r.Y-tolerance && p.Y < r.Y+r.H+tolerance
}

// Center returns the midpoint of r.
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

func (r Rect) distanceSq(p Point) float64 {
	cx, cy := r.Center()
	dx, dy := float64(p.X)-cx, float64(p.Y)-cy
	return dx*dx + dy*dy
}

// DropZone is the on-screen area of one stage column.
type DropZone struct {
	Stage string
	Rect  Rect
}

// Proposal is a request to move Item into Stage, produced by a completed drag.
type Proposal struct {
	Item  Item
	Stage string
}

// DragTracker owns the state of a single drag session.
//
// It resolves the column under the pointer but never changes an item's stage; a completed drag
// yields a [Proposal] for the [Coordinator].
type DragTracker struct {
	zones     []DropZone
	tolerance int

	active  *Item
	over    string
	pointer Point
}

// NewDragTracker creates a tracker whose zones accept pointers up to tolerance cells outside them.
func NewDragTracker(tolerance int) *DragTracker {
	return &DragTracker{tolerance: max(0, tolerance)}
}

// SetZones replaces the registered drop zones. Registration order breaks distance ties.
func (d *DragTracker) SetZones(zones []DropZone) {
	d.zones = append(d.zones[:0], zones...)
}

func (d *DragTracker) Zones() []DropZone {
	return append([]DropZone(nil), d.zones...)
}

// Begin starts dragging item. Calling it again for the active item is a no-op.
func (d *DragTracker) Begin(item Item) error {
	if d.active != nil {
		if d.active.Key() == item.Key() {
			return nil
		}
		return ErrDragActive
	}

	d.active = &item
	d.over = ""
	return nil
}

// Active returns the item being dragged.
func (d *DragTracker) Active() (Item, bool) {
	if d.active == nil {
		return Item{}, false
	}
	return *d.active, true
}

func (d *DragTracker) Dragging() bool { return d.active != nil }

// Update records the pointer position and recomputes the column under it.
func (d *DragTracker) Update(p Point) string {
	d.pointer = p
	if d.active == nil {
		return ""
	}
	d.over = d.Resolve(p)
	return d.over
}

// Resolve returns the stage whose zone contains p and whose center is nearest to it.
//
// Equal distances go to the zone registered first. Returns "" when no zone contains p.
func (d *DragTracker) Resolve(p Point) string {
	best, bestDist := "", 0.0
	for _, z := range d.zones {
		if !z.Rect.Contains(p, d.tolerance) {
			continue
		}
		dist := z.Rect.distanceSq(p)
		if best == "" || dist < bestDist {
			best, bestDist = z.Stage, dist
		}
	}
	return best
}

// Over returns the column currently under the pointer, if any.
func (d *DragTracker) Over() string { return d.over }

// Pointer returns the last pointer position seen by [DragTracker.Update].
func (d *DragTracker) Pointer() Point { return d.pointer }

// End finishes the drag over the given column and clears the session in every case.
//
// A proposal is produced only when a drag was active and over names a registered zone.
func (d *DragTracker) End(over string) (Proposal, bool) {
	active := d.active
	d.Cancel()

	if active == nil || over == "" || !d.hasZone(over) {
		return Proposal{}, false
	}
	return Proposal{Item: *active, Stage: over}, true
}

// Drop ends the drag at pointer position p.
func (d *DragTracker) Drop(p Point) (Proposal, bool) {
	return d.End(d.Update(p))
}

// Cancel clears the session without producing a proposal.
func (d *DragTracker) Cancel() {
	d.active = nil
	d.over = ""
}

func (d *DragTracker) hasZone(stage string) bool {
	for _, z := range d.zones {
		if z.Stage == stage {
			return true
		}
	}
	return false
}
