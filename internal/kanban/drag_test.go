package kanban_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/recruitflow/internal/kanban"
	tu "github.com/desertthunder/recruitflow/internal/testing"
)

func columnZones() []kanban.DropZone {
	return []kanban.DropZone{
		{Stage: "Screening", Rect: kanban.Rect{X: 0, Y: 0, W: 10, H: 10}},
		{Stage: "Interview", Rect: kanban.Rect{X: 10, Y: 0, W: 10, H: 10}},
		{Stage: "Offer", Rect: kanban.Rect{X: 20, Y: 0, W: 10, H: 10}},
	}
}

func TestDragTracker(t *testing.T) {
	item := tu.PipelineItems()[0]

	t.Run("Begin is idempotent for the active item", func(t *testing.T) {
		d := kanban.NewDragTracker(0)

		require.NoError(t, d.Begin(item))
		require.NoError(t, d.Begin(item))

		active, ok := d.Active()
		require.True(t, ok)
		assert.Equal(t, item.ID, active.ID)
	})

	t.Run("Begin rejects a second item", func(t *testing.T) {
		d := kanban.NewDragTracker(0)
		require.NoError(t, d.Begin(item))

		err := d.Begin(tu.PipelineItems()[1])
		assert.ErrorIs(t, err, kanban.ErrDragActive)
	})

	t.Run("Resolve picks the nearest containing zone", func(t *testing.T) {
		d := kanban.NewDragTracker(2)
		d.SetZones(columnZones())

		tc := []struct {
			name string
			p    kanban.Point
			want string
		}{
			{name: "inside first", p: kanban.Point{X: 3, Y: 3}, want: "Screening"},
			{name: "inside second", p: kanban.Point{X: 14, Y: 9}, want: "Interview"},
			{name: "tie goes to earlier zone", p: kanban.Point{X: 10, Y: 5}, want: "Screening"},
			{name: "nearer center wins overlap", p: kanban.Point{X: 11, Y: 5}, want: "Interview"},
			{name: "within tolerance", p: kanban.Point{X: 31, Y: 5}, want: "Offer"},
			{name: "outside every zone", p: kanban.Point{X: 50, Y: 50}, want: ""},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, d.Resolve(tt.p))
			})
		}
	})

	t.Run("Update only tracks targets while dragging", func(t *testing.T) {
		d := kanban.NewDragTracker(0)
		d.SetZones(columnZones())

		assert.Equal(t, "", d.Update(kanban.Point{X: 15, Y: 5}))
		assert.Equal(t, kanban.Point{X: 15, Y: 5}, d.Pointer())

		require.NoError(t, d.Begin(item))
		assert.Equal(t, "Interview", d.Update(kanban.Point{X: 15, Y: 5}))
		assert.Equal(t, "Interview", d.Over())
	})

	t.Run("End over a column proposes exactly one move", func(t *testing.T) {
		d := kanban.NewDragTracker(0)
		d.SetZones(columnZones())
		require.NoError(t, d.Begin(item))

		p, ok := d.End("Interview")
		require.True(t, ok)
		assert.Equal(t, kanban.Proposal{Item: item, Stage: "Interview"}, p)
		assert.False(t, d.Dragging())

		_, ok = d.End("Interview")
		assert.False(t, ok, "a finished session must not propose again")
	})

	t.Run("End without a target clears the session", func(t *testing.T) {
		d := kanban.NewDragTracker(0)
		d.SetZones(columnZones())
		require.NoError(t, d.Begin(item))

		_, ok := d.End("")
		assert.False(t, ok)
		assert.False(t, d.Dragging())
		assert.Equal(t, "", d.Over())
	})

	t.Run("End over an unregistered target clears the session", func(t *testing.T) {
		d := kanban.NewDragTracker(0)
		d.SetZones(columnZones())
		require.NoError(t, d.Begin(item))

		_, ok := d.End("Unassigned")
		assert.False(t, ok)
		assert.False(t, d.Dragging())
	})

	t.Run("Drop resolves the pointer", func(t *testing.T) {
		d := kanban.NewDragTracker(0)
		d.SetZones(columnZones())
		require.NoError(t, d.Begin(item))

		p, ok := d.Drop(kanban.Point{X: 25, Y: 1})
		require.True(t, ok)
		assert.Equal(t, "Offer", p.Stage)

		require.NoError(t, d.Begin(item))
		_, ok = d.Drop(kanban.Point{X: 99, Y: 99})
		assert.False(t, ok)
		assert.False(t, d.Dragging())
	})

	t.Run("Cancel clears the session", func(t *testing.T) {
		d := kanban.NewDragTracker(0)
		require.NoError(t, d.Begin(item))

		d.Cancel()

		_, ok := d.Active()
		assert.False(t, ok)
		require.NoError(t, d.Begin(tu.PipelineItems()[1]), "a new drag may start after cancel")
	})
}
