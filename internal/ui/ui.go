package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/recruitflow/internal/kanban"
	"github.com/desertthunder/recruitflow/internal/shared"
)

const unassignedLane = "Unassigned"

// Options configures a board [Model].
type Options struct {
	Filter        kanban.Filter
	DropTolerance int
	ToastDuration time.Duration
	Logger        *log.Logger
}

// press is a mouse press on a card that has not turned into a drag yet.
type press struct {
	item kanban.Item
	at   kanban.Point
}

// Model represents the board TUI state.
type Model struct {
	ctx    context.Context
	store  kanban.Store
	kind   kanban.Kind
	opts   Options
	logger *log.Logger

	board     *kanban.Board
	coord     *kanban.Coordinator
	inspector *kanban.Inspector
	drag      *kanban.DragTracker
	toasts    *toastQueue

	loading    bool
	err        error
	width      int
	height     int
	geo        geometry
	layout     kanban.Layout
	lanes      [][]kanban.Item
	lane       int
	row        int
	unassigned int

	press     *press
	query     string
	searching bool
	search    textinput.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	showHelp  bool

	picker list.Model
	detail viewport.Model
}

// NewModel creates a board model for kind. The board is loaded by [Model.Init].
func NewModel(ctx context.Context, store kanban.Store, kind kanban.Kind, opts Options) *Model {
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	return &Model{
		ctx:     ctx,
		store:   store,
		kind:    kind,
		opts:    opts,
		logger:  shared.WithLogger(logger, "component", "board", "kind", kind),
		drag:    kanban.NewDragTracker(opts.DropTolerance),
		toasts:  &toastQueue{},
		loading: true,
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
		picker:  newStagePicker(nil, "", 0, 0),
		detail:  viewport.New(0, 0),
		width:   120,
		height:  40,
	}
}

// Run starts the board in the alternate screen with mouse motion tracking and blocks until it exits.
func Run(ctx context.Context, store kanban.Store, kind kanban.Kind, opts Options) error {
	m := NewModel(ctx, store, kind, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board exited: %w", err)
	}
	return m.err
}

// Init loads the stage registry and items.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadBoard())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("failed to load board", "error", msg.err)
			return m, nil
		}
		m.attach(msg.board)
		return m, nil

	case itemsReloadedMsg:
		if msg.err != nil {
			m.logger.Warn("reload failed", "error", msg.err)
			m.toasts.NotifyFailure(fmt.Sprintf("Failed to reload %s: %v", m.kind.Plural(), msg.err))
		} else if m.board.ApplyFetch(msg.seq, msg.items) {
			m.inspector.Sync(m.board)
			m.relayout()
		} else {
			m.logger.Debug("discarded stale reload", "seq", msg.seq)
		}
		return m, m.scheduleToasts()

	case transitionMsg:
		return m, m.finish(msg.outcome)

	case detailMsg:
		if m.inspector != nil && m.inspector.Apply(msg.result) {
			m.refreshDetail()
		}
		return m, nil

	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) attach(board *kanban.Board) {
	m.board = board
	m.coord = kanban.NewCoordinator(board, m.store, m.toasts, m.logger)
	m.inspector = kanban.NewInspector(m.store, m.coord)
	m.logger.Info("board loaded", "stages", board.Registry().Len(), "items", len(board.Items()))
	m.relayout()
}

// relayout recomputes columns, lane geometry and drop zones from the board.
func (m *Model) relayout() {
	if m.board == nil {
		return
	}

	items := m.board.Items()
	if m.query != "" {
		items = kanban.Search(items, m.query)
	}

	stages := m.board.Registry().Stages()
	m.layout = kanban.ComputeColumns(stages, items)

	names := append([]string(nil), stages...)
	m.lanes = make([][]kanban.Item, 0, len(stages)+1)
	for _, s := range stages {
		m.lanes = append(m.lanes, m.layout.Column(s))
	}
	if len(m.layout.Unassigned) > 0 {
		names = append(names, unassignedLane)
		m.lanes = append(m.lanes, m.layout.Unassigned)
	}

	if n := len(m.layout.Unassigned); n != m.unassigned {
		m.unassigned = n
		if n > 0 {
			m.logger.Warn("items with unknown stage", "count", n)
		}
	}

	offsets := m.geo.offsets
	m.geo = newGeometry(m.boardWidth(), m.height, names, len(stages))
	if len(offsets) == len(m.geo.offsets) {
		copy(m.geo.offsets, offsets)
	}
	m.drag.SetZones(m.geo.zones())

	m.lane = max(0, min(m.lane, len(m.lanes)-1))
	m.clampRow()
	m.resizeInspector()
}

func (m *Model) boardWidth() int {
	if m.inspector != nil && m.inspector.IsOpen() {
		return m.width - m.panelWidth() - laneGap
	}
	return m.width
}

func (m *Model) panelWidth() int {
	return max(32, m.width*2/5)
}

func (m *Model) clampRow() {
	if len(m.lanes) == 0 {
		m.row = 0
		return
	}
	m.row = max(0, min(m.row, len(m.lanes[m.lane])-1))
	m.geo.scrollTo(m.lane, m.row)
}

// focused returns the card under the keyboard cursor.
func (m *Model) focused() (kanban.Item, bool) {
	if m.lane >= len(m.lanes) || m.row >= len(m.lanes[m.lane]) {
		return kanban.Item{}, false
	}
	return m.lanes[m.lane][m.row], true
}

// follow moves the cursor to the card with id.
func (m *Model) follow(id string) {
	for l, items := range m.lanes {
		for r, item := range items {
			if item.ID == id {
				m.lane, m.row = l, r
				m.geo.scrollTo(l, r)
				return
			}
		}
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	if m.board == nil {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.drag.Dragging() && key.Matches(msg, m.keys.back) {
		m.drag.Cancel()
		m.press = nil
		return m, nil
	}

	if m.inspector.IsOpen() {
		return m.handleInspectorKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.left):
		m.lane = max(0, m.lane-1)
		m.clampRow()
	case key.Matches(msg, m.keys.right):
		m.lane = min(len(m.lanes)-1, m.lane+1)
		m.clampRow()
	case key.Matches(msg, m.keys.up):
		m.row--
		m.clampRow()
	case key.Matches(msg, m.keys.down):
		m.row++
		m.clampRow()
	case key.Matches(msg, m.keys.movePrev):
		return m, m.moveFocused(-1)
	case key.Matches(msg, m.keys.moveNext):
		return m, m.moveFocused(1)
	case key.Matches(msg, m.keys.open):
		if item, ok := m.focused(); ok {
			return m, m.openInspector(item)
		}
	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.reload):
		return m, m.reloadItems()
	case key.Matches(msg, m.keys.back):
		if m.query != "" {
			m.clearSearch()
		}
	case key.Matches(msg, m.keys.toggleHlp):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.clearSearch()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.relayout()
	return m, cmd
}

func (m *Model) clearSearch() {
	m.searching = false
	m.search.Blur()
	m.search.SetValue("")
	m.query = ""
	m.relayout()
}

func (m *Model) handleInspectorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.inspector.Close()
		m.relayout()
	case key.Matches(msg, m.keys.up):
		m.picker.CursorUp()
	case key.Matches(msg, m.keys.down):
		m.picker.CursorDown()
	case key.Matches(msg, m.keys.scrollUp):
		m.detail.LineUp(m.detail.Height / 2)
	case key.Matches(msg, m.keys.scrollDn):
		m.detail.LineDown(m.detail.Height / 2)
	case key.Matches(msg, m.keys.open):
		stage, ok := pickedStage(m.picker)
		if !ok {
			return m, nil
		}
		item, _ := m.inspector.Selected()
		t, err := m.inspector.ChangeStage(stage)
		return m, m.begin(item, t, err)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.board == nil {
		return nil
	}
	p := kanban.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		lane, row, ok := m.geo.hit(p)
		if !ok || lane >= len(m.lanes) || row >= len(m.lanes[lane]) {
			return nil
		}
		m.lane, m.row = lane, row
		m.press = &press{item: m.lanes[lane][row], at: p}
		return nil

	case tea.MouseActionMotion:
		if m.press == nil {
			return nil
		}
		if !m.drag.Dragging() {
			if p == m.press.at {
				return nil
			}
			if cmd, ok := m.startDrag(m.press.item); !ok {
				return cmd
			}
		}
		m.drag.Update(p)
		return nil

	case tea.MouseActionRelease:
		pr := m.press
		m.press = nil
		if pr == nil {
			return nil
		}
		if !m.drag.Dragging() {
			return m.openInspector(pr.item)
		}
		proposal, ok := m.drag.Drop(p)
		if !ok {
			return nil
		}
		t, err := m.coord.Submit(proposal)
		return m.begin(proposal.Item, t, err)
	}
	return nil
}

// startDrag begins dragging item unless it has a transition in flight.
func (m *Model) startDrag(item kanban.Item) (tea.Cmd, bool) {
	if m.board.Pending(item.ID) {
		m.press = nil
		m.toasts.Info(fmt.Sprintf("%s is still being updated", item.Title))
		return m.scheduleToasts(), false
	}
	if err := m.drag.Begin(item); err != nil {
		m.logger.Debug("drag rejected", "id", item.ID, "error", err)
		m.press = nil
		return nil, false
	}
	return nil, true
}

// moveFocused moves the focused card delta stages along the registry.
func (m *Model) moveFocused(delta int) tea.Cmd {
	item, ok := m.focused()
	if !ok {
		return nil
	}
	if m.lane >= m.geo.stages {
		m.toasts.Info(fmt.Sprintf("%s has no stage on this board; open it to pick one", item.Title))
		return m.scheduleToasts()
	}

	dest := m.board.Registry().Next(item.Stage, delta)
	t, err := m.coord.Begin(item, dest)
	return m.begin(item, t, err)
}

// begin reacts to a started (or refused) transition and returns the command that executes it.
func (m *Model) begin(item kanban.Item, t *kanban.Transition, err error) tea.Cmd {
	switch {
	case errors.Is(err, kanban.ErrTransitionPending):
		m.toasts.Info(fmt.Sprintf("%s is still being updated", item.Title))
		return m.scheduleToasts()
	case err != nil:
		m.logger.Debug("transition rejected", "id", item.ID, "error", err)
		return nil
	case t == nil:
		return nil
	}

	m.inspector.Sync(m.board)
	m.relayout()
	m.follow(item.ID)
	m.refreshPicker()

	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return transitionMsg{outcome: coord.Execute(ctx, t)}
	}
}

// finish settles a transition and refreshes the inspector if it shows the moved item.
func (m *Model) finish(out kanban.Outcome) tea.Cmd {
	m.coord.Finish(out)
	m.inspector.Sync(m.board)

	focusedID := ""
	if item, ok := m.focused(); ok {
		focusedID = item.ID
	}
	m.relayout()
	if focusedID != "" {
		m.follow(focusedID)
	}

	cmds := []tea.Cmd{m.scheduleToasts()}
	if sel, ok := m.inspector.Selected(); ok && sel.ID == out.Transition.Item.ID {
		m.refreshPicker()
		cmds = append(cmds, m.fetchDetail(m.inspector.Reload(m.ctx)))
	}
	return tea.Batch(cmds...)
}

func (m *Model) openInspector(item kanban.Item) tea.Cmd {
	req := m.inspector.Open(m.ctx, item)
	m.refreshPicker()
	m.relayout()
	m.refreshDetail()
	return m.fetchDetail(req)
}

func (m *Model) fetchDetail(req *kanban.DetailRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	inspector := m.inspector
	return func() tea.Msg {
		return detailMsg{result: inspector.Fetch(req)}
	}
}

func (m *Model) loadBoard() tea.Cmd {
	ctx, store, kind, filter := m.ctx, m.store, m.kind, m.opts.Filter
	return func() tea.Msg {
		board, err := kanban.Load(ctx, store, kind, filter)
		if err == nil {
			board.SetFilter(filter)
		}
		return boardLoadedMsg{board: board, err: err}
	}
}

func (m *Model) reloadItems() tea.Cmd {
	ctx, store, board := m.ctx, m.store, m.board
	return func() tea.Msg {
		seq := board.BeginFetch()
		items, err := store.ListItems(ctx, board.Kind(), board.Filter())
		return itemsReloadedMsg{seq: seq, items: items, err: err}
	}
}

// scheduleToasts starts expiry timers for toasts added since the last call.
func (m *Model) scheduleToasts() tea.Cmd {
	ids := m.toasts.takeFresh()
	if len(ids) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, tea.Tick(m.opts.ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) resizeInspector() {
	if m.inspector == nil || !m.inspector.IsOpen() {
		return
	}
	w := m.panelWidth() - 4
	pickerH := min(m.board.Registry().Len()+3, m.geo.laneHeight()/2)
	m.picker.SetSize(w, pickerH)
	m.detail.Width = w
	m.detail.Height = max(3, m.geo.laneHeight()-pickerH-6)
	m.detail.SetContent(m.renderDetailBody())
}

func (m *Model) refreshPicker() {
	item, ok := m.inspector.Selected()
	if !ok {
		return
	}
	m.picker = newStagePicker(m.board.Registry().Stages(), item.Stage, m.panelWidth()-4, m.board.Registry().Len()+3)
	m.resizeInspector()
}

func (m *Model) refreshDetail() {
	m.detail.SetContent(m.renderDetailBody())
}
