package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/format"
	"github.com/rshade/wattsonctl/internal/listing"
	"github.com/rshade/wattsonctl/internal/logging"
	"github.com/rshade/wattsonctl/internal/view"
)

// fetchErrorTitle heads the error block of a failed fetch.
const fetchErrorTitle = "Kunne ikke hente data"

// Screen is one mounted console screen.
type Screen interface {
	tea.Model
	Route() Route
}

// mountedScreen is a screen that owns a fetch. The app cancels it on
// navigation and drops results whose sequence number is stale.
type mountedScreen interface {
	Screen
	Seq() uint64
	Unmount()
}

// sequencedMsg is implemented by results of a mount-scoped fetch.
type sequencedMsg interface {
	mountSeq() uint64
}

type fetchResultMsg[T any] struct {
	seq   uint64
	items []T
	err   error
}

func (m fetchResultMsg[T]) mountSeq() uint64 { return m.seq }

// pageFilter holds the filter state of one list page.
type pageFilter[T any] interface {
	Apply(items []T) []T
	Query() string
	SetQuery(q string)
	// Cycle advances the page's choice filter. It returns false when the
	// page has none.
	Cycle() bool
	// CycleSegment advances the segment tab. It returns false when the page
	// has no segments.
	CycleSegment() bool
	// Summary returns the chips describing the active filter.
	Summary() []string
}

// pageConfig binds a collection to its layout, fetch and filter.
type pageConfig[T billing.Entity] struct {
	layout view.Layout[T]
	fetch  func(ctx context.Context) ([]T, error)
	sorter *listing.Sorter[T]
	filter pageFilter[T]
}

// ListPage is the generic list screen: one fetch on mount, then
// client-side filtering, sorting and paging over the held collection.
type ListPage[T billing.Entity] struct {
	cfg       pageConfig[T]
	formatter *format.Formatter
	pageSize  int
	openID    uuid.UUID

	seq    uint64
	ctx    context.Context
	cancel context.CancelFunc

	state   ViewState
	loading *LoadingState
	err     error

	all     []T
	visible []T
	rows    []T
	page    listing.Page
	pageNum int
	cursor  int

	sortIndex int
	sortDesc  bool

	textInput  textinput.Model
	filtering  bool
	savedQuery string
	paginator  paginator.Model

	width  int
	height int
}

func newListPage[T billing.Entity](ctx context.Context, seq uint64, deps Deps, cfg pageConfig[T]) *ListPage[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	pageSize := deps.PageSize
	if pageSize < 1 {
		pageSize = listing.DefaultPageSize
	}
	f := deps.Formatter
	if f == nil {
		f = format.NewFormatter(format.Danish)
	}

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize

	title := strings.ToLower(cfg.layout.Collection.Title())
	return &ListPage[T]{
		cfg:       cfg,
		formatter: f,
		pageSize:  pageSize,
		seq:       seq,
		ctx:       ctx,
		cancel:    cancel,
		state:     ViewStateLoading,
		loading:   NewLoadingState().WithMessage("Henter " + title + "..."),
		pageNum:   1,
		sortIndex: -1,
		textInput: newFilterInput(),
		paginator: p,
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Søg..."
	ti.Prompt = "/ "
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// Init starts the spinner and issues the single fetch of this mount.
func (m *ListPage[T]) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd())
}

func (m *ListPage[T]) fetchCmd() tea.Cmd {
	ctx, seq, fetch := m.ctx, m.seq, m.cfg.fetch
	return func() tea.Msg {
		items, err := fetch(ctx)
		return fetchResultMsg[T]{seq: seq, items: items, err: err}
	}
}

// Route returns the list route of this page.
func (m *ListPage[T]) Route() Route {
	return ListRoute(m.cfg.layout.Collection)
}

// Seq returns the mount sequence number.
func (m *ListPage[T]) Seq() uint64 {
	return m.seq
}

// Unmount cancels the outstanding fetch, if any.
func (m *ListPage[T]) Unmount() {
	m.cancel()
}

// State returns the current view state.
func (m *ListPage[T]) State() ViewState {
	return m.state
}

// Err returns the fetch failure shown in the error state.
func (m *ListPage[T]) Err() error {
	return m.err
}

// Visible returns the filtered and sorted set.
func (m *ListPage[T]) Visible() []T {
	return m.visible
}

// Rows returns the rows of the current page.
func (m *ListPage[T]) Rows() []T {
	return m.rows
}

// Page returns the current paging window.
func (m *ListPage[T]) Page() listing.Page {
	return m.page
}

// Selected returns the row under the cursor, or nil.
func (m *ListPage[T]) Selected() *T {
	if m.state != ViewStateList || m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// Update handles fetch results, resizes, spinner ticks and keys.
func (m *ListPage[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case fetchResultMsg[T]:
		return m, m.handleFetch(msg)
	case spinner.TickMsg:
		if m.state == ViewStateLoading {
			return m, m.loading.Update(msg)
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *ListPage[T]) handleFetch(msg fetchResultMsg[T]) tea.Cmd {
	log := logging.FromContext(m.ctx)
	if msg.seq != m.seq {
		log.Debug().Uint64("seq", msg.seq).Uint64("mounted", m.seq).Msg("dropping stale fetch result")
		return nil
	}
	coll := m.cfg.layout.Collection
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("collection", string(coll)).Msg("fetch failed")
		m.state = ViewStateError
		m.err = msg.err
		return nil
	}

	log.Debug().Str("collection", string(coll)).Int("rows", len(msg.items)).Msg("fetch complete")
	m.all = msg.items
	if m.all == nil {
		m.all = []T{}
	}
	m.state = ViewStateList
	m.refresh(true)

	if m.openID == uuid.Nil {
		return nil
	}
	id := m.openID
	m.openID = uuid.Nil
	for _, item := range m.all {
		if item.EntityID() == id {
			return Navigate(DetailRoute(coll, id), m.cfg.layout.Detail(item, m.formatter))
		}
	}
	log.Warn().Str("id", id.String()).Msg("entity not found in collection")
	return nil
}

func (m *ListPage[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.filtering {
		return m.handleFilterInput(msg)
	}

	key := msg.String()
	if key == keyQuit {
		m.Unmount()
		m.state = ViewStateQuitting
		return tea.Quit
	}

	switch m.state {
	case ViewStateLoading:
		if key == keyEsc {
			return Navigate(Home(), nil)
		}
	case ViewStateError:
		switch key {
		case keyR:
			return Navigate(m.Route(), nil)
		case keyEsc:
			return Navigate(Home(), nil)
		}
	case ViewStateList:
		return m.handleListKey(key)
	case ViewStateDetail, ViewStateQuitting:
	}
	return nil
}

//nolint:gocyclo,cyclop // One branch per key binding.
func (m *ListPage[T]) handleListKey(key string) tea.Cmd {
	switch key {
	case keyEsc:
		if m.cfg.filter.Query() != "" {
			m.cfg.filter.SetQuery("")
			m.textInput.SetValue("")
			m.refresh(true)
			return nil
		}
		return Navigate(Home(), nil)
	case keyEnter:
		if item := m.Selected(); item != nil {
			coll := m.cfg.layout.Collection
			return Navigate(DetailRoute(coll, (*item).EntityID()), m.cfg.layout.Detail(*item, m.formatter))
		}
	case keySlash:
		m.filtering = true
		m.savedQuery = m.cfg.filter.Query()
		m.textInput.SetValue(m.savedQuery)
		return m.textInput.Focus()
	case keyF:
		if m.cfg.filter.Cycle() {
			m.refresh(true)
		}
	case keyTab:
		if m.cfg.filter.CycleSegment() {
			m.refresh(true)
		}
	case keyS:
		m.sortIndex++
		if m.sortIndex >= len(m.cfg.sorter.Fields()) {
			m.sortIndex = -1
		}
		m.refresh(false)
	case keyShiftS:
		m.sortDesc = !m.sortDesc
		m.refresh(false)
	case keyUp, keyK:
		m.moveCursor(-1)
	case keyDown, keyJ:
		m.moveCursor(1)
	case keyHome, keyG:
		m.cursor = 0
	case keyEnd, keyShiftG:
		m.cursor = max(len(m.rows)-1, 0)
	case keyPgDown, keyNextPage:
		m.goToPage(m.pageNum + 1)
	case keyPgUp, keyPrevPage:
		m.goToPage(m.pageNum - 1)
	}
	return nil
}

// handleFilterInput edits the search query. The query applies as it is
// typed; Enter keeps it and Esc restores the previous one.
func (m *ListPage[T]) handleFilterInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyEnter:
		m.filtering = false
		m.textInput.Blur()
		return nil
	case keyEsc:
		m.filtering = false
		m.textInput.Blur()
		m.textInput.SetValue(m.savedQuery)
		m.applyQuery(m.savedQuery)
		return nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyQuery(m.textInput.Value())
	return cmd
}

func (m *ListPage[T]) applyQuery(q string) {
	if q == m.cfg.filter.Query() {
		return
	}
	m.cfg.filter.SetQuery(q)
	m.refresh(true)
}

// refresh recomputes the visible set. Filter changes pass reset to return
// to the first page.
func (m *ListPage[T]) refresh(reset bool) {
	filtered := m.cfg.filter.Apply(m.all)
	m.visible = m.cfg.sorter.Sort(filtered, m.sortIndex, m.sortDesc)
	if reset {
		m.pageNum = 1
		m.cursor = 0
	}
	m.repage()
}

func (m *ListPage[T]) repage() {
	m.rows, m.page = listing.Paginate(m.visible, m.pageNum, m.pageSize)
	m.pageNum = m.page.Number
	m.paginator.SetTotalPages(m.page.TotalItems)
	m.paginator.Page = m.page.Number - 1
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *ListPage[T]) goToPage(n int) {
	if !m.page.Paginated || n < 1 || n > m.page.TotalPages {
		return
	}
	m.pageNum = n
	m.cursor = 0
	m.repage()
}

func (m *ListPage[T]) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.rows) {
		return
	}
	m.cursor = next
}

// View renders the page for its current state.
func (m *ListPage[T]) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), "", RenderLoading(m.loading))
	case ViewStateError:
		return m.renderError()
	case ViewStateList, ViewStateDetail:
	}
	return m.renderList()
}

func (m *ListPage[T]) renderTitle() string {
	title := HeaderStyle.Render(m.cfg.layout.Collection.Title())
	if m.state != ViewStateList {
		return title
	}
	return title + SubtleStyle.Render(fmt.Sprintf("  %d af %d", len(m.visible), len(m.all)))
}

func (m *ListPage[T]) renderChips() string {
	chips := append([]string{}, m.cfg.filter.Summary()...)
	chips = append(chips, "Sortering: "+m.sortLabel())
	if q := m.cfg.filter.Query(); q != "" && !m.filtering {
		chips = append(chips, fmt.Sprintf("Søg: %q", q))
	}
	return SubtleStyle.Render(strings.Join(chips, " · "))
}

func (m *ListPage[T]) sortLabel() string {
	fields := m.cfg.sorter.Fields()
	if m.sortIndex < 0 || m.sortIndex >= len(fields) {
		return "Hentet rækkefølge"
	}
	arrow := "↑"
	if m.sortDesc {
		arrow = "↓"
	}
	return fields[m.sortIndex].Label + " " + arrow
}

func (m *ListPage[T]) renderList() string {
	tbl := m.cfg.layout.Table(m.rows, m.formatter)
	parts := []string{m.renderTitle(), m.renderChips(), "", renderTable(tbl, m.cursor)}
	if len(m.rows) == 0 {
		parts = append(parts, SubtleStyle.Render("Ingen rækker"))
	}
	if m.page.Paginated {
		parts = append(parts, SubtleStyle.Render(fmt.Sprintf("Side %s | PgUp/PgDn eller [ ] for at bladre",
			m.paginator.View())))
	}
	if m.filtering {
		parts = append(parts, m.textInput.View())
	}
	parts = append(parts, "", SubtleStyle.Render(listHelp))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *ListPage[T]) renderError() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		"",
		FetchErrorBlock(m.err, m.width),
		"",
		SubtleStyle.Render(errorHelp),
	)
}

// FetchErrorBlock renders the boxed error shown in place of a table when a
// fetch fails. The CLI prints the same block for non-interactive commands.
func FetchErrorBlock(err error, width int) string {
	detail := "ukendt fejl"
	if err != nil {
		detail = err.Error()
	}
	w := max(min(width, defaultWidth)-borderPadding*2, filterInputWidth)
	body := lipgloss.JoinVertical(lipgloss.Left,
		CriticalStyle.Render(fetchErrorTitle),
		ValueStyle.Width(w).Render(detail),
	)
	return ErrorBoxStyle.Render(body)
}
