// Package tui implements the paginated record browser.
package tui

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/pagepick/internal/core/config"
	"github.com/hay-kot/pagepick/internal/core/logging"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/selection"
	"github.com/hay-kot/pagepick/internal/core/styles"
	"github.com/hay-kot/pagepick/internal/tui/components"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateBulkInput
	stateConfirming
	stateShowingHelp
	stateShowingDetail
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

// Options configures the TUI behavior.
type Options struct {
	Context   context.Context // carries the session id for logging (optional)
	StartPage int             // overrides pagination.start_page when > 0
	PageSize  int             // overrides pagination.page_size when > 0
	Selection *selection.Set  // existing selection to continue (optional)
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg     *config.Config
	fetcher page.Fetcher
	ctx     context.Context
	log     zerolog.Logger
	keys    KeyMap
	set     *selection.Set

	state  UIState
	width  int
	height int

	// Displayed page.
	req     page.Request
	meta    page.Meta
	entries []selection.Entry[page.Record]
	view    selection.View[page.Record]
	loaded  bool
	cursor  int
	offset  int

	// In-flight fetch. Only the result matching seq is applied.
	seq     int
	pending page.Request
	loading bool
	spinner spinner.Model

	// Request of the last fetch when it failed. Reload re-issues it.
	failed *page.Request

	status    string
	statusErr bool

	// Header summary of the selection, rebuilt after each mutation.
	rangesText string

	bulk    *BulkModal
	confirm components.ConfirmModal
	help    *components.HelpDialog
	detail  *components.DetailDialog

	quitting bool
}

// New creates a browser over fetcher.
func New(fetcher page.Fetcher, cfg *config.Config, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	set := opts.Selection
	if set == nil {
		set = selection.New()
	}

	req := page.Request{
		Number: cfg.Pagination.StartPage,
		Size:   cfg.Pagination.PageSize,
	}
	if opts.StartPage > 0 {
		req.Number = opts.StartPage
	}
	if opts.PageSize > 0 {
		req.Size = opts.PageSize
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	m := Model{
		cfg:     cfg,
		fetcher: fetcher,
		ctx:     ctx,
		log:     logging.Component("tui"),
		keys:    DefaultKeyMap(),
		set:     set,
		state:   stateNormal,
		req:     req,
		seq:     1,
		pending: req,
		loading: true,
		spinner: s,
	}
	m.syncRanges()
	return m
}

// Init starts loading the first page. New already recorded it as pending.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchPage(m.ctx, m.fetcher, m.seq, m.pending), m.spinner.Tick)
}

// load starts fetching req, superseding any fetch in flight.
func (m Model) load(req page.Request) (Model, tea.Cmd) {
	m.seq++
	m.pending = req
	wasLoading := m.loading
	m.loading = true

	m.log.Debug().Ctx(m.ctx).
		Int("page", req.Number).
		Int("page_size", req.Size).
		Int("seq", m.seq).
		Msg("fetching page")

	cmd := fetchPage(m.ctx, m.fetcher, m.seq, req)
	if wasLoading {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case pageLoadedMsg:
		return m.handlePageLoaded(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.handleFallthrough(msg)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.log.Debug().Ctx(m.ctx).Int("selected", m.set.Count()).Msg("browser closed")
	return m, tea.Quit
}

// refreshView rebuilds the page view from the current entries and selection.
func (m *Model) refreshView() {
	m.view = selection.DeriveView(m.entries, m.set)
	m.syncRanges()
	m.clampCursor()
}

// syncRanges recomputes the selection summary shown in the header. Ranges
// sorts every selected position, so it runs on mutation, not per frame.
func (m *Model) syncRanges() {
	if m.set.Count() == 0 {
		m.rangesText = "no selection"
		return
	}
	m.rangesText = selection.FormatRanges(m.set.Ranges())
}

func (m *Model) clampCursor() {
	if len(m.view) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor, 0), len(m.view)-1)

	rows := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.view)-rows, 0))
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

// target returns the page navigation is relative to: the page being fetched
// when a fetch is in flight, otherwise the displayed page.
func (m Model) target() page.Request {
	if m.loading {
		return m.pending
	}
	return m.req
}

// retryTarget returns the request a reload re-issues: the failed request when
// the last fetch errored, otherwise the navigation target.
func (m Model) retryTarget() page.Request {
	if !m.loading && m.failed != nil {
		return *m.failed
	}
	return m.target()
}

// Result is the selection the browser ended with.
type Result struct {
	Count     int                  `json:"count"`
	Ranges    []selection.Range    `json:"ranges"`
	Positions []selection.Position `json:"positions"`
}

// Selection returns the final selection.
func (m Model) Selection() Result {
	return Result{
		Count:     m.set.Count(),
		Ranges:    m.set.Ranges(),
		Positions: m.set.Positions(),
	}
}

// Set returns the selection set backing the browser.
func (m Model) Set() *selection.Set {
	return m.set
}
