package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/selection"
	"github.com/hay-kot/pagepick/internal/tui/components"
)

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.clampCursor()
	return m, nil
}

func (m Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleFallthrough forwards unhandled messages to the active modal, such as
// cursor blinks for the bulk input.
func (m Model) handleFallthrough(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateBulkInput:
		return m, m.bulk.Update(msg)
	case stateShowingDetail:
		return m, m.detail.Update(msg)
	}
	return m, nil
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		m.log.Debug().Ctx(m.ctx).
			Int("seq", msg.seq).
			Int("current", m.seq).
			Int("page", msg.req.Number).
			Msg("dropping superseded page")
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		m.log.Warn().Ctx(m.ctx).Err(msg.err).Int("page", msg.req.Number).Msg("page fetch failed")
		m.setError(fmt.Sprintf("failed to load page %d: %v (r to retry)", msg.req.Number, msg.err))
		failed := msg.req
		m.failed = &failed
		return m, nil
	}
	m.failed = nil

	meta := page.NewMeta(msg.req, msg.res)

	if len(msg.res.Records) == 0 && msg.req.Number > page.FirstPage {
		// Past the end of a known collection: land on the last page instead.
		if meta.TotalPages > 0 && msg.req.Number > meta.TotalPages {
			return m.load(page.Request{Number: page.ClampPage(msg.req.Number, meta.TotalPages), Size: msg.req.Size})
		}
		// Past the end of an unknown collection: keep the current page.
		if msg.res.Total == page.TotalUnknown && m.loaded {
			m.meta.HasNext = false
			m.setStatus("no more records")
			return m, nil
		}
	}

	if msg.req.Number != m.req.Number || !m.loaded {
		m.cursor, m.offset = 0, 0
	}

	m.req = msg.req
	m.meta = meta
	m.entries = page.Entries(msg.req, msg.res.Records)
	m.loaded = true
	if m.statusErr {
		m.setStatus("")
	}
	m.refreshView()

	m.log.Debug().Ctx(m.ctx).
		Int("page", m.req.Number).
		Int("rows", len(m.entries)).
		Int("total", msg.res.Total).
		Msg("page loaded")

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == keyCtrlC {
		return m.quit()
	}

	switch m.state {
	case stateBulkInput:
		return m.handleBulkModalKey(msg)
	case stateConfirming:
		return m.handleConfirmModalKey(msg)
	case stateShowingHelp:
		return m.handleHelpDialogKey(keyStr)
	case stateShowingDetail:
		return m.handleDetailKey(msg, keyStr)
	}

	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Toggle):
		m.applyPageSelection(m.view.Toggled(m.cursor))
	case key.Matches(msg, m.keys.ToggleAll):
		m.applyPageSelection(m.view.AllToggled())
	case key.Matches(msg, m.keys.NextPage):
		return m.nextPage()
	case key.Matches(msg, m.keys.PrevPage):
		return m.prevPage()
	case key.Matches(msg, m.keys.FirstPage):
		return m.gotoPage(page.FirstPage)
	case key.Matches(msg, m.keys.LastPage):
		if m.meta.TotalPages == 0 {
			m.setStatus("last page is unknown")
			return m, nil
		}
		return m.gotoPage(m.meta.TotalPages)
	case key.Matches(msg, m.keys.Reload):
		page.Invalidate(m.fetcher)
		m.setStatus("")
		return m.load(m.retryTarget())
	case key.Matches(msg, m.keys.Bulk):
		return m.openBulkModal()
	case key.Matches(msg, m.keys.Clear):
		return m.openClearConfirm()
	case key.Matches(msg, m.keys.Detail):
		return m.openDetail()
	case key.Matches(msg, m.keys.Help):
		m.help = components.NewHelpDialog("Keys", m.keys.HelpSections())
		m.state = stateShowingHelp
	case msg.String() == keyEsc:
		m.setStatus("")
	}
	return m, nil
}

// applyPageSelection reports the whole selected subset of the displayed page.
func (m *Model) applyPageSelection(selected []selection.Position) {
	if len(m.view) == 0 {
		return
	}
	before := m.set.Count()
	m.set.ApplyViewSelectionChange(m.view.Positions(), selected)
	m.refreshView()

	m.log.Debug().Ctx(m.ctx).
		Int("page", m.req.Number).
		Int("page_selected", len(selected)).
		Int("delta", m.set.Count()-before).
		Int("total", m.set.Count()).
		Msg("page selection changed")
}

func (m Model) nextPage() (tea.Model, tea.Cmd) {
	t := m.target()
	if !m.loading && !m.meta.HasNext {
		m.setStatus("already on the last page")
		return m, nil
	}
	return m.load(page.Request{Number: t.Number + 1, Size: t.Size})
}

func (m Model) prevPage() (tea.Model, tea.Cmd) {
	t := m.target()
	if t.Number <= page.FirstPage {
		m.setStatus("already on the first page")
		return m, nil
	}
	return m.load(page.Request{Number: t.Number - 1, Size: t.Size})
}

func (m Model) gotoPage(number int) (tea.Model, tea.Cmd) {
	t := m.target()
	if number == t.Number {
		return m, nil
	}
	return m.load(page.Request{Number: number, Size: t.Size})
}

func (m Model) openBulkModal() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	m.bulk = NewBulkModal(m.req.FirstPosition(), m.cfg.Bulk.MaxCount)
	m.state = stateBulkInput
	return m, m.bulk.Init()
}

func (m Model) handleBulkModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	cmd := m.bulk.Update(msg)

	switch {
	case m.bulk.Canceled():
		m.state = stateNormal
		m.bulk = nil
		return m, nil
	case m.bulk.Submitted():
		start, count := m.bulk.Start(), m.bulk.Count()
		added := m.set.ApplyBulkRange(start, count)
		m.state = stateNormal
		m.bulk = nil
		m.refreshView()

		m.log.Debug().Ctx(m.ctx).
			Int("start", int(start)).
			Int("count", count).
			Int("added", added).
			Int("total", m.set.Count()).
			Msg("bulk range selected")

		m.setStatus(fmt.Sprintf("selected #%d-#%d (%d new)", start, int(start)+count-1, added))
		return m, nil
	}

	return m, cmd
}

func (m Model) openClearConfirm() (tea.Model, tea.Cmd) {
	n := m.set.Count()
	if n == 0 {
		m.setStatus("nothing selected")
		return m, nil
	}
	m.confirm = components.NewConfirmModal("Clear selection", fmt.Sprintf("Deselect all %d selected items?", n))
	m.state = stateConfirming
	return m, nil
}

func (m Model) handleConfirmModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.confirm, _ = m.confirm.Update(msg)
	if !m.confirm.Done() {
		return m, nil
	}

	m.state = stateNormal
	if m.confirm.Confirmed() {
		n := m.set.Count()
		m.set.Clear()
		m.refreshView()
		m.log.Debug().Ctx(m.ctx).Int("cleared", n).Msg("selection cleared")
		m.setStatus(fmt.Sprintf("cleared %d selected", n))
	}
	return m, nil
}

func (m Model) handleHelpDialogKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEsc, "?", "q", keyEnter:
		m.state = stateNormal
		m.help = nil
	}
	return m, nil
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	if len(m.view) == 0 {
		return m, nil
	}
	row := m.view[m.cursor]
	title := fmt.Sprintf("Record #%d", row.Position)
	m.detail = components.NewDetailDialog(title, recordMarkdown(row), m.cfg.Palette(), m.screenWidth(), m.screenHeight())
	m.state = stateShowingDetail
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyPressMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEsc, "q", keyEnter:
		m.state = stateNormal
		m.detail = nil
		return m, nil
	}
	return m, m.detail.Update(msg)
}
