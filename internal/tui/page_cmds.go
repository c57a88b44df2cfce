package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/pagepick/internal/core/page"
)

// pageLoadedMsg is sent when a page fetch completes. seq identifies the
// request so results of superseded fetches can be dropped.
type pageLoadedMsg struct {
	seq int
	req page.Request
	res page.Result
	err error
}

// fetchPage returns a tea.Cmd that fetches req from f.
func fetchPage(ctx context.Context, f page.Fetcher, seq int, req page.Request) tea.Cmd {
	return func() tea.Msg {
		res, err := f.Fetch(ctx, req)
		return pageLoadedMsg{seq: seq, req: req, res: res, err: err}
	}
}
