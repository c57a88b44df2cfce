package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagepick/internal/core/config"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/selection"
	"github.com/hay-kot/pagepick/internal/data"
	"github.com/hay-kot/pagepick/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	page       int
	pageSize   int
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "Print one page of records",
		UsageText: "pagepick ls [--page N] [--page-size N] [--json]",
		Description: `Fetches a single page from the configured source and prints it as a table
with each record's global position.

Use --json for JSON lines: one "meta" line followed by one line per record.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "page",
				Aliases:     []string{"p"},
				Usage:       "page number (defaults to pagination.start_page)",
				Destination: &cmd.page,
			},
			&cli.IntFlag{
				Name:        "page-size",
				Aliases:     []string{"n"},
				Usage:       "records per page (defaults to pagination.page_size)",
				Destination: &cmd.pageSize,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) request(cfg *config.Config) page.Request {
	req := page.Request{Number: cfg.Pagination.StartPage, Size: cfg.Pagination.PageSize}
	if cmd.page != 0 {
		req.Number = cmd.page
	}
	if cmd.pageSize != 0 {
		req.Size = cmd.pageSize
	}
	return req
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	req := cmd.request(cfg)
	if err := req.Validate(); err != nil {
		return err
	}

	fetcher, closer, err := data.OpenFetcher(cfg)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = closer() }()

	res, err := fetcher.Fetch(ctx, req)
	if err != nil {
		if cmd.jsonOutput {
			_ = iojson.WriteError("fetch failed", map[string]any{
				"page":  req.Number,
				"error": err.Error(),
			})
			return cli.Exit("", 1)
		}
		return fmt.Errorf("fetch page %d: %w", req.Number, err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return writeRecordLines(out, req, res)
	}
	return writeRecordTable(out, os.Stderr, cfg.TUI.Columns, req, res)
}

// recordLine is one line of ls --json output. Exactly one of Meta or Record
// is set.
type recordLine struct {
	Meta     *page.Meta         `json:"meta,omitempty"`
	Position selection.Position `json:"position,omitempty"`
	Record   *page.Record       `json:"record,omitempty"`
}

func writeRecordLines(w io.Writer, req page.Request, res page.Result) error {
	meta := page.NewMeta(req, res)
	if err := iojson.WriteLine(w, recordLine{Meta: &meta}); err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}

	for _, e := range page.Entries(req, res.Records) {
		rec := e.Payload
		if err := iojson.WriteLine(w, recordLine{Position: e.Position, Record: &rec}); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return nil
}

func writeRecordTable(w, ew io.Writer, columns []string, req page.Request, res page.Result) error {
	meta := page.NewMeta(req, res)

	if len(res.Records) == 0 {
		_, _ = fmt.Fprintf(ew, "No records on page %d\n", req.Number)
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		header := []string{"POS", "ID"}
		for _, col := range columns {
			if col == "id" {
				continue
			}
			header = append(header, strings.ToUpper(col))
		}
		_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))

		for _, e := range page.Entries(req, res.Records) {
			row := []string{fmt.Sprintf("%d", e.Position), e.Payload.ID}
			for _, col := range columns {
				if col == "id" {
					continue
				}
				row = append(row, cellValue(e.Payload, col))
			}
			_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(ew, formatMeta(meta))
	return nil
}

func cellValue(rec page.Record, col string) string {
	if col == "title" {
		return rec.Title
	}
	if v, ok := rec.Fields[col]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func formatMeta(m page.Meta) string {
	parts := []string{fmt.Sprintf("page %d", m.CurrentPage)}
	if m.TotalPages > 0 {
		parts[0] = fmt.Sprintf("page %d/%d", m.CurrentPage, m.TotalPages)
	}
	if m.TotalItems != page.TotalUnknown {
		parts = append(parts, fmt.Sprintf("%d items", m.TotalItems))
	}
	if m.HasNext {
		parts = append(parts, "more available")
	}
	return strings.Join(parts, " · ")
}
