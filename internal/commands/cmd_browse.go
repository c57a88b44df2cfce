package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagepick/internal/core/logging"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/selection"
	"github.com/hay-kot/pagepick/internal/core/validate"
	"github.com/hay-kot/pagepick/internal/data"
	"github.com/hay-kot/pagepick/internal/tui"
	"github.com/hay-kot/pagepick/pkg/iojson"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type BrowseCmd struct {
	flags *Flags

	// flags
	page     int
	pageSize int
	output   string
}

// NewBrowseCmd creates a new browse command
func NewBrowseCmd(flags *Flags) *BrowseCmd {
	return &BrowseCmd{flags: flags}
}

// Flags returns the browser flags. Each call returns fresh flag values bound
// to the same destinations, so they can be registered on more than one command.
func (cmd *BrowseCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "page",
			Usage:       "page to open (defaults to pagination.start_page)",
			Sources:     cli.EnvVars("PAGEPICK_PAGE"),
			Destination: &cmd.page,
		},
		&cli.IntFlag{
			Name:        "page-size",
			Usage:       "records per page (defaults to pagination.page_size)",
			Sources:     cli.EnvVars("PAGEPICK_PAGE_SIZE"),
			Destination: &cmd.pageSize,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "format of the final selection (text, json)",
			Value:       outputText,
			Destination: &cmd.output,
		},
	}
}

// Register adds the browse command to the application
func (cmd *BrowseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "browse",
		Usage:     "Browse records and build a selection",
		UsageText: "pagepick browse [--page N] [--page-size N] [--output text|json]",
		Description: `Opens the interactive browser over the configured source.

Selections are kept by global position, so rows picked on one page stay
selected while you move through others. Press b to select the next N
positions starting at the first row of the current page.

When the browser exits the selection is printed to stdout.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run executes the browser. Exported for use as default command.
func (cmd *BrowseCmd) Run(ctx context.Context, c *cli.Command) error {
	if err := cmd.validate(); err != nil {
		return err
	}

	cfg := cmd.flags.Config

	fetcher, closer, err := data.OpenFetcher(cfg)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if err := closer(); err != nil {
			log.Error().Err(err).Msg("failed to close source")
		}
	}()

	ctx = logging.WithSessionID(ctx, logging.NewSessionID())
	ctx = logging.WithSource(ctx, string(cfg.Source.Kind))

	log.Info().Ctx(ctx).Msg("browser started")

	m := tui.New(fetcher, cfg, tui.Options{
		Context:   ctx,
		StartPage: cmd.page,
		PageSize:  cmd.pageSize,
	})
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	model := finalModel.(tui.Model)
	result := model.Selection()

	log.Info().Ctx(ctx).Int("selected", result.Count).Msg("browser finished")

	return cmd.print(c.Root().Writer, result)
}

func (cmd *BrowseCmd) validate() error {
	switch cmd.output {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("invalid --output %q (expected text or json)", cmd.output)
	}
	if cmd.page < 0 {
		return fmt.Errorf("invalid --page: %w", page.ErrInvalidPage)
	}
	if cmd.pageSize != 0 {
		if err := validate.PageSize(cmd.pageSize, page.MaxPageSize); err != nil {
			return fmt.Errorf("invalid --page-size: %w", err)
		}
	}
	return nil
}

func (cmd *BrowseCmd) print(w io.Writer, result tui.Result) error {
	if cmd.output == outputJSON {
		return iojson.WriteWith(w, os.Stderr, result)
	}
	return writeSelectionText(w, result)
}

func writeSelectionText(w io.Writer, result tui.Result) error {
	if result.Count == 0 {
		_, err := fmt.Fprintln(w, "nothing selected")
		return err
	}
	_, err := fmt.Fprintf(w, "%d selected: %s\n", result.Count, selection.FormatRanges(result.Ranges))
	return err
}
