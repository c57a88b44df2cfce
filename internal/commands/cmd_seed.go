package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/data"
	"github.com/hay-kot/pagepick/internal/data/stores"
	"github.com/hay-kot/pagepick/internal/printer"
	"github.com/hay-kot/pagepick/pkg/iojson"
)

type SeedCmd struct {
	flags *Flags

	// flags
	input    iojson.FileReader[[]page.Record]
	generate int
	truncate bool
}

// NewSeedCmd creates a new seed command
func NewSeedCmd(flags *Flags) *SeedCmd {
	return &SeedCmd{flags: flags}
}

// Register adds the seed command to the application
func (cmd *SeedCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "seed",
		Usage:     "Load records into the local catalog",
		UsageText: "pagepick seed [-f records.json | --generate N] [--truncate]",
		Description: `Inserts records into the SQLite catalog in the data directory.

Records are read as a JSON array from --file or stdin. Each record needs an
"id"; records whose id already exists are updated in place and keep their
position. Use --generate to create N synthetic records instead.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.IntFlag{
				Name:        "generate",
				Aliases:     []string{"g"},
				Usage:       "generate N synthetic records instead of reading input",
				Destination: &cmd.generate,
			},
			&cli.BoolFlag{
				Name:        "truncate",
				Usage:       "remove existing records first",
				Destination: &cmd.truncate,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SeedCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	records, err := cmd.records(c)
	if err != nil {
		return err
	}

	database, err := data.OpenCatalog(cmd.flags.Config)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	store := stores.NewRecordStore(database)

	if cmd.truncate {
		if err := store.Truncate(ctx); err != nil {
			return fmt.Errorf("truncate catalog: %w", err)
		}
		p.Infof("Removed existing records")
	}

	written, err := store.Insert(ctx, records)
	if err != nil {
		if stores.IsBusyError(err) {
			return fmt.Errorf("catalog is locked, close other pagepick sessions and retry: %w", err)
		}
		return fmt.Errorf("insert records: %w", err)
	}

	total, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	log.Info().Int("written", written).Int("total", total).Str("path", database.Path()).Msg("catalog seeded")
	p.Successf("Wrote %d records (%d in catalog)", written, total)
	return nil
}

func (cmd *SeedCmd) records(c *cli.Command) ([]page.Record, error) {
	if cmd.generate != 0 {
		if c.IsSet("file") {
			return nil, errors.New("--generate and --file are mutually exclusive")
		}
		if cmd.generate < 0 {
			return nil, fmt.Errorf("--generate must be positive, got %d", cmd.generate)
		}
		return generateRecords(cmd.generate), nil
	}

	records, err := cmd.input.Read()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no records in input")
	}
	return records, nil
}

// generateRecords builds n records with ULID ids. ULIDs sort by creation
// time, so generated batches keep their order when listed by id.
func generateRecords(n int) []page.Record {
	batch := ulid.Make().String()
	records := make([]page.Record, n)
	for i := range records {
		records[i] = page.Record{
			ID:    ulid.Make().String(),
			Title: fmt.Sprintf("Record %d", i+1),
			Fields: map[string]any{
				"batch": batch,
				"index": i + 1,
			},
		}
	}
	return records
}
