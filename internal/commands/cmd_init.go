package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	initcmd "github.com/hay-kot/pagepick/internal/commands/init"
	"github.com/hay-kot/pagepick/internal/core/config"
)

type InitCmd struct {
	flags *Flags
	yes   bool
	force bool
	kind  string
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a pagepick configuration with an interactive wizard",
		UsageText: "pagepick init [options]",
		Description: `Writes a starter config.yaml after asking for the record source,
page size and theme.

Use --yes to accept all defaults without prompts.
Use --force to overwrite existing configuration (a .bak copy is kept).`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
			&cli.StringFlag{
				Name:        "kind",
				Usage:       "record source (sqlite, http, file)",
				Destination: &cmd.kind,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	kind := config.SourceKind(cmd.kind)
	if kind != "" && !kind.IsValid() {
		return fmt.Errorf("invalid --kind %q (expected one of %v)", cmd.kind, config.SourceKinds)
	}

	wizard := initcmd.NewWizard(initcmd.WizardOptions{
		ConfigPath: cmd.flags.ConfigPath,
		DataDir:    cmd.flags.DataDir,
		Yes:        cmd.yes,
		Force:      cmd.force,
		Kind:       kind,
	})
	return wizard.Run(ctx)
}
