// Package initcmd implements the interactive setup wizard behind "pagepick init".
package initcmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/pagepick/internal/core/config"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/styles"
	"github.com/hay-kot/pagepick/internal/core/validate"
	"github.com/hay-kot/pagepick/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	DataDir    string
	Yes        bool              // skip prompts, use defaults
	Force      bool              // overwrite existing config
	Kind       config.SourceKind // preset source kind (empty = prompt)
}

// Answers are the values the wizard collects.
type Answers struct {
	Kind     config.SourceKind
	Location string // file glob or URL, depending on Kind
	PageSize int
	Theme    string
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
	ask  func(*Answers) error
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts, ask: promptUser}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	defaults := config.DefaultConfig()
	answers := Answers{
		Kind:     defaults.Source.Kind,
		PageSize: defaults.Pagination.PageSize,
		Theme:    defaults.TUI.Theme,
	}
	if w.opts.Kind != "" {
		answers.Kind = w.opts.Kind
	}

	if !w.opts.Yes {
		if err := w.ask(&answers); err != nil {
			return err
		}
	}

	cfg, err := BuildConfig(answers, w.opts.DataDir)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	backupPath, err := BackupConfig(w.opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("backup config: %w", err)
	}
	if backupPath != "" {
		p.Successf("Backed up config to: %s", backupPath)
	}

	if err := WriteConfig(w.opts.ConfigPath, data); err != nil {
		return err
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	w.printNextSteps(p, cfg)
	return nil
}

// BuildConfig turns answers into a validated configuration.
func BuildConfig(a Answers, dataDir string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir
	cfg.Source.Kind = a.Kind
	cfg.Pagination.PageSize = a.PageSize
	cfg.TUI.Theme = a.Theme

	switch a.Kind {
	case config.SourceHTTP:
		cfg.Source.URL = strings.TrimSpace(a.Location)
	case config.SourceFile:
		cfg.Source.Path = strings.TrimSpace(a.Location)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid answers: %w", err)
	}
	return &cfg, nil
}

func promptUser(a *Answers) error {
	kind := string(a.Kind)
	kindOptions := make([]huh.Option[string], 0, len(config.SourceKinds))
	for _, k := range config.SourceKinds {
		kindOptions = append(kindOptions, huh.NewOption(string(k), string(k)))
	}

	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Record source").
			Description("sqlite reads the local catalog filled by 'pagepick seed'").
			Options(kindOptions...).
			Value(&kind),
	)).Run()
	if err != nil {
		return err
	}
	a.Kind = config.SourceKind(kind)

	pageSize := strconv.Itoa(a.PageSize)
	themeOptions := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Page size").
			Description(fmt.Sprintf("Records fetched per page (1-%d)", page.MaxPageSize)).
			Value(&pageSize).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil {
					return fmt.Errorf("must be a number")
				}
				return validate.PageSize(n, page.MaxPageSize)
			}),
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&a.Theme),
	}

	switch a.Kind {
	case config.SourceHTTP:
		fields = append([]huh.Field{
			huh.NewInput().
				Title("Endpoint URL").
				Description("GET <url>?page=N&page_size=M returning {\"items\": [...], \"total\": N}").
				Value(&a.Location).
				Validate(validate.HTTPURL),
		}, fields...)
	case config.SourceFile:
		fields = append([]huh.Field{
			huh.NewInput().
				Title("Record files").
				Description("Glob of .json, .yaml or .toml files, relative to the config file").
				Value(&a.Location).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("required")
					}
					return nil
				}),
		}, fields...)
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	a.PageSize, _ = strconv.Atoi(strings.TrimSpace(pageSize))
	return nil
}

func (w *Wizard) printNextSteps(p *printer.Printer, cfg *config.Config) {
	p.Printf("")
	p.Section("Next Steps")

	step := 1
	if cfg.Source.Kind == config.SourceSQLite {
		p.Printf("  %d. Run 'pagepick seed --generate 500' or 'pagepick seed -f records.json'", step)
		step++
	}
	p.Printf("  %d. Run 'pagepick config validate' to check the setup", step)
	step++
	p.Printf("  %d. Run 'pagepick' to start browsing", step)
}
