package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codeforge/codemod/internal/config"
	"github.com/codeforge/codemod/internal/listeners"
	"github.com/codeforge/codemod/internal/logging"
	"github.com/codeforge/codemod/internal/registry"
	"github.com/codeforge/codemod/internal/transform"
	"github.com/codeforge/codemod/internal/tui"
)

type runOptions struct {
	RecipePath  string
	AppDir      string
	OutputDir   string
	Watch       bool
	LedgerPath  string
	ReportPath  string
	MetricsAddr string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <recipe.yaml> <app-dir>",
		Short: "Apply a recipe against a staged copy of an application directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.RecipePath = args[0]
			opts.AppDir = args[1]
			return runRun(opts, root)
		},
	}

	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory the staged copy is created inside; defaults next to app-dir")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Attach the live dashboard while the run executes")
	cmd.Flags().StringVar(&opts.LedgerPath, "ledger", "", "Path to a bbolt run-history database; disabled if empty")
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Path to write a plain-text run report; disabled if empty")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on after the run; disabled if empty")

	return cmd
}

func runRun(opts runOptions, root *rootFlags) error {
	recipe, err := config.ParseRecipe(opts.RecipePath)
	if err != nil {
		return fmt.Errorf("loading recipe: %w", err)
	}

	level := "info"
	if root.verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Options{Level: level, HumanReadable: true})
	if err != nil {
		return err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = recipe.Settings.OutputFolder
	}

	var runListeners []transform.Listener
	if opts.ReportPath != "" {
		runListeners = append(runListeners, listeners.NewFileReportListener(opts.ReportPath))
	}
	if opts.LedgerPath != "" {
		ledger, err := listeners.OpenLedger(opts.LedgerPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer ledger.Close()
		runListeners = append(runListeners, ledger)
	}
	var metrics *listeners.MetricsListener
	if opts.MetricsAddr != "" {
		metrics = listeners.NewMetricsListener("codemod")
		runListeners = append(runListeners, metrics)
	}

	app := transform.Application{Folder: opts.AppDir}
	cfg := transform.Configuration{OutputFolder: outputDir}

	tx, err := buildTransformation(recipe, app, cfg, runListeners)
	if err != nil {
		return err
	}
	tx.DryRun = root.dryRun || recipe.Settings.DryRun

	// --watch is ignored outside a real terminal: a Bubbletea program driven
	// against a redirected/piped stdout has nothing to render to and only
	// gets in the way of scripted or CI invocations. Same check the teacher
	// uses to decide NonInteractive before ever constructing its own TUI
	// model (cmd/streamy/apply.go).
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	var program *tea.Program
	done := make(chan struct{})
	if opts.Watch && interactive {
		program = tea.NewProgram(tui.NewModel(recipe.Name))
		go func() {
			program.Run()
			close(done)
		}()
	}

	result, err := transform.Perform(tx, log)

	if opts.Watch && program != nil {
		if err != nil {
			program.Send(tui.AbortMsg{Message: err.Error()})
		} else {
			for _, rec := range result.ManualInstructions {
				program.Send(tui.ManualInstructionMsg{Record: rec})
			}
		}
		program.Quit()
		<-done
	}

	if opts.MetricsAddr != "" && metrics != nil {
		go listeners.StartServer(opts.MetricsAddr, "/metrics", metrics)
	}

	if err != nil {
		return fmt.Errorf("transformation aborted: %w", err)
	}

	fmt.Fprintf(os.Stdout, "staged at: %s\n", result.WorkingDirectory)
	for _, rec := range result.ManualInstructions {
		fmt.Fprintf(os.Stdout, "manual step (%s): %s\n", rec.UtilityName, rec.Text)
	}

	return nil
}

// buildTransformation constructs the transform.Transformation for a
// single-template recipe or a multi-step upgrade path, depending on which
// the parsed recipe populated.
func buildTransformation(recipe *config.Recipe, app transform.Application, cfg transform.Configuration, runListeners []transform.Listener) (*transform.Transformation, error) {
	if len(recipe.Template) > 0 {
		tmpl, err := registry.BuildTemplate(recipe.Name, recipe.Template)
		if err != nil {
			return nil, err
		}
		return transform.NewTemplateTransformation(app, cfg, tmpl, runListeners...), nil
	}

	var steps []transform.UpgradeStep
	for _, step := range recipe.UpgradePath {
		tmpl, err := registry.BuildTemplate(recipe.Name+":"+step.FromVersion+"->"+step.ToVersion, step.Template)
		if err != nil {
			return nil, err
		}
		steps = append(steps, transform.UpgradeStep{FromVersion: step.FromVersion, ToVersion: step.ToVersion, Template: tmpl})
	}
	path := &transform.UpgradePath{Steps: steps}
	return transform.NewUpgradePathTransformation(app, cfg, path, runListeners...), nil
}
