// cmd/repowiki/main.go
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"repowiki/internal/config"
	"repowiki/internal/githost"
	"repowiki/internal/locate"
	"repowiki/internal/provider"
	"repowiki/internal/session"
	"repowiki/internal/synth"
	"repowiki/internal/tui"
	"repowiki/internal/wiki"

	// Register providers via init() side effects.
	_ "repowiki/internal/provider/anthropic"
	_ "repowiki/internal/provider/gemini"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath   string
	modelFlag    string
	providerFlag string
	pageFlag     string
	exportFlag   string
	formatFlag   string
)

func versionString() string {
	return fmt.Sprintf("repowiki %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	// A .env in the working directory supplies API keys during development.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "repowiki [repository-url-or-share-link]",
		Short: "Generate a browsable wiki for any public repository",
		Long: "repowiki turns a public GitHub or GitLab repository into an " +
			"AI-generated wiki you can read in the terminal or export as markdown.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			if exportFlag != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
				return runExport(input)
			}
			return runInteractive(input)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "override model name")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "override provider name")
	rootCmd.PersistentFlags().StringVar(&pageFlag, "page", "", "open a specific page id")
	rootCmd.PersistentFlags().StringVar(&exportFlag, "export", "", "export the wiki to a directory instead of browsing it")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "raw-md", "export format: raw-md, hugo, docusaurus")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path, loads the config, and applies flag
// overrides.
func loadConfig() (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if modelFlag != "" {
		cfg.Provider.Model = modelFlag
	}
	if providerFlag != "" {
		cfg.Provider.Default = providerFlag
	}

	return cfg, nil
}

// newController wires the hosting sources and the synthesizer factory into a
// session controller.
func newController(cfg *config.Config) *session.Controller {
	sources := func(host locate.Host) (githost.Source, error) {
		switch host {
		case locate.HostGitHub:
			return githost.NewGitHubSource(cfg.Hosting.GitHubToken), nil
		case locate.HostGitLab:
			return githost.NewGitLabSource(cfg.Hosting.GitLabToken)
		default:
			return nil, fmt.Errorf("unsupported hosting service %q", host)
		}
	}

	// A fresh synthesizer per build re-resolves provider credentials from
	// the current environment.
	newSynth := func(ctx context.Context) (session.WikiGenerator, error) {
		gen, err := provider.NewGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return synth.New(gen, cfg.Prompt.MaxFileChars), nil
	}

	return session.New(sources, newSynth, cfg.Prompt.MaxTreeEntries)
}

func runInteractive(input string) error {
	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	// First run with no reachable API key: walk through setup before the
	// main program starts.
	if tui.NeedsBootstrap(cfgPath) {
		form := tui.NewBootstrapForm(cfgPath)
		if err := form.Run(); err != nil {
			return fmt.Errorf("running setup: %w", err)
		}
		if err := form.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := tui.NewModel(newController(cfg), input, pageFlag)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// runExport builds the wiki headlessly and writes it to disk.
func runExport(input string) error {
	if input == "" {
		return fmt.Errorf("a repository URL is required for export")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctrl := newController(cfg)
	events := ctrl.Build(context.Background(), input, pageFlag)
	for evt := range events {
		if evt.Type == session.EventStep {
			fmt.Fprintf(os.Stderr, "%s...\n", evt.Step)
		}
	}

	st := ctrl.State()
	if st.Phase != session.PhaseReady {
		return fmt.Errorf("%s", st.ErrMsg)
	}

	exportCfg := wiki.DefaultExportConfig()
	if exportFlag != "" {
		exportCfg.OutputDir = exportFlag
	}
	if formatFlag != "" {
		exportCfg.Format = formatFlag
	}
	if err := wiki.Export(st.Doc, exportCfg); err != nil {
		return fmt.Errorf("exporting wiki: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Exported %d pages to %s\n", len(st.Doc.Pages), exportCfg.OutputDir)
	return nil
}
