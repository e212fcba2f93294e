package tui

import (
	"os"

	"github.com/charmbracelet/huh"

	"repowiki/internal/config"
)

// NeedsBootstrap returns true when no provider API key is reachable from the
// config file or the environment, meaning a build could never succeed.
func NeedsBootstrap(configPath string) bool {
	cfg, err := config.Load(configPath)
	if err != nil {
		return true
	}
	switch cfg.Provider.Default {
	case "anthropic":
		return cfg.Provider.Anthropic.APIKey == "" && os.Getenv("ANTHROPIC_API_KEY") == ""
	default:
		return cfg.Provider.Gemini.APIKey == "" && os.Getenv("GEMINI_API_KEY") == ""
	}
}

// BootstrapForm is a first-run setup wizard built on a Huh multi-step form.
type BootstrapForm struct {
	form     *huh.Form
	cfg      *config.Config
	savePath string
}

// NewBootstrapForm creates the setup wizard. Completing it writes a config
// file so subsequent runs skip straight to the URL prompt.
func NewBootstrapForm(savePath string) *BootstrapForm {
	cfg := config.DefaultConfig()

	bf := &BootstrapForm{
		cfg:      cfg,
		savePath: savePath,
	}

	providerGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Choose your generation provider").
			Options(
				huh.NewOption("Gemini", "gemini"),
				huh.NewOption("Anthropic (Claude)", "anthropic"),
			).
			Value(&cfg.Provider.Default),
	).Title("Welcome to repowiki")

	geminiKeyGroup := huh.NewGroup(
		huh.NewInput().
			Title("Gemini API Key (leave empty to use GEMINI_API_KEY)").
			Placeholder("AIza...").
			Value(&cfg.Provider.Gemini.APIKey).
			EchoMode(huh.EchoModePassword),
	).Title("Authentication").
		WithHideFunc(func() bool { return cfg.Provider.Default != "gemini" })

	anthropicKeyGroup := huh.NewGroup(
		huh.NewInput().
			Title("Anthropic API Key (leave empty to use ANTHROPIC_API_KEY)").
			Placeholder("sk-ant-...").
			Value(&cfg.Provider.Anthropic.APIKey).
			EchoMode(huh.EchoModePassword),
	).Title("Authentication").
		WithHideFunc(func() bool { return cfg.Provider.Default != "anthropic" })

	modelGroup := huh.NewGroup(
		huh.NewInput().
			Title("Model").
			Placeholder("gemini-2.5-flash").
			Value(&cfg.Provider.Model),
	).Title("Model")

	bf.form = huh.NewForm(providerGroup, geminiKeyGroup, anthropicKeyGroup, modelGroup)
	return bf
}

// Run executes the form standalone, before the main program starts.
func (b *BootstrapForm) Run() error { return b.form.Run() }

// Config returns the config populated by the wizard.
func (b *BootstrapForm) Config() *config.Config { return b.cfg }

// Save persists the config. A key typed into the form switches that
// provider's key source to the config file.
func (b *BootstrapForm) Save() error {
	if b.cfg.Provider.Gemini.APIKey != "" {
		b.cfg.Provider.Gemini.APIKeySource = "config"
	}
	if b.cfg.Provider.Anthropic.APIKey != "" {
		b.cfg.Provider.Anthropic.APIKeySource = "config"
	}
	return config.Save(b.savePath, b.cfg)
}
