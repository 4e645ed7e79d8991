package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/folio/internal/app"
	"github.com/corey/folio/internal/config"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

var (
	flagConfig  string
	flagNoCache bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio data engine",
	Long:  "Fetches a developer profile and repositories, mines READMEs for technology keywords, and serves search and statistics.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	app.SetupLogging(cfg)
	return cfg, nil
}

// newApp builds a wired app or exits with a friendly message.
func newApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg, app.Options{NoCache: flagNoCache})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, err
	}
	return a, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.folio/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "use an in-memory cache discarded on exit")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
