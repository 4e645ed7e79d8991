package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corey/folio/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	fmt.Printf("%sconfig file:%s %s\n", colorBold, colorReset, path)

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	fmt.Print(string(out))

	if cfg.API.Token != "" {
		fmt.Printf("%stoken:%s set via FOLIO_GITHUB_TOKEN\n", colorGray, colorReset)
	} else {
		fmt.Printf("%stoken:%s not set (unauthenticated, lower rate limits)\n", colorGray, colorReset)
	}
	return nil
}
